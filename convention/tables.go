/*
Package convention provides the sector-wide collective agreement catalog.

PURPOSE:
  Static declarative tables for the reference rule set: annual base
  salaries by class, the reduced junior schedule for junior-eligible
  classes, the seniority-bonus rate table, and the work-condition
  surcharge and schedule-upgrade rates. No logic lives here beyond table
  lookups; computation belongs to the engine package.

DATA SOURCES:
  Values follow the published sector minima. Base salaries are annual
  gross figures in whole currency units. Rates are percentages (2.20
  means 2.20%).

IMMUTABILITY:
  Tables are package-level and loaded once. Nothing writes to them after
  init, so concurrent computation passes can read them freely.

SEE ALSO:
  - catalog.go: engine.Catalog implementation over these tables
  - engine/classification.go: The scoring grid the class keys come from
*/
package convention

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// SeniorityThresholdYears is the minimum seniority before the
	// convention's seniority bonus applies.
	SeniorityThresholdYears = 3
	// SeniorityCapYears caps the years counted by the seniority bonus.
	SeniorityCapYears = 15
)

// DefaultPointValue is the fallback territorial point value when the
// caller supplies none. The actual value is published per territory.
var DefaultPointValue = decimal.RequireFromString("5.90")

// Surcharge and schedule-upgrade rates (percent).
var (
	NightRatePercent          = decimal.RequireFromString("15")
	SundayRatePercent         = decimal.RequireFromString("100")
	HoursExemptionRatePercent = decimal.RequireFromString("15")
	DaysExemptionRatePercent  = decimal.RequireFromString("30")
)

// =============================================================================
// BASE SALARY TABLE - Annual gross minima by class
// =============================================================================

func u(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// baseSalaries covers every class of the scoring grid, 1 through 18.
var baseSalaries = map[int]decimal.Decimal{
	1:  u(21640),
	2:  u(22230),
	3:  u(22860),
	4:  u(23560),
	5:  u(24500),
	6:  u(25620),
	7:  u(27010),
	8:  u(28740),
	9:  u(30950),
	10: u(33820),
	11: u(37560),
	12: u(41220),
	13: u(45480),
	14: u(50340),
	15: u(55820),
	16: u(61940),
	17: u(69720),
	18: u(78480),
}

// =============================================================================
// JUNIOR SCHEDULE - Reduced bases for junior-eligible classes
// =============================================================================

// juniorTier keys the junior schedule by total professional experience:
// less than 2 years, 2 to 4, and 4 to 6. At 6 years the standard table
// takes over.
type juniorTier struct {
	maxYears decimal.Decimal // exclusive upper bound
	annual   decimal.Decimal
}

var juniorSchedules = map[int][]juniorTier{
	11: {
		{maxYears: u(2), annual: u(32060)},
		{maxYears: u(4), annual: u(33890)},
		{maxYears: u(6), annual: u(35720)},
	},
	12: {
		{maxYears: u(2), annual: u(35180)},
		{maxYears: u(4), annual: u(37190)},
		{maxYears: u(6), annual: u(39200)},
	},
}

// =============================================================================
// SENIORITY RATE TABLE - Percent per counted year, by class
// =============================================================================

// seniorityRates covers the non-exempt classes only: the convention
// defines no seniority bonus for the exempt tier.
var seniorityRates = map[int]decimal.Decimal{
	1:  decimal.RequireFromString("1.60"),
	2:  decimal.RequireFromString("1.75"),
	3:  decimal.RequireFromString("1.90"),
	4:  decimal.RequireFromString("2.05"),
	5:  decimal.RequireFromString("2.20"),
	6:  decimal.RequireFromString("2.35"),
	7:  decimal.RequireFromString("2.55"),
	8:  decimal.RequireFromString("2.75"),
	9:  decimal.RequireFromString("3.00"),
	10: decimal.RequireFromString("3.30"),
}
