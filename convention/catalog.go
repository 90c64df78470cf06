/*
catalog.go - engine.Catalog implementation over the convention tables

PURPOSE:
  Exposes the static tables through the engine's Catalog contract and
  constructs the convention's element definitions: the seniority bonus,
  the night and Sunday surcharges, and the two schedule upgrades.

LIFECYCLE:
  Definitions are built once at package init and shared: they are
  read-only during computation, so every pass can use the same values.

SEE ALSO:
  - tables.go: The raw tables
  - engine/catalog.go: The Catalog contract
*/
package convention

import (
	"github.com/shopspring/decimal"

	"github.com/warp/pay-engine/engine"
)

// Catalog returns the convention rule catalog. The returned value is
// immutable and safe for concurrent use.
func Catalog() engine.Catalog { return catalog{} }

type catalog struct{}

var _ engine.Catalog = catalog{}

// =============================================================================
// TABLE LOOKUPS
// =============================================================================

func (catalog) BaseSalary(class int) (decimal.Decimal, bool) {
	base, ok := baseSalaries[class]
	return base, ok
}

func (catalog) JuniorBaseSalary(class int, experienceYears decimal.Decimal) (decimal.Decimal, bool) {
	tiers, ok := juniorSchedules[class]
	if !ok {
		return decimal.Zero, false
	}
	for _, tier := range tiers {
		if experienceYears.LessThan(tier.maxYears) {
			return tier.annual, true
		}
	}
	return decimal.Zero, false
}

// =============================================================================
// ELEMENT DEFINITIONS
// =============================================================================

var seniorityDef = engine.ElementDefinition{
	ID:         "conv-seniority",
	SemanticID: engine.SemanticSeniority,
	Kind:       engine.KindBonus,
	Source:     engine.SourceConvention,
	ValueKind:  engine.ValuePercentage,
	Label:      "Seniority bonus",
	Convention: &engine.ConventionElementConfig{
		SeniorityThresholdYears: SeniorityThresholdYears,
		SeniorityCapYears:       SeniorityCapYears,
		RatePercentByClass:      seniorityRates,
	},
}

var nightDef = engine.ElementDefinition{
	ID:         "conv-night",
	SemanticID: engine.SemanticNight,
	Kind:       engine.KindSurcharge,
	Source:     engine.SourceConvention,
	ValueKind:  engine.ValueHourlyRate,
	Label:      "Night surcharge",
	Convention: &engine.ConventionElementConfig{
		NightRatePercent: NightRatePercent,
	},
}

var sundayDef = engine.ElementDefinition{
	ID:         "conv-sunday",
	SemanticID: engine.SemanticSunday,
	Kind:       engine.KindSurcharge,
	Source:     engine.SourceConvention,
	ValueKind:  engine.ValueHourlyRate,
	Label:      "Sunday surcharge",
	Convention: &engine.ConventionElementConfig{
		SundayRatePercent: SundayRatePercent,
	},
}

var scheduleDefs = []engine.ElementDefinition{
	{
		ID:         "conv-forfait-hours",
		SemanticID: engine.SemanticSchedule,
		Kind:       engine.KindScheduleUpgrade,
		Source:     engine.SourceConvention,
		ValueKind:  engine.ValuePercentage,
		Label:      "Hours-based exemption upgrade",
		Convention: &engine.ConventionElementConfig{
			ScheduleKey:        engine.ScheduleHoursExemption,
			UpgradeRatePercent: HoursExemptionRatePercent,
		},
	},
	{
		ID:         "conv-forfait-days",
		SemanticID: engine.SemanticSchedule,
		Kind:       engine.KindScheduleUpgrade,
		Source:     engine.SourceConvention,
		ValueKind:  engine.ValuePercentage,
		Label:      "Days-based exemption upgrade",
		Convention: &engine.ConventionElementConfig{
			ScheduleKey:        engine.ScheduleDaysExemption,
			UpgradeRatePercent: DaysExemptionRatePercent,
		},
	},
}

func (catalog) SeniorityBonus() engine.ElementDefinition  { return seniorityDef }
func (catalog) NightSurcharge() engine.ElementDefinition  { return nightDef }
func (catalog) SundaySurcharge() engine.ElementDefinition { return sundayDef }
func (catalog) ScheduleUpgrades() []engine.ElementDefinition {
	return scheduleDefs
}
