package engine

import "github.com/shopspring/decimal"

// =============================================================================
// CATALOG - Convention-side lookups the calculator depends on
// =============================================================================

// Catalog is the rule-catalog collaborator: the convention's static tables
// and element definitions, produced once at startup and immutable for the
// life of the process. The convention package provides the reference
// implementation; tests may substitute reduced catalogs.
type Catalog interface {
	// BaseSalary returns the standard annual base for a class, or false
	// when the class has no entry (a configuration error, not a panic).
	BaseSalary(class int) (decimal.Decimal, bool)

	// JuniorBaseSalary returns the junior-schedule annual base for a
	// junior-eligible class, keyed by total professional experience.
	// False when the class has no junior schedule.
	JuniorBaseSalary(class int, experienceYears decimal.Decimal) (decimal.Decimal, bool)

	// SeniorityBonus returns the convention's seniority bonus definition.
	SeniorityBonus() ElementDefinition

	// NightSurcharge and SundaySurcharge return the convention's
	// work-condition surcharge definitions.
	NightSurcharge() ElementDefinition
	SundaySurcharge() ElementDefinition

	// ScheduleUpgrades returns the convention's schedule-upgrade (forfait)
	// definitions, one per exemption schedule type.
	ScheduleUpgrades() []ElementDefinition
}

// JuniorExperienceCeiling is the professional-experience threshold (in
// years) above which the standard table replaces the junior schedule.
var JuniorExperienceCeiling = decimal.NewFromInt(6)
