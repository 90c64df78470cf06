/*
Package engine provides the core compensation rule-evaluation engine.

PURPOSE:
  This package contains the types and algorithms for estimating a
  worker's legally-due pay under a two-tier rule system: the sector-wide
  collective agreement ("convention") and an optional company-specific
  agreement that may improve on it. The same engine computes a full
  line-itemized annual compensation and replays it month by month to
  detect historical underpayment (arrears).

KEY CONCEPTS IN THIS FILE (types.go):
  - RuleSource: Which ruleset defines a pay element (convention/agreement)
  - ElementDefinition: Declarative description of one payable component
  - ComputeContext: Everything one computation pass needs, rebuilt per call
  - ElementResult / CompensationResult: Line item and aggregate outputs
  - AgreementTerms: The shape of an active company agreement

DESIGN PRINCIPLES:
  1. Purity: Every computation is a function of its arguments. The caller
     owns session state; nothing in this package mutates shared state.
  2. Precision: Uses decimal.Decimal for all monetary arithmetic.
  3. Fail-soft: Domain-data problems yield degraded typed results, never
     panics or errors across the library boundary.
  4. Exhaustive dispatch: Rule-source branching is a tagged union with
     explicit switches, not field-presence sniffing.

USAGE:
  result := engine.ComputeAnnual(profile, terms, engine.ModeFull, catalog)
  for _, line := range result.Elements {
      fmt.Println(line.Label, line.Amount)
  }

SEE ALSO:
  - classification.go: Score grid and exempt-tier logic
  - elements.go: The three element computers
  - calculator.go: Orchestration and most-favorable-rule resolution
  - arrears.go: Month-by-month retroactive replay
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY HELPERS
// =============================================================================

// StandardMonthlyHours is the legal full-time monthly hour count used to
// derive hourly rates from an annual base (35h/week average).
var StandardMonthlyHours = decimal.RequireFromString("151.67")

// RoundUnits rounds to the nearest whole currency unit. Annual amounts are
// always integer-rounded.
func RoundUnits(d decimal.Decimal) decimal.Decimal { return d.Round(0) }

// RoundCents rounds to the cent. Monthly amounts are rounded to the cent
// before annualizing, matching how payslips round.
func RoundCents(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// Percent applies a percentage rate (expressed as e.g. 2.20 for 2.20%).
func Percent(base, rate decimal.Decimal) decimal.Decimal {
	return base.Mul(rate).Div(decimal.NewFromInt(100))
}

// HourlyRate derives the hourly rate from an annual base salary. Night and
// Sunday surcharges always use this rate so that they stay consistent with
// whichever base (standard or junior schedule) is active.
func HourlyRate(annualBase decimal.Decimal) decimal.Decimal {
	return annualBase.Div(decimal.NewFromInt(12)).Div(StandardMonthlyHours)
}

var twelve = decimal.NewFromInt(12)

// =============================================================================
// RULE SOURCE - Tagged union, never inferred from field presence
// =============================================================================

type RuleSource string

const (
	SourceConvention RuleSource = "convention"
	SourceAgreement  RuleSource = "agreement"
)

// =============================================================================
// ELEMENT TAXONOMY
// =============================================================================

// ElementKind selects which computer handles a definition.
type ElementKind string

const (
	KindBonus           ElementKind = "bonus"            // prime
	KindSurcharge       ElementKind = "surcharge"        // majoration (night, Sunday)
	KindScheduleUpgrade ElementKind = "schedule_upgrade" // forfait
)

// ValueKind describes how an element's amount is derived.
type ValueKind string

const (
	ValueHourlyRate  ValueKind = "hourly_rate"
	ValueFixedAmount ValueKind = "fixed_amount"
	ValuePercentage  ValueKind = "percentage"
)

// SemanticID identifies what an element *means*, independently of which
// ruleset defines it. The most-favorable-rule resolution matches elements
// across sources by semantic identity.
type SemanticID string

const (
	SemanticSeniority SemanticID = "seniority_bonus"
	SemanticNight     SemanticID = "night_surcharge"
	SemanticSunday    SemanticID = "sunday_surcharge"
	SemanticShift     SemanticID = "shift_bonus"
	SemanticSchedule  SemanticID = "schedule_upgrade"
)

// =============================================================================
// WORKER PROFILE - Caller-owned, passed by value into every computation
// =============================================================================

type ScheduleType string

const (
	ScheduleStandard       ScheduleType = "standard"
	ScheduleHoursExemption ScheduleType = "hours_exemption" // forfait heures
	ScheduleDaysExemption  ScheduleType = "days_exemption"  // forfait jours
)

type NightWorkType string

const (
	NightNone      NightWorkType = "none"
	NightShift     NightWorkType = "night_shift"
	NightEarlyLate NightWorkType = "early_late" // morning/evening shift
)

// AgreementInput is one caller-supplied value keyed by an agreement-defined
// string key. New agreements never require new engine code, only new
// catalog entries reading their own keys.
type AgreementInput struct {
	Bool   bool
	Number decimal.Decimal
}

// WorkerProfile captures everything about the worker that computations
// read. It is a plain value: the engine never mutates it, and snapshots
// (e.g. per-month seniority during arrears replay) are fresh copies.
type WorkerProfile struct {
	// Classification inputs: six criteria scores, or a manual override.
	Scores      [6]int
	ManualClass bool
	ManualGroup byte // 'A'..'I', only read when ManualClass
	ManualLevel int  // 1..18, only read when ManualClass

	// Seniority with the current employer, in years (fractional allowed).
	SeniorityYears decimal.Decimal
	// Total professional experience, >= SeniorityYears. Used only to
	// select the junior schedule for junior-eligible classes.
	ExperienceYears decimal.Decimal

	Schedule ScheduleType

	NightType   NightWorkType
	NightHours  decimal.Decimal // monthly
	SundayHours decimal.Decimal // monthly
	ShiftHours  decimal.Decimal // monthly team/shift work

	// Company agreement activation and its generic keyed sub-inputs.
	AgreementEnabled bool
	AgreementInputs  map[string]AgreementInput

	// Territorial point value, used only by the convention seniority bonus.
	PointValue decimal.Decimal

	// AsOfMonth anchors date-conditional eligibility (fixed-bonus
	// reference dates). Zero means timeless: conditions degrade to plain
	// seniority thresholds. Arrears replay sets it per replayed month.
	AsOfMonth time.Time
}

// Input returns the agreement-specific input stored under key. Missing keys
// read as the zero input, so catalogs can probe keys freely.
func (p WorkerProfile) Input(key string) AgreementInput {
	if p.AgreementInputs == nil {
		return AgreementInput{}
	}
	return p.AgreementInputs[key]
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// Classification is a (group letter, class number) pair from the
// convention's scoring grid.
type Classification struct {
	Group byte // 'A'..'I'
	Class int  // 1..18
}

func (c Classification) String() string {
	return string(c.Group) + " " + itoa(c.Class)
}

func itoa(n int) string {
	if n >= 10 {
		return string(rune('0'+n/10)) + string(rune('0'+n%10))
	}
	return string(rune('0' + n))
}

// =============================================================================
// ELEMENT DEFINITION - Declarative, built once from catalogs, never mutated
// =============================================================================

// ConventionElementConfig holds convention-side parameters for an element.
type ConventionElementConfig struct {
	// Seniority bonus.
	SeniorityThresholdYears int
	SeniorityCapYears       int
	RatePercentByClass      map[int]decimal.Decimal

	// Surcharges: flat percentage rates.
	NightRatePercent  decimal.Decimal
	SundayRatePercent decimal.Decimal

	// Schedule upgrade: which declared schedule activates it, and the rate.
	ScheduleKey        ScheduleType
	UpgradeRatePercent decimal.Decimal
}

// AgreementElementConfig holds agreement-side parameters for a declared
// bonus. Surcharge and seniority parameters live on AgreementTerms since
// they are agreement-wide, not per-element.
type AgreementElementConfig struct {
	// Hourly bonuses: which profile flag activates it and which input
	// carries the monthly hours (empty HoursKey reads profile.ShiftHours).
	ActivationKey string
	HoursKey      string
	HourlyRate    decimal.Decimal

	// Fixed bonuses: flat annual amount plus a binary eligibility
	// condition ("at least N years seniority by the reference date").
	Amount            decimal.Decimal
	MinSeniorityYears decimal.Decimal
	ReferenceMonth    time.Month // month of the eligibility reference date
	ReferenceDay      int
	PaidInMonth       time.Month // which month the lump sum lands in, 0 = spread

	// Schedule upgrades declared by an agreement.
	ScheduleKey        ScheduleType
	UpgradeRatePercent decimal.Decimal
}

// ElementDefinition describes one payable component. Definitions are
// constructed once from static catalogs (convention) or from the active
// agreement's declared bonuses, and are read-only during computation.
type ElementDefinition struct {
	ID         string
	SemanticID SemanticID
	Kind       ElementKind
	Source     RuleSource
	ValueKind  ValueKind
	Label      string

	Convention *ConventionElementConfig
	Agreement  *AgreementElementConfig
}

// =============================================================================
// AGREEMENT TERMS - The "active agreement" collaborator shape
// =============================================================================

// RateStep is one entry of a sparse years -> rate table. Steps are sorted
// ascending by Years; lookup resolves to the greatest step with
// Years <= capped seniority, so gaps between steps inherit the preceding
// rate. This <= tie-break is legal arithmetic, not an implementation
// convenience.
type RateStep struct {
	Years       int
	RatePercent decimal.Decimal
}

// RateAt resolves the sparse table for the given (already capped) years.
// Returns zero below the first step.
func RateAt(steps []RateStep, years int) decimal.Decimal {
	rate := decimal.Zero
	for _, s := range steps {
		if s.Years > years {
			break
		}
		rate = s.RatePercent
	}
	return rate
}

// SenioritySpec is an agreement's seniority-bonus configuration.
type SenioritySpec struct {
	ThresholdYears int
	CapYears       int
	RateSteps      []RateStep // sorted ascending by Years
	AllTiers       bool       // also applies to exempt-tier workers
}

// ThirteenMonthSpec spreads annual compensation over 13 payments, with one
// designated month paid double.
type ThirteenMonthSpec struct {
	DoubleMonth time.Month
}

// AgreementTerms is everything the engine reads from an active company
// agreement. nil means convention-only mode.
type AgreementTerms struct {
	ID   string
	Name string

	Seniority *SenioritySpec

	NightShiftRatePercent     decimal.Decimal
	NightEarlyLateRatePercent decimal.Decimal
	SundayRatePercent         decimal.Decimal

	// Declared bonus definitions (hourly and fixed), all Source=agreement.
	Bonuses []ElementDefinition

	ThirteenMonths *ThirteenMonthSpec
}

// FixedBonuses returns the agreement's fixed-amount bonus definitions.
func (t *AgreementTerms) FixedBonuses() []ElementDefinition {
	var out []ElementDefinition
	for _, def := range t.Bonuses {
		if def.Kind == KindBonus && def.ValueKind == ValueFixedAmount {
			out = append(out, def)
		}
	}
	return out
}

// =============================================================================
// COMPUTE CONTEXT - Ephemeral, rebuilt per computation pass
// =============================================================================

// ComputeContext bundles what one element computation needs. It is never
// persisted and never outlives a single calculator call.
type ComputeContext struct {
	Profile    WorkerProfile
	BaseSalary decimal.Decimal // annual, junior schedule already substituted
	HourlyRate decimal.Decimal // derived from BaseSalary, see HourlyRate()
	PointValue decimal.Decimal
	Class      Classification
	Agreement  *AgreementTerms // nil in convention-only mode
}

// =============================================================================
// RESULTS
// =============================================================================

// ElementMeta carries audit metadata for display: the effective rate,
// hours, and years that produced the amount.
type ElementMeta struct {
	RatePercent decimal.Decimal
	Hours       decimal.Decimal
	Years       int
}

// ElementResult is the outcome of computing one definition against one
// context. A zero Amount means the element does not apply. ID echoes the
// producing definition's ID, which is unique per catalog or agreement;
// the base-salary line carries none.
type ElementResult struct {
	ID         string
	Amount     decimal.Decimal // annual, integer-rounded
	Label      string
	Source     RuleSource
	SemanticID SemanticID
	Meta       ElementMeta
}

// Scenario tags the shape of a compensation pass.
type Scenario string

const (
	ScenarioNonExempt    Scenario = "non_exempt"
	ScenarioExempt       Scenario = "exempt"
	ScenarioJuniorExempt Scenario = "junior_exempt"
	ScenarioBaseOnly     Scenario = "base_only"
	// ScenarioError marks a degraded result (e.g. no salary table entry
	// for the resolved class). Total is zero and Elements empty; callers
	// detect this by inspecting the tag, never by catching a panic.
	ScenarioError Scenario = "error"
)

// CompensationResult is the aggregate of one computation pass.
type CompensationResult struct {
	Scenario   Scenario
	BaseSalary decimal.Decimal
	Elements   []ElementResult // applied non-zero elements; base is first
	Total      decimal.Decimal
	Class      Classification
	Exempt     bool
}
