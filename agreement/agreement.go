/*
Package agreement provides company-specific agreement presets.

PURPOSE:
  A company agreement may improve on the convention for specific
  benefits: its own seniority bonus curve, richer night/Sunday rates,
  shift-work bonuses, lump-sum bonuses, and a 13-payment spread. This
  package holds ready-to-use presets built on engine.AgreementTerms.
  Agreements defined outside the code base go through the factory
  package's JSON loader instead.

PRESETS:
  Metalux:     Full-featured reference agreement exercising every
               agreement capability the engine supports.
  PlainBareme: Seniority-only agreement, convention rates otherwise.

DESIGN:
  Presets are constructors, not shared globals: each call returns a
  fresh value, so callers can tweak a copy without affecting others.

SEE ALSO:
  - factory/agreement.go: JSON to AgreementTerms conversion
  - engine/types.go: AgreementTerms definition
*/
package agreement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/pay-engine/engine"
)

// Input keys the presets read from WorkerProfile.AgreementInputs.
const (
	KeyShiftWork     = "shift_work"
	KeyVacationBonus = "vacation_bonus"
)

// =============================================================================
// METALUX - Full-featured reference agreement
// =============================================================================

// Metalux returns the reference company agreement. It declares:
//   - a percentage seniority bonus (2y threshold, 25y cap, sparse steps)
//     applicable to all tiers
//   - distinct night-shift and early/late-shift rates, its own Sunday rate
//   - an hourly shift-work bonus gated by the shift_work input
//   - a fixed vacation bonus paid in June, conditional on one year of
//     seniority by June 1
//   - a 13-payment spread doubling November
func Metalux() *engine.AgreementTerms {
	return &engine.AgreementTerms{
		ID:   "metalux",
		Name: "Metalux company agreement",
		Seniority: &engine.SenioritySpec{
			ThresholdYears: 2,
			CapYears:       25,
			RateSteps: []engine.RateStep{
				{Years: 2, RatePercent: decimal.RequireFromString("2")},
				{Years: 5, RatePercent: decimal.RequireFromString("5")},
				{Years: 10, RatePercent: decimal.RequireFromString("8")},
				{Years: 15, RatePercent: decimal.RequireFromString("10")},
				{Years: 20, RatePercent: decimal.RequireFromString("12")},
				{Years: 25, RatePercent: decimal.RequireFromString("15")},
			},
			AllTiers: true,
		},
		NightShiftRatePercent:     decimal.RequireFromString("25"),
		NightEarlyLateRatePercent: decimal.RequireFromString("10"),
		SundayRatePercent:         decimal.RequireFromString("120"),
		Bonuses: []engine.ElementDefinition{
			{
				ID:         "metalux-shift",
				SemanticID: engine.SemanticShift,
				Kind:       engine.KindBonus,
				Source:     engine.SourceAgreement,
				ValueKind:  engine.ValueHourlyRate,
				Label:      "Shift-work bonus",
				Agreement: &engine.AgreementElementConfig{
					ActivationKey: KeyShiftWork,
					HourlyRate:    decimal.RequireFromString("0.85"),
				},
			},
			{
				ID:        "metalux-vacation",
				Kind:      engine.KindBonus,
				Source:    engine.SourceAgreement,
				ValueKind: engine.ValueFixedAmount,
				Label:     "Vacation bonus",
				Agreement: &engine.AgreementElementConfig{
					ActivationKey:     KeyVacationBonus,
					Amount:            decimal.NewFromInt(450),
					MinSeniorityYears: decimal.NewFromInt(1),
					ReferenceMonth:    time.June,
					ReferenceDay:      1,
					PaidInMonth:       time.June,
				},
			},
		},
		ThirteenMonths: &engine.ThirteenMonthSpec{DoubleMonth: time.November},
	}
}

// =============================================================================
// PLAIN BAREME - Seniority improvement only
// =============================================================================

// PlainBareme returns a minimal agreement that only improves the
// seniority bonus for non-exempt workers; every other rate stays with
// the convention.
func PlainBareme() *engine.AgreementTerms {
	return &engine.AgreementTerms{
		ID:   "plain-bareme",
		Name: "Plain seniority scale",
		Seniority: &engine.SenioritySpec{
			ThresholdYears: 1,
			CapYears:       20,
			RateSteps: []engine.RateStep{
				{Years: 1, RatePercent: decimal.RequireFromString("1")},
				{Years: 5, RatePercent: decimal.RequireFromString("4")},
				{Years: 10, RatePercent: decimal.RequireFromString("7")},
				{Years: 20, RatePercent: decimal.RequireFromString("11")},
			},
			AllTiers: false,
		},
	}
}

// Presets lists the built-in agreements by ID.
func Presets() map[string]*engine.AgreementTerms {
	return map[string]*engine.AgreementTerms{
		"metalux":      Metalux(),
		"plain-bareme": PlainBareme(),
	}
}
