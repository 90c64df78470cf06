/*
elements.go - The three element computers

PURPOSE:
  One pure function per element kind, sharing the signature
  compute(definition, context) -> ElementResult. Each dispatches
  exhaustively on the definition's rule source:

  ComputeBonus:
    convention: seniority bonus only (point value x class rate x years)
    agreement:  percentage seniority, hourly bonuses, fixed bonuses

  ComputeSurcharge:
    convention: flat night rate (any night type) and flat Sunday rate
    agreement:  distinct night-shift vs early/late rates, own Sunday rate

  ComputeScheduleUpgrade:
    both: base x rate when the declared schedule matches the configured key

ROUNDING:
  Hour-based amounts are rounded to the cent monthly, then annualized and
  rounded to whole units, matching payslip arithmetic. Percentage and
  point-value amounts round once, to whole units.

FAIL-SOFT CONTRACT:
  Definitions come from catalogs validated at load time. A malformed or
  kind-mismatched definition returns a zero-amount, empty-label result
  instead of raising, so one bad catalog entry cannot take down a pass.

SEE ALSO:
  - types.go: ElementDefinition, ComputeContext, ElementResult
  - calculator.go: Chooses which definitions to compute and resolves
    convention/agreement overlaps
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// zeroResult is the fail-soft outcome for malformed definitions.
func zeroResult() ElementResult {
	return ElementResult{Amount: decimal.Zero}
}

// =============================================================================
// BONUS COMPUTER (primes)
// =============================================================================

// ComputeBonus computes a bonus element. Convention bonuses are the
// seniority bonus; agreement bonuses branch on value kind.
func ComputeBonus(def ElementDefinition, ctx ComputeContext) ElementResult {
	if def.Kind != KindBonus {
		return zeroResult()
	}
	switch def.Source {
	case SourceConvention:
		return conventionSeniorityBonus(def, ctx)
	case SourceAgreement:
		switch def.ValueKind {
		case ValuePercentage:
			return agreementSeniorityBonus(def, ctx)
		case ValueHourlyRate:
			return agreementHourlyBonus(def, ctx)
		case ValueFixedAmount:
			return agreementFixedBonus(def, ctx, ctx.Profile.AsOfMonth)
		}
	}
	return zeroResult()
}

// conventionSeniorityBonus: zero below the threshold; years capped at the
// ceiling; annual = point value x class rate x capped years x 12.
func conventionSeniorityBonus(def ElementDefinition, ctx ComputeContext) ElementResult {
	cfg := def.Convention
	if cfg == nil || cfg.RatePercentByClass == nil {
		return zeroResult()
	}
	years := wholeYears(ctx.Profile.SeniorityYears)
	if years < cfg.SeniorityThresholdYears {
		return zeroResult()
	}
	if years > cfg.SeniorityCapYears {
		years = cfg.SeniorityCapYears
	}
	rate, ok := cfg.RatePercentByClass[ctx.Class.Class]
	if !ok {
		return zeroResult()
	}
	amount := RoundUnits(Percent(ctx.PointValue, rate).Mul(decimal.NewFromInt(int64(years))).Mul(twelve))
	return ElementResult{
		ID:         def.ID,
		Amount:     amount,
		Label:      def.Label,
		Source:     SourceConvention,
		SemanticID: def.SemanticID,
		Meta:       ElementMeta{RatePercent: rate, Years: years},
	}
}

// agreementSeniorityBonus: the agreement's own threshold and cap, with the
// sparse step table resolved to the greatest step <= capped years.
func agreementSeniorityBonus(def ElementDefinition, ctx ComputeContext) ElementResult {
	if ctx.Agreement == nil || ctx.Agreement.Seniority == nil {
		return zeroResult()
	}
	spec := ctx.Agreement.Seniority
	years := wholeYears(ctx.Profile.SeniorityYears)
	if years < spec.ThresholdYears {
		return zeroResult()
	}
	if years > spec.CapYears {
		years = spec.CapYears
	}
	rate := RateAt(spec.RateSteps, years)
	if rate.IsZero() {
		return zeroResult()
	}
	amount := RoundUnits(Percent(ctx.BaseSalary, rate))
	return ElementResult{
		ID:         def.ID,
		Amount:     amount,
		Label:      def.Label,
		Source:     SourceAgreement,
		SemanticID: def.SemanticID,
		Meta:       ElementMeta{RatePercent: rate, Years: years},
	}
}

// agreementHourlyBonus: inactive unless the agreement's activation flag is
// set on the profile; monthly = hours x hourly rate, rounded to the cent,
// then annualized.
func agreementHourlyBonus(def ElementDefinition, ctx ComputeContext) ElementResult {
	cfg := def.Agreement
	if cfg == nil {
		return zeroResult()
	}
	if cfg.ActivationKey != "" && !ctx.Profile.Input(cfg.ActivationKey).Bool {
		return zeroResult()
	}
	hours := ctx.Profile.ShiftHours
	if cfg.HoursKey != "" {
		hours = ctx.Profile.Input(cfg.HoursKey).Number
	}
	if hours.IsZero() {
		return zeroResult()
	}
	monthly := RoundCents(hours.Mul(cfg.HourlyRate))
	amount := RoundUnits(monthly.Mul(twelve))
	return ElementResult{
		ID:         def.ID,
		Amount:     amount,
		Label:      def.Label,
		Source:     SourceAgreement,
		SemanticID: def.SemanticID,
		Meta:       ElementMeta{Hours: hours},
	}
}

// agreementFixedBonus: binary eligibility, not graduated. The fixed amount
// is paid whole once the seniority-at-reference-date condition holds.
// asOf selects which year's reference date applies; the zero time means
// "evaluate against the condition as a plain seniority threshold".
func agreementFixedBonus(def ElementDefinition, ctx ComputeContext, asOf time.Time) ElementResult {
	cfg := def.Agreement
	if cfg == nil {
		return zeroResult()
	}
	if cfg.ActivationKey != "" && !ctx.Profile.Input(cfg.ActivationKey).Bool {
		return zeroResult()
	}
	if !fixedBonusEligible(cfg, ctx.Profile, asOf) {
		return zeroResult()
	}
	return ElementResult{
		ID:         def.ID,
		Amount:     RoundUnits(cfg.Amount),
		Label:      def.Label,
		Source:     SourceAgreement,
		SemanticID: def.SemanticID,
	}
}

// fixedBonusEligible checks the "at least N years seniority by the
// reference date" condition. With no reference date configured (or no
// as-of date supplied) the condition degrades to a plain threshold on
// current seniority.
func fixedBonusEligible(cfg *AgreementElementConfig, p WorkerProfile, asOf time.Time) bool {
	if cfg.MinSeniorityYears.IsZero() {
		return true
	}
	seniority := p.SeniorityYears
	if cfg.ReferenceMonth != 0 && !asOf.IsZero() {
		ref := time.Date(asOf.Year(), cfg.ReferenceMonth, cfg.ReferenceDay, 0, 0, 0, 0, time.UTC)
		// Seniority moves with the calendar: shift the declared figure by
		// the distance between the as-of month and the reference date.
		monthsAhead := monthsBetween(asOf, ref)
		adjust := decimal.NewFromInt(int64(monthsAhead)).Div(twelve)
		seniority = p.SeniorityYears.Add(adjust)
	}
	return seniority.GreaterThanOrEqual(cfg.MinSeniorityYears)
}

// =============================================================================
// SURCHARGE COMPUTER (majorations: night, Sunday)
// =============================================================================

// ComputeSurcharge computes a work-condition surcharge. The hourly rate
// comes from the context (base / 12 / standard monthly hours), never from
// an independent lookup, so surcharges follow whichever base is active.
func ComputeSurcharge(def ElementDefinition, ctx ComputeContext) ElementResult {
	if def.Kind != KindSurcharge {
		return zeroResult()
	}
	var hours, rate decimal.Decimal

	switch def.SemanticID {
	case SemanticNight:
		if ctx.Profile.NightType == NightNone {
			return zeroResult()
		}
		hours = ctx.Profile.NightHours
		switch def.Source {
		case SourceConvention:
			// The convention does not distinguish night-shift sub-types:
			// one flat rate for any declared night work.
			if def.Convention == nil {
				return zeroResult()
			}
			rate = def.Convention.NightRatePercent
		case SourceAgreement:
			if ctx.Agreement == nil {
				return zeroResult()
			}
			if ctx.Profile.NightType == NightShift {
				rate = ctx.Agreement.NightShiftRatePercent
			} else {
				rate = ctx.Agreement.NightEarlyLateRatePercent
			}
		}
	case SemanticSunday:
		hours = ctx.Profile.SundayHours
		switch def.Source {
		case SourceConvention:
			if def.Convention == nil {
				return zeroResult()
			}
			rate = def.Convention.SundayRatePercent
		case SourceAgreement:
			if ctx.Agreement == nil {
				return zeroResult()
			}
			rate = ctx.Agreement.SundayRatePercent
		}
	default:
		return zeroResult()
	}

	if hours.IsZero() || rate.IsZero() {
		return zeroResult()
	}
	monthly := RoundCents(Percent(hours.Mul(ctx.HourlyRate), rate))
	amount := RoundUnits(monthly.Mul(twelve))
	return ElementResult{
		ID:         def.ID,
		Amount:     amount,
		Label:      def.Label,
		Source:     def.Source,
		SemanticID: def.SemanticID,
		Meta:       ElementMeta{RatePercent: rate, Hours: hours},
	}
}

// =============================================================================
// SCHEDULE-UPGRADE COMPUTER (forfaits)
// =============================================================================

// ComputeScheduleUpgrade computes the working-time-arrangement uplift.
// Active only when the declared schedule exactly matches the definition's
// configured key; the standard schedule matches no upgrade.
func ComputeScheduleUpgrade(def ElementDefinition, ctx ComputeContext) ElementResult {
	if def.Kind != KindScheduleUpgrade {
		return zeroResult()
	}
	var key ScheduleType
	var rate decimal.Decimal
	switch def.Source {
	case SourceConvention:
		if def.Convention == nil {
			return zeroResult()
		}
		key, rate = def.Convention.ScheduleKey, def.Convention.UpgradeRatePercent
	case SourceAgreement:
		if def.Agreement == nil {
			return zeroResult()
		}
		key, rate = def.Agreement.ScheduleKey, def.Agreement.UpgradeRatePercent
	default:
		return zeroResult()
	}
	if ctx.Profile.Schedule != key || rate.IsZero() {
		return zeroResult()
	}
	return ElementResult{
		ID:         def.ID,
		Amount:     RoundUnits(Percent(ctx.BaseSalary, rate)),
		Label:      def.Label,
		Source:     def.Source,
		SemanticID: def.SemanticID,
		Meta:       ElementMeta{RatePercent: rate},
	}
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// wholeYears truncates fractional seniority to completed years, the unit
// every rate table is keyed by.
func wholeYears(years decimal.Decimal) int {
	return int(years.IntPart())
}

// monthsBetween counts whole calendar months from a to b (negative when b
// precedes a).
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
