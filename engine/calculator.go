/*
calculator.go - Annual compensation orchestration

PURPOSE:
  ComputeAnnual drives one full computation pass: classification, base
  salary lookup (standard or junior schedule), element computation across
  every applicable definition, and the most-favorable-rule resolution
  when the convention and the company agreement both define the same
  benefit.

MOST-FAVORABLE-RULE RESOLUTION:
  When both rule sources define a seniority bonus, labor law requires
  applying whichever is more favorable to the worker. The calculator
  computes both amounts independently (either may legitimately be zero,
  e.g. below its own threshold), keeps the strictly greater one, and on
  an exact tie keeps the convention since it is the statutory floor. It
  never silently applies only one side.

MODES:
  ModeFull:     the complete line-itemized annual compensation.
  ModeBaseOnly: base salary plus the schedule upgrade only. This is the
                regulatory minimum-floor figure, which must exclude every
                bonus and surcharge by legal definition.

FAILURE SEMANTICS:
  Invalid classification falls back to the lowest class; a class missing
  from the salary table yields a ScenarioError result with zero total and
  no line items. Nothing in this file panics or returns an error: one bad
  upstream input must not crash an interactive form.

SEE ALSO:
  - elements.go: The per-kind computers this file orchestrates
  - arrears.go: Replays this calculator month by month
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// Mode selects how much of the compensation a pass computes.
type Mode string

const (
	ModeFull     Mode = "full"
	ModeBaseOnly Mode = "base_only"
)

// BaseSalaryLabel is the label of the base line item, always first.
const BaseSalaryLabel = "Base salary"

// ComputeAnnual computes the annual compensation for a worker profile.
// terms is nil in convention-only mode. The result is deterministic:
// identical inputs always produce identical results.
func ComputeAnnual(p WorkerProfile, terms *AgreementTerms, mode Mode, catalog Catalog) CompensationResult {
	if !p.AgreementEnabled {
		terms = nil
	}
	class := ActiveClassification(p)
	exempt := IsExemptTier(class.Class)

	base, junior, ok := resolveBase(p, class, catalog)
	if !ok {
		return CompensationResult{Scenario: ScenarioError, Class: class, Exempt: exempt,
			BaseSalary: decimal.Zero, Total: decimal.Zero}
	}

	ctx := ComputeContext{
		Profile:    p,
		BaseSalary: base,
		HourlyRate: HourlyRate(base),
		PointValue: p.PointValue,
		Class:      class,
		Agreement:  terms,
	}

	result := CompensationResult{
		BaseSalary: base,
		Class:      class,
		Exempt:     exempt,
		Elements: []ElementResult{{
			Amount: base,
			Label:  BaseSalaryLabel,
			Source: SourceConvention,
		}},
	}

	// Schedule upgrade applies in every mode, including the floor.
	for _, def := range catalog.ScheduleUpgrades() {
		appendElement(&result, ComputeScheduleUpgrade(def, ctx))
	}
	if terms != nil {
		for _, def := range terms.Bonuses {
			if def.Kind == KindScheduleUpgrade {
				appendElement(&result, ComputeScheduleUpgrade(def, ctx))
			}
		}
	}

	if mode == ModeBaseOnly {
		result.Scenario = ScenarioBaseOnly
		return finish(result)
	}

	switch {
	case !exempt:
		result.Scenario = ScenarioNonExempt
		appendElement(&result, resolveSeniorityBonus(ctx, catalog))
	case junior:
		result.Scenario = ScenarioJuniorExempt
		appendElement(&result, exemptSeniorityBonus(ctx))
	default:
		result.Scenario = ScenarioExempt
		appendElement(&result, exemptSeniorityBonus(ctx))
	}

	// Days-based exemption for exempt-tier workers converts overage into
	// rest time, not pay: no hour-based elements for them.
	if !(exempt && p.Schedule == ScheduleDaysExemption) {
		appendElement(&result, ComputeSurcharge(nightDef(ctx, catalog), ctx))
		appendElement(&result, ComputeSurcharge(sundayDef(ctx, catalog), ctx))
		if !exempt && terms != nil {
			for _, def := range terms.Bonuses {
				if def.Kind == KindBonus && def.ValueKind == ValueHourlyRate {
					appendElement(&result, ComputeBonus(def, ctx))
				}
			}
		}
	}

	if terms != nil {
		for _, def := range terms.FixedBonuses() {
			appendElement(&result, ComputeBonus(def, ctx))
		}
	}

	return finish(result)
}

// resolveBase determines the annual base salary, substituting the junior
// schedule for junior-eligible classes below the experience ceiling. The
// substitution happens before any element is computed so every downstream
// element uses the junior base. Returns ok=false on a salary-table gap.
func resolveBase(p WorkerProfile, class Classification, catalog Catalog) (base decimal.Decimal, junior bool, ok bool) {
	if IsJuniorEligible(class.Class) && p.ExperienceYears.LessThan(JuniorExperienceCeiling) {
		if jb, found := catalog.JuniorBaseSalary(class.Class, p.ExperienceYears); found {
			return jb, true, true
		}
	}
	base, found := catalog.BaseSalary(class.Class)
	return base, false, found
}

// resolveSeniorityBonus applies the most-favorable-rule resolution for
// non-exempt workers: both sides computed independently, strictly greater
// amount wins, convention on ties.
func resolveSeniorityBonus(ctx ComputeContext, catalog Catalog) ElementResult {
	conv := ComputeBonus(catalog.SeniorityBonus(), ctx)
	if ctx.Agreement == nil || ctx.Agreement.Seniority == nil {
		return conv
	}
	agr := ComputeBonus(agreementSeniorityDef(ctx.Agreement), ctx)
	if agr.Amount.GreaterThan(conv.Amount) {
		return agr
	}
	return conv
}

// exemptSeniorityBonus: no convention seniority bonus exists for exempt
// tiers; the agreement's applies only when it declares itself applicable
// to all tiers.
func exemptSeniorityBonus(ctx ComputeContext) ElementResult {
	if ctx.Agreement == nil || ctx.Agreement.Seniority == nil || !ctx.Agreement.Seniority.AllTiers {
		return zeroResult()
	}
	return ComputeBonus(agreementSeniorityDef(ctx.Agreement), ctx)
}

// agreementSeniorityDef builds the agreement-side seniority definition.
// The parameters live on AgreementTerms; the definition just names it.
func agreementSeniorityDef(terms *AgreementTerms) ElementDefinition {
	return ElementDefinition{
		ID:         terms.ID + "-seniority",
		SemanticID: SemanticSeniority,
		Kind:       KindBonus,
		Source:     SourceAgreement,
		ValueKind:  ValuePercentage,
		Label:      "Seniority bonus (" + terms.Name + ")",
	}
}

// nightDef and sundayDef pick the agreement's surcharge when the active
// agreement defines its own rates, otherwise the convention's.
func nightDef(ctx ComputeContext, catalog Catalog) ElementDefinition {
	if ctx.Agreement != nil &&
		(!ctx.Agreement.NightShiftRatePercent.IsZero() || !ctx.Agreement.NightEarlyLateRatePercent.IsZero()) {
		return ElementDefinition{
			ID:         ctx.Agreement.ID + "-night",
			SemanticID: SemanticNight,
			Kind:       KindSurcharge,
			Source:     SourceAgreement,
			ValueKind:  ValueHourlyRate,
			Label:      "Night surcharge (" + ctx.Agreement.Name + ")",
		}
	}
	return catalog.NightSurcharge()
}

func sundayDef(ctx ComputeContext, catalog Catalog) ElementDefinition {
	if ctx.Agreement != nil && !ctx.Agreement.SundayRatePercent.IsZero() {
		return ElementDefinition{
			ID:         ctx.Agreement.ID + "-sunday",
			SemanticID: SemanticSunday,
			Kind:       KindSurcharge,
			Source:     SourceAgreement,
			ValueKind:  ValueHourlyRate,
			Label:      "Sunday surcharge (" + ctx.Agreement.Name + ")",
		}
	}
	return catalog.SundaySurcharge()
}

// appendElement keeps only applied elements: zero amounts are omitted from
// the line items.
func appendElement(r *CompensationResult, e ElementResult) {
	if e.Amount.IsZero() {
		return
	}
	r.Elements = append(r.Elements, e)
}

// finish sums the line items into the grand total.
func finish(r CompensationResult) CompensationResult {
	total := decimal.Zero
	for _, e := range r.Elements {
		total = total.Add(e.Amount)
	}
	r.Total = total
	return r
}
