/*
Package factory provides JSON to Go agreement conversion.

PURPOSE:
  Converts JSON agreement definitions into engine.AgreementTerms. This
  enables agreement configuration without code changes - HR can define a
  company agreement in JSON, and the factory creates the proper Go
  structs. New agreements never require new engine code, only new
  catalog entries.

WHY JSON?
  - Non-developers can modify agreements
  - Easy integration with an admin UI
  - Version control for agreement definitions
  - Database storage of agreement configs

JSON SCHEMA:
  {
    "id": "metalux",
    "name": "Metalux company agreement",
    "seniority": {
      "threshold_years": 2,
      "cap_years": 25,
      "rate_steps": [{"years": 2, "rate_percent": 2}, ...],
      "all_tiers": true
    },
    "night_shift_rate_percent": 25,
    "night_early_late_rate_percent": 10,
    "sunday_rate_percent": 120,
    "bonuses": [
      {"id": "shift", "value_kind": "hourly_rate",
       "activation_key": "shift_work", "hourly_rate": 0.85},
      {"id": "vacation", "value_kind": "fixed_amount", "amount": 450,
       "min_seniority_years": 1, "reference_month": 6, "reference_day": 1,
       "paid_in_month": 6}
    ],
    "thirteen_months": {"double_month": 11}
  }

VALIDATION:
  Malformed definitions fail here, once, at load time. The engine's
  computers then trust definitions and stay fail-soft per call.

SEE ALSO:
  - engine/types.go: AgreementTerms definition
  - agreement/agreement.go: Code-defined presets
  - api/handlers.go: Agreement upload endpoint
*/
package factory

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/pay-engine/engine"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// AgreementJSON is the JSON representation of a company agreement.
type AgreementJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Seniority *SeniorityJSON `json:"seniority,omitempty"`

	NightShiftRatePercent     *float64 `json:"night_shift_rate_percent,omitempty"`
	NightEarlyLateRatePercent *float64 `json:"night_early_late_rate_percent,omitempty"`
	SundayRatePercent         *float64 `json:"sunday_rate_percent,omitempty"`

	Bonuses []BonusJSON `json:"bonuses,omitempty"`

	ThirteenMonths *ThirteenMonthsJSON `json:"thirteen_months,omitempty"`
}

// SeniorityJSON represents an agreement's seniority-bonus configuration.
type SeniorityJSON struct {
	ThresholdYears int            `json:"threshold_years"`
	CapYears       int            `json:"cap_years"`
	RateSteps      []RateStepJSON `json:"rate_steps"`
	AllTiers       bool           `json:"all_tiers,omitempty"`
}

// RateStepJSON is one entry of the sparse years-to-rate table.
type RateStepJSON struct {
	Years       int     `json:"years"`
	RatePercent float64 `json:"rate_percent"`
}

// BonusJSON represents one declared bonus, self-describing its value kind.
type BonusJSON struct {
	ID        string `json:"id"`
	Label     string `json:"label,omitempty"`
	ValueKind string `json:"value_kind"` // hourly_rate or fixed_amount

	ActivationKey string   `json:"activation_key,omitempty"`
	HoursKey      string   `json:"hours_key,omitempty"`
	HourlyRate    *float64 `json:"hourly_rate,omitempty"`

	Amount            *float64 `json:"amount,omitempty"`
	MinSeniorityYears *float64 `json:"min_seniority_years,omitempty"`
	ReferenceMonth    int      `json:"reference_month,omitempty"` // 1-12
	ReferenceDay      int      `json:"reference_day,omitempty"`
	PaidInMonth       int      `json:"paid_in_month,omitempty"` // 1-12, 0 = spread
}

// ThirteenMonthsJSON enables the 13-payment spread.
type ThirteenMonthsJSON struct {
	DoubleMonth int `json:"double_month"` // 1-12
}

// =============================================================================
// FACTORY
// =============================================================================

// AgreementFactory converts JSON definitions into engine terms.
type AgreementFactory struct{}

// NewAgreementFactory creates an agreement factory.
func NewAgreementFactory() *AgreementFactory { return &AgreementFactory{} }

// ParseAgreement parses and validates a JSON agreement definition.
func (f *AgreementFactory) ParseAgreement(data string) (*engine.AgreementTerms, error) {
	var spec AgreementJSON
	if err := json.Unmarshal([]byte(data), &spec); err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrMalformedAgreement, err)
	}
	return f.Build(spec)
}

// Build converts an already-decoded definition, applying validation and
// defaults.
func (f *AgreementFactory) Build(spec AgreementJSON) (*engine.AgreementTerms, error) {
	if spec.ID == "" {
		return nil, fmt.Errorf("%w: missing id", engine.ErrMalformedAgreement)
	}
	if spec.Name == "" {
		spec.Name = spec.ID
	}

	terms := &engine.AgreementTerms{
		ID:   spec.ID,
		Name: spec.Name,
	}

	if spec.Seniority != nil {
		sen, err := buildSeniority(spec.Seniority)
		if err != nil {
			return nil, err
		}
		terms.Seniority = sen
	}

	terms.NightShiftRatePercent = rate(spec.NightShiftRatePercent)
	terms.NightEarlyLateRatePercent = rate(spec.NightEarlyLateRatePercent)
	terms.SundayRatePercent = rate(spec.SundayRatePercent)

	for _, b := range spec.Bonuses {
		def, err := buildBonus(spec.ID, b)
		if err != nil {
			return nil, err
		}
		terms.Bonuses = append(terms.Bonuses, def)
	}

	if spec.ThirteenMonths != nil {
		m := spec.ThirteenMonths.DoubleMonth
		if m < 1 || m > 12 {
			return nil, fmt.Errorf("%w: double_month %d out of range", engine.ErrMalformedAgreement, m)
		}
		terms.ThirteenMonths = &engine.ThirteenMonthSpec{DoubleMonth: time.Month(m)}
	}

	return terms, nil
}

func buildSeniority(spec *SeniorityJSON) (*engine.SenioritySpec, error) {
	if spec.CapYears < spec.ThresholdYears {
		return nil, fmt.Errorf("%w: seniority cap %d below threshold %d",
			engine.ErrMalformedAgreement, spec.CapYears, spec.ThresholdYears)
	}
	if len(spec.RateSteps) == 0 {
		return nil, fmt.Errorf("%w: seniority with no rate steps", engine.ErrMalformedAgreement)
	}
	steps := make([]engine.RateStep, 0, len(spec.RateSteps))
	for _, s := range spec.RateSteps {
		if s.RatePercent < 0 {
			return nil, fmt.Errorf("%w: negative rate at %d years", engine.ErrMalformedAgreement, s.Years)
		}
		steps = append(steps, engine.RateStep{
			Years:       s.Years,
			RatePercent: decimal.NewFromFloat(s.RatePercent),
		})
	}
	// The sparse lookup requires ascending steps.
	sort.Slice(steps, func(i, j int) bool { return steps[i].Years < steps[j].Years })
	return &engine.SenioritySpec{
		ThresholdYears: spec.ThresholdYears,
		CapYears:       spec.CapYears,
		RateSteps:      steps,
		AllTiers:       spec.AllTiers,
	}, nil
}

func buildBonus(agreementID string, b BonusJSON) (engine.ElementDefinition, error) {
	var zero engine.ElementDefinition
	if b.ID == "" {
		return zero, fmt.Errorf("%w: bonus missing id", engine.ErrMalformedAgreement)
	}
	label := b.Label
	if label == "" {
		label = b.ID
	}
	def := engine.ElementDefinition{
		ID:     agreementID + "-" + b.ID,
		Kind:   engine.KindBonus,
		Source: engine.SourceAgreement,
		Label:  label,
	}

	switch engine.ValueKind(b.ValueKind) {
	case engine.ValueHourlyRate:
		if b.HourlyRate == nil {
			return zero, fmt.Errorf("%w: hourly bonus %q missing hourly_rate", engine.ErrMalformedAgreement, b.ID)
		}
		def.ValueKind = engine.ValueHourlyRate
		def.SemanticID = engine.SemanticShift
		def.Agreement = &engine.AgreementElementConfig{
			ActivationKey: b.ActivationKey,
			HoursKey:      b.HoursKey,
			HourlyRate:    decimal.NewFromFloat(*b.HourlyRate),
		}
	case engine.ValueFixedAmount:
		if b.Amount == nil {
			return zero, fmt.Errorf("%w: fixed bonus %q missing amount", engine.ErrMalformedAgreement, b.ID)
		}
		if b.PaidInMonth < 0 || b.PaidInMonth > 12 {
			return zero, fmt.Errorf("%w: paid_in_month %d out of range", engine.ErrMalformedAgreement, b.PaidInMonth)
		}
		cfg := &engine.AgreementElementConfig{
			ActivationKey: b.ActivationKey,
			Amount:        decimal.NewFromFloat(*b.Amount),
			PaidInMonth:   time.Month(b.PaidInMonth),
		}
		if b.MinSeniorityYears != nil {
			cfg.MinSeniorityYears = decimal.NewFromFloat(*b.MinSeniorityYears)
			cfg.ReferenceMonth = time.Month(b.ReferenceMonth)
			cfg.ReferenceDay = b.ReferenceDay
		}
		def.ValueKind = engine.ValueFixedAmount
		def.Agreement = cfg
	default:
		return zero, fmt.Errorf("%w: bonus %q has unknown value_kind %q", engine.ErrMalformedAgreement, b.ID, b.ValueKind)
	}
	return def, nil
}

func rate(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}

// Encode serializes terms back to the JSON schema, the inverse of
// ParseAgreement for storage and API responses.
func Encode(terms *engine.AgreementTerms) (string, error) {
	spec := AgreementJSON{ID: terms.ID, Name: terms.Name}

	if terms.Seniority != nil {
		sen := &SeniorityJSON{
			ThresholdYears: terms.Seniority.ThresholdYears,
			CapYears:       terms.Seniority.CapYears,
			AllTiers:       terms.Seniority.AllTiers,
		}
		for _, s := range terms.Seniority.RateSteps {
			sen.RateSteps = append(sen.RateSteps, RateStepJSON{
				Years:       s.Years,
				RatePercent: s.RatePercent.InexactFloat64(),
			})
		}
		spec.Seniority = sen
	}

	spec.NightShiftRatePercent = optRate(terms.NightShiftRatePercent)
	spec.NightEarlyLateRatePercent = optRate(terms.NightEarlyLateRatePercent)
	spec.SundayRatePercent = optRate(terms.SundayRatePercent)

	for _, def := range terms.Bonuses {
		cfg := def.Agreement
		if cfg == nil {
			continue
		}
		b := BonusJSON{
			ID:            def.ID,
			Label:         def.Label,
			ValueKind:     string(def.ValueKind),
			ActivationKey: cfg.ActivationKey,
			HoursKey:      cfg.HoursKey,
		}
		switch def.ValueKind {
		case engine.ValueHourlyRate:
			b.HourlyRate = optRate(cfg.HourlyRate)
		case engine.ValueFixedAmount:
			b.Amount = optRate(cfg.Amount)
			b.MinSeniorityYears = optRate(cfg.MinSeniorityYears)
			b.ReferenceMonth = int(cfg.ReferenceMonth)
			b.ReferenceDay = cfg.ReferenceDay
			b.PaidInMonth = int(cfg.PaidInMonth)
		}
		spec.Bonuses = append(spec.Bonuses, b)
	}

	if terms.ThirteenMonths != nil {
		spec.ThirteenMonths = &ThirteenMonthsJSON{DoubleMonth: int(terms.ThirteenMonths.DoubleMonth)}
	}

	out, err := json.Marshal(spec)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func optRate(d decimal.Decimal) *float64 {
	if d.IsZero() {
		return nil
	}
	v := d.InexactFloat64()
	return &v
}
