/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's decimal-based domain model from the external API contract,
  allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY AT THE BOUNDARY:
  Engine amounts are decimal.Decimal; DTOs carry them as JSON numbers.
  The lossy float conversion happens only here, on already-rounded
  values, never inside a computation.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/agreement.go: AgreementJSON type reused for agreement configs
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/pay-engine/engine"
	"github.com/warp/pay-engine/factory"
)

// =============================================================================
// PROFILE
// =============================================================================

// AgreementInputDTO is one agreement-specific input value.
type AgreementInputDTO struct {
	Bool   bool    `json:"bool,omitempty"`
	Number float64 `json:"number,omitempty"`
}

// ProfileDTO is the wire form of a worker profile.
type ProfileDTO struct {
	Scores      [6]int `json:"scores"`
	ManualClass bool   `json:"manual_class,omitempty"`
	ManualGroup string `json:"manual_group,omitempty"` // "A".."I"
	ManualLevel int    `json:"manual_level,omitempty"` // 1..18

	SeniorityYears  float64 `json:"seniority_years"`
	ExperienceYears float64 `json:"experience_years"`

	Schedule    string  `json:"schedule,omitempty"`   // standard, hours_exemption, days_exemption
	NightType   string  `json:"night_type,omitempty"` // none, night_shift, early_late
	NightHours  float64 `json:"night_hours,omitempty"`
	SundayHours float64 `json:"sunday_hours,omitempty"`
	ShiftHours  float64 `json:"shift_hours,omitempty"`

	AgreementEnabled bool                         `json:"agreement_enabled,omitempty"`
	AgreementInputs  map[string]AgreementInputDTO `json:"agreement_inputs,omitempty"`

	PointValue float64 `json:"point_value,omitempty"`
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// ClassifyRequest carries the six criteria scores.
type ClassifyRequest struct {
	Scores [6]int `json:"scores"`
}

// ClassificationDTO is the classification display shape.
type ClassificationDTO struct {
	Group  string `json:"group"`
	Class  int    `json:"class"`
	Exempt bool   `json:"exempt"`
}

// =============================================================================
// COMPENSATION
// =============================================================================

// ComputeRequest asks for an annual compensation estimate.
type ComputeRequest struct {
	Profile     ProfileDTO `json:"profile"`
	AgreementID string     `json:"agreement_id,omitempty"` // empty = convention only
}

// ElementDTO is one applied line item.
type ElementDTO struct {
	ID          string  `json:"id,omitempty"`
	Amount      float64 `json:"amount"`
	Label       string  `json:"label"`
	Source      string  `json:"source"`
	SemanticID  string  `json:"semantic_id,omitempty"`
	RatePercent float64 `json:"rate_percent,omitempty"`
	Hours       float64 `json:"hours,omitempty"`
	Years       int     `json:"years,omitempty"`
}

// CompensationDTO is the full line-itemized result.
type CompensationDTO struct {
	Scenario   string            `json:"scenario"`
	BaseSalary float64           `json:"base_salary"`
	Elements   []ElementDTO      `json:"elements"`
	Total      float64           `json:"total"`
	Class      ClassificationDTO `json:"classification"`
}

// =============================================================================
// ARREARS
// =============================================================================

// ArrearsRequest asks for a retroactive underpayment replay.
type ArrearsRequest struct {
	Start           string  `json:"start"` // "YYYY-MM"
	End             string  `json:"end"`   // "YYYY-MM"
	HireDate        string  `json:"hire_date"`
	ClassChangeDate *string `json:"class_change_date,omitempty"`

	DeclaredPay map[string]float64 `json:"declared_pay"` // "YYYY-MM" -> gross paid

	Profile     ProfileDTO `json:"profile"`
	AgreementID string     `json:"agreement_id,omitempty"`
	FloorOnly   bool       `json:"floor_only,omitempty"`
}

// PeriodRowDTO is one replayed month.
type PeriodRowDTO struct {
	Month      string  `json:"month"`
	Owed       float64 `json:"owed"`
	Declared   float64 `json:"declared"`
	Difference float64 `json:"difference"`
}

// ArrearsDTO aggregates a replay.
type ArrearsDTO struct {
	TotalShortfall float64        `json:"total_shortfall"`
	Shortfalls     []PeriodRowDTO `json:"shortfall_rows"`
	Rows           []PeriodRowDTO `json:"rows"`
}

// =============================================================================
// AGREEMENTS
// =============================================================================

// AgreementDTO describes one registered agreement.
type AgreementDTO struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Preset    bool                   `json:"preset"`
	Config    *factory.AgreementJSON `json:"config,omitempty"`
	CreatedAt string                 `json:"created_at,omitempty"`
}

// CreateAgreementRequest uploads an agreement config.
type CreateAgreementRequest struct {
	Config factory.AgreementJSON `json:"config"`
}

// =============================================================================
// ESTIMATE HISTORY
// =============================================================================

// EstimateDTO is one entry of the computation history.
type EstimateDTO struct {
	ID        int64  `json:"id"`
	Kind      string `json:"kind"`
	CreatedAt string `json:"created_at"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func profileFromDTO(dto ProfileDTO) engine.WorkerProfile {
	p := engine.WorkerProfile{
		Scores:           dto.Scores,
		ManualClass:      dto.ManualClass,
		ManualLevel:      dto.ManualLevel,
		SeniorityYears:   dec(dto.SeniorityYears),
		ExperienceYears:  dec(dto.ExperienceYears),
		Schedule:         engine.ScheduleStandard,
		NightType:        engine.NightNone,
		NightHours:       dec(dto.NightHours),
		SundayHours:      dec(dto.SundayHours),
		ShiftHours:       dec(dto.ShiftHours),
		AgreementEnabled: dto.AgreementEnabled,
		PointValue:       dec(dto.PointValue),
	}
	if dto.ManualGroup != "" {
		p.ManualGroup = dto.ManualGroup[0]
	}
	if dto.Schedule != "" {
		p.Schedule = engine.ScheduleType(dto.Schedule)
	}
	if dto.NightType != "" {
		p.NightType = engine.NightWorkType(dto.NightType)
	}
	if len(dto.AgreementInputs) > 0 {
		p.AgreementInputs = make(map[string]engine.AgreementInput, len(dto.AgreementInputs))
		for k, v := range dto.AgreementInputs {
			p.AgreementInputs[k] = engine.AgreementInput{Bool: v.Bool, Number: dec(v.Number)}
		}
	}
	return p
}

func classificationToDTO(c engine.Classification) ClassificationDTO {
	return ClassificationDTO{
		Group:  string(c.Group),
		Class:  c.Class,
		Exempt: engine.IsExemptTier(c.Class),
	}
}

func compensationToDTO(r engine.CompensationResult) CompensationDTO {
	out := CompensationDTO{
		Scenario:   string(r.Scenario),
		BaseSalary: r.BaseSalary.InexactFloat64(),
		Total:      r.Total.InexactFloat64(),
		Class:      classificationToDTO(r.Class),
	}
	for _, e := range r.Elements {
		out.Elements = append(out.Elements, ElementDTO{
			ID:          e.ID,
			Amount:      e.Amount.InexactFloat64(),
			Label:       e.Label,
			Source:      string(e.Source),
			SemanticID:  string(e.SemanticID),
			RatePercent: e.Meta.RatePercent.InexactFloat64(),
			Hours:       e.Meta.Hours.InexactFloat64(),
			Years:       e.Meta.Years,
		})
	}
	return out
}

func arrearsToDTO(r engine.ReplayResult) ArrearsDTO {
	out := ArrearsDTO{TotalShortfall: r.TotalShortfall.InexactFloat64()}
	for _, row := range r.Rows {
		out.Rows = append(out.Rows, periodRowToDTO(row))
	}
	for _, row := range r.Shortfalls {
		out.Shortfalls = append(out.Shortfalls, periodRowToDTO(row))
	}
	return out
}

func periodRowToDTO(row engine.PeriodRow) PeriodRowDTO {
	return PeriodRowDTO{
		Month:      row.Month,
		Owed:       row.Owed.InexactFloat64(),
		Declared:   row.Declared.InexactFloat64(),
		Difference: row.Difference.InexactFloat64(),
	}
}
