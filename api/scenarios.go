/*
scenarios.go - Demo worker profiles

PURPOSE:
  Ready-made profiles covering the interesting shapes of the rule system,
  for demos and manual QA. Each scenario names a profile, the agreement
  it runs with, and a short description of what it demonstrates.

SCENARIOS:
  entry-operator:     Lowest class, no seniority, convention only
  senior-technician:  Non-exempt with a convention seniority bonus
  night-crew:         Night and Sunday hours under the Metalux agreement
  junior-engineer:    Junior-eligible exempt class on the junior schedule
  confirmed-manager:  Exempt tier, days-based exemption

SEE ALSO:
  - handlers.go: ListScenarios / RunScenario endpoints
  - agreement/agreement.go: The presets the scenarios reference
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warp/pay-engine/agreement"
	"github.com/warp/pay-engine/convention"
	"github.com/warp/pay-engine/engine"
)

// Scenario is one demo profile.
type Scenario struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Profile     ProfileDTO `json:"profile"`
	AgreementID string     `json:"agreement_id,omitempty"`
}

var demoScenarios = []Scenario{
	{
		ID:          "entry-operator",
		Name:        "Entry-level operator",
		Description: "Lowest class, no seniority, convention only: total equals the base salary.",
		Profile: ProfileDTO{
			Scores:          [6]int{1, 1, 1, 1, 1, 1},
			SeniorityYears:  0,
			ExperienceYears: 0,
		},
	},
	{
		ID:          "senior-technician",
		Name:        "Senior technician",
		Description: "Ten years of seniority on a mid class: convention seniority bonus applies.",
		Profile: ProfileDTO{
			Scores:          [6]int{4, 4, 4, 4, 4, 4},
			SeniorityYears:  10,
			ExperienceYears: 14,
		},
	},
	{
		ID:          "night-crew",
		Name:        "Night crew under Metalux",
		Description: "Night-shift and Sunday hours plus the shift bonus under the company agreement.",
		Profile: ProfileDTO{
			Scores:           [6]int{5, 5, 5, 5, 5, 5},
			SeniorityYears:   6,
			ExperienceYears:  9,
			NightType:        "night_shift",
			NightHours:       60,
			SundayHours:      16,
			ShiftHours:       151.67,
			AgreementEnabled: true,
			AgreementInputs: map[string]AgreementInputDTO{
				agreement.KeyShiftWork:     {Bool: true},
				agreement.KeyVacationBonus: {Bool: true},
			},
		},
		AgreementID: "metalux",
	},
	{
		ID:          "junior-engineer",
		Name:        "Junior engineer",
		Description: "Junior-eligible exempt class with four years of experience: junior schedule base.",
		Profile: ProfileDTO{
			Scores:          [6]int{8, 8, 8, 8, 7, 7},
			SeniorityYears:  2,
			ExperienceYears: 4,
			Schedule:        "days_exemption",
		},
	},
	{
		ID:          "confirmed-manager",
		Name:        "Confirmed manager",
		Description: "Exempt tier on the days-based exemption: upgrade applies, hour surcharges do not.",
		Profile: ProfileDTO{
			Scores:          [6]int{9, 9, 9, 9, 8, 8},
			SeniorityYears:  12,
			ExperienceYears: 18,
			Schedule:        "days_exemption",
		},
	},
}

// ListScenarios returns the demo scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, demoScenarios)
}

// RunScenario computes one demo scenario in full mode.
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, sc := range demoScenarios {
		if sc.ID != id {
			continue
		}
		terms, err := h.resolveAgreement(r.Context(), sc.AgreementID)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		profile := profileFromDTO(sc.Profile)
		if profile.PointValue.IsZero() {
			profile.PointValue = convention.DefaultPointValue
		}
		result := engine.ComputeAnnual(profile, terms, engine.ModeFull, h.Catalog)
		writeJSON(w, http.StatusOK, compensationToDTO(result))
		return
	}
	writeError(w, http.StatusNotFound, "unknown scenario: "+id)
}
