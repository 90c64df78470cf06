/*
handlers.go - HTTP API handlers for the pay estimation service

PURPOSE:
  Exposes the compensation engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the engine.

ENDPOINTS:
  Classification:
    POST   /api/classification       Score six criteria into (group, class)

  Compensation:
    POST   /api/compensation         Full annual estimate
    POST   /api/compensation/floor   Regulatory minimum (base-only mode)

  Arrears:
    POST   /api/arrears              Month-by-month underpayment replay

  Agreements:
    GET    /api/agreements           List presets + uploaded agreements
    POST   /api/agreements           Upload an agreement config (JSON)
    GET    /api/agreements/{id}      Get one agreement
    DELETE /api/agreements/{id}      Remove an uploaded agreement

  Scenarios:
    GET    /api/scenarios            List demo worker profiles
    POST   /api/scenarios/{id}/run   Compute a demo profile

  History:
    GET    /api/estimates            Recent served computations

  Admin:
    POST   /api/reset                Clear uploaded agreements + history (dev only)

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: agreement registry and estimate history
  - Factory: JSON to AgreementTerms conversion
  - Catalog: the convention rule catalog (immutable)
  - Presets: built-in agreements

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call the engine
  4. Record the estimate
  5. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Agreement not found
  - 500: Internal errors
  Engine-level degraded results (ScenarioError) are NOT HTTP errors: the
  client receives the degraded shape and renders "insufficient
  information to compute".

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo profiles
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/warp/pay-engine/agreement"
	"github.com/warp/pay-engine/convention"
	"github.com/warp/pay-engine/engine"
	"github.com/warp/pay-engine/factory"
	"github.com/warp/pay-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Factory *factory.AgreementFactory
	Catalog engine.Catalog

	presets map[string]*engine.AgreementTerms
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:   store,
		Factory: factory.NewAgreementFactory(),
		Catalog: convention.Catalog(),
		presets: agreement.Presets(),
	}
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	class, err := engine.Classify(req.Scores)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, classificationToDTO(class))
}

// =============================================================================
// COMPENSATION
// =============================================================================

func (h *Handler) Compute(w http.ResponseWriter, r *http.Request) {
	h.compute(w, r, engine.ModeFull, "compensation")
}

func (h *Handler) ComputeFloor(w http.ResponseWriter, r *http.Request) {
	h.compute(w, r, engine.ModeBaseOnly, "floor")
}

func (h *Handler) compute(w http.ResponseWriter, r *http.Request, mode engine.Mode, kind string) {
	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	terms, err := h.resolveAgreement(r.Context(), req.AgreementID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	profile := profileFromDTO(req.Profile)
	if profile.PointValue.IsZero() {
		profile.PointValue = convention.DefaultPointValue
	}

	result := engine.ComputeAnnual(profile, terms, mode, h.Catalog)
	dto := compensationToDTO(result)
	h.record(r.Context(), kind, req, dto)
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// ARREARS
// =============================================================================

func (h *Handler) Arrears(w http.ResponseWriter, r *http.Request) {
	var req ArrearsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	start, err := time.Parse(engine.MonthKeyLayout, req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start must be YYYY-MM")
		return
	}
	end, err := time.Parse(engine.MonthKeyLayout, req.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, "end must be YYYY-MM")
		return
	}
	hire, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "hire_date must be YYYY-MM-DD")
		return
	}

	in := engine.ReplayInput{
		Start:     start,
		End:       end,
		HireDate:  hire,
		FloorOnly: req.FloorOnly,
	}
	if req.ClassChangeDate != nil {
		changed, err := time.Parse("2006-01-02", *req.ClassChangeDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "class_change_date must be YYYY-MM-DD")
			return
		}
		in.ClassChangeDate = &changed
	}

	terms, err := h.resolveAgreement(r.Context(), req.AgreementID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	in.Terms = terms

	in.Profile = profileFromDTO(req.Profile)
	if in.Profile.PointValue.IsZero() {
		in.Profile.PointValue = convention.DefaultPointValue
	}

	in.DeclaredPay = make(map[string]decimal.Decimal, len(req.DeclaredPay))
	for month, paid := range req.DeclaredPay {
		in.DeclaredPay[month] = dec(paid)
	}

	result, err := engine.Replay(in, h.Catalog)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dto := arrearsToDTO(result)
	h.record(r.Context(), "arrears", req, dto)
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// AGREEMENTS
// =============================================================================

func (h *Handler) ListAgreements(w http.ResponseWriter, r *http.Request) {
	var out []AgreementDTO
	for id, terms := range h.presets {
		out = append(out, AgreementDTO{ID: id, Name: terms.Name, Preset: true})
	}
	records, err := h.Store.ListAgreements(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for _, rec := range records {
		out = append(out, AgreementDTO{
			ID:        rec.ID,
			Name:      rec.Name,
			CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateAgreement(w http.ResponseWriter, r *http.Request) {
	var req CreateAgreementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	terms, err := h.Factory.Build(req.Config)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, exists := h.presets[terms.ID]; exists {
		writeError(w, http.StatusBadRequest, "id collides with a preset agreement")
		return
	}
	configJSON, err := factory.Encode(terms)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rec := sqlite.AgreementRecord{ID: terms.ID, Name: terms.Name, ConfigJSON: configJSON}
	if err := h.Store.SaveAgreement(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, AgreementDTO{ID: terms.ID, Name: terms.Name, Config: &req.Config})
}

func (h *Handler) GetAgreement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if terms, ok := h.presets[id]; ok {
		writeJSON(w, http.StatusOK, AgreementDTO{ID: id, Name: terms.Name, Preset: true})
		return
	}
	rec, err := h.Store.GetAgreement(r.Context(), id)
	if errors.Is(err, sqlite.ErrNotFound) {
		writeError(w, http.StatusNotFound, "agreement not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	var config factory.AgreementJSON
	if err := json.Unmarshal([]byte(rec.ConfigJSON), &config); err != nil {
		writeError(w, http.StatusInternalServerError, "stored config is corrupt")
		return
	}
	writeJSON(w, http.StatusOK, AgreementDTO{
		ID:        rec.ID,
		Name:      rec.Name,
		Config:    &config,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
	})
}

func (h *Handler) DeleteAgreement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.presets[id]; ok {
		writeError(w, http.StatusBadRequest, "preset agreements cannot be deleted")
		return
	}
	if err := h.Store.DeleteAgreement(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// resolveAgreement maps an agreement ID to terms: empty means convention
// only, presets first, then the store.
func (h *Handler) resolveAgreement(ctx context.Context, id string) (*engine.AgreementTerms, error) {
	if id == "" {
		return nil, nil
	}
	if terms, ok := h.presets[id]; ok {
		return terms, nil
	}
	rec, err := h.Store.GetAgreement(ctx, id)
	if errors.Is(err, sqlite.ErrNotFound) {
		return nil, errors.New("agreement not found: " + id)
	}
	if err != nil {
		return nil, err
	}
	return h.Factory.ParseAgreement(rec.ConfigJSON)
}

// =============================================================================
// ESTIMATE HISTORY
// =============================================================================

func (h *Handler) ListEstimates(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	records, err := h.Store.ListEstimates(r.Context(), kind, 50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := []EstimateDTO{}
	for _, rec := range records {
		out = append(out, EstimateDTO{
			ID:        rec.ID,
			Kind:      rec.Kind,
			CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// record appends the computation to the history. History failures are not
// surfaced to the client: the estimate itself succeeded.
func (h *Handler) record(ctx context.Context, kind string, req, result any) {
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return
	}
	resJSON, err := json.Marshal(result)
	if err != nil {
		return
	}
	_, _ = h.Store.AppendEstimate(ctx, sqlite.EstimateRecord{
		Kind:        kind,
		RequestJSON: string(reqJSON),
		ResultJSON:  string(resJSON),
	})
}

// ResetDatabase clears uploaded agreements and the estimate history. Dev
// and demo tooling only; presets are code-defined and unaffected.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
