package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/pay-engine/factory"
	"github.com/warp/pay-engine/store/sqlite"
)

// =============================================================================
// TEST HARNESS
// =============================================================================

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewRouter(NewHandler(store))
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

func TestClassifyEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/classification",
		ClassifyRequest{Scores: [6]int{4, 4, 4, 4, 4, 4}})
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[ClassificationDTO](t, rec)
	assert.Equal(t, "C", got.Group)
	assert.Equal(t, 5, got.Class)
	assert.False(t, got.Exempt)
}

func TestClassifyEndpoint_InvalidScore(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/classification",
		ClassifyRequest{Scores: [6]int{0, 4, 4, 4, 4, 4}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

// =============================================================================
// COMPENSATION
// =============================================================================

func TestComputeEndpoint_ConventionOnly(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/compensation", ComputeRequest{
		Profile: ProfileDTO{Scores: [6]int{1, 1, 1, 1, 1, 1}},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[CompensationDTO](t, rec)
	assert.Equal(t, "non_exempt", got.Scenario)
	assert.Equal(t, float64(21640), got.Total)
	require.Len(t, got.Elements, 1)
	assert.Equal(t, "convention", got.Elements[0].Source)
}

func TestComputeEndpoint_PresetAgreement(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/compensation", ComputeRequest{
		Profile: ProfileDTO{
			Scores:           [6]int{4, 4, 4, 4, 4, 4},
			SeniorityYears:   5,
			AgreementEnabled: true,
		},
		AgreementID: "metalux",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[CompensationDTO](t, rec)
	var seniority *ElementDTO
	for i := range got.Elements {
		if got.Elements[i].SemanticID == "seniority_bonus" {
			seniority = &got.Elements[i]
		}
	}
	require.NotNil(t, seniority, "seniority line item missing")
	assert.Equal(t, "agreement", seniority.Source)
	assert.Equal(t, float64(1225), seniority.Amount)
}

func TestComputeFloorEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/compensation/floor", ComputeRequest{
		Profile: ProfileDTO{
			Scores:         [6]int{4, 4, 4, 4, 4, 4},
			SeniorityYears: 10,
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[CompensationDTO](t, rec)
	assert.Equal(t, "base_only", got.Scenario)
	assert.Equal(t, float64(24500), got.Total, "floor excludes the seniority bonus")
}

func TestComputeEndpoint_UnknownAgreement(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/compensation", ComputeRequest{
		Profile:     ProfileDTO{Scores: [6]int{4, 4, 4, 4, 4, 4}},
		AgreementID: "no-such-agreement",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// ARREARS
// =============================================================================

func TestArrearsEndpoint_FloorReplay(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/arrears", ArrearsRequest{
		Start:    "2024-01",
		End:      "2024-03",
		HireDate: "2024-01-01",
		DeclaredPay: map[string]float64{
			"2024-01": 1803.33,
			"2024-02": 1703.33,
			"2024-03": 1900,
		},
		Profile:   ProfileDTO{Scores: [6]int{1, 1, 1, 1, 1, 1}},
		FloorOnly: true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[ArrearsDTO](t, rec)
	assert.Equal(t, float64(100), got.TotalShortfall)
	assert.Len(t, got.Rows, 3)
	require.Len(t, got.Shortfalls, 1)
	assert.Equal(t, "2024-02", got.Shortfalls[0].Month)
}

func TestArrearsEndpoint_BadDates(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/arrears", ArrearsRequest{
		Start: "January 2024", End: "2024-03", HireDate: "2024-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/arrears", ArrearsRequest{
		Start: "2024-06", End: "2024-01", HireDate: "2024-01-01",
		DeclaredPay: map[string]float64{},
		Profile:     ProfileDTO{Scores: [6]int{1, 1, 1, 1, 1, 1}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "inverted range")
}

// =============================================================================
// AGREEMENTS
// =============================================================================

func uploadedAgreement() CreateAgreementRequest {
	rate := 3.0
	return CreateAgreementRequest{Config: factory.AgreementJSON{
		ID:   "acme",
		Name: "Acme works agreement",
		Seniority: &factory.SeniorityJSON{
			ThresholdYears: 2,
			CapYears:       20,
			RateSteps:      []factory.RateStepJSON{{Years: 2, RatePercent: rate}},
		},
	}}
}

func TestAgreementLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// Presets are always listed.
	rec := doJSON(t, router, http.MethodGet, "/api/agreements", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decode[[]AgreementDTO](t, rec)
	ids := map[string]bool{}
	for _, a := range listed {
		ids[a.ID] = true
	}
	assert.True(t, ids["metalux"] && ids["plain-bareme"])

	// Upload, fetch, use, delete.
	rec = doJSON(t, router, http.MethodPost, "/api/agreements", uploadedAgreement())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/agreements/acme", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[AgreementDTO](t, rec)
	assert.Equal(t, "Acme works agreement", got.Name)
	assert.False(t, got.Preset)
	require.NotNil(t, got.Config)
	assert.Equal(t, 20, got.Config.Seniority.CapYears)

	rec = doJSON(t, router, http.MethodPost, "/api/compensation", ComputeRequest{
		Profile: ProfileDTO{
			Scores:           [6]int{4, 4, 4, 4, 4, 4},
			SeniorityYears:   4,
			AgreementEnabled: true,
		},
		AgreementID: "acme",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	comp := decode[CompensationDTO](t, rec)
	var found bool
	for _, e := range comp.Elements {
		if e.SemanticID == "seniority_bonus" && e.Source == "agreement" {
			found = true
			assert.Equal(t, float64(735), e.Amount, "24500 * 3%")
		}
	}
	assert.True(t, found, "uploaded agreement must price computations")

	rec = doJSON(t, router, http.MethodDelete, "/api/agreements/acme", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/agreements/acme", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAgreements_PresetProtection(t *testing.T) {
	router := newTestRouter(t)

	collision := uploadedAgreement()
	collision.Config.ID = "metalux"
	rec := doJSON(t, router, http.MethodPost, "/api/agreements", collision)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/agreements/metalux", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAgreement_Malformed(t *testing.T) {
	router := newTestRouter(t)

	bad := uploadedAgreement()
	bad.Config.Seniority.RateSteps = nil
	rec := doJSON(t, router, http.MethodPost, "/api/agreements", bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// SCENARIOS AND HISTORY
// =============================================================================

func TestScenarioEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/scenarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	scenarios := decode[[]Scenario](t, rec)
	assert.Len(t, scenarios, 5)

	rec = doJSON(t, router, http.MethodPost, "/api/scenarios/entry-operator/run", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[CompensationDTO](t, rec)
	assert.Equal(t, float64(21640), got.Total)

	rec = doJSON(t, router, http.MethodPost, "/api/scenarios/nope/run", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEstimateHistoryRecordsComputations(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/compensation", ComputeRequest{
		Profile: ProfileDTO{Scores: [6]int{1, 1, 1, 1, 1, 1}},
	})

	rec := doJSON(t, router, http.MethodGet, "/api/estimates?kind=compensation", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := decode[[]EstimateDTO](t, rec)
	require.NotEmpty(t, history)
	assert.Equal(t, "compensation", history[0].Kind)
}

func TestResetClearsUploadsAndHistory(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/agreements", uploadedAgreement())
	require.Equal(t, http.StatusCreated, rec.Code)
	doJSON(t, router, http.MethodPost, "/api/compensation", ComputeRequest{
		Profile: ProfileDTO{Scores: [6]int{1, 1, 1, 1, 1, 1}},
	})

	rec = doJSON(t, router, http.MethodPost, "/api/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/agreements/acme", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/estimates", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]EstimateDTO](t, rec))

	// Presets are code-defined and survive.
	rec = doJSON(t, router, http.MethodGet, "/api/agreements/metalux", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
