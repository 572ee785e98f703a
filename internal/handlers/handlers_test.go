package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/seawander/stiscoron/internal/models"
	"github.com/seawander/stiscoron/internal/occulter"
	"github.com/seawander/stiscoron/internal/pointing"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	cat, err := occulter.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return New(cat)
}

func TestHandleMasks(t *testing.T) {
	h := newHandler(t)

	req := httptest.NewRequest("GET", "/api/masks", nil)
	rec := httptest.NewRecorder()
	h.HandleMasks(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var masks []maskInfo
	if err := json.NewDecoder(rec.Body).Decode(&masks); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(masks) != len(occulter.Names()) {
		t.Errorf("Expected %d masks, got %d", len(occulter.Names()), len(masks))
	}
}

func TestHandleVisibility(t *testing.T) {
	h := newHandler(t)

	tests := []struct {
		name         string
		url          string
		expectedCode int
		occulted     bool
	}{
		{name: "nominal BAR5", url: "/api/visibility?mask=BAR5", expectedCode: http.StatusOK, occulted: true},
		{name: "offset away", url: "/api/visibility?mask=BAR5&postarg1=50", expectedCode: http.StatusOK, occulted: false},
		{name: "with orient", url: "/api/visibility?mask=WEDGEA2.0&orient=120", expectedCode: http.StatusOK, occulted: true},
		{name: "missing mask", url: "/api/visibility", expectedCode: http.StatusBadRequest},
		{name: "unknown mask", url: "/api/visibility?mask=BAR99", expectedCode: http.StatusBadRequest},
		{name: "bad number", url: "/api/visibility?mask=BAR5&orient=ninety", expectedCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.url, nil)
			rec := httptest.NewRecorder()
			h.HandleVisibility(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("Expected %d, got %d: %s", tt.expectedCode, rec.Code, rec.Body.String())
			}
			if tt.expectedCode != http.StatusOK {
				return
			}

			var res pointing.Result
			if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if res.Occulted != tt.occulted {
				t.Errorf("Expected occulted=%v, got %v", tt.occulted, res.Occulted)
			}
		})
	}
}

func TestHandleVisibilityUnknownMaskNamesValidSet(t *testing.T) {
	h := newHandler(t)

	req := httptest.NewRequest("GET", "/api/visibility?mask=BAR99", nil)
	rec := httptest.NewRecorder()
	h.HandleVisibility(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "BAR10") {
		t.Errorf("Error body should name the valid masks, got: %s", rec.Body.String())
	}
}

func TestHandleOverlay(t *testing.T) {
	h := newHandler(t)

	req := httptest.NewRequest("GET", "/api/overlay?mask=WEDGEB2.0&orient=45", nil)
	rec := httptest.NewRecorder()
	h.HandleOverlay(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %s", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("Expected non-empty PNG body")
	}
}

func TestPlanLifecycle(t *testing.T) {
	h := newHandler(t)

	body := `{"label":"beta pic visit","target":"beta Pic","pointings":[
		{"mask":"BAR5"},
		{"mask":"WEDGEA1.0","postarg1":50,"orient":90}
	]}`
	req := httptest.NewRequest("POST", "/api/plans", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandlePlans(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var plan models.PointingPlan
	if err := json.NewDecoder(rec.Body).Decode(&plan); err != nil {
		t.Fatalf("Failed to decode plan: %v", err)
	}
	if len(plan.Pointings) != 2 {
		t.Fatalf("Expected 2 pointings, got %d", len(plan.Pointings))
	}
	if !plan.Pointings[0].Occulted {
		t.Error("Nominal BAR5 pointing should be occulted")
	}
	if plan.Pointings[1].Occulted {
		t.Error("Far-offset pointing should not be occulted")
	}
	if len(plan.Pointings[1].Warnings) == 0 {
		t.Error("Far-offset pointing should carry a warning")
	}

	// Fetch it back.
	req = httptest.NewRequest("GET", "/api/plans/"+plan.ID, nil)
	rec = httptest.NewRecorder()
	h.HandlePlanDetail(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 on detail, got %d", rec.Code)
	}

	// Delete and confirm it is gone.
	req = httptest.NewRequest("DELETE", "/api/plans/"+plan.ID, nil)
	rec = httptest.NewRecorder()
	h.HandlePlanDetail(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected 204 on delete, got %d", rec.Code)
	}

	req = httptest.NewRequest("GET", "/api/plans/"+plan.ID, nil)
	rec = httptest.NewRecorder()
	h.HandlePlanDetail(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 after delete, got %d", rec.Code)
	}
}

func TestPlanValidation(t *testing.T) {
	h := newHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "{{{"},
		{name: "no pointings", body: `{"label":"empty"}`},
		{name: "unknown mask", body: `{"pointings":[{"mask":"BAR99"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/plans", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.HandlePlans(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
		})
	}
}
