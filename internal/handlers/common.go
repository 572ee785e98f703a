package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/seawander/stiscoron/internal/models"
	"github.com/seawander/stiscoron/internal/occulter"
	"github.com/seawander/stiscoron/internal/pointing"
	"github.com/seawander/stiscoron/internal/storage"
)

type Handler struct {
	catalog   *occulter.Catalog
	planStore *storage.PlanStore
}

func New(catalog *occulter.Catalog) *Handler {
	return &Handler{
		catalog:   catalog,
		planStore: storage.New(),
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Plan helpers
func (h *Handler) getPlanOrError(w http.ResponseWriter, planID string) (*models.PointingPlan, bool) {
	plan, exists := h.planStore.Get(planID)
	if !exists {
		h.writeError(w, "Plan not found", http.StatusNotFound)
		return nil, false
	}
	return plan, true
}

// parsePointing reads a pointing configuration from query parameters:
// mask (required), postarg1, postarg2, orient (optional, default 0).
func parsePointing(r *http.Request) (pointing.Config, error) {
	q := r.URL.Query()

	cfg := pointing.Config{Mask: q.Get("mask")}
	if cfg.Mask == "" {
		return cfg, fmt.Errorf("missing required parameter: mask")
	}

	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{name: "postarg1", dst: &cfg.PosTarg1},
		{name: "postarg2", dst: &cfg.PosTarg2},
		{name: "orient", dst: &cfg.Orient},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s: %q", p.name, raw)
		}
		*p.dst = v
	}

	return cfg, nil
}
