package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/seawander/stiscoron/internal/models"
	"github.com/seawander/stiscoron/internal/pointing"
)

// planRequest is the POST /api/plans body: a label plus the candidate
// pointings to evaluate and keep together.
type planRequest struct {
	Label     string            `json:"label"`
	Target    string            `json:"target"`
	Pointings []pointing.Config `json:"pointings"`
}

func (h *Handler) HandlePlans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		plans := h.planStore.GetAll()
		planList := make([]*models.PointingPlan, 0, len(plans))
		for _, plan := range plans {
			planList = append(planList, plan)
		}
		h.writeJSON(w, planList)
	case "POST":
		var req planRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		if len(req.Pointings) == 0 {
			h.writeError(w, "A plan needs at least one pointing", http.StatusBadRequest)
			return
		}

		plan := &models.PointingPlan{
			ID:        fmt.Sprintf("plan_%d", time.Now().UnixNano()),
			Label:     req.Label,
			Target:    req.Target,
			CreatedAt: time.Now(),
		}
		for _, cfg := range req.Pointings {
			res, err := pointing.Evaluate(h.catalog, cfg)
			if err != nil {
				h.writeError(w, err.Error(), http.StatusBadRequest)
				return
			}
			plan.Pointings = append(plan.Pointings, models.PlanPointing{
				Config:      cfg,
				Occulted:    res.Occulted,
				OffDetector: res.OffDetector,
				Warnings:    res.Warnings,
			})
		}

		h.planStore.Set(plan.ID, plan)
		h.writeJSON(w, plan)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) HandlePlanDetail(w http.ResponseWriter, r *http.Request) {
	planID := strings.TrimPrefix(r.URL.Path, "/api/plans/")

	plan, ok := h.getPlanOrError(w, planID)
	if !ok {
		return
	}

	switch r.Method {
	case "GET":
		h.writeJSON(w, plan)
	case "DELETE":
		h.planStore.Delete(planID)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
