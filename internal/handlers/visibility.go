package handlers

import (
	"log/slog"
	"net/http"

	"github.com/seawander/stiscoron/internal/pointing"
	"github.com/seawander/stiscoron/internal/render"
)

type maskInfo struct {
	Name    string  `json:"name"`
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`
}

// HandleMasks lists the supported occulters with their reference centers.
func (h *Handler) HandleMasks(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	masks := make([]maskInfo, 0, len(h.catalog.Names()))
	for _, name := range h.catalog.Names() {
		entry, err := h.catalog.Entry(name)
		if err != nil {
			h.writeError(w, "Catalog lookup failed", http.StatusInternalServerError)
			return
		}
		masks = append(masks, maskInfo{Name: entry.Name, CenterX: entry.Center.X, CenterY: entry.Center.Y})
	}
	h.writeJSON(w, masks)
}

// HandleVisibility evaluates one pointing and returns the result as JSON.
func (h *Handler) HandleVisibility(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cfg, err := parsePointing(r)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := pointing.Evaluate(h.catalog, cfg)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !res.Occulted {
		slog.Warn("Target not occulted", "mask", res.Mask, "orient", res.Orient,
			"postarg1", cfg.PosTarg1, "postarg2", cfg.PosTarg2)
	}

	h.writeJSON(w, res)
}

// HandleOverlay evaluates one pointing and returns the rendered overlay
// PNG.
func (h *Handler) HandleOverlay(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cfg, err := parsePointing(r)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := pointing.Evaluate(h.catalog, cfg)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := render.Encode(w, h.catalog, res); err != nil {
		slog.Error("Unable to encode overlay", "err", err)
	}
}
