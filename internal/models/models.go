package models

import (
	"time"

	"github.com/seawander/stiscoron/internal/pointing"
)

// PointingPlan is a named set of candidate pointings an observer is
// comparing for one visit.
type PointingPlan struct {
	ID        string         `json:"id"`
	Label     string         `json:"label,omitempty"`
	Target    string         `json:"target,omitempty"`
	Pointings []PlanPointing `json:"pointings"`
	CreatedAt time.Time      `json:"created_at"`
}

// PlanPointing pairs a requested configuration with its evaluated verdict.
type PlanPointing struct {
	Config      pointing.Config `json:"config"`
	Occulted    bool            `json:"occulted"`
	OffDetector bool            `json:"off_detector"`
	Warnings    []string        `json:"warnings,omitempty"`
}
