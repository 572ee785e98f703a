package storage

import (
	"testing"
	"time"

	"github.com/seawander/stiscoron/internal/models"
)

func TestPlanStoreCRUD(t *testing.T) {
	store := New()

	if _, exists := store.Get("plan_1"); exists {
		t.Error("empty store should not contain plan_1")
	}

	plan := &models.PointingPlan{ID: "plan_1", Label: "HD 181327", CreatedAt: time.Now()}
	store.Set("plan_1", plan)

	got, exists := store.Get("plan_1")
	if !exists {
		t.Fatal("plan_1 should exist after Set")
	}
	if got.Label != "HD 181327" {
		t.Errorf("Expected label HD 181327, got %s", got.Label)
	}

	store.Set("plan_2", &models.PointingPlan{ID: "plan_2"})
	if all := store.GetAll(); len(all) != 2 {
		t.Errorf("Expected 2 plans, got %d", len(all))
	}

	store.Delete("plan_1")
	if _, exists := store.Get("plan_1"); exists {
		t.Error("plan_1 should be gone after Delete")
	}
}
