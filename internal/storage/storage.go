package storage

import (
	"sync"

	"github.com/seawander/stiscoron/internal/models"
)

type PlanStore struct {
	plans map[string]*models.PointingPlan
	mu    sync.RWMutex
}

func New() *PlanStore {
	return &PlanStore{
		plans: make(map[string]*models.PointingPlan),
	}
}

func (s *PlanStore) Get(planID string) (*models.PointingPlan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan, exists := s.plans[planID]
	return plan, exists
}

func (s *PlanStore) Set(planID string, plan *models.PointingPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[planID] = plan
}

func (s *PlanStore) GetAll() map[string]*models.PointingPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*models.PointingPlan, len(s.plans))
	for k, v := range s.plans {
		result[k] = v
	}
	return result
}

func (s *PlanStore) Delete(planID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.plans, planID)
}
