package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"medicine-cabinet/internal/domain/medicines"
)

var (
	ErrNotFound = errors.New("not found")
)

type medicineRepo struct {
	mu    sync.RWMutex
	byID  map[string]medicines.Medicine
	order []string // orden de inserción
}

func NewMedicineRepo() medicines.Repository {
	return &medicineRepo{
		byID: make(map[string]medicines.Medicine),
	}
}

func (r *medicineRepo) Create(ctx context.Context, m medicines.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medicine id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("medicine already exists")
	}
	r.byID[m.ID] = m
	r.order = append(r.order, m.ID)
	return nil
}

func (r *medicineRepo) GetByID(ctx context.Context, id string) (medicines.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return medicines.Medicine{}, ErrNotFound
	}
	return m, nil
}

func (r *medicineRepo) ListByHousehold(ctx context.Context, householdID string) ([]medicines.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medicines.Medicine, 0)
	for _, id := range r.order {
		m := r.byID[id]
		if m.HouseholdID == householdID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *medicineRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	r.order = removeID(r.order, id)
	return nil
}

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
