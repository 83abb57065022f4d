package memory

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"medicine-cabinet/internal/domain/members"
)

type memberRepo struct {
	mu    sync.RWMutex
	byID  map[string]members.Member
	order []string
}

func NewMemberRepo() members.Repository {
	return &memberRepo{
		byID: make(map[string]members.Member),
	}
}

func (r *memberRepo) Create(ctx context.Context, m members.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("member id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("member already exists")
	}
	r.byID[m.ID] = cloneMember(m)
	r.order = append(r.order, m.ID)
	return nil
}

func (r *memberRepo) Update(ctx context.Context, m members.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[m.ID]; !ok {
		return ErrNotFound
	}
	r.byID[m.ID] = cloneMember(m)
	return nil
}

func (r *memberRepo) GetByID(ctx context.Context, id string) (members.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return members.Member{}, ErrNotFound
	}
	return cloneMember(m), nil
}

func (r *memberRepo) ListByHousehold(ctx context.Context, householdID string) ([]members.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]members.Member, 0)
	for _, id := range r.order {
		m := r.byID[id]
		if m.HouseholdID == householdID {
			out = append(out, cloneMember(m))
		}
	}
	return out, nil
}

func (r *memberRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	r.order = removeID(r.order, id)
	return nil
}

// cloneMember evita que quien llama comparta el slice de medicamentos con el store.
func cloneMember(m members.Member) members.Member {
	m.Medications = slices.Clone(m.Medications)
	if m.Medications == nil {
		m.Medications = []members.Medication{}
	}
	return m
}
