package members

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	mu    sync.Mutex
	byID  map[string]Member
	order []string
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Member{}}
}

func (r *testRepo) Create(ctx context.Context, m Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[m.ID] = m
	r.order = append(r.order, m.ID)
	return nil
}

func (r *testRepo) Update(ctx context.Context, m Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[m.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok {
		return Member{}, errRepoNotFound
	}
	return m, nil
}

func (r *testRepo) ListByHousehold(ctx context.Context, householdID string) ([]Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Member, 0)
	for _, id := range r.order {
		if m, ok := r.byID[id]; ok && m.HouseholdID == householdID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func newTestService() *Service {
	svc := NewService(newTestRepo(), nil)
	svc.SetClock(func() time.Time { return time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC) })
	return svc
}

func TestCreate_AppliesDefaults(t *testing.T) {
	svc := newTestService()

	m, err := svc.Create(context.Background(), "house-1", CreateInput{
		Name:       "  Lina ",
		Age:        8,
		Medication: &MedicationInput{Name: "Cough Syrup"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Lina", m.Name)
	assert.Equal(t, DefaultCondition, m.ChronicCondition)
	assert.Equal(t, DefaultAllergies, m.Allergies)
	assert.False(t, m.HasAllergies())

	require.Len(t, m.Medications, 1)
	assert.Equal(t, "Cough Syrup", m.Medications[0].Name)
	assert.Equal(t, DefaultDosage, m.Medications[0].Dosage)
	assert.Equal(t, DefaultSchedule, m.Medications[0].Schedule)
}

func TestCreate_EmptyInitialMedicationIsIgnored(t *testing.T) {
	svc := newTestService()

	m, err := svc.Create(context.Background(), "house-1", CreateInput{
		Name:       "Lina",
		Medication: &MedicationInput{Name: "  ", Dosage: "5ml"},
	})
	require.NoError(t, err)
	assert.Empty(t, m.Medications)
}

func TestCreate_InvalidInput(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "house-1", CreateInput{Name: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, "house-1", CreateInput{Name: "x", Age: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, "", CreateInput{Name: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMedications_AddAndRemove(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	m, err := svc.Create(ctx, "house-1", CreateInput{Name: "Ahmed", Age: 72, Allergies: "Penicillin"})
	require.NoError(t, err)
	assert.True(t, m.HasAllergies())

	m, med1, err := svc.AddMedication(ctx, "house-1", m.ID, MedicationInput{Name: "Lisinopril", Dosage: "5mg", Schedule: "7:00 AM"})
	require.NoError(t, err)
	m, med2, err := svc.AddMedication(ctx, "house-1", m.ID, MedicationInput{Name: "Aspirin"})
	require.NoError(t, err)
	require.Len(t, m.Medications, 2)
	assert.Equal(t, DefaultSchedule, med2.Schedule)

	m, err = svc.RemoveMedication(ctx, "house-1", m.ID, med1.ID)
	require.NoError(t, err)
	require.Len(t, m.Medications, 1)
	assert.Equal(t, med2.ID, m.Medications[0].ID)

	_, err = svc.RemoveMedication(ctx, "house-1", m.ID, med1.ID)
	assert.ErrorIs(t, err, ErrMedicationNotFound)

	_, _, err = svc.AddMedication(ctx, "house-1", m.ID, MedicationInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestHouseholdIsolation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	m, err := svc.Create(ctx, "house-1", CreateInput{Name: "Aisha"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "house-2", m.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = svc.AddMedication(ctx, "house-2", m.ID, MedicationInput{Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "house-2", m.ID), ErrNotFound)

	list, err := svc.List(ctx, "house-2")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDelete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	m, err := svc.Create(ctx, "house-1", CreateInput{Name: "Omar"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "house-1", m.ID))
	_, err = svc.Get(ctx, "house-1", m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSeed(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx, "house-1"))

	list, err := svc.List(ctx, "house-1")
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "Grandpa Ahmed", list[0].Name)
	assert.Len(t, list[0].Medications, 3)
	assert.False(t, list[0].HasAllergies())

	assert.Equal(t, "Aisha", list[1].Name)
	assert.True(t, list[1].HasAllergies())

	assert.Equal(t, "Omar (Son)", list[2].Name)
	assert.Len(t, list[2].Medications, 2)
}

func TestAddMedication_Concurrent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	m, err := svc.Create(ctx, "house-1", CreateInput{Name: "Aisha", Age: 34})
	require.NoError(t, err)

	const n = 200
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_, _, err := svc.AddMedication(ctx, "house-1", m.ID, MedicationInput{Name: fmt.Sprintf("med-%d", i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := svc.Get(ctx, "house-1", m.ID)
	require.NoError(t, err)
	require.Len(t, got.Medications, n)

	// quitar en paralelo la mitad tampoco pierde escrituras
	wg.Add(n / 2)
	for _, med := range got.Medications[:n/2] {
		go func(id string) {
			defer wg.Done()
			_, err := svc.RemoveMedication(ctx, "house-1", m.ID, id)
			assert.NoError(t, err)
		}(med.ID)
	}
	wg.Wait()

	got, err = svc.Get(ctx, "house-1", m.ID)
	require.NoError(t, err)
	assert.Len(t, got.Medications, n/2)
}
