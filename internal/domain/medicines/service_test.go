package medicines

import (
	"context"
	"errors"
	"testing"
	"time"

	"medicine-cabinet/internal/domain/expiration"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID  map[string]Medicine
	order []string
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Medicine{}}
}

func (r *testRepo) Create(ctx context.Context, m Medicine) error {
	if m.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[m.ID] = m
	r.order = append(r.order, m.ID)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Medicine, error) {
	m, ok := r.byID[id]
	if !ok {
		return Medicine{}, errRepoNotFound
	}
	return m, nil
}

func (r *testRepo) ListByHousehold(ctx context.Context, householdID string) ([]Medicine, error) {
	out := make([]Medicine, 0)
	for _, id := range r.order {
		if m, ok := r.byID[id]; ok && m.HouseholdID == householdID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

// -------------------------
// Helpers
// -------------------------

var fixedNow = time.Date(2025, 10, 15, 9, 30, 0, 0, time.UTC)

func newTestService(opts Options) *Service {
	if opts.Policy.WarningHorizonDays == 0 {
		opts.Policy = expiration.DefaultPolicy()
	}
	svc := NewService(newTestRepo(), opts)
	svc.SetClock(func() time.Time { return fixedNow })
	return svc
}

func date(s string) time.Time {
	t, err := time.Parse(expiration.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// -------------------------
// Tests
// -------------------------

func TestAdd_ComputesStatus(t *testing.T) {
	svc := newTestService(Options{})

	e, err := svc.Add(context.Background(), "house-1", AddInput{
		Name:       "Ibuprofen (Pills)",
		Dosage:     "200mg",
		ExpiryDate: "2026-10-25",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, e.Medicine.ID)
	assert.Equal(t, expiration.RuleBoxDate, e.Medicine.Rule)
	assert.Nil(t, e.Medicine.OpeningDate)
	assert.Equal(t, 375, e.Status.DaysLeft)
	assert.False(t, e.Status.IsExpired)
	assert.Equal(t, expiration.SeverityOK, e.Severity)
}

func TestAdd_OpenedRuleExpires(t *testing.T) {
	svc := newTestService(Options{})

	e, err := svc.Add(context.Background(), "house-1", AddInput{
		Name:        "Eye Drops",
		Dosage:      "10ml",
		ExpiryDate:  "2026-01-01",
		OpeningDate: "2025-09-28",
		Rule:        "two_weeks",
	})
	require.NoError(t, err)

	assert.Equal(t, expiration.RuleTwoWeeks, e.Medicine.Rule)
	assert.Equal(t, date("2025-10-12"), e.Status.EffectiveExpiry)
	assert.Equal(t, -3, e.Status.DaysLeft)
	assert.True(t, e.Status.IsExpired)
	assert.Equal(t, expiration.SeverityExpired, e.Severity)
}

func TestAdd_InvalidInput(t *testing.T) {
	svc := newTestService(Options{})
	ctx := context.Background()

	cases := []struct {
		name string
		in   AddInput
		want error
	}{
		{"missing name", AddInput{Dosage: "1", ExpiryDate: "2026-01-01"}, ErrInvalidInput},
		{"missing dosage", AddInput{Name: "x", ExpiryDate: "2026-01-01"}, ErrInvalidInput},
		{"bad expiry", AddInput{Name: "x", Dosage: "1", ExpiryDate: "01/01/2026"}, expiration.ErrInvalidDateFormat},
		{"bad opening", AddInput{Name: "x", Dosage: "1", ExpiryDate: "2026-01-01", OpeningDate: "ayer", Rule: "TWO_WEEKS"}, expiration.ErrInvalidDateFormat},
		{"bad rule", AddInput{Name: "x", Dosage: "1", ExpiryDate: "2026-01-01", Rule: "FOREVER"}, expiration.ErrInvalidRule},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Add(ctx, "house-1", tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := svc.Add(ctx, " ", AddInput{Name: "x", Dosage: "1", ExpiryDate: "2026-01-01"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAdd_MissingOpeningDateFallsBack(t *testing.T) {
	// sin RequireOpeningDate (config REQUIRE_OPENING_DATE=false) se acepta con la fecha de la caja
	svc := newTestService(Options{RequireOpeningDate: false})

	e, err := svc.Add(context.Background(), "house-1", AddInput{
		Name:       "Syrup",
		Dosage:     "5ml",
		ExpiryDate: "2026-03-01",
		Rule:       string(expiration.RuleThreeMonths),
	})
	require.NoError(t, err)
	assert.True(t, e.Status.RuleIgnored)
	assert.Equal(t, date("2026-03-01"), e.Status.EffectiveExpiry)
}

func TestAdd_RequireOpeningDate(t *testing.T) {
	svc := newTestService(Options{RequireOpeningDate: true})

	_, err := svc.Add(context.Background(), "house-1", AddInput{
		Name:       "Syrup",
		Dosage:     "5ml",
		ExpiryDate: "2026-03-01",
		Rule:       string(expiration.RuleSixMonths),
	})
	assert.ErrorIs(t, err, ErrOpeningDateRequired)

	// BOX_DATE nunca necesita fecha de apertura
	_, err = svc.Add(context.Background(), "house-1", AddInput{
		Name:       "Pills",
		Dosage:     "1",
		ExpiryDate: "2026-03-01",
	})
	assert.NoError(t, err)
}

func TestAdd_BoxDateDropsOpeningDate(t *testing.T) {
	svc := newTestService(Options{})

	e, err := svc.Add(context.Background(), "house-1", AddInput{
		Name:        "Ibuprofen (Pills)",
		Dosage:      "200mg",
		ExpiryDate:  "2026-10-25",
		OpeningDate: "ayer",
		Rule:        string(expiration.RuleBoxDate),
	})
	require.NoError(t, err)
	assert.Nil(t, e.Medicine.OpeningDate)
	assert.Equal(t, date("2026-10-25"), e.Status.EffectiveExpiry)

	e, err = svc.Add(context.Background(), "house-1", AddInput{
		Name:        "Ibuprofen (Pills)",
		Dosage:      "200mg",
		ExpiryDate:  "2026-10-25",
		OpeningDate: "2025-09-01",
	})
	require.NoError(t, err)
	assert.Nil(t, e.Medicine.OpeningDate)
}

func TestAdd_CreatedAtMatchesToday(t *testing.T) {
	svc := newTestService(Options{})

	calls := 0
	svc.SetClock(func() time.Time {
		calls++
		// cada lectura cae un día después
		return time.Date(2025, 10, 15, 23, 59, 59, 0, time.UTC).AddDate(0, 0, calls-1)
	})

	e, err := svc.Add(context.Background(), "house-1", AddInput{Name: "x", Dosage: "1", ExpiryDate: "2025-10-20"})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, time.Date(2025, 10, 15, 23, 59, 59, 0, time.UTC), e.Medicine.CreatedAt)
	assert.Equal(t, 5, e.Status.DaysLeft)
}

func TestList_SeededCabinet(t *testing.T) {
	svc := newTestService(Options{})
	ctx := context.Background()
	require.NoError(t, svc.Seed(ctx, "house-1"))

	c, err := svc.List(ctx, "house-1")
	require.NoError(t, err)

	assert.Equal(t, date("2025-10-15"), c.Today)
	require.Len(t, c.Active, 2)
	require.Len(t, c.Expired, 1)
	assert.Empty(t, c.Invalid)

	// Eye Drops: 2025-09-01 + 3 meses = 2025-12-01, antes que la caja
	assert.Equal(t, "Eye Drops", c.Active[0].Medicine.Name)
	assert.Equal(t, 47, c.Active[0].Status.DaysLeft)
	assert.Equal(t, expiration.SeverityWarning, c.Active[0].Severity)

	assert.Equal(t, "Ibuprofen (Pills)", c.Active[1].Medicine.Name)
	assert.Equal(t, 375, c.Active[1].Status.DaysLeft)

	assert.Equal(t, "Amoxicillin (Liquid)", c.Expired[0].Medicine.Name)
	assert.Equal(t, date("2025-01-29"), c.Expired[0].Status.EffectiveExpiry)
}

func TestList_HouseholdIsolation(t *testing.T) {
	svc := newTestService(Options{})
	ctx := context.Background()

	e, err := svc.Add(ctx, "house-1", AddInput{Name: "x", Dosage: "1", ExpiryDate: "2026-01-01"})
	require.NoError(t, err)

	c, err := svc.List(ctx, "house-2")
	require.NoError(t, err)
	assert.Empty(t, c.Active)
	assert.Empty(t, c.Expired)

	_, err = svc.Get(ctx, "house-2", e.Medicine.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Remove(ctx, "house-2", e.Medicine.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemove(t *testing.T) {
	svc := newTestService(Options{})
	ctx := context.Background()

	e, err := svc.Add(ctx, "house-1", AddInput{Name: "x", Dosage: "1", ExpiryDate: "2026-01-01"})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, "house-1", e.Medicine.ID))

	_, err = svc.Get(ctx, "house-1", e.Medicine.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Remove(ctx, "house-1", e.Medicine.ID), ErrNotFound)
}

func TestGet_RecomputesForToday(t *testing.T) {
	svc := newTestService(Options{})
	ctx := context.Background()

	e, err := svc.Add(ctx, "house-1", AddInput{Name: "x", Dosage: "1", ExpiryDate: "2025-10-20"})
	require.NoError(t, err)
	assert.Equal(t, 5, e.Status.DaysLeft)

	svc.SetClock(func() time.Time { return fixedNow.AddDate(0, 0, 10) })

	got, err := svc.Get(ctx, "house-1", e.Medicine.ID)
	require.NoError(t, err)
	assert.Equal(t, -5, got.Status.DaysLeft)
	assert.True(t, got.Status.IsExpired)
}

func TestCalculate(t *testing.T) {
	svc := newTestService(Options{})

	st, sev, err := svc.Calculate(CalculateInput{BoxDate: "2026-03-01", OpeningDate: "2025-09-01", Rule: "SIX_MONTHS"})
	require.NoError(t, err)
	assert.Equal(t, date("2026-03-01"), st.EffectiveExpiry)
	assert.Equal(t, expiration.SeverityOK, sev)

	// fecha de apertura ilegible = sin abrir
	st, _, err = svc.Calculate(CalculateInput{BoxDate: "2026-03-01", OpeningDate: "garbage", Rule: "TWO_WEEKS"})
	require.NoError(t, err)
	assert.True(t, st.RuleIgnored)
	assert.Equal(t, date("2026-03-01"), st.EffectiveExpiry)

	_, _, err = svc.Calculate(CalculateInput{BoxDate: "not-a-date"})
	assert.ErrorIs(t, err, expiration.ErrInvalidDateFormat)

	_, _, err = svc.Calculate(CalculateInput{BoxDate: "2026-03-01", Rule: "NEVER"})
	assert.ErrorIs(t, err, expiration.ErrInvalidRule)
}

func TestOnStatusHook(t *testing.T) {
	seen := map[expiration.Severity]int{}
	svc := newTestService(Options{OnStatus: func(s expiration.Severity) { seen[s]++ }})
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx, "house-1"))
	before := len(seen)
	assert.Positive(t, before)

	_, err := svc.List(ctx, "house-1")
	require.NoError(t, err)
	assert.Equal(t, 2, seen[expiration.SeverityExpired])
}
