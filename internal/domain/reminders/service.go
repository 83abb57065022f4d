package reminders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"medicine-cabinet/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("reminder not found")
	ErrOutOfStock   = errors.New("reminder is out of stock")
)

type Options struct {
	Logger *slog.Logger

	// OnAlert se llama cuando un cambio deja el stock en Low o Empty.
	OnAlert func(StockStatus)
}

type Service struct {
	repo Repository
	now  func() time.Time
	log  *slog.Logger

	onAlert func(StockStatus)

	// serializa lectura+escritura del stock (TakeDose/Restock)
	mu sync.Mutex
}

func NewService(repo Repository, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		repo:    repo,
		now:     time.Now,
		log:     log.With(slog.String("module", "reminders")),
		onAlert: opts.OnAlert,
	}
}

func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

type CreateInput struct {
	MedicineName      string
	Member            string
	Schedule          string // "h:mm AM/PM"
	InitialCount      int
	Dosage            int
	LowStockThreshold int
}

func (s *Service) Create(ctx context.Context, householdID string, in CreateInput) (Change, error) {
	householdID = strings.TrimSpace(householdID)
	name := strings.TrimSpace(in.MedicineName)
	member := strings.TrimSpace(in.Member)
	if householdID == "" || name == "" || member == "" {
		return Change{}, ErrInvalidInput
	}
	if in.InitialCount <= 0 || in.InitialCount > MaxPills || in.Dosage <= 0 || in.LowStockThreshold <= 0 {
		return Change{}, ErrInvalidInput
	}

	tod, err := ParseTimeOfDay(in.Schedule)
	if err != nil {
		return Change{}, err
	}

	now := s.now()
	r := Reminder{
		ID:                uuid.NewString(),
		HouseholdID:       householdID,
		MedicineName:      name,
		Member:            member,
		PillsRemaining:    in.InitialCount,
		Dosage:            in.Dosage,
		LowStockThreshold: in.LowStockThreshold,
		Schedule:          tod,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return Change{}, err
	}
	return s.change(r), nil
}

func (s *Service) List(ctx context.Context, householdID string) ([]Reminder, error) {
	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByHousehold(ctx, householdID)
}

func (s *Service) Get(ctx context.Context, householdID, id string) (Reminder, error) {
	return s.find(ctx, householdID, id)
}

// TakeDose descuenta una toma. Con stock en cero no hace nada y devuelve ErrOutOfStock.
func (s *Service) TakeDose(ctx context.Context, householdID, id string) (Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.find(ctx, householdID, id)
	if err != nil {
		return Change{}, err
	}
	if r.PillsRemaining <= 0 {
		return Change{}, ErrOutOfStock
	}

	r.PillsRemaining = max(0, r.PillsRemaining-r.Dosage)
	r.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, r); err != nil {
		return Change{}, fmt.Errorf("update reminder: %w", err)
	}
	return s.change(r), nil
}

func (s *Service) Restock(ctx context.Context, householdID, id string, amount int) (Change, error) {
	if amount <= 0 || amount > MaxPills {
		return Change{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.find(ctx, householdID, id)
	if err != nil {
		return Change{}, err
	}

	if r.PillsRemaining > MaxPills-amount {
		return Change{}, ErrInvalidInput
	}
	r.PillsRemaining += amount
	r.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, r); err != nil {
		return Change{}, fmt.Errorf("update reminder: %w", err)
	}

	s.log.Info("reminder restocked",
		slog.String("reminder_id", r.ID),
		slog.Int("amount", amount),
		slog.Int("pills_remaining", r.PillsRemaining),
	)
	return s.change(r), nil
}

func (s *Service) Delete(ctx context.Context, householdID, id string) error {
	r, err := s.find(ctx, householdID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, r.ID); err != nil {
		return ErrNotFound
	}
	return nil
}

// RefillsNeeded devuelve los recordatorios en Low o Empty, en orden de inserción.
func RefillsNeeded(items []Reminder) []Reminder {
	out := make([]Reminder, 0)
	for _, r := range items {
		if r.StockStatus().Alert() {
			out = append(out, r)
		}
	}
	return out
}

// Seed carga los recordatorios de ejemplo.
func (s *Service) Seed(ctx context.Context, householdID string) error {
	demo := []CreateInput{
		{MedicineName: "Blood Pressure Med", Member: "Grandpa Ahmed", Schedule: "7:00 AM", InitialCount: 15, Dosage: 1, LowStockThreshold: 7},
		{MedicineName: "Daily Vitamin", Member: "Aisha", Schedule: "8:00 AM", InitialCount: 90, Dosage: 1, LowStockThreshold: 14},
		{MedicineName: "Antibiotic X", Member: "Omar (Son)", Schedule: "12:00 PM", InitialCount: 2, Dosage: 1, LowStockThreshold: 5},
		{MedicineName: "Amoxicillin", Member: "Omar (Son)", Schedule: "8:00 PM", InitialCount: 8, Dosage: 1, LowStockThreshold: 5},
	}
	for _, in := range demo {
		if _, err := s.Create(ctx, householdID, in); err != nil {
			return fmt.Errorf("seed %q: %w", in.MedicineName, err)
		}
	}
	return nil
}

func (s *Service) find(ctx context.Context, householdID, id string) (Reminder, error) {
	householdID = strings.TrimSpace(householdID)
	id = strings.TrimSpace(id)
	if householdID == "" || id == "" {
		return Reminder{}, ErrNotFound
	}

	r, err := s.repo.GetByID(ctx, id)
	if err != nil || r.HouseholdID != householdID {
		return Reminder{}, ErrNotFound
	}
	return r, nil
}

func (s *Service) change(r Reminder) Change {
	st := r.StockStatus()
	c := Change{Reminder: r, Status: st, Alert: st.Alert()}
	if c.Alert {
		s.log.Warn("stock alert",
			slog.String("reminder_id", r.ID),
			slog.String("member", r.Member),
			slog.String("medicine", r.MedicineName),
			slog.String("stock_status", string(st)),
			slog.Int("pills_remaining", r.PillsRemaining),
		)
		if s.onAlert != nil {
			s.onAlert(st)
		}
	}
	return c
}
