package members

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
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("member not found")
	ErrMedicationNotFound = errors.New("medication not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
	log  *slog.Logger

	// mu serializa leer-modificar-escribir sobre la lista de medicamentos.
	mu sync.Mutex
}

func NewService(repo Repository, log *slog.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		repo: repo,
		now:  time.Now,
		log:  log.With(slog.String("module", "members")),
	}
}

func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

type MedicationInput struct {
	Name     string
	Dosage   string
	Schedule string
}

type CreateInput struct {
	Name             string
	Age              int
	ChronicCondition string
	Allergies        string

	// Medicamento inicial opcional; se ignora si Name viene vacío.
	Medication *MedicationInput
}

func (s *Service) Create(ctx context.Context, householdID string, in CreateInput) (Member, error) {
	householdID = strings.TrimSpace(householdID)
	name := strings.TrimSpace(in.Name)
	if householdID == "" || name == "" || in.Age < 0 {
		return Member{}, ErrInvalidInput
	}

	now := s.now()
	m := Member{
		ID:               uuid.NewString(),
		HouseholdID:      householdID,
		Name:             name,
		Age:              in.Age,
		ChronicCondition: orDefault(in.ChronicCondition, DefaultCondition),
		Allergies:        orDefault(in.Allergies, DefaultAllergies),
		Medications:      []Medication{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if in.Medication != nil && strings.TrimSpace(in.Medication.Name) != "" {
		m.Medications = append(m.Medications, newMedication(*in.Medication))
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Member{}, err
	}

	s.log.Info("member created", slog.String("member_id", m.ID), slog.Int("medications", len(m.Medications)))
	return m, nil
}

func (s *Service) List(ctx context.Context, householdID string) ([]Member, error) {
	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByHousehold(ctx, householdID)
}

func (s *Service) Get(ctx context.Context, householdID, memberID string) (Member, error) {
	return s.find(ctx, householdID, memberID)
}

func (s *Service) AddMedication(ctx context.Context, householdID, memberID string, in MedicationInput) (Member, Medication, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Member{}, Medication{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.find(ctx, householdID, memberID)
	if err != nil {
		return Member{}, Medication{}, err
	}

	med := newMedication(in)
	m.Medications = append(m.Medications, med)
	m.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, m); err != nil {
		return Member{}, Medication{}, fmt.Errorf("update member: %w", err)
	}
	return m, med, nil
}

func (s *Service) RemoveMedication(ctx context.Context, householdID, memberID, medicationID string) (Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.find(ctx, householdID, memberID)
	if err != nil {
		return Member{}, err
	}

	idx := -1
	for i, med := range m.Medications {
		if med.ID == medicationID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Member{}, ErrMedicationNotFound
	}

	meds := make([]Medication, 0, len(m.Medications)-1)
	meds = append(meds, m.Medications[:idx]...)
	meds = append(meds, m.Medications[idx+1:]...)
	m.Medications = meds
	m.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, m); err != nil {
		return Member{}, fmt.Errorf("update member: %w", err)
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, householdID, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.find(ctx, householdID, memberID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, m.ID); err != nil {
		return ErrNotFound
	}
	return nil
}

// Seed carga la familia de ejemplo.
func (s *Service) Seed(ctx context.Context, householdID string) error {
	demo := []struct {
		in   CreateInput
		meds []MedicationInput
	}{
		{
			in: CreateInput{Name: "Grandpa Ahmed", Age: 72, ChronicCondition: "Hypertension", Allergies: "None"},
			meds: []MedicationInput{
				{Name: "Lisinopril", Dosage: "5mg", Schedule: "7:00 AM"},
				{Name: "Aspirin", Dosage: "81mg", Schedule: "8:00 PM"},
				{Name: "Multivitamin", Dosage: "1 tablet", Schedule: "9:00 AM"},
			},
		},
		{
			in:   CreateInput{Name: "Aisha", Age: 34, ChronicCondition: "None", Allergies: "Penicillin"},
			meds: []MedicationInput{{Name: "Daily Vitamin C", Dosage: "1000mg", Schedule: "After Breakfast"}},
		},
		{
			in: CreateInput{Name: "Omar (Son)", Age: 12, ChronicCondition: "Asthma", Allergies: "Peanuts, Pollen"},
			meds: []MedicationInput{
				{Name: "Inhaler (Albuterol)", Dosage: "2 puffs", Schedule: "As Needed"},
				{Name: "Cetirizine", Dosage: "10mg", Schedule: "Before Bed"},
			},
		},
	}

	for _, d := range demo {
		m, err := s.Create(ctx, householdID, d.in)
		if err != nil {
			return fmt.Errorf("seed %q: %w", d.in.Name, err)
		}
		for _, med := range d.meds {
			if _, _, err := s.AddMedication(ctx, householdID, m.ID, med); err != nil {
				return fmt.Errorf("seed %q medication %q: %w", d.in.Name, med.Name, err)
			}
		}
	}
	return nil
}

func (s *Service) find(ctx context.Context, householdID, memberID string) (Member, error) {
	householdID = strings.TrimSpace(householdID)
	memberID = strings.TrimSpace(memberID)
	if householdID == "" || memberID == "" {
		return Member{}, ErrNotFound
	}

	m, err := s.repo.GetByID(ctx, memberID)
	if err != nil || m.HouseholdID != householdID {
		if err != nil {
			s.log.Debug("member lookup failed", slog.String("member_id", memberID), logger.Err(err))
		}
		return Member{}, ErrNotFound
	}
	return m, nil
}

func newMedication(in MedicationInput) Medication {
	return Medication{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(in.Name),
		Dosage:   orDefault(in.Dosage, DefaultDosage),
		Schedule: orDefault(in.Schedule, DefaultSchedule),
	}
}

func orDefault(s, def string) string {
	if v := strings.TrimSpace(s); v != "" {
		return v
	}
	return def
}

func normalizeNone(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
