package medicines

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"medicine-cabinet/internal/domain/expiration"
	"medicine-cabinet/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("medicine not found")
	ErrOpeningDateRequired = errors.New("opening date is required for this expiration rule")
)

type Options struct {
	Policy expiration.Policy

	// RequireOpeningDate: si true, Add rechaza reglas post-apertura sin fecha de apertura
	// (el binario lo activa por config). Si false se acepta y el motor usa la fecha de la caja.
	RequireOpeningDate bool

	Logger *slog.Logger

	// OnStatus se llama por cada estado calculado (lo usa el router para métricas).
	OnStatus func(expiration.Severity)
}

type Service struct {
	repo Repository
	now  func() time.Time

	policy         expiration.Policy
	requireOpening bool
	log            *slog.Logger
	onStatus       func(expiration.Severity)
}

func NewService(repo Repository, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		repo:           repo,
		now:            time.Now,
		policy:         opts.Policy,
		requireOpening: opts.RequireOpeningDate,
		log:            log.With(slog.String("module", "medicines")),
		onStatus:       opts.OnStatus,
	}
}

// SetClock reemplaza el reloj (tests y el router con reloj inyectado).
func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Service) Policy() expiration.Policy {
	return s.policy
}

type AddInput struct {
	Name        string
	Dosage      string
	ExpiryDate  string // YYYY-MM-DD
	OpeningDate string // YYYY-MM-DD o vacío
	Rule        string
}

func (s *Service) Add(ctx context.Context, householdID string, in AddInput) (Entry, error) {
	householdID = strings.TrimSpace(householdID)
	name := strings.TrimSpace(in.Name)
	dosage := strings.TrimSpace(in.Dosage)
	if householdID == "" || name == "" || dosage == "" {
		return Entry{}, ErrInvalidInput
	}

	rule, err := expiration.ParseRule(in.Rule)
	if err != nil {
		return Entry{}, err
	}

	expiry, err := expiration.ParseDate(in.ExpiryDate)
	if err != nil {
		return Entry{}, fmt.Errorf("expiry_date: %w", err)
	}

	// En el borde somos estrictos: una fecha de apertura ilegible es un error,
	// no "sin abrir". Con BOX_DATE la apertura no cuenta y se descarta.
	var opened *time.Time
	if rule != expiration.RuleBoxDate && strings.TrimSpace(in.OpeningDate) != "" {
		t, err := expiration.ParseDate(in.OpeningDate)
		if err != nil {
			return Entry{}, fmt.Errorf("opening_date: %w", err)
		}
		opened = &t
	}

	if rule.NeedsOpeningDate() && opened == nil && s.requireOpening {
		return Entry{}, ErrOpeningDateRequired
	}

	now := s.now()
	m := Medicine{
		ID:          uuid.NewString(),
		HouseholdID: householdID,
		Name:        name,
		Dosage:      dosage,
		ExpiryDate:  expiry,
		OpeningDate: opened,
		Rule:        rule,
		CreatedAt:   now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Entry{}, err
	}

	e := s.entryFor(m, now)
	if e.Status.RuleIgnored {
		s.log.Warn("opening date missing, falling back to box date",
			slog.String("medicine_id", m.ID),
			slog.String("rule", string(m.Rule)),
		)
	}
	return e, nil
}

func (s *Service) Get(ctx context.Context, householdID, id string) (Entry, error) {
	m, err := s.find(ctx, householdID, id)
	if err != nil {
		return Entry{}, err
	}
	return s.entryFor(m, s.now()), nil
}

// List devuelve el botiquín completo re-clasificado y re-ordenado para hoy.
func (s *Service) List(ctx context.Context, householdID string) (Cabinet, error) {
	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return Cabinet{}, ErrInvalidInput
	}

	items, err := s.repo.ListByHousehold(ctx, householdID)
	if err != nil {
		return Cabinet{}, err
	}

	inputs := make([]expiration.Input, 0, len(items))
	for _, m := range items {
		inputs = append(inputs, m.expirationInput())
	}

	today := s.now()
	c := expiration.ClassifyAndSort(inputs, today, s.policy)

	out := Cabinet{
		Today:   expiration.Midnight(today),
		Active:  s.toEntries(items, c.Active),
		Expired: s.toEntries(items, c.Expired),
		Invalid: s.toEntries(items, c.Invalid),
	}

	for _, e := range out.Invalid {
		s.log.Error("cannot compute expiration", slog.String("medicine_id", e.Medicine.ID), logger.Err(e.Err))
	}
	return out, nil
}

func (s *Service) Remove(ctx context.Context, householdID, id string) error {
	if _, err := s.find(ctx, householdID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return ErrNotFound
	}
	return nil
}

type CalculateInput struct {
	BoxDate     string
	OpeningDate string
	Rule        string
}

// Calculate es la calculadora sin estado: no guarda nada.
func (s *Service) Calculate(in CalculateInput) (expiration.Status, expiration.Severity, error) {
	rule, err := expiration.ParseRule(in.Rule)
	if err != nil {
		return expiration.Status{}, "", err
	}
	st, err := expiration.Compute(in.BoxDate, in.OpeningDate, rule, s.now())
	if err != nil {
		return expiration.Status{}, "", err
	}
	sev := s.policy.Severity(st)
	s.observe(sev)
	return st, sev, nil
}

// Seed carga el botiquín de ejemplo.
func (s *Service) Seed(ctx context.Context, householdID string) error {
	demo := []AddInput{
		{Name: "Ibuprofen (Pills)", Dosage: "200mg (45 pills)", ExpiryDate: "2026-10-25", Rule: string(expiration.RuleBoxDate)},
		{Name: "Amoxicillin (Liquid)", Dosage: "500mg (5 tablets)", ExpiryDate: "2025-06-01", OpeningDate: "2025-01-15", Rule: string(expiration.RuleTwoWeeks)},
		{Name: "Eye Drops", Dosage: "10ml", ExpiryDate: "2026-03-01", OpeningDate: "2025-09-01", Rule: string(expiration.RuleThreeMonths)},
	}
	for _, in := range demo {
		if _, err := s.Add(ctx, householdID, in); err != nil {
			return fmt.Errorf("seed %q: %w", in.Name, err)
		}
	}
	return nil
}

func (s *Service) find(ctx context.Context, householdID, id string) (Medicine, error) {
	householdID = strings.TrimSpace(householdID)
	id = strings.TrimSpace(id)
	if householdID == "" || id == "" {
		return Medicine{}, ErrNotFound
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil || m.HouseholdID != householdID {
		return Medicine{}, ErrNotFound
	}
	return m, nil
}

func (s *Service) entryFor(m Medicine, today time.Time) Entry {
	st := expiration.Evaluate(m.ExpiryDate, m.OpeningDate, m.Rule, today)
	sev := s.policy.Severity(st)
	s.observe(sev)
	return Entry{Medicine: m, Status: st, Severity: sev}
}

func (s *Service) toEntries(items []Medicine, entries []expiration.Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, Entry{
			Medicine: items[e.Position],
			Status:   e.Status,
			Severity: e.Severity,
			Err:      e.Err,
		})
		if e.Err == nil {
			s.observe(e.Severity)
		}
	}
	return out
}

func (s *Service) observe(sev expiration.Severity) {
	if s.onStatus != nil {
		s.onStatus(sev)
	}
}
