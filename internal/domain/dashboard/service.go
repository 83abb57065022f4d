// Package dashboard arma la vista "de un vistazo" del hogar a partir del
// botiquín y de los recordatorios. No guarda nada propio.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"medicine-cabinet/internal/domain/expiration"
	"medicine-cabinet/internal/domain/medicines"
	"medicine-cabinet/internal/domain/reminders"
)

var ErrInvalidInput = errors.New("invalid input")

type CabinetLister interface {
	List(ctx context.Context, householdID string) (medicines.Cabinet, error)
}

type ReminderLister interface {
	List(ctx context.Context, householdID string) ([]reminders.Reminder, error)
}

type CabinetCounts struct {
	Active       int
	Expired      int
	ExpiringSoon int // activos dentro del horizonte de aviso
	Invalid      int
}

type Summary struct {
	Today time.Time
	Now   time.Time

	Schedule      []reminders.Group
	RefillsNeeded []reminders.Reminder
	NextDose      *reminders.Reminder

	Cabinet      CabinetCounts
	ExpiringSoon []medicines.Entry
}

type Service struct {
	cabinet   CabinetLister
	reminders ReminderLister
	now       func() time.Time
}

func NewService(cabinet CabinetLister, rem ReminderLister) *Service {
	return &Service{
		cabinet:   cabinet,
		reminders: rem,
		now:       time.Now,
	}
}

func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Service) Summary(ctx context.Context, householdID string) (Summary, error) {
	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return Summary{}, ErrInvalidInput
	}

	now := s.now()

	items, err := s.reminders.List(ctx, householdID)
	if err != nil {
		return Summary{}, fmt.Errorf("list reminders: %w", err)
	}

	cab, err := s.cabinet.List(ctx, householdID)
	if err != nil {
		return Summary{}, fmt.Errorf("list cabinet: %w", err)
	}

	out := Summary{
		Today:         expiration.Midnight(now),
		Now:           now,
		Schedule:      reminders.GroupBySchedule(items),
		RefillsNeeded: reminders.RefillsNeeded(items),
		Cabinet: CabinetCounts{
			Active:  len(cab.Active),
			Expired: len(cab.Expired),
			Invalid: len(cab.Invalid),
		},
		ExpiringSoon: make([]medicines.Entry, 0),
	}

	if next, ok := reminders.NextDose(items, now); ok {
		out.NextDose = &next
	}

	// Active ya viene ordenado por vencimiento efectivo
	for _, e := range cab.Active {
		if e.Severity == expiration.SeverityWarning {
			out.ExpiringSoon = append(out.ExpiringSoon, e)
		}
	}
	out.Cabinet.ExpiringSoon = len(out.ExpiringSoon)

	return out, nil
}
