package medicines

import (
	"time"

	"medicine-cabinet/internal/domain/expiration"
)

// Medicine es una entrada del botiquín. Se inserta o se borra entera, nunca se edita.
type Medicine struct {
	ID          string
	HouseholdID string

	Name   string
	Dosage string // texto libre: "200mg (45 pills)"

	ExpiryDate  time.Time  // fecha de la caja
	OpeningDate *time.Time // nil = sin abrir
	Rule        expiration.Rule

	CreatedAt time.Time
}

func (m Medicine) expirationInput() expiration.Input {
	in := expiration.Input{
		ID:      m.ID,
		BoxDate: expiration.FormatDate(m.ExpiryDate),
		Rule:    m.Rule,
	}
	if m.OpeningDate != nil {
		in.OpeningDate = expiration.FormatDate(*m.OpeningDate)
	}
	return in
}

// Entry es un medicamento con su estado calculado para "hoy".
type Entry struct {
	Medicine Medicine
	Status   expiration.Status
	Severity expiration.Severity
	Err      error
}

// Cabinet es la vista del botiquín: vigentes y vencidos, ordenados por vencimiento efectivo.
type Cabinet struct {
	Today   time.Time
	Active  []Entry
	Expired []Entry
	Invalid []Entry
}
