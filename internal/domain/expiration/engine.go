// Package expiration calcula la fecha de vencimiento efectiva de un medicamento
// combinando la fecha impresa en la caja con la regla post-apertura.
//
// Todo es puro: "hoy" siempre llega como parámetro y nada se guarda entre llamadas.
package expiration

import (
	"errors"
	"time"
)

var (
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrInvalidRule       = errors.New("invalid expiration rule")
)

// Status es el resultado derivado; nunca se persiste.
type Status struct {
	EffectiveExpiry time.Time
	DaysLeft        int
	IsExpired       bool

	// RuleIgnored: la regla pedía fecha de apertura y no había, se usó la caja.
	RuleIgnored bool
}

// Compute es la versión de borde: recibe strings YYYY-MM-DD.
// boxDate inválida => ErrInvalidDateFormat. openingDate inválida o vacía => sin apertura.
func Compute(boxDate, openingDate string, rule Rule, today time.Time) (Status, error) {
	if !rule.Valid() {
		return Status{}, ErrInvalidRule
	}
	box, err := ParseDate(boxDate)
	if err != nil {
		return Status{}, err
	}
	return Evaluate(box, ParseOptionalDate(openingDate), rule, today), nil
}

// Evaluate trabaja con fechas ya validadas.
func Evaluate(box time.Time, opened *time.Time, rule Rule, today time.Time) Status {
	effective := Midnight(box)

	var st Status
	if rule.NeedsOpeningDate() {
		if opened == nil {
			st.RuleIgnored = true
		} else {
			calculated := rule.apply(Midnight(*opened))
			// La caja es techo: la regla solo puede acortar.
			if calculated.Before(effective) {
				effective = calculated
			}
		}
	}

	st.EffectiveExpiry = effective
	st.DaysLeft = daysBetween(today, effective)
	st.IsExpired = st.DaysLeft < 0
	return st
}
