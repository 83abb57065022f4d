package expiration

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout es el único formato de fecha aceptado en el borde.
const DateLayout = "2006-01-02"

// FarFuture es la clave de orden para entradas sin fecha efectiva: quedan al final.
var FarFuture = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

const secondsPerDay = 24 * 60 * 60

// ParseDate valida una fecha YYYY-MM-DD y la devuelve como medianoche UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return t, nil
}

// ParseOptionalDate trata vacío o inválido como "sin fecha".
func ParseOptionalDate(s string) *time.Time {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil
	}
	return &t
}

// FormatDate devuelve YYYY-MM-DD, o "" para la fecha cero.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// Midnight se queda con la fecha calendario de t (en su propia zona)
// y la expresa como medianoche UTC, para que las restas sean en días enteros.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween usa segundos Unix: time.Duration satura a ~292 años.
func daysBetween(from, to time.Time) int {
	return int((Midnight(to).Unix() - Midnight(from).Unix()) / secondsPerDay)
}
