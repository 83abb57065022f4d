package expiration

import (
	"strings"
	"time"
)

// Rule define cuánto dura un medicamento una vez abierto.
// @Enum BOX_DATE, TWO_WEEKS, THREE_MONTHS, SIX_MONTHS
type Rule string

const (
	RuleBoxDate     Rule = "BOX_DATE"
	RuleTwoWeeks    Rule = "TWO_WEEKS"
	RuleThreeMonths Rule = "THREE_MONTHS"
	RuleSixMonths   Rule = "SIX_MONTHS"
)

// Rules lista las reglas soportadas en el orden en que se muestran al usuario.
var Rules = []Rule{RuleBoxDate, RuleTwoWeeks, RuleThreeMonths, RuleSixMonths}

// ParseRule normaliza la regla recibida en el borde (JSON, query).
// Vacío = BOX_DATE, el default del formulario.
func ParseRule(s string) (Rule, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return RuleBoxDate, nil
	}
	r := Rule(s)
	if !r.Valid() {
		return "", ErrInvalidRule
	}
	return r, nil
}

func (r Rule) Valid() bool {
	switch r {
	case RuleBoxDate, RuleTwoWeeks, RuleThreeMonths, RuleSixMonths:
		return true
	default:
		return false
	}
}

// NeedsOpeningDate indica si la regla depende de la fecha de apertura.
func (r Rule) NeedsOpeningDate() bool {
	return r.Valid() && r != RuleBoxDate
}

// apply suma la ventana post-apertura a la fecha de apertura.
// Los meses usan AddDate (31 ene + 1 mes = 3 mar), no una cantidad fija de días.
func (r Rule) apply(opened time.Time) time.Time {
	switch r {
	case RuleTwoWeeks:
		return opened.AddDate(0, 0, 14)
	case RuleThreeMonths:
		return opened.AddDate(0, 3, 0)
	case RuleSixMonths:
		return opened.AddDate(0, 6, 0)
	default:
		return opened
	}
}
