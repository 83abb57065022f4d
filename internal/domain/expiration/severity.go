package expiration

// Severity es la clasificación visual del estado.
// @Enum expired, warning, ok
type Severity string

const (
	SeverityExpired Severity = "expired"
	SeverityWarning Severity = "warning"
	SeverityOK      Severity = "ok"
)

// DefaultWarningHorizonDays: se resalta lo que vence en los próximos ~3 meses.
const DefaultWarningHorizonDays = 90

// Policy agrupa los umbrales ajustables.
type Policy struct {
	WarningHorizonDays int
}

func DefaultPolicy() Policy {
	return Policy{WarningHorizonDays: DefaultWarningHorizonDays}
}

func (p Policy) Severity(st Status) Severity {
	if st.IsExpired {
		return SeverityExpired
	}
	if st.DaysLeft <= p.WarningHorizonDays {
		return SeverityWarning
	}
	return SeverityOK
}
