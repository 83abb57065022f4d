package members

import "time"

const (
	DefaultCondition = "None Specified"
	DefaultAllergies = "None Specified"
	DefaultDosage    = "N/A"
	DefaultSchedule  = "Unscheduled"
)

// Medication es un medicamento que toma el integrante.
// Schedule es texto libre ("7:00 AM", "As Needed", "Before Bed").
type Medication struct {
	ID       string
	Name     string
	Dosage   string
	Schedule string
}

// Member es un integrante de la familia dentro de un hogar.
type Member struct {
	ID          string
	HouseholdID string

	Name             string
	Age              int
	ChronicCondition string
	Allergies        string

	Medications []Medication

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAllergies: "None" y "None Specified" cuentan como sin alergias.
func (m Member) HasAllergies() bool {
	switch normalizeNone(m.Allergies) {
	case "", "none", "none specified":
		return false
	}
	return true
}
