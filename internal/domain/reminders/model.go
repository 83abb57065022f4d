package reminders

import (
	"fmt"
	"time"
)

// StockStatus se deriva siempre de la cantidad y el umbral; nunca se guarda.
// @Enum In Stock, Low, Empty
type StockStatus string

const (
	StockInStock StockStatus = "In Stock"
	StockLow     StockStatus = "Low"
	StockEmpty   StockStatus = "Empty"
)

// MaxPills acota el stock de un recordatorio.
const MaxPills = 100000

func StockStatusFor(count, threshold int) StockStatus {
	if count <= 0 {
		return StockEmpty
	}
	if count <= threshold {
		return StockLow
	}
	return StockInStock
}

// Alert: Low y Empty piden reposición.
func (s StockStatus) Alert() bool {
	return s == StockLow || s == StockEmpty
}

// Reminder es una toma programada de un medicamento para un integrante,
// con control de stock.
type Reminder struct {
	ID          string
	HouseholdID string

	MedicineName string
	Member       string // nombre del integrante, texto libre

	PillsRemaining    int
	Dosage            int // pastillas por toma
	LowStockThreshold int

	Schedule TimeOfDay

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r Reminder) StockStatus() StockStatus {
	return StockStatusFor(r.PillsRemaining, r.LowStockThreshold)
}

// Change es el resultado de una operación que mueve el stock.
type Change struct {
	Reminder Reminder
	Status   StockStatus
	Alert    bool
}

// AlertMessage es el texto que se muestra al usuario cuando Alert es true.
func (c Change) AlertMessage() string {
	if !c.Alert {
		return ""
	}
	label := "LOW STOCK"
	if c.Status == StockEmpty {
		label = "EMPTY STOCK"
	}
	return fmt.Sprintf("%s's %s is now %s! Only %d doses remaining. Time to restock!",
		c.Reminder.Member, c.Reminder.MedicineName, label, c.Reminder.PillsRemaining)
}
