package reminders

import "context"

type Repository interface {
	Create(ctx context.Context, r Reminder) error
	Update(ctx context.Context, r Reminder) error
	GetByID(ctx context.Context, id string) (Reminder, error)
	// ListByHousehold devuelve en orden de inserción.
	ListByHousehold(ctx context.Context, householdID string) ([]Reminder, error)
	Delete(ctx context.Context, id string) error
}
