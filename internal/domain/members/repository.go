package members

import "context"

type Repository interface {
	Create(ctx context.Context, m Member) error
	Update(ctx context.Context, m Member) error
	GetByID(ctx context.Context, id string) (Member, error)
	// ListByHousehold devuelve en orden de inserción.
	ListByHousehold(ctx context.Context, householdID string) ([]Member, error)
	Delete(ctx context.Context, id string) error
}
