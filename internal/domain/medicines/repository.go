package medicines

import "context"

type Repository interface {
	Create(ctx context.Context, m Medicine) error
	GetByID(ctx context.Context, id string) (Medicine, error)
	// ListByHousehold devuelve en orden de inserción (el orden estable depende de esto).
	ListByHousehold(ctx context.Context, householdID string) ([]Medicine, error)
	Delete(ctx context.Context, id string) error
}
