package animals

import "context"

type Repository interface {
	Create(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	// ListByFarmer devuelve los animales del farmer, created_at descendente.
	ListByFarmer(ctx context.Context, farmerID string) ([]Animal, error)
	Update(ctx context.Context, a Animal) error
	Delete(ctx context.Context, id string) error
	CountByFarmer(ctx context.Context, farmerID string) (int, error)
}
