package healthrecords

import "context"

type Repository interface {
	Create(ctx context.Context, rec HealthRecord) error
	GetByID(ctx context.Context, id string) (HealthRecord, error)
	// ListByAnimal devuelve los records del animal, record_date descendente.
	ListByAnimal(ctx context.Context, animalID string) ([]HealthRecord, error)
	// ListRecent devuelve los últimos records de todos los animales (vista vet).
	ListRecent(ctx context.Context, limit int) ([]HealthRecord, error)
	Update(ctx context.Context, rec HealthRecord) error
	Delete(ctx context.Context, id string) error
	DeleteByAnimal(ctx context.Context, animalID string) error
}
