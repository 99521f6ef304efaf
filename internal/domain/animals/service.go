package animals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// RecordsPurger borra los health records de un animal al eliminarlo.
// Interface chica para no importar el paquete healthrecords (rompe ciclos).
// En Postgres el FK ON DELETE CASCADE hace lo mismo; el purger cubre el
// adapter in-memory y mantiene el contrato explícito.
type RecordsPurger interface {
	DeleteByAnimal(ctx context.Context, animalID string) error
}

type Service struct {
	repo   Repository
	purger RecordsPurger
	now    func() time.Time
}

func NewService(repo Repository, purger RecordsPurger) *Service {
	return &Service{
		repo:   repo,
		purger: purger,
		now:    time.Now,
	}
}

type CreateInput struct {
	Name              string
	Type              string
	Breed             string
	Gender            string
	Age               *int
	Weight            *float64
	HealthStatus      string
	VaccinationStatus string
	Description       string
}

func (s *Service) Create(ctx context.Context, farmerID string, in CreateInput) (Animal, error) {
	if strings.TrimSpace(farmerID) == "" {
		return Animal{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Animal{}, ErrInvalidInput
	}

	status := HealthStatus(strings.TrimSpace(in.HealthStatus))
	if status == "" {
		status = StatusHealthy
	}

	now := s.now()
	a := Animal{
		ID:                uuid.NewString(),
		FarmerID:          farmerID,
		Name:              strings.TrimSpace(in.Name),
		Type:              strings.TrimSpace(in.Type),
		Breed:             strings.TrimSpace(in.Breed),
		Gender:            strings.TrimSpace(in.Gender),
		Age:               in.Age,
		Weight:            in.Weight,
		HealthStatus:      status,
		VaccinationStatus: strings.TrimSpace(in.VaccinationStatus),
		Description:       strings.TrimSpace(in.Description),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByFarmer(ctx context.Context, farmerID string) ([]Animal, error) {
	farmerID = strings.TrimSpace(farmerID)
	if farmerID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByFarmer(ctx, farmerID)
}

// Update reemplaza los campos editables del formulario (el diálogo de
// edición manda el form completo, no un PATCH parcial).
func (s *Service) Update(ctx context.Context, id string, in CreateInput) (Animal, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return Animal{}, ErrInvalidInput
	}

	status := HealthStatus(strings.TrimSpace(in.HealthStatus))
	if status == "" {
		status = StatusHealthy
	}

	a.Name = strings.TrimSpace(in.Name)
	a.Type = strings.TrimSpace(in.Type)
	a.Breed = strings.TrimSpace(in.Breed)
	a.Gender = strings.TrimSpace(in.Gender)
	a.Age = in.Age
	a.Weight = in.Weight
	a.HealthStatus = status
	a.VaccinationStatus = strings.TrimSpace(in.VaccinationStatus)
	a.Description = strings.TrimSpace(in.Description)
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// Delete elimina el animal y, en cascada, sus health records.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}

	if s.purger != nil {
		if err := s.purger.DeleteByAnimal(ctx, id); err != nil {
			return err
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) CountByFarmer(ctx context.Context, farmerID string) (int, error) {
	farmerID = strings.TrimSpace(farmerID)
	if farmerID == "" {
		return 0, ErrInvalidInput
	}
	return s.repo.CountByFarmer(ctx, farmerID)
}

// OwnerOf expone el farmerID de un animal. Lo usa healthrecords para
// autorizar sin importar este paquete completo.
func (s *Service) OwnerOf(ctx context.Context, animalID string) (string, error) {
	a, err := s.GetByID(ctx, animalID)
	if err != nil {
		return "", err
	}
	return a.FarmerID, nil
}
