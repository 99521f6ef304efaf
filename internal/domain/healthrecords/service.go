package healthrecords

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

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Title       string
	Description string
	Treatment   string
	VetName     string
	Cost        *float64
}

// Create registra un health record. record_date lo asigna el servidor
// al momento del alta; el cliente no lo manda.
func (s *Service) Create(ctx context.Context, animalID string, in CreateInput) (HealthRecord, error) {
	if strings.TrimSpace(animalID) == "" {
		return HealthRecord{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return HealthRecord{}, ErrInvalidInput
	}

	now := s.now()
	rec := HealthRecord{
		ID:          uuid.NewString(),
		AnimalID:    animalID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Treatment:   strings.TrimSpace(in.Treatment),
		VetName:     strings.TrimSpace(in.VetName),
		Cost:        in.Cost,
		RecordDate:  now,
		CreatedAt:   now,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return HealthRecord{}, err
	}
	return rec, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (HealthRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return HealthRecord{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]HealthRecord, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByAnimal(ctx, animalID)
}

// ListRecent alimenta el dashboard del rol vet.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]HealthRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListRecent(ctx, limit)
}

func (s *Service) Update(ctx context.Context, id string, in CreateInput) (HealthRecord, error) {
	rec, err := s.GetByID(ctx, id)
	if err != nil {
		return HealthRecord{}, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return HealthRecord{}, ErrInvalidInput
	}

	rec.Title = strings.TrimSpace(in.Title)
	rec.Description = strings.TrimSpace(in.Description)
	rec.Treatment = strings.TrimSpace(in.Treatment)
	rec.VetName = strings.TrimSpace(in.VetName)
	rec.Cost = in.Cost

	if err := s.repo.Update(ctx, rec); err != nil {
		return HealthRecord{}, err
	}
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// DeleteByAnimal implementa animals.RecordsPurger (cascada al borrar animal).
func (s *Service) DeleteByAnimal(ctx context.Context, animalID string) error {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return ErrInvalidInput
	}
	return s.repo.DeleteByAnimal(ctx, animalID)
}
