package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vetco/internal/domain/animals"
)

type animalsRepo struct {
	mu   sync.RWMutex
	byID map[string]animals.Animal
}

func NewAnimalsRepo() animals.Repository {
	return &animalsRepo{
		byID: make(map[string]animals.Animal),
	}
}

func (r *animalsRepo) Create(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("animal already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *animalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}

func (r *animalsRepo) ListByFarmer(ctx context.Context, farmerID string) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []animals.Animal
	for _, a := range r.byID {
		if a.FarmerID == farmerID {
			out = append(out, a)
		}
	}

	// más recientes primero, como el ORDER BY del adapter SQL
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *animalsRepo) Update(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return animals.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *animalsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return animals.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *animalsRepo) CountByFarmer(ctx context.Context, farmerID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, a := range r.byID {
		if a.FarmerID == farmerID {
			n++
		}
	}
	return n, nil
}
