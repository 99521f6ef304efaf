package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vetco/internal/domain/healthrecords"
)

type healthRecordsRepo struct {
	mu   sync.RWMutex
	byID map[string]healthrecords.HealthRecord
}

func NewHealthRecordsRepo() healthrecords.Repository {
	return &healthRecordsRepo{
		byID: make(map[string]healthrecords.HealthRecord),
	}
}

func (r *healthRecordsRepo) Create(ctx context.Context, rec healthrecords.HealthRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("record already exists")
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *healthRecordsRepo) GetByID(ctx context.Context, id string) (healthrecords.HealthRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return healthrecords.HealthRecord{}, healthrecords.ErrNotFound
	}
	return rec, nil
}

func (r *healthRecordsRepo) ListByAnimal(ctx context.Context, animalID string) ([]healthrecords.HealthRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []healthrecords.HealthRecord
	for _, rec := range r.byID {
		if rec.AnimalID == animalID {
			out = append(out, rec)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].RecordDate.After(out[j].RecordDate)
	})
	return out, nil
}

func (r *healthRecordsRepo) ListRecent(ctx context.Context, limit int) ([]healthrecords.HealthRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]healthrecords.HealthRecord, 0, len(r.byID))
	for _, rec := range r.byID {
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].RecordDate.After(out[j].RecordDate)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *healthRecordsRepo) Update(ctx context.Context, rec healthrecords.HealthRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rec.ID]; !exists {
		return healthrecords.ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *healthRecordsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return healthrecords.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *healthRecordsRepo) DeleteByAnimal(ctx context.Context, animalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, rec := range r.byID {
		if rec.AnimalID == animalID {
			delete(r.byID, id)
		}
	}
	return nil
}
