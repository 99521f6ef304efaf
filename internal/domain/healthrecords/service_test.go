package healthrecords

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

type testRepo struct {
	byID map[string]HealthRecord
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]HealthRecord{}}
}

func (r *testRepo) Create(_ context.Context, rec HealthRecord) error {
	if _, ok := r.byID[rec.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (HealthRecord, error) {
	rec, ok := r.byID[id]
	if !ok {
		return HealthRecord{}, ErrNotFound
	}
	return rec, nil
}

func (r *testRepo) ListByAnimal(_ context.Context, animalID string) ([]HealthRecord, error) {
	var out []HealthRecord
	for _, rec := range r.byID {
		if rec.AnimalID == animalID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordDate.After(out[j].RecordDate) })
	return out, nil
}

func (r *testRepo) ListRecent(_ context.Context, limit int) ([]HealthRecord, error) {
	out := make([]HealthRecord, 0, len(r.byID))
	for _, rec := range r.byID {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordDate.After(out[j].RecordDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *testRepo) Update(_ context.Context, rec HealthRecord) error {
	if _, ok := r.byID[rec.ID]; !ok {
		return ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) DeleteByAnimal(_ context.Context, animalID string) error {
	for id, rec := range r.byID {
		if rec.AnimalID == animalID {
			delete(r.byID, id)
		}
	}
	return nil
}

func TestCreate_RecordDateIsServerAssigned(t *testing.T) {
	svc := NewService(newTestRepo())
	fixed := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	rec, err := svc.Create(context.Background(), "animal-1", CreateInput{Title: "Vaccination"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rec.RecordDate.Equal(fixed) {
		t.Fatalf("record_date must be assigned at creation, got %v", rec.RecordDate)
	}
	if !rec.CreatedAt.Equal(fixed) {
		t.Fatalf("created_at must be assigned at creation, got %v", rec.CreatedAt)
	}
}

func TestListByAnimal_ScopedAndOrdered(t *testing.T) {
	svc := NewService(newTestRepo())

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	for i, animal := range []string{"animal-A", "animal-B", "animal-A"} {
		i, animal := i, animal
		svc.now = func() time.Time { return base.Add(time.Duration(i) * time.Hour) }
		if _, err := svc.Create(context.Background(), animal, CreateInput{Title: "Check"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	listA, err := svc.ListByAnimal(context.Background(), "animal-A")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listA) != 2 {
		t.Fatalf("expected 2 records for animal-A, got %d", len(listA))
	}
	// más reciente primero
	if listA[0].RecordDate.Before(listA[1].RecordDate) {
		t.Fatalf("records must be ordered record_date desc")
	}
	for _, rec := range listA {
		if rec.AnimalID != "animal-A" {
			t.Fatalf("record of %s leaked into animal-A's list", rec.AnimalID)
		}
	}

	listB, err := svc.ListByAnimal(context.Background(), "animal-B")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listB) != 1 {
		t.Fatalf("expected 1 record for animal-B, got %d", len(listB))
	}
}

func TestCreate_RequiresTitle(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Create(context.Background(), "animal-1", CreateInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without title, got %v", err)
	}
}

func TestDeleteByAnimal_RemovesOnlyThatAnimal(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	a1, _ := svc.Create(context.Background(), "animal-A", CreateInput{Title: "One"})
	svc.Create(context.Background(), "animal-B", CreateInput{Title: "Two"})

	if err := svc.DeleteByAnimal(context.Background(), "animal-A"); err != nil {
		t.Fatalf("delete by animal: %v", err)
	}

	if _, err := svc.GetByID(context.Background(), a1.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("record of purged animal should be gone, got %v", err)
	}
	listB, _ := svc.ListByAnimal(context.Background(), "animal-B")
	if len(listB) != 1 {
		t.Fatalf("other animal's records must survive the purge")
	}
}
