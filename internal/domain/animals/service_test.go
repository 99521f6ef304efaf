package animals

import (
	"context"
	"errors"
	"sort"
	"testing"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Animal
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Animal{}}
}

func (r *testRepo) Create(_ context.Context, a Animal) error {
	if _, ok := r.byID[a.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Animal, error) {
	a, ok := r.byID[id]
	if !ok {
		return Animal{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) ListByFarmer(_ context.Context, farmerID string) ([]Animal, error) {
	var out []Animal
	for _, a := range r.byID {
		if a.FarmerID == farmerID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *testRepo) Update(_ context.Context, a Animal) error {
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) CountByFarmer(_ context.Context, farmerID string) (int, error) {
	n := 0
	for _, a := range r.byID {
		if a.FarmerID == farmerID {
			n++
		}
	}
	return n, nil
}

type countingPurger struct {
	calls    int
	byAnimal []string
}

func (p *countingPurger) DeleteByAnimal(_ context.Context, animalID string) error {
	p.calls++
	p.byAnimal = append(p.byAnimal, animalID)
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestCreate_DefaultsToHealthy(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	a, err := svc.Create(context.Background(), "farmer-1", CreateInput{Name: "Bella", Type: "cattle"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.HealthStatus != StatusHealthy {
		t.Fatalf("expected default status healthy, got %q", a.HealthStatus)
	}
	if a.Age != nil || a.Weight != nil {
		t.Fatalf("age and weight must stay absent when not provided")
	}
}

func TestCreate_OptionalFieldsKept(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	age := 24
	weight := 350.5
	a, err := svc.Create(context.Background(), "farmer-1", CreateInput{
		Name:         "Bella",
		Type:         "cattle",
		Age:          &age,
		Weight:       &weight,
		HealthStatus: "pregnant",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Age == nil || *a.Age != 24 {
		t.Fatalf("expected age 24, got %v", a.Age)
	}
	if a.Weight == nil || *a.Weight != 350.5 {
		t.Fatalf("expected weight 350.5, got %v", a.Weight)
	}
	if a.HealthStatus != StatusPregnant {
		t.Fatalf("expected status pregnant, got %q", a.HealthStatus)
	}
}

func TestDelete_PurgesRecordsAndRemoves(t *testing.T) {
	repo := newTestRepo()
	purger := &countingPurger{}
	svc := NewService(repo, purger)

	a, err := svc.Create(context.Background(), "farmer-1", CreateInput{Name: "Bella"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(context.Background(), a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if purger.calls != 1 || purger.byAnimal[0] != a.ID {
		t.Fatalf("expected one purge for %s, got %+v", a.ID, purger)
	}

	// segundo delete: ya no existe
	if err := svc.Delete(context.Background(), a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	// y no aparece en el listado
	list, err := svc.ListByFarmer(context.Background(), "farmer-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("deleted animal still listed: %+v", list)
	}
}

func TestHealthStatus_Label(t *testing.T) {
	if got := StatusRecovering.Label(); got != "Recovering" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := HealthStatus("quarantined").Label(); got != "Unknown" {
		t.Fatalf("unknown status must render the generic label, got %q", got)
	}
}

func TestOwnerOf(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	a, _ := svc.Create(context.Background(), "farmer-1", CreateInput{Name: "Bella"})

	owner, err := svc.OwnerOf(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if owner != "farmer-1" {
		t.Fatalf("expected farmer-1, got %q", owner)
	}

	if _, err := svc.OwnerOf(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
