// Package memory implementa los Repository en memoria (desarrollo local
// sin DB_DSN y tests). Mapa + RWMutex; sin persistencia.
package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"vetco/internal/domain/users"
)

type usersRepo struct {
	mu   sync.RWMutex
	byID map[string]users.User
}

func NewUsersRepo() users.Repository {
	return &usersRepo{
		byID: make(map[string]users.User),
	}
}

func (r *usersRepo) Create(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	if _, exists := r.byID[u.ID]; exists {
		return errors.New("user already exists")
	}
	r.byID[u.ID] = u
	return nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) Update(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[u.ID]; !exists {
		return users.ErrNotFound
	}
	r.byID[u.ID] = u
	return nil
}

func (r *usersRepo) CountByRole(ctx context.Context) (map[users.Role]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[users.Role]int)
	for _, u := range r.byID {
		counts[u.Role]++
	}
	return counts, nil
}
