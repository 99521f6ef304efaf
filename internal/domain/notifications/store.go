package notifications

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("notification not found")

// Store guarda notificaciones en memoria, por usuario. El primer acceso de
// cada usuario siembra las entradas de bienvenida.
type Store struct {
	mu     sync.RWMutex
	byUser map[string][]Notification
	now    func() time.Time
}

func NewStore() *Store {
	return &Store{
		byUser: make(map[string][]Notification),
		now:    time.Now,
	}
}

func (s *Store) seedLocked(userID string) {
	if _, ok := s.byUser[userID]; ok {
		return
	}
	now := s.now()
	s.byUser[userID] = []Notification{
		{
			ID:        uuid.NewString(),
			UserID:    userID,
			Title:     "Welcome to VETCO",
			Body:      "Your account is ready. Add your first animal to get started.",
			CreatedAt: now,
		},
		{
			ID:        uuid.NewString(),
			UserID:    userID,
			Title:     "Complete your profile",
			Body:      "Add a phone number and organization so vets can reach you.",
			CreatedAt: now,
		},
	}
}

// List devuelve las notificaciones del usuario, más recientes primero.
func (s *Store) List(userID string) []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seedLocked(userID)

	items := s.byUser[userID]
	out := make([]Notification, len(items))
	copy(out, items)
	// Las seeds comparten timestamp; el orden de inserción ya es el esperado.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Push agrega una notificación al usuario (eventos internos: registro,
// record nuevo de un vet, etc.).
func (s *Store) Push(userID, title, body string) Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seedLocked(userID)

	n := Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		CreatedAt: s.now(),
	}
	s.byUser[userID] = append(s.byUser[userID], n)
	return n
}

func (s *Store) MarkRead(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seedLocked(userID)

	for i := range s.byUser[userID] {
		if s.byUser[userID][i].ID == id {
			s.byUser[userID][i].Read = true
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) Delete(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seedLocked(userID)

	items := s.byUser[userID]
	for i := range items {
		if items[i].ID == id {
			s.byUser[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
