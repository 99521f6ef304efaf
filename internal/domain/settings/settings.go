package settings

import "sync"

// Preferences son los toggles de notificación de la pantalla de settings.
// Estado de UI, en memoria por usuario; no se persiste.
type Preferences struct {
	EmailNotifications   bool `json:"email_notifications"`
	SMSNotifications     bool `json:"sms_notifications"`
	BrowserNotifications bool `json:"browser_notifications"`
}

func defaultPreferences() Preferences {
	return Preferences{
		EmailNotifications:   true,
		SMSNotifications:     false,
		BrowserNotifications: true,
	}
}

type Store struct {
	mu     sync.RWMutex
	byUser map[string]Preferences
}

func NewStore() *Store {
	return &Store{byUser: make(map[string]Preferences)}
}

func (s *Store) Get(userID string) Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.byUser[userID]; ok {
		return p
	}
	return defaultPreferences()
}

func (s *Store) Save(userID string, p Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[userID] = p
}
