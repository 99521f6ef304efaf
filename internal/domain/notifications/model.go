package notifications

import "time"

// Notification es estado de UI por usuario. No se persiste: se pierde al
// reiniciar el proceso.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
