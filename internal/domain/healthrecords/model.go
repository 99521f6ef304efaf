package healthrecords

import "time"

// HealthRecord es una entrada del historial sanitario de un animal.
// Pertenece a exactamente un animal y, transitivamente, a su farmer.
type HealthRecord struct {
	ID       string
	AnimalID string

	Title       string
	Description string
	Treatment   string
	VetName     string

	// Cost en moneda local; nil = sin dato (el formulario manda texto).
	Cost *float64

	RecordDate time.Time
	CreatedAt  time.Time
}
