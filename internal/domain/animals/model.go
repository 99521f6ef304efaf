package animals

import "time"

// HealthStatus define los estados de salud soportados.
// @Enum healthy, sick, recovering, pregnant
type HealthStatus string

const (
	StatusHealthy    HealthStatus = "healthy"
	StatusSick       HealthStatus = "sick"
	StatusRecovering HealthStatus = "recovering"
	StatusPregnant   HealthStatus = "pregnant"
)

// Label devuelve la etiqueta para UI. Un valor fuera del enum rinde la
// etiqueta genérica, nunca rompe el render.
func (s HealthStatus) Label() string {
	switch s {
	case StatusHealthy:
		return "Healthy"
	case StatusSick:
		return "Sick"
	case StatusRecovering:
		return "Recovering"
	case StatusPregnant:
		return "Pregnant"
	default:
		return "Unknown"
	}
}

// Animal representa un animal registrado por un farmer.
type Animal struct {
	ID       string
	FarmerID string

	Name   string
	Type   string // cattle, sheep, goat, etc. Texto libre del formulario.
	Breed  string
	Gender string

	// Edad en meses y peso en kg. Punteros: nil = no informado
	// (el formulario manda texto y "" mapea a ausente, no a cero).
	Age    *int
	Weight *float64

	HealthStatus      HealthStatus
	VaccinationStatus string
	Description       string

	CreatedAt time.Time
	UpdatedAt time.Time
}
