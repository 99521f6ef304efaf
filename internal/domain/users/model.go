package users

import "time"

// Role define los roles soportados. Se fija en el registro y dirige
// la navegación y la visibilidad de datos.
// @Enum farmer, vet, admin
type Role string

const (
	RoleFarmer Role = "farmer"
	RoleVet    Role = "vet"
	RoleAdmin  Role = "admin"
)

// Valid indica si el rol es uno de los tres conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleVet, RoleAdmin:
		return true
	}
	return false
}

// User es el perfil almacenado en la tabla users (espejo del auth record).
type User struct {
	ID    string
	Email string

	FullName string
	Role     Role
	Phone    string

	Address      string
	Organization string
	Bio          string
	AvatarPath   string // path relativo en storage, no URL completa

	CreatedAt time.Time
	UpdatedAt time.Time
}
