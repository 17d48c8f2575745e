package entity

import "time"

// Estados de usuario.
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

// User representa un usuario del sistema: pertenece a una Company, tiene un rol
// y un conjunto de sedes accesibles. Un usuario no puede actuar sobre una sede
// fuera de su conjunto (se verifica en la capa de aplicación).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	RoleID       string
	FacilityIDs  []string // sedes accesibles
	Status       string   // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasFacility informa si la sede está en el conjunto accesible del usuario.
func (u *User) HasFacility(facilityID string) bool {
	for _, id := range u.FacilityIDs {
		if id == facilityID {
			return true
		}
	}
	return false
}
