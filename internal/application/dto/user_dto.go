package dto

import "time"

// RegisterRequest registro de usuario dentro de una empresa.
type RegisterRequest struct {
	CompanyID   string   `json:"company_id"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Name        string   `json:"name"`
	RoleID      string   `json:"role_id"`
	FacilityIDs []string `json:"facility_ids"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token + usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse representación pública de un usuario (nunca incluye el hash).
type UserResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	RoleID      string    `json:"role_id"`
	FacilityIDs []string  `json:"facility_ids"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateUserRequest actualización parcial de usuario.
type UpdateUserRequest struct {
	Name        *string   `json:"name"`
	RoleID      *string   `json:"role_id"`
	FacilityIDs *[]string `json:"facility_ids"`
	Status      *string   `json:"status"`
}

// CreateRoleRequest alta de rol con su mapa declarativo de permisos.
type CreateRoleRequest struct {
	Name                string              `json:"name"`
	Level               int                 `json:"level"`
	ScopeLevel          string              `json:"scope_level"`
	Permissions         map[string][]string `json:"permissions"`
	InheritsFromRoleIDs []string            `json:"inherits_from_role_ids"`
}

// UpdateRoleRequest edición de rol.
type UpdateRoleRequest struct {
	Name                *string              `json:"name"`
	Level               *int                 `json:"level"`
	Permissions         *map[string][]string `json:"permissions"`
	InheritsFromRoleIDs *[]string            `json:"inherits_from_role_ids"`
}

// RoleResponse representación pública de un rol.
type RoleResponse struct {
	ID                  string              `json:"id"`
	CompanyID           string              `json:"company_id"`
	Name                string              `json:"name"`
	Level               int                 `json:"level"`
	ScopeLevel          string              `json:"scope_level"`
	Permissions         map[string][]string `json:"permissions"`
	InheritsFromRoleIDs []string            `json:"inherits_from_role_ids,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}
