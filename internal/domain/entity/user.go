package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleUser     = "user"
	RoleEmployee = "employee"
)

// User representa un usuario del portal.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, user, employee
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
