package entity

import "time"

// User usuario del sistema.
type User struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, bodeguero, vendedor
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
