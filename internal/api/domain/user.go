package domain

import "time"

// User is an account that can log in to the API.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	RoleID       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role is a named authorization level. Tokens carry role names, not ids.
type Role struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Built-in role names seeded by migrations.
const (
	RoleAdmin    = "Admin"
	RoleStaff    = "Staff"
	RoleCustomer = "Customer"
)
