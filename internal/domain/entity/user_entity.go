package entity

import (
	"time"
)

// Role is the authorization role stored on a user record.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the aggregate root for the credential store.
// Passwords are stored as bcrypt hashes in PasswordHash; Email is the natural
// key every owned collection is scoped by.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
