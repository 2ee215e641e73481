package domain

import (
	"time"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

type User struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"user_id"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Email        *string   `json:"email"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
