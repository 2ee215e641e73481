package domain

import "time"

type Customer struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Address    string    `json:"address"`
	AssignedTo *int64    `json:"assigned_to"` // 为空表示未分配
	CreatedAt  time.Time `json:"created_at"`
}
