package domain

import "time"

type Ad struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Image     *string   `json:"image"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
