package domain

import "time"

type Feedback struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Customer  string    `json:"customer"`
	Notes     string    `json:"notes"`
	Photo     *string   `json:"photo"`
	Lat       *float64  `json:"lat"`
	Lng       *float64  `json:"lng"`
	CreatedAt time.Time `json:"created_at"`
}
