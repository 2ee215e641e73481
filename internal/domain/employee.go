package domain

import "time"

type Employee struct {
	ID          int64     `json:"id"`
	EmpID       string    `json:"emp_id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Designation string    `json:"designation"`
	Manager     string    `json:"manager"`
	DOB         *string   `json:"dob"`
	JoinDate    *string   `json:"join_date"`
	RelieveDate *string   `json:"relieve_date"`
	Address     string    `json:"address"`
	Photo       *string   `json:"photo"`
	Resume      *string   `json:"resume"`
	CreatedAt   time.Time `json:"created_at"`
}
