package domain

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
)

// Attendance 以 (EmployeeID, Date) 唯一确定一条记录
type Attendance struct {
	EmployeeID int64            `json:"employee_id"`
	Date       string           `json:"date"`
	Login      *string          `json:"login"`
	Logout     *string          `json:"logout"`
	Status     AttendanceStatus `json:"status"`
}
