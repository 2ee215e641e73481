package repository

import (
	"github.com/fieldforce-dev/workforce/backend/internal/domain"
)

func (r *Repository) GetAttendanceByEmployee(employeeID int64) ([]*domain.Attendance, error) {
	query := `
		SELECT employee_id, date::text, login::text, logout::text, status
		FROM attendance
		WHERE employee_id = $1
		ORDER BY date DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.Attendance, 0)
	for rows.Next() {
		a := &domain.Attendance{}
		if err := rows.Scan(&a.EmployeeID, &a.Date, &a.Login, &a.Logout, &a.Status); err != nil {
			return nil, err
		}
		records = append(records, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// CheckIn 按 (employee_id, date) 插入或覆盖当天的签到时间，并重新标记为出勤
func (r *Repository) CheckIn(employeeID int64, date string, loginTime string) error {
	query := `
		INSERT INTO attendance (employee_id, date, login, status)
		VALUES ($1, $2::date, $3::time, $4)
		ON CONFLICT (employee_id, date)
		DO UPDATE SET login = EXCLUDED.login, status = EXCLUDED.status
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, employeeID, date, loginTime, domain.AttendancePresent)
	return err
}

// CheckOut 只更新已存在的当天记录，返回受影响的行数；没有签到记录时返回 0 而不是错误
func (r *Repository) CheckOut(employeeID int64, date string, logoutTime string) (int64, error) {
	query := `
		UPDATE attendance SET logout = $1::time WHERE employee_id = $2 AND date = $3::date
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, logoutTime, employeeID, date)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
