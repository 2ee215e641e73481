package repository

import (
	"github.com/fieldforce-dev/workforce/backend/internal/domain"
)

func (r *Repository) GetAllEmployees() ([]*domain.Employee, error) {
	query := `
		SELECT
			id, emp_id, user_id, name, designation, manager,
			dob::text, join_date::text, relieve_date::text,
			address, photo, resume, created_at
		FROM employees ORDER BY id DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		e := &domain.Employee{}
		dst := []any{
			&e.ID, &e.EmpID, &e.UserID, &e.Name, &e.Designation, &e.Manager,
			&e.DOB, &e.JoinDate, &e.RelieveDate,
			&e.Address, &e.Photo, &e.Resume, &e.CreatedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *Repository) CreateEmployee(e *domain.Employee) error {
	query := `
		INSERT INTO employees
			(emp_id, user_id, name, designation, manager, dob, join_date, relieve_date, address, photo, resume)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7::date, $8::date, $9, $10, $11)
		RETURNING id, created_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		e.EmpID, e.UserID, e.Name, e.Designation, e.Manager,
		e.DOB, e.JoinDate, e.RelieveDate,
		e.Address, e.Photo, e.Resume,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.CreatedAt); err != nil {
		return err
	}

	return nil
}
