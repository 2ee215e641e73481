package repository

import (
	"github.com/fieldforce-dev/workforce/backend/internal/domain"
)

func (r *Repository) GetAllFeedback() ([]*domain.Feedback, error) {
	query := `
		SELECT id, user_id, customer, notes, photo, lat, lng, created_at
		FROM feedback ORDER BY id DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feedback := make([]*domain.Feedback, 0)
	for rows.Next() {
		f := &domain.Feedback{}
		dst := []any{&f.ID, &f.UserID, &f.Customer, &f.Notes, &f.Photo, &f.Lat, &f.Lng, &f.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		feedback = append(feedback, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return feedback, nil
}

func (r *Repository) CreateFeedback(f *domain.Feedback) error {
	query := `
		INSERT INTO feedback (user_id, customer, notes, photo, lat, lng)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{f.UserID, f.Customer, f.Notes, f.Photo, f.Lat, f.Lng}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&f.ID, &f.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateFeedback(f *domain.Feedback) error {
	query := `
		UPDATE feedback SET notes = $1, lat = $2, lng = $3 WHERE id = $4
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, f.Notes, f.Lat, f.Lng, f.ID)
	if err != nil {
		return err
	}

	return expectAffected(res)
}

func (r *Repository) DeleteFeedback(id int64) error {
	query := `
		DELETE FROM feedback WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return expectAffected(res)
}
