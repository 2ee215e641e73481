package repository

import (
	"github.com/fieldforce-dev/workforce/backend/internal/domain"
)

func (r *Repository) GetActiveAds() ([]*domain.Ad, error) {
	query := `
		SELECT id, title, image, is_active, created_at
		FROM ads WHERE is_active ORDER BY id DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ads := make([]*domain.Ad, 0)
	for rows.Next() {
		ad := &domain.Ad{}
		if err := rows.Scan(&ad.ID, &ad.Title, &ad.Image, &ad.IsActive, &ad.CreatedAt); err != nil {
			return nil, err
		}
		ads = append(ads, ad)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ads, nil
}

func (r *Repository) CreateAd(ad *domain.Ad) error {
	query := `
		INSERT INTO ads (title, image, is_active)
		VALUES ($1, $2, TRUE)
		RETURNING id, is_active, created_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, ad.Title, ad.Image).Scan(&ad.ID, &ad.IsActive, &ad.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) ToggleAd(id int64) error {
	query := `
		UPDATE ads SET is_active = NOT is_active WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return expectAffected(res)
}

func (r *Repository) DeleteAd(id int64) error {
	query := `
		DELETE FROM ads WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return expectAffected(res)
}
