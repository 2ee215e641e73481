package repository

import (
	"github.com/fieldforce-dev/workforce/backend/internal/domain"
)

func (r *Repository) GetUserByID(id int64) (*domain.User, error) {
	query := `
		SELECT user_id, password_hash, full_name, email, role, is_active, created_at
		FROM users WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	user := &domain.User{
		ID: id,
	}

	dst := []any{&user.UserID, &user.PasswordHash, &user.FullName, &user.Email, &user.Role, &user.IsActive, &user.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByUserID(userID string) (*domain.User, error) {
	query := `
		SELECT id, password_hash, full_name, email, role, is_active, created_at
		FROM users WHERE user_id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	user := &domain.User{
		UserID: userID,
	}

	dst := []any{&user.ID, &user.PasswordHash, &user.FullName, &user.Email, &user.Role, &user.IsActive, &user.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, userID).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetAllUsers() ([]*domain.User, error) {
	query := `
		SELECT id, user_id, full_name, email, role, is_active, created_at
		FROM users ORDER BY id DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		dst := []any{&user.ID, &user.UserID, &user.FullName, &user.Email, &user.Role, &user.IsActive, &user.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *Repository) CreateUser(user *domain.User) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO users (user_id, password_hash, full_name, email, role, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id, is_active, created_at
	`

	args := []any{user.UserID, user.PasswordHash, user.FullName, user.Email, user.Role}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.IsActive, &user.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateUserStatus(id int64, isActive bool) error {
	query := `
		UPDATE users SET is_active = $1 WHERE id = $2
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, isActive, id)
	if err != nil {
		return err
	}

	return expectAffected(res)
}

func (r *Repository) DeleteUser(id int64) error {
	query := `
		DELETE FROM users WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return expectAffected(res)
}
