package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fieldforce-dev/workforce/backend/internal/domain"
)

const (
	customerListLimit = 500
	// 每条批量插入语句包含的最大行数，避免超过 PostgreSQL 的参数数量限制
	customerImportBatchSize = 1000
)

// GetCustomers 返回最多 500 个客户，employeeID 不为空时只返回分配给该员工的客户
func (r *Repository) GetCustomers(employeeID *int64) ([]*domain.Customer, error) {
	query := `
		SELECT id, name, phone, email, address, assigned_to, created_at
		FROM customers
		WHERE ($1::bigint IS NULL OR assigned_to = $1)
		ORDER BY id
		LIMIT $2
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	var filter any
	if employeeID != nil {
		filter = *employeeID
	}

	rows, err := r.dbpool.QueryContext(ctx, query, filter, customerListLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]*domain.Customer, 0)
	for rows.Next() {
		c := &domain.Customer{}
		dst := []any{&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.AssignedTo, &c.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return customers, nil
}

// GetUnassignedCustomers 返回所有尚未分配的客户，不受列表上限限制
func (r *Repository) GetUnassignedCustomers() ([]*domain.Customer, error) {
	query := `
		SELECT id, name, phone, email, address, assigned_to, created_at
		FROM customers
		WHERE assigned_to IS NULL
		ORDER BY id
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]*domain.Customer, 0)
	for rows.Next() {
		c := &domain.Customer{}
		dst := []any{&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.AssignedTo, &c.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return customers, nil
}

// ImportCustomers 在同一个事务中插入所有客户，任意一批失败则全部回滚
func (r *Repository) ImportCustomers(customers []*domain.Customer) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	imported := 0
	for start := 0; start < len(customers); start += customerImportBatchSize {
		end := min(start+customerImportBatchSize, len(customers))
		batch := customers[start:end]

		placeholders := make([]string, 0, len(batch))
		args := make([]any, 0, len(batch)*4)
		for i, c := range batch {
			placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d)", i*4+1, i*4+2, i*4+3, i*4+4))
			args = append(args, c.Name, c.Phone, c.Email, c.Address)
		}

		query := "INSERT INTO customers (name, phone, email, address) VALUES " + strings.Join(placeholders, ", ")
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, err
		}

		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		imported += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return imported, nil
}

func (r *Repository) AllocateCustomer(customerID int64, employeeID int64) error {
	query := `
		UPDATE customers SET assigned_to = $1 WHERE id = $2
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, employeeID, customerID)
	if err != nil {
		return err
	}

	return expectAffected(res)
}

func (r *Repository) DeallocateCustomer(customerID int64) error {
	query := `
		UPDATE customers SET assigned_to = NULL WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, customerID)
	if err != nil {
		return err
	}

	return expectAffected(res)
}
