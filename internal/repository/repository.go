package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/fieldforce-dev/workforce/backend/internal/config"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

// 每个查询都使用独立于请求的超时上下文，客户端断开连接不会中断已经开始的写入
func (r *Repository) queryContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}

func (r *Repository) Ping() error {
	ctx, cancel := r.queryContext()
	defer cancel()

	return r.dbpool.PingContext(ctx)
}

// 对于按 ID 更新或删除的语句，没有影响任何行时返回 sql.ErrNoRows
func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
