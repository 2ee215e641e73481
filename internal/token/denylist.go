package token

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist 记录已登出但尚未过期的令牌
type Denylist struct {
	rdb     *redis.Client
	timeout time.Duration
}

func NewDenylist(rdb *redis.Client, timeout time.Duration) *Denylist {
	return &Denylist{
		rdb:     rdb,
		timeout: timeout,
	}
}

func denylistKey(jti string) string {
	return fmt.Sprintf("revoked_token_%s", jti)
}

// Revoke 将令牌加入黑名单，ttl 为令牌剩余的有效时间
func (d *Denylist) Revoke(jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// 令牌已经过期，没有必要再记录
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	return d.rdb.Set(ctx, denylistKey(jti), 1, ttl).Err()
}

func (d *Denylist) IsRevoked(jti string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	n, err := d.rdb.Exists(ctx, denylistKey(jti)).Result()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}
