package handler

import (
	"context"

	"github.com/fieldforce-dev/workforce/backend/internal/token"
)

type ContextKey string

var (
	ClaimsCtxKey ContextKey = "claims"
	UserInfoCtx  ContextKey = "userInfo"
)

func claimsFromContext(ctx context.Context) *token.Claims {
	return ctx.Value(ClaimsCtxKey).(*token.Claims)
}
