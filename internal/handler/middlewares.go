package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/fieldforce-dev/workforce/backend/internal/domain"
	"github.com/go-chi/chi/v5"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w, StatusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("已处理请求", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // 这里如果用 slog 的话会很乱
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 从 Authorization 头中获取 token
		tokenString, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			h.errorResponse(w, r, http.StatusUnauthorized, msgNoToken)
			return
		}

		// 验证 token
		claims, err := h.issuer.Parse(strings.TrimSpace(tokenString))
		if err != nil {
			h.errorResponse(w, r, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		// 已登出的 token 不再有效
		revoked, err := h.denylist.IsRevoked(claims.RegisteredClaims.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if revoked {
			h.errorResponse(w, r, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsCtxKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequiredRole 限制只有指定角色才能访问；关闭 AUTH_ENFORCE_ROLES 后所有已登录用户都可以访问
func (h *Handler) RequiredRole(roles []domain.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !h.config.Auth.EnforceRoles {
				next.ServeHTTP(w, r)
				return
			}

			claims := claimsFromContext(r.Context())
			if !slices.Contains(roles, claims.Role) {
				h.errorResponse(w, r, http.StatusForbidden, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (h *Handler) userInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseIDParam(r)
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, "Invalid user id")
			return
		}

		user, err := h.repository.GetUserByID(userID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.notFound(w, r)
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), UserInfoCtx, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) preventOperateInitialAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := r.Context().Value(UserInfoCtx).(*domain.User)
		if user.UserID == h.config.InitialAdmin.UserID {
			h.errorResponse(w, r, http.StatusForbidden, "Cannot modify the initial administrator")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
