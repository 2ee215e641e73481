package handler

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// 用户不存在时也做一次哈希比较，使两种失败情况的耗时接近
func compareDummyHash(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

type LoginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"user_id" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	// 空请求体按缺少凭据处理
	if err := h.readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, msgMissingCredentials)
		return
	}

	// 验证用户名和密码，两种失败情况返回相同的错误信息
	user, err := h.repository.GetUserByUserID(req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			compareDummyHash(req.Password)
			h.errorResponse(w, r, http.StatusUnauthorized, msgInvalidCredentials)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.errorResponse(w, r, http.StatusUnauthorized, msgInvalidCredentials)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if !user.IsActive {
		h.errorResponse(w, r, http.StatusForbidden, "Account disabled")
		return
	}

	// 生成 JWT
	ss, _, err := h.issuer.Issue(user)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, LoginResponse{
		Token:    ss,
		Role:     string(user.Role),
		FullName: user.FullName,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := h.denylist.Revoke(claims.RegisteredClaims.ID, ttl); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.repository.Ping(); err != nil {
		h.logInternalServerError(r, err)
		h.writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
