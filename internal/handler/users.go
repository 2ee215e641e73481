package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fieldforce-dev/workforce/backend/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.repository.GetAllUsers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, users)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"user_id" validate:"required"`
		Password string `json:"password" validate:"required"`
		Role     string `json:"role" validate:"omitempty,oneof=ADMIN EMPLOYEE"`
		FullName string `json:"full_name"`
		Email    string `json:"email" validate:"omitempty,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 对密码进行哈希
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user := &domain.User{
		UserID:       req.UserID,
		PasswordHash: string(hashedPassword),
		FullName:     req.FullName,
		Email:        optionalString(req.Email),
		Role:         domain.RoleEmployee,
	}
	if req.Role != "" {
		user.Role = domain.Role(req.Role)
	}

	if err := h.repository.CreateUser(user); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "users_user_id_key":
			h.errorResponse(w, r, http.StatusConflict, "User already exists")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 有邮箱时通知新用户，邮件发送失败不影响用户的创建
	if user.Email != nil {
		mailMessage := domain.MailMessage{
			Type: domain.MailTypeCreateUser,
			To:   *user.Email,
			Data: domain.CreateUserMailData{
				FullName: user.FullName,
				UserID:   user.UserID,
				Role:     user.Role,
			},
		}
		if err := h.mail.Publish(mailMessage); err != nil {
			slog.Warn("无法将邮件发送到消息队列", "user_id", user.UserID, "error", err)
		}
	}

	h.successResponse(w, r)
}

func (h *Handler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsActive *bool `json:"is_active" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user := r.Context().Value(UserInfoCtx).(*domain.User)

	if err := h.repository.UpdateUserStatus(user.ID, *req.IsActive); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	if err := h.repository.DeleteUser(user.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
