package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

const (
	msgMissingData        = "Missing data"
	msgMissingCredentials = "Missing credentials"
	msgInvalidCredentials = "Invalid credentials"
	msgNoToken            = "No token"
	msgInvalidToken       = "Invalid token"
	msgForbidden          = "Forbidden"
	msgNotFound           = "Not found"
	msgInvalidBody        = "Invalid request body"
	msgOverloaded         = "Server overloaded"
	msgInternal           = "Internal server error"
)

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("服务器内部错误", "method", r.Method, "path", r.URL.Path, "error", err)
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, ErrorResponse{Error: msg})
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, SuccessResponse{Success: true})
}

// badRequest 对缺少必填字段的情况统一返回 Missing data，其他校验错误返回翻译后的第一条信息
func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			h.errorResponse(w, r, http.StatusBadRequest, msgMissingData)
		case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
			h.errorResponse(w, r, http.StatusBadRequest, msgInvalidBody)
		default:
			h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		}
		return
	}

	for _, fe := range validationErrors {
		if fe.Tag() == "required" {
			h.errorResponse(w, r, http.StatusBadRequest, msgMissingData)
			return
		}
	}

	h.errorResponse(w, r, http.StatusBadRequest, validationErrors[0].Translate(h.translator))
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.errorResponse(w, r, http.StatusNotFound, msgNotFound)
}

// internalServerError 不向客户端暴露错误细节；等待连接池超时的情况返回 503
func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		slog.Warn("数据库操作超时", "method", r.Method, "path", r.URL.Path, "error", err)
		h.errorResponse(w, r, http.StatusServiceUnavailable, msgOverloaded)
		return
	}

	h.logInternalServerError(r, err)
	h.errorResponse(w, r, http.StatusInternalServerError, msgInternal)
}
