package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/fieldforce-dev/workforce/backend/internal/domain"
)

func (h *Handler) GetAllFeedback(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.repository.GetAllFeedback()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, feedback)
}

// CreateFeedback 的作者总是当前登录的用户，客户端无法指定
func (h *Handler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		h.formError(w, r, err)
		return
	}

	req := struct {
		Customer string `validate:"required"`
		Notes    string
		Lat      string `validate:"omitempty,latitude"`
		Lng      string `validate:"omitempty,longitude"`
	}{
		Customer: r.FormValue("customer"),
		Notes:    r.FormValue("notes"),
		Lat:      r.FormValue("lat"),
		Lng:      r.FormValue("lng"),
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	saved, err := h.saveUploads(r, "photo")
	if err != nil {
		h.uploadError(w, r, err)
		return
	}

	claims := claimsFromContext(r.Context())
	feedback := &domain.Feedback{
		UserID:   claims.ID,
		Customer: req.Customer,
		Notes:    req.Notes,
		Photo:    savedPath(saved, "photo"),
		Lat:      optionalFloat(req.Lat),
		Lng:      optionalFloat(req.Lng),
	}

	if err := h.repository.CreateFeedback(feedback); err != nil {
		h.discardUploads(saved)
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r)
}

func (h *Handler) UpdateFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "Invalid feedback id")
		return
	}

	var req struct {
		Notes string   `json:"notes"`
		Lat   *float64 `json:"lat" validate:"omitempty,latitude"`
		Lng   *float64 `json:"lng" validate:"omitempty,longitude"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	feedback := &domain.Feedback{
		ID:    id,
		Notes: req.Notes,
		Lat:   req.Lat,
		Lng:   req.Lng,
	}

	if err := h.repository.UpdateFeedback(feedback); err != nil {
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

func (h *Handler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "Invalid feedback id")
		return
	}

	if err := h.repository.DeleteFeedback(id); err != nil {
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

// 调用前已经通过 latitude/longitude 校验，这里的解析不会失败
func optionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
