package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/fieldforce-dev/workforce/backend/internal/domain"
)

func (h *Handler) GetActiveAds(w http.ResponseWriter, r *http.Request) {
	ads, err := h.repository.GetActiveAds()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, ads)
}

func (h *Handler) CreateAd(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		h.formError(w, r, err)
		return
	}

	req := struct {
		Title string `validate:"required"`
	}{
		Title: r.FormValue("title"),
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	saved, err := h.saveUploads(r, "ad_image")
	if err != nil {
		h.uploadError(w, r, err)
		return
	}

	ad := &domain.Ad{
		Title: req.Title,
		Image: savedPath(saved, "ad_image"),
	}

	if err := h.repository.CreateAd(ad); err != nil {
		h.discardUploads(saved)
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r)
}

func (h *Handler) ToggleAd(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "Invalid ad id")
		return
	}

	if err := h.repository.ToggleAd(id); err != nil {
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

func (h *Handler) DeleteAd(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "Invalid ad id")
		return
	}

	if err := h.repository.DeleteAd(id); err != nil {
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
