package handler

import (
	"net/http"

	"github.com/fieldforce-dev/workforce/backend/internal/domain"
)

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repository.GetAllEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, employees)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		h.formError(w, r, err)
		return
	}

	req := struct {
		EmpID       string `validate:"required"`
		UserID      string
		Name        string `validate:"required"`
		Designation string
		Manager     string
		DOB         string `validate:"omitempty,datetime=2006-01-02"`
		JoinDate    string `validate:"omitempty,datetime=2006-01-02"`
		RelieveDate string `validate:"omitempty,datetime=2006-01-02"`
		Address     string
	}{
		EmpID:       r.FormValue("emp_id"),
		UserID:      r.FormValue("user_id"),
		Name:        r.FormValue("name"),
		Designation: r.FormValue("designation"),
		Manager:     r.FormValue("manager"),
		DOB:         r.FormValue("dob"),
		JoinDate:    r.FormValue("join_date"),
		RelieveDate: r.FormValue("relieve_date"),
		Address:     r.FormValue("address"),
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	saved, err := h.saveUploads(r, "photo", "resume")
	if err != nil {
		h.uploadError(w, r, err)
		return
	}

	employee := &domain.Employee{
		EmpID:       req.EmpID,
		UserID:      req.UserID,
		Name:        req.Name,
		Designation: req.Designation,
		Manager:     req.Manager,
		DOB:         optionalString(req.DOB),
		JoinDate:    optionalString(req.JoinDate),
		RelieveDate: optionalString(req.RelieveDate),
		Address:     req.Address,
		Photo:       savedPath(saved, "photo"),
		Resume:      savedPath(saved, "resume"),
	}

	if err := h.repository.CreateEmployee(employee); err != nil {
		h.discardUploads(saved)
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r)
}
