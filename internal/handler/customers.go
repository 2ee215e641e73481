package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/fieldforce-dev/workforce/backend/internal/utils"
)

func (h *Handler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	var employeeID *int64
	if param := r.URL.Query().Get("employee_id"); param != "" {
		id, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, "Invalid employee_id")
			return
		}
		employeeID = &id
	}

	customers, err := h.repository.GetCustomers(employeeID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, customers)
}

type ImportCustomersResponse struct {
	Success  bool `json:"success"`
	Imported int  `json:"imported"`
}

// ImportCustomers 保存上传的 CSV 文件后解析并在一个事务中插入所有客户，导入的客户都是未分配状态
func (h *Handler) ImportCustomers(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		h.formError(w, r, err)
		return
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File["csv"]) == 0 {
		h.errorResponse(w, r, http.StatusBadRequest, msgMissingData)
		return
	}

	saved, err := h.saveUploads(r, "csv")
	if err != nil {
		h.uploadError(w, r, err)
		return
	}

	file, err := r.MultipartForm.File["csv"][0].Open()
	if err != nil {
		h.discardUploads(saved)
		h.internalServerError(w, r, err)
		return
	}
	defer file.Close()

	customers, err := utils.ParseCustomersCSV(file)
	if err != nil {
		h.discardUploads(saved)
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	imported, err := h.repository.ImportCustomers(customers)
	if err != nil {
		h.discardUploads(saved)
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, ImportCustomersResponse{
		Success:  true,
		Imported: imported,
	})
}

func (h *Handler) AllocateCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID int64 `json:"customer_id" validate:"required"`
		EmployeeID int64 `json:"employee_id" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.AllocateCustomer(req.CustomerID, req.EmployeeID); err != nil {
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

func (h *Handler) DeallocateCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID int64 `json:"customer_id" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.DeallocateCustomer(req.CustomerID); err != nil {
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
