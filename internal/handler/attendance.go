package handler

import (
	"log/slog"
	"net/http"
)

func (h *Handler) today() (date string, clock string) {
	now := h.now().In(h.location)
	return now.Format("2006-01-02"), now.Format("15:04:05")
}

// GetMyAttendance 只返回当前登录用户自己的考勤记录
func (h *Handler) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	records, err := h.repository.GetAttendanceByEmployee(claims.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, records)
}

// CheckIn 重复签到会覆盖当天的签到时间
func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	date, clock := h.today()

	if err := h.repository.CheckIn(claims.ID, date, clock); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r)
}

// CheckOut 在当天没有签到记录时不会产生任何记录，但仍然返回成功
func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	date, clock := h.today()

	n, err := h.repository.CheckOut(claims.ID, date, clock)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if n == 0 {
		slog.Info("签退时没有找到当天的签到记录", "employee_id", claims.ID, "date", date)
	}

	h.successResponse(w, r)
}
