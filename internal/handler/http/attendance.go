package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/attendance"
	"github.com/SanorSmith/Tibba-sub001/internal/handler/http/response"
)

type AttendanceHandler interface {
	Scan(w http.ResponseWriter, r *http.Request)
	GetDaily(w http.ResponseWriter, r *http.Request)
	Materialize(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// Scan implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Scan(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockScanRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Scan decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	event, err := h.attendanceService.Scan(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock event recorded successfully", event)
}

// GetDaily implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetDaily(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	dateParam := chi.URLParam(r, "date")
	date, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		response.BadRequest(w, "Date must be in YYYY-MM-DD format", nil)
		return
	}

	record, err := h.attendanceService.GetDailyAttendance(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

// Materialize implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Materialize(w http.ResponseWriter, r *http.Request) {
	dateParam := chi.URLParam(r, "date")
	date, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		response.BadRequest(w, "Date must be in YYYY-MM-DD format", nil)
		return
	}

	if err := h.attendanceService.MaterializeDate(r.Context(), date); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Daily attendance materialized successfully", nil)
}

// ListRecords implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	filter, err := parseRecordFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := 0
	if filter.Limit > 0 {
		totalPages = int((records.TotalCount + int64(filter.Limit) - 1) / int64(filter.Limit))
	}
	response.SuccessWithMeta(w, records.Records, &response.Meta{
		Page:       records.Page,
		Limit:      records.Limit,
		TotalItems: records.TotalCount,
		TotalPages: totalPages,
	})
}

func parseRecordFilter(r *http.Request) (attendance.RecordFilter, error) {
	var filter attendance.RecordFilter

	q := r.URL.Query()
	for _, p := range []struct {
		key string
		dst **string
	}{
		{"employee_id", &filter.EmployeeID},
		{"start_date", &filter.StartDate},
		{"end_date", &filter.EndDate},
		{"status", &filter.Status},
	} {
		if v := q.Get(p.key); v != "" {
			value := v
			*p.dst = &value
		}
	}

	if v := q.Get("needs_review"); v != "" {
		needsReview, err := strconv.ParseBool(v)
		if err != nil {
			return filter, err
		}
		filter.NeedsReview = &needsReview
	}

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return filter, err
		}
		filter.Page = page
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return filter, err
		}
		filter.Limit = limit
	}

	return filter, nil
}
