package attendance

import (
	"github.com/SanorSmith/Tibba-sub001/internal/pkg/validator"
)

type ClockScanRequest struct {
	EmployeeID string `json:"employee_id"`
	Kind       string `json:"kind"`   // CHECK_IN or CHECK_OUT
	Source     string `json:"source"` // biometric or manual, defaults to biometric
}

func (r *ClockScanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Kind != string(EventCheckIn) && r.Kind != string(EventCheckOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be CHECK_IN or CHECK_OUT",
		})
	}

	if r.Source == "" {
		r.Source = string(SourceBiometric)
	}
	if r.Source != string(SourceBiometric) && r.Source != string(SourceManual) {
		errs = append(errs, validator.ValidationError{
			Field:   "source",
			Message: "source must be biometric or manual",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockEventResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Kind       string `json:"kind"`
	Source     string `json:"source"`
	ScanState  string `json:"scan_state"`
}

type DailyRecordResponse struct {
	EmployeeID       string   `json:"employee_id"`
	EmployeeName     *string  `json:"employee_name,omitempty"`
	Date             string   `json:"date"`
	Status           string   `json:"status"`
	FirstIn          *string  `json:"first_in,omitempty"`
	LastOut          *string  `json:"last_out,omitempty"`
	TotalHours       float64  `json:"total_hours"`
	OvertimeHours    float64  `json:"overtime_hours"`
	IsLate           bool     `json:"is_late"`
	IsEarlyDeparture bool     `json:"is_early_departure"`
	LeaveType        *string  `json:"leave_type,omitempty"`
	NeedsReview      bool     `json:"needs_review"`
}

type RecordFilter struct {
	EmployeeID  *string `json:"employee_id,omitempty"`
	StartDate   *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate     *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status      *string `json:"status,omitempty"`
	NeedsReview *bool   `json:"needs_review,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *RecordFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	for _, d := range []struct {
		field string
		value *string
	}{
		{"start_date", f.StartDate},
		{"end_date", f.EndDate},
	} {
		if d.value != nil && *d.value != "" {
			if _, ok := validator.IsValidDate(*d.value); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   d.field,
					Message: "must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if f.Status != nil {
		switch Status(*f.Status) {
		case StatusPresent, StatusAbsent, StatusOnLeave:
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "must be PRESENT, ABSENT or ON_LEAVE",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListRecordsResponse struct {
	TotalCount int64                 `json:"total_count"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	Records    []DailyRecordResponse `json:"records"`
}
