package attendance

import "errors"

// Attendance domain errors
var (
	// Clock capture errors: rejected transitions carry a specific reason.
	ErrAlreadyCheckedIn  = errors.New("you have already checked in, check out first")
	ErrNotCheckedIn      = errors.New("must check in first")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")
	ErrScannerBusy       = errors.New("a scan is already in progress")
	ErrUnknownEventKind  = errors.New("unknown clock event kind")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)
