package attendance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/attendance"
	"github.com/google/uuid"
)

// ScanState enum for the clock-capture guard.
type ScanState string

const (
	StateReady    ScanState = "READY"
	StateScanning ScanState = "SCANNING"
	StateSuccess  ScanState = "SUCCESS"
	StateError    ScanState = "ERROR"
)

// CaptureMachine guards the clock-capture front end. States move
// READY -> SCANNING -> SUCCESS or ERROR, and back to READY on the next scan
// (or an explicit Reset). The clock and the event store are injected so the
// machine is testable without timers or a database.
type CaptureMachine struct {
	events attendance.ClockEventRepository
	now    func() time.Time

	mu    sync.Mutex
	state ScanState
}

func NewCaptureMachine(events attendance.ClockEventRepository, now func() time.Time) *CaptureMachine {
	if now == nil {
		now = time.Now
	}
	return &CaptureMachine{
		events: events,
		now:    now,
		state:  StateReady,
	}
}

// State returns the machine's current state.
func (m *CaptureMachine) State() ScanState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Reset returns a terminal SUCCESS or ERROR state to READY.
func (m *CaptureMachine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateSuccess || m.state == StateError {
		m.state = StateReady
	}
}

// Scan attempts to record one clock event. An out-of-order attempt (a second
// consecutive CHECK_IN, or a CHECK_OUT with no prior CHECK_IN that day) moves
// the machine to ERROR with a specific reason and appends nothing, so the
// stored sequence stays strictly alternating.
func (m *CaptureMachine) Scan(ctx context.Context, employeeID string, kind attendance.EventKind, source attendance.EventSource) (attendance.ClockEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateSuccess, StateError:
		m.state = StateReady
	case StateScanning:
		return attendance.ClockEvent{}, attendance.ErrScannerBusy
	}
	m.state = StateScanning

	event, err := m.capture(ctx, employeeID, kind, source)
	if err != nil {
		m.state = StateError
		return attendance.ClockEvent{}, err
	}
	m.state = StateSuccess
	return event, nil
}

func (m *CaptureMachine) capture(ctx context.Context, employeeID string, kind attendance.EventKind, source attendance.EventSource) (attendance.ClockEvent, error) {
	now := m.now()
	date := truncateToDay(now)

	latest, ok, err := m.events.LatestKind(ctx, employeeID, date)
	if err != nil {
		return attendance.ClockEvent{}, fmt.Errorf("failed to load latest clock event: %w", err)
	}

	switch kind {
	case attendance.EventCheckIn:
		if ok && latest == attendance.EventCheckIn {
			return attendance.ClockEvent{}, attendance.ErrAlreadyCheckedIn
		}
	case attendance.EventCheckOut:
		if !ok {
			return attendance.ClockEvent{}, attendance.ErrNotCheckedIn
		}
		if latest == attendance.EventCheckOut {
			return attendance.ClockEvent{}, attendance.ErrAlreadyCheckedOut
		}
	default:
		return attendance.ClockEvent{}, attendance.ErrUnknownEventKind
	}

	event := attendance.ClockEvent{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Date:       date,
		Time:       now,
		Kind:       kind,
		Source:     source,
	}

	// The repository re-checks alternation under a row lock, so a concurrent
	// scan for the same employee cannot slip a duplicate kind through.
	appended, err := m.events.Append(ctx, event)
	if err != nil {
		return attendance.ClockEvent{}, err
	}
	return appended, nil
}
