package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/attendance"
)

// fakeEventStore is an in-memory ClockEventRepository enforcing the same
// alternation rule as the real store.
type fakeEventStore struct {
	events []attendance.ClockEvent
}

func (f *fakeEventStore) Append(ctx context.Context, event attendance.ClockEvent) (attendance.ClockEvent, error) {
	latest, ok, _ := f.LatestKind(ctx, event.EmployeeID, event.Date)
	switch event.Kind {
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
	}
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeEventStore) LatestKind(ctx context.Context, employeeID string, date time.Time) (attendance.EventKind, bool, error) {
	var (
		kind  attendance.EventKind
		found bool
		last  time.Time
	)
	for _, ev := range f.events {
		if ev.EmployeeID != employeeID || !ev.Date.Equal(date) {
			continue
		}
		if !found || ev.Time.After(last) {
			kind, found, last = ev.Kind, true, ev.Time
		}
	}
	return kind, found, nil
}

func (f *fakeEventStore) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]attendance.ClockEvent, error) {
	var out []attendance.ClockEvent
	for _, ev := range f.events {
		if ev.EmployeeID == employeeID && ev.Date.Equal(date) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeEventStore) ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.ClockEvent, error) {
	var out []attendance.ClockEvent
	for _, ev := range f.events {
		if ev.EmployeeID == employeeID && !ev.Date.Before(start) && !ev.Date.After(end) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeEventStore) CountByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (int, error) {
	events, _ := f.ListByEmployeeAndDate(ctx, employeeID, date)
	return len(events), nil
}

// testClock hands out strictly increasing timestamps on one day.
func testClock() func() time.Time {
	current := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

func TestCaptureMachine_Scan_CheckInThenOut(t *testing.T) {
	ctx := context.Background()
	store := &fakeEventStore{}
	machine := NewCaptureMachine(store, testClock())

	assert.Equal(t, StateReady, machine.State())

	in, err := machine.Scan(ctx, "emp-1", attendance.EventCheckIn, attendance.SourceBiometric)
	require.NoError(t, err)
	assert.Equal(t, attendance.EventCheckIn, in.Kind)
	assert.NotEmpty(t, in.ID)
	assert.Equal(t, StateSuccess, machine.State())

	out, err := machine.Scan(ctx, "emp-1", attendance.EventCheckOut, attendance.SourceBiometric)
	require.NoError(t, err)
	assert.Equal(t, attendance.EventCheckOut, out.Kind)
	assert.True(t, out.Time.After(in.Time))
	assert.Len(t, store.events, 2)
}

func TestCaptureMachine_Scan_DoubleCheckInRejected(t *testing.T) {
	ctx := context.Background()
	store := &fakeEventStore{}
	machine := NewCaptureMachine(store, testClock())

	_, err := machine.Scan(ctx, "emp-1", attendance.EventCheckIn, attendance.SourceBiometric)
	require.NoError(t, err)

	_, err = machine.Scan(ctx, "emp-1", attendance.EventCheckIn, attendance.SourceBiometric)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	assert.Equal(t, StateError, machine.State())

	// Nothing was appended for the rejected attempt.
	assert.Len(t, store.events, 1)
}

func TestCaptureMachine_Scan_CheckOutWithoutCheckIn(t *testing.T) {
	ctx := context.Background()
	machine := NewCaptureMachine(&fakeEventStore{}, testClock())

	_, err := machine.Scan(ctx, "emp-1", attendance.EventCheckOut, attendance.SourceBiometric)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
	assert.Equal(t, StateError, machine.State())
}

func TestCaptureMachine_Scan_DoubleCheckOutRejected(t *testing.T) {
	ctx := context.Background()
	machine := NewCaptureMachine(&fakeEventStore{}, testClock())

	_, err := machine.Scan(ctx, "emp-1", attendance.EventCheckIn, attendance.SourceBiometric)
	require.NoError(t, err)
	_, err = machine.Scan(ctx, "emp-1", attendance.EventCheckOut, attendance.SourceBiometric)
	require.NoError(t, err)

	_, err = machine.Scan(ctx, "emp-1", attendance.EventCheckOut, attendance.SourceBiometric)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCaptureMachine_Scan_RecoversAfterError(t *testing.T) {
	ctx := context.Background()
	machine := NewCaptureMachine(&fakeEventStore{}, testClock())

	_, err := machine.Scan(ctx, "emp-1", attendance.EventCheckOut, attendance.SourceBiometric)
	require.Error(t, err)
	assert.Equal(t, StateError, machine.State())

	// The next scan auto-resets from the terminal state.
	_, err = machine.Scan(ctx, "emp-1", attendance.EventCheckIn, attendance.SourceBiometric)
	assert.NoError(t, err)
	assert.Equal(t, StateSuccess, machine.State())
}

func TestCaptureMachine_Scan_UnknownKind(t *testing.T) {
	ctx := context.Background()
	machine := NewCaptureMachine(&fakeEventStore{}, testClock())

	_, err := machine.Scan(ctx, "emp-1", attendance.EventKind("BREAK"), attendance.SourceBiometric)
	assert.ErrorIs(t, err, attendance.ErrUnknownEventKind)
}

func TestCaptureMachine_Reset(t *testing.T) {
	ctx := context.Background()
	machine := NewCaptureMachine(&fakeEventStore{}, testClock())

	_, err := machine.Scan(ctx, "emp-1", attendance.EventCheckIn, attendance.SourceBiometric)
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, machine.State())

	machine.Reset()
	assert.Equal(t, StateReady, machine.State())

	// Reset from READY is a no-op.
	machine.Reset()
	assert.Equal(t, StateReady, machine.State())
}

func TestCaptureMachine_Scan_ReopenAfterCheckOut(t *testing.T) {
	ctx := context.Background()
	store := &fakeEventStore{}
	machine := NewCaptureMachine(store, testClock())

	for _, kind := range []attendance.EventKind{
		attendance.EventCheckIn,
		attendance.EventCheckOut,
		attendance.EventCheckIn,
		attendance.EventCheckOut,
	} {
		_, err := machine.Scan(ctx, "emp-1", kind, attendance.SourceBiometric)
		require.NoError(t, err)
	}

	assert.Len(t, store.events, 4)
}
