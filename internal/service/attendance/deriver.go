package attendance

import (
	"sort"
	"time"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/attendance"
	"github.com/SanorSmith/Tibba-sub001/internal/domain/leave"
)

// Deriver converts the raw clock events and approved leave of one employee on
// one calendar date into exactly one daily attendance record. Derivation is a
// pure function of its inputs, so records are safe to recompute at any time.
type Deriver struct {
	rules attendance.ShiftRules
}

func NewDeriver(rules attendance.ShiftRules) *Deriver {
	return &Deriver{rules: rules}
}

// Derive produces the single daily record for (employeeID, date).
//
// Approved leave takes precedence over clock events: any interval covering
// the date yields ON_LEAVE and the day's events are ignored as erroneous.
// With no covering leave, zero CHECK_IN events yield ABSENT; otherwise the
// record is PRESENT with timing facts computed from the earliest CHECK_IN and
// the latest CHECK_OUT. A CHECK_OUT with no preceding CHECK_IN is ignored for
// hours computation but flags the record for manual review.
func (d *Deriver) Derive(employeeID string, date time.Time, events []attendance.ClockEvent, leaves []leave.Interval) attendance.DailyRecord {
	record := attendance.DailyRecord{
		EmployeeID: employeeID,
		Date:       truncateToDay(date),
	}

	for _, interval := range leaves {
		if interval.Status != leave.StatusApproved {
			continue
		}
		if interval.Covers(date) {
			leaveType := interval.LeaveType
			record.Status = attendance.StatusOnLeave
			record.LeaveType = &leaveType
			return record
		}
	}

	checkIns, checkOuts := partitionEvents(events)

	if len(checkIns) == 0 {
		record.Status = attendance.StatusAbsent
		// Check-outs without any check-in are orphans.
		record.NeedsReview = len(checkOuts) > 0
		return record
	}

	record.Status = attendance.StatusPresent
	firstIn := checkIns[0].Time
	record.FirstIn = &firstIn

	// Orphan check-outs precede the first check-in. They are excluded from
	// hours but the record still goes to manual review.
	validOuts := checkOuts[:0]
	for _, ev := range checkOuts {
		if ev.Time.Before(firstIn) {
			record.NeedsReview = true
			continue
		}
		validOuts = append(validOuts, ev)
	}

	if len(validOuts) > 0 {
		lastOut := validOuts[len(validOuts)-1].Time
		record.LastOut = &lastOut
		record.TotalHours = lastOut.Sub(firstIn).Hours()
		if over := record.TotalHours - d.rules.StandardShiftHours; over > 0 {
			record.OvertimeHours = over
		}
		record.IsEarlyDeparture = lastOut.Before(d.rules.EarlyBefore.On(record.Date))
	}

	record.IsLate = firstIn.After(d.rules.LateAfter.On(record.Date))

	return record
}

// partitionEvents splits events into check-ins and check-outs, each sorted by
// time ascending.
func partitionEvents(events []attendance.ClockEvent) (checkIns, checkOuts []attendance.ClockEvent) {
	for _, ev := range events {
		switch ev.Kind {
		case attendance.EventCheckIn:
			checkIns = append(checkIns, ev)
		case attendance.EventCheckOut:
			checkOuts = append(checkOuts, ev)
		}
	}
	byTime := func(events []attendance.ClockEvent) func(i, j int) bool {
		return func(i, j int) bool { return events[i].Time.Before(events[j].Time) }
	}
	sort.Slice(checkIns, byTime(checkIns))
	sort.Slice(checkOuts, byTime(checkOuts))
	return checkIns, checkOuts
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
