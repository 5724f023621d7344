package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/attendance"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func presentRecord(d int, totalHours, overtimeHours float64) attendance.DailyRecord {
	return attendance.DailyRecord{
		EmployeeID:    "emp-1",
		Date:          day(d),
		Status:        attendance.StatusPresent,
		TotalHours:    totalHours,
		OvertimeHours: overtimeHours,
	}
}

func TestAggregatePeriod_MissingDatesCountAbsent(t *testing.T) {
	records := []attendance.DailyRecord{
		presentRecord(2, 8, 0),
		presentRecord(4, 8, 0),
	}

	totals := AggregatePeriod("emp-1", day(1), day(5), records, 8)

	assert.Equal(t, 2, totals.DaysPresent)
	assert.Equal(t, 3, totals.DaysAbsent)
	assert.Equal(t, 0, totals.DaysOnLeave)
	assert.InDelta(t, 16.0, totals.RegularHours, 1e-9)
}

func TestAggregatePeriod_RegularHoursCappedAtShift(t *testing.T) {
	records := []attendance.DailyRecord{
		presentRecord(1, 10.5, 2.5),
	}

	totals := AggregatePeriod("emp-1", day(1), day(1), records, 8)

	assert.InDelta(t, 8.0, totals.RegularHours, 1e-9)
	assert.InDelta(t, 2.5, totals.OvertimeHours, 1e-9)
}

func TestAggregatePeriod_LeaveDays(t *testing.T) {
	leaveType := "ANNUAL"
	records := []attendance.DailyRecord{
		presentRecord(1, 8, 0),
		{EmployeeID: "emp-1", Date: day(2), Status: attendance.StatusOnLeave, LeaveType: &leaveType},
		{EmployeeID: "emp-1", Date: day(3), Status: attendance.StatusAbsent},
	}

	totals := AggregatePeriod("emp-1", day(1), day(3), records, 8)

	assert.Equal(t, 1, totals.DaysPresent)
	assert.Equal(t, 1, totals.DaysOnLeave)
	assert.Equal(t, 1, totals.DaysAbsent)
}

func TestAggregatePeriod_LateAndEarlyCounts(t *testing.T) {
	rec1 := presentRecord(1, 8, 0)
	rec1.IsLate = true
	rec2 := presentRecord(2, 8, 0)
	rec2.IsLate = true
	rec2.IsEarlyDeparture = true

	totals := AggregatePeriod("emp-1", day(1), day(2), []attendance.DailyRecord{rec1, rec2}, 8)

	assert.Equal(t, 2, totals.LateCount)
	assert.Equal(t, 1, totals.EarlyDepartureCount)
}

func TestAggregatePeriod_EmptyPeriodAllAbsent(t *testing.T) {
	totals := AggregatePeriod("emp-1", day(1), day(30), nil, 8)

	assert.Equal(t, 0, totals.DaysPresent)
	assert.Equal(t, 30, totals.DaysAbsent)
	assert.Zero(t, totals.RegularHours)
	assert.Zero(t, totals.OvertimeHours)
}

func TestAggregatePeriod_SingleDayPeriod(t *testing.T) {
	totals := AggregatePeriod("emp-1", day(15), day(15), []attendance.DailyRecord{presentRecord(15, 8, 0)}, 8)

	assert.Equal(t, 1, totals.DaysPresent)
	assert.Equal(t, 0, totals.DaysAbsent)
}
