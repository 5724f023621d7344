package payroll

import (
	"time"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/attendance"
	"github.com/SanorSmith/Tibba-sub001/internal/domain/payroll"
)

// AggregatePeriod rolls one employee's daily records over [start, end] into
// period totals. A date with no record counts as ABSENT: the aggregator never
// fabricates presence for a newly hired employee or an underived day.
// Regular hours are capped at the standard shift length per day; hours beyond
// the cap are already accounted for in the record's overtime.
func AggregatePeriod(employeeID string, start, end time.Time, records []attendance.DailyRecord, standardShiftHours float64) payroll.PeriodTotals {
	byDate := make(map[string]attendance.DailyRecord, len(records))
	for _, rec := range records {
		byDate[rec.Date.Format("2006-01-02")] = rec
	}

	totals := payroll.PeriodTotals{EmployeeID: employeeID}

	for day := truncateToDay(start); !day.After(end); day = day.AddDate(0, 0, 1) {
		rec, ok := byDate[day.Format("2006-01-02")]
		if !ok {
			totals.DaysAbsent++
			continue
		}

		switch rec.Status {
		case attendance.StatusPresent:
			totals.DaysPresent++
			hours := rec.TotalHours
			if hours > standardShiftHours {
				hours = standardShiftHours
			}
			totals.RegularHours += hours
			totals.OvertimeHours += rec.OvertimeHours
			if rec.IsLate {
				totals.LateCount++
			}
			if rec.IsEarlyDeparture {
				totals.EarlyDepartureCount++
			}
		case attendance.StatusOnLeave:
			totals.DaysOnLeave++
		default:
			totals.DaysAbsent++
		}
	}

	return totals
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
