package analysis

import (
	"time"

	"github.com/Raleighawesome/salary-dashboard/pkg/core/schema"
)

// Date layouts seen across vendor exports, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"02/01/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2-Jan-2006",
	"02-Jan-2006",
	"2006/01/02",
}

// parseDate tries each known layout; unparsable text yields ok=false
// rather than an error, matching the tolerant-ingestion policy.
func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// monthsBetween returns the whole number of calendar months from "from"
// to "to", floored at zero.
func monthsBetween(from, to time.Time) int {
	if from.After(to) {
		return 0
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// ComputeTenure builds the tenure breakdown for one employee as of
// "now". Absent or unparsable dates contribute zero/nil fields rather
// than failing. An explicit time-in-role months column wins over the
// role start date.
func ComputeTenure(emp *schema.Employee, now time.Time) TenureInfo {
	info := TenureInfo{}

	if hired, ok := parseDate(emp.HireDate); ok {
		info.TotalTenureMonths = monthsBetween(hired, now)
	}
	info.YearsOfService = info.TotalTenureMonths / 12

	switch {
	case emp.TimeInRole != nil && *emp.TimeInRole >= 0:
		info.TimeInRoleMonths = int(*emp.TimeInRole)
	default:
		if started, ok := parseDate(emp.RoleStartDate); ok {
			info.TimeInRoleMonths = monthsBetween(started, now)
		} else {
			info.TimeInRoleMonths = info.TotalTenureMonths
		}
	}

	if raised, ok := parseDate(emp.LastRaiseDate); ok {
		months := monthsBetween(raised, now)
		info.LastRaiseMonthsAgo = &months
	}

	info.TenureBand = tenureBand(info.TotalTenureMonths)
	return info
}

func tenureBand(totalMonths int) string {
	switch {
	case totalMonths < 6:
		return TenureBandNew
	case totalMonths < 24:
		return TenureBandEarly
	case totalMonths < 60:
		return TenureBandEstablished
	default:
		return TenureBandSenior
	}
}
