package models

// WeekDays in schedule order. Shift days and timesheet daily-hours keys must
// be one of these.
var WeekDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func IsWeekDay(day string) bool {
	for _, d := range WeekDays {
		if d == day {
			return true
		}
	}
	return false
}

// Pagination holds the page/limit pair parsed from list query strings.
type Pagination struct {
	Page  int64
	Limit int64
}

func NewPagination(page, limit int64) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 20
	}
	return Pagination{Page: page, Limit: limit}
}

func (p Pagination) Offset() int64 {
	return (p.Page - 1) * p.Limit
}
