// Package calendar lays out the school calendar: student birthdays and school events by day.
package calendar

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/student"
)

const (
	MonthLayout = "2006-01"
	DateLayout  = "2006-01-02"
)

// Event types
const (
	TypeHoliday = "holiday"
	TypeEvent   = "event"
	TypeExam    = "exam"
)

type (
	Event struct {
		ID    string `json:"id" yaml:"id"`
		Title string `json:"title" yaml:"title" validate:"required"`
		Date  string `json:"date" yaml:"date" validate:"required,datetime=2006-01-02"`
		Type  string `json:"type" yaml:"type" validate:"required,oneof=holiday event exam"`
	}

	Birthday struct {
		StudentID string `json:"student_id"`
		Name      string `json:"name"`
		ClassID   string `json:"class_id"`
	}

	Day struct {
		Date      string     `json:"date"`
		Day       int        `json:"day"`
		Birthdays []Birthday `json:"birthdays"`
		Events    []Event    `json:"events"`
	}

	// Month is a month grid: LeadingBlanks empty cells (Sunday first) then one Day per day of the month.
	Month struct {
		Month         string `json:"month"`
		Previous      string `json:"previous"`
		Next          string `json:"next"`
		LeadingBlanks int    `json:"leading_blanks"`
		Days          []Day  `json:"days"`
	}
)

// ParseMonth parses a YYYY-MM month; an empty string means the month of now.
func ParseMonth(s string, now time.Time) (time.Time, error) {
	if s = core.CleanString(s); s == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return t, core.NewValidationError(nil, core.FieldError{Field: "month", Error: "month must be in the YYYY-MM format"})
	}
	return t, nil
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, core.CleanString(s))
	if err != nil {
		return t, core.NewValidationError(nil, core.FieldError{Field: "date", Error: "date must be in the YYYY-MM-DD format"})
	}
	return t, nil
}

// Build lays out the month of month.
func Build(month time.Time, students []student.Student, events []Event) Month {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	m := Month{
		Month:         first.Format(MonthLayout),
		Previous:      first.AddDate(0, -1, 0).Format(MonthLayout),
		Next:          first.AddDate(0, 1, 0).Format(MonthLayout),
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]Day, 0, last.Day()),
	}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		m.Days = append(m.Days, On(d, students, events))
	}
	return m
}

// On returns the birthdays (same month & day of birth) and events of date.
func On(date time.Time, students []student.Student, events []Event) Day {
	ymd := date.Format(DateLayout)
	day := Day{
		Date:      ymd,
		Day:       date.Day(),
		Birthdays: []Birthday{},
		Events:    []Event{},
	}

	md := ymd[len("2006-"):]
	for _, s := range students {
		if len(s.DateOfBirth) == len(DateLayout) && s.DateOfBirth[len("2006-"):] == md {
			day.Birthdays = append(day.Birthdays, Birthday{StudentID: s.ID, Name: s.FullName(), ClassID: s.ClassID})
		}
	}
	for _, e := range events {
		if e.Date == ymd {
			day.Events = append(day.Events, e)
		}
	}
	return day
}

// Validate checks the events of a calendar fixture.
func Validate(events []Event, validate *validator.Validate) error {
	for i := range events {
		if err := validate.Struct(events[i]); err != nil {
			return errors.Wrapf(err, "event %q", events[i].ID)
		}
	}
	return nil
}
