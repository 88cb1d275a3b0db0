// Package calendar selects the plans active in a date window and expands them
// into calendar entries.
package calendar

import (
	"errors"
	"fmt"

	domainerror "github.com/finance-tracker/planner/internal/domain/error"
	"github.com/finance-tracker/planner/internal/domain/valueobject"
)

// DefaultMaxWindowDays bounds the span of a query window to five years.
const DefaultMaxWindowDays = 1827

// Window is an inclusive range of calendar dates.
type Window struct {
	Start valueobject.Date
	End   valueobject.Date
}

// NewWindow creates a window, rejecting a start after the end.
func NewWindow(start, end valueobject.Date) (Window, error) {
	if start.IsZero() || end.IsZero() {
		return Window{}, domainerror.NewInvalidDateRangeError("start_date and end_date are required")
	}
	if start.After(end) {
		return Window{}, domainerror.NewInvalidDateRangeError("start_date must not be after end_date")
	}
	return Window{Start: start, End: end}, nil
}

// ParseWindow parses two ISO dates into a window.
func ParseWindow(start, end string) (Window, error) {
	s, err := valueobject.ParseDate(start)
	if err != nil {
		return Window{}, domainerror.NewPlanError(domainerror.ErrCodeInvalidDateRange, "invalid start_date", errors.Join(domainerror.ErrInvalidDateRange, err))
	}
	e, err := valueobject.ParseDate(end)
	if err != nil {
		return Window{}, domainerror.NewPlanError(domainerror.ErrCodeInvalidDateRange, "invalid end_date", errors.Join(domainerror.ErrInvalidDateRange, err))
	}
	return NewWindow(s, e)
}

// MonthWindow returns the window covering the whole month of d.
func MonthWindow(d valueobject.Date) Window {
	first := valueobject.NewDate(d.Year(), d.Month(), 1)
	return Window{Start: first, End: first.AddMonthsClamped(1).AddDays(-1)}
}

// Contains reports whether d lies inside the window.
func (w Window) Contains(d valueobject.Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// Days returns the number of days in the window.
func (w Window) Days() int {
	return w.Start.DaysUntil(w.End) + 1
}

// Limit rejects a window longer than maxDays. A non-positive maxDays applies
// DefaultMaxWindowDays.
func (w Window) Limit(maxDays int) error {
	if maxDays <= 0 {
		maxDays = DefaultMaxWindowDays
	}
	if w.Days() > maxDays {
		return domainerror.NewInvalidDateRangeError(fmt.Sprintf("window must not exceed %d days", maxDays))
	}
	return nil
}

// ParseBoundedWindow parses a window and rejects it when it spans more than
// maxDays.
func ParseBoundedWindow(start, end string, maxDays int) (Window, error) {
	w, err := ParseWindow(start, end)
	if err != nil {
		return Window{}, err
	}
	if err := w.Limit(maxDays); err != nil {
		return Window{}, err
	}
	return w, nil
}

// String returns "start..end".
func (w Window) String() string {
	return w.Start.String() + ".." + w.End.String()
}
