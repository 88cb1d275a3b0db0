package entity

import (
	"github.com/finance-tracker/planner/internal/domain/valueobject"
)

// CalendarEntry is one all-day occurrence of a plan, ready for a calendar view.
type CalendarEntry struct {
	ID       string
	PlanID   string
	Title    string
	Start    valueobject.Date
	End      valueobject.Date
	AllDay   bool
	Resource *FinancialPlan
}

// CalendarEntryID derives the entry id for the occurrence of a plan on date.
func CalendarEntryID(planID string, date valueobject.Date) string {
	return planID + "@" + date.String()
}
