package calendar

import (
	"cmp"
	"slices"

	"github.com/finance-tracker/planner/internal/domain/entity"
)

// Expand filters plans against w and turns every occurrence into a calendar
// entry. Output depends only on the input set: plans are visited in id
// order and dates ascend within a plan. It is not sorted chronologically;
// use SortByStart for that.
func Expand(plans []*entity.FinancialPlan, w Window, mode FilterMode, titler EntryTitler) []entity.CalendarEntry {
	matched := Filter(plans, w, mode)
	slices.SortStableFunc(matched, func(a, b *entity.FinancialPlan) int {
		return cmp.Compare(a.ID, b.ID)
	})

	entries := make([]entity.CalendarEntry, 0, len(matched))
	for _, plan := range matched {
		title := titler.Title(plan)
		for _, d := range Occurrences(plan, w) {
			end := d
			if !plan.IsRecurring {
				end = plan.LastDate()
			}
			entries = append(entries, entity.CalendarEntry{
				ID:       entity.CalendarEntryID(plan.ID, d),
				PlanID:   plan.ID,
				Title:    title,
				Start:    d,
				End:      end,
				AllDay:   true,
				Resource: plan,
			})
		}
	}
	return entries
}

// SortByStart sorts entries by start date, then by id.
func SortByStart(entries []entity.CalendarEntry) {
	slices.SortFunc(entries, func(a, b entity.CalendarEntry) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
