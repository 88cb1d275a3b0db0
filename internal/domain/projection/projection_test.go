package projection

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/planner/internal/domain/calendar"
	"github.com/finance-tracker/planner/internal/domain/entity"
	"github.com/finance-tracker/planner/internal/domain/valueobject"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func entry(id, day string, planType entity.PlanType, amount string, completed bool) entity.CalendarEntry {
	d := valueobject.MustParseDate(day)
	return entity.CalendarEntry{
		ID:     id + "@" + day,
		PlanID: id,
		Start:  d,
		End:    d,
		AllDay: true,
		Resource: &entity.FinancialPlan{
			ID:        id,
			Title:     id,
			Amount:    dec(amount),
			Type:      planType,
			Category:  "その他",
			StartDate: d,
			Completed: completed,
		},
	}
}

func sampleEntries() []entity.CalendarEntry {
	return []entity.CalendarEntry{
		entry("salary", "2024-06-25", entity.PlanTypeIncome, "1000", false),
		entry("rent", "2024-06-27", entity.PlanTypeExpense, "400", false),
		entry("phone", "2024-06-05", entity.PlanTypeExpense, "200", true),
	}
}

func TestSumByType(t *testing.T) {
	entries := sampleEntries()

	tests := []struct {
		name     string
		planType entity.PlanType
		opts     SumOptions
		want     string
	}{
		{"expense incomplete only", entity.PlanTypeExpense, SumOptions{OnlyIncomplete: true}, "400"},
		{"expense all", entity.PlanTypeExpense, SumOptions{}, "600"},
		{"income incomplete only", entity.PlanTypeIncome, SumOptions{OnlyIncomplete: true}, "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SumByType(entries, tt.planType, tt.opts)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("SumByType = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestProjectBalance(t *testing.T) {
	if got := ProjectBalance(dec("5000"), dec("1000"), dec("400")); !got.Equal(dec("5600")) {
		t.Errorf("ProjectBalance = %s, want 5600", got)
	}
	if got := ProjectBalance(dec("100"), dec("0"), dec("350.25")); !got.Equal(dec("-250.25")) {
		t.Errorf("ProjectBalance = %s, want -250.25", got)
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(sampleEntries(), dec("5000"))
	if !got.PlannedIncome.Equal(dec("1000")) || !got.PlannedExpense.Equal(dec("400")) || !got.ProjectedBalance.Equal(dec("5600")) {
		t.Errorf("Summarize = %+v", got)
	}

	empty := Summarize(nil, dec("1234.5"))
	if !empty.PlannedIncome.IsZero() || !empty.PlannedExpense.IsZero() || !empty.ProjectedBalance.Equal(dec("1234.5")) {
		t.Errorf("empty Summarize = %+v", empty)
	}
}

func TestGroupByDate(t *testing.T) {
	entries := append(sampleEntries(), entry("bonus", "2024-06-25", entity.PlanTypeIncome, "50", false))
	groups := GroupByDate(entries)

	if len(groups) != 3 {
		t.Fatalf("expected 3 days, got %d", len(groups))
	}
	if len(groups["2024-06-25"]) != 2 {
		t.Errorf("expected 2 entries on 2024-06-25, got %d", len(groups["2024-06-25"]))
	}
	if _, ok := groups["2024-6-25"]; ok {
		t.Error("keys must use the zero-padded form")
	}
}

func TestSumByCategory(t *testing.T) {
	plans := []*entity.FinancialPlan{
		{Category: "食費", Type: entity.PlanTypeExpense, Amount: dec("300")},
		{Category: "食費", Type: entity.PlanTypeExpense, Amount: dec("200.5")},
		{Category: "食費", Type: entity.PlanTypeIncome, Amount: dec("999")},
		{Category: "交通費", Type: entity.PlanTypeExpense, Amount: dec("50")},
	}

	if got := SumByCategory(plans, "食費", entity.PlanTypeExpense); !got.Equal(dec("500.5")) {
		t.Errorf("SumByCategory = %s, want 500.5", got)
	}
	if got := SumByCategory(plans, "娯楽費", entity.PlanTypeExpense); !got.IsZero() {
		t.Errorf("SumByCategory for unused category = %s", got)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name  string
		part  string
		total string
		want  float64
	}{
		{"regular", "250", "1000", 25},
		{"rounded", "1", "3", 33.33},
		{"zero total", "250", "0", 0},
		{"negative total", "250", "-1000", 0},
		{"above total", "3000", "1000", 100},
		{"negative part", "-10", "1000", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentage(dec(tt.part), dec(tt.total)); got != tt.want {
				t.Errorf("Percentage(%s, %s) = %v, want %v", tt.part, tt.total, got, tt.want)
			}
		})
	}
}

func TestDailyProjection(t *testing.T) {
	w, err := calendar.NewWindow(valueobject.MustParseDate("2024-06-24"), valueobject.MustParseDate("2024-06-28"))
	if err != nil {
		t.Fatal(err)
	}

	points := DailyProjection(sampleEntries(), w, dec("5000"))
	if len(points) != 5 {
		t.Fatalf("expected 5 points, got %d", len(points))
	}

	want := map[string]string{
		"2024-06-24": "5000",
		"2024-06-25": "6000",
		"2024-06-26": "6000",
		"2024-06-27": "5600",
		"2024-06-28": "5600",
	}
	for _, p := range points {
		if !p.Balance.Equal(dec(want[p.Date.String()])) {
			t.Errorf("balance on %s = %s, want %s", p.Date, p.Balance, want[p.Date.String()])
		}
	}
	if !points[3].Expense.Equal(dec("400")) {
		t.Errorf("expense on 2024-06-27 = %s", points[3].Expense)
	}
}

func TestDailyProjection_EntryStartedBeforeWindow(t *testing.T) {
	w, err := calendar.NewWindow(valueobject.MustParseDate("2024-06-10"), valueobject.MustParseDate("2024-06-12"))
	if err != nil {
		t.Fatal(err)
	}

	trip := entry("trip", "2024-06-08", entity.PlanTypeExpense, "300", false)
	trip.End = valueobject.MustParseDate("2024-06-11")
	entries := []entity.CalendarEntry{
		trip,
		entry("bonus", "2024-06-11", entity.PlanTypeIncome, "500", false),
	}

	points := DailyProjection(entries, w, dec("1000"))
	if !points[0].Expense.Equal(dec("300")) || !points[0].Balance.Equal(dec("700")) {
		t.Errorf("first day = %+v, want expense 300 and balance 700", points[0])
	}

	last := points[len(points)-1].Balance
	summary := Summarize(entries, dec("1000"))
	if !last.Equal(summary.ProjectedBalance) {
		t.Errorf("last balance = %s, summary projected %s", last, summary.ProjectedBalance)
	}
}

func TestMonthlyTotals(t *testing.T) {
	entries := append(sampleEntries(), entry("tax", "2024-05-31", entity.PlanTypeExpense, "70", false))
	totals := MonthlyTotals(entries)

	if len(totals) != 2 {
		t.Fatalf("expected 2 months, got %+v", totals)
	}
	if totals[0].Month != "2024-05" || !totals[0].Expense.Equal(dec("70")) || !totals[0].Income.IsZero() {
		t.Errorf("May = %+v", totals[0])
	}
	if totals[1].Month != "2024-06" || !totals[1].Expense.Equal(dec("600")) || !totals[1].Income.Equal(dec("1000")) {
		t.Errorf("June = %+v", totals[1])
	}
}

func TestDateTotal(t *testing.T) {
	got := DateTotal(sampleEntries(), valueobject.MustParseDate("2024-06-05"), entity.PlanTypeExpense)
	if !got.Equal(dec("200")) {
		t.Errorf("DateTotal = %s, want 200", got)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	plans := []*entity.FinancialPlan{
		{Category: "食費", Type: entity.PlanTypeExpense, Amount: dec("300")},
		{Category: "交通費", Type: entity.PlanTypeExpense, Amount: dec("500")},
		{Category: "食費", Type: entity.PlanTypeExpense, Amount: dec("200")},
		{Category: "給与", Type: entity.PlanTypeIncome, Amount: dec("2000")},
	}

	shares := CategoryBreakdown(plans, entity.PlanTypeExpense, dec("2000"))
	if len(shares) != 2 {
		t.Fatalf("expected 2 categories, got %+v", shares)
	}
	if shares[0].Category != "交通費" || shares[1].Category != "食費" {
		t.Errorf("order = %s, %s", shares[0].Category, shares[1].Category)
	}
	if shares[0].Percentage != 25 || shares[1].Percentage != 25 {
		t.Errorf("percentages = %v, %v", shares[0].Percentage, shares[1].Percentage)
	}

	zero := CategoryBreakdown(plans, entity.PlanTypeExpense, decimal.Zero)
	for _, s := range zero {
		if s.Percentage != 0 {
			t.Errorf("expected 0%% for zero denominator, got %v", s.Percentage)
		}
	}
}

func TestAggregatesDoNotMutate(t *testing.T) {
	entries := sampleEntries()
	before := entries[0].Resource.Clone()

	_ = Summarize(entries, dec("10"))
	_ = MonthlyTotals(entries)
	_ = GroupByDate(entries)

	if entries[0].Resource.Amount.Cmp(before.Amount) != 0 || entries[0].ID != "salary@2024-06-25" {
		t.Error("aggregation mutated its input")
	}
}
