package performance

import (
	"encoding/json"
	"testing"
	"time"
)

func TestBuild(t *testing.T) {
	// 2024-03-10 with start day 25 is in "2024-03"; previous tag is "2024-02".
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("single category", func(t *testing.T) {
		cats := []CategoryLimit{{ID: "c1", Name: "food", Limit: 1000}}
		rows := []TaggedAmount{{CategoryID: "c1", Amount: 300, FinancialMonth: "2024-03"}}

		r := Build(now, 25, cats, rows)

		if r.CurrentFinancialMonth != "2024-03" {
			t.Fatalf("expected current month 2024-03, got %s", r.CurrentFinancialMonth)
		}
		if r.TotalBudget != 1000 {
			t.Errorf("expected total budget 1000, got %d", r.TotalBudget)
		}
		if r.TotalSpent != 300 {
			t.Errorf("expected total spent 300, got %d", r.TotalSpent)
		}
		if len(r.Categories) != 1 {
			t.Fatalf("expected 1 category, got %d", len(r.Categories))
		}
		got := r.Categories[0]
		if got.Name != "food" || got.Limit != 1000 || got.Spent != 300 {
			t.Errorf("expected {food 1000 300}, got {%s %d %d}", got.Name, got.Limit, got.Spent)
		}
		if got.PercentUsed != 30 {
			t.Errorf("expected 30%% used, got %v", got.PercentUsed)
		}
		if r.FinancialMonthStartDay != 25 {
			t.Errorf("expected start day 25, got %d", r.FinancialMonthStartDay)
		}
		if r.DaysRemaining != 15 {
			t.Errorf("expected 15 days remaining, got %d", r.DaysRemaining)
		}
	})

	t.Run("zero limit does not divide by zero", func(t *testing.T) {
		cats := []CategoryLimit{{ID: "c1", Name: "misc", Limit: 0}}
		rows := []TaggedAmount{{CategoryID: "c1", Amount: 50, FinancialMonth: "2024-03"}}

		r := Build(now, 25, cats, rows)

		if r.Categories[0].PercentUsed != 0 {
			t.Errorf("expected 0%% used, got %v", r.Categories[0].PercentUsed)
		}
		if r.PercentUsed != 0 {
			t.Errorf("expected overall 0%% used, got %v", r.PercentUsed)
		}
		if r.TotalSpent != 50 {
			t.Errorf("expected total spent 50, got %d", r.TotalSpent)
		}
	})

	t.Run("categories without spending still count", func(t *testing.T) {
		cats := []CategoryLimit{
			{ID: "c1", Name: "food", Limit: 1000},
			{ID: "c2", Name: "petrol", Limit: 500},
		}
		rows := []TaggedAmount{{CategoryID: "c1", Amount: 200, FinancialMonth: "2024-03"}}

		r := Build(now, 25, cats, rows)

		if r.TotalBudget != 1500 {
			t.Errorf("expected total budget 1500, got %d", r.TotalBudget)
		}
		if r.Categories[1].Name != "petrol" || r.Categories[1].Spent != 0 {
			t.Errorf("expected petrol with 0 spent, got %+v", r.Categories[1])
		}
		if r.Categories[1].Remaining != 500 {
			t.Errorf("expected petrol remaining 500, got %d", r.Categories[1].Remaining)
		}
	})

	t.Run("last month is summed without breakdown", func(t *testing.T) {
		cats := []CategoryLimit{
			{ID: "c1", Name: "food", Limit: 1000},
			{ID: "c2", Name: "petrol", Limit: 500},
		}
		rows := []TaggedAmount{
			{CategoryID: "c1", Amount: 100, FinancialMonth: "2024-02"},
			{CategoryID: "c2", Amount: 250, FinancialMonth: "2024-02"},
			{CategoryID: "c1", Amount: 40, FinancialMonth: "2024-03"},
			{CategoryID: "c1", Amount: 999, FinancialMonth: "2024-01"},
		}

		r := Build(now, 25, cats, rows)

		if r.LastMonthSpent != 350 {
			t.Errorf("expected last month spent 350, got %d", r.LastMonthSpent)
		}
		if r.TotalSpent != 40 {
			t.Errorf("expected total spent 40, got %d", r.TotalSpent)
		}
	})

	t.Run("signed amounts net out", func(t *testing.T) {
		cats := []CategoryLimit{{ID: "c1", Name: "food", Limit: 1000}}
		rows := []TaggedAmount{
			{CategoryID: "c1", Amount: 400, FinancialMonth: "2024-03"},
			{CategoryID: "c1", Amount: -100, FinancialMonth: "2024-03"},
		}

		r := Build(now, 25, cats, rows)

		if r.TotalSpent != 300 {
			t.Errorf("expected net spent 300, got %d", r.TotalSpent)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		r := Build(now, 25, nil, nil)

		if r.TotalBudget != 0 || r.TotalSpent != 0 || r.LastMonthSpent != 0 {
			t.Errorf("expected zero totals, got %+v", r)
		}
		if r.Categories == nil {
			t.Error("expected an empty, non-nil category list")
		}
	})

	t.Run("start day moves the current month", func(t *testing.T) {
		late := time.Date(2024, 3, 26, 9, 0, 0, 0, time.UTC)
		cats := []CategoryLimit{{ID: "c1", Name: "food", Limit: 1000}}
		rows := []TaggedAmount{
			{CategoryID: "c1", Amount: 10, FinancialMonth: "2024-03"},
			{CategoryID: "c1", Amount: 20, FinancialMonth: "2024-04"},
		}

		r := Build(late, 25, cats, rows)

		if r.CurrentFinancialMonth != "2024-04" {
			t.Fatalf("expected 2024-04, got %s", r.CurrentFinancialMonth)
		}
		if r.TotalSpent != 20 {
			t.Errorf("expected 20 spent in 2024-04, got %d", r.TotalSpent)
		}
		wantStart := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)
		if !r.PeriodStart.Equal(wantStart) {
			t.Errorf("expected period start %s, got %s", wantStart, r.PeriodStart)
		}
	})
}

func TestReportJSONFieldNames(t *testing.T) {
	r := Build(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 25, nil, nil)
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, name := range []string{
		"totalBudget", "totalSpent", "categories", "daysRemaining",
		"lastMonthSpent", "financialMonthStartDay", "currentFinancialMonth",
	} {
		if _, ok := fields[name]; !ok {
			t.Errorf("expected field %q in report JSON", name)
		}
	}
}

func TestSummarize(t *testing.T) {
	cats := []CategoryLimit{
		{ID: "c1", Name: "food", Limit: 1000},
		{ID: "c2", Name: "fun", Limit: 200},
	}
	rows := []TaggedAmount{
		{CategoryID: "c1", Amount: 500, FinancialMonth: "2024-05"},
		{CategoryID: "c2", Amount: 300, FinancialMonth: "2024-05"},
		{CategoryID: "unknown", Amount: 70, FinancialMonth: "2024-05"},
		{CategoryID: "c1", Amount: 80, FinancialMonth: "2024-04"},
	}

	s := Summarize("2024-05", cats, rows)

	if s.FinancialMonth != "2024-05" {
		t.Errorf("expected 2024-05, got %s", s.FinancialMonth)
	}
	if s.TotalBudget != 1200 || s.TotalSpent != 800 {
		t.Errorf("expected 1200/800, got %d/%d", s.TotalBudget, s.TotalSpent)
	}
	if s.Remaining != 400 {
		t.Errorf("expected 400 remaining, got %d", s.Remaining)
	}
	if s.Categories[1].Remaining != -100 {
		t.Errorf("expected fun to be 100 over, got %d", s.Categories[1].Remaining)
	}
	if s.Categories[1].PercentUsed != 150 {
		t.Errorf("expected fun at 150%%, got %v", s.Categories[1].PercentUsed)
	}
}
