package charts

import (
	"bytes"
	"testing"
	"time"

	"budgettracker/internal/performance"
)

func TestSpendingByCategory(t *testing.T) {
	t.Run("renders png", func(t *testing.T) {
		report := performance.Build(
			time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 25,
			[]performance.CategoryLimit{
				{ID: "c1", Name: "food", Limit: 100000},
				{ID: "c2", Name: "petrol", Limit: 50000},
			},
			[]performance.TaggedAmount{
				{CategoryID: "c1", Amount: 30000, FinancialMonth: "2024-03"},
				{CategoryID: "c2", Amount: 60000, FinancialMonth: "2024-03"},
			},
		)

		img, err := SpendingByCategory(report)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.HasPrefix(img, []byte("\x89PNG")) {
			t.Error("expected PNG signature")
		}
	})

	t.Run("no categories", func(t *testing.T) {
		report := performance.Build(time.Now(), 25, nil, nil)

		img, err := SpendingByCategory(report)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if img != nil {
			t.Error("expected nil image for an empty report")
		}
	})
}
