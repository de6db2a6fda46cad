package services

import (
	"testing"

	"budgettracker/internal/models"
	"budgettracker/internal/testutil"
)

func TestFinancialMonthStartDay(t *testing.T) {
	t.Run("default_when_unset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db, 25)

		day, err := svc.GetFinancialMonthStartDay()
		testutil.AssertNoError(t, err)
		if day != 25 {
			t.Errorf("expected 25, got %d", day)
		}
	})

	t.Run("invalid_default_falls_back", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db, 31)

		day, err := svc.GetFinancialMonthStartDay()
		testutil.AssertNoError(t, err)
		if day != 25 {
			t.Errorf("expected fallback 25, got %d", day)
		}
	})

	t.Run("set_then_get", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db, 25)

		testutil.AssertNoError(t, svc.SetFinancialMonthStartDay(1))
		testutil.AssertNoError(t, svc.SetFinancialMonthStartDay(15))

		day, err := svc.GetFinancialMonthStartDay()
		testutil.AssertNoError(t, err)
		if day != 15 {
			t.Errorf("expected 15, got %d", day)
		}

		var count int64
		db.Model(&models.Setting{}).Count(&count)
		if count != 1 {
			t.Errorf("expected a single settings row, got %d", count)
		}
	})

	t.Run("rejects_out_of_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db, 25)

		for _, day := range []int{0, 29, 31, -1} {
			err := svc.SetFinancialMonthStartDay(day)
			testutil.AssertAppError(t, err, "INVALID_START_DAY")
		}

		day, err := svc.GetFinancialMonthStartDay()
		testutil.AssertNoError(t, err)
		if day != 25 {
			t.Errorf("expected unchanged 25, got %d", day)
		}
	})

	t.Run("corrupt_row_uses_default", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db, 10)

		db.Create(&models.Setting{Name: models.SettingFinancialMonthStartDay, Value: "99"})

		day, err := svc.GetFinancialMonthStartDay()
		testutil.AssertNoError(t, err)
		if day != 10 {
			t.Errorf("expected default 10, got %d", day)
		}
	})
}
