package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"budgettracker/internal/models"
	"budgettracker/internal/pagination"
	"budgettracker/internal/testutil"
)

type txFixture struct {
	db       *gorm.DB
	accounts AccountServicer
	settings SettingsServicer
	svc      TransactionServicer
	account  *models.Account
	category *models.Category
}

func newTxFixture(t *testing.T, startDay int) *txFixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	accounts := NewAccountService(db)
	categories := NewCategoryService(db)
	settings := NewSettingsService(db, startDay)

	return &txFixture{
		db:       db,
		accounts: accounts,
		settings: settings,
		svc:      NewTransactionService(db, accounts, categories, settings),
		account:  testutil.CreateTestAccountWithBalance(t, db, 100000),
		category: testutil.CreateTestCategory(t, db, 50000),
	}
}

func (f *txFixture) balance(t *testing.T) int64 {
	t.Helper()
	account, err := f.accounts.GetAccountByID(f.account.ID)
	testutil.AssertNoError(t, err)
	return account.Balance
}

func TestRecordTransaction(t *testing.T) {
	t.Run("debits_account_and_tags", func(t *testing.T) {
		f := newTxFixture(t, 25)

		tx, err := f.svc.RecordTransaction(f.account.ID, f.category.ID, 3000, "groceries",
			time.Date(2024, 3, 24, 18, 0, 0, 0, time.UTC))
		testutil.AssertNoError(t, err)

		if tx.ID == "" {
			t.Fatal("expected transaction ID to be set")
		}
		if tx.FinancialMonth != "2024-03" {
			t.Errorf("expected tag 2024-03, got %s", tx.FinancialMonth)
		}
		if got := f.balance(t); got != 97000 {
			t.Errorf("expected balance 97000, got %d", got)
		}
	})

	t.Run("start_day_rolls_into_next_month", func(t *testing.T) {
		f := newTxFixture(t, 25)

		tx, err := f.svc.RecordTransaction(f.account.ID, f.category.ID, 100, "",
			time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC))
		testutil.AssertNoError(t, err)

		if tx.FinancialMonth != "2024-04" {
			t.Errorf("expected tag 2024-04, got %s", tx.FinancialMonth)
		}
	})

	t.Run("refund_credits_account", func(t *testing.T) {
		f := newTxFixture(t, 25)

		_, err := f.svc.RecordTransaction(f.account.ID, f.category.ID, -2500, "refund", time.Now())
		testutil.AssertNoError(t, err)

		if got := f.balance(t); got != 102500 {
			t.Errorf("expected balance 102500, got %d", got)
		}
	})

	t.Run("stored_tag_survives_start_day_change", func(t *testing.T) {
		f := newTxFixture(t, 25)
		date := time.Date(2024, 3, 26, 12, 0, 0, 0, time.UTC)

		tx, err := f.svc.RecordTransaction(f.account.ID, f.category.ID, 100, "", date)
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, f.settings.SetFinancialMonthStartDay(1))

		stored, err := f.svc.GetTransactionByID(tx.ID)
		testutil.AssertNoError(t, err)
		if stored.FinancialMonth != "2024-04" {
			t.Errorf("expected stored tag 2024-04, got %s", stored.FinancialMonth)
		}

		later, err := f.svc.RecordTransaction(f.account.ID, f.category.ID, 100, "", date)
		testutil.AssertNoError(t, err)
		if later.FinancialMonth != "2024-03" {
			t.Errorf("expected new tag 2024-03, got %s", later.FinancialMonth)
		}
	})

	t.Run("zero_amount", func(t *testing.T) {
		f := newTxFixture(t, 25)

		_, err := f.svc.RecordTransaction(f.account.ID, f.category.ID, 0, "", time.Now())
		testutil.AssertAppError(t, err, "ZERO_AMOUNT")
	})

	t.Run("missing_ids", func(t *testing.T) {
		f := newTxFixture(t, 25)

		_, err := f.svc.RecordTransaction("", f.category.ID, 100, "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = f.svc.RecordTransaction(f.account.ID, "", 100, "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_account", func(t *testing.T) {
		f := newTxFixture(t, 25)

		_, err := f.svc.RecordTransaction("00000000-0000-0000-0000-000000000000", f.category.ID, 100, "", time.Now())
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})

	t.Run("unknown_category", func(t *testing.T) {
		f := newTxFixture(t, 25)

		_, err := f.svc.RecordTransaction(f.account.ID, "00000000-0000-0000-0000-000000000000", 100, "", time.Now())
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")

		if got := f.balance(t); got != 100000 {
			t.Errorf("expected untouched balance, got %d", got)
		}
	})
}

func TestGetTransactions(t *testing.T) {
	f := newTxFixture(t, 25)
	other := testutil.CreateTestCategory(t, f.db, 1000)

	record := func(categoryID string, amount int64, date time.Time) {
		t.Helper()
		_, err := f.svc.RecordTransaction(f.account.ID, categoryID, amount, "", date)
		testutil.AssertNoError(t, err)
	}
	record(f.category.ID, 100, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))  // 2024-03
	record(f.category.ID, 200, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)) // 2024-03
	record(other.ID, 300, time.Date(2024, 3, 26, 0, 0, 0, 0, time.UTC))      // 2024-04

	t.Run("all_newest_first", func(t *testing.T) {
		result, err := f.svc.GetTransactions(pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 3 {
			t.Fatalf("expected 3, got %d", result.TotalItems)
		}
		if result.Data[0].Amount != 300 {
			t.Errorf("expected newest first, got amount %d", result.Data[0].Amount)
		}
		if result.Data[0].Category == nil || result.Data[0].Category.ID != other.ID {
			t.Error("expected category to be preloaded")
		}
	})

	t.Run("by_financial_month", func(t *testing.T) {
		month := "2024-03"
		result, err := f.svc.GetTransactions(pagination.PageRequest{}, TransactionFilter{FinancialMonth: &month})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Errorf("expected 2 in 2024-03, got %d", result.TotalItems)
		}
	})

	t.Run("by_category", func(t *testing.T) {
		result, err := f.svc.GetTransactions(pagination.PageRequest{}, TransactionFilter{CategoryID: &other.ID})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Errorf("expected 1, got %d", result.TotalItems)
		}
	})

	t.Run("by_date_range", func(t *testing.T) {
		from := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)
		result, err := f.svc.GetTransactions(pagination.PageRequest{}, TransactionFilter{FromDate: &from, ToDate: &to})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 || result.Data[0].Amount != 200 {
			t.Errorf("expected only the 200 transaction, got %d items", result.TotalItems)
		}
	})

	t.Run("invalid_month", func(t *testing.T) {
		month := "March"
		_, err := f.svc.GetTransactions(pagination.PageRequest{}, TransactionFilter{FinancialMonth: &month})
		testutil.AssertAppError(t, err, "INVALID_FINANCIAL_MONTH")
	})
}

func TestGetTransactions_OffsetTimestamps(t *testing.T) {
	f := newTxFixture(t, 25)
	minus2 := time.FixedZone("UTC-2", -2*60*60)

	// 23:30 on the 24th at -02:00 is 01:30 UTC on the 25th.
	tx, err := f.svc.RecordTransaction(f.account.ID, f.category.ID, 700, "late dinner",
		time.Date(2024, 3, 24, 23, 30, 0, 0, minus2))
	testutil.AssertNoError(t, err)

	t.Run("tag_follows_local_day", func(t *testing.T) {
		if tx.FinancialMonth != "2024-03" {
			t.Errorf("expected 2024-03 for the 24th local time, got %s", tx.FinancialMonth)
		}
	})

	t.Run("stored_in_utc", func(t *testing.T) {
		stored, err := f.svc.GetTransactionByID(tx.ID)
		testutil.AssertNoError(t, err)
		want := time.Date(2024, 3, 25, 1, 30, 0, 0, time.UTC)
		if !stored.OccurredAt.Equal(want) {
			t.Errorf("expected %s, got %s", want, stored.OccurredAt)
		}
	})

	t.Run("utc_from_matches_instant", func(t *testing.T) {
		from := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)
		result, err := f.svc.GetTransactions(pagination.PageRequest{}, TransactionFilter{FromDate: &from})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 match, got %d", result.TotalItems)
		}
	})

	t.Run("offset_to_excludes_later_instant", func(t *testing.T) {
		// 20:00 on the 24th at -03:00 is 23:00 UTC, before the stored instant.
		to := time.Date(2024, 3, 24, 20, 0, 0, 0, time.FixedZone("UTC-3", -3*60*60))
		result, err := f.svc.GetTransactions(pagination.PageRequest{}, TransactionFilter{ToDate: &to})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 0 {
			t.Errorf("expected no match, got %d", result.TotalItems)
		}
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("restores_balance", func(t *testing.T) {
		f := newTxFixture(t, 25)

		tx, err := f.svc.RecordTransaction(f.account.ID, f.category.ID, 4000, "", time.Now())
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, f.svc.DeleteTransaction(tx.ID))

		if got := f.balance(t); got != 100000 {
			t.Errorf("expected balance restored to 100000, got %d", got)
		}
		_, err = f.svc.GetTransactionByID(tx.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("not_found", func(t *testing.T) {
		f := newTxFixture(t, 25)

		err := f.svc.DeleteTransaction("00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}
