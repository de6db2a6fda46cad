package database

import (
	"path/filepath"
	"testing"

	"budgettracker/internal/config"
	"budgettracker/internal/logger"
	"budgettracker/internal/models"
)

func init() {
	logger.Init("test", "")
}

func newSQLiteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "data", "budget.db"),
	}
}

func TestManager_RunMigrations(t *testing.T) {
	cfg := newSQLiteConfig(t)

	mgr, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(func() { _ = mgr.Close() })

	if err := mgr.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}

	t.Run("creates every table", func(t *testing.T) {
		for _, table := range []string{"accounts", "categories", "transactions", "settings", "audit_logs"} {
			if !mgr.DB().Migrator().HasTable(table) {
				t.Errorf("expected table %s", table)
			}
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		if err := mgr.RunMigrations(); err != nil {
			t.Fatalf("second RunMigrations: %v", err)
		}
	})

	t.Run("schema accepts models", func(t *testing.T) {
		db := mgr.DB()
		acct := models.Account{Name: "FNB", Balance: 1000}
		if err := db.Create(&acct).Error; err != nil {
			t.Fatalf("create account: %v", err)
		}
		cat := models.Category{Name: "food", MonthlyLimit: 500}
		if err := db.Create(&cat).Error; err != nil {
			t.Fatalf("create category: %v", err)
		}
		tx := models.Transaction{AccountID: acct.ID, CategoryID: cat.ID, Amount: 100, FinancialMonth: "2024-03"}
		if err := db.Create(&tx).Error; err != nil {
			t.Fatalf("create transaction: %v", err)
		}
	})

	t.Run("rejects negative limit", func(t *testing.T) {
		cat := models.Category{Name: "broken", MonthlyLimit: -1}
		if err := mgr.DB().Create(&cat).Error; err == nil {
			t.Error("expected check constraint violation")
		}
	})

	t.Run("enforces foreign keys", func(t *testing.T) {
		tx := models.Transaction{
			AccountID:      "00000000-0000-0000-0000-000000000000",
			CategoryID:     "00000000-0000-0000-0000-000000000000",
			Amount:         1,
			FinancialMonth: "2024-03",
		}
		if err := mgr.DB().Create(&tx).Error; err == nil {
			t.Error("expected foreign key violation")
		}
	})
}

func TestManager_MigrateDown(t *testing.T) {
	cfg := newSQLiteConfig(t)
	mgr, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(func() { _ = mgr.Close() })

	if err := mgr.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}

	mig, err := NewMigrator(cfg.DBDriver, cfg.MigrationURL())
	if err != nil {
		t.Fatalf("NewMigrator: %v", err)
	}
	defer CloseMigrator(mig)

	version, dirty, err := mig.Version()
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if version != 1 || dirty {
		t.Fatalf("expected clean version 1, got %d dirty=%v", version, dirty)
	}

	if err := mig.Steps(-1); err != nil {
		t.Fatalf("Steps(-1): %v", err)
	}
	if mgr.DB().Migrator().HasTable("transactions") {
		t.Error("expected transactions table to be dropped")
	}
}

func TestNewManager_UnsupportedDriver(t *testing.T) {
	if _, err := NewManager(&config.Config{DBDriver: "oracle"}); err == nil {
		t.Error("expected error for unsupported driver")
	}
}
