package services

import (
	"testing"

	"budgettracker/internal/models"
	"budgettracker/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)

	svc.Log(AuditActionCreate, "account", "0190a0e4-0000-7000-8000-000000000001", "127.0.0.1",
		map[string]interface{}{"name": "FNB"})
	svc.Log(AuditActionDelete, "account", "0190a0e4-0000-7000-8000-000000000001", "127.0.0.1", nil)

	var entries []models.AuditLog
	testutil.AssertNoError(t, db.Order("action ASC").Find(&entries).Error)

	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}
	if entries[0].Changes != `{"name":"FNB"}` {
		t.Errorf("unexpected changes: %s", entries[0].Changes)
	}
	if entries[1].Changes != "" {
		t.Errorf("expected empty changes, got %s", entries[1].Changes)
	}
}
