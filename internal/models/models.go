// Package models defines the gorm models persisted by the tracker.
package models

// All lists every model, in dependency order, for auto-migration.
func All() []interface{} {
	return []interface{}{
		&Account{},
		&Category{},
		&Transaction{},
		&Setting{},
		&AuditLog{},
	}
}
