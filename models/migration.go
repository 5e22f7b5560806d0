package models

import (
	"log"

	"github.com/dayflowhq/dayflow_backend/config"
)

// MigrateTable auto-migrates every table in dependency order.
func MigrateTable() {
	db := config.GetDB()
	if db == nil {
		log.Println("migration skipped: db is nil")
		return
	}

	err := db.AutoMigrate(
		&User{},
		&SpreadsheetFile{},
		&SheetTable{},
		&Habit{},
		&HabitLog{},
		&AuditLog{},
	)
	if err != nil {
		log.Printf("migration error: %v", err)
	}
}
