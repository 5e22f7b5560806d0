// seed-user creates or updates a development login (email: dev@dayflow.local).
//
// Usage (from backend directory):
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-user
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dayflowhq/dayflow_backend/config"
	"github.com/dayflowhq/dayflow_backend/models"
	"github.com/dayflowhq/dayflow_backend/utils"
	"gorm.io/gorm"
)

const (
	seedEmail    = "dev@dayflow.local"
	seedPassword = "dayflow-dev"
	seedName     = "Dayflow Dev"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	models.MigrateTable()

	hashed, err := utils.HashPassword(seedPassword)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}

	var existing models.User
	err = db.WithContext(ctx).Model(&models.User{}).Where("email = ?", seedEmail).First(&existing).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			fmt.Fprintf(os.Stderr, "failed to lookup user: %v\n", err)
			os.Exit(1)
		}
		u := models.User{
			Name:     seedName,
			Email:    seedEmail,
			Password: string(hashed),
			IsActive: utils.NewTrue(),
		}
		if err := db.WithContext(ctx).Create(&u).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created user: email=%q\n", seedEmail)
		return
	}

	if err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", seedEmail).Updates(map[string]any{
		"password":  string(hashed),
		"name":      seedName,
		"is_active": utils.NewTrue(),
	}).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to update user: %v\n", err)
		os.Exit(1)
	}
	_ = utils.RemoveRedis[models.User](existing.ID)
	fmt.Printf("Updated user: email=%q\n", seedEmail)
}
