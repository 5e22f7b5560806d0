package utils

import (
	"context"
	"errors"

	"github.com/dayflowhq/dayflow_backend/config"
	"gorm.io/gorm"
)

/* DB fetching */

// fetch model owned by userId from db
// (may return RecordNotFound; an ownership mismatch is reported the same way,
// so non-owners learn nothing about existence)
func FetchOwnedModel[T any](ctx context.Context, userId int, id int, associations ...string) (*T, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("user_id = ?", userId)
	for _, field := range associations {
		dbCtx = dbCtx.Preload(field)
	}
	var result T
	err := dbCtx.First(&result, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrorRecordNotFound
		}
		return nil, err
	}
	return &result, nil
}

// fetch all models owned by userId
func FetchAllOwnedModels[T any](ctx context.Context, userId int, orders ...string) ([]*T, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("user_id = ?", userId)
	for _, order := range orders {
		dbCtx = dbCtx.Order(order)
	}
	var results []*T
	err := dbCtx.Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
