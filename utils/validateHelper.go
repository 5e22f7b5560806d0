package utils

import (
	"context"
	"reflect"

	"github.com/dayflowhq/dayflow_backend/config"
)

// count records, using WHERE user_id = ? AND $condition
func OwnedCountWhere[T any](ctx context.Context, userId int, condition string, value ...interface{}) (int64, error) {
	var model T

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&model).Where("user_id = ?", userId)
	dbCtx = dbCtx.Where(condition, value...)
	var count int64
	if err := dbCtx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ValidateUnique rejects a value already used in the given column by another
// of the owner's records. exceptId excludes the record being updated.
func ValidateUnique[T any](ctx context.Context, userId int, column string, value interface{}, exceptId interface{}) error {
	var count int64
	var err error
	if reflect.ValueOf(exceptId).IsZero() {
		count, err = OwnedCountWhere[T](ctx, userId, column+" = ?", value)
	} else {
		count, err = OwnedCountWhere[T](ctx, userId, column+" = ? AND NOT id = ?", value, exceptId)
	}

	if err != nil {
		return err
	}
	if count > 0 {
		return NewValidationError("duplicate " + column)
	}
	return nil
}
