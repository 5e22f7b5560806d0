package models

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/dayflowhq/dayflow_backend/config"
	"github.com/dayflowhq/dayflow_backend/utils"
	"gorm.io/gorm"
)

// HabitLog records one day's explicit status for a habit. Date carries a day
// boundary only; the unique (habit_id, date) index keeps at most one row per
// habit per day. Absence of a row means "no opinion", which is not the same
// as an explicit missed entry.
type HabitLog struct {
	ID        int            `gorm:"primary_key" json:"id"`
	HabitId   int            `gorm:"uniqueIndex:idx_habit_date;not null" json:"habit_id"`
	UserId    int            `gorm:"index;not null" json:"user_id"`
	Date      time.Time      `gorm:"uniqueIndex:idx_habit_date;type:date;not null" json:"date"`
	Status    HabitLogStatus `gorm:"type:enum('completed','missed','unmarked');default:'unmarked'" json:"status"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func findHabitLog(ctx context.Context, habitId int, day time.Time) (*HabitLog, error) {
	db := config.GetDB()
	var log HabitLog
	err := db.WithContext(ctx).
		Where("habit_id = ? AND date = ?", habitId, day).
		First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

// ListHabitLogs returns the user's logs, optionally restricted to an
// inclusive date range, newest first.
func ListHabitLogs(ctx context.Context, start *time.Time, end *time.Time) ([]*HabitLog, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId == 0 {
		return nil, errors.New("user id is required")
	}

	db := config.GetDB()
	query := db.WithContext(ctx).Where("user_id = ?", userId)
	if start != nil && end != nil {
		query = query.Where("date >= ? AND date <= ?", utils.DayOf(*start), utils.DayOf(*end))
	}

	var logs []*HabitLog
	if err := query.Order("date DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// MySQL duplicate entry on a unique index.
func isDuplicateKeyError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}
