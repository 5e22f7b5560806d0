package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dayflowhq/dayflow_backend/config"
	"github.com/dayflowhq/dayflow_backend/utils"
)

type Habit struct {
	ID           int         `gorm:"primary_key" json:"id"`
	UserId       int         `gorm:"index;not null" json:"user_id"`
	Title        string      `gorm:"size:100;not null" json:"title"`
	Description  string      `gorm:"size:500" json:"description"`
	Color        string      `gorm:"size:7;not null;default:'#4F46E5'" json:"color"`
	Icon         string      `gorm:"size:50;not null;default:'check'" json:"icon"`
	Frequency    StringSlice `gorm:"type:json" json:"frequency"`
	Goal         int         `gorm:"not null;default:1" json:"goal"`
	ReminderTime string      `gorm:"size:5" json:"reminder_time"`

	// Denormalized counters maintained incrementally by ToggleHabit. They are
	// not recomputed from logs on read and can drift if logs are edited out
	// of band; RecountHabitStats is the reconciliation backstop.
	CurrentStreak    int `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak    int `gorm:"not null;default:0" json:"longest_streak"`
	TotalCompletions int `gorm:"not null;default:0" json:"total_completions"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewHabit struct {
	Title        string   `json:"title" binding:"required,max=100"`
	Description  string   `json:"description" binding:"max=500"`
	Color        string   `json:"color" binding:"omitempty,hexcolor"`
	Icon         string   `json:"icon" binding:"max=50"`
	Frequency    []string `json:"frequency"`
	Goal         int      `json:"goal" binding:"omitempty,min=1"`
	ReminderTime string   `json:"reminderTime"`
}

func CreateHabit(ctx context.Context, input *NewHabit) (*Habit, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId == 0 {
		return nil, errors.New("user id is required")
	}

	if err := utils.ValidateUnique[Habit](ctx, userId, "title", input.Title, 0); err != nil {
		return nil, err
	}

	habit := Habit{
		UserId:       userId,
		Title:        input.Title,
		Description:  input.Description,
		Color:        input.Color,
		Icon:         input.Icon,
		Frequency:    input.Frequency,
		Goal:         input.Goal,
		ReminderTime: input.ReminderTime,
	}
	if habit.Color == "" {
		habit.Color = "#4F46E5"
	}
	if habit.Icon == "" {
		habit.Icon = "check"
	}
	if len(habit.Frequency) == 0 {
		habit.Frequency = StringSlice{"Daily"}
	}
	if habit.Goal < 1 {
		habit.Goal = 1
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&habit).Error; err != nil {
		return nil, err
	}

	return &habit, nil
}

func ListHabits(ctx context.Context) ([]*Habit, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId == 0 {
		return nil, errors.New("user id is required")
	}
	return utils.FetchAllOwnedModels[Habit](ctx, userId, "created_at DESC")
}

func GetHabit(ctx context.Context, id int) (*Habit, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId == 0 {
		return nil, errors.New("user id is required")
	}
	return utils.FetchOwnedModel[Habit](ctx, userId, id)
}

func UpdateHabit(ctx context.Context, id int, input *NewHabit) (*Habit, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId == 0 {
		return nil, errors.New("user id is required")
	}

	habit, err := utils.FetchOwnedModel[Habit](ctx, userId, id)
	if err != nil {
		return nil, err
	}

	if err := utils.ValidateUnique[Habit](ctx, userId, "title", input.Title, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":       input.Title,
		"description": input.Description,
	}
	if input.Color != "" {
		updates["color"] = input.Color
	}
	if input.Icon != "" {
		updates["icon"] = input.Icon
	}
	if len(input.Frequency) > 0 {
		updates["frequency"] = StringSlice(input.Frequency)
	}
	if input.Goal >= 1 {
		updates["goal"] = input.Goal
	}
	if input.ReminderTime != "" {
		updates["reminder_time"] = input.ReminderTime
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(habit).Updates(updates).Error; err != nil {
		return nil, err
	}

	return habit, nil
}

// DeleteHabit removes the habit and all of its logs.
func DeleteHabit(ctx context.Context, id int) error {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId == 0 {
		return errors.New("user id is required")
	}

	habit, err := utils.FetchOwnedModel[Habit](ctx, userId, id)
	if err != nil {
		return err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(habit).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Where("habit_id = ?", id).Delete(&HabitLog{}).Error; err != nil {
		return err
	}
	return nil
}

/* toggle state machine */

type ToggleResult struct {
	HabitId int            `json:"habitId"`
	Date    time.Time      `json:"date"`
	Status  HabitLogStatus `json:"status"`
	Stats   ToggleStats    `json:"stats"`
}

type ToggleStats struct {
	CurrentStreak    int `json:"currentStreak"`
	TotalCompletions int `json:"totalCompletions"`
}

// validateToggleDate rejects days strictly after the injected "today".
func validateToggleDate(date time.Time, today time.Time) error {
	if utils.DayOf(date).After(utils.DayOf(today)) {
		return utils.NewValidationError("cannot mark future dates as complete")
	}
	return nil
}

// applyToggle advances one (habit, day) through the toggle cycle and
// incrementally maintains the habit's counters. current is nil when no log
// exists. Returns the resulting status and whether the existing log must be
// deleted. Counters are plain increments/decrements, not recomputations, so
// they are only exact when toggles arrive one user action at a time.
func applyToggle(habit *Habit, current *HabitLogStatus) (HabitLogStatus, bool) {
	switch {
	case current == nil:
		habit.TotalCompletions++
		habit.CurrentStreak++
		if habit.CurrentStreak > habit.LongestStreak {
			habit.LongestStreak = habit.CurrentStreak
		}
		return HabitStatusCompleted, false

	case *current == HabitStatusCompleted:
		habit.TotalCompletions = maxInt(0, habit.TotalCompletions-1)
		habit.CurrentStreak = maxInt(0, habit.CurrentStreak-1)
		return HabitStatusMissed, false

	case *current == HabitStatusMissed:
		return HabitStatusUnmarked, true

	default:
		// stored "unmarked" rows (legacy data) behave like no log
		habit.TotalCompletions++
		habit.CurrentStreak++
		if habit.CurrentStreak > habit.LongestStreak {
			habit.LongestStreak = habit.CurrentStreak
		}
		return HabitStatusCompleted, false
	}
}

// ToggleHabit cycles the (habit, date) day through
// no-log -> completed -> missed -> no-log and persists the updated counters.
// today is injected so date-boundary behavior stays deterministic under test.
// Not idempotent: every call changes state.
func ToggleHabit(ctx context.Context, habitId int, date time.Time, today time.Time) (*ToggleResult, error) {
	if err := validateToggleDate(date, today); err != nil {
		return nil, err
	}
	day := utils.DayOf(date)

	// concurrent toggles on the same habit race on the counters; the habit
	// (and its counters) must be read inside the critical section
	release, err := utils.OwnerLock(ctx, fmt.Sprintf("habit-toggle:%d", habitId), "habit.go", "ToggleHabit")
	if err != nil {
		return nil, err
	}
	defer release()

	habit, err := GetHabit(ctx, habitId)
	if err != nil {
		return nil, err
	}

	existing, err := findHabitLog(ctx, habitId, day)
	if err != nil {
		return nil, err
	}

	var current *HabitLogStatus
	if existing != nil {
		current = &existing.Status
	}

	newStatus, removeLog := applyToggle(habit, current)

	db := config.GetDB()
	switch {
	case removeLog:
		if err := db.WithContext(ctx).Delete(existing).Error; err != nil {
			return nil, err
		}
	case existing == nil:
		log := HabitLog{
			HabitId: habitId,
			UserId:  habit.UserId,
			Date:    day,
			Status:  newStatus,
		}
		if err := db.WithContext(ctx).Create(&log).Error; err != nil {
			if isDuplicateKeyError(err) {
				return nil, errors.New("day was toggled concurrently, try again")
			}
			return nil, err
		}
	default:
		if err := db.WithContext(ctx).Model(existing).Update("status", newStatus).Error; err != nil {
			return nil, err
		}
	}

	if err := db.WithContext(ctx).Model(habit).Updates(map[string]interface{}{
		"current_streak":    habit.CurrentStreak,
		"longest_streak":    habit.LongestStreak,
		"total_completions": habit.TotalCompletions,
	}).Error; err != nil {
		return nil, err
	}

	return &ToggleResult{
		HabitId: habitId,
		Date:    day,
		Status:  newStatus,
		Stats: ToggleStats{
			CurrentStreak:    habit.CurrentStreak,
			TotalCompletions: habit.TotalCompletions,
		},
	}, nil
}

/* derived status for unlogged days */

// DeriveDayStatus is the effective display status of one (habit, day):
// an explicit log wins; an unlogged day strictly before today counts as
// missed once the habit existed; today, future days and pre-creation days
// have no status. Never persisted, recomputed per read.
func DeriveDayStatus(habitCreatedAt time.Time, date time.Time, today time.Time, logged *HabitLogStatus) *HabitLogStatus {
	if logged != nil {
		return logged
	}

	day := utils.DayOf(date)
	if day.Before(utils.DayOf(today)) && !day.Before(utils.DayOf(habitCreatedAt)) {
		missed := HabitStatusMissed
		return &missed
	}
	return nil
}

type DayStatus struct {
	Date   time.Time       `json:"date"`
	Status *HabitLogStatus `json:"status"`
}

// HabitStatusRange resolves the effective status of every day in the
// inclusive [start, end] range for one habit, combining explicit logs with
// the derived missed status for unlogged past days.
func HabitStatusRange(ctx context.Context, habitId int, start time.Time, end time.Time, today time.Time) ([]*DayStatus, error) {
	habit, err := GetHabit(ctx, habitId)
	if err != nil {
		return nil, err
	}

	startDay := utils.DayOf(start)
	endDay := utils.DayOf(end)
	if endDay.Before(startDay) {
		return nil, utils.NewValidationError("end date is before start date")
	}

	db := config.GetDB()
	var logs []*HabitLog
	if err := db.WithContext(ctx).
		Where("habit_id = ? AND date >= ? AND date <= ?", habitId, startDay, endDay).
		Find(&logs).Error; err != nil {
		return nil, err
	}

	logged := make(map[time.Time]*HabitLogStatus, len(logs))
	for _, log := range logs {
		status := log.Status
		logged[utils.DayOf(log.Date)] = &status
	}

	var days []*DayStatus
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		days = append(days, &DayStatus{
			Date:   day,
			Status: DeriveDayStatus(habit.CreatedAt, day, today, logged[day]),
		})
	}
	return days, nil
}

/* reconciliation backstop */

// RecountFromLogs derives the counter values from the actual log history:
// total completed days, the longest run of consecutive completed days, and
// the run ending at today (today itself may still be unlogged).
func RecountFromLogs(logs []*HabitLog, today time.Time) (total int, longest int, current int) {
	completed := make(map[time.Time]bool)
	for _, log := range logs {
		if log.Status == HabitStatusCompleted {
			completed[utils.DayOf(log.Date)] = true
		}
	}
	total = len(completed)

	for day := range completed {
		if completed[day.AddDate(0, 0, -1)] {
			continue // not the start of a run
		}
		length := 0
		for d := day; completed[d]; d = d.AddDate(0, 0, 1) {
			length++
		}
		if length > longest {
			longest = length
		}
	}

	day := utils.DayOf(today)
	if !completed[day] {
		day = day.AddDate(0, 0, -1)
	}
	for completed[day] {
		current++
		day = day.AddDate(0, 0, -1)
	}

	return total, longest, current
}

// RecountHabitStats recomputes the habit's counters from its logs and
// persists them. This goes beyond the incremental bookkeeping the toggle
// performs and exists to repair drift after out-of-band log edits.
func RecountHabitStats(ctx context.Context, habitId int, today time.Time) (*Habit, error) {
	habit, err := GetHabit(ctx, habitId)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	var logs []*HabitLog
	if err := db.WithContext(ctx).Where("habit_id = ?", habitId).Find(&logs).Error; err != nil {
		return nil, err
	}

	total, longest, current := RecountFromLogs(logs, today)
	habit.TotalCompletions = total
	habit.LongestStreak = longest
	habit.CurrentStreak = current

	if err := db.WithContext(ctx).Model(habit).Updates(map[string]interface{}{
		"current_streak":    current,
		"longest_streak":    longest,
		"total_completions": total,
	}).Error; err != nil {
		return nil, err
	}

	return habit, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
