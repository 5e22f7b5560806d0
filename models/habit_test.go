package models

import (
	"testing"
	"time"

	"github.com/dayflowhq/dayflow_backend/utils"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestApplyToggleCycle(t *testing.T) {
	habit := &Habit{}

	// no log -> completed
	status, remove := applyToggle(habit, nil)
	if status != HabitStatusCompleted || remove {
		t.Fatalf("first toggle = (%s, %v), want (completed, false)", status, remove)
	}
	if habit.TotalCompletions != 1 || habit.CurrentStreak != 1 || habit.LongestStreak != 1 {
		t.Fatalf("counters after complete = %+v", habit)
	}

	// completed -> missed
	current := HabitStatusCompleted
	status, remove = applyToggle(habit, &current)
	if status != HabitStatusMissed || remove {
		t.Fatalf("second toggle = (%s, %v), want (missed, false)", status, remove)
	}
	if habit.TotalCompletions != 0 || habit.CurrentStreak != 0 {
		t.Fatalf("counters after missed = %+v", habit)
	}
	if habit.LongestStreak != 1 {
		t.Fatalf("longest streak should not shrink, got %d", habit.LongestStreak)
	}

	// missed -> no log
	current = HabitStatusMissed
	status, remove = applyToggle(habit, &current)
	if status != HabitStatusUnmarked || !remove {
		t.Fatalf("third toggle = (%s, %v), want (unmarked, true)", status, remove)
	}
	if habit.TotalCompletions != 0 || habit.CurrentStreak != 0 {
		t.Fatalf("counters must be untouched on removal: %+v", habit)
	}
}

func TestApplyToggleLegacyUnmarkedRow(t *testing.T) {
	// a stored "unmarked" row behaves like no log at all
	habit := &Habit{LongestStreak: 3}
	current := HabitStatusUnmarked

	status, remove := applyToggle(habit, &current)
	if status != HabitStatusCompleted || remove {
		t.Fatalf("toggle on unmarked row = (%s, %v), want (completed, false)", status, remove)
	}
	if habit.TotalCompletions != 1 || habit.CurrentStreak != 1 || habit.LongestStreak != 3 {
		t.Fatalf("counters = %+v", habit)
	}
}

func TestApplyToggleCountersNeverNegative(t *testing.T) {
	habit := &Habit{}
	current := HabitStatusCompleted

	// decrement from zero must clamp, not underflow
	applyToggle(habit, &current)
	if habit.TotalCompletions != 0 || habit.CurrentStreak != 0 {
		t.Fatalf("counters went negative: %+v", habit)
	}
}

func TestValidateToggleDate(t *testing.T) {
	today := time.Date(2024, 1, 10, 23, 30, 0, 0, time.UTC)

	if err := validateToggleDate(day(2024, 1, 10), today); err != nil {
		t.Fatalf("today rejected: %v", err)
	}
	if err := validateToggleDate(day(2024, 1, 5), today); err != nil {
		t.Fatalf("past day rejected: %v", err)
	}
	err := validateToggleDate(day(2024, 1, 11), today)
	if !utils.IsValidationError(err) {
		t.Fatalf("future day error = %v, want validation error", err)
	}
}

func TestDeriveDayStatus(t *testing.T) {
	createdAt := day(2024, 1, 1)
	today := day(2024, 1, 10)

	// unlogged past day after creation counts as missed
	got := DeriveDayStatus(createdAt, day(2024, 1, 5), today, nil)
	if got == nil || *got != HabitStatusMissed {
		t.Fatalf("past unlogged day = %v, want missed", got)
	}

	// before the habit existed: no status
	if got := DeriveDayStatus(createdAt, day(2023, 12, 31), today, nil); got != nil {
		t.Fatalf("pre-creation day = %v, want nil", *got)
	}

	// today and future days: no status yet
	if got := DeriveDayStatus(createdAt, today, today, nil); got != nil {
		t.Fatalf("today = %v, want nil", *got)
	}
	if got := DeriveDayStatus(createdAt, day(2024, 1, 12), today, nil); got != nil {
		t.Fatalf("future day = %v, want nil", *got)
	}

	// an explicit log always wins
	logged := HabitStatusCompleted
	got = DeriveDayStatus(createdAt, day(2024, 1, 5), today, &logged)
	if got == nil || *got != HabitStatusCompleted {
		t.Fatalf("logged day = %v, want completed", got)
	}

	// creation day itself, once in the past, derives missed
	got = DeriveDayStatus(createdAt, day(2024, 1, 1), today, nil)
	if got == nil || *got != HabitStatusMissed {
		t.Fatalf("creation day = %v, want missed", got)
	}
}

func TestRecountFromLogs(t *testing.T) {
	completedOn := func(d time.Time) *HabitLog {
		return &HabitLog{Date: d, Status: HabitStatusCompleted}
	}

	logs := []*HabitLog{
		completedOn(day(2024, 1, 1)),
		completedOn(day(2024, 1, 2)),
		completedOn(day(2024, 1, 3)),
		{Date: day(2024, 1, 4), Status: HabitStatusMissed},
		completedOn(day(2024, 1, 5)),
		completedOn(day(2024, 1, 6)),
	}

	// today (Jan 7) is unlogged, so the current run counts back from Jan 6
	total, longest, current := RecountFromLogs(logs, day(2024, 1, 7))
	if total != 5 || longest != 3 || current != 2 {
		t.Fatalf("recount = (%d, %d, %d), want (5, 3, 2)", total, longest, current)
	}

	// a gap before today breaks the current run
	total, longest, current = RecountFromLogs(logs, day(2024, 1, 9))
	if total != 5 || longest != 3 || current != 0 {
		t.Fatalf("recount with gap = (%d, %d, %d), want (5, 3, 0)", total, longest, current)
	}

	// today logged completed extends the current run through today
	logs = append(logs, completedOn(day(2024, 1, 7)))
	total, longest, current = RecountFromLogs(logs, day(2024, 1, 7))
	if total != 6 || longest != 3 || current != 3 {
		t.Fatalf("recount incl today = (%d, %d, %d), want (6, 3, 3)", total, longest, current)
	}

	total, longest, current = RecountFromLogs(nil, day(2024, 1, 7))
	if total != 0 || longest != 0 || current != 0 {
		t.Fatalf("empty recount = (%d, %d, %d), want zeros", total, longest, current)
	}
}
