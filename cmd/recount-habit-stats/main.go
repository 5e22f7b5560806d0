// recount-habit-stats recomputes every habit's streak counters from its log
// history. The API maintains the counters incrementally on toggle; run this
// after any out-of-band edit to habit_logs (support fixes, imports) to repair
// drift.
//
// Usage (from backend directory):
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/recount-habit-stats
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dayflowhq/dayflow_backend/config"
	"github.com/dayflowhq/dayflow_backend/models"
	"github.com/dayflowhq/dayflow_backend/utils"
)

func main() {
	habitID := flag.Int("habit-id", 0, "Optional: recount only one habit. If 0, recounts every habit.")
	userID := flag.Int("user-id", 0, "Optional: restrict to one user's habits.")
	dryRun := flag.Bool("dry-run", false, "Print the recomputed counters without persisting them.")
	flag.Parse()

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	query := db.WithContext(ctx).Model(&models.Habit{})
	if *habitID > 0 {
		query = query.Where("id = ?", *habitID)
	}
	if *userID > 0 {
		query = query.Where("user_id = ?", *userID)
	}

	var habits []*models.Habit
	if err := query.Find(&habits).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to list habits: %v\n", err)
		os.Exit(1)
	}
	if len(habits) == 0 {
		fmt.Fprintln(os.Stderr, "no habits found to recount")
		return
	}

	now := time.Now()
	var drifted int
	for _, h := range habits {
		// ownership checks in the model layer expect the owner in context
		hctx := utils.SetUserIdInContext(ctx, h.UserId)

		before := fmt.Sprintf("total=%d longest=%d current=%d", h.TotalCompletions, h.LongestStreak, h.CurrentStreak)

		if *dryRun {
			var logs []*models.HabitLog
			if err := db.WithContext(hctx).Where("habit_id = ?", h.ID).Find(&logs).Error; err != nil {
				fmt.Fprintf(os.Stderr, "habit %d: failed to list logs: %v\n", h.ID, err)
				continue
			}
			total, longest, current := models.RecountFromLogs(logs, now)
			if total != h.TotalCompletions || longest != h.LongestStreak || current != h.CurrentStreak {
				drifted++
				fmt.Printf("habit %d %q: %s -> total=%d longest=%d current=%d (dry-run)\n",
					h.ID, h.Title, before, total, longest, current)
			}
			continue
		}

		updated, err := models.RecountHabitStats(hctx, h.ID, now)
		if err != nil {
			fmt.Fprintf(os.Stderr, "habit %d: recount failed: %v\n", h.ID, err)
			continue
		}
		if updated.TotalCompletions != h.TotalCompletions ||
			updated.LongestStreak != h.LongestStreak ||
			updated.CurrentStreak != h.CurrentStreak {
			drifted++
			fmt.Printf("habit %d %q: %s -> total=%d longest=%d current=%d\n",
				h.ID, h.Title, before, updated.TotalCompletions, updated.LongestStreak, updated.CurrentStreak)
		}
	}

	fmt.Printf("Recounted %d habits, %d had drifted counters\n", len(habits), drifted)
}
