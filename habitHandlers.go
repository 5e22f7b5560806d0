package main

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dayflowhq/dayflow_backend/models"
	"github.com/gin-gonic/gin"
)

func createHabitHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewHabit
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		habit, err := models.CreateHabit(c.Request.Context(), &input)
		if err != nil {
			respondError(c, "habitHandlers.go", "createHabitHandler", err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "habit": habit})
	}
}

func listHabitsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		habits, err := models.ListHabits(c.Request.Context())
		if err != nil {
			respondError(c, "habitHandlers.go", "listHabitsHandler", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "habits": habits})
	}
}

func updateHabitHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		habitId, ok := pathIntParam(c, "habitId")
		if !ok {
			return
		}

		var input models.NewHabit
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		habit, err := models.UpdateHabit(c.Request.Context(), habitId, &input)
		if err != nil {
			respondError(c, "habitHandlers.go", "updateHabitHandler", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "habit": habit})
	}
}

func deleteHabitHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		habitId, ok := pathIntParam(c, "habitId")
		if !ok {
			return
		}

		if err := models.DeleteHabit(c.Request.Context(), habitId); err != nil {
			respondError(c, "habitHandlers.go", "deleteHabitHandler", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

type toggleHabitRequest struct {
	Date string `json:"date"`
}

const dayLayout = "2006-01-02"

// resolveToggleDate parses the client-sent day; an omitted date means today.
func resolveToggleDate(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now, nil
	}
	if d, err := time.Parse(dayLayout, raw); err == nil {
		return d, nil
	}
	if d, err := time.Parse(time.RFC3339, raw); err == nil {
		return d, nil
	}
	return time.Time{}, errors.New("invalid date")
}

// toggleHabitHandler advances one (habit, day) through the completion cycle.
// The day comes from the client (default: today); "today" for the future-date
// check is server time at the moment of the request.
func toggleHabitHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		habitId, ok := pathIntParam(c, "habitId")
		if !ok {
			return
		}

		// an empty body is fine, it means "toggle today"
		var req toggleHabitRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			respondBindError(c, err)
			return
		}

		now := time.Now()
		date, err := resolveToggleDate(req.Date, now)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid date"})
			return
		}

		result, err := models.ToggleHabit(c.Request.Context(), habitId, date, now)
		if err != nil {
			respondError(c, "habitHandlers.go", "toggleHabitHandler", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
	}
}

// habitStatusRangeHandler returns the effective per-day statuses over a date
// range, defaulting to the last 30 days.
func habitStatusRangeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		habitId, ok := pathIntParam(c, "habitId")
		if !ok {
			return
		}

		now := time.Now()
		start := now.AddDate(0, 0, -29)
		end := now
		var err error
		if v := c.Query("start"); v != "" {
			if start, err = time.Parse(dayLayout, v); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid start date"})
				return
			}
		}
		if v := c.Query("end"); v != "" {
			if end, err = time.Parse(dayLayout, v); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid end date"})
				return
			}
		}

		days, err := models.HabitStatusRange(c.Request.Context(), habitId, start, end, now)
		if err != nil {
			respondError(c, "habitHandlers.go", "habitStatusRangeHandler", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "days": days})
	}
}

func recountHabitHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		habitId, ok := pathIntParam(c, "habitId")
		if !ok {
			return
		}

		habit, err := models.RecountHabitStats(c.Request.Context(), habitId, time.Now())
		if err != nil {
			respondError(c, "habitHandlers.go", "recountHabitHandler", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "habit": habit})
	}
}

func listHabitLogsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var start, end *time.Time
		if v := c.Query("start"); v != "" {
			t, err := time.Parse(dayLayout, v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid start date"})
				return
			}
			start = &t
		}
		if v := c.Query("end"); v != "" {
			t, err := time.Parse(dayLayout, v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid end date"})
				return
			}
			end = &t
		}

		logs, err := models.ListHabitLogs(c.Request.Context(), start, end)
		if err != nil {
			respondError(c, "habitHandlers.go", "listHabitLogsHandler", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "logs": logs})
	}
}
