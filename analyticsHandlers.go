package main

import (
	"net/http"

	"github.com/dayflowhq/dayflow_backend/models"
	"github.com/gin-gonic/gin"
)

func dashboardHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := models.GetDashboardStats(c.Request.Context())
		if err != nil {
			respondError(c, "analyticsHandlers.go", "dashboardHandler", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
	}
}

func chartDataHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		fileId, ok := pathIntParam(c, "fileId")
		if !ok {
			return
		}

		xColumn := c.Query("x")
		yColumn := c.Query("y")
		if xColumn == "" || yColumn == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "x and y columns are required"})
			return
		}

		points, err := models.GetChartData(c.Request.Context(), fileId, c.Param("sheetName"), xColumn, yColumn)
		if err != nil {
			respondError(c, "analyticsHandlers.go", "chartDataHandler", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "points": points})
	}
}
