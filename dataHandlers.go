package main

import (
	"fmt"
	"net/http"

	"github.com/dayflowhq/dayflow_backend/models"
	"github.com/gin-gonic/gin"
)

func listSheetsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		fileId, ok := pathIntParam(c, "fileId")
		if !ok {
			return
		}

		sheets, err := models.ListSheets(c.Request.Context(), fileId)
		if err != nil {
			respondError(c, "dataHandlers.go", "listSheetsHandler", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "sheets": sheets})
	}
}

// readSheetPageHandler serves one page of a sheet: search filter first, then
// sort, then the page window.
func readSheetPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		fileId, ok := pathIntParam(c, "fileId")
		if !ok {
			return
		}

		input := &models.ReadSheetPageInput{
			Search:    c.Query("search"),
			SortBy:    c.Query("sortBy"),
			SortOrder: c.Query("sortOrder"),
			Page:      queryInt(c, "page", 1),
			Limit:     queryInt(c, "limit", models.DefaultPageLimit),
		}

		page, err := models.ReadSheetPage(c.Request.Context(), fileId, c.Param("sheetName"), input)
		if err != nil {
			respondError(c, "dataHandlers.go", "readSheetPageHandler", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": page})
	}
}

type updateCellRequest struct {
	RowIndex *int   `json:"rowIndex" binding:"required"`
	Column   string `json:"column" binding:"required"`
	Value    any    `json:"value"`
}

func updateCellHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		fileId, ok := pathIntParam(c, "fileId")
		if !ok {
			return
		}

		var req updateCellRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		row, err := models.UpdateCell(c.Request.Context(), fileId, c.Param("sheetName"), *req.RowIndex, req.Column, req.Value)
		if err != nil {
			respondError(c, "dataHandlers.go", "updateCellHandler", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "row": row})
	}
}

// exportSheetHandler streams the sheet back as a freshly built workbook.
func exportSheetHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "exportSheetHandler")
		defer span.End()

		fileId, ok := pathIntParam(c, "fileId")
		if !ok {
			return
		}
		sheetName := c.Param("sheetName")

		data, err := models.ExportSheet(ctx, fileId, sheetName)
		if err != nil {
			respondError(c, "dataHandlers.go", "exportSheetHandler", err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sheetName+".xlsx"))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	}
}
