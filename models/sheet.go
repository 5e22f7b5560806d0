package models

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dayflowhq/dayflow_backend/config"
	"github.com/dayflowhq/dayflow_backend/utils"
	"github.com/google/uuid"
)

// SheetTable holds one sheet's parsed contents. Rows are header-keyed records
// stored as a JSON document; ColumnTypes is the ingest-time inference
// snapshot and is never updated by cell edits.
type SheetTable struct {
	ID           int         `gorm:"primary_key" json:"id"`
	FileId       int         `gorm:"index:idx_file_sheet;not null" json:"file_id"`
	UserId       int         `gorm:"index;not null" json:"user_id"`
	SheetName    string      `gorm:"index:idx_file_sheet;size:255;not null" json:"sheet_name"`
	Headers      StringSlice `gorm:"type:json" json:"headers"`
	Rows         RowSlice    `gorm:"type:longtext" json:"rows"`
	ColumnTypes  StringMap   `gorm:"type:json" json:"column_types"`
	RowCount     int         `gorm:"default:0" json:"row_count"`
	ColumnCount  int         `gorm:"default:0" json:"column_count"`
	LastModified time.Time   `json:"last_modified"`
	ModifiedBy   int         `json:"modified_by"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

type SheetSummary struct {
	SheetName   string    `json:"sheetName"`
	Headers     []string  `json:"headers"`
	RowCount    int       `json:"rowCount"`
	ColumnCount int       `json:"columnCount"`
	ColumnTypes StringMap `json:"columnTypes"`
}

// Legacy .xls is not accepted: the workbook codec reads the xlsx family only.
var allowedUploadExtensions = map[string]bool{
	".xlsx": true,
	".csv":  true,
}

const MaxUploadSizeBytes int64 = 10 * 1024 * 1024

// IngestUpload stores the uploaded workbook bytes, parses every sheet into a
// SheetTable and creates the owning SpreadsheetFile record with its
// aggregates. A parse failure removes the stored bytes before surfacing so no
// file record points at unreadable storage.
func IngestUpload(ctx context.Context, originalName string, mimeType string, data []byte) (*SpreadsheetFile, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId == 0 {
		return nil, errors.New("user id is required")
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedUploadExtensions[ext] {
		return nil, utils.NewValidationError("unsupported file type: only .xlsx and .csv are allowed")
	}
	if int64(len(data)) > MaxUploadSizeBytes {
		return nil, utils.NewValidationError("file size exceeds 10MB limit")
	}

	release, err := utils.OwnerLock(ctx, fmt.Sprintf("ingest:%d", userId), "sheet.go", "IngestUpload")
	if err != nil {
		return nil, err
	}
	defer release()

	storedName := uuid.New().String() + ext
	objectKey := fmt.Sprintf("%d/files/%s", userId, storedName)
	if err := utils.SaveUploadBytes(ctx, objectKey, data, mimeType); err != nil {
		return nil, err
	}

	var parsed *ParsedWorkbook
	if ext == ".csv" {
		parsed, err = ParseCSV(bytes.NewReader(data))
	} else {
		parsed, err = ParseWorkbook(bytes.NewReader(data))
	}
	if err != nil {
		// do not leave unreadable bytes behind
		if cleanupErr := utils.DeleteUpload(ctx, objectKey); cleanupErr != nil {
			config.LogError(config.GetLogger(), "sheet.go", "IngestUpload", "cleanup after parse failure", objectKey, cleanupErr)
		}
		return nil, err
	}

	totalRows := 0
	totalColumns := 0
	for _, sheet := range parsed.Sheets {
		totalRows += sheet.RowCount
		if sheet.ColumnCount > totalColumns {
			totalColumns = sheet.ColumnCount
		}
	}

	db := config.GetDB()
	file := SpreadsheetFile{
		UserId:       userId,
		Filename:     storedName,
		OriginalName: originalName,
		ObjectKey:    objectKey,
		FileSize:     int64(len(data)),
		MimeType:     mimeType,
		SheetNames:   parsed.SheetNames,
		TotalRows:    totalRows,
		TotalColumns: totalColumns,
		IsActive:     utils.NewTrue(),
	}
	if err := db.WithContext(ctx).Create(&file).Error; err != nil {
		if cleanupErr := utils.DeleteUpload(ctx, objectKey); cleanupErr != nil {
			config.LogError(config.GetLogger(), "sheet.go", "IngestUpload", "cleanup after create failure", objectKey, cleanupErr)
		}
		return nil, err
	}

	// one SheetTable per sheet; no cross-sheet transaction
	for _, sheetName := range parsed.SheetNames {
		sheet := parsed.Sheets[sheetName]
		table := SheetTable{
			FileId:       file.ID,
			UserId:       userId,
			SheetName:    sheetName,
			Headers:      sheet.Headers,
			Rows:         sheet.Rows,
			ColumnTypes:  sheet.ColumnTypes,
			RowCount:     sheet.RowCount,
			ColumnCount:  sheet.ColumnCount,
			LastModified: time.Now(),
			ModifiedBy:   userId,
		}
		if err := db.WithContext(ctx).Create(&table).Error; err != nil {
			return nil, err
		}
	}

	RecordAudit(ctx, AuditActionUpload, AuditResourceFile, file.ID, map[string]any{
		"filename": originalName,
		"size":     len(data),
		"sheets":   len(parsed.SheetNames),
	})

	return &file, nil
}

func getSheetTable(ctx context.Context, fileId int, sheetName string) (*SheetTable, error) {
	// ownership check rides on the file lookup
	if _, err := GetFile(ctx, fileId); err != nil {
		return nil, err
	}

	db := config.GetDB()
	var table SheetTable
	err := db.WithContext(ctx).
		Where("file_id = ? AND sheet_name = ?", fileId, sheetName).
		First(&table).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &table, nil
}

// ListSheets returns per-sheet summaries for a file: names, headers, counts
// and the inferred type map. No row data.
func ListSheets(ctx context.Context, fileId int) ([]*SheetSummary, error) {
	if _, err := GetFile(ctx, fileId); err != nil {
		return nil, err
	}

	db := config.GetDB()
	var tables []*SheetTable
	if err := db.WithContext(ctx).
		Select("sheet_name", "headers", "row_count", "column_count", "column_types").
		Where("file_id = ?", fileId).
		Find(&tables).Error; err != nil {
		return nil, err
	}

	summaries := make([]*SheetSummary, 0, len(tables))
	for _, t := range tables {
		summaries = append(summaries, &SheetSummary{
			SheetName:   t.SheetName,
			Headers:     t.Headers,
			RowCount:    t.RowCount,
			ColumnCount: t.ColumnCount,
			ColumnTypes: t.ColumnTypes,
		})
	}
	return summaries, nil
}

type ReadSheetPageInput struct {
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

type SheetPage struct {
	SheetName   string      `json:"sheetName"`
	Headers     []string    `json:"headers"`
	ColumnTypes StringMap   `json:"columnTypes"`
	Rows        RowSlice    `json:"rows"`
	Pagination  *Pagination `json:"pagination"`
}

// ReadSheetPage filters, sorts and pages the full sheet, in that order.
func ReadSheetPage(ctx context.Context, fileId int, sheetName string, input *ReadSheetPageInput) (*SheetPage, error) {
	table, err := getSheetTable(ctx, fileId, sheetName)
	if err != nil {
		return nil, err
	}

	rows := FilterRows(table.Rows, input.Search)
	rows = SortRows(rows, table.Headers, input.SortBy, input.SortOrder)
	pageRows, pagination := PaginateRows(rows, input.Page, input.Limit)

	RecordAudit(ctx, AuditActionView, AuditResourceData, fileId, map[string]any{
		"sheetName": sheetName,
	})

	return &SheetPage{
		SheetName:   sheetName,
		Headers:     table.Headers,
		ColumnTypes: table.ColumnTypes,
		Rows:        pageRows,
		Pagination:  pagination,
	}, nil
}

// UpdateCell sets one cell addressed by its zero-based index into the full,
// unfiltered row sequence. The value is stored as sent; the ingest-time
// column type snapshot is not consulted or refreshed.
func UpdateCell(ctx context.Context, fileId int, sheetName string, rowIndex int, column string, value any) (Row, error) {
	userId, _ := utils.GetUserIdFromContext(ctx)

	table, err := getSheetTable(ctx, fileId, sheetName)
	if err != nil {
		return nil, err
	}

	if !containsString(table.Headers, column) {
		return nil, utils.NewValidationError("unknown column")
	}
	if err := applyCellUpdate(table.Rows, rowIndex, column, value); err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(table).Updates(map[string]interface{}{
		"rows":          table.Rows,
		"last_modified": time.Now(),
		"modified_by":   userId,
	}).Error; err != nil {
		return nil, err
	}

	RecordAudit(ctx, AuditActionUpdate, AuditResourceData, fileId, map[string]any{
		"sheetName": sheetName,
		"rowIndex":  rowIndex,
		"column":    column,
	})

	return table.Rows[rowIndex], nil
}

// ExportSheet serializes the sheet's current headers and rows back to
// workbook bytes.
func ExportSheet(ctx context.Context, fileId int, sheetName string) ([]byte, error) {
	table, err := getSheetTable(ctx, fileId, sheetName)
	if err != nil {
		return nil, err
	}

	data, err := BuildWorkbook(sheetName, table.Headers, table.Rows)
	if err != nil {
		return nil, err
	}

	RecordAudit(ctx, AuditActionExport, AuditResourceData, fileId, map[string]any{
		"sheetName": sheetName,
	})

	return data, nil
}
