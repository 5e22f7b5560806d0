package models

import (
	"context"
	"errors"

	"github.com/dayflowhq/dayflow_backend/config"
	"github.com/dayflowhq/dayflow_backend/utils"
	"github.com/shopspring/decimal"
)

type DashboardStats struct {
	TotalFiles  int64              `json:"totalFiles"`
	TotalRows   int64              `json:"totalRows"`
	TotalSheets int64              `json:"totalSheets"`
	RecentFiles []*SpreadsheetFile `json:"recentFiles"`
}

// GetDashboardStats aggregates the user's active files: counts plus the five
// most recent uploads.
func GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId == 0 {
		return nil, errors.New("user id is required")
	}

	db := config.GetDB()
	stats := &DashboardStats{}

	if err := db.WithContext(ctx).Model(&SpreadsheetFile{}).
		Where("user_id = ? AND is_active = ?", userId, true).
		Count(&stats.TotalFiles).Error; err != nil {
		return nil, err
	}

	var totalRows struct{ Total int64 }
	if err := db.WithContext(ctx).Model(&SpreadsheetFile{}).
		Select("COALESCE(SUM(total_rows), 0) AS total").
		Where("user_id = ? AND is_active = ?", userId, true).
		Scan(&totalRows).Error; err != nil {
		return nil, err
	}
	stats.TotalRows = totalRows.Total

	if err := db.WithContext(ctx).Model(&SheetTable{}).
		Joins("JOIN spreadsheet_files ON spreadsheet_files.id = sheet_tables.file_id").
		Where("spreadsheet_files.user_id = ? AND spreadsheet_files.is_active = ?", userId, true).
		Count(&stats.TotalSheets).Error; err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userId, true).
		Order("created_at DESC").
		Limit(5).
		Find(&stats.RecentFiles).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

type ChartPoint struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// GetChartData groups a sheet's rows by the X column and sums the Y column
// (unparseable Y cells count as zero), preserving first-seen label order.
// Column types are advisory only, so the Y column is not required to be
// inferred numeric.
func GetChartData(ctx context.Context, fileId int, sheetName string, xColumn string, yColumn string) ([]*ChartPoint, error) {
	table, err := getSheetTable(ctx, fileId, sheetName)
	if err != nil {
		return nil, err
	}

	if !containsString(table.Headers, xColumn) || !containsString(table.Headers, yColumn) {
		return nil, utils.NewValidationError("unknown chart column")
	}

	sums := make(map[string]decimal.Decimal)
	var order []string
	for _, row := range table.Rows {
		label := CellString(row[xColumn])
		value, err := utils.ParseDecimal(CellString(row[yColumn]))
		if err != nil {
			value = decimal.Zero
		}
		if _, seen := sums[label]; !seen {
			order = append(order, label)
		}
		sums[label] = sums[label].Add(value)
	}

	points := make([]*ChartPoint, 0, len(order))
	for _, label := range order {
		points = append(points, &ChartPoint{Label: label, Value: sums[label]})
	}
	return points, nil
}
