package models

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dayflowhq/dayflow_backend/utils"
	"github.com/xuri/excelize/v2"
)

// In-memory form of one parsed sheet, before persistence.
type ParsedSheet struct {
	Headers     []string
	Rows        RowSlice
	ColumnTypes StringMap
	RowCount    int
	ColumnCount int
}

type ParsedWorkbook struct {
	SheetNames []string
	Sheets     map[string]*ParsedSheet
}

// ErrParseFailure wraps any decode error on ingest so the boundary can map
// corrupt uploads to a caller error instead of a server fault.
var ErrParseFailure = errors.New("failed to parse workbook")

// ParseWorkbook decodes workbook bytes into header lists and header-keyed row
// records, one entry per sheet. The first row of each sheet is the header row
// (missing header cells become ""); missing data cells become "". Cell values
// come back as formatted strings, so numbers and dates are carried in their
// display form.
func ParseWorkbook(r io.Reader) (*ParsedWorkbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	defer f.Close()

	parsed := &ParsedWorkbook{
		SheetNames: f.GetSheetList(),
		Sheets:     make(map[string]*ParsedSheet),
	}

	for _, sheetName := range parsed.SheetNames {
		raw, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("%w: unable to read sheet %q: %v", ErrParseFailure, sheetName, err)
		}
		parsed.Sheets[sheetName] = parseSheetRows(raw)
	}

	return parsed, nil
}

// CSV files carry a single unnamed sheet; excelize uses the same default.
const csvSheetName = "Sheet1"

// ParseCSV decodes CSV bytes into the same single-sheet form ParseWorkbook
// produces for workbooks. Ragged rows are allowed; short rows pad with "".
func ParseCSV(r io.Reader) (*ParsedWorkbook, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	raw, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}

	return &ParsedWorkbook{
		SheetNames: []string{csvSheetName},
		Sheets: map[string]*ParsedSheet{
			csvSheetName: parseSheetRows(raw),
		},
	}, nil
}

func parseSheetRows(raw [][]string) *ParsedSheet {
	if len(raw) == 0 {
		return &ParsedSheet{
			Headers:     []string{},
			Rows:        RowSlice{},
			ColumnTypes: StringMap{},
		}
	}

	headers := make([]string, len(raw[0]))
	copy(headers, raw[0])

	dataRows := raw[1:]
	rows := make(RowSlice, 0, len(dataRows))
	for _, rawRow := range dataRows {
		row := Row{}
		for i, header := range headers {
			value := ""
			if i < len(rawRow) {
				value = rawRow[i]
			}
			// duplicate headers silently overwrite earlier columns
			row[header] = value
		}
		rows = append(rows, row)
	}

	return &ParsedSheet{
		Headers:     headers,
		Rows:        rows,
		ColumnTypes: DetectColumnTypes(headers, dataRows),
		RowCount:    len(rows),
		ColumnCount: len(headers),
	}
}

// DetectColumnTypes infers an advisory type per column from the raw data rows:
// all non-empty values numeric -> number, else all parseable dates -> date,
// else string. An all-empty column is a string column. Computed once at
// ingest; cell updates never re-infer.
func DetectColumnTypes(headers []string, rows [][]string) StringMap {
	types := StringMap{}

	for colIndex, header := range headers {
		var values []string
		for _, row := range rows {
			if colIndex < len(row) && row[colIndex] != "" {
				values = append(values, row[colIndex])
			}
		}

		if len(values) == 0 {
			types[header] = ColumnTypeString
			continue
		}

		allNumbers := true
		for _, v := range values {
			if _, err := utils.ParseDecimal(v); err != nil {
				allNumbers = false
				break
			}
		}
		if allNumbers {
			types[header] = ColumnTypeNumber
			continue
		}

		allDates := true
		for _, v := range values {
			if !parsesAsDate(v) {
				allDates = false
				break
			}
		}
		if allDates {
			types[header] = ColumnTypeDate
			continue
		}

		types[header] = ColumnTypeString
	}

	return types
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

func parsesAsDate(value string) bool {
	v := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

// CellString is the canonical text form of a cell value, used for search,
// sorting and export.
func CellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// FilterRows keeps rows where any column value's text form contains the
// search term, case-insensitively. An empty term keeps everything.
func FilterRows(rows RowSlice, search string) RowSlice {
	if search == "" {
		return rows
	}
	searchLower := strings.ToLower(search)

	filtered := make(RowSlice, 0, len(rows))
	for _, row := range rows {
		for _, v := range row {
			if strings.Contains(strings.ToLower(CellString(v)), searchLower) {
				filtered = append(filtered, row)
				break
			}
		}
	}
	return filtered
}

// SortRows orders rows by the stringified value of sortBy, lexicographically,
// keeping ties stable. A sortBy not present in headers is a no-op. The input
// slice is not modified.
func SortRows(rows RowSlice, headers []string, sortBy string, sortOrder string) RowSlice {
	if sortBy == "" || !containsString(headers, sortBy) {
		return rows
	}

	sorted := make(RowSlice, len(rows))
	copy(sorted, rows)

	desc := sortOrder == "desc"
	sort.SliceStable(sorted, func(i, j int) bool {
		a := CellString(sorted[i][sortBy])
		b := CellString(sorted[j][sortBy])
		if desc {
			return b < a
		}
		return a < b
	})
	return sorted
}

// PaginateRows slices the page window out of the already filtered/sorted rows.
func PaginateRows(rows RowSlice, page int, limit int) (RowSlice, *Pagination) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}

	total := len(rows)
	pages := (total + limit - 1) / limit

	skip := (page - 1) * limit
	if skip > total {
		skip = total
	}
	end := skip + limit
	if end > total {
		end = total
	}

	return rows[skip:end], &Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}

// applyCellUpdate sets rows[rowIndex][header] = value. rowIndex addresses the
// full, unfiltered row sequence; out-of-range indices fail without mutating.
func applyCellUpdate(rows RowSlice, rowIndex int, header string, value any) error {
	if rowIndex < 0 || rowIndex >= len(rows) {
		return utils.NewValidationError("invalid row index")
	}
	rows[rowIndex][header] = value
	return nil
}

// BuildWorkbook serializes headers + rows back to workbook bytes: first row
// is the header list, then each row's header-ordered values (missing -> "").
// Exporting right after ingest reproduces the ingested strings exactly.
func BuildWorkbook(sheetName string, headers []string, rows RowSlice) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	if sheetName == "" {
		sheetName = defaultSheet
	}
	if sheetName != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
			return nil, err
		}
	}

	headerCells := make([]interface{}, len(headers))
	for i, h := range headers {
		headerCells[i] = h
	}
	if err := setSheetRow(f, sheetName, 1, headerCells); err != nil {
		return nil, err
	}

	for rowIdx, row := range rows {
		cells := make([]interface{}, len(headers))
		for i, header := range headers {
			cells[i] = CellString(row[header])
		}
		if err := setSheetRow(f, sheetName, rowIdx+2, cells); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setSheetRow(f *excelize.File, sheetName string, rowNo int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheetName, cell, &cells)
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
