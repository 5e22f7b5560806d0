package models

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dayflowhq/dayflow_backend/utils"
)

func TestBuildAndParseWorkbookRoundTrip(t *testing.T) {
	headers := []string{"Name", "Amount", "Date"}
	rows := RowSlice{
		{"Name": "Banana", "Amount": "12.50", "Date": "2024-01-02"},
		{"Name": "Cherry", "Amount": "3", "Date": "2024-01-03"},
	}

	data, err := BuildWorkbook("Inventory", headers, rows)
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}

	parsed, err := ParseWorkbook(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseWorkbook: %v", err)
	}
	if len(parsed.SheetNames) != 1 || parsed.SheetNames[0] != "Inventory" {
		t.Fatalf("sheet names = %v, want [Inventory]", parsed.SheetNames)
	}

	sheet := parsed.Sheets["Inventory"]
	if sheet == nil {
		t.Fatal("sheet Inventory missing from parse result")
	}
	if sheet.RowCount != 2 || sheet.ColumnCount != 3 {
		t.Fatalf("counts = (%d, %d), want (2, 3)", sheet.RowCount, sheet.ColumnCount)
	}
	for i, want := range rows {
		for _, h := range headers {
			if got := sheet.Rows[i][h]; got != want[h] {
				t.Fatalf("row %d col %q = %v, want %v", i, h, got, want[h])
			}
		}
	}
}

func TestParseCSV(t *testing.T) {
	data := "name,amount\napple,3\nbanana,5\n"

	parsed, err := ParseCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(parsed.SheetNames) != 1 || parsed.SheetNames[0] != "Sheet1" {
		t.Fatalf("sheet names = %v, want [Sheet1]", parsed.SheetNames)
	}

	sheet := parsed.Sheets["Sheet1"]
	if sheet.RowCount != 2 || sheet.ColumnCount != 2 {
		t.Fatalf("counts = (%d, %d), want (2, 2)", sheet.RowCount, sheet.ColumnCount)
	}
	if sheet.Rows[0]["name"] != "apple" || sheet.Rows[1]["amount"] != "5" {
		t.Fatalf("rows = %v", sheet.Rows)
	}
	if sheet.ColumnTypes["amount"] != ColumnTypeNumber {
		t.Fatalf("amount type = %q, want number", sheet.ColumnTypes["amount"])
	}
	if sheet.ColumnTypes["name"] != ColumnTypeString {
		t.Fatalf("name type = %q, want string", sheet.ColumnTypes["name"])
	}
}

func TestParseCSVRaggedRows(t *testing.T) {
	parsed, err := ParseCSV(strings.NewReader("a,b,c\n1,2\n"))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	sheet := parsed.Sheets["Sheet1"]
	if got := sheet.Rows[0]["c"]; got != "" {
		t.Fatalf("missing cell = %v, want empty string", got)
	}
}

func TestParseCSVRejectsMalformedQuotes(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("a,b\n\"open,2\n")); err == nil {
		t.Fatal("expected parse error for unterminated quote")
	}
}

func TestUploadExtensionAllowlist(t *testing.T) {
	// only formats the codecs can actually decode
	if !allowedUploadExtensions[".xlsx"] || !allowedUploadExtensions[".csv"] {
		t.Fatalf("allowlist = %v, must accept .xlsx and .csv", allowedUploadExtensions)
	}
	if allowedUploadExtensions[".xls"] {
		t.Fatal("legacy .xls must not be allowlisted, the codec cannot read it")
	}
}

func TestParseWorkbookRejectsGarbage(t *testing.T) {
	_, err := ParseWorkbook(bytes.NewReader([]byte("not a workbook")))
	if err == nil {
		t.Fatal("expected parse error for garbage bytes")
	}
}

func TestParseSheetRowsHeaderOnly(t *testing.T) {
	sheet := parseSheetRows([][]string{{"A", "B"}})
	if len(sheet.Rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(sheet.Rows))
	}
	if len(sheet.Headers) != 2 {
		t.Fatalf("headers = %v, want [A B]", sheet.Headers)
	}
	if sheet.ColumnTypes["A"] != ColumnTypeString {
		t.Fatalf("empty column type = %q, want string", sheet.ColumnTypes["A"])
	}
}

func TestParseSheetRowsPadsShortRows(t *testing.T) {
	sheet := parseSheetRows([][]string{
		{"A", "B", "C"},
		{"1", "2"},
	})
	if got := sheet.Rows[0]["C"]; got != "" {
		t.Fatalf("missing cell = %v, want empty string", got)
	}
}

func TestDetectColumnTypes(t *testing.T) {
	headers := []string{"num", "numWithGaps", "date", "mixed", "empty"}
	rows := [][]string{
		{"1", "10", "2024-01-01", "5", ""},
		{"2.5", "", "01/15/2024", "abc", ""},
		{"-3", "20", "Jan 2, 2024", "7", ""},
	}

	types := DetectColumnTypes(headers, rows)
	want := map[string]string{
		"num":         ColumnTypeNumber,
		"numWithGaps": ColumnTypeNumber,
		"date":        ColumnTypeDate,
		"mixed":       ColumnTypeString,
		"empty":       ColumnTypeString,
	}
	for col, wantType := range want {
		if types[col] != wantType {
			t.Fatalf("column %q type = %q, want %q", col, types[col], wantType)
		}
	}
}

func TestFilterRows(t *testing.T) {
	rows := RowSlice{
		{"fruit": "Banana", "qty": "3"},
		{"fruit": "Cherry", "qty": "9"},
		{"fruit": "apple BANANA mix", "qty": "1"},
	}

	got := FilterRows(rows, "ban")
	if len(got) != 2 {
		t.Fatalf("filtered rows = %d, want 2", len(got))
	}

	if got := FilterRows(rows, ""); len(got) != 3 {
		t.Fatalf("empty search rows = %d, want 3", len(got))
	}

	if got := FilterRows(rows, "zzz"); len(got) != 0 {
		t.Fatalf("no-match rows = %d, want 0", len(got))
	}
}

func TestSortRowsIsLexicographic(t *testing.T) {
	headers := []string{"v"}
	rows := RowSlice{{"v": "9"}, {"v": "10"}, {"v": "1"}}

	asc := SortRows(rows, headers, "v", "asc")
	// string comparison: "1" < "10" < "9"
	if asc[0]["v"] != "1" || asc[1]["v"] != "10" || asc[2]["v"] != "9" {
		t.Fatalf("asc order = %v", asc)
	}

	desc := SortRows(rows, headers, "v", "desc")
	if desc[0]["v"] != "9" || desc[2]["v"] != "1" {
		t.Fatalf("desc order = %v", desc)
	}

	// input must not be reordered
	if rows[0]["v"] != "9" {
		t.Fatalf("input mutated: %v", rows)
	}
}

func TestSortRowsUnknownColumnIsNoop(t *testing.T) {
	headers := []string{"a"}
	rows := RowSlice{{"a": "2"}, {"a": "1"}}
	got := SortRows(rows, headers, "missing", "asc")
	if got[0]["a"] != "2" {
		t.Fatalf("unknown sort column reordered rows: %v", got)
	}
}

func TestPaginateRows(t *testing.T) {
	rows := make(RowSlice, 25)
	for i := range rows {
		rows[i] = Row{"i": i}
	}

	page, p := PaginateRows(rows, 2, 10)
	if len(page) != 10 || page[0]["i"] != 10 || page[9]["i"] != 19 {
		t.Fatalf("page 2 window wrong: len=%d first=%v", len(page), page[0]["i"])
	}
	if p.Total != 25 || p.Pages != 3 || p.Page != 2 || p.Limit != 10 {
		t.Fatalf("pagination = %+v", p)
	}

	last, _ := PaginateRows(rows, 3, 10)
	if len(last) != 5 {
		t.Fatalf("last page len = %d, want 5", len(last))
	}

	beyond, _ := PaginateRows(rows, 9, 10)
	if len(beyond) != 0 {
		t.Fatalf("out-of-range page len = %d, want 0", len(beyond))
	}

	defaulted, p := PaginateRows(rows, 0, 0)
	if p.Page != 1 || p.Limit != DefaultPageLimit || len(defaulted) != 25 {
		t.Fatalf("defaulted pagination = %+v len=%d", p, len(defaulted))
	}
}

func TestApplyCellUpdate(t *testing.T) {
	rows := RowSlice{{"a": "1"}, {"a": "2"}}

	if err := applyCellUpdate(rows, 1, "a", "changed"); err != nil {
		t.Fatalf("applyCellUpdate: %v", err)
	}
	if rows[1]["a"] != "changed" {
		t.Fatalf("cell not updated: %v", rows[1])
	}

	if err := applyCellUpdate(rows, 2, "a", "x"); !utils.IsValidationError(err) {
		t.Fatalf("out-of-range error = %v, want validation error", err)
	}
	if err := applyCellUpdate(rows, -1, "a", "x"); !utils.IsValidationError(err) {
		t.Fatalf("negative index error = %v, want validation error", err)
	}
}

func TestCellString(t *testing.T) {
	if CellString(nil) != "" {
		t.Fatal("nil should stringify to empty")
	}
	if CellString("x") != "x" {
		t.Fatal("string passthrough broken")
	}
	if CellString(42) != "42" {
		t.Fatal("number stringification broken")
	}
}
