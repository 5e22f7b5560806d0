package utils

import (
	"errors"
	"testing"
	"time"
)

func TestDayOf(t *testing.T) {
	// local-zone timestamps collapse onto their UTC day
	loc := time.FixedZone("UTC+7", 7*3600)
	ts := time.Date(2024, 3, 15, 2, 30, 0, 0, loc) // 2024-03-14 19:30 UTC

	got := DayOf(ts)
	want := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DayOf = %v, want %v", got, want)
	}

	if !DayOf(got).Equal(got) {
		t.Fatal("DayOf must be idempotent")
	}
}

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"12.5", true},
		{" -3 ", true},
		{"1e3", true},
		{"", false},
		{"abc", false},
		{"2024-01-01", false},
	}
	for _, c := range cases {
		_, err := ParseDecimal(c.in)
		if (err == nil) != c.valid {
			t.Fatalf("ParseDecimal(%q) err = %v, want valid=%v", c.in, err, c.valid)
		}
	}
}

func TestValidationErrorDetection(t *testing.T) {
	err := NewValidationError("bad input")
	if !IsValidationError(err) {
		t.Fatal("NewValidationError not detected")
	}
	if IsValidationError(errors.New("plain")) {
		t.Fatal("plain error misdetected as validation error")
	}
	if IsValidationError(ErrorRecordNotFound) {
		t.Fatal("not-found sentinel misdetected as validation error")
	}
}

func TestUniqueSlice(t *testing.T) {
	got := UniqueSlice([]string{"a", "b", "a", "c", "b"})
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("UniqueSlice = %v", got)
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	if err := ValidatePhoneNumber("+14155552671", "US"); err != nil {
		t.Fatalf("valid number rejected: %v", err)
	}
	if err := ValidatePhoneNumber("12", "US"); err == nil {
		t.Fatal("invalid number accepted")
	}
}
