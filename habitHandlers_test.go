package main

import (
	"testing"
	"time"
)

func TestResolveToggleDate(t *testing.T) {
	now := time.Date(2024, 5, 20, 15, 0, 0, 0, time.UTC)

	// omitted date means "toggle today"
	got, err := resolveToggleDate("", now)
	if err != nil || !got.Equal(now) {
		t.Fatalf("empty date = (%v, %v), want now", got, err)
	}
	got, err = resolveToggleDate("   ", now)
	if err != nil || !got.Equal(now) {
		t.Fatalf("blank date = (%v, %v), want now", got, err)
	}

	got, err = resolveToggleDate("2024-05-18", now)
	if err != nil {
		t.Fatalf("day form rejected: %v", err)
	}
	if got.Year() != 2024 || got.Month() != time.May || got.Day() != 18 {
		t.Fatalf("day form parsed as %v", got)
	}

	got, err = resolveToggleDate("2024-05-18T09:30:00Z", now)
	if err != nil {
		t.Fatalf("RFC3339 form rejected: %v", err)
	}
	if got.Day() != 18 {
		t.Fatalf("RFC3339 form parsed as %v", got)
	}

	if _, err := resolveToggleDate("18/05/2024x", now); err == nil {
		t.Fatal("malformed date accepted")
	}
}
