package issue

import (
	"testing"
	"time"
)

func TestDueTime(t *testing.T) {
	tests := []struct {
		name     string
		dueDate  string
		wantZero bool
	}{
		{"valid date", "2026-03-15", false},
		{"empty date", "", true},
		{"malformed date", "15/03/2026", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iss := &Issue{Key: "PROJ-1", DueDate: tt.dueDate}
			got := iss.DueTime()
			if got.IsZero() != tt.wantZero {
				t.Errorf("DueTime().IsZero() = %v, want %v", got.IsZero(), tt.wantZero)
			}
		})
	}
}

func TestOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		dueDate string
		want    bool
	}{
		{"due yesterday", "2026-03-09", true},
		{"due today", "2026-03-10", false},
		{"due tomorrow", "2026-03-11", false},
		{"no due date", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iss := &Issue{Key: "PROJ-1", DueDate: tt.dueDate}
			if got := iss.Overdue(now); got != tt.want {
				t.Errorf("Overdue() = %v, want %v", got, tt.want)
			}
		})
	}
}
