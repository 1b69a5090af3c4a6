package service

import (
	"testing"
	"time"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	tests := []struct {
		name                   string
		s1, e1, s2, e2         time.Time
		want                   bool
	}{
		{"identical intervals", at(0), at(2), at(0), at(2), true},
		{"partial overlap at end", at(0), at(2), at(1), at(3), true},
		{"partial overlap at start", at(1), at(3), at(0), at(2), true},
		{"contained interval", at(0), at(4), at(1), at(2), true},
		{"containing interval", at(1), at(2), at(0), at(4), true},
		{"back to back before", at(0), at(2), at(2), at(4), false},
		{"back to back after", at(2), at(4), at(0), at(2), false},
		{"disjoint", at(0), at(1), at(3), at(4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlaps(tt.s1, tt.e1, tt.s2, tt.e2); got != tt.want {
				t.Errorf("overlaps(%v, %v, %v, %v) = %v, want %v", tt.s1, tt.e1, tt.s2, tt.e2, got, tt.want)
			}
		})
	}
}
