package model

import (
	"testing"
	"time"
)

func TestMonthStart(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{
			time.Date(2026, 5, 15, 13, 45, 12, 0, time.UTC),
			time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			// Local times convert to UTC before truncation.
			time.Date(2026, 6, 1, 1, 0, 0, 0, time.FixedZone("east", 2*3600)),
			time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range cases {
		if got := MonthStart(tc.in); !got.Equal(tc.want) {
			t.Errorf("MonthStart(%v): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestNextMonthStart(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{
			time.Date(2026, 5, 15, 13, 45, 12, 0, time.UTC),
			time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC),
			time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range cases {
		if got := NextMonthStart(tc.in); !got.Equal(tc.want) {
			t.Errorf("NextMonthStart(%v): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}
