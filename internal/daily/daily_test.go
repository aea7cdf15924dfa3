package daily

import (
	"testing"
	"time"
)

func TestDateKeyIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	// 2026-03-02 05:00 at +10 is still 2026-03-01 in UTC.
	ts := time.Date(2026, 3, 2, 5, 0, 0, 0, loc)
	if got := DateKey(ts); got != "2026-03-01" {
		t.Fatalf("DateKey = %s, want 2026-03-01", got)
	}
}

func TestWordIndexStablePerDay(t *testing.T) {
	morning := time.Date(2026, 10, 18, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 10, 18, 23, 0, 0, 0, time.UTC)
	a := WordIndex(morning, "salt", "English", 100)
	b := WordIndex(evening, "salt", "English", 100)
	if a != b {
		t.Fatalf("same day gave %d and %d", a, b)
	}
}

func TestWordIndexInRange(t *testing.T) {
	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 365; i++ {
		for _, n := range []int{1, 7, 97} {
			idx := WordIndex(day.AddDate(0, 0, i), "s", "German", n)
			if idx < 0 || idx >= n {
				t.Fatalf("index %d out of range [0,%d)", idx, n)
			}
		}
	}
	if WordIndex(day, "s", "German", 0) != 0 {
		t.Error("empty list must give index 0")
	}
}

func TestWordIndexVariesAcrossDays(t *testing.T) {
	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seen := map[int]bool{}
	for i := 0; i < 30; i++ {
		seen[WordIndex(day.AddDate(0, 0, i), "salt", "English", 1000)] = true
	}
	if len(seen) < 10 {
		t.Fatalf("only %d distinct indexes over 30 days", len(seen))
	}
}
