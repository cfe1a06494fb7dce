package model

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestApplyResultRollingAverages(t *testing.T) {
	t.Parallel()

	var u User
	u.ApplyResult(60, 90, time.Minute, day("2026-03-01"))
	u.ApplyResult(80, 100, time.Minute, day("2026-03-01"))

	if u.TestsCompleted != 2 {
		t.Errorf("tests = %d, want 2", u.TestsCompleted)
	}
	if u.AvgWPM != 70 {
		t.Errorf("avg wpm = %d, want 70", u.AvgWPM)
	}
	if u.AvgAccuracy != 95 {
		t.Errorf("avg accuracy = %d, want 95", u.AvgAccuracy)
	}
	if u.BestWPM != 80 {
		t.Errorf("best wpm = %d, want 80", u.BestWPM)
	}
	if u.TotalTime != 2*time.Minute {
		t.Errorf("total time = %s, want 2m", u.TotalTime)
	}
}

func TestBestWPMNeverRegresses(t *testing.T) {
	t.Parallel()

	var u User
	u.ApplyResult(90, 95, time.Minute, day("2026-03-01"))
	u.ApplyResult(40, 99, time.Minute, day("2026-03-02"))

	if u.BestWPM != 90 {
		t.Errorf("best wpm = %d, want 90", u.BestWPM)
	}
}

func TestStreakTransitions(t *testing.T) {
	t.Parallel()

	var u User

	u.ApplyResult(50, 90, time.Minute, day("2026-03-01"))
	if u.Streak != 1 {
		t.Fatalf("first run streak = %d, want 1", u.Streak)
	}

	// Second run the same day leaves the streak alone.
	u.ApplyResult(50, 90, time.Minute, day("2026-03-01"))
	if u.Streak != 1 {
		t.Fatalf("same-day streak = %d, want 1", u.Streak)
	}

	u.ApplyResult(50, 90, time.Minute, day("2026-03-02"))
	if u.Streak != 2 {
		t.Fatalf("next-day streak = %d, want 2", u.Streak)
	}

	// A missed day resets the running streak but not the record.
	u.ApplyResult(50, 90, time.Minute, day("2026-03-05"))
	if u.Streak != 1 {
		t.Fatalf("post-gap streak = %d, want 1", u.Streak)
	}
	if u.LongestStreak != 2 {
		t.Fatalf("longest streak = %d, want 2", u.LongestStreak)
	}
	if u.LastTestDay != "2026-03-05" {
		t.Fatalf("last test day = %q", u.LastTestDay)
	}

	// Rebuilding past the old record moves it.
	u.ApplyResult(50, 90, time.Minute, day("2026-03-06"))
	u.ApplyResult(50, 90, time.Minute, day("2026-03-07"))
	if u.Streak != 3 || u.LongestStreak != 3 {
		t.Fatalf("streak = %d longest = %d, want 3 and 3", u.Streak, u.LongestStreak)
	}
}
