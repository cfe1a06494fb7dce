package scoring

import (
	"testing"
	"time"
)

func TestRawWPM(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		input   string
		elapsed time.Duration
		want    int
	}{
		{"four words in a minute", "the quick brown fox", time.Minute, 4},
		{"four words in thirty seconds", "the quick brown fox", 30 * time.Second, 8},
		{"zero elapsed", "the quick brown fox", 0, 0},
		{"negative elapsed", "the quick brown fox", -time.Second, 0},
		{"empty input", "", time.Minute, 0},
		{"surrounding whitespace", "  one two  ", time.Minute, 2},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := RawWPM(tc.input, tc.elapsed); got != tc.want {
				t.Errorf("RawWPM(%q, %v) = %d, want %d", tc.input, tc.elapsed, got, tc.want)
			}
		})
	}
}

func TestCharAccuracy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		input     string
		reference string
		want      int
	}{
		{"perfect", "the quick brown fox", "the quick brown fox", 100},
		{"one transposition", "teh quick brown fox", "the quick brown fox", 89},
		{"empty input", "", "anything", 100},
		{"all wrong", "zzzz", "abcd", 0},
		{"longer than reference", "abx", "ab", 67},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := CharAccuracy(tc.input, tc.reference)
			if got != tc.want {
				t.Errorf("CharAccuracy(%q, %q) = %d, want %d", tc.input, tc.reference, got, tc.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("accuracy %d outside [0,100]", got)
			}
		})
	}
}

func TestCharAccuracySingleWrongChar(t *testing.T) {
	t.Parallel()

	// 18 of 19 characters match.
	got := CharAccuracy("tha quick brown fox", "the quick brown fox")
	if got != 95 {
		t.Errorf("expected 95, got %d", got)
	}
}

func TestLiveHeuristicAccuracy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 100},
		{"all long tokens", "hello world typing", 100},
		{"half short", "hi hello", 50},
		{"all short", "a an it", 0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := LiveHeuristicAccuracy(tc.input); got != tc.want {
				t.Errorf("LiveHeuristicAccuracy(%q) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestAdjustedWPMNeverExceedsRaw(t *testing.T) {
	t.Parallel()

	for _, raw := range []int{0, 1, 37, 120} {
		for _, acc := range []int{0, 33, 95, 100} {
			adjusted := AdjustedWPM(raw, acc)
			if adjusted > raw {
				t.Errorf("AdjustedWPM(%d, %d) = %d exceeds raw", raw, acc, adjusted)
			}
		}
	}

	if got := AdjustedWPM(4, 95); got != 4 {
		t.Errorf("AdjustedWPM(4, 95) = %d, want 4", got)
	}
	if got := AdjustedWPM(40, 95); got != 38 {
		t.Errorf("AdjustedWPM(40, 95) = %d, want 38", got)
	}
}
