// Package scoring converts typed input and elapsed time into WPM and
// accuracy numbers. All functions are pure.
package scoring

import (
	"math"
	"strings"
	"time"
)

// WordCount counts whitespace-delimited tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// RawWPM computes words per minute ignoring accuracy. A non-positive
// elapsed duration yields 0.
func RawWPM(input string, elapsed time.Duration) int {
	return RawWPMFromCount(WordCount(input), elapsed)
}

// RawWPMFromCount is RawWPM for an already-counted number of words.
func RawWPMFromCount(words int, elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}

	minutes := elapsed.Seconds() / 60
	return int(math.Round(float64(words) / minutes))
}

// CharAccuracy compares input against the reference text position by
// position and returns the percentage of matching characters. Empty input
// counts as 100.
func CharAccuracy(input, reference string) int {
	in := []rune(input)
	if len(in) == 0 {
		return 100
	}

	ref := []rune(reference)
	var correct int
	for i := range in {
		if i < len(ref) && in[i] == ref[i] {
			correct++
		}
	}

	return int(math.Round(float64(correct) / float64(len(in)) * 100))
}

// LiveHeuristicAccuracy is the cheap freeform approximation shown while a
// test runs: the share of tokens longer than two characters. The
// authoritative number comes from the dictionary check after completion.
func LiveHeuristicAccuracy(input string) int {
	words := strings.Fields(input)
	if len(words) == 0 {
		return 100
	}

	var plausible int
	for _, word := range words {
		if len([]rune(word)) > 2 {
			plausible++
		}
	}

	return int(math.Round(float64(plausible) / float64(len(words)) * 100))
}

// AdjustedWPM scales raw WPM by the accuracy fraction. This is the
// canonical reported speed.
func AdjustedWPM(rawWPM, accuracy int) int {
	return int(math.Round(float64(rawWPM) * float64(accuracy) / 100))
}
