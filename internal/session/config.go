package session

import (
	"time"

	"github.com/keyforge-games/keyforge/internal/dictionary"
	"github.com/keyforge-games/keyforge/internal/textsource"
)

const (
	// DefaultTimeBudget is the hard deadline for a single test.
	DefaultTimeBudget = 60 * time.Second

	// DefaultStreamWordCount is the number of words drawn in stream mode.
	DefaultStreamWordCount = 80

	// DefaultFreeformTokenCap is the soft token cap completing a freeform test.
	DefaultFreeformTokenCap = 50

	// DefaultSnapshotInterval is the live-stats cadence, independent of
	// keystroke cadence.
	DefaultSnapshotInterval = 100 * time.Millisecond

	// defaultFreeformAccuracy is applied when the dictionary check cannot
	// run, so a test never hangs in validation.
	defaultFreeformAccuracy = 80
)

// Stats is one WPM/accuracy snapshot. WPM is the adjusted figure; RawWPM is
// reported alongside for diagnostics.
type Stats struct {
	WPM           int `json:"wpm"`
	RawWPM        int `json:"rawWpm"`
	Accuracy      int `json:"accuracy"`
	TimeRemaining int `json:"timeRemaining"`
}

type Config struct {
	Mode textsource.Mode

	// TextIndices pins the fixed-mode passage draw; nil draws fresh.
	TextIndices []int

	TimeBudget       time.Duration
	StreamWordCount  int
	FreeformTokenCap int
	SnapshotInterval time.Duration

	Source *textsource.Source
	Dict   *dictionary.Service

	// DoneFn receives the frozen final stats exactly once.
	DoneFn func(Stats)

	// SnapshotFn, when set, receives live stats on the snapshot cadence
	// while the test runs.
	SnapshotFn func(Stats)
}

func (c *Config) applyDefaults() {
	if c.TimeBudget <= 0 {
		c.TimeBudget = DefaultTimeBudget
	}
	if c.StreamWordCount <= 0 {
		c.StreamWordCount = DefaultStreamWordCount
	}
	if c.FreeformTokenCap <= 0 {
		c.FreeformTokenCap = DefaultFreeformTokenCap
	}
	if c.SnapshotInterval <= 0 {
		c.SnapshotInterval = DefaultSnapshotInterval
	}
}
