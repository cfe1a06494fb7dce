// Package session runs the typing-test state machine: it owns the timer,
// the input buffer and per-character validation, and turns keystrokes into
// live and final WPM/accuracy stats.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/keyforge-games/keyforge/internal/logging"
	"github.com/keyforge-games/keyforge/internal/scoring"
	"github.com/keyforge-games/keyforge/internal/textsource"
)

// Session phases. Transitions only run forward; a restart is a new Session.
const (
	PhaseIdle uint8 = iota + 1
	PhaseRunning
	PhaseValidating
	PhaseCompleted
)

// Session is one test attempt. Completed sessions are immutable; restarting
// allocates a fresh Session with a fresh text draw.
type Session struct {
	config Config

	mtx   sync.RWMutex
	phase uint8

	paragraphs    []string
	paragraphIdx  int
	reference     []rune
	input         []rune
	errorIndices  []int
	textIndices   []int
	startedAt     time.Time
	timeRemaining int

	// carried across paragraph advances
	pastWords        int
	pastCorrectChars int
	pastTotalChars   int

	finalStats  *Stats
	pendingDone func(Stats)

	ctx    context.Context
	cancel func()
	sema   sync.Once
}

// New loads text for the configured mode and returns an Idle session. A
// text-load failure degrades to a visible error placeholder instead of
// blocking the test.
func New(ctx context.Context, config Config) *Session {
	config.applyDefaults()

	s := &Session{
		config:        config,
		phase:         PhaseIdle,
		timeRemaining: int(config.TimeBudget.Seconds()),
	}

	s.loadText(ctx)
	return s
}

func (s *Session) loadText(ctx context.Context) {
	switch s.config.Mode {
	case textsource.ModeFixed:
		indices := s.config.TextIndices
		if indices == nil {
			indices = textsource.DrawIndices()
		}
		s.textIndices = indices
		s.paragraphs = textsource.ByIndices(indices)
		if len(s.paragraphs) > 0 {
			s.reference = []rune(s.paragraphs[0])
		}
	case textsource.ModeStream:
		text, err := s.config.Source.Stream(ctx, s.config.StreamWordCount)
		if err != nil {
			logging.FromContext(ctx).Named("session").Errorf("stream text: %v", err)
			text = fmt.Sprintf("could not load words: %v", err)
		}
		s.paragraphs = []string{text}
		s.reference = []rune(text)
	case textsource.ModeFreeform:
		// The dictionary is the reference, not fixed text.
	}
}

// Run starts the countdown and snapshot tickers. The context cancels every
// timer when the owner goes away.
func (s *Session) Run(ctx context.Context) {
	s.sema.Do(func() {
		ctx, cancel := context.WithCancel(ctx)
		s.ctx = ctx
		s.cancel = cancel

		// A degenerate empty text is complete the moment it starts.
		var done func(Stats)
		var stats Stats
		s.mtx.Lock()
		if s.config.Mode != textsource.ModeFreeform && len(s.reference) == 0 && len(s.paragraphs) == 0 {
			s.startLocked()
			s.completeLocked()
			done, stats = s.takeDoneLocked()
		}
		s.mtx.Unlock()
		if done != nil {
			done(stats)
		}

		go s.loop(ctx)
	})
}

func (s *Session) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Session) loop(ctx context.Context) {
	countdown := time.NewTicker(time.Second)
	defer countdown.Stop()
	snapshots := time.NewTicker(s.config.SnapshotInterval)
	defer snapshots.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-countdown.C:
			s.tick()
		case <-snapshots.C:
			s.emitSnapshot()
		}
	}
}

// tick re-derives the remaining time from the start timestamp rather than
// decrementing a counter, so a delayed tick cannot stretch the deadline.
func (s *Session) tick() {
	var done func(Stats)
	var stats Stats

	s.mtx.Lock()
	if s.phase != PhaseRunning {
		s.mtx.Unlock()
		return
	}

	remaining := int(s.config.TimeBudget.Seconds()) - int(time.Since(s.startedAt).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	s.timeRemaining = remaining

	if remaining == 0 {
		s.completeLocked()
		done, stats = s.takeDoneLocked()
	}
	s.mtx.Unlock()

	if done != nil {
		done(stats)
	}
}

func (s *Session) emitSnapshot() {
	if s.config.SnapshotFn == nil {
		return
	}

	s.mtx.RLock()
	if s.phase != PhaseRunning {
		s.mtx.RUnlock()
		return
	}
	stats := s.liveStatsLocked()
	s.mtx.RUnlock()

	s.config.SnapshotFn(stats)
}

// Input replaces the typed buffer with the current text-field value. The
// first non-empty input starts the clock.
func (s *Session) Input(text string) {
	var done func(Stats)
	var stats Stats

	s.mtx.Lock()
	switch s.phase {
	case PhaseValidating, PhaseCompleted:
		s.mtx.Unlock()
		return
	case PhaseIdle:
		if text == "" {
			s.mtx.Unlock()
			return
		}
		s.startLocked()
	}

	s.input = []rune(text)
	if s.config.Mode != textsource.ModeFreeform {
		s.rescanErrorsLocked()
	}

	s.checkCompletionLocked()
	done, stats = s.takeDoneLocked()
	s.mtx.Unlock()

	if done != nil {
		done(stats)
	}
}

// rescanErrorsLocked rebuilds the error set with a full linear pass. The
// input is a replaceable buffer, so insertions and deletions both land here.
func (s *Session) rescanErrorsLocked() {
	s.errorIndices = s.errorIndices[:0]
	for i, r := range s.input {
		if i >= len(s.reference) || r != s.reference[i] {
			s.errorIndices = append(s.errorIndices, i)
		}
	}
}

func (s *Session) startLocked() {
	s.phase = PhaseRunning
	s.startedAt = time.Now()
}

func (s *Session) checkCompletionLocked() {
	if s.phase != PhaseRunning {
		return
	}

	if s.config.Mode == textsource.ModeFreeform {
		if scoring.WordCount(string(s.input)) >= s.config.FreeformTokenCap {
			s.completeLocked()
		}
		return
	}

	if len(s.input) < len(s.reference) {
		return
	}

	// End of the current paragraph. More paragraphs continue the same
	// timer; exhausting the last one completes the test.
	if s.paragraphIdx < len(s.paragraphs)-1 {
		s.advanceParagraphLocked()
		return
	}

	s.completeLocked()
}

func (s *Session) advanceParagraphLocked() {
	s.pastWords += scoring.WordCount(string(s.input))
	s.pastCorrectChars += len(s.input) - len(s.errorIndices)
	s.pastTotalChars += len(s.input)

	s.paragraphIdx++
	s.reference = []rune(s.paragraphs[s.paragraphIdx])
	s.input = nil
	s.errorIndices = nil

	// An empty paragraph is already complete; fall through to the next.
	if len(s.reference) == 0 {
		s.checkCompletionLocked()
	}
}

func (s *Session) completeLocked() {
	if s.config.Mode == textsource.ModeFreeform {
		s.phase = PhaseValidating
		go s.validate(string(s.input))
		return
	}

	s.finishLocked(s.charAccuracyLocked())
}

// validate runs the authoritative dictionary check for a freeform test. A
// dictionary failure falls back to a fixed default accuracy; the session
// never stays in Validating.
func (s *Session) validate(text string) {
	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	accuracy, err := s.config.Dict.ValidateText(ctx, text)
	if err != nil {
		logging.FromContext(ctx).Named("session").Warnf("freeform validation: %v", err)
		accuracy = defaultFreeformAccuracy
	}

	var done func(Stats)
	var stats Stats

	s.mtx.Lock()
	if s.phase == PhaseValidating {
		s.finishLocked(accuracy)
		done, stats = s.takeDoneLocked()
	}
	s.mtx.Unlock()

	if done != nil {
		done(stats)
	}
}

func (s *Session) finishLocked(accuracy int) {
	elapsed := time.Since(s.startedAt)
	if elapsed > s.config.TimeBudget {
		elapsed = s.config.TimeBudget
	}

	remaining := int(s.config.TimeBudget.Seconds()) - int(elapsed.Seconds())
	if remaining < 0 {
		remaining = 0
	}
	s.timeRemaining = remaining

	raw := scoring.RawWPMFromCount(s.wordCountLocked(), elapsed)
	s.finalStats = &Stats{
		WPM:           scoring.AdjustedWPM(raw, accuracy),
		RawWPM:        raw,
		Accuracy:      accuracy,
		TimeRemaining: remaining,
	}
	s.phase = PhaseCompleted
	s.pendingDone = s.config.DoneFn
}

// takeDoneLocked hands the one-shot completion callback to the caller so it
// fires outside the lock.
func (s *Session) takeDoneLocked() (func(Stats), Stats) {
	if s.pendingDone == nil || s.finalStats == nil {
		return nil, Stats{}
	}
	done := s.pendingDone
	s.pendingDone = nil
	return done, *s.finalStats
}

func (s *Session) wordCountLocked() int {
	return s.pastWords + scoring.WordCount(string(s.input))
}

func (s *Session) charAccuracyLocked() int {
	correct := s.pastCorrectChars + len(s.input) - len(s.errorIndices)
	total := s.pastTotalChars + len(s.input)

	if total == 0 {
		return 100
	}
	return int(float64(correct)/float64(total)*100 + 0.5)
}

func (s *Session) liveStatsLocked() Stats {
	elapsed := time.Since(s.startedAt)

	var accuracy int
	if s.config.Mode == textsource.ModeFreeform {
		accuracy = scoring.LiveHeuristicAccuracy(string(s.input))
	} else {
		accuracy = s.charAccuracyLocked()
	}

	raw := scoring.RawWPMFromCount(s.wordCountLocked(), elapsed)
	return Stats{
		WPM:           scoring.AdjustedWPM(raw, accuracy),
		RawWPM:        raw,
		Accuracy:      accuracy,
		TimeRemaining: s.timeRemaining,
	}
}

// Phase returns the current phase.
func (s *Session) Phase() uint8 {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.phase
}

// Snapshot returns current live stats regardless of the snapshot cadence.
func (s *Session) Snapshot() Stats {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	if s.finalStats != nil {
		return *s.finalStats
	}
	if s.phase == PhaseIdle {
		return Stats{Accuracy: 100, TimeRemaining: s.timeRemaining}
	}
	return s.liveStatsLocked()
}

// Final returns the frozen stats once the session completed.
func (s *Session) Final() (Stats, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	if s.finalStats == nil {
		return Stats{}, false
	}
	return *s.finalStats, true
}

// CurrentParagraph returns the active reference text and its index.
func (s *Session) CurrentParagraph() (string, int) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return string(s.reference), s.paragraphIdx
}

// ErrorIndices returns a copy of the current error positions.
func (s *Session) ErrorIndices() []int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	out := make([]int, len(s.errorIndices))
	copy(out, s.errorIndices)
	return out
}

// TextIndices exposes the fixed-mode passage draw so a room can share it.
func (s *Session) TextIndices() []int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	out := make([]int, len(s.textIndices))
	copy(out, s.textIndices)
	return out
}
