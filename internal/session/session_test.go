package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/keyforge-games/keyforge/internal/dictionary"
	"github.com/keyforge-games/keyforge/internal/textsource"
)

func brokenDictionary(t *testing.T) *dictionary.Service {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)
	return dictionary.NewService(srv.URL, time.Hour)
}

func workingDictionary(t *testing.T, body string) *dictionary.Service {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return dictionary.NewService(srv.URL, time.Hour)
}

func waitForPhase(t *testing.T, s *Session, phase uint8) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if s.Phase() == phase {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("session never reached phase %d, stuck at %d", phase, s.Phase())
}

func TestIdleUntilFirstKeystroke(t *testing.T) {
	t.Parallel()

	s := New(context.Background(), Config{
		Mode:        textsource.ModeFixed,
		TextIndices: []int{0},
	})

	if s.Phase() != PhaseIdle {
		t.Fatalf("expected Idle, got %d", s.Phase())
	}

	s.Input("")
	if s.Phase() != PhaseIdle {
		t.Error("empty input must not start the clock")
	}

	s.Input("I")
	if s.Phase() != PhaseRunning {
		t.Errorf("expected Running after first keystroke, got %d", s.Phase())
	}
}

func TestFixedModeCompletesOnFullInput(t *testing.T) {
	t.Parallel()

	var final *Stats
	s := New(context.Background(), Config{
		Mode:        textsource.ModeFixed,
		TextIndices: []int{0},
		DoneFn:      func(st Stats) { final = &st },
	})

	reference, _ := s.CurrentParagraph()
	s.Input(reference)

	if s.Phase() != PhaseCompleted {
		t.Fatalf("expected Completed, got %d", s.Phase())
	}
	if final == nil {
		t.Fatal("completion callback never fired")
	}
	if final.Accuracy != 100 {
		t.Errorf("perfect input should score 100 accuracy, got %d", final.Accuracy)
	}
	if final.WPM > final.RawWPM {
		t.Errorf("adjusted WPM %d exceeds raw %d", final.WPM, final.RawWPM)
	}
}

func TestErrorRescanHandlesEdits(t *testing.T) {
	t.Parallel()

	s := New(context.Background(), Config{
		Mode:        textsource.ModeFixed,
		TextIndices: []int{0},
	})

	reference, _ := s.CurrentParagraph()
	prefix := reference[:10]

	s.Input("XX" + prefix[2:])
	if got := len(s.ErrorIndices()); got != 2 {
		t.Fatalf("expected 2 errors, got %d", got)
	}

	// Backspace and retype correctly; the rescan must clear the errors.
	s.Input(prefix)
	if got := len(s.ErrorIndices()); got != 0 {
		t.Errorf("expected errors cleared after fix, got %d", got)
	}
}

func TestParagraphAdvanceKeepsSessionRunning(t *testing.T) {
	t.Parallel()

	var completions int
	s := New(context.Background(), Config{
		Mode:        textsource.ModeFixed,
		TextIndices: []int{0, 1},
		DoneFn:      func(Stats) { completions++ },
	})

	first, idx := s.CurrentParagraph()
	if idx != 0 {
		t.Fatalf("expected paragraph 0, got %d", idx)
	}

	s.Input(first)
	if s.Phase() != PhaseRunning {
		t.Fatal("finishing a non-final paragraph must not complete the session")
	}

	second, idx := s.CurrentParagraph()
	if idx != 1 {
		t.Fatalf("expected advance to paragraph 1, got %d", idx)
	}
	if second == first {
		t.Fatal("paragraph did not change")
	}

	s.Input(second)
	if s.Phase() != PhaseCompleted {
		t.Fatalf("expected Completed after last paragraph, got %d", s.Phase())
	}
	if completions != 1 {
		t.Errorf("completion callback fired %d times", completions)
	}
}

func TestDegenerateEmptyTextCompletesImmediately(t *testing.T) {
	t.Parallel()

	done := make(chan Stats, 1)
	s := New(context.Background(), Config{
		Mode:        textsource.ModeFixed,
		TextIndices: []int{9999},
		DoneFn:      func(st Stats) { done <- st },
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Run(ctx)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("degenerate empty text must complete, not hang")
	}

	if s.Phase() != PhaseCompleted {
		t.Errorf("expected Completed, got %d", s.Phase())
	}
}

func TestFreeformValidatesAgainstDictionary(t *testing.T) {
	t.Parallel()

	dict := workingDictionary(t, `{"hello":1,"world":1,"typing":1,"test":1}`)
	done := make(chan Stats, 1)
	s := New(context.Background(), Config{
		Mode:             textsource.ModeFreeform,
		FreeformTokenCap: 4,
		Dict:             dict,
		DoneFn:           func(st Stats) { done <- st },
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Run(ctx)

	s.Input("hello world qzxqv test")

	var final Stats
	select {
	case final = <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("validation never completed")
	}

	if final.Accuracy != 75 {
		t.Errorf("expected authoritative accuracy 75, got %d", final.Accuracy)
	}
	if s.Phase() != PhaseCompleted {
		t.Errorf("expected Completed, got %d", s.Phase())
	}
}

func TestFreeformDictionaryFailureFallsBack(t *testing.T) {
	t.Parallel()

	done := make(chan Stats, 1)
	s := New(context.Background(), Config{
		Mode:             textsource.ModeFreeform,
		FreeformTokenCap: 3,
		Dict:             brokenDictionary(t),
		DoneFn:           func(st Stats) { done <- st },
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Run(ctx)

	s.Input("anything goes here")

	var final Stats
	select {
	case final = <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("session hung in Validating on dictionary failure")
	}

	if final.Accuracy != 80 {
		t.Errorf("expected default accuracy 80, got %d", final.Accuracy)
	}
}

func TestInputIgnoredAfterCompletion(t *testing.T) {
	t.Parallel()

	s := New(context.Background(), Config{
		Mode:        textsource.ModeFixed,
		TextIndices: []int{0},
	})

	reference, _ := s.CurrentParagraph()
	s.Input(reference)
	final, ok := s.Final()
	if !ok {
		t.Fatal("expected final stats")
	}

	s.Input(reference + " trailing garbage")
	again, _ := s.Final()
	if again != final {
		t.Error("final stats mutated by input after completion")
	}
}

func TestRestartIsAFreshSession(t *testing.T) {
	t.Parallel()

	first := New(context.Background(), Config{
		Mode:        textsource.ModeFixed,
		TextIndices: []int{0},
	})
	reference, _ := first.CurrentParagraph()
	first.Input(reference)

	second := New(context.Background(), Config{Mode: textsource.ModeFixed})
	if second.Phase() != PhaseIdle {
		t.Errorf("restarted session must be Idle, got %d", second.Phase())
	}

	snap := second.Snapshot()
	if snap.TimeRemaining != int(DefaultTimeBudget.Seconds()) {
		t.Errorf("expected full time budget, got %d", snap.TimeRemaining)
	}

	text, idx := second.CurrentParagraph()
	if idx != 0 || text == "" {
		t.Error("restart must draw fresh text")
	}
}

func TestStreamModeDrawsWordsEvenWhenDictionaryDown(t *testing.T) {
	t.Parallel()

	source := textsource.New(brokenDictionary(t))
	s := New(context.Background(), Config{
		Mode:            textsource.ModeStream,
		Source:          source,
		StreamWordCount: 10,
	})

	reference, _ := s.CurrentParagraph()
	if words := strings.Fields(reference); len(words) != 10 {
		t.Fatalf("expected 10 fallback words, got %d", len(words))
	}
}
