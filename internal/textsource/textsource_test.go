package textsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/keyforge-games/keyforge/internal/dictionary"
)

func TestDrawIndices(t *testing.T) {
	t.Parallel()

	for i := 0; i < 50; i++ {
		indices := DrawIndices()
		if len(indices) < 3 || len(indices) > 5 {
			t.Fatalf("expected 3-5 indices, got %d", len(indices))
		}

		seen := map[int]bool{}
		for _, idx := range indices {
			if idx < 0 || idx >= PassageCount() {
				t.Fatalf("index %d out of range", idx)
			}
			if seen[idx] {
				t.Fatalf("index %d repeated in draw", idx)
			}
			seen[idx] = true
		}
	}
}

func TestByIndicesDeterministic(t *testing.T) {
	t.Parallel()

	indices := []int{2, 0, 7}
	first := ByIndices(indices)
	second := ByIndices(indices)

	if len(first) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("paragraph %d differs between identical draws", i)
		}
	}
}

func TestByIndicesSkipsOutOfRange(t *testing.T) {
	t.Parallel()

	got := ByIndices([]int{0, -1, PassageCount(), 1})
	if len(got) != 2 {
		t.Errorf("expected out-of-range indices skipped, got %d paragraphs", len(got))
	}
}

func TestStreamFallsBackWhenDictionaryDown(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	source := New(dictionary.NewService(srv.URL, time.Hour))
	text, err := source.Stream(context.Background(), 80)
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}

	words := strings.Fields(text)
	if len(words) != 80 {
		t.Errorf("expected 80 words, got %d", len(words))
	}
}
