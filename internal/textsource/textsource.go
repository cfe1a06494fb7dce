// Package textsource produces the challenge text for each test mode.
package textsource

import (
	"context"
	"fmt"

	"github.com/keyforge-games/keyforge/internal/dictionary"
	"github.com/keyforge-games/keyforge/internal/strpool"
	"github.com/valyala/fastrand"
)

const (
	minPassages = 3
	maxPassages = 5
)

// FreeformPlaceholder is shown instead of reference text in freeform mode;
// the dictionary is the real reference.
const FreeformPlaceholder = "Type anything you want here. The system will check against a dictionary for accuracy."

// Mode selects the text-generation and validation policy of a test.
type Mode string

const (
	ModeFixed    Mode = "normal"
	ModeFreeform Mode = "freeform"
	ModeStream   Mode = "monkey"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeFixed, ModeFreeform, ModeStream:
		return true
	}
	return false
}

// Source draws challenge text, reaching into the dictionary service for
// stream mode.
type Source struct {
	dict *dictionary.Service
}

func New(dict *dictionary.Service) *Source {
	return &Source{dict: dict}
}

// PassageCount reports the size of the fixed corpus.
func PassageCount() int {
	return len(passages)
}

// DrawIndices picks 3-5 distinct passage indices. Sharing the index list is
// how a multiplayer room puts every player on identical text.
func DrawIndices() []int {
	n := minPassages + int(fastrand.Uint32n(maxPassages-minPassages+1))

	used := make(map[int]bool, n)
	indices := make([]int, 0, n)
	for len(indices) < n {
		idx := int(fastrand.Uint32n(uint32(len(passages))))
		if used[idx] {
			continue
		}
		used[idx] = true
		indices = append(indices, idx)
	}

	return indices
}

// ByIndices resolves an index list to its passages, skipping out-of-range
// entries.
func ByIndices(indices []int) []string {
	selected := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(passages) {
			continue
		}
		selected = append(selected, passages[idx])
	}
	return selected
}

// Paragraphs draws the fixed-mode paragraph sequence.
func (s *Source) Paragraphs() []string {
	return ByIndices(DrawIndices())
}

// Stream draws n random words for a stream-mode test. Provider failure is
// absorbed inside the dictionary fallback, so the result is never empty.
func (s *Source) Stream(ctx context.Context, n int) (string, error) {
	words := s.dict.SampleWords(ctx, n)
	if len(words) == 0 {
		return "", fmt.Errorf("stream text: empty word draw")
	}

	buf := strpool.Get()
	defer func() {
		buf.Reset()
		strpool.Put(buf)
	}()

	for i, w := range words {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(w)
	}
	return buf.String(), nil
}
