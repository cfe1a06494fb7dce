// Package dictionary provides word-membership checks and random word
// sampling backed by a remote word list with a time-based cache.
package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/keyforge-games/keyforge/internal/logging"
	"github.com/valyala/fastrand"
)

const (
	sampleMinLen = 3
	sampleMaxLen = 8
)

var ErrUnavailable = fmt.Errorf("dictionary unavailable")

// Service caches the fetched word set for a TTL. It is safe for
// concurrent use; the cache has a single writer at a time.
type Service struct {
	url    string
	ttl    time.Duration
	client *http.Client

	mu        sync.RWMutex
	words     map[string]struct{}
	pool      []string
	fetchedAt time.Time
}

func NewService(url string, ttl time.Duration) *Service {
	return &Service{
		url:    url,
		ttl:    ttl,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Load fetches the word list unless a fresh cached copy exists.
func (s *Service) Load(ctx context.Context) error {
	s.mu.RLock()
	fresh := s.words != nil && time.Since(s.fetchedAt) < s.ttl
	s.mu.RUnlock()
	if fresh {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.words != nil && time.Since(s.fetchedAt) < s.ttl {
		return nil
	}

	logger := logging.FromContext(ctx).Named("dictionary")
	words, err := s.fetch(ctx)
	if err != nil {
		// A stale cache still beats no dictionary at all.
		if s.words != nil {
			logger.Warnf("dictionary refresh failed, serving stale cache: %v", err)
			return nil
		}
		return fmt.Errorf("load dictionary: %w", err)
	}

	s.words = words
	s.pool = buildSamplePool(words)
	s.fetchedAt = time.Now()
	logger.Infof("dictionary loaded, %d words", len(words))
	return nil
}

func (s *Service) fetch(ctx context.Context) (map[string]struct{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch word list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch word list: unexpected status %d", resp.StatusCode)
	}

	var raw map[string]int
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode word list: %w", err)
	}

	words := make(map[string]struct{}, len(raw))
	for word := range raw {
		words[strings.ToLower(word)] = struct{}{}
	}

	return words, nil
}

func buildSamplePool(words map[string]struct{}) []string {
	pool := make([]string, 0, len(words)/4)
WordLoop:
	for word := range words {
		if len(word) < sampleMinLen || len(word) > sampleMaxLen {
			continue
		}
		for i := 0; i < len(word); i++ {
			if word[i] < 'a' || word[i] > 'z' {
				continue WordLoop
			}
		}
		pool = append(pool, word)
	}
	return pool
}

// IsWord reports dictionary membership for a token, case-insensitive.
func (s *Service) IsWord(ctx context.Context, token string) (bool, error) {
	if err := s.Load(ctx); err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.words[strings.ToLower(token)]
	return ok, nil
}

// SampleWords draws n distinct words of length 3-8. When the remote list
// cannot be loaded it draws from the embedded fallback list instead.
func (s *Service) SampleWords(ctx context.Context, n int) []string {
	var pool []string
	if err := s.Load(ctx); err != nil {
		logging.FromContext(ctx).Named("dictionary").Warnf("sampling from fallback list: %v", err)
		pool = fallbackWords
	} else {
		s.mu.RLock()
		pool = s.pool
		s.mu.RUnlock()
	}

	return drawWithoutReplacement(pool, n)
}

func drawWithoutReplacement(pool []string, n int) []string {
	candidates := make([]string, len(pool))
	copy(candidates, pool)

	if n > len(candidates) {
		n = len(candidates)
	}

	selected := make([]string, 0, n)
	for i := 0; i < n; i++ {
		idx := int(fastrand.Uint32n(uint32(len(candidates))))
		selected = append(selected, candidates[idx])
		candidates[idx] = candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]
	}

	return selected
}

// ValidateText grades freeform text by dictionary membership: the share of
// tokens found in the dictionary, with tokens of one or two letters always
// counted valid. Empty text grades as 100.
func (s *Service) ValidateText(ctx context.Context, text string) (int, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 100, nil
	}

	if err := s.Load(ctx); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var valid int
	for _, word := range words {
		clean := cleanToken(word)
		if len(clean) <= 2 {
			valid++
			continue
		}
		if _, ok := s.words[clean]; ok {
			valid++
		}
	}

	return int(math.Round(float64(valid) / float64(len(words)) * 100)), nil
}

func cleanToken(token string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(token) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
