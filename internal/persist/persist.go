// Package persist writes finished runs to storage: the append-only score
// log, the per-user aggregate document and the global leaderboard.
package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	leaderboardDB "github.com/keyforge-games/keyforge/internal/database/leaderboard/database"
	leaderboardModel "github.com/keyforge-games/keyforge/internal/database/leaderboard/model"
	scoreDB "github.com/keyforge-games/keyforge/internal/database/score/database"
	scoreModel "github.com/keyforge-games/keyforge/internal/database/score/model"
	userDB "github.com/keyforge-games/keyforge/internal/database/user/database"
	"github.com/keyforge-games/keyforge/internal/identity"
	"github.com/keyforge-games/keyforge/internal/logging"
	"github.com/keyforge-games/keyforge/internal/session"
	"github.com/keyforge-games/keyforge/internal/textsource"
)

var ErrAuthRequired = fmt.Errorf("authentication required to save progress")

type Persister struct {
	scores      *scoreDB.DB
	users       *userDB.DB
	leaderboard *leaderboardDB.DB
}

func New(scores *scoreDB.DB, users *userDB.DB, leaderboard *leaderboardDB.DB) *Persister {
	return &Persister{scores: scores, users: users, leaderboard: leaderboard}
}

// Result is everything SaveResult needs about one finished run.
type Result struct {
	Mode        textsource.Mode
	Stats       session.Stats
	Duration    time.Duration
	Multiplayer bool
	RoomCode    string
}

// SaveResult appends the score, folds the aggregates and offers the run
// to the leaderboard. Anonymous players get ErrAuthRequired; the run
// itself already happened, only the save is refused.
func (p *Persister) SaveResult(ctx context.Context, id identity.Identity, res Result) error {
	if !id.Known() {
		return ErrAuthRequired
	}

	now := time.Now()

	score := scoreModel.NewScore(id.UserID)
	score.Mode = res.Mode
	score.WPM = res.Stats.WPM
	score.RawWPM = res.Stats.RawWPM
	score.Accuracy = res.Stats.Accuracy
	score.Duration = res.Duration
	score.Multiplayer = res.Multiplayer
	score.RoomCode = res.RoomCode

	if err := p.scores.Add(score); err != nil {
		return fmt.Errorf("append score: %w", err)
	}

	user, err := p.users.Fetch(id.UserID)
	if err != nil && !errors.Is(err, userDB.NotFoundErr) {
		return fmt.Errorf("fetch user: %w", err)
	}
	if errors.Is(err, userDB.NotFoundErr) {
		user.ID = id.UserID
		user.CreatedAt = now
	}
	if id.Name != "" {
		user.Name = id.Name
	}
	user.ApplyResult(res.Stats.WPM, res.Stats.Accuracy, res.Duration, now)

	if err := p.users.Store(user); err != nil {
		return fmt.Errorf("store user: %w", err)
	}

	if _, err := p.leaderboard.Submit(leaderboardModel.Entry{
		UserID:     id.UserID,
		Name:       user.Name,
		WPM:        res.Stats.WPM,
		Accuracy:   res.Stats.Accuracy,
		Mode:       res.Mode,
		AchievedAt: now,
	}); err != nil {
		// The score and aggregates are already durable; a board glitch
		// is not worth failing the save.
		logging.FromContext(ctx).Named("persist").Errorf("leaderboard submit for %s: %v", id.UserID, err)
	}

	return nil
}

// History returns the player's raw score log, newest unspecified order.
func (p *Persister) History(id identity.Identity) ([]scoreModel.Score, error) {
	if !id.Known() {
		return nil, ErrAuthRequired
	}
	scores, err := p.scores.FetchByUser(id.UserID)
	if errors.Is(err, scoreDB.ErrNotFound) {
		return nil, nil
	}
	return scores, err
}

// Board reads the current global leaderboard.
func (p *Persister) Board() (leaderboardModel.Board, error) {
	return p.leaderboard.Fetch()
}
