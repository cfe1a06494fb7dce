// Package room coordinates multiplayer matches: lobby, countdown, race and
// results, synchronized through the shared room-document store.
package room

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/keyforge-games/keyforge/internal/database/room/model"
	"github.com/keyforge-games/keyforge/internal/logging"
	"github.com/keyforge-games/keyforge/internal/roomstore"
	"github.com/keyforge-games/keyforge/internal/session"
	"github.com/keyforge-games/keyforge/internal/textsource"
	"github.com/valyala/fastrand"
)

const (
	codeAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	createAttempts = 5
)

var (
	ErrRoomNotFound     = roomstore.ErrRoomNotFound
	ErrNotHost          = fmt.Errorf("only the host can start the race")
	ErrNotEnoughPlayers = fmt.Errorf("at least %d players required", model.MinPlayers)
	ErrPlayersNotReady  = fmt.Errorf("all players must be ready")
	ErrRoomFull         = fmt.Errorf("room is full")
	ErrRaceStarted      = fmt.Errorf("race already started")
	ErrUnknownPlayer    = fmt.Errorf("player is not in this room")
)

type Coordinator struct {
	store          *roomstore.Store
	countdownTicks int
	tickInterval   time.Duration
}

func NewCoordinator(store *roomstore.Store, countdownTicks int) *Coordinator {
	return &Coordinator{
		store:          store,
		countdownTicks: countdownTicks,
		tickInterval:   time.Second,
	}
}

// GenerateCode draws a 6-character upper-case room code.
func GenerateCode() string {
	code := make([]byte, model.CodeLength)
	for i := range code {
		code[i] = codeAlphabet[fastrand.Uint32n(uint32(len(codeAlphabet)))]
	}
	return string(code)
}

// Create opens a Waiting room with the creator as host and sole player.
// The store key enforces code uniqueness; a collision draws a new code.
func (c *Coordinator) Create(ctx context.Context, host model.Player, mode textsource.Mode) (*model.Room, error) {
	host.Ready = false
	host.Completed = false
	host.JoinedAt = time.Now()

	for attempt := 0; attempt < createAttempts; attempt++ {
		room := &model.Room{
			Code:      GenerateCode(),
			HostID:    host.ID,
			Players:   map[string]model.Player{host.ID: host},
			Status:    model.StatusWaiting,
			Mode:      mode,
			CreatedAt: time.Now(),
		}
		if mode == textsource.ModeFixed {
			// Pin the draw so every player races on identical text.
			room.TextIndices = textsource.DrawIndices()
		}

		err := c.store.Put(ctx, room)
		if errors.Is(err, roomstore.ErrRoomExists) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create room: %w", err)
		}

		logging.FromContext(ctx).Named("room").Infof("room %s created by %s", room.Code, host.ID)
		return room, nil
	}

	return nil, fmt.Errorf("create room: could not draw an unused code")
}

// normalizeCode maps a typed code onto the stored upper-case form, so
// lookup is case-insensitive.
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Join merges a player into an open room without touching other entries.
func (c *Coordinator) Join(ctx context.Context, code string, player model.Player) (*model.Room, error) {
	code = normalizeCode(code)
	player.Ready = false
	player.Completed = false
	player.JoinedAt = time.Now()

	room, err := c.store.Update(ctx, code, func(r *model.Room) error {
		if r.Status != model.StatusWaiting {
			return ErrRaceStarted
		}
		if _, rejoining := r.Players[player.ID]; !rejoining && len(r.Players) >= model.MaxPlayers {
			return ErrRoomFull
		}
		r.Players[player.ID] = player
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Named("room").Infof("player %s joined room %s", player.ID, code)
	return room, nil
}

// ToggleReady flips the caller's own ready flag and nothing else.
func (c *Coordinator) ToggleReady(ctx context.Context, code, playerID string) (*model.Room, error) {
	return c.store.Update(ctx, normalizeCode(code), func(r *model.Room) error {
		p, ok := r.Players[playerID]
		if !ok {
			return ErrUnknownPlayer
		}
		p.Ready = !p.Ready
		r.Players[playerID] = p
		return nil
	})
}

// Start moves a full, ready lobby into Countdown and drives the ticks.
// Host-only; every tick is an independent read-modify-write so no tick
// ever acts on a stale copy of the room.
func (c *Coordinator) Start(ctx context.Context, code, playerID string) error {
	code = normalizeCode(code)
	_, err := c.store.Update(ctx, code, func(r *model.Room) error {
		if r.HostID != playerID {
			return ErrNotHost
		}
		if r.Status != model.StatusWaiting {
			return ErrRaceStarted
		}
		if len(r.Players) < model.MinPlayers {
			return ErrNotEnoughPlayers
		}
		for _, p := range r.Players {
			if !p.Ready {
				return ErrPlayersNotReady
			}
		}
		r.Status = model.StatusCountdown
		r.CountdownTicks = c.countdownTicks
		return nil
	})
	if err != nil {
		return err
	}

	go c.countdown(ctx, code)
	return nil
}

func (c *Coordinator) countdown(ctx context.Context, code string) {
	logger := logging.FromContext(ctx).Named("room.countdown")
	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			room, err := c.store.Update(ctx, code, func(r *model.Room) error {
				if r.Status != model.StatusCountdown {
					return nil
				}
				if r.CountdownTicks > 0 {
					r.CountdownTicks--
				}
				if r.CountdownTicks == 0 {
					r.Status = model.StatusActive
				}
				return nil
			})
			if err != nil {
				logger.Errorf("countdown tick for %s: %v", code, err)
				return
			}
			if room.Status != model.StatusCountdown {
				return
			}
		}
	}
}

// ReportResult writes one player's terminal stats as a partial patch keyed
// to that player, then runs the finish check.
func (c *Coordinator) ReportResult(ctx context.Context, code, playerID string, stats session.Stats) error {
	code = normalizeCode(code)
	_, err := c.store.Update(ctx, code, func(r *model.Room) error {
		p, ok := r.Players[playerID]
		if !ok {
			return ErrUnknownPlayer
		}
		p.WPM = stats.WPM
		p.Accuracy = stats.Accuracy
		p.Completed = true
		r.Players[playerID] = p
		return nil
	})
	if err != nil {
		return fmt.Errorf("report result: %w", err)
	}

	return c.FinishCheck(ctx, code)
}

// FinishCheck declares the winner once every player completed. Multiple
// participants may race to run it; the winner is deterministic for a given
// players map, so writing the same terminal state twice is harmless.
func (c *Coordinator) FinishCheck(ctx context.Context, code string) error {
	code = normalizeCode(code)
	room, err := c.store.Update(ctx, code, func(r *model.Room) error {
		if r.Status == model.StatusFinished {
			return nil
		}
		if !r.AllCompleted() {
			return nil
		}

		winner, ok := r.Winner()
		if !ok {
			return nil
		}
		r.Status = model.StatusFinished
		r.WinnerID = winner.ID
		return nil
	})
	if err != nil {
		return fmt.Errorf("finish check: %w", err)
	}

	if room.Status == model.StatusFinished {
		logging.FromContext(ctx).Named("room").Infof("room %s finished, winner %s", code, room.WinnerID)
	}
	return nil
}

// Leave removes the player; the last player out deletes the room.
func (c *Coordinator) Leave(ctx context.Context, code, playerID string) error {
	code = normalizeCode(code)
	var remaining int
	_, err := c.store.Update(ctx, code, func(r *model.Room) error {
		delete(r.Players, playerID)
		remaining = len(r.Players)
		return nil
	})
	if err != nil {
		return err
	}

	if remaining == 0 {
		if err := c.store.Delete(ctx, code); err != nil && !errors.Is(err, roomstore.ErrRoomNotFound) {
			return fmt.Errorf("delete empty room: %w", err)
		}
		return nil
	}

	// The departure may leave everyone remaining completed.
	return c.FinishCheck(ctx, code)
}

// Watch subscribes to room updates; the cancel func is the mandatory
// cleanup on leave or disconnect.
func (c *Coordinator) Watch(code string) (<-chan *model.Room, func(), error) {
	return c.store.Subscribe(normalizeCode(code))
}

// Get reads the current room document.
func (c *Coordinator) Get(code string) (*model.Room, error) {
	return c.store.Get(normalizeCode(code))
}
