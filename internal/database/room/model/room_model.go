// Package model defines the shared multiplayer room document.
package model

import (
	"fmt"
	"sort"
	"time"

	"github.com/keyforge-games/keyforge/internal/textsource"
)

type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusCountdown Status = "countdown"
	StatusActive    Status = "active"
	StatusFinished  Status = "finished"
)

func (s Status) Valid() bool {
	switch s {
	case StatusWaiting, StatusCountdown, StatusActive, StatusFinished:
		return true
	}
	return false
}

const (
	CodeLength = 6
	MinPlayers = 2
	MaxPlayers = 4
)

// Player is one participant's entry in the room document. Only the
// terminal stats of a player's local session are written back here.
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Ready     bool      `json:"ready"`
	Completed bool      `json:"completed"`
	WPM       int       `json:"wpm"`
	Accuracy  int       `json:"accuracy"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// Room is the single multi-writer document coordinating one match. All
// writes go through the store as field-level patches.
type Room struct {
	Code           string            `json:"code"`
	HostID         string            `json:"hostId"`
	Players        map[string]Player `json:"players"`
	Status         Status            `json:"status"`
	CountdownTicks int               `json:"countdownTicks"`
	Mode           textsource.Mode   `json:"mode"`
	TextIndices    []int             `json:"textIndices,omitempty"`
	WinnerID       string            `json:"winnerId,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// Validate is the schema check applied at the store boundary.
func (r *Room) Validate() error {
	if len(r.Code) != CodeLength {
		return fmt.Errorf("room code %q: want %d characters", r.Code, CodeLength)
	}
	for i := 0; i < len(r.Code); i++ {
		c := r.Code[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return fmt.Errorf("room code %q: must be upper-case alphanumeric", r.Code)
		}
	}
	if !r.Status.Valid() {
		return fmt.Errorf("room %s: unknown status %q", r.Code, r.Status)
	}
	if !r.Mode.Valid() {
		return fmt.Errorf("room %s: unknown mode %q", r.Code, r.Mode)
	}
	if len(r.Players) > MaxPlayers {
		return fmt.Errorf("room %s: %d players exceeds the maximum of %d", r.Code, len(r.Players), MaxPlayers)
	}
	return nil
}

// PlayersInJoinOrder returns players sorted by join time; this is the
// first-seen order used to break winner ties.
func (r *Room) PlayersInJoinOrder() []Player {
	players := make([]Player, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].JoinedAt.Equal(players[j].JoinedAt) {
			return players[i].ID < players[j].ID
		}
		return players[i].JoinedAt.Before(players[j].JoinedAt)
	})
	return players
}

// AllCompleted reports whether every player finished their race.
func (r *Room) AllCompleted() bool {
	if len(r.Players) == 0 {
		return false
	}
	for _, p := range r.Players {
		if !p.Completed {
			return false
		}
	}
	return true
}

// Winner picks the player with the highest WPM, first joined winning ties.
func (r *Room) Winner() (Player, bool) {
	players := r.PlayersInJoinOrder()
	if len(players) == 0 {
		return Player{}, false
	}

	winner := players[0]
	for _, p := range players[1:] {
		if p.WPM > winner.WPM {
			winner = p
		}
	}
	return winner, true
}

// Clone returns a deep copy safe to hand to subscribers.
func (r *Room) Clone() *Room {
	cp := *r
	cp.Players = make(map[string]Player, len(r.Players))
	for id, p := range r.Players {
		cp.Players[id] = p
	}
	cp.TextIndices = append([]int(nil), r.TextIndices...)
	return &cp
}
