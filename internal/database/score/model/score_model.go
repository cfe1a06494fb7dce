package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/keyforge-games/keyforge/internal/textsource"
)

func NewScore(userID string) Score {
	return Score{ID: uuid.New(), UserID: userID, CreatedAt: time.Now()}
}

// Score is one finished typing run. Records are append-only; aggregates
// live on the user document.
type Score struct {
	ID     uuid.UUID `json:"-"`
	UserID string    `json:"userID"`

	Mode     textsource.Mode `json:"mode"`
	WPM      int             `json:"wpm"`
	RawWPM   int             `json:"rawWpm"`
	Accuracy int             `json:"accuracy"`

	Duration    time.Duration `json:"duration"`
	Multiplayer bool          `json:"multiplayer"`
	RoomCode    string        `json:"roomCode,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}
