package gateway

import (
	"github.com/keyforge-games/keyforge/internal/database/room/model"
	"github.com/keyforge-games/keyforge/internal/session"
	"github.com/keyforge-games/keyforge/internal/textsource"
)

// Inbound command types.
const (
	cmdStartTest  = "start_test"
	cmdInput      = "input"
	cmdCreateRoom = "create_room"
	cmdJoinRoom   = "join_room"
	cmdReady      = "ready"
	cmdStartRace  = "start_race"
	cmdLeaveRoom  = "leave_room"
)

// Outbound event types.
const (
	evText  = "text"
	evStats = "stats"
	evDone  = "done"
	evRoom  = "room"
	evError = "error"
)

// Message is the single inbound envelope; fields beyond Type are read
// per command.
type Message struct {
	Type string `json:"type"`

	Mode  textsource.Mode `json:"mode,omitempty"`
	Value string          `json:"value,omitempty"`
	Code  string          `json:"code,omitempty"`
	Name  string          `json:"name,omitempty"`
}

type textEvent struct {
	Type      string `json:"type"`
	Paragraph string `json:"paragraph"`
	Indices   []int  `json:"indices,omitempty"`
}

type statsEvent struct {
	Type   string        `json:"type"`
	Stats  session.Stats `json:"stats"`
	Errors []int         `json:"errors,omitempty"`
}

type doneEvent struct {
	Type  string        `json:"type"`
	Stats session.Stats `json:"stats"`
	Saved bool          `json:"saved"`
}

type roomEvent struct {
	Type string      `json:"type"`
	Room *model.Room `json:"room"`
}

type errorEvent struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}
