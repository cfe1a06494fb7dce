package gateway

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/keyforge-games/keyforge/internal/database/room/model"
	"github.com/keyforge-games/keyforge/internal/identity"
	"github.com/keyforge-games/keyforge/internal/logging"
	"github.com/keyforge-games/keyforge/internal/persist"
	"github.com/keyforge-games/keyforge/internal/room"
	"github.com/keyforge-games/keyforge/internal/session"
	"github.com/keyforge-games/keyforge/internal/textsource"
	"go.uber.org/zap"
)

// client is one websocket connection: at most one running test and at most
// one room membership at a time.
type client struct {
	gw   *Gateway
	conn *websocket.Conn

	id       identity.Identity
	playerID string
	name     string

	writeMu sync.Mutex

	mu          sync.Mutex
	sess        *session.Session
	roomCode    string
	watchCancel func()
	raceStarted bool
	paragraph   int

	logger *zap.SugaredLogger
}

func newClient(ctx context.Context, gw *Gateway, conn *websocket.Conn, id identity.Identity, name string) *client {
	playerID := id.UserID
	if playerID == "" {
		playerID = identity.NewGuestID()
	}
	return &client{
		gw:       gw,
		conn:     conn,
		id:       id,
		playerID: playerID,
		name:     name,
		logger:   logging.FromContext(ctx).Named("gateway.client").With("player", playerID),
	}
}

// run reads commands until the connection drops, then releases every
// session and room resource the connection held.
func (c *client) run(ctx context.Context) {
	defer c.cleanup(ctx)

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warnf("read: %v", err)
			}
			return
		}

		c.dispatch(ctx, msg)
	}
}

func (c *client) dispatch(ctx context.Context, msg Message) {
	switch msg.Type {
	case cmdStartTest:
		c.startTest(ctx, msg)
	case cmdInput:
		c.input(msg.Value)
	case cmdCreateRoom:
		c.createRoom(ctx, msg)
	case cmdJoinRoom:
		c.joinRoom(ctx, msg)
	case cmdReady:
		c.ready(ctx)
	case cmdStartRace:
		c.startRace(ctx)
	case cmdLeaveRoom:
		c.leaveRoom(ctx)
	default:
		c.sendError("unknown command: " + msg.Type)
	}
}

func (c *client) send(v interface{}) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.WriteJSON(v); err != nil {
		c.logger.Warnf("write: %v", err)
	}
}

func (c *client) sendError(reason string) {
	c.send(errorEvent{Type: evError, Reason: reason})
}

func (c *client) startTest(ctx context.Context, msg Message) {
	if !msg.Mode.Valid() {
		c.sendError("unknown mode: " + string(msg.Mode))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.startSessionLocked(ctx, session.Config{
		Mode:             msg.Mode,
		TimeBudget:       c.gw.timeBudget,
		StreamWordCount:  c.gw.streamWordCount,
		FreeformTokenCap: c.gw.freeformTokenCap,
		SnapshotInterval: c.gw.snapshotInterval,
	}, false)
}

// startSessionLocked replaces any running test. Callers hold c.mu.
func (c *client) startSessionLocked(ctx context.Context, cfg session.Config, multiplayer bool) {
	if c.sess != nil {
		c.sess.Stop()
	}

	cfg.Source = c.gw.source
	cfg.Dict = c.gw.dict
	cfg.SnapshotFn = func(stats session.Stats) {
		c.send(statsEvent{Type: evStats, Stats: stats})
	}
	// Run can invoke DoneFn synchronously on degenerate text while the
	// caller still holds c.mu, so finishing always takes its own goroutine.
	cfg.DoneFn = func(stats session.Stats) {
		go c.finish(ctx, stats, cfg, multiplayer)
	}

	sess := session.New(ctx, cfg)
	c.sess = sess
	c.paragraph = 0
	sess.Run(ctx)

	paragraph, _ := sess.CurrentParagraph()
	if cfg.Mode == textsource.ModeFreeform {
		paragraph = textsource.FreeformPlaceholder
	}
	c.send(textEvent{Type: evText, Paragraph: paragraph, Indices: sess.TextIndices()})
}

func (c *client) input(value string) {
	c.mu.Lock()
	sess := c.sess
	c.mu.Unlock()

	if sess == nil {
		c.sendError("no test in progress")
		return
	}

	sess.Input(value)
	c.send(statsEvent{Type: evStats, Stats: sess.Snapshot(), Errors: sess.ErrorIndices()})

	// Crossing into the next paragraph swaps the reference text out from
	// under the client; push the fresh one.
	if paragraph, idx := sess.CurrentParagraph(); idx != c.lastParagraph() {
		c.setLastParagraph(idx)
		c.send(textEvent{Type: evText, Paragraph: paragraph})
	}
}

// finish runs on the session's DoneFn: report to the room if racing, save
// progress for identified players, then tell the client.
func (c *client) finish(ctx context.Context, stats session.Stats, cfg session.Config, multiplayer bool) {
	c.mu.Lock()
	code := c.roomCode
	c.mu.Unlock()

	if multiplayer && code != "" {
		if err := c.gw.rooms.ReportResult(ctx, code, c.playerID, stats); err != nil {
			c.logger.Errorf("report result: %v", err)
		}
	}

	saved := false
	err := c.gw.persister.SaveResult(ctx, c.id, persist.Result{
		Mode:        cfg.Mode,
		Stats:       stats,
		Duration:    cfg.TimeBudget - time.Duration(stats.TimeRemaining)*time.Second,
		Multiplayer: multiplayer,
		RoomCode:    code,
	})
	switch {
	case err == nil:
		saved = true
	case errors.Is(err, persist.ErrAuthRequired):
		// Guests race and score, they just don't keep history.
	default:
		c.logger.Errorf("save result: %v", err)
	}

	c.send(doneEvent{Type: evDone, Stats: stats, Saved: saved})
}

func (c *client) lastParagraph() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paragraph
}

func (c *client) setLastParagraph(idx int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paragraph = idx
}

func (c *client) createRoom(ctx context.Context, msg Message) {
	mode := msg.Mode
	if mode == "" {
		mode = c.gw.defaultRoomMode
	}
	if !mode.Valid() {
		c.sendError("unknown mode: " + string(mode))
		return
	}

	r, err := c.gw.rooms.Create(ctx, model.Player{ID: c.playerID, Name: c.displayName(msg)}, mode)
	if err != nil {
		c.sendError(err.Error())
		return
	}

	c.enterRoom(ctx, r.Code)
	c.send(roomEvent{Type: evRoom, Room: r})
}

func (c *client) joinRoom(ctx context.Context, msg Message) {
	r, err := c.gw.rooms.Join(ctx, msg.Code, model.Player{ID: c.playerID, Name: c.displayName(msg)})
	if err != nil {
		c.sendError(err.Error())
		return
	}

	c.enterRoom(ctx, r.Code)
	c.send(roomEvent{Type: evRoom, Room: r})
}

func (c *client) displayName(msg Message) string {
	if msg.Name != "" {
		return msg.Name
	}
	if c.name != "" {
		return c.name
	}
	return "anonymous"
}

// enterRoom swaps the watch subscription over to the new room.
func (c *client) enterRoom(ctx context.Context, code string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watchCancel != nil {
		c.watchCancel()
		c.watchCancel = nil
	}

	ch, cancel, err := c.gw.rooms.Watch(code)
	if err != nil {
		c.logger.Errorf("watch room %s: %v", code, err)
		return
	}

	c.roomCode = code
	c.watchCancel = cancel
	c.raceStarted = false

	go c.watchRoom(ctx, ch)
}

// watchRoom forwards room snapshots and kicks off the local race session
// the moment the room goes active.
func (c *client) watchRoom(ctx context.Context, ch <-chan *model.Room) {
	for r := range ch {
		c.send(roomEvent{Type: evRoom, Room: r})

		if r.Status != model.StatusActive {
			continue
		}

		c.mu.Lock()
		if !c.raceStarted && c.roomCode == r.Code {
			c.raceStarted = true
			c.startSessionLocked(ctx, session.Config{
				Mode:             r.Mode,
				TextIndices:      r.TextIndices,
				TimeBudget:       c.gw.timeBudget,
				StreamWordCount:  c.gw.streamWordCount,
				FreeformTokenCap: c.gw.freeformTokenCap,
				SnapshotInterval: c.gw.snapshotInterval,
			}, true)
		}
		c.mu.Unlock()
	}
}

func (c *client) ready(ctx context.Context) {
	c.mu.Lock()
	code := c.roomCode
	c.mu.Unlock()

	if code == "" {
		c.sendError("not in a room")
		return
	}
	if _, err := c.gw.rooms.ToggleReady(ctx, code, c.playerID); err != nil {
		c.sendError(err.Error())
	}
}

func (c *client) startRace(ctx context.Context) {
	c.mu.Lock()
	code := c.roomCode
	c.mu.Unlock()

	if code == "" {
		c.sendError("not in a room")
		return
	}
	if err := c.gw.rooms.Start(ctx, code, c.playerID); err != nil {
		c.sendError(err.Error())
	}
}

func (c *client) leaveRoom(ctx context.Context) {
	c.mu.Lock()
	code := c.roomCode
	cancel := c.watchCancel
	c.roomCode = ""
	c.watchCancel = nil
	c.raceStarted = false
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if code == "" {
		return
	}
	if err := c.gw.rooms.Leave(ctx, code, c.playerID); err != nil && !errors.Is(err, room.ErrRoomNotFound) {
		c.logger.Errorf("leave room %s: %v", code, err)
	}
}

// cleanup is the disconnect contract: stop the session, drop the room
// subscription and take the player out of their room.
func (c *client) cleanup(ctx context.Context) {
	c.mu.Lock()
	sess := c.sess
	c.sess = nil
	c.mu.Unlock()

	if sess != nil {
		sess.Stop()
	}

	c.leaveRoom(ctx)
	_ = c.conn.Close()
	c.logger.Debugf("disconnected")
}
