package roomstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/keyforge-games/keyforge/internal/database"
	"github.com/keyforge-games/keyforge/internal/database/room/model"
	"github.com/keyforge-games/keyforge/internal/textsource"
)

func testRoom(code string) *model.Room {
	return &model.Room{
		Code:   code,
		HostID: "host",
		Players: map[string]model.Player{
			"host": {ID: "host", Name: "Host", JoinedAt: time.Now()},
		},
		Status:    model.StatusWaiting,
		Mode:      textsource.ModeFixed,
		CreatedAt: time.Now(),
	}
}

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(context.Background(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestPutRejectsDuplicateCode(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	if err := s.Put(context.Background(), testRoom("AAAAAA")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	err := s.Put(context.Background(), testRoom("AAAAAA"))
	if !errors.Is(err, ErrRoomExists) {
		t.Errorf("expected ErrRoomExists, got %v", err)
	}
}

func TestPutValidatesSchema(t *testing.T) {
	t.Parallel()

	s := newStore(t)

	bad := testRoom("abc")
	if err := s.Put(context.Background(), bad); err == nil {
		t.Error("expected validation error for short lower-case code")
	}

	bad = testRoom("AAAAAA")
	bad.Status = model.Status("exploded")
	if err := s.Put(context.Background(), bad); err == nil {
		t.Error("expected validation error for unknown status")
	}
}

func TestGetReturnsACopy(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	if err := s.Put(context.Background(), testRoom("AAAAAA")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get("AAAAAA")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	got.Players["intruder"] = model.Player{ID: "intruder"}

	again, _ := s.Get("AAAAAA")
	if len(again.Players) != 1 {
		t.Error("mutating a Get result leaked into the store")
	}
}

func TestUpdatePatchesWithoutClobber(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	if err := s.Put(context.Background(), testRoom("AAAAAA")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	_, err := s.Update(context.Background(), "AAAAAA", func(r *model.Room) error {
		r.Players["guest"] = model.Player{ID: "guest", Name: "Guest", JoinedAt: time.Now()}
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ := s.Get("AAAAAA")
	if len(got.Players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(got.Players))
	}
	if _, ok := got.Players["host"]; !ok {
		t.Error("patch clobbered the host entry")
	}
}

func TestUpdateAbortsOnMutatorError(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	if err := s.Put(context.Background(), testRoom("AAAAAA")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	sentinel := errors.New("nope")
	_, err := s.Update(context.Background(), "AAAAAA", func(r *model.Room) error {
		r.Status = model.StatusActive
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	// The aborted mutation must not leak into the stored document.
	got, err := s.Get("AAAAAA")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != model.StatusWaiting {
		t.Fatalf("status = %s, want waiting after aborted update", got.Status)
	}
}

func TestUpdateAbortsOnValidationFailure(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	if err := s.Put(context.Background(), testRoom("AAAAAA")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	_, err := s.Update(context.Background(), "AAAAAA", func(r *model.Room) error {
		r.Status = "teleporting"
		return nil
	})
	if err == nil {
		t.Fatal("expected a validation error")
	}

	got, err := s.Get("AAAAAA")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != model.StatusWaiting {
		t.Fatalf("status = %s, want waiting after rejected update", got.Status)
	}
}

func TestUpdateUnknownRoom(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	_, err := s.Update(context.Background(), "ZZZZZZ", func(*model.Room) error { return nil })
	if !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	if err := s.Put(context.Background(), testRoom("AAAAAA")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	updates, cancel, err := s.Subscribe("AAAAAA")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer cancel()

	if _, err := s.Update(context.Background(), "AAAAAA", func(r *model.Room) error {
		r.Status = model.StatusCountdown
		r.CountdownTicks = 5
		return nil
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	select {
	case room := <-updates:
		if room.Status != model.StatusCountdown {
			t.Errorf("expected countdown status, got %q", room.Status)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the update")
	}
}

func TestSlowSubscriberSeesLatestSnapshot(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	if err := s.Put(context.Background(), testRoom("AAAAAA")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	updates, cancel, err := s.Subscribe("AAAAAA")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer cancel()

	// Overflow the subscriber buffer without draining it.
	for ticks := 20; ticks > 0; ticks-- {
		ticks := ticks
		if _, err := s.Update(context.Background(), "AAAAAA", func(r *model.Room) error {
			r.CountdownTicks = ticks
			return nil
		}); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}

	var last *model.Room
	for {
		select {
		case room := <-updates:
			last = room
			continue
		default:
		}
		break
	}

	if last == nil || last.CountdownTicks != 1 {
		t.Fatalf("expected last snapshot with 1 tick, got %+v", last)
	}
}

func TestDeleteClosesSubscriptions(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	if err := s.Put(context.Background(), testRoom("AAAAAA")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	updates, _, err := s.Subscribe("AAAAAA")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if err := s.Delete(context.Background(), "AAAAAA"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-updates:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("subscription channel never closed on delete")
		}
	}
}

func TestSnapshotResurrection(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "rooms.db")

	db, err := database.NewFromEnv(ctx, &database.Config{FilePath: path})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	s, err := New(ctx, db)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	open := testRoom("OPENRM")
	finished := testRoom("DONERM")
	if err := s.Put(ctx, open); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, finished); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := s.Update(ctx, "DONERM", func(r *model.Room) error {
		r.Status = model.StatusFinished
		return nil
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if err := db.Close(ctx); err != nil {
		t.Fatalf("close db: %v", err)
	}

	db, err = database.NewFromEnv(ctx, &database.Config{FilePath: path})
	if err != nil {
		t.Fatalf("reopen db: %v", err)
	}
	defer db.Close(ctx)

	restored, err := New(ctx, db)
	if err != nil {
		t.Fatalf("New after restart: %v", err)
	}

	if _, err := restored.Get("OPENRM"); err != nil {
		t.Errorf("open room not resurrected: %v", err)
	}
	if _, err := restored.Get("DONERM"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("finished room should not be resurrected, got %v", err)
	}
}
