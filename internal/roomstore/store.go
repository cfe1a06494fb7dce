// Package roomstore is the shared room-document store: the single source
// of truth for multiplayer state. Writes are field-level patches applied
// under the store lock and fanned out to subscribers; open rooms are
// snapshotted to bbolt so they survive a restart.
package roomstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/keyforge-games/keyforge/internal/database"
	"github.com/keyforge-games/keyforge/internal/database/room/model"
	"github.com/keyforge-games/keyforge/internal/logging"
	bolt "go.etcd.io/bbolt"
)

const bucket = "rooms"

var (
	ErrRoomNotFound = fmt.Errorf("room not found")
	ErrRoomExists   = fmt.Errorf("room already exists")
)

type subscriber struct {
	id int
	ch chan *model.Room
}

type Store struct {
	mtx    sync.RWMutex
	rooms  map[string]*model.Room
	subs   map[string][]subscriber
	nextID int

	sDB *database.DB
}

// New builds a store, resurrecting unfinished room snapshots when a
// database is supplied.
func New(ctx context.Context, db *database.DB) (*Store, error) {
	s := &Store{
		rooms: map[string]*model.Room{},
		subs:  map[string][]subscriber{},
		sDB:   db,
	}

	if db != nil {
		if err := s.loadSnapshots(ctx); err != nil {
			return nil, fmt.Errorf("load room snapshots: %w", err)
		}
	}

	return s, nil
}

func (s *Store) loadSnapshots(ctx context.Context) error {
	logger := logging.FromContext(ctx).Named("roomstore")

	if err := s.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}

		return b.ForEach(func(k, v []byte) error {
			var room model.Room
			if err := json.Unmarshal(v, &room); err != nil {
				return fmt.Errorf("json unmarshal error, %w", err)
			}
			// Finished matches are history, not live rooms.
			if room.Status == model.StatusFinished {
				return nil
			}
			s.rooms[room.Code] = &room
			return nil
		})
	}); err != nil {
		return fmt.Errorf("view transaction error: %w", err)
	}

	if n := len(s.rooms); n > 0 {
		logger.Infof("resurrected %d open rooms", n)
	}

	return nil
}

// Put creates a room. The key itself enforces code uniqueness: a create
// into an existing code fails instead of overwriting.
func (s *Store) Put(ctx context.Context, room *model.Room) error {
	if err := room.Validate(); err != nil {
		return fmt.Errorf("validate room: %w", err)
	}

	s.mtx.Lock()
	if _, ok := s.rooms[room.Code]; ok {
		s.mtx.Unlock()
		return ErrRoomExists
	}
	stored := room.Clone()
	s.rooms[room.Code] = stored
	snapshot := stored.Clone()
	s.mtx.Unlock()

	s.persist(ctx, snapshot)
	s.notify(snapshot)
	return nil
}

// Get returns a copy of the room document.
func (s *Store) Get(code string) (*model.Room, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	room, ok := s.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room.Clone(), nil
}

// Update applies fn to the room under the store lock. The mutator patches
// the fields it owns and must not replace the document wholesale; a fn
// error aborts the write. The committed document is returned.
func (s *Store) Update(ctx context.Context, code string, fn func(*model.Room) error) (*model.Room, error) {
	s.mtx.Lock()
	stored, ok := s.rooms[code]
	if !ok {
		s.mtx.Unlock()
		return nil, ErrRoomNotFound
	}

	// fn works on a copy so an aborted update leaves the stored document
	// untouched.
	room := stored.Clone()
	if err := fn(room); err != nil {
		s.mtx.Unlock()
		return nil, err
	}

	if err := room.Validate(); err != nil {
		s.mtx.Unlock()
		return nil, fmt.Errorf("validate room: %w", err)
	}

	s.rooms[code] = room
	snapshot := room.Clone()
	s.mtx.Unlock()

	s.persist(ctx, snapshot)
	s.notify(snapshot)
	return snapshot.Clone(), nil
}

// Delete removes the room and ends its subscriptions.
func (s *Store) Delete(ctx context.Context, code string) error {
	s.mtx.Lock()
	if _, ok := s.rooms[code]; !ok {
		s.mtx.Unlock()
		return ErrRoomNotFound
	}
	delete(s.rooms, code)
	subs := s.subs[code]
	delete(s.subs, code)
	s.mtx.Unlock()

	for _, sub := range subs {
		close(sub.ch)
	}

	if s.sDB != nil {
		if err := s.sDB.DB.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket([]byte(bucket))
			if b == nil {
				return nil
			}
			return b.Delete([]byte(code))
		}); err != nil {
			logging.FromContext(ctx).Named("roomstore").Errorf("delete snapshot %s: %v", code, err)
		}
	}

	return nil
}

// Subscribe registers for push updates on a room. The returned cancel func
// must be called on leave/unmount; the channel closes when the room is
// deleted.
func (s *Store) Subscribe(code string) (<-chan *model.Room, func(), error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.rooms[code]; !ok {
		return nil, nil, ErrRoomNotFound
	}

	s.nextID++
	sub := subscriber{id: s.nextID, ch: make(chan *model.Room, 8)}
	s.subs[code] = append(s.subs[code], sub)

	cancel := func() {
		s.mtx.Lock()
		defer s.mtx.Unlock()
		subs := s.subs[code]
		for i, candidate := range subs {
			if candidate.id == sub.id {
				s.subs[code] = append(subs[:i], subs[i+1:]...)
				close(candidate.ch)
				return
			}
		}
	}

	return sub.ch, cancel, nil
}

// notify pushes a snapshot to every subscriber. A slow subscriber loses
// intermediate snapshots, never the latest one.
func (s *Store) notify(room *model.Room) {
	// Sends stay under the read lock so a concurrent cancel cannot close
	// a channel mid-send; they never block, so the lock is held briefly.
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, sub := range s.subs[room.Code] {
		for {
			select {
			case sub.ch <- room.Clone():
			default:
				select {
				case <-sub.ch:
				default:
				}
				continue
			}
			break
		}
	}
}

// persist snapshots the room to bbolt. Persistence failure is logged, not
// propagated: the live document remains authoritative.
func (s *Store) persist(ctx context.Context, room *model.Room) {
	if s.sDB == nil {
		return
	}

	bytes, err := json.Marshal(room)
	if err != nil {
		logging.FromContext(ctx).Named("roomstore").Errorf("marshal room %s: %v", room.Code, err)
		return
	}

	if err := s.sDB.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		return b.Put([]byte(room.Code), bytes)
	}); err != nil {
		logging.FromContext(ctx).Named("roomstore").Errorf("persist room %s: %v", room.Code, err)
	}
}
