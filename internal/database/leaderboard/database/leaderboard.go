package database

import (
	"encoding/json"
	"fmt"

	"github.com/keyforge-games/keyforge/internal/database"
	"github.com/keyforge-games/keyforge/internal/database/leaderboard/model"
	bolt "go.etcd.io/bbolt"
)

const (
	bucket = "leaderboard"
	key    = "global"
)

func New(db *database.DB) *DB {
	return &DB{sDB: db}
}

type DB struct {
	sDB *database.DB
}

// Fetch reads the board; a missing document is an empty board.
func (db *DB) Fetch() (model.Board, error) {
	var board model.Board
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		bytes := b.Get([]byte(key))
		if len(bytes) == 0 {
			return nil
		}
		if err := json.Unmarshal(bytes, &board); err != nil {
			return fmt.Errorf("json unmarshal error, %w", err)
		}
		return nil
	}); err != nil {
		return board, fmt.Errorf("view transaction error: %w", err)
	}
	return board, nil
}

// Submit folds an entry into the board inside one write transaction, so
// concurrent submissions cannot clobber each other's read.
func (db *DB) Submit(e model.Entry) (model.Board, error) {
	var board model.Board
	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}

		if raw := b.Get([]byte(key)); len(raw) > 0 {
			if err := json.Unmarshal(raw, &board); err != nil {
				return fmt.Errorf("json unmarshal error, %w", err)
			}
		}

		// The run counter and timestamp move even when the ranking does
		// not, so every submit is written back.
		board.Submit(e)

		bytes, err := json.Marshal(board)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		if err := b.Put([]byte(key), bytes); err != nil {
			return fmt.Errorf("put to bucket error: %w", err)
		}
		return nil
	}); err != nil {
		return board, fmt.Errorf("update transaction error: %w", err)
	}
	return board, nil
}
