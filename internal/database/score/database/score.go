package database

import (
	"encoding/json"
	"fmt"

	"github.com/keyforge-games/keyforge/internal/cache"
	"github.com/keyforge-games/keyforge/internal/database"
	"github.com/keyforge-games/keyforge/internal/database/score/model"
	bolt "go.etcd.io/bbolt"
)

const prefix = "score"

var ErrNotFound = fmt.Errorf("not found")

func New(db *database.DB, cache cache.Cache) *DB {
	return &DB{sDB: db, cache: cache}
}

type DB struct {
	sDB *database.DB

	cache cache.Cache
}

func (db *DB) bucketKey(userID string) []byte {
	return []byte(prefix + userID)
}

func (db *DB) cacheKey(userID string) string {
	return prefix + userID
}

func (db *DB) FetchByUser(userID string) ([]model.Score, error) {
	var list []model.Score
	if db.cache != nil {
		v, ok := db.cache.Get(db.cacheKey(userID))
		if ok {
			return v.([]model.Score), nil
		}
	}

	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(db.bucketKey(userID))
		if b == nil {
			return ErrNotFound
		}

		if err := b.ForEach(func(k, v []byte) error {
			var score model.Score
			if err := json.Unmarshal(v, &score); err != nil {
				return fmt.Errorf("json unmarshal error, %w", err)
			}
			list = append(list, score)
			return nil
		}); err != nil {
			return fmt.Errorf("bucket for each: %w", err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("view transaction error: %w", err)
	}

	if db.cache != nil {
		db.cache.Add(db.cacheKey(userID), list)
	}

	return list, nil
}

func (db *DB) Add(m model.Score) error {
	tx, err := db.sDB.DB.Begin(true)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	defer tx.Rollback() //nolint

	b := tx.Bucket(db.bucketKey(m.UserID))
	if b == nil {
		bs, err := tx.CreateBucket(db.bucketKey(m.UserID))
		if err != nil {
			return fmt.Errorf("can not create bucket %s: %w", m.UserID, err)
		}
		b = bs
	}

	binaryID, err := m.ID.MarshalBinary()
	if err != nil {
		return fmt.Errorf("uuid binary: %w", err)
	}

	bytes, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if err := b.Put(binaryID, bytes); err != nil {
		return fmt.Errorf("put to bucket error: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	if db.cache != nil {
		db.cache.Delete(db.cacheKey(m.UserID))
	}

	return nil
}
