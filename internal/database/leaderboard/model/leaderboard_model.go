package model

import (
	"sort"
	"time"

	"github.com/keyforge-games/keyforge/internal/textsource"
)

const Capacity = 100

type Entry struct {
	UserID     string          `json:"userID"`
	Name       string          `json:"name"`
	WPM        int             `json:"wpm"`
	Accuracy   int             `json:"accuracy"`
	Mode       textsource.Mode `json:"mode"`
	AchievedAt time.Time       `json:"achievedAt"`
}

// Board is the single global top list. One entry per player, their best.
// TotalTests and LastUpdated count every offered run, ranked or not.
type Board struct {
	Entries     []Entry   `json:"entries"`
	TotalTests  int       `json:"totalTests"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Submit offers a result to the board. A player's slower runs never
// displace their own faster one. Reports whether the ranking changed.
func (b *Board) Submit(e Entry) bool {
	b.TotalTests++
	b.LastUpdated = e.AchievedAt

	for i, cur := range b.Entries {
		if cur.UserID != e.UserID {
			continue
		}
		if e.WPM <= cur.WPM {
			return false
		}
		b.Entries[i] = e
		b.sortAndTrim()
		return true
	}

	if len(b.Entries) >= Capacity {
		last := b.Entries[len(b.Entries)-1]
		if e.WPM <= last.WPM {
			return false
		}
	}

	b.Entries = append(b.Entries, e)
	b.sortAndTrim()
	return true
}

func (b *Board) sortAndTrim() {
	sort.SliceStable(b.Entries, func(i, j int) bool {
		if b.Entries[i].WPM != b.Entries[j].WPM {
			return b.Entries[i].WPM > b.Entries[j].WPM
		}
		return b.Entries[i].AchievedAt.Before(b.Entries[j].AchievedAt)
	})
	if len(b.Entries) > Capacity {
		b.Entries = b.Entries[:Capacity]
	}
}

// Rank returns the 1-based position of a player, or 0 if absent.
func (b *Board) Rank(userID string) int {
	for i, e := range b.Entries {
		if e.UserID == userID {
			return i + 1
		}
	}
	return 0
}
