package model

import (
	"testing"
	"time"

	"github.com/keyforge-games/keyforge/internal/textsource"
)

func sample() *Room {
	return &Room{
		Code:   "ABC123",
		HostID: "a",
		Players: map[string]Player{
			"a": {ID: "a", JoinedAt: time.Unix(1, 0)},
			"b": {ID: "b", JoinedAt: time.Unix(2, 0)},
		},
		Status:    StatusWaiting,
		Mode:      textsource.ModeFixed,
		CreatedAt: time.Now(),
	}
}

func TestValidateRejectsBadCode(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"", "abc123", "ABC12", "ABC1234", "ABC 12"} {
		r := sample()
		r.Code = code
		if err := r.Validate(); err == nil {
			t.Errorf("code %q passed validation", code)
		}
	}

	if err := sample().Validate(); err != nil {
		t.Fatalf("valid room rejected: %v", err)
	}
}

func TestPlayersInJoinOrder(t *testing.T) {
	t.Parallel()

	r := sample()
	r.Players["c"] = Player{ID: "c", JoinedAt: time.Unix(0, 0)}

	ordered := r.PlayersInJoinOrder()
	if len(ordered) != 3 {
		t.Fatalf("len = %d", len(ordered))
	}
	if ordered[0].ID != "c" || ordered[1].ID != "a" || ordered[2].ID != "b" {
		t.Errorf("order = %s %s %s", ordered[0].ID, ordered[1].ID, ordered[2].ID)
	}
}

func TestWinnerTieGoesToEarlierJoiner(t *testing.T) {
	t.Parallel()

	r := sample()
	pa := r.Players["a"]
	pa.Completed = true
	pa.WPM = 70
	r.Players["a"] = pa

	pb := r.Players["b"]
	pb.Completed = true
	pb.WPM = 70
	r.Players["b"] = pb

	if !r.AllCompleted() {
		t.Fatal("all players completed")
	}
	w, ok := r.Winner()
	if !ok || w.ID != "a" {
		t.Fatalf("winner = %v %v, want a", w.ID, ok)
	}
}

func TestAllCompletedFalseForEmptyRoom(t *testing.T) {
	t.Parallel()

	r := sample()
	r.Players = map[string]Player{}
	if r.AllCompleted() {
		t.Fatal("empty room cannot be all-completed")
	}
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()

	r := sample()
	r.TextIndices = []int{1, 2, 3}
	clone := r.Clone()

	clone.Players["z"] = Player{ID: "z"}
	clone.TextIndices[0] = 99

	if _, ok := r.Players["z"]; ok {
		t.Error("player map shared between clone and original")
	}
	if r.TextIndices[0] == 99 {
		t.Error("text indices shared between clone and original")
	}
}
