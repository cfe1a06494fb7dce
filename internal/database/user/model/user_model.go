package model

import "time"

const dayLayout = "2006-01-02"

// User is the per-player aggregate document. It is rewritten on every
// saved result rather than recomputed from score history.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	TestsCompleted int           `json:"testsCompleted"`
	AvgWPM         int           `json:"avgWpm"`
	BestWPM        int           `json:"bestWpm"`
	AvgAccuracy    int           `json:"avgAccuracy"`
	TotalTime      time.Duration `json:"totalTime"`

	Streak        int    `json:"streak"`
	LongestStreak int    `json:"longestStreak"`
	LastTestDay   string `json:"lastTestDay"`
}

// ApplyResult folds one finished run into the rolling aggregates.
func (u *User) ApplyResult(wpm, accuracy int, duration time.Duration, now time.Time) {
	u.TestsCompleted++
	n := u.TestsCompleted
	u.AvgWPM = (u.AvgWPM*(n-1) + wpm) / n
	u.AvgAccuracy = (u.AvgAccuracy*(n-1) + accuracy) / n
	if wpm > u.BestWPM {
		u.BestWPM = wpm
	}
	u.TotalTime += duration
	u.bumpStreak(now)
	u.UpdatedAt = now
}

// bumpStreak keeps a daily practice streak: a second run the same day
// changes nothing, a run the day after extends, any gap resets to 1.
func (u *User) bumpStreak(now time.Time) {
	today := now.Format(dayLayout)
	switch u.LastTestDay {
	case today:
		return
	case now.AddDate(0, 0, -1).Format(dayLayout):
		u.Streak++
	default:
		u.Streak = 1
	}
	if u.Streak > u.LongestStreak {
		u.LongestStreak = u.Streak
	}
	u.LastTestDay = today
}
