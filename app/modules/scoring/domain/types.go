package scoringdomain

import "time"

// EventStatus is the event lifecycle state.
type EventStatus string

const (
	StatusDraft     EventStatus = "draft"
	StatusLive      EventStatus = "live"
	StatusCompleted EventStatus = "completed"
)

// Valid reports whether s is a known status value.
func (s EventStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusLive, StatusCompleted:
		return true
	}
	return false
}

// Writer identifies who recorded a hole score.
type Writer string

const (
	WriterTeam  Writer = "team"
	WriterAdmin Writer = "admin"
)

const (
	MinStrokes = 1
	MaxStrokes = 20
)

// EventState is the event snapshot the gate functions and ranking engine
// operate on. Domain functions never reach back into storage.
type EventState struct {
	ID                 string
	Holes              int
	Status             EventStatus
	LockedAt           *time.Time
	LeaderboardVisible bool
}

// TeamState is the team snapshot used by gate checks and ranking.
type TeamState struct {
	ID       string
	EventID  string
	Name     string
	LockedAt *time.Time
}

// HoleScoreEntry is one recorded hole for a team.
type HoleScoreEntry struct {
	HoleNumber int
	Strokes    int
	UpdatedAt  time.Time
}
