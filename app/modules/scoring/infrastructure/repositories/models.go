package scoringdb

import (
	"time"

	"github.com/uptrace/bun"

	scoringdomain "github.com/scramble-live/scoreboard/app/modules/scoring/domain"
)

// Organization is a read-only lookup row for the public leaderboard routes.
// Org management itself lives outside this service.
type Organization struct {
	bun.BaseModel `bun:"table:organizations,alias:o"`

	ID   string `bun:"id,pk"`
	Slug string `bun:"slug,notnull,unique"`
	Name string `bun:"name,notnull"`
}

// Event holds the per-event configuration the scoring core gates on.
type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID                 string     `bun:"id,pk"`
	OrgID              string     `bun:"org_id,notnull"`
	Slug               string     `bun:"slug,notnull"`
	Name               string     `bun:"name,notnull"`
	Date               *string    `bun:"date"`
	Holes              int        `bun:"holes,notnull"`
	Status             string     `bun:"status,notnull,default:'draft'"`
	LockedAt           *time.Time `bun:"locked_at"`
	LeaderboardVisible bool       `bun:"leaderboard_visible,notnull,default:true"`
	CreatedAt          time.Time  `bun:"created_at,notnull,default:current_timestamp"`
}

// State converts the row to the domain snapshot gate checks operate on.
func (e *Event) State() scoringdomain.EventState {
	return scoringdomain.EventState{
		ID:                 e.ID,
		Holes:              e.Holes,
		Status:             scoringdomain.EventStatus(e.Status),
		LockedAt:           e.LockedAt,
		LeaderboardVisible: e.LeaderboardVisible,
	}
}

// EventHole maps a hole number to its par for one event. Immutable after
// event creation; copied from a course template outside this service.
type EventHole struct {
	bun.BaseModel `bun:"table:event_holes,alias:eh"`

	ID         string `bun:"id,pk"`
	EventID    string `bun:"event_id,notnull"`
	HoleNumber int    `bun:"hole_number,notnull"`
	Par        int    `bun:"par,notnull"`
}

// Team is a scoring unit. AccessToken is the team's only credential.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:t"`

	ID          string     `bun:"id,pk"`
	EventID     string     `bun:"event_id,notnull"`
	TeamName    string     `bun:"team_name,notnull"`
	Players     []string   `bun:"players,type:jsonb"`
	AccessToken string     `bun:"access_token,notnull,unique"`
	LockedAt    *time.Time `bun:"locked_at"`
	CreatedAt   time.Time  `bun:"created_at,notnull,default:current_timestamp"`
}

// State converts the row to the domain snapshot.
func (t *Team) State() scoringdomain.TeamState {
	return scoringdomain.TeamState{
		ID:       t.ID,
		EventID:  t.EventID,
		Name:     t.TeamName,
		LockedAt: t.LockedAt,
	}
}

// HoleScore is the ledger row: one per (team, hole), updated in place,
// never deleted.
type HoleScore struct {
	bun.BaseModel `bun:"table:hole_scores,alias:hs"`

	ID         string    `bun:"id,pk"`
	TeamID     string    `bun:"team_id,notnull"`
	HoleNumber int       `bun:"hole_number,notnull"`
	Strokes    int       `bun:"strokes,notnull"`
	UpdatedAt  time.Time `bun:"updated_at,notnull"`
	UpdatedBy  string    `bun:"updated_by,notnull"`
}

// Entry converts the row to the domain score entry.
func (hs *HoleScore) Entry() scoringdomain.HoleScoreEntry {
	return scoringdomain.HoleScoreEntry{
		HoleNumber: hs.HoleNumber,
		Strokes:    hs.Strokes,
		UpdatedAt:  hs.UpdatedAt,
	}
}
