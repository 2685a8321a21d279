package scoringservice

import (
	"time"

	scoringdomain "github.com/scramble-live/scoreboard/app/modules/scoring/domain"
)

// ScoreEntryView is one recorded hole as rendered to a scoring client.
type ScoreEntryView struct {
	Strokes   int       `json:"strokes"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScoresMap is the full per-hole score map for one team, keyed by hole
// number. Returned from every team write so the client can refresh its
// derived totals without a second read.
type ScoresMap map[int]ScoreEntryView

// TotalsView carries course-level aggregates. Total par is disclosed even
// when the board itself is hidden.
type TotalsView struct {
	TotalPar int `json:"total_par"`
}

type OrgView struct {
	Name string `json:"name"`
}

// EventSummaryView is the event header on the public leaderboard.
type EventSummaryView struct {
	Name               string  `json:"name"`
	Date               *string `json:"date"`
	Holes              int     `json:"holes"`
	Status             string  `json:"status"`
	LeaderboardVisible bool    `json:"leaderboard_visible"`
}

// LeaderboardView is the public leaderboard payload.
type LeaderboardView struct {
	Event           EventSummaryView               `json:"event"`
	Org             *OrgView                       `json:"org,omitempty"`
	Totals          TotalsView                     `json:"totals"`
	Teams           []scoringdomain.LeaderboardRow `json:"teams"`
	Hidden          bool                           `json:"hidden"`
	RecentlyUpdated []string                       `json:"recently_updated,omitempty"`
}

type TeamContextView struct {
	ID       string     `json:"id"`
	TeamName string     `json:"team_name"`
	Players  []string   `json:"players"`
	LockedAt *time.Time `json:"locked_at"`
}

type EventContextView struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Holes    int        `json:"holes"`
	Status   string     `json:"status"`
	LockedAt *time.Time `json:"locked_at"`
	Date     *string    `json:"date"`
}

// ScoreContextView is the read model a scoring client renders from.
type ScoreContextView struct {
	Team   TeamContextView  `json:"team"`
	Event  EventContextView `json:"event"`
	Pars   map[int]int      `json:"pars"`
	Scores ScoresMap        `json:"scores"`
}

// TeamCreatedView is the response for a created team; the only moment the
// access token leaves the admin surface.
type TeamCreatedView struct {
	ID          string   `json:"id"`
	TeamName    string   `json:"team_name"`
	Players     []string `json:"players"`
	AccessToken string   `json:"access_token"`
}

type BulkCreateResult struct {
	Created []TeamCreatedView `json:"created"`
	Count   int               `json:"count"`
}

type OverrideResult struct {
	HoleNumber int    `json:"hole_number"`
	Strokes    int    `json:"strokes"`
	UpdatedBy  string `json:"updated_by"`
}

type StatusResult struct {
	Status   string     `json:"status"`
	LockedAt *time.Time `json:"locked_at"`
}

type EventHoleView struct {
	HoleNumber int `json:"hole_number"`
	Par        int `json:"par"`
}

// TeamDetailView is the admin-side team row, including the token and the
// raw per-hole strokes map.
type TeamDetailView struct {
	ID          string      `json:"id"`
	TeamName    string      `json:"team_name"`
	Players     []string    `json:"players"`
	AccessToken string      `json:"access_token"`
	LockedAt    *time.Time  `json:"locked_at"`
	CreatedAt   time.Time   `json:"created_at"`
	Scores      map[int]int `json:"scores,omitempty"`
}

type EventAdminView struct {
	ID                 string     `json:"id"`
	OrgID              string     `json:"org_id"`
	Slug               string     `json:"slug"`
	Name               string     `json:"name"`
	Date               *string    `json:"date"`
	Holes              int        `json:"holes"`
	Status             string     `json:"status"`
	LockedAt           *time.Time `json:"locked_at"`
	LeaderboardVisible bool       `json:"leaderboard_visible"`
	CreatedAt          time.Time  `json:"created_at"`
}

type OrgRefView struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// EventDetailView is the admin event read model: event, holes, and teams
// with their score maps in one payload.
type EventDetailView struct {
	Event EventAdminView   `json:"event"`
	Org   *OrgRefView      `json:"org"`
	Holes []EventHoleView  `json:"holes"`
	Teams []TeamDetailView `json:"teams"`
}
