package scoringdb

import (
	"context"
	"time"
)

// Repository is the storage surface the scoring service depends on.
type Repository interface {
	// Lookups
	GetOrganization(ctx context.Context, orgID string) (*Organization, error)
	GetOrganizationBySlug(ctx context.Context, slug string) (*Organization, error)
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	GetEventByOrgAndSlug(ctx context.Context, orgID, slug string) (*Event, error)
	GetEventHoles(ctx context.Context, eventID string) ([]EventHole, error)
	GetTeamByToken(ctx context.Context, accessToken string) (*Team, error)
	GetTeamInEvent(ctx context.Context, teamID, eventID string) (*Team, error)
	ListTeams(ctx context.Context, eventID string) ([]Team, error)

	// Event transitions
	UpdateEventStatus(ctx context.Context, eventID, status string, lockedAt *time.Time) error
	SetLeaderboardVisibility(ctx context.Context, eventID string, visible bool) error

	// Team transitions
	CreateTeam(ctx context.Context, team *Team) error
	CreateTeams(ctx context.Context, teams []*Team) error
	SetTeamLock(ctx context.Context, teamID string, lockedAt *time.Time) error

	// Ledger
	UpsertHoleScore(ctx context.Context, score *HoleScore) error
	GetTeamScores(ctx context.Context, teamID string) ([]HoleScore, error)
	GetScoresForTeams(ctx context.Context, teamIDs []string) ([]HoleScore, error)
	CountTeamScores(ctx context.Context, teamID string) (int, error)
}
