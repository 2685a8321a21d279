package scoringservice

import (
	"context"
	"time"
)

// Service is the scoring application surface the HTTP layer depends on.
type Service interface {
	// Self-service (access-token) path
	SubmitHoleScore(ctx context.Context, accessToken string, holeNumber, strokes int) (ScoresMap, error)
	SubmitFinal(ctx context.Context, accessToken string) (time.Time, error)
	GetScoreContext(ctx context.Context, accessToken string) (*ScoreContextView, error)

	// Admin path
	AdminOverrideScore(ctx context.Context, eventID, teamID string, holeNumber, strokes int) (*OverrideResult, error)
	AdminUnlockTeam(ctx context.Context, eventID, teamID string) error
	SetEventStatus(ctx context.Context, eventID, status string) (*StatusResult, error)
	SetLeaderboardVisibility(ctx context.Context, eventID string, visible bool) error
	CreateTeam(ctx context.Context, eventID, teamName string, players []string) (*TeamCreatedView, error)
	BulkCreateTeams(ctx context.Context, eventID, rows string) (*BulkCreateResult, error)
	ListTeams(ctx context.Context, eventID string) ([]TeamDetailView, error)
	GetEventDetail(ctx context.Context, eventID string) (*EventDetailView, error)
	ExportLeaderboardXLSX(ctx context.Context, eventID string) ([]byte, error)

	// Public path
	GetLeaderboard(ctx context.Context, orgSlug, eventSlug string) (*LeaderboardView, error)
}
