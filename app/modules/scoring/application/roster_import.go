package scoringservice

import (
	"context"
	"errors"
	"strings"

	"github.com/scramble-live/scoreboard/pkg/apperrors"

	scoringdomain "github.com/scramble-live/scoreboard/app/modules/scoring/domain"
	scoringdb "github.com/scramble-live/scoreboard/app/modules/scoring/infrastructure/repositories"
)

// CreateTeam registers a single team with a freshly generated access token.
func (s *ScoringService) CreateTeam(ctx context.Context, eventID, teamName string, players []string) (*TeamCreatedView, error) {
	return withTelemetry(s, ctx, "CreateTeam", eventID, func(ctx context.Context) (*TeamCreatedView, error) {
		if strings.TrimSpace(teamName) == "" {
			return nil, apperrors.Validation("team_name required")
		}

		if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
			if errors.Is(err, scoringdb.ErrNotFound) {
				return nil, apperrors.NotFound("Event not found")
			}
			return nil, err
		}

		team := &scoringdb.Team{
			ID:          scoringdomain.NewID("tm_"),
			EventID:     eventID,
			TeamName:    teamName,
			Players:     players,
			AccessToken: scoringdomain.NewAccessToken(),
			CreatedAt:   s.now().UTC(),
		}
		if err := s.repo.CreateTeam(ctx, team); err != nil {
			return nil, err
		}

		if players == nil {
			players = []string{}
		}
		return &TeamCreatedView{
			ID:          team.ID,
			TeamName:    team.TeamName,
			Players:     players,
			AccessToken: team.AccessToken,
		}, nil
	})
}

// BulkCreateTeams imports a newline-delimited roster. Malformed lines are
// skipped, never fatal; the surviving rows are inserted as one atomic batch,
// so a storage failure imports nothing.
func (s *ScoringService) BulkCreateTeams(ctx context.Context, eventID, rows string) (*BulkCreateResult, error) {
	return withTelemetry(s, ctx, "BulkCreateTeams", eventID, func(ctx context.Context) (*BulkCreateResult, error) {
		if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
			if errors.Is(err, scoringdb.ErrNotFound) {
				return nil, apperrors.NotFound("Event not found")
			}
			return nil, err
		}

		entries := scoringdomain.ParseRoster(rows)
		if len(entries) == 0 {
			return nil, apperrors.Validation("No valid rows found")
		}

		createdAt := s.now().UTC()
		teams := make([]*scoringdb.Team, 0, len(entries))
		created := make([]TeamCreatedView, 0, len(entries))
		for _, entry := range entries {
			team := &scoringdb.Team{
				ID:          scoringdomain.NewID("tm_"),
				EventID:     eventID,
				TeamName:    entry.TeamName,
				Players:     entry.Players,
				AccessToken: scoringdomain.NewAccessToken(),
				CreatedAt:   createdAt,
			}
			teams = append(teams, team)
			created = append(created, TeamCreatedView{
				ID:          team.ID,
				TeamName:    team.TeamName,
				Players:     entry.Players,
				AccessToken: team.AccessToken,
			})
		}

		if err := s.repo.CreateTeams(ctx, teams); err != nil {
			return nil, err
		}

		return &BulkCreateResult{Created: created, Count: len(created)}, nil
	})
}

// ListTeams returns the admin team listing (tokens included).
func (s *ScoringService) ListTeams(ctx context.Context, eventID string) ([]TeamDetailView, error) {
	return withTelemetry(s, ctx, "ListTeams", eventID, func(ctx context.Context) ([]TeamDetailView, error) {
		teams, err := s.repo.ListTeams(ctx, eventID)
		if err != nil {
			return nil, err
		}

		out := make([]TeamDetailView, 0, len(teams))
		for _, t := range teams {
			out = append(out, teamDetail(t, nil))
		}
		return out, nil
	})
}

func teamDetail(t scoringdb.Team, scores map[int]int) TeamDetailView {
	players := t.Players
	if players == nil {
		players = []string{}
	}
	return TeamDetailView{
		ID:          t.ID,
		TeamName:    t.TeamName,
		Players:     players,
		AccessToken: t.AccessToken,
		LockedAt:    t.LockedAt,
		CreatedAt:   t.CreatedAt,
		Scores:      scores,
	}
}
