package scoringservice

import (
	"context"
	"errors"

	"github.com/scramble-live/scoreboard/pkg/apperrors"

	scoringdb "github.com/scramble-live/scoreboard/app/modules/scoring/infrastructure/repositories"
)

// GetScoreContext returns everything a scoring client needs to render its
// current state: team, event, pars, and the team's score map.
func (s *ScoringService) GetScoreContext(ctx context.Context, accessToken string) (*ScoreContextView, error) {
	return withTelemetry(s, ctx, "GetScoreContext", "", func(ctx context.Context) (*ScoreContextView, error) {
		team, err := s.repo.GetTeamByToken(ctx, accessToken)
		if err != nil {
			if errors.Is(err, scoringdb.ErrNotFound) {
				return nil, apperrors.NotFound("Invalid access token")
			}
			return nil, err
		}

		event, err := s.repo.GetEvent(ctx, team.EventID)
		if err != nil {
			if errors.Is(err, scoringdb.ErrNotFound) {
				return nil, apperrors.NotFound("Event not found")
			}
			return nil, err
		}

		holes, err := s.repo.GetEventHoles(ctx, event.ID)
		if err != nil {
			return nil, err
		}
		pars := make(map[int]int, len(holes))
		for _, h := range holes {
			pars[h.HoleNumber] = h.Par
		}

		scores, err := s.repo.GetTeamScores(ctx, team.ID)
		if err != nil {
			return nil, err
		}

		players := team.Players
		if players == nil {
			players = []string{}
		}

		return &ScoreContextView{
			Team: TeamContextView{
				ID:       team.ID,
				TeamName: team.TeamName,
				Players:  players,
				LockedAt: team.LockedAt,
			},
			Event: EventContextView{
				ID:       event.ID,
				Name:     event.Name,
				Holes:    event.Holes,
				Status:   event.Status,
				LockedAt: event.LockedAt,
				Date:     event.Date,
			},
			Pars:   pars,
			Scores: toScoresMap(scores),
		}, nil
	})
}
