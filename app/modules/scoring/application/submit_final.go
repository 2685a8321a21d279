package scoringservice

import (
	"context"
	"errors"
	"time"

	"github.com/scramble-live/scoreboard/pkg/apperrors"

	scoringdomain "github.com/scramble-live/scoreboard/app/modules/scoring/domain"
	scoringevents "github.com/scramble-live/scoreboard/app/modules/scoring/events"
	scoringdb "github.com/scramble-live/scoreboard/app/modules/scoring/infrastructure/repositories"
)

// SubmitFinal locks the team's scores. Accepted only while the team is
// unlocked and every configured hole has a recorded score; the transition is
// not reversible by the team itself, only by an admin unlock.
func (s *ScoringService) SubmitFinal(ctx context.Context, accessToken string) (time.Time, error) {
	return withTelemetry(s, ctx, "SubmitFinal", "", func(ctx context.Context) (time.Time, error) {
		team, err := s.repo.GetTeamByToken(ctx, accessToken)
		if err != nil {
			if errors.Is(err, scoringdb.ErrNotFound) {
				return time.Time{}, apperrors.NotFound("Invalid access token")
			}
			return time.Time{}, err
		}

		event, err := s.repo.GetEvent(ctx, team.EventID)
		if err != nil {
			if errors.Is(err, scoringdb.ErrNotFound) {
				return time.Time{}, apperrors.NotFound("Event not found")
			}
			return time.Time{}, err
		}

		holesCompleted, err := s.repo.CountTeamScores(ctx, team.ID)
		if err != nil {
			return time.Time{}, err
		}

		if err := scoringdomain.CheckSubmitFinal(team.State(), holesCompleted, event.Holes); err != nil {
			return time.Time{}, err
		}

		lockedAt := s.now().UTC()
		if err := s.repo.SetTeamLock(ctx, team.ID, &lockedAt); err != nil {
			return time.Time{}, err
		}

		s.publish(ctx, scoringevents.TeamSubmitted, scoringevents.TeamSubmittedPayload{
			EventID:  event.ID,
			TeamID:   team.ID,
			LockedAt: lockedAt,
		})

		return lockedAt, nil
	})
}

// AdminUnlockTeam clears a team's submission lock. This is the only way a
// locked team becomes writable again.
func (s *ScoringService) AdminUnlockTeam(ctx context.Context, eventID, teamID string) error {
	_, err := withTelemetry(s, ctx, "AdminUnlockTeam", teamID, func(ctx context.Context) (struct{}, error) {
		if _, err := s.repo.GetTeamInEvent(ctx, teamID, eventID); err != nil {
			if errors.Is(err, scoringdb.ErrNotFound) {
				return struct{}{}, apperrors.NotFound("Team not found in this event")
			}
			return struct{}{}, err
		}

		if err := s.repo.SetTeamLock(ctx, teamID, nil); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	return err
}
