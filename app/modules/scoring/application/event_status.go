package scoringservice

import (
	"context"
	"errors"

	"github.com/scramble-live/scoreboard/pkg/apperrors"

	scoringdomain "github.com/scramble-live/scoreboard/app/modules/scoring/domain"
	scoringdb "github.com/scramble-live/scoreboard/app/modules/scoring/infrastructure/repositories"
)

// SetEventStatus transitions the event lifecycle. Entering completed stamps
// the event lock; any other status clears it, so completed -> live is the
// explicit reopen path.
func (s *ScoringService) SetEventStatus(ctx context.Context, eventID, status string) (*StatusResult, error) {
	return withTelemetry(s, ctx, "SetEventStatus", eventID, func(ctx context.Context) (*StatusResult, error) {
		newStatus := scoringdomain.EventStatus(status)
		if !newStatus.Valid() {
			return nil, apperrors.Validation("status must be one of: draft, live, completed")
		}

		if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
			if errors.Is(err, scoringdb.ErrNotFound) {
				return nil, apperrors.NotFound("Event not found")
			}
			return nil, err
		}

		lockedAt := scoringdomain.LockedAtForStatus(newStatus, s.now().UTC())
		if err := s.repo.UpdateEventStatus(ctx, eventID, string(newStatus), lockedAt); err != nil {
			return nil, err
		}

		return &StatusResult{Status: string(newStatus), LockedAt: lockedAt}, nil
	})
}

// SetLeaderboardVisibility toggles the public board, independent of event
// status.
func (s *ScoringService) SetLeaderboardVisibility(ctx context.Context, eventID string, visible bool) error {
	_, err := withTelemetry(s, ctx, "SetLeaderboardVisibility", eventID, func(ctx context.Context) (struct{}, error) {
		if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
			if errors.Is(err, scoringdb.ErrNotFound) {
				return struct{}{}, apperrors.NotFound("Event not found")
			}
			return struct{}{}, err
		}

		if err := s.repo.SetLeaderboardVisibility(ctx, eventID, visible); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	return err
}
