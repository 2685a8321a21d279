package scoringservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/scramble-live/scoreboard/pkg/apperrors"

	scoringdomain "github.com/scramble-live/scoreboard/app/modules/scoring/domain"
	scoringevents "github.com/scramble-live/scoreboard/app/modules/scoring/events"
	scoringdb "github.com/scramble-live/scoreboard/app/modules/scoring/infrastructure/repositories"
)

// SubmitHoleScore records a stroke count on behalf of the team holding the
// access token. The full gate set applies: team unlocked, event live and
// unlocked, hole in range and configured.
func (s *ScoringService) SubmitHoleScore(ctx context.Context, accessToken string, holeNumber, strokes int) (ScoresMap, error) {
	return withTelemetry(s, ctx, "SubmitHoleScore", fmt.Sprintf("hole:%d", holeNumber), func(ctx context.Context) (ScoresMap, error) {
		if err := scoringdomain.ValidateStrokes(strokes); err != nil {
			return nil, err
		}

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

		if err := scoringdomain.CheckTeamWrite(team.State(), event.State()); err != nil {
			return nil, err
		}
		if err := scoringdomain.ValidateHoleNumber(holeNumber, event.State()); err != nil {
			return nil, err
		}

		// A par must exist for the hole: a reconfigured event must never
		// accept scores on holes it no longer defines.
		holes, err := s.repo.GetEventHoles(ctx, event.ID)
		if err != nil {
			return nil, err
		}
		if !holeConfigured(holes, holeNumber) {
			return nil, apperrors.Validation("Hole not configured for this event")
		}

		recordedAt := s.now().UTC()
		score := &scoringdb.HoleScore{
			ID:         scoringdomain.NewID("hs_"),
			TeamID:     team.ID,
			HoleNumber: holeNumber,
			Strokes:    strokes,
			UpdatedAt:  recordedAt,
			UpdatedBy:  string(scoringdomain.WriterTeam),
		}
		if err := s.repo.UpsertHoleScore(ctx, score); err != nil {
			return nil, err
		}
		s.metrics.RecordScoreWrite(ctx, string(scoringdomain.WriterTeam))

		s.publish(ctx, scoringevents.ScoreRecorded, scoringevents.ScoreRecordedPayload{
			EventID:    event.ID,
			TeamID:     team.ID,
			HoleNumber: holeNumber,
			Strokes:    strokes,
			UpdatedBy:  string(scoringdomain.WriterTeam),
			RecordedAt: recordedAt,
		})

		scores, err := s.repo.GetTeamScores(ctx, team.ID)
		if err != nil {
			return nil, err
		}
		return toScoresMap(scores), nil
	})
}

// AdminOverrideScore writes a ledger row bypassing every lock and status
// gate. This is the designed escape hatch for correcting data after the
// fact; only existence and range checks apply.
func (s *ScoringService) AdminOverrideScore(ctx context.Context, eventID, teamID string, holeNumber, strokes int) (*OverrideResult, error) {
	return withTelemetry(s, ctx, "AdminOverrideScore", teamID, func(ctx context.Context) (*OverrideResult, error) {
		if err := scoringdomain.ValidateStrokes(strokes); err != nil {
			return nil, err
		}

		if _, err := s.repo.GetTeamInEvent(ctx, teamID, eventID); err != nil {
			if errors.Is(err, scoringdb.ErrNotFound) {
				return nil, apperrors.NotFound("Team not found in this event")
			}
			return nil, err
		}

		event, err := s.repo.GetEvent(ctx, eventID)
		if err != nil {
			if errors.Is(err, scoringdb.ErrNotFound) {
				return nil, apperrors.NotFound("Event not found")
			}
			return nil, err
		}

		if err := scoringdomain.ValidateHoleNumber(holeNumber, event.State()); err != nil {
			return nil, err
		}

		recordedAt := s.now().UTC()
		score := &scoringdb.HoleScore{
			ID:         scoringdomain.NewID("hs_"),
			TeamID:     teamID,
			HoleNumber: holeNumber,
			Strokes:    strokes,
			UpdatedAt:  recordedAt,
			UpdatedBy:  string(scoringdomain.WriterAdmin),
		}
		if err := s.repo.UpsertHoleScore(ctx, score); err != nil {
			return nil, err
		}
		s.metrics.RecordScoreWrite(ctx, string(scoringdomain.WriterAdmin))

		s.publish(ctx, scoringevents.ScoreRecorded, scoringevents.ScoreRecordedPayload{
			EventID:    eventID,
			TeamID:     teamID,
			HoleNumber: holeNumber,
			Strokes:    strokes,
			UpdatedBy:  string(scoringdomain.WriterAdmin),
			RecordedAt: recordedAt,
		})

		return &OverrideResult{
			HoleNumber: holeNumber,
			Strokes:    strokes,
			UpdatedBy:  string(scoringdomain.WriterAdmin),
		}, nil
	})
}

func holeConfigured(holes []scoringdb.EventHole, holeNumber int) bool {
	for _, h := range holes {
		if h.HoleNumber == holeNumber {
			return true
		}
	}
	return false
}

func toScoresMap(scores []scoringdb.HoleScore) ScoresMap {
	out := make(ScoresMap, len(scores))
	for _, s := range scores {
		out[s.HoleNumber] = ScoreEntryView{Strokes: s.Strokes, UpdatedAt: s.UpdatedAt}
	}
	return out
}
