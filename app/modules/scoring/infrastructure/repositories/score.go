package scoringdb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// UpsertHoleScore writes the ledger row for (team_id, hole_number). The
// conflict clause makes the whole write a single atomic statement: concurrent
// writers to the same pair resolve last-write-wins by completion order. No
// revision counter is kept; that race is accepted and documented behavior.
func (db *ScoringDBImpl) UpsertHoleScore(ctx context.Context, score *HoleScore) error {
	_, err := db.DB.NewInsert().
		Model(score).
		On("CONFLICT (team_id, hole_number) DO UPDATE").
		Set("strokes = EXCLUDED.strokes, updated_at = EXCLUDED.updated_at, updated_by = EXCLUDED.updated_by").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert score for team %s hole %d: %w", score.TeamID, score.HoleNumber, err)
	}
	return nil
}

func (db *ScoringDBImpl) GetTeamScores(ctx context.Context, teamID string) ([]HoleScore, error) {
	var scores []HoleScore
	err := db.DB.NewSelect().
		Model(&scores).
		Where("team_id = ?", teamID).
		Order("hole_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scores for team %s: %w", teamID, err)
	}
	return scores, nil
}

func (db *ScoringDBImpl) GetScoresForTeams(ctx context.Context, teamIDs []string) ([]HoleScore, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}
	var scores []HoleScore
	err := db.DB.NewSelect().
		Model(&scores).
		Where("team_id IN (?)", bun.In(teamIDs)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scores for %d teams: %w", len(teamIDs), err)
	}
	return scores, nil
}

func (db *ScoringDBImpl) CountTeamScores(ctx context.Context, teamID string) (int, error) {
	count, err := db.DB.NewSelect().
		Model((*HoleScore)(nil)).
		Where("team_id = ?", teamID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count scores for team %s: %w", teamID, err)
	}
	return count, nil
}
