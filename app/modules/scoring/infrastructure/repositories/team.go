package scoringdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

func (db *ScoringDBImpl) GetTeamByToken(ctx context.Context, accessToken string) (*Team, error) {
	var team Team
	err := db.DB.NewSelect().
		Model(&team).
		Where("access_token = ?", accessToken).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch team by token: %w", err)
	}
	return &team, nil
}

func (db *ScoringDBImpl) GetTeamInEvent(ctx context.Context, teamID, eventID string) (*Team, error) {
	var team Team
	err := db.DB.NewSelect().
		Model(&team).
		Where("id = ?", teamID).
		Where("event_id = ?", eventID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch team %s in event %s: %w", teamID, eventID, err)
	}
	return &team, nil
}

func (db *ScoringDBImpl) ListTeams(ctx context.Context, eventID string) ([]Team, error) {
	var teams []Team
	err := db.DB.NewSelect().
		Model(&teams).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for event %s: %w", eventID, err)
	}
	return teams, nil
}

func (db *ScoringDBImpl) CreateTeam(ctx context.Context, team *Team) error {
	if _, err := db.DB.NewInsert().Model(team).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert team %s: %w", team.TeamName, err)
	}
	return nil
}

// CreateTeams inserts a whole import batch in one transaction: readers never
// observe a subset of the batch, and a storage failure rolls the batch back.
func (db *ScoringDBImpl) CreateTeams(ctx context.Context, teams []*Team) error {
	if len(teams) == 0 {
		return nil
	}
	return db.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&teams).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert team batch: %w", err)
		}
		return nil
	})
}

func (db *ScoringDBImpl) SetTeamLock(ctx context.Context, teamID string, lockedAt *time.Time) error {
	res, err := db.DB.NewUpdate().
		Model((*Team)(nil)).
		Set("locked_at = ?", lockedAt).
		Where("id = ?", teamID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update lock for team %s: %w", teamID, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}
