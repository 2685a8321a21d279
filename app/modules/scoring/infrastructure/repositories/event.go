package scoringdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// ScoringDBImpl implements Repository on top of bun.
type ScoringDBImpl struct {
	DB *bun.DB
}

var _ Repository = (*ScoringDBImpl)(nil)

func (db *ScoringDBImpl) GetOrganization(ctx context.Context, orgID string) (*Organization, error) {
	var org Organization
	err := db.DB.NewSelect().
		Model(&org).
		Where("id = ?", orgID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch organization %s: %w", orgID, err)
	}
	return &org, nil
}

func (db *ScoringDBImpl) GetOrganizationBySlug(ctx context.Context, slug string) (*Organization, error) {
	var org Organization
	err := db.DB.NewSelect().
		Model(&org).
		Where("slug = ?", slug).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch organization %s: %w", slug, err)
	}
	return &org, nil
}

func (db *ScoringDBImpl) GetEvent(ctx context.Context, eventID string) (*Event, error) {
	var event Event
	err := db.DB.NewSelect().
		Model(&event).
		Where("id = ?", eventID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch event %s: %w", eventID, err)
	}
	return &event, nil
}

func (db *ScoringDBImpl) GetEventByOrgAndSlug(ctx context.Context, orgID, slug string) (*Event, error) {
	var event Event
	err := db.DB.NewSelect().
		Model(&event).
		Where("org_id = ?", orgID).
		Where("slug = ?", slug).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch event %s/%s: %w", orgID, slug, err)
	}
	return &event, nil
}

func (db *ScoringDBImpl) GetEventHoles(ctx context.Context, eventID string) ([]EventHole, error) {
	var holes []EventHole
	err := db.DB.NewSelect().
		Model(&holes).
		Where("event_id = ?", eventID).
		Order("hole_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holes for event %s: %w", eventID, err)
	}
	return holes, nil
}

func (db *ScoringDBImpl) UpdateEventStatus(ctx context.Context, eventID, status string, lockedAt *time.Time) error {
	res, err := db.DB.NewUpdate().
		Model((*Event)(nil)).
		Set("status = ?", status).
		Set("locked_at = ?", lockedAt).
		Where("id = ?", eventID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update status for event %s: %w", eventID, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *ScoringDBImpl) SetLeaderboardVisibility(ctx context.Context, eventID string, visible bool) error {
	res, err := db.DB.NewUpdate().
		Model((*Event)(nil)).
		Set("leaderboard_visible = ?", visible).
		Where("id = ?", eventID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update visibility for event %s: %w", eventID, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}
