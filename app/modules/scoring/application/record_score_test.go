package scoringservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scramble-live/scoreboard/pkg/apperrors"

	scoringevents "github.com/scramble-live/scoreboard/app/modules/scoring/events"
)

func requireAppError(t *testing.T, err error, code string) *apperrors.AppError {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code)
	return appErr
}

func TestSubmitHoleScoreWritesLedger(t *testing.T) {
	repo := NewFakeRepository()
	_, teamID, token := seedLiveEvent(repo)
	svc, bus := newTestService(repo)

	scores, err := svc.SubmitHoleScore(context.Background(), token, 3, 5)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 5, scores[3].Strokes)

	// Writing a different value for the same hole overwrites in place.
	svc.now = func() time.Time { return testBase.Add(time.Minute) }
	scores, err = svc.SubmitHoleScore(context.Background(), token, 3, 4)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 4, scores[3].Strokes)

	require.Len(t, repo.Scores[teamID], 1)
	entry := repo.Scores[teamID][3]
	assert.Equal(t, 4, entry.Strokes)
	assert.Equal(t, "team", entry.UpdatedBy)

	assert.Equal(t, []string{scoringevents.ScoreRecorded, scoringevents.ScoreRecorded}, bus.Topics())
}

func TestSubmitHoleScoreIdempotentExceptTimestamp(t *testing.T) {
	repo := NewFakeRepository()
	teamID := func() string { _, id, _ := seedLiveEvent(repo); return id }()
	svc, _ := newTestService(repo)

	token := repo.Teams[teamID].AccessToken

	_, err := svc.SubmitHoleScore(context.Background(), token, 1, 4)
	require.NoError(t, err)
	first := *repo.Scores[teamID][1]

	svc.now = func() time.Time { return testBase.Add(30 * time.Second) }
	_, err = svc.SubmitHoleScore(context.Background(), token, 1, 4)
	require.NoError(t, err)
	second := *repo.Scores[teamID][1]

	assert.Equal(t, first.Strokes, second.Strokes)
	assert.Equal(t, first.UpdatedBy, second.UpdatedBy)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt), "updated_at should advance")
}

func TestSubmitHoleScoreGates(t *testing.T) {
	now := testBase

	tests := []struct {
		name     string
		mutate   func(repo *FakeRepository, teamID, eventID string)
		hole     int
		strokes  int
		wantCode string
	}{
		{
			name:     "invalid token",
			mutate:   func(repo *FakeRepository, teamID, _ string) { repo.Teams[teamID].AccessToken = "rotated" },
			hole:     1,
			strokes:  4,
			wantCode: apperrors.CodeNotFound,
		},
		{
			name:     "team locked",
			mutate:   func(repo *FakeRepository, teamID, _ string) { repo.Teams[teamID].LockedAt = &now },
			hole:     1,
			strokes:  4,
			wantCode: apperrors.CodeLocked,
		},
		{
			name: "event completed",
			mutate: func(repo *FakeRepository, _, eventID string) {
				repo.Events[eventID].Status = "completed"
				repo.Events[eventID].LockedAt = &now
			},
			hole:     1,
			strokes:  4,
			wantCode: apperrors.CodeLocked,
		},
		{
			name:     "event draft",
			mutate:   func(repo *FakeRepository, _, eventID string) { repo.Events[eventID].Status = "draft" },
			hole:     1,
			strokes:  4,
			wantCode: apperrors.CodeLocked,
		},
		{
			name:     "hole out of range",
			mutate:   func(*FakeRepository, string, string) {},
			hole:     10,
			strokes:  4,
			wantCode: apperrors.CodeValidation,
		},
		{
			name: "hole not configured",
			mutate: func(repo *FakeRepository, _, eventID string) {
				repo.Holes[eventID] = repo.Holes[eventID][:8] // hole 9 dropped
			},
			hole:     9,
			strokes:  4,
			wantCode: apperrors.CodeValidation,
		},
		{
			name:     "strokes too high",
			mutate:   func(*FakeRepository, string, string) {},
			hole:     1,
			strokes:  21,
			wantCode: apperrors.CodeValidation,
		},
		{
			name:     "strokes too low",
			mutate:   func(*FakeRepository, string, string) {},
			hole:     1,
			strokes:  0,
			wantCode: apperrors.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeRepository()
			eventID, teamID, token := seedLiveEvent(repo)
			svc, bus := newTestService(repo)

			tt.mutate(repo, teamID, eventID)

			_, err := svc.SubmitHoleScore(context.Background(), token, tt.hole, tt.strokes)
			requireAppError(t, err, tt.wantCode)
			assert.Empty(t, repo.Scores[teamID], "rejected write must not touch the ledger")
			assert.Empty(t, bus.Topics(), "rejected write must not publish")
		})
	}
}

func TestAdminOverrideBypassesLocks(t *testing.T) {
	repo := NewFakeRepository()
	eventID, teamID, _ := seedLiveEvent(repo)
	svc, bus := newTestService(repo)

	// Lock everything: team submitted, event completed.
	lockTime := testBase.Add(-time.Hour)
	repo.Teams[teamID].LockedAt = &lockTime
	repo.Events[eventID].Status = "completed"
	repo.Events[eventID].LockedAt = &lockTime

	result, err := svc.AdminOverrideScore(context.Background(), eventID, teamID, 7, 6)
	require.NoError(t, err)
	assert.Equal(t, 7, result.HoleNumber)
	assert.Equal(t, 6, result.Strokes)
	assert.Equal(t, "admin", result.UpdatedBy)

	entry := repo.Scores[teamID][7]
	require.NotNil(t, entry)
	assert.Equal(t, "admin", entry.UpdatedBy)

	// Team lock state is untouched by the override.
	assert.Equal(t, &lockTime, repo.Teams[teamID].LockedAt)

	assert.Contains(t, bus.Topics(), scoringevents.ScoreRecorded)
}

func TestAdminOverrideChecks(t *testing.T) {
	repo := NewFakeRepository()
	eventID, teamID, _ := seedLiveEvent(repo)
	svc, _ := newTestService(repo)

	t.Run("unknown team", func(t *testing.T) {
		_, err := svc.AdminOverrideScore(context.Background(), eventID, "tm_missing", 1, 4)
		requireAppError(t, err, apperrors.CodeNotFound)
	})

	t.Run("team in another event", func(t *testing.T) {
		_, err := svc.AdminOverrideScore(context.Background(), "evt_other", teamID, 1, 4)
		requireAppError(t, err, apperrors.CodeNotFound)
	})

	t.Run("hole out of range", func(t *testing.T) {
		_, err := svc.AdminOverrideScore(context.Background(), eventID, teamID, 12, 4)
		requireAppError(t, err, apperrors.CodeValidation)
	})

	t.Run("strokes out of range", func(t *testing.T) {
		_, err := svc.AdminOverrideScore(context.Background(), eventID, teamID, 1, 40)
		requireAppError(t, err, apperrors.CodeValidation)
	})
}
