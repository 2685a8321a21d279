package scoringdomain

import (
	"errors"
	"testing"
	"time"

	"github.com/scramble-live/scoreboard/pkg/apperrors"
)

func appCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperrors.AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func TestCheckTeamWrite(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		team     TeamState
		event    EventState
		wantCode string
		wantMsg  string
	}{
		{
			name:  "unlocked team, live event",
			team:  TeamState{ID: "tm_1"},
			event: EventState{ID: "evt_1", Holes: 18, Status: StatusLive},
		},
		{
			name:     "team locked",
			team:     TeamState{ID: "tm_1", LockedAt: &now},
			event:    EventState{ID: "evt_1", Holes: 18, Status: StatusLive},
			wantCode: apperrors.CodeLocked,
			wantMsg:  "Your scores have been submitted and are locked",
		},
		{
			name:     "event completed",
			team:     TeamState{ID: "tm_1"},
			event:    EventState{ID: "evt_1", Holes: 18, Status: StatusCompleted, LockedAt: &now},
			wantCode: apperrors.CodeLocked,
			wantMsg:  "Event is locked - scores cannot be changed",
		},
		{
			name:     "event locked_at set but status live",
			team:     TeamState{ID: "tm_1"},
			event:    EventState{ID: "evt_1", Holes: 18, Status: StatusLive, LockedAt: &now},
			wantCode: apperrors.CodeLocked,
			wantMsg:  "Event is locked - scores cannot be changed",
		},
		{
			name:     "event still draft",
			team:     TeamState{ID: "tm_1"},
			event:    EventState{ID: "evt_1", Holes: 18, Status: StatusDraft},
			wantCode: apperrors.CodeLocked,
			wantMsg:  "Event is not live yet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTeamWrite(tt.team, tt.event)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("CheckTeamWrite() unexpected error: %v", err)
				}
				return
			}
			if got := appCode(t, err); got != tt.wantCode {
				t.Errorf("CheckTeamWrite() code = %s, want %s", got, tt.wantCode)
			}
			var appErr *apperrors.AppError
			errors.As(err, &appErr)
			if appErr.Message != tt.wantMsg {
				t.Errorf("CheckTeamWrite() message = %q, want %q", appErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestCheckSubmitFinal(t *testing.T) {
	now := time.Now()

	t.Run("all holes entered", func(t *testing.T) {
		if err := CheckSubmitFinal(TeamState{ID: "tm_1"}, 18, 18); err != nil {
			t.Fatalf("CheckSubmitFinal() unexpected error: %v", err)
		}
	})

	t.Run("incomplete reports progress", func(t *testing.T) {
		err := CheckSubmitFinal(TeamState{ID: "tm_1"}, 17, 18)
		if got := appCode(t, err); got != apperrors.CodeIncomplete {
			t.Fatalf("code = %s, want %s", got, apperrors.CodeIncomplete)
		}
		var appErr *apperrors.AppError
		errors.As(err, &appErr)
		want := "Only 17 of 18 holes entered. Complete all holes before submitting."
		if appErr.Message != want {
			t.Errorf("message = %q, want %q", appErr.Message, want)
		}
	})

	t.Run("already locked", func(t *testing.T) {
		err := CheckSubmitFinal(TeamState{ID: "tm_1", LockedAt: &now}, 18, 18)
		if got := appCode(t, err); got != apperrors.CodeLocked {
			t.Fatalf("code = %s, want %s", got, apperrors.CodeLocked)
		}
	})
}

func TestValidateStrokes(t *testing.T) {
	for _, strokes := range []int{1, 10, 20} {
		if err := ValidateStrokes(strokes); err != nil {
			t.Errorf("ValidateStrokes(%d) unexpected error: %v", strokes, err)
		}
	}
	for _, strokes := range []int{0, -3, 21, 100} {
		if err := ValidateStrokes(strokes); err == nil {
			t.Errorf("ValidateStrokes(%d) expected error", strokes)
		}
	}
}

func TestValidateHoleNumber(t *testing.T) {
	event := EventState{Holes: 9}
	if err := ValidateHoleNumber(9, event); err != nil {
		t.Errorf("ValidateHoleNumber(9) unexpected error: %v", err)
	}
	for _, hole := range []int{0, 10} {
		if err := ValidateHoleNumber(hole, event); err == nil {
			t.Errorf("ValidateHoleNumber(%d) expected error", hole)
		}
	}
}

func TestLockedAtForStatus(t *testing.T) {
	now := time.Date(2026, 6, 12, 10, 0, 0, 0, time.UTC)

	if got := LockedAtForStatus(StatusCompleted, now); got == nil || !got.Equal(now) {
		t.Errorf("LockedAtForStatus(completed) = %v, want %v", got, now)
	}
	if got := LockedAtForStatus(StatusLive, now); got != nil {
		t.Errorf("LockedAtForStatus(live) = %v, want nil", got)
	}
	if got := LockedAtForStatus(StatusDraft, now); got != nil {
		t.Errorf("LockedAtForStatus(draft) = %v, want nil", got)
	}
}

func TestEventStatusValid(t *testing.T) {
	for _, s := range []EventStatus{StatusDraft, StatusLive, StatusCompleted} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if EventStatus("paused").Valid() {
		t.Error("paused should not be valid")
	}
}
