package scoringdomain

import (
	"fmt"
	"net/http"
	"time"

	"github.com/scramble-live/scoreboard/pkg/apperrors"
)

// ValidateStrokes bounds a stroke count to [MinStrokes, MaxStrokes].
func ValidateStrokes(strokes int) error {
	if strokes < MinStrokes || strokes > MaxStrokes {
		return apperrors.Validation(fmt.Sprintf("Strokes must be %d-%d", MinStrokes, MaxStrokes))
	}
	return nil
}

// ValidateHoleNumber checks the hole against the event's configured range.
func ValidateHoleNumber(holeNumber int, event EventState) error {
	if holeNumber < 1 || holeNumber > event.Holes {
		return apperrors.Validation(fmt.Sprintf("Hole must be between 1 and %d", event.Holes))
	}
	return nil
}

// CheckTeamWrite is the full self-service write gate: team unlocked, event
// unlocked, event live. Checked in this order so the caller sees the most
// specific reason. Admin overrides never call this.
func CheckTeamWrite(team TeamState, event EventState) error {
	if team.LockedAt != nil {
		return apperrors.Locked("Your scores have been submitted and are locked")
	}
	if event.LockedAt != nil || event.Status == StatusCompleted {
		return apperrors.Locked("Event is locked - scores cannot be changed")
	}
	if event.Status != StatusLive {
		return apperrors.Locked("Event is not live yet")
	}
	return nil
}

// CheckSubmitFinal gates the submit-final transition: the team must still be
// unlocked and must have a score on every configured hole.
func CheckSubmitFinal(team TeamState, holesCompleted, eventHoles int) error {
	if team.LockedAt != nil {
		err := apperrors.Locked("Scores already submitted")
		err.HTTPStatus = http.StatusBadRequest
		return err
	}
	if holesCompleted < eventHoles {
		return apperrors.Incomplete(fmt.Sprintf(
			"Only %d of %d holes entered. Complete all holes before submitting.",
			holesCompleted, eventHoles,
		))
	}
	return nil
}

// LockedAtForStatus returns the event lock timestamp implied by a status
// transition: entering completed stamps now, everything else clears it.
// Reopening a completed event therefore unlocks it.
func LockedAtForStatus(status EventStatus, now time.Time) *time.Time {
	if status == StatusCompleted {
		return &now
	}
	return nil
}
