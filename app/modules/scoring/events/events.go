package scoringevents

import "time"

// Topic names for the in-process bus.
const (
	ScoreRecorded = "scoring.score.recorded"
	TeamSubmitted = "scoring.team.submitted"
)

// ScoreRecordedPayload is published after every accepted ledger write,
// team-entered or admin override.
type ScoreRecordedPayload struct {
	EventID    string    `json:"event_id"`
	TeamID     string    `json:"team_id"`
	HoleNumber int       `json:"hole_number"`
	Strokes    int       `json:"strokes"`
	UpdatedBy  string    `json:"updated_by"`
	RecordedAt time.Time `json:"recorded_at"`
}

// TeamSubmittedPayload is published when a team locks in its final scores.
type TeamSubmittedPayload struct {
	EventID  string    `json:"event_id"`
	TeamID   string    `json:"team_id"`
	LockedAt time.Time `json:"locked_at"`
}
