package displayservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/scramble-live/scoreboard/eventbus"

	scoringevents "github.com/scramble-live/scoreboard/app/modules/scoring/events"
)

// ActivityMonitor consumes score-recorded events off the bus and keeps
// per-event last-activity state for TV screens. It is a read model only; a
// missed message costs nothing but a stale timestamp until the next write.
type ActivityMonitor struct {
	bus    eventbus.EventBus
	logger *slog.Logger

	mu       sync.Mutex
	activity map[string]EventActivity
}

// EventActivity is the per-event write summary.
type EventActivity struct {
	LastScoreAt time.Time `json:"last_score_at"`
	LastTeamID  string    `json:"last_team_id"`
	ScoreCount  int       `json:"score_count"`
}

func NewActivityMonitor(bus eventbus.EventBus, logger *slog.Logger) *ActivityMonitor {
	return &ActivityMonitor{
		bus:      bus,
		logger:   logger,
		activity: make(map[string]EventActivity),
	}
}

// Run subscribes to the score-recorded topic and consumes until the context
// is cancelled or the bus closes.
func (m *ActivityMonitor) Run(ctx context.Context) error {
	messages, err := m.bus.Subscribe(ctx, scoringevents.ScoreRecorded)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			var payload scoringevents.ScoreRecordedPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				m.logger.Warn("dropping malformed score event",
					slog.String("message_id", msg.UUID),
					slog.Any("error", err),
				)
				msg.Ack()
				continue
			}
			m.record(payload)
			msg.Ack()
		}
	}
}

func (m *ActivityMonitor) record(payload scoringevents.ScoreRecordedPayload) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := m.activity[payload.EventID]
	entry.LastScoreAt = payload.RecordedAt
	entry.LastTeamID = payload.TeamID
	entry.ScoreCount++
	m.activity[payload.EventID] = entry
}

// Activity returns the write summary for an event, if any writes have been
// observed.
func (m *ActivityMonitor) Activity(eventID string) (EventActivity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.activity[eventID]
	return entry, ok
}
