package displayservice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	scoringdomain "github.com/scramble-live/scoreboard/app/modules/scoring/domain"
)

func newTestTracker(window time.Duration) (*Tracker, *time.Time) {
	tracker := NewTracker(window)
	now := time.Date(2026, 6, 12, 9, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return now }
	return tracker, &now
}

func row(teamID string, strokes, toPar int) scoringdomain.LeaderboardRow {
	return scoringdomain.LeaderboardRow{
		TeamID:           teamID,
		StrokesCompleted: strokes,
		ToPar:            toPar,
	}
}

func TestTrackerFirstObservationHighlightsNothing(t *testing.T) {
	tracker, _ := newTestTracker(3 * time.Second)

	changed := tracker.Observe("evt_1", []scoringdomain.LeaderboardRow{
		row("tm_1", 8, 0),
		row("tm_2", 7, -1),
	})
	assert.Nil(t, changed)
	assert.Nil(t, tracker.Highlights("evt_1"))
}

func TestTrackerDetectsChangedTeams(t *testing.T) {
	tracker, _ := newTestTracker(3 * time.Second)

	tracker.Observe("evt_1", []scoringdomain.LeaderboardRow{
		row("tm_1", 8, 0),
		row("tm_2", 7, -1),
	})

	changed := tracker.Observe("evt_1", []scoringdomain.LeaderboardRow{
		row("tm_1", 12, 1), // wrote a hole
		row("tm_2", 7, -1), // unchanged
		row("tm_3", 4, 0),  // new team
	})
	assert.Equal(t, []string{"tm_1", "tm_3"}, changed)
	assert.Equal(t, []string{"tm_1", "tm_3"}, tracker.Highlights("evt_1"))
}

func TestTrackerHighlightExpires(t *testing.T) {
	tracker, now := newTestTracker(3 * time.Second)

	tracker.Observe("evt_1", []scoringdomain.LeaderboardRow{row("tm_1", 8, 0)})
	tracker.Observe("evt_1", []scoringdomain.LeaderboardRow{row("tm_1", 12, 1)})

	*now = now.Add(2 * time.Second)
	assert.Equal(t, []string{"tm_1"}, tracker.Highlights("evt_1"))

	*now = now.Add(1001 * time.Millisecond)
	assert.Nil(t, tracker.Highlights("evt_1"))
	// Pruned, not just filtered.
	assert.Nil(t, tracker.Highlights("evt_1"))
}

func TestTrackerUnchangedPollDoesNotExtendWindow(t *testing.T) {
	tracker, now := newTestTracker(3 * time.Second)

	tracker.Observe("evt_1", []scoringdomain.LeaderboardRow{row("tm_1", 8, 0)})
	tracker.Observe("evt_1", []scoringdomain.LeaderboardRow{row("tm_1", 12, 1)})

	// A poll with no movement must not refresh the expiry.
	*now = now.Add(2 * time.Second)
	changed := tracker.Observe("evt_1", []scoringdomain.LeaderboardRow{row("tm_1", 12, 1)})
	assert.Nil(t, changed)

	*now = now.Add(1500 * time.Millisecond)
	assert.Nil(t, tracker.Highlights("evt_1"))
}

func TestTrackerNewChangeRefreshesWindow(t *testing.T) {
	tracker, now := newTestTracker(3 * time.Second)

	tracker.Observe("evt_1", []scoringdomain.LeaderboardRow{row("tm_1", 8, 0)})
	tracker.Observe("evt_1", []scoringdomain.LeaderboardRow{row("tm_1", 12, 1)})

	*now = now.Add(2 * time.Second)
	tracker.Observe("evt_1", []scoringdomain.LeaderboardRow{row("tm_1", 16, 2)})

	*now = now.Add(2 * time.Second)
	assert.Equal(t, []string{"tm_1"}, tracker.Highlights("evt_1"))
}

func TestTrackerEventsAreIndependent(t *testing.T) {
	tracker, _ := newTestTracker(3 * time.Second)

	tracker.Observe("evt_1", []scoringdomain.LeaderboardRow{row("tm_1", 8, 0)})
	tracker.Observe("evt_2", []scoringdomain.LeaderboardRow{row("tm_9", 4, 0)})
	tracker.Observe("evt_1", []scoringdomain.LeaderboardRow{row("tm_1", 12, 1)})

	assert.Equal(t, []string{"tm_1"}, tracker.Highlights("evt_1"))
	assert.Nil(t, tracker.Highlights("evt_2"))
}

func TestTrackerForget(t *testing.T) {
	tracker, _ := newTestTracker(3 * time.Second)

	tracker.Observe("evt_1", []scoringdomain.LeaderboardRow{row("tm_1", 8, 0)})
	tracker.Observe("evt_1", []scoringdomain.LeaderboardRow{row("tm_1", 12, 1)})
	tracker.Forget("evt_1")

	assert.Nil(t, tracker.Highlights("evt_1"))
	// Baseline is gone too, so the next observation seeds fresh.
	changed := tracker.Observe("evt_1", []scoringdomain.LeaderboardRow{row("tm_1", 16, 2)})
	assert.Nil(t, changed)
}
