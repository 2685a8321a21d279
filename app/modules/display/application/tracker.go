package displayservice

import (
	"sort"
	"sync"
	"time"

	scoringdomain "github.com/scramble-live/scoreboard/app/modules/scoring/domain"
)

// snapshot is the per-team state the tracker diffs between polls. Only the
// fields a spectator can see move are compared; rank shuffles alone do not
// light a row up.
type snapshot struct {
	strokesCompleted int
	toPar            int
}

// Tracker detects which teams moved between leaderboard polls and keeps each
// detected change highlighted for a fixed window. The first observation of an
// event seeds the baseline and highlights nothing.
type Tracker struct {
	mu       sync.Mutex
	window   time.Duration
	now      func() time.Time
	prior    map[string]map[string]snapshot
	expiries map[string]map[string]time.Time
}

func NewTracker(window time.Duration) *Tracker {
	return &Tracker{
		window:   window,
		now:      time.Now,
		prior:    make(map[string]map[string]snapshot),
		expiries: make(map[string]map[string]time.Time),
	}
}

// Observe diffs rows against the prior snapshot for the event, records each
// changed team with a fresh expiry, and returns the changed team IDs. An
// unchanged team's existing highlight is not extended.
func (t *Tracker) Observe(eventID string, rows []scoringdomain.LeaderboardRow) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	current := make(map[string]snapshot, len(rows))
	for _, row := range rows {
		current[row.TeamID] = snapshot{
			strokesCompleted: row.StrokesCompleted,
			toPar:            row.ToPar,
		}
	}

	prior, seen := t.prior[eventID]
	t.prior[eventID] = current
	if !seen {
		return nil
	}

	var changed []string
	for teamID, cur := range current {
		if prev, ok := prior[teamID]; ok && prev == cur {
			continue
		}
		changed = append(changed, teamID)
	}
	if len(changed) == 0 {
		return nil
	}
	sort.Strings(changed)

	expiry := t.now().Add(t.window)
	if t.expiries[eventID] == nil {
		t.expiries[eventID] = make(map[string]time.Time)
	}
	for _, teamID := range changed {
		t.expiries[eventID][teamID] = expiry
	}
	return changed
}

// Highlights returns the team IDs whose change window has not yet expired,
// pruning the ones that have.
func (t *Tracker) Highlights(eventID string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	expiries := t.expiries[eventID]
	if len(expiries) == 0 {
		return nil
	}

	now := t.now()
	var active []string
	for teamID, expiry := range expiries {
		if now.Before(expiry) {
			active = append(active, teamID)
		} else {
			delete(expiries, teamID)
		}
	}
	if len(expiries) == 0 {
		delete(t.expiries, eventID)
	}
	sort.Strings(active)
	return active
}

// Forget drops all state for an event. Called when an event completes so the
// maps do not accumulate across a season.
func (t *Tracker) Forget(eventID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.prior, eventID)
	delete(t.expiries, eventID)
}
