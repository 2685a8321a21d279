package scoringservice

import (
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

	scoringdb "github.com/scramble-live/scoreboard/app/modules/scoring/infrastructure/repositories"
)

var testBase = time.Date(2026, 6, 12, 9, 0, 0, 0, time.UTC)

func newTestService(repo *FakeRepository) (*ScoringService, *FakeEventBus) {
	bus := &FakeEventBus{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewScoringService(repo, bus, logger, NoopMetrics{}, noop.NewTracerProvider().Tracer("test"))
	svc.now = func() time.Time { return testBase }
	return svc, bus
}

// seedLiveEvent seeds one org, one live 9-hole par-4 event, and one unlocked
// team with a known token.
func seedLiveEvent(repo *FakeRepository) (eventID, teamID, token string) {
	eventID = "evt_1"
	teamID = "tm_1"
	token = "tok-abcdefghijklmnopqrstuvwxyz01"

	repo.Orgs["org_1"] = &scoringdb.Organization{ID: "org_1", Slug: "pine-valley", Name: "Pine Valley GC"}
	repo.Events[eventID] = &scoringdb.Event{
		ID:                 eventID,
		OrgID:              "org_1",
		Slug:               "spring-scramble",
		Name:               "Spring Scramble",
		Holes:              9,
		Status:             "live",
		LeaderboardVisible: true,
		CreatedAt:          testBase.Add(-24 * time.Hour),
	}

	holes := make([]scoringdb.EventHole, 0, 9)
	for h := 1; h <= 9; h++ {
		holes = append(holes, scoringdb.EventHole{
			ID: "eh_" + string(rune('0'+h)), EventID: eventID, HoleNumber: h, Par: 4,
		})
	}
	repo.Holes[eventID] = holes

	repo.Teams[teamID] = &scoringdb.Team{
		ID:          teamID,
		EventID:     eventID,
		TeamName:    "The Mulligans",
		Players:     []string{"Sam", "Alex"},
		AccessToken: token,
		CreatedAt:   testBase.Add(-23 * time.Hour),
	}
	return eventID, teamID, token
}
