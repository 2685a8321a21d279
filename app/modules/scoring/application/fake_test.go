package scoringservice

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	scoringdb "github.com/scramble-live/scoreboard/app/modules/scoring/infrastructure/repositories"
)

// ------------------------
// Fake Repository
// ------------------------

// FakeRepository is an in-memory, programmable stub for scoringdb.Repository.
// Default behavior works off the seeded maps; per-call Func fields override.
type FakeRepository struct {
	mu    sync.Mutex
	trace []string

	Orgs   map[string]*scoringdb.Organization
	Events map[string]*scoringdb.Event
	Holes  map[string][]scoringdb.EventHole
	Teams  map[string]*scoringdb.Team
	// Scores is teamID -> holeNumber -> row.
	Scores map[string]map[int]*scoringdb.HoleScore

	UpsertHoleScoreFunc func(ctx context.Context, score *scoringdb.HoleScore) error
	CreateTeamsFunc     func(ctx context.Context, teams []*scoringdb.Team) error
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		Orgs:   map[string]*scoringdb.Organization{},
		Events: map[string]*scoringdb.Event{},
		Holes:  map[string][]scoringdb.EventHole{},
		Teams:  map[string]*scoringdb.Team{},
		Scores: map[string]map[int]*scoringdb.HoleScore{},
	}
}

var _ scoringdb.Repository = (*FakeRepository)(nil)

// Trace returns the sequence of method calls made to the fake.
func (f *FakeRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRepository) record(step string) {
	f.mu.Lock()
	f.trace = append(f.trace, step)
	f.mu.Unlock()
}

func (f *FakeRepository) GetOrganization(_ context.Context, orgID string) (*scoringdb.Organization, error) {
	f.record("GetOrganization")
	if org, ok := f.Orgs[orgID]; ok {
		return org, nil
	}
	return nil, scoringdb.ErrNotFound
}

func (f *FakeRepository) GetOrganizationBySlug(_ context.Context, slug string) (*scoringdb.Organization, error) {
	f.record("GetOrganizationBySlug")
	for _, org := range f.Orgs {
		if org.Slug == slug {
			return org, nil
		}
	}
	return nil, scoringdb.ErrNotFound
}

func (f *FakeRepository) GetEvent(_ context.Context, eventID string) (*scoringdb.Event, error) {
	f.record("GetEvent")
	if event, ok := f.Events[eventID]; ok {
		return event, nil
	}
	return nil, scoringdb.ErrNotFound
}

func (f *FakeRepository) GetEventByOrgAndSlug(_ context.Context, orgID, slug string) (*scoringdb.Event, error) {
	f.record("GetEventByOrgAndSlug")
	for _, event := range f.Events {
		if event.OrgID == orgID && event.Slug == slug {
			return event, nil
		}
	}
	return nil, scoringdb.ErrNotFound
}

func (f *FakeRepository) GetEventHoles(_ context.Context, eventID string) ([]scoringdb.EventHole, error) {
	f.record("GetEventHoles")
	return f.Holes[eventID], nil
}

func (f *FakeRepository) GetTeamByToken(_ context.Context, accessToken string) (*scoringdb.Team, error) {
	f.record("GetTeamByToken")
	for _, team := range f.Teams {
		if team.AccessToken == accessToken {
			return team, nil
		}
	}
	return nil, scoringdb.ErrNotFound
}

func (f *FakeRepository) GetTeamInEvent(_ context.Context, teamID, eventID string) (*scoringdb.Team, error) {
	f.record("GetTeamInEvent")
	team, ok := f.Teams[teamID]
	if !ok || team.EventID != eventID {
		return nil, scoringdb.ErrNotFound
	}
	return team, nil
}

func (f *FakeRepository) ListTeams(_ context.Context, eventID string) ([]scoringdb.Team, error) {
	f.record("ListTeams")
	var teams []scoringdb.Team
	for _, team := range f.Teams {
		if team.EventID == eventID {
			teams = append(teams, *team)
		}
	}
	sort.Slice(teams, func(i, j int) bool {
		if teams[i].CreatedAt.Equal(teams[j].CreatedAt) {
			return teams[i].ID < teams[j].ID
		}
		return teams[i].CreatedAt.Before(teams[j].CreatedAt)
	})
	return teams, nil
}

func (f *FakeRepository) UpdateEventStatus(_ context.Context, eventID, status string, lockedAt *time.Time) error {
	f.record("UpdateEventStatus")
	event, ok := f.Events[eventID]
	if !ok {
		return scoringdb.ErrNotFound
	}
	event.Status = status
	event.LockedAt = lockedAt
	return nil
}

func (f *FakeRepository) SetLeaderboardVisibility(_ context.Context, eventID string, visible bool) error {
	f.record("SetLeaderboardVisibility")
	event, ok := f.Events[eventID]
	if !ok {
		return scoringdb.ErrNotFound
	}
	event.LeaderboardVisible = visible
	return nil
}

func (f *FakeRepository) CreateTeam(_ context.Context, team *scoringdb.Team) error {
	f.record("CreateTeam")
	f.Teams[team.ID] = team
	return nil
}

func (f *FakeRepository) CreateTeams(ctx context.Context, teams []*scoringdb.Team) error {
	f.record("CreateTeams")
	if f.CreateTeamsFunc != nil {
		return f.CreateTeamsFunc(ctx, teams)
	}
	for _, team := range teams {
		f.Teams[team.ID] = team
	}
	return nil
}

func (f *FakeRepository) SetTeamLock(_ context.Context, teamID string, lockedAt *time.Time) error {
	f.record("SetTeamLock")
	team, ok := f.Teams[teamID]
	if !ok {
		return scoringdb.ErrNotFound
	}
	team.LockedAt = lockedAt
	return nil
}

func (f *FakeRepository) UpsertHoleScore(ctx context.Context, score *scoringdb.HoleScore) error {
	f.record("UpsertHoleScore")
	if f.UpsertHoleScoreFunc != nil {
		return f.UpsertHoleScoreFunc(ctx, score)
	}
	if f.Scores[score.TeamID] == nil {
		f.Scores[score.TeamID] = map[int]*scoringdb.HoleScore{}
	}
	if existing, ok := f.Scores[score.TeamID][score.HoleNumber]; ok {
		existing.Strokes = score.Strokes
		existing.UpdatedAt = score.UpdatedAt
		existing.UpdatedBy = score.UpdatedBy
		return nil
	}
	copied := *score
	f.Scores[score.TeamID][score.HoleNumber] = &copied
	return nil
}

func (f *FakeRepository) GetTeamScores(_ context.Context, teamID string) ([]scoringdb.HoleScore, error) {
	f.record("GetTeamScores")
	var scores []scoringdb.HoleScore
	for _, s := range f.Scores[teamID] {
		scores = append(scores, *s)
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].HoleNumber < scores[j].HoleNumber })
	return scores, nil
}

func (f *FakeRepository) GetScoresForTeams(_ context.Context, teamIDs []string) ([]scoringdb.HoleScore, error) {
	f.record("GetScoresForTeams")
	var scores []scoringdb.HoleScore
	for _, teamID := range teamIDs {
		for _, s := range f.Scores[teamID] {
			scores = append(scores, *s)
		}
	}
	return scores, nil
}

func (f *FakeRepository) CountTeamScores(_ context.Context, teamID string) (int, error) {
	f.record("CountTeamScores")
	return len(f.Scores[teamID]), nil
}

// ------------------------
// Fake EventBus
// ------------------------

type publishedEvent struct {
	Topic   string
	Payload any
}

type FakeEventBus struct {
	mu         sync.Mutex
	Published  []publishedEvent
	PublishErr error
}

func (f *FakeEventBus) Publish(topic string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PublishErr != nil {
		return f.PublishErr
	}
	f.Published = append(f.Published, publishedEvent{Topic: topic, Payload: payload})
	return nil
}

func (f *FakeEventBus) Subscribe(_ context.Context, _ string) (<-chan *message.Message, error) {
	return nil, nil
}

func (f *FakeEventBus) Close() error { return nil }

func (f *FakeEventBus) Topics() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.Published))
	for i, p := range f.Published {
		out[i] = p.Topic
	}
	return out
}
