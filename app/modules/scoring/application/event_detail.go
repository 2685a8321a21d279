package scoringservice

import (
	"context"
	"errors"

	"github.com/scramble-live/scoreboard/pkg/apperrors"

	scoringdb "github.com/scramble-live/scoreboard/app/modules/scoring/infrastructure/repositories"
)

// GetEventDetail is the admin read model: the event, its hole/par mapping,
// and every team with its raw per-hole strokes. Polled by the admin view
// while an event is live.
func (s *ScoringService) GetEventDetail(ctx context.Context, eventID string) (*EventDetailView, error) {
	return withTelemetry(s, ctx, "GetEventDetail", eventID, func(ctx context.Context) (*EventDetailView, error) {
		event, err := s.repo.GetEvent(ctx, eventID)
		if err != nil {
			if errors.Is(err, scoringdb.ErrNotFound) {
				return nil, apperrors.NotFound("Event not found")
			}
			return nil, err
		}

		holes, err := s.repo.GetEventHoles(ctx, eventID)
		if err != nil {
			return nil, err
		}
		holeViews := make([]EventHoleView, 0, len(holes))
		for _, h := range holes {
			holeViews = append(holeViews, EventHoleView{HoleNumber: h.HoleNumber, Par: h.Par})
		}

		teams, err := s.repo.ListTeams(ctx, eventID)
		if err != nil {
			return nil, err
		}

		scoresByTeam := make(map[string]map[int]int, len(teams))
		if len(teams) > 0 {
			teamIDs := make([]string, len(teams))
			for i, t := range teams {
				teamIDs[i] = t.ID
			}
			allScores, err := s.repo.GetScoresForTeams(ctx, teamIDs)
			if err != nil {
				return nil, err
			}
			for _, sc := range allScores {
				if scoresByTeam[sc.TeamID] == nil {
					scoresByTeam[sc.TeamID] = make(map[int]int)
				}
				scoresByTeam[sc.TeamID][sc.HoleNumber] = sc.Strokes
			}
		}

		teamViews := make([]TeamDetailView, 0, len(teams))
		for _, t := range teams {
			scores := scoresByTeam[t.ID]
			if scores == nil {
				scores = map[int]int{}
			}
			teamViews = append(teamViews, teamDetail(t, scores))
		}

		var orgRef *OrgRefView
		if org, err := s.repo.GetOrganization(ctx, event.OrgID); err == nil {
			orgRef = &OrgRefView{Slug: org.Slug, Name: org.Name}
		}

		return &EventDetailView{
			Event: EventAdminView{
				ID:                 event.ID,
				OrgID:              event.OrgID,
				Slug:               event.Slug,
				Name:               event.Name,
				Date:               event.Date,
				Holes:              event.Holes,
				Status:             event.Status,
				LockedAt:           event.LockedAt,
				LeaderboardVisible: event.LeaderboardVisible,
				CreatedAt:          event.CreatedAt,
			},
			Org:   orgRef,
			Holes: holeViews,
			Teams: teamViews,
		}, nil
	})
}
