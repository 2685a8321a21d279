package scoringservice

import (
	"context"
	"errors"

	"github.com/scramble-live/scoreboard/pkg/apperrors"

	scoringdomain "github.com/scramble-live/scoreboard/app/modules/scoring/domain"
	scoringdb "github.com/scramble-live/scoreboard/app/modules/scoring/infrastructure/repositories"
)

// GetLeaderboard is the public read path. The ranking is recomputed from the
// ledger on every call; nothing here is cached as source of truth. When the
// board is hidden the ranking engine is not invoked at all, but total par is
// still reported.
func (s *ScoringService) GetLeaderboard(ctx context.Context, orgSlug, eventSlug string) (*LeaderboardView, error) {
	return withTelemetry(s, ctx, "GetLeaderboard", orgSlug+"/"+eventSlug, func(ctx context.Context) (*LeaderboardView, error) {
		org, err := s.repo.GetOrganizationBySlug(ctx, orgSlug)
		if err != nil {
			if errors.Is(err, scoringdb.ErrNotFound) {
				return nil, apperrors.NotFound("Organization not found")
			}
			return nil, err
		}

		event, err := s.repo.GetEventByOrgAndSlug(ctx, org.ID, eventSlug)
		if err != nil {
			if errors.Is(err, scoringdb.ErrNotFound) {
				return nil, apperrors.NotFound("Event not found")
			}
			return nil, err
		}

		holes, err := s.repo.GetEventHoles(ctx, event.ID)
		if err != nil {
			return nil, err
		}
		parByHole := make(map[int]int, len(holes))
		for _, h := range holes {
			parByHole[h.HoleNumber] = h.Par
		}
		totalPar := scoringdomain.TotalPar(parByHole)

		view := &LeaderboardView{
			Event: EventSummaryView{
				Name:               event.Name,
				Date:               event.Date,
				Holes:              event.Holes,
				Status:             event.Status,
				LeaderboardVisible: event.LeaderboardVisible,
			},
			Totals: TotalsView{TotalPar: totalPar},
			Teams:  []scoringdomain.LeaderboardRow{},
		}

		if !event.LeaderboardVisible {
			view.Hidden = true
			return view, nil
		}

		view.Org = &OrgView{Name: org.Name}

		teams, err := s.repo.ListTeams(ctx, event.ID)
		if err != nil {
			return nil, err
		}
		if len(teams) == 0 {
			return view, nil
		}

		teamIDs := make([]string, len(teams))
		teamStates := make([]scoringdomain.TeamState, len(teams))
		for i, t := range teams {
			teamIDs[i] = t.ID
			teamStates[i] = t.State()
		}

		allScores, err := s.repo.GetScoresForTeams(ctx, teamIDs)
		if err != nil {
			return nil, err
		}
		scoresByTeam := make(map[string][]scoringdomain.HoleScoreEntry, len(teams))
		for _, sc := range allScores {
			scoresByTeam[sc.TeamID] = append(scoresByTeam[sc.TeamID], sc.Entry())
		}

		view.Teams = scoringdomain.Rank(teamStates, scoresByTeam, parByHole)
		return view, nil
	})
}
