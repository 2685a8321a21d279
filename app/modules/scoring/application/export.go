package scoringservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/scramble-live/scoreboard/pkg/apperrors"

	scoringdomain "github.com/scramble-live/scoreboard/app/modules/scoring/domain"
	scoringdb "github.com/scramble-live/scoreboard/app/modules/scoring/infrastructure/repositories"
)

// ExportLeaderboardXLSX renders the current standings as a workbook for
// post-event distribution. Same ranking as the live board, frozen at call
// time.
func (s *ScoringService) ExportLeaderboardXLSX(ctx context.Context, eventID string) ([]byte, error) {
	return withTelemetry(s, ctx, "ExportLeaderboardXLSX", eventID, func(ctx context.Context) ([]byte, error) {
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
		parByHole := make(map[int]int, len(holes))
		for _, h := range holes {
			parByHole[h.HoleNumber] = h.Par
		}

		teams, err := s.repo.ListTeams(ctx, eventID)
		if err != nil {
			return nil, err
		}
		teamIDs := make([]string, len(teams))
		teamStates := make([]scoringdomain.TeamState, len(teams))
		playersByTeam := make(map[string][]string, len(teams))
		for i, t := range teams {
			teamIDs[i] = t.ID
			teamStates[i] = t.State()
			playersByTeam[t.ID] = t.Players
		}

		allScores, err := s.repo.GetScoresForTeams(ctx, teamIDs)
		if err != nil {
			return nil, err
		}
		scoresByTeam := make(map[string][]scoringdomain.HoleScoreEntry, len(teams))
		for _, sc := range allScores {
			scoresByTeam[sc.TeamID] = append(scoresByTeam[sc.TeamID], sc.Entry())
		}

		rows := scoringdomain.Rank(teamStates, scoresByTeam, parByHole)
		return renderLeaderboardWorkbook(event.Name, rows, playersByTeam)
	})
}

func renderLeaderboardWorkbook(eventName string, rows []scoringdomain.LeaderboardRow, playersByTeam map[string][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Leaderboard"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []string{"Rank", "Team", "Players", "Thru", "Strokes", "To Par", "Projected", "Submitted", "Last Updated"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		lastUpdated := ""
		if row.LastUpdated != nil {
			lastUpdated = row.LastUpdated.Format("2006-01-02 15:04:05")
		}
		values := []any{
			row.Rank,
			row.TeamName,
			strings.Join(playersByTeam[row.TeamID], ", "),
			row.HolesCompleted,
			row.StrokesCompleted,
			formatToPar(row.ToPar),
			row.ProjectedTotal,
			row.Submitted,
			lastUpdated,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetDocProps(&excelize.DocProperties{Title: eventName}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// formatToPar renders a to-par value the way golfers read it: E for even,
// +N over, -N under.
func formatToPar(toPar int) string {
	if toPar == 0 {
		return "E"
	}
	if toPar > 0 {
		return fmt.Sprintf("+%d", toPar)
	}
	return fmt.Sprintf("%d", toPar)
}
