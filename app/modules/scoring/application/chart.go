package scoringservice

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/scramble-live/scoreboard/pkg/apperrors"

	scoringdomain "github.com/scramble-live/scoreboard/app/modules/scoring/domain"
)

// RenderLeaderboardChart produces a PNG bar chart of projected totals for
// TV and sponsor screens. Bars are in rank order, so the leader reads left
// to right.
func RenderLeaderboardChart(eventName string, rows []scoringdomain.LeaderboardRow) ([]byte, error) {
	if len(rows) == 0 {
		return nil, apperrors.Validation("No teams to chart")
	}

	bars := make([]chart.Value, 0, len(rows))
	for _, row := range rows {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%d. %s", row.Rank, row.TeamName),
			Value: float64(row.ProjectedTotal),
		})
	}

	graph := chart.BarChart{
		Title:    eventName,
		Width:    1280,
		Height:   480,
		BarWidth: 48,
		XAxis: chart.Style{
			TextRotationDegrees: 45,
		},
		YAxis: chart.YAxis{
			Name: "Projected Total",
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render leaderboard chart: %w", err)
	}
	return buffer.Bytes(), nil
}
