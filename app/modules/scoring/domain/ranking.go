package scoringdomain

import (
	"sort"
	"time"
)

// LeaderboardRow is one ranked team. Field names are the public wire shape.
type LeaderboardRow struct {
	TeamID           string     `json:"id"`
	TeamName         string     `json:"team_name"`
	Rank             int        `json:"rank"`
	ToPar            int        `json:"to_par"`
	ProjectedTotal   int        `json:"projected_total"`
	StrokesCompleted int        `json:"strokes_completed"`
	HolesCompleted   int        `json:"holes_completed"`
	Submitted        bool       `json:"submitted"`
	LastUpdated      *time.Time `json:"last_updated"`
}

// TotalPar sums par across every configured hole.
func TotalPar(parByHole map[int]int) int {
	total := 0
	for _, par := range parByHole {
		total += par
	}
	return total
}

// Rank derives the ordered leaderboard from team snapshots, their recorded
// hole scores, and the par mapping. It is recomputed on every read; the
// output is never a source of truth.
//
// Sort order: to_par ascending, then holes completed descending (further
// into the round wins the tie), then earliest last update, with teams that
// have no scores at all sorting last. Ranks are dense 1-based positions;
// teams tied on to_par do NOT share a rank. That matches the original
// display exactly and is intentional, even though golf convention would
// share ranks for ties.
//
// Projection: every unplayed hole is assumed scored exactly at par, so a
// team with no scores projects to the full course par.
func Rank(teams []TeamState, scoresByTeam map[string][]HoleScoreEntry, parByHole map[int]int) []LeaderboardRow {
	totalPar := TotalPar(parByHole)

	rows := make([]LeaderboardRow, 0, len(teams))
	for _, team := range teams {
		scores := scoresByTeam[team.ID]

		strokesCompleted := 0
		parCompleted := 0
		var lastUpdated *time.Time
		for _, s := range scores {
			strokesCompleted += s.Strokes
			parCompleted += parByHole[s.HoleNumber]
			if lastUpdated == nil || s.UpdatedAt.After(*lastUpdated) {
				t := s.UpdatedAt
				lastUpdated = &t
			}
		}

		rows = append(rows, LeaderboardRow{
			TeamID:           team.ID,
			TeamName:         team.Name,
			ToPar:            strokesCompleted - parCompleted,
			ProjectedTotal:   strokesCompleted + (totalPar - parCompleted),
			StrokesCompleted: strokesCompleted,
			HolesCompleted:   len(scores),
			Submitted:        team.LockedAt != nil,
			LastUpdated:      lastUpdated,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.ToPar != b.ToPar {
			return a.ToPar < b.ToPar
		}
		if a.HolesCompleted != b.HolesCompleted {
			return a.HolesCompleted > b.HolesCompleted
		}
		// A team with no recorded scores sorts after any team with one.
		if a.LastUpdated == nil {
			return false
		}
		if b.LastUpdated == nil {
			return true
		}
		return a.LastUpdated.Before(*b.LastUpdated)
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}

	return rows
}
