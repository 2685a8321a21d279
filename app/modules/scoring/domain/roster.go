package scoringdomain

import "strings"

// RosterEntry is one parsed line of a bulk team import.
type RosterEntry struct {
	TeamName string
	Players  []string
}

// ParseRoster parses a newline-delimited batch of "team name, player1,
// player2, ..." records. Blank lines and lines with no usable fields are
// skipped; they never fail the batch.
func ParseRoster(rows string) []RosterEntry {
	var entries []RosterEntry
	for _, line := range strings.Split(rows, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var parts []string
		for _, p := range strings.Split(line, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}

		entries = append(entries, RosterEntry{
			TeamName: parts[0],
			Players:  parts[1:],
		})
	}
	return entries
}
