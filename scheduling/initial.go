package scheduling

import (
	"sort"

	"github.com/Alcalius/padel-pro/models"
)

const (
	minInitialMatches = 4
	maxInitialMatches = 7
)

// initialMatchCount decides how many matches to seed a fresh
// tournament with: 1.5 per player, clamped to [4, 7].
func initialMatchCount(totalPlayers int) int {
	count := totalPlayers * 3 / 2
	if count < minInitialMatches {
		count = minInitialMatches
	}
	if count > maxInitialMatches {
		count = maxInitialMatches
	}
	return count
}

// InitialMatches seeds a new tournament with a batch of pending
// matches. The full weighted scoring model buys nothing over an empty
// history, so selection is a simpler greedy min-count walk: every
// match takes four players with the fewest assignments so far, ties
// broken at random. Fewer than four players yields no matches.
//
// The batch keeps per-player assignment counts within a spread of at
// most two for pools divisible into foursomes, three otherwise.
func (g *Generator) InitialMatches(players []models.PlayerRef) []models.Match {
	if len(players) < 4 {
		return nil
	}

	count := initialMatchCount(len(players))
	assigned := make(map[models.PlayerRef]int, len(players))

	matches := make([]models.Match, 0, count)
	for i := 0; i < count; i++ {
		// Shuffle first so the stable sort breaks count ties randomly.
		byUsage := g.shuffled(players)
		sort.SliceStable(byUsage, func(a, b int) bool {
			return assigned[byUsage[a]] < assigned[byUsage[b]]
		})

		// The shuffle already randomized order among equal counts, so
		// the first four are either four random minimum-count players
		// or the four lowest-count players in random tie order.
		selected := byUsage[:4]

		teams := g.shuffled(selected)
		matches = append(matches, pendingMatch(teams[:2], teams[2:4]))

		for _, p := range selected {
			assigned[p]++
		}
	}

	return matches
}
