package scheduling

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/Alcalius/padel-pro/models"
)

const (
	// searchAttempts bounds the stochastic search; goodEnoughScore
	// short-circuits it once a clearly strong candidate shows up.
	searchAttempts  = 300
	goodEnoughScore = 200

	// candidatePoolSize limits the sampled subset to the players with
	// the highest scheduling priority.
	candidatePoolSize = 6

	// priority weights mirror the balance/anti-wait ordering of the
	// scoring function.
	priorityUnderIdealWeight = 10
	priorityWaitWeight       = 5
)

// Generator produces fairness-balanced doubles matches. Shuffling is
// part of the contract: repeated calls over the same state are allowed
// to return different (equally fair) matchups.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator() *Generator {
	return &Generator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededGenerator pins the random source, for tests.
func NewSeededGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// BalancedMatch generates one new pending match for the given player
// pool and match history. With fewer than four players no fairness is
// possible and the pool is split evenly at random. The inputs are
// never mutated.
func (g *Generator) BalancedMatch(players []models.PlayerRef, existing []models.Match) models.Match {
	if len(players) < 4 {
		shuffled := g.shuffled(players)
		half := len(shuffled) / 2
		return pendingMatch(shuffled[:half], shuffled[half:])
	}

	stats := BuildPlayerStats(players, existing)
	ideal := idealGamesPerPlayer(len(existing), len(players))

	// Candidates are sampled from the players who most need a game:
	// below the ideal count, or stuck on a waiting streak.
	prioritized := g.shuffled(players)
	sort.SliceStable(prioritized, func(i, j int) bool {
		return playerPriority(prioritized[i], stats, ideal) > playerPriority(prioritized[j], stats, ideal)
	})
	poolSize := candidatePoolSize
	if poolSize > len(prioritized) {
		poolSize = len(prioritized)
	}
	pool := prioritized[:poolSize]

	var bestTeam1, bestTeam2 []models.PlayerRef
	bestScore := math.Inf(-1)

	for attempt := 0; attempt < searchAttempts; attempt++ {
		candidate := g.shuffled(pool)
		team1 := candidate[:2]
		team2 := candidate[2:4]

		score := scoreCombination(team1, team2, players, stats, existing, ideal)
		if score > bestScore {
			bestScore = score
			bestTeam1 = append([]models.PlayerRef(nil), team1...)
			bestTeam2 = append([]models.PlayerRef(nil), team2...)
		}
		if score > goodEnoughScore {
			break
		}
	}

	if bestTeam1 == nil {
		// Deterministic fallback: the four players with the fewest
		// games.
		byGames := append([]models.PlayerRef(nil), players...)
		sort.SliceStable(byGames, func(i, j int) bool {
			return stats[byGames[i]].GamesPlayed < stats[byGames[j]].GamesPlayed
		})
		bestTeam1 = byGames[:2]
		bestTeam2 = byGames[2:4]
	}

	return pendingMatch(bestTeam1, bestTeam2)
}

func playerPriority(p models.PlayerRef, stats map[models.PlayerRef]*PlayerStats, ideal float64) float64 {
	st := stats[p]
	return (ideal-float64(st.GamesPlayed))*priorityUnderIdealWeight +
		float64(st.ConsecutiveWaits)*priorityWaitWeight
}

func (g *Generator) shuffled(players []models.PlayerRef) []models.PlayerRef {
	out := append([]models.PlayerRef(nil), players...)
	g.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func pendingMatch(team1, team2 []models.PlayerRef) models.Match {
	return models.Match{
		Team1:     append([]models.PlayerRef(nil), team1...),
		Team2:     append([]models.PlayerRef(nil), team2...),
		Status:    models.MatchStatusPending,
		CreatedAt: time.Now(),
	}
}
