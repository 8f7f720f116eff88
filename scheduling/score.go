package scheduling

import (
	"math"
	"sort"
	"strings"

	"github.com/Alcalius/padel-pro/models"
)

// Fairness weights. Ordered by priority: game-count balance dominates,
// then consecutive-wait avoidance, then partner diversity, then
// team-experience balance. The duplicate-teams penalty is sized to
// outweigh every other term so exact repeats only win as a last
// resort.
const (
	underIdealWeight = 25
	overIdealWeight  = 5

	waitPenaltyPerMatch   = 30
	waitWhileUnderPenalty = 15
	waitReliefBonus       = 20

	repeatPartnerPenalty = 8
	newPartnerBonus      = 3

	experienceDiffPenalty = 5
	balancedTeamsBonus    = 10

	duplicateTeamsPenalty = 250
)

// idealGamesPerPlayer is the game count every player "should" have at
// this point: four slots per match spread over the whole pool.
func idealGamesPerPlayer(totalMatches, totalPlayers int) float64 {
	if totalMatches == 0 || totalPlayers == 0 {
		return 0
	}
	return float64(totalMatches*4) / float64(totalPlayers)
}

// scoreCombination rates a candidate 2v2 split; higher is better. It
// is the single decision procedure behind match generation.
func scoreCombination(
	team1, team2 []models.PlayerRef,
	allPlayers []models.PlayerRef,
	stats map[models.PlayerRef]*PlayerStats,
	existing []models.Match,
	ideal float64,
) float64 {
	score := 0.0

	playing := make(map[models.PlayerRef]bool, 4)
	for _, p := range team1 {
		playing[p] = true
	}
	for _, p := range team2 {
		playing[p] = true
	}

	// Priority 1: pull under-played players in hard, push over-played
	// players out softly. The term is signed, so playing someone above
	// the ideal count subtracts from the score.
	for p := range playing {
		diff := ideal - float64(stats[p].GamesPlayed)
		if diff > 0 {
			score += diff * underIdealWeight
		} else {
			score += diff * overIdealWeight
		}
	}

	// Priority 2: waiting streaks. Benching someone who already waited
	// costs per accumulated wait, more if they are also under-played;
	// ending a streak earns a proportional reward.
	for _, p := range allPlayers {
		st := stats[p]
		if playing[p] {
			if st.ConsecutiveWaits > 0 {
				score += float64(st.ConsecutiveWaits) * waitReliefBonus
			}
			continue
		}
		score -= float64(st.ConsecutiveWaits) * waitPenaltyPerMatch
		if float64(st.GamesPlayed) < ideal {
			score -= waitWhileUnderPenalty
		}
	}

	// Priority 3: partner diversity. Repeats cost more each time.
	score += partnershipScore(team1, stats)
	score += partnershipScore(team2, stats)

	// Priority 4: keep the two sides close in prior experience.
	expDiff := math.Abs(float64(teamExperience(team1, stats) - teamExperience(team2, stats)))
	score -= expDiff * experienceDiffPenalty
	if expDiff <= 1 {
		score += balancedTeamsBonus
	}

	if hasDuplicateTeams(team1, team2, existing) {
		score -= duplicateTeamsPenalty
	}

	return score
}

func partnershipScore(team []models.PlayerRef, stats map[models.PlayerRef]*PlayerStats) float64 {
	score := 0.0
	for i := 0; i < len(team); i++ {
		for j := i + 1; j < len(team); j++ {
			times := stats[team[i]].Partners[team[j]]
			if times > 0 {
				score -= float64(times) * repeatPartnerPenalty
			} else {
				score += newPartnerBonus
			}
		}
	}
	return score
}

func teamExperience(team []models.PlayerRef, stats map[models.PlayerRef]*PlayerStats) int {
	total := 0
	for _, p := range team {
		total += stats[p].GamesPlayed
	}
	return total
}

// teamKey builds an order-independent identity for a team.
func teamKey(team []models.PlayerRef) string {
	parts := make([]string, len(team))
	for i, p := range team {
		parts[i] = p.String()
	}
	sort.Strings(parts)
	return strings.Join(parts, "-")
}

// hasDuplicateTeams reports whether the unordered pairing
// {team1, team2} already appeared in the history, in either
// assignment.
func hasDuplicateTeams(team1, team2 []models.PlayerRef, existing []models.Match) bool {
	k1, k2 := teamKey(team1), teamKey(team2)
	for i := range existing {
		e1, e2 := teamKey(existing[i].Team1), teamKey(existing[i].Team2)
		if (k1 == e1 && k2 == e2) || (k1 == e2 && k2 == e1) {
			return true
		}
	}
	return false
}
