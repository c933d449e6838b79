package predict

import (
	"fmt"
	"math"
)

// residualVarianceScale combines the two residual variances of an opponent-affected category.
// It is an empirical choice carried over from the model's calibration rather than a derived identity.
const residualVarianceScale = 0.25

// Expected returns the expected value of every score category for a team facing an opponent.
//
// For opponent-affected categories the mean blends the team's residual "for" with the opponent's raw "against",
// and the opponent's residual "against" with the team's raw "for", weighting each adjustment once.
// Other categories use the team's own "for" statistic. Probabilities are clamped into [0, 1].
func Expected(team, opponent *Team, settings *ScoreSettings) ([]Stat, error) {
	if team.Stats == nil {
		return nil, fmt.Errorf("team %s has no statistics", team.Code)
	}
	if opponent.Stats == nil {
		return nil, fmt.Errorf("team %s has no statistics", opponent.Code)
	}
	ts := team.Stats
	ops := opponent.Stats

	out := make([]Stat, settings.Len())
	for c, cat := range settings.Categories() {
		var s Stat
		if cat.OpponentAffects {
			s.Mean = (ts.Residual[For][c].Mean + ops.Own[Against][c].Mean + ops.Residual[Against][c].Mean + ts.Own[For][c].Mean) / 2
			if !cat.Probabilistic {
				s.Variance = residualVarianceScale * (ts.Residual[For][c].Variance + ops.Residual[Against][c].Variance)
			}
		} else {
			s = ts.Own[For][c]
		}
		if cat.Probabilistic {
			s.Mean = CapProbability(s.Mean)
			s.Variance = 0
		}
		out[c] = s
	}
	return out, nil
}

// CapProbability clamps p into [0, 1].
func CapProbability(p float64) float64 {
	return math.Min(math.Max(p, 0), 1)
}

// ExpectedScores returns the expected values for both teams of a game, keyed by team code.
func (g *ScheduledGame) ExpectedScores() (map[string][]Stat, error) {
	e1, err := Expected(g.Team1, g.Team2, g.Settings)
	if err != nil {
		return nil, err
	}
	e2, err := Expected(g.Team2, g.Team1, g.Settings)
	if err != nil {
		return nil, err
	}
	return map[string][]Stat{g.Team1.Code: e1, g.Team2.Code: e2}, nil
}
