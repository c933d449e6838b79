package predict

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Percentiles is the ladder of score percentiles reported for every team: 5th through 95th in steps of 5.
var Percentiles = [19]float64{0.05, 0.10, 0.15, 0.20, 0.25, 0.30, 0.35, 0.40, 0.45, 0.50, 0.55, 0.60, 0.65, 0.70, 0.75, 0.80, 0.85, 0.90, 0.95}

// ScoreSummary describes the simulated score distribution of one team.
type ScoreSummary struct {
	Mean        float64
	Percentiles [19]float64
}

// Summarize computes the mean and percentile ladder of simulated scores.
func Summarize(scores []float64) ScoreSummary {
	var s ScoreSummary
	if len(scores) == 0 {
		return s
	}
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)
	s.Mean = stat.Mean(sorted, nil)
	for i, p := range Percentiles {
		s.Percentiles[i] = stat.Quantile(p, stat.LinInterp, sorted, nil)
	}
	return s
}

// Outcome is the fraction of simulations won by each team or drawn.
type Outcome struct {
	Win1 float64
	Win2 float64
	Draw float64
}

// Reduce compares two teams' simulated scores trial by trial.
// In a knockout game every tie counts as half a win for each team and no draws remain.
func Reduce(scores1, scores2 []float64, knockout bool) Outcome {
	var o Outcome
	n := len(scores1)
	if n == 0 {
		return o
	}
	for i := 0; i < n; i++ {
		switch {
		case scores1[i] > scores2[i]:
			o.Win1++
		case scores1[i] < scores2[i]:
			o.Win2++
		default:
			o.Draw++
		}
	}
	if knockout {
		o.Win1 += o.Draw / 2
		o.Win2 += o.Draw / 2
		o.Draw = 0
	}
	o.Win1 /= float64(n)
	o.Win2 /= float64(n)
	o.Draw /= float64(n)
	return o
}

// Result is the simulated forecast of one game.
type Result struct {
	Round int
	Venue *Stadium
	Teams [2]string

	// Chances maps team code to win probability.
	Chances map[string]float64
	Draw    float64

	Distributions map[string]ScoreSummary

	// Draws holds the raw simulated scores by team code when the simulator keeps them.
	Draws map[string][]float64

	// Quality, Entropy, and Hype are filled in by SetHype when rankings are available.
	Quality float64
	Entropy float64
	Hype    float64
}

// Simulator draws game outcomes.
type Simulator struct {
	// Tolerance is the largest |mean − variance| treated as Poisson. Zero means DefaultTolerance.
	Tolerance float64

	// KeepDraws retains the simulated scores in each Result.
	KeepDraws bool
}

// Simulate draws g.Simulations outcomes of a game using the given random source.
// The source must not be shared with a concurrently running simulation.
func (sim Simulator) Simulate(g *ScheduledGame, src rand.Source) (Result, error) {
	tol := sim.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}
	n := g.Simulations
	if n <= 0 {
		return Result{}, fmt.Errorf("game %s: simulation count must be positive, got %d", g.Key(), n)
	}

	expected, err := g.ExpectedScores()
	if err != nil {
		return Result{}, fmt.Errorf("game %s: %w", g.Key(), err)
	}
	teams := [2]*Team{g.Team1, g.Team2}
	settings := g.Settings

	var counts [2][][]float64
	for t := range counts {
		counts[t] = make([][]float64, settings.Len())
	}

	for _, c := range settings.SimulationOrder() {
		cat := settings.At(c)
		for t, team := range teams {
			exp := expected[team.Code][c]
			if cat.Probabilistic {
				env := &drawEnv{own: counts[t], opp: counts[1-t]}
				draws := make([]float64, n)
				for i := range draws {
					env.trial = i
					draws[i] = drawBinomial(Trials(cat.Condition, env), exp.Mean, src)
				}
				counts[t][c] = draws
				continue
			}
			sampler, err := NewSampler(exp.Mean, exp.Variance, tol)
			if err != nil {
				return Result{}, fmt.Errorf("game %s: %s %s: %w", g.Key(), team.Code, cat.Code, err)
			}
			counts[t][c] = sampler.Draw(n, src)
		}
	}

	points := settings.Points()
	var scores [2][]float64
	for t := range teams {
		scores[t] = make([]float64, n)
		for c := range points {
			floats.AddScaled(scores[t], points[c], counts[t][c])
		}
	}

	o := Reduce(scores[0], scores[1], g.Knockout)
	r := Result{
		Round: g.Round,
		Venue: g.Venue,
		Teams: [2]string{g.Team1.Code, g.Team2.Code},
		Chances: map[string]float64{
			g.Team1.Code: o.Win1,
			g.Team2.Code: o.Win2,
		},
		Draw: o.Draw,
		Distributions: map[string]ScoreSummary{
			g.Team1.Code: Summarize(scores[0]),
			g.Team2.Code: Summarize(scores[1]),
		},
	}
	if sim.KeepDraws {
		r.Draws = map[string][]float64{
			g.Team1.Code: scores[0],
			g.Team2.Code: scores[1],
		}
	}
	return r, nil
}
