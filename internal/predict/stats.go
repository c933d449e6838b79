package predict

import (
	"fmt"
	"log"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Stat is a weighted mean and, where relevant, a weighted variance.
// For probabilistic categories Mean is a success probability and Variance is zero.
type Stat struct {
	Mean     float64
	Variance float64
}

// Stats holds a team's statistics indexed by direction and category position.
type Stats struct {
	// Own statistics come straight from the team's weighted history.
	Own [2][]Stat
	// Residual statistics are adjusted for the strength of the opponents faced.
	Residual [2][]Stat
}

func newStats(n int) *Stats {
	s := &Stats{}
	for _, d := range Directions {
		s.Own[d] = make([]Stat, n)
		s.Residual[d] = make([]Stat, n)
	}
	return s
}

// Engine computes team, opponent, and residual statistics from historical score tables.
// The three passes must run in order: TeamStats, OpponentStats, ResidualStats. Run does all three.
type Engine struct {
	Settings *ScoreSettings
	Teams    map[string]*Team
	Tables   map[string]*ScoreTable
	Stadia   map[string]*Stadium

	// Spatial replaces row weights with travel-distance weights.
	Spatial bool

	// References maps a team code to the stadium code of its upcoming game.
	// Teams absent from the map use row weights. Only read when Spatial is set.
	References map[string]string

	spatial  map[string]map[string][]float64
	opponent map[string]*[2][][]float64
}

// Run computes all statistics and stores them on the teams.
func (e *Engine) Run() error {
	if err := e.TeamStats(); err != nil {
		return err
	}
	if err := e.OpponentStats(); err != nil {
		return err
	}
	return e.ResidualStats()
}

// TeamStats computes every team's own weighted statistics.
func (e *Engine) TeamStats() error {
	if e.Spatial && e.spatial == nil {
		if err := e.spatialWeights(); err != nil {
			return err
		}
	}

	log.Print("calculating team statistics")
	for _, code := range sortedKeys(e.Teams) {
		team := e.Teams[code]
		if _, ok := e.Tables[code]; !ok {
			return &MissingError{Kind: "score table", Code: code, Context: "team " + code}
		}
		stats := newStats(e.Settings.Len())
		weights := e.weights(code, e.reference(code))
		for _, d := range Directions {
			for c := 0; c < e.Settings.Len(); c++ {
				stats.Own[d][c] = e.ownStat(code, d, c, weights)
			}
		}
		team.Stats = stats
	}
	return nil
}

// OpponentStats attaches to every row of every table the statistic of that row's opponent in the complementary direction.
// With spatial weighting the opponent's statistic is recomputed using the row's venue as the reference location.
func (e *Engine) OpponentStats() error {
	log.Print("calculating opponent statistics")
	e.opponent = make(map[string]*[2][][]float64, len(e.Tables))

	type cacheKey struct {
		team, venue string
	}
	cache := make(map[cacheKey]*[2][]Stat)
	spatialStats := func(opponent, venue string) *[2][]Stat {
		k := cacheKey{opponent, venue}
		if s, ok := cache[k]; ok {
			return s
		}
		weights := e.weights(opponent, venue)
		var s [2][]Stat
		for _, d := range Directions {
			s[d] = make([]Stat, e.Settings.Len())
			for c := 0; c < e.Settings.Len(); c++ {
				s[d][c] = e.ownStat(opponent, d, c, weights)
			}
		}
		cache[k] = &s
		return &s
	}

	for _, code := range sortedKeys(e.Tables) {
		table := e.Tables[code]
		var ctx [2][][]float64
		for _, d := range Directions {
			ctx[d] = make([][]float64, e.Settings.Len())
			for c := range ctx[d] {
				ctx[d][c] = make([]float64, len(table.Rows))
			}
		}
		for i, row := range table.Rows {
			opp, ok := e.Teams[row.Opponent]
			if !ok || opp.Stats == nil {
				return &MissingError{Kind: "team", Code: row.Opponent, Context: fmt.Sprintf("score table %s round %d", code, row.Round)}
			}
			own := &opp.Stats.Own
			if e.Spatial {
				if _, ok := e.Tables[row.Opponent]; !ok {
					return &MissingError{Kind: "score table", Code: row.Opponent, Context: "team " + row.Opponent}
				}
				own = spatialStats(row.Opponent, row.Venue)
			}
			for _, d := range Directions {
				for c := 0; c < e.Settings.Len(); c++ {
					ctx[d][c][i] = own[d.Complement()][c].Mean
				}
			}
		}
		e.opponent[code] = &ctx
	}
	return nil
}

// OpponentContext returns, for each row of a team's table, the opponent statistic that direction d of category c is judged against.
func (e *Engine) OpponentContext(team string, d Direction, category int) []float64 {
	ctx, ok := e.opponent[team]
	if !ok {
		return nil
	}
	return ctx[d][category]
}

// ResidualStats computes every team's opponent-adjusted statistics from the opponent context.
func (e *Engine) ResidualStats() error {
	if e.opponent == nil {
		return fmt.Errorf("ResidualStats: opponent statistics have not been calculated")
	}
	log.Print("calculating residual statistics")
	for _, code := range sortedKeys(e.Teams) {
		team := e.Teams[code]
		table := e.Tables[code]
		ctx := e.opponent[code]
		weights := e.weights(code, e.reference(code))
		for _, d := range Directions {
			for c := 0; c < e.Settings.Len(); c++ {
				cat := e.Settings.At(c)
				res := make([]float64, len(table.Rows))
				w := make([]float64, len(table.Rows))
				for i, row := range table.Rows {
					x := row.Count(d, c)
					if !cat.Probabilistic {
						res[i] = x - ctx[d][c][i]
						w[i] = weights[i]
						continue
					}
					trials := Trials(cat.Condition, rowEnv{row: row, d: d})
					if trials == 0 {
						// no rate to adjust in this game
						continue
					}
					res[i] = x/trials - ctx[d][c][i]
					w[i] = weights[i] * trials
				}
				if floats.Sum(w) == 0 {
					team.Stats.Residual[d][c] = Stat{}
					continue
				}
				if cat.Probabilistic {
					team.Stats.Residual[d][c] = Stat{Mean: WeightedMean(res, w)}
				} else {
					team.Stats.Residual[d][c] = WeightedStat(res, w)
				}
			}
		}
	}
	return nil
}

func (e *Engine) ownStat(team string, d Direction, c int, weights []float64) Stat {
	table := e.Tables[team]
	cat := e.Settings.At(c)

	if cat.Probabilistic {
		var successes, trials float64
		for i, row := range table.Rows {
			successes += weights[i] * row.Count(d, c)
			trials += weights[i] * Trials(cat.Condition, rowEnv{row: row, d: d})
		}
		if trials == 0 {
			return Stat{Mean: cat.Base}
		}
		return Stat{Mean: successes / trials}
	}

	if floats.Sum(weights) == 0 {
		return Stat{}
	}
	x := table.Column(d, c)
	if cat.OpponentAffects {
		return Stat{Mean: WeightedMean(x, weights)}
	}
	// no residual adjustment happens for these, so the variance is needed here
	return WeightedStat(x, weights)
}

func (e *Engine) reference(team string) string {
	if !e.Spatial || e.References == nil {
		return ""
	}
	return e.References[team]
}

func (e *Engine) weights(team, reference string) []float64 {
	if reference != "" {
		if w, ok := e.spatial[team][reference]; ok {
			return w
		}
	}
	return e.Tables[team].Weights()
}

func (e *Engine) spatialWeights() error {
	log.Print("calculating spatial weights")
	e.spatial = make(map[string]map[string][]float64, len(e.Tables))
	for _, code := range sortedKeys(e.Tables) {
		team, ok := e.Teams[code]
		if !ok {
			// tables for teams outside the competition are only read as opponents
			continue
		}
		if team.Stadium == nil {
			return &MissingError{Kind: "home stadium", Code: "", Context: "team " + code}
		}
		w, err := SpatialWeights(e.Tables[code], team.Stadium, e.Stadia)
		if err != nil {
			return err
		}
		e.spatial[code] = w
	}
	return nil
}

// GameReferences maps each team playing in games to the stadium code of its game.
func GameReferences(games []*ScheduledGame) map[string]string {
	refs := make(map[string]string, 2*len(games))
	for _, g := range games {
		if g.Venue == nil {
			continue
		}
		refs[g.Team1.Code] = g.Venue.Code
		refs[g.Team2.Code] = g.Venue.Code
	}
	return refs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
