package predict

import (
	"fmt"
	"strings"
	"time"
)

// Stadium is a venue where a game can be played.
type Stadium struct {
	// Code identifies the stadium in schedules and score tables.
	Code string

	Name     string
	Location string

	// Lat and Lon are in degrees (north and east positive).
	Lat float64
	Lon float64

	// Elevation is in meters.
	Elevation float64
}

func (s Stadium) String() string {
	return fmt.Sprintf("%s (%s, %s)", s.Code, s.Name, s.Location)
}

// Team is a participant in a competition.
type Team struct {
	Code    string
	Name    string
	Stadium *Stadium

	// Color1 and Color2 are HTML RGB colors ("#RRGGBB").
	Color1 string
	Color2 string

	// Stats is written by Engine before any simulation and only read afterward.
	Stats *Stats
}

func (t Team) String() string {
	return fmt.Sprintf("%s (%s)", t.Code, t.Name)
}

// ScoreCategory is one way of scoring points.
type ScoreCategory struct {
	Code        string
	Description string
	Points      float64

	// Probabilistic categories are drawn as successes out of the number of trials given by Condition.
	Probabilistic bool

	// OpponentAffects blends the opponent's defensive tendency into the expected value.
	OpponentAffects bool

	// Base is the probability used when no qualifying historical trials exist.
	Base float64

	// Condition counts the trials of a probabilistic category. Nil otherwise.
	Condition Expr
}

// ScoreSettings is the ordered set of score categories used by a competition.
type ScoreSettings struct {
	categories []*ScoreCategory
	index      map[string]int
	order      []int
}

// NewScoreSettings indexes the categories and resolves the order in which they must be simulated.
// Conditions may only reference categories in the set and must not form a cycle.
func NewScoreSettings(categories []*ScoreCategory) (*ScoreSettings, error) {
	ss := &ScoreSettings{
		categories: categories,
		index:      make(map[string]int, len(categories)),
	}
	for i, c := range categories {
		if _, dup := ss.index[c.Code]; dup {
			return nil, fmt.Errorf("duplicate score category %q", c.Code)
		}
		ss.index[c.Code] = i
	}
	for _, c := range categories {
		if c.Probabilistic && c.Condition == nil {
			return nil, &ConditionError{Category: c.Code, Reason: "probabilistic category has no condition"}
		}
		if c.Condition == nil {
			continue
		}
		if err := c.Condition.resolve(ss.index); err != nil {
			return nil, &ConditionError{Category: c.Code, Reason: err.Error()}
		}
	}
	order, err := ss.dependencyOrder()
	if err != nil {
		return nil, err
	}
	ss.order = order
	return ss, nil
}

// Len returns the number of categories.
func (ss *ScoreSettings) Len() int {
	return len(ss.categories)
}

// At returns the category at position i.
func (ss *ScoreSettings) At(i int) *ScoreCategory {
	return ss.categories[i]
}

// Index returns the position of the category with the given code.
func (ss *ScoreSettings) Index(code string) (int, bool) {
	i, ok := ss.index[code]
	return i, ok
}

// Categories returns the categories in declaration order.
func (ss *ScoreSettings) Categories() []*ScoreCategory {
	return ss.categories
}

// Points returns the point value of every category in declaration order.
func (ss *ScoreSettings) Points() []float64 {
	p := make([]float64, len(ss.categories))
	for i, c := range ss.categories {
		p[i] = c.Points
	}
	return p
}

// SimulationOrder returns category positions ordered so that every category follows the categories its condition reads.
func (ss *ScoreSettings) SimulationOrder() []int {
	return ss.order
}

func (ss *ScoreSettings) dependencyOrder() ([]int, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(ss.categories))
	order := make([]int, 0, len(ss.categories))

	var visit func(i int, path []string) error
	visit = func(i int, path []string) error {
		switch state[i] {
		case done:
			return nil
		case visiting:
			return &ConditionError{Category: ss.categories[i].Code, Reason: "cyclic condition: " + strings.Join(append(path, ss.categories[i].Code), " -> ")}
		}
		state[i] = visiting
		if cond := ss.categories[i].Condition; cond != nil {
			for _, ref := range References(cond) {
				if err := visit(ref.Category, append(path, ss.categories[i].Code)); err != nil {
					return err
				}
			}
		}
		state[i] = done
		order = append(order, i)
		return nil
	}

	for i := range ss.categories {
		if err := visit(i, nil); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// ScoreRow is one historical game from one team's perspective.
type ScoreRow struct {
	Round    int
	Opponent string
	Venue    string

	// Weight defaults to 1.
	Weight float64

	// For and Against are counts indexed by category position.
	For     []float64
	Against []float64
}

// Count returns the row's count for a category in the given direction.
func (r ScoreRow) Count(d Direction, category int) float64 {
	if d == For {
		return r.For[category]
	}
	return r.Against[category]
}

// ScoreTable is a team's historical score record.
type ScoreTable struct {
	Team string
	Rows []ScoreRow
}

// Weights returns the row weights.
func (t *ScoreTable) Weights() []float64 {
	w := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		w[i] = r.Weight
	}
	return w
}

// Column returns the counts of a category in the given direction for every row.
func (t *ScoreTable) Column(d Direction, category int) []float64 {
	col := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		col[i] = r.Count(d, category)
	}
	return col
}

// ScheduledGame is a contest to simulate.
type ScheduledGame struct {
	Round int
	Date  time.Time
	Team1 *Team
	Team2 *Team
	Venue *Stadium

	// Knockout games cannot end in a draw: ties are split evenly between the teams.
	Knockout bool

	Settings    *ScoreSettings
	Simulations int
}

// Key identifies the game in a result map.
func (g *ScheduledGame) Key() string {
	return MatchupKey(g.Team1.Code, g.Team2.Code)
}

// MatchupKey formats the result-map key for two teams.
func MatchupKey(team1, team2 string) string {
	return team1 + "v" + team2
}

func (g *ScheduledGame) String() string {
	return fmt.Sprintf("round %d: %s v %s at %s", g.Round, g.Team1.Code, g.Team2.Code, g.Venue.Code)
}
