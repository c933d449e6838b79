package predict

import (
	"math"
	"sort"

	"github.com/atgjack/prob"
	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/stat"
)

// Ranking rates a team by its historical scoring margin relative to its opponents' averages.
type Ranking struct {
	Team string

	// Attack is the mean of points scored minus the opponent's average points conceded.
	Attack float64
	// Defense is the mean of points conceded minus the opponent's average points scored.
	Defense float64
	// Overall is Attack - Defense.
	Overall float64

	Standardised float64

	// Quantile is the standard normal CDF of Standardised.
	Quantile float64
}

// ByOther sorts a slice by the values of a parallel slice.
type ByOther[X any, T constraints.Ordered] struct {
	Slice  []X
	SortBy []T
}

func (sbo ByOther[X, T]) Len() int { return len(sbo.Slice) }
func (sbo ByOther[X, T]) Swap(i, j int) {
	sbo.Slice[i], sbo.Slice[j] = sbo.Slice[j], sbo.Slice[i]
	sbo.SortBy[i], sbo.SortBy[j] = sbo.SortBy[j], sbo.SortBy[i]
}
func (sbo ByOther[X, T]) Less(i, j int) bool { return sbo.SortBy[i] < sbo.SortBy[j] }

// Rank computes rankings from every score table, best Overall first.
// Rows against opponents without a table are ignored.
func Rank(settings *ScoreSettings, tables map[string]*ScoreTable) []Ranking {
	points := settings.Points()
	score := func(row ScoreRow, d Direction) float64 {
		var s float64
		for c, p := range points {
			s += p * row.Count(d, c)
		}
		return s
	}

	pf := make(map[string]float64, len(tables))
	pa := make(map[string]float64, len(tables))
	for code, table := range tables {
		if len(table.Rows) == 0 {
			continue
		}
		var f, a float64
		for _, row := range table.Rows {
			f += score(row, For)
			a += score(row, Against)
		}
		pf[code] = f / float64(len(table.Rows))
		pa[code] = a / float64(len(table.Rows))
	}

	rankings := make([]Ranking, 0, len(tables))
	for _, code := range sortedKeys(tables) {
		var attack, defense []float64
		for _, row := range tables[code].Rows {
			oppFor, ok1 := pf[row.Opponent]
			oppAgainst, ok2 := pa[row.Opponent]
			if !ok1 || !ok2 {
				continue
			}
			attack = append(attack, score(row, For)-oppAgainst)
			defense = append(defense, score(row, Against)-oppFor)
		}
		if len(attack) == 0 {
			continue
		}
		r := Ranking{
			Team:    code,
			Attack:  stat.Mean(attack, nil),
			Defense: stat.Mean(defense, nil),
		}
		r.Overall = r.Attack - r.Defense
		rankings = append(rankings, r)
	}

	overall := make([]float64, len(rankings))
	for i, r := range rankings {
		overall[i] = r.Overall
	}
	mean, sd := stat.MeanStdDev(overall, nil)
	normal := prob.Normal{Mu: 0, Sigma: 1}
	for i := range rankings {
		z := 0.
		if sd > 0 && !math.IsNaN(sd) {
			z = (rankings[i].Overall - mean) / sd
		}
		rankings[i].Standardised = z
		rankings[i].Quantile = normal.Cdf(z)
		overall[i] = rankings[i].Overall
	}

	sort.Stable(sort.Reverse(ByOther[Ranking, float64]{Slice: rankings, SortBy: overall}))
	return rankings
}
