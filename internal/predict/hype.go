package predict

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Hype scores how worth watching a game is: strong teams in an uncertain contest score highest.
//
// Quality is the mean ranking quantile of the two teams.
// Entropy is the base-2 entropy of the outcome probabilities, draw included.
// Hype is 100 times their product.
func (r *Result) SetHype(rankings []Ranking) error {
	quantiles := make(map[string]float64, len(rankings))
	for _, rk := range rankings {
		quantiles[rk.Team] = rk.Quantile
	}
	var q float64
	for _, t := range r.Teams {
		v, ok := quantiles[t]
		if !ok {
			return fmt.Errorf("SetHype: no ranking for team %s", t)
		}
		q += v
	}
	r.Quality = q / float64(len(r.Teams))

	p := []float64{r.Chances[r.Teams[0]], r.Chances[r.Teams[1]], r.Draw}
	if sum := floats.Sum(p); sum > 0 {
		floats.Scale(1/sum, p)
	}
	r.Entropy = stat.Entropy(p) / math.Ln2
	r.Hype = 100 * r.Quality * r.Entropy
	return nil
}
