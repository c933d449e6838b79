package predict

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WeightedMean returns the weighted average of x. It is NaN when the weights sum to zero.
func WeightedMean(x, weights []float64) float64 {
	return stat.Mean(x, weights)
}

// WeightedVariance returns the reliability-weighted variance of x:
//
//	Σw(x−x̄)² / (Σw − Σw²/Σw)
//
// It is zero when the denominator vanishes (a single effective observation).
func WeightedVariance(x, weights []float64) float64 {
	sw := floats.Sum(weights)
	if sw == 0 {
		return 0
	}
	mean := stat.Mean(x, weights)
	var num float64
	for i, v := range x {
		d := v - mean
		num += weights[i] * d * d
	}
	denom := sw - floats.Dot(weights, weights)/sw
	if denom <= 0 {
		return 0
	}
	return num / denom
}

// WeightedStat returns the weighted mean and variance of x.
func WeightedStat(x, weights []float64) Stat {
	return Stat{Mean: WeightedMean(x, weights), Variance: WeightedVariance(x, weights)}
}
