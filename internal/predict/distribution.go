package predict

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultTolerance is the largest |mean − variance| treated as equal when choosing a distribution family.
const DefaultTolerance = 1e-9

// Family is a discrete distribution family used to draw score counts.
type Family int

const (
	Poisson Family = iota
	Binomial
	NegativeBinomial
)

func (f Family) String() string {
	switch f {
	case Poisson:
		return "poisson"
	case Binomial:
		return "binomial"
	case NegativeBinomial:
		return "negative binomial"
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// DistributionError reports distribution parameters that cannot be drawn from.
// It points at a defect in the statistics that produced the mean and variance.
type DistributionError struct {
	Family   Family
	Mean     float64
	Variance float64
	N        float64
	P        float64
}

func (e *DistributionError) Error() string {
	return fmt.Sprintf("invalid %s parameters: mean=%g variance=%g n=%g p=%g", e.Family, e.Mean, e.Variance, e.N, e.P)
}

// Sampler draws counts from the family matching an expected mean and variance:
// Poisson when they are equal, binomial when the mean is larger, negative binomial when the variance is larger.
type Sampler struct {
	Family   Family
	Mean     float64
	Variance float64

	// N and P are the binomial or negative binomial parameters. Both are zero for Poisson.
	N float64
	P float64
}

// NewSampler chooses the distribution family and derives its parameters.
// A negative mean or variance is replaced by the other so a Poisson can be used.
func NewSampler(mean, variance, tolerance float64) (Sampler, error) {
	if mean < 0 {
		mean = variance
	}
	if variance < 0 {
		variance = mean
	}
	s := Sampler{Mean: mean, Variance: variance}
	if math.IsNaN(mean) || math.IsNaN(variance) || mean < 0 {
		s.Family = Poisson
		return s, &DistributionError{Family: Poisson, Mean: mean, Variance: variance}
	}

	switch {
	case mean == 0 || math.Abs(mean-variance) <= tolerance:
		s.Family = Poisson
		return s, nil

	case mean > variance:
		s.Family = Binomial
		s.P = 1 - variance/mean
		s.N = mean / s.P
		if !(s.P > 0 && s.P <= 1) || math.IsInf(s.N, 0) || math.IsNaN(s.N) {
			return s, s.err()
		}

	default:
		s.Family = NegativeBinomial
		s.P = mean / variance
		s.N = mean * s.P / (1 - s.P)
		if !(s.P > 0 && s.P < 1) || !(s.N > 0) || math.IsInf(s.N, 0) {
			return s, s.err()
		}
	}
	return s, nil
}

func (s Sampler) err() error {
	return &DistributionError{Family: s.Family, Mean: s.Mean, Variance: s.Variance, N: s.N, P: s.P}
}

// Draw returns n independent counts.
func (s Sampler) Draw(n int, src rand.Source) []float64 {
	out := make([]float64, n)
	switch s.Family {
	case Poisson:
		if s.Mean <= 0 {
			return out
		}
		d := distuv.Poisson{Lambda: s.Mean, Src: src}
		for i := range out {
			out[i] = d.Rand()
		}

	case Binomial:
		// The trial count is rarely an integer. Round it up with probability equal to its fractional part
		// so the mean is preserved instead of biased low by truncation.
		floorN := math.Floor(s.N)
		round := distuv.Bernoulli{P: s.N - floorN, Src: src}
		for i := range out {
			out[i] = drawBinomial(floorN+round.Rand(), s.P, src)
		}

	case NegativeBinomial:
		// Gamma–Poisson mixture with shape n and rate p/(1-p).
		g := distuv.Gamma{Alpha: s.N, Beta: s.P / (1 - s.P), Src: src}
		for i := range out {
			lambda := g.Rand()
			if lambda <= 0 {
				continue
			}
			out[i] = distuv.Poisson{Lambda: lambda, Src: src}.Rand()
		}
	}
	return out
}

func drawBinomial(n, p float64, src rand.Source) float64 {
	if n <= 0 || p <= 0 {
		return 0
	}
	if p >= 1 {
		return n
	}
	return distuv.Binomial{N: n, P: p, Src: src}.Rand()
}
