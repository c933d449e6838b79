package distances

import (
	"bytes"
	"fmt"
	"log"
	"sort"

	"github.com/JoeJimFlood/SportPredictifier/internal/load"
	"github.com/JoeJimFlood/SportPredictifier/internal/predict"
	"github.com/JoeJimFlood/SportPredictifier/internal/report"
	"github.com/JoeJimFlood/SportPredictifier/internal/uri"
)

// Scale returns the factor that converts geodesic fractions to the named unit.
func Scale(unit string) (float64, error) {
	switch unit {
	case "km", "":
		return predict.HalfCircumferenceKm, nil
	case "mi":
		return predict.HalfCircumferenceMi, nil
	case "fraction":
		return 1, nil
	}
	return 0, fmt.Errorf("unknown unit %q", unit)
}

// Distances writes the distance between every pair of stadia, ordered by stadium code.
func Distances(ctx *Context) error {
	scale, err := Scale(ctx.Unit)
	if err != nil {
		return fmt.Errorf("Distances: %w", err)
	}
	b, err := uri.ReadAll(ctx, ctx.StadiaFile)
	if err != nil {
		return fmt.Errorf("Distances: unable to read stadia: %w", err)
	}
	stadia, err := load.Stadia(ctx.StadiaFile, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("Distances: %w", err)
	}
	sorted := make([]*predict.Stadium, 0, len(stadia))
	for _, s := range stadia {
		sorted = append(sorted, s)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })
	log.Printf("calculating distances between %d stadia", len(sorted))

	opts := report.Options{Force: ctx.Force, DryRun: ctx.DryRun}
	if _, err := report.Write(ctx, ctx.OutputFile, opts, func(buf *bytes.Buffer) error {
		return report.DistanceCSV(buf, sorted, scale)
	}); err != nil {
		return fmt.Errorf("Distances: %w", err)
	}
	return nil
}
