package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/JoeJimFlood/SportPredictifier/internal/predict"
)

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// RankingsCSV writes rankings, best first.
func RankingsCSV(w io.Writer, rankings []predict.Ranking) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Team", "Attack", "Defense", "Overall", "Standardised", "Quantile"}); err != nil {
		return fmt.Errorf("RankingsCSV: %w", err)
	}
	for _, r := range rankings {
		rec := []string{r.Team, ftoa(r.Attack), ftoa(r.Defense), ftoa(r.Overall), ftoa(r.Standardised), ftoa(r.Quantile)}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("RankingsCSV: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// DrawsCSV writes the raw simulated scores of one game, one simulation per line.
func DrawsCSV(w io.Writer, r predict.Result) error {
	s1, ok1 := r.Draws[r.Teams[0]]
	s2, ok2 := r.Draws[r.Teams[1]]
	if !ok1 || !ok2 {
		return fmt.Errorf("DrawsCSV: result %s has no raw draws", predict.MatchupKey(r.Teams[0], r.Teams[1]))
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"", r.Teams[0], r.Teams[1]}); err != nil {
		return fmt.Errorf("DrawsCSV: %w", err)
	}
	for i := range s1 {
		if err := cw.Write([]string{strconv.Itoa(i), ftoa(s1[i]), ftoa(s2[i])}); err != nil {
			return fmt.Errorf("DrawsCSV: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// DistanceCSV writes the distance between every pair of stadia in the given order, scaled by unit
// (predict.HalfCircumferenceKm, predict.HalfCircumferenceMi, or 1 for fractions of half the circumference).
func DistanceCSV(w io.Writer, stadia []*predict.Stadium, unit float64) error {
	cw := csv.NewWriter(w)
	header := make([]string, 0, len(stadia)+1)
	header = append(header, "")
	for _, s := range stadia {
		header = append(header, s.Code)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("DistanceCSV: %w", err)
	}
	for _, a := range stadia {
		rec := make([]string, 0, len(stadia)+1)
		rec = append(rec, a.Code)
		for _, b := range stadia {
			rec = append(rec, ftoa(unit*predict.Distance(a, b)))
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("DistanceCSV: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ScoreTableTemplate writes an empty score table with the full header for a season's score categories.
func ScoreTableTemplate(w io.Writer, header []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("ScoreTableTemplate: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
