package load

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"

	"github.com/JoeJimFlood/SportPredictifier/internal/predict"
	"github.com/JoeJimFlood/SportPredictifier/internal/uri"
)

// Score table columns besides the per-category <code>_F and <code>_A counts.
const (
	OpponentColumn = "OPP"
	VenueColumn    = "VENUE"
	WeightColumn   = "weight"
)

// ScoreTableCSV reads a team's score table from CSV.
func ScoreTableCSV(name string, b []byte, team, roundName string, settings *predict.ScoreSettings) (*predict.ScoreTable, error) {
	t, err := readCSV(name, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return scoreTable(t, team, roundName, settings)
}

// ScoreTableXLSX reads a team's score table from the first sheet of a workbook.
func ScoreTableXLSX(name string, b []byte, team, roundName string, settings *predict.ScoreSettings) (*predict.ScoreTable, error) {
	t, err := readXLSX(name, b)
	if err != nil {
		return nil, err
	}
	return scoreTable(t, team, roundName, settings)
}

// Column returns the score table header of a category count.
func Column(code string, d predict.Direction) string {
	return code + "_" + d.String()
}

// Header returns the full score table header in the order ScoreTableCSV expects to find it written.
func Header(roundName string, settings *predict.ScoreSettings) []string {
	h := []string{roundName, OpponentColumn, VenueColumn, WeightColumn}
	for _, d := range predict.Directions {
		for _, c := range settings.Categories() {
			h = append(h, Column(c.Code, d))
		}
	}
	return h
}

func scoreTable(t *table, team, roundName string, settings *predict.ScoreSettings) (*predict.ScoreTable, error) {
	required := []string{OpponentColumn, VenueColumn}
	for _, d := range predict.Directions {
		for _, c := range settings.Categories() {
			required = append(required, Column(c.Code, d))
		}
	}
	errs := t.require(required...)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	roundColumn := strings.ToUpper(roundName)
	st := &predict.ScoreTable{Team: team, Rows: make([]predict.ScoreRow, 0, len(t.records))}
	for _, row := range t.rows(&errs) {
		sr := predict.ScoreRow{
			Opponent: row.str(OpponentColumn),
			Venue:    row.str(VenueColumn),
			Weight:   row.numberOr(WeightColumn, 1),
			For:      make([]float64, settings.Len()),
			Against:  make([]float64, settings.Len()),
		}
		if t.has(roundColumn) {
			sr.Round = row.integer(roundColumn)
		}
		if sr.Weight < 0 {
			row.fail("negative weight %g", sr.Weight)
		}
		for c, cat := range settings.Categories() {
			sr.For[c] = row.number(Column(cat.Code, predict.For))
			sr.Against[c] = row.number(Column(cat.Code, predict.Against))
			if sr.For[c] < 0 || sr.Against[c] < 0 {
				row.fail("negative %s count", cat.Code)
			}
		}
		st.Rows = append(st.Rows, sr)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return st, nil
}

// ScoreTables reads every CSV or XLSX score table in a directory, keyed by file stem.
// A team with both a CSV and an XLSX table is an error.
func ScoreTables(ctx context.Context, dir, roundName string, settings *predict.ScoreSettings) (map[string]*predict.ScoreTable, error) {
	files, err := uri.List(ctx, dir, ".csv", ".xlsx")
	if err != nil {
		return nil, fmt.Errorf("ScoreTables: unable to list %s: %w", dir, err)
	}
	log.Printf("reading %d score tables from %s", len(files), dir)

	tables := make(map[string]*predict.ScoreTable, len(files))
	var errs []error
	for _, f := range files {
		team := uri.Stem(f)
		if _, dup := tables[team]; dup {
			errs = append(errs, fmt.Errorf("%s: more than one score table for team %s", f, team))
			continue
		}
		b, err := uri.ReadAll(ctx, f)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		var st *predict.ScoreTable
		if strings.EqualFold(path.Ext(f), ".xlsx") {
			st, err = ScoreTableXLSX(f, b, team, roundName, settings)
		} else {
			st, err = ScoreTableCSV(f, b, team, roundName, settings)
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tables[team] = st
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return tables, nil
}
