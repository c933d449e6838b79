// Package report writes forecasts, matrices, rankings, and distances as workbooks, CSV files, and console tables.
package report

import (
	"fmt"
	"io"
	"log"
	"math"

	"github.com/JoeJimFlood/SportPredictifier/internal/predict"
	"github.com/xuri/excelize/v2"
)

const (
	forecastSheet = "Forecasts"
	matrixSheet   = "Matrix"
)

// built-in excelize number formats
const (
	numFmtInteger = 1
	numFmtFixed2  = 2
	numFmtPercent = 9
)

// Forecast rows, 1-based as in the workbook.
const (
	rowTeams = iota + 1
	rowLocation
	rowQuality
	rowEntropy
	rowHype
	rowChance
	rowExpected
	rowPercentile
)

type styles struct {
	index   int
	score   int
	percent int
	fixed2  int
	fixed3  int
	teams   map[string]int
}

func newStyles(f *excelize.File, teams map[string]*predict.Team) (*styles, error) {
	s := &styles{teams: make(map[string]int, len(teams))}
	var err error
	if s.index, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, Alignment: &excelize.Alignment{Horizontal: "right"}}); err != nil {
		return nil, err
	}
	if s.score, err = f.NewStyle(&excelize.Style{NumFmt: numFmtInteger, Alignment: &excelize.Alignment{Horizontal: "right"}}); err != nil {
		return nil, err
	}
	if s.percent, err = f.NewStyle(&excelize.Style{NumFmt: numFmtPercent, Alignment: &excelize.Alignment{Horizontal: "right"}}); err != nil {
		return nil, err
	}
	if s.fixed2, err = f.NewStyle(&excelize.Style{NumFmt: numFmtFixed2, Alignment: &excelize.Alignment{Horizontal: "center"}}); err != nil {
		return nil, err
	}
	three := "0.000"
	if s.fixed3, err = f.NewStyle(&excelize.Style{CustomNumFmt: &three, Alignment: &excelize.Alignment{Horizontal: "center"}}); err != nil {
		return nil, err
	}
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	for code, t := range teams {
		style := &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: t.Color2},
			Alignment: &excelize.Alignment{Horizontal: "center"},
			Border:    border,
		}
		if t.Color1 != "" {
			style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{t.Color1}}
		}
		if s.teams[code], err = f.NewStyle(style); err != nil {
			return nil, fmt.Errorf("unable to style team %s: %w", code, err)
		}
	}
	return s, nil
}

func cell(col, row int) string {
	// only fails for non-positive coordinates
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		panic(err)
	}
	return name
}

func setStyled(f *excelize.File, sheet string, col, row int, value any, style int) error {
	c := cell(col, row)
	if err := f.SetCellValue(sheet, c, value); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, c, c, style)
}

func setMerged(f *excelize.File, sheet string, col1, col2, row int, value any, style int) error {
	if err := f.MergeCell(sheet, cell(col1, row), cell(col2, row)); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell(col1, row), value); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell(col1, row), cell(col2, row), style)
}

// Forecasts writes the forecast workbook: one pair of columns per game, in the order given.
func Forecasts(w io.Writer, teams map[string]*predict.Team, results []predict.Result) error {
	log.Print("generating report")
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", forecastSheet); err != nil {
		return fmt.Errorf("Forecasts: %w", err)
	}
	st, err := newStyles(f, teams)
	if err != nil {
		return fmt.Errorf("Forecasts: unable to create styles: %w", err)
	}
	if err := writeForecasts(f, st, results); err != nil {
		return fmt.Errorf("Forecasts: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("Forecasts: unable to write workbook: %w", err)
	}
	return nil
}

func writeForecasts(f *excelize.File, st *styles, results []predict.Result) error {
	sheet := forecastSheet
	labels := []string{"Location", "Quality", "Entropy", "Hype", "Chance of Winning", "Expected Score"}
	for i, l := range labels {
		if err := setStyled(f, sheet, 1, rowLocation+i, l, st.index); err != nil {
			return err
		}
	}
	for i, p := range predict.Percentiles {
		label := fmt.Sprintf("%.0fth Percentile Score", 100*p)
		if err := setStyled(f, sheet, 1, rowPercentile+i, label, st.index); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", 20); err != nil {
		return err
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, XSplit: 1, TopLeftCell: "B1", ActivePane: "topRight"}); err != nil {
		return err
	}

	for i, r := range results {
		c1 := 3*i + 2
		c2 := c1 + 1
		for j, team := range r.Teams {
			if err := setStyled(f, sheet, c1+j, rowTeams, team, st.teams[team]); err != nil {
				return err
			}
		}
		location := ""
		if r.Venue != nil {
			location = r.Venue.Location
			if location == "" {
				location = r.Venue.Name
			}
		}
		if err := setMerged(f, sheet, c1, c2, rowLocation, location, st.fixed2); err != nil {
			return err
		}
		if r.Quality != 0 || r.Hype != 0 {
			if err := setMerged(f, sheet, c1, c2, rowQuality, r.Quality, st.fixed3); err != nil {
				return err
			}
			if err := setMerged(f, sheet, c1, c2, rowEntropy, r.Entropy, st.fixed3); err != nil {
				return err
			}
			if err := setMerged(f, sheet, c1, c2, rowHype, r.Hype, st.fixed2); err != nil {
				return err
			}
		}
		for j, team := range r.Teams {
			col := c1 + j
			if err := setStyled(f, sheet, col, rowChance, r.Chances[team], st.percent); err != nil {
				return err
			}
			dist := r.Distributions[team]
			if err := setStyled(f, sheet, col, rowExpected, dist.Mean, st.score); err != nil {
				return err
			}
			for k, v := range dist.Percentiles {
				if err := setStyled(f, sheet, col, rowPercentile+k, v, st.score); err != nil {
					return err
				}
			}
		}
		n1, _ := excelize.ColumnNumberToName(c1)
		n2, _ := excelize.ColumnNumberToName(c2)
		n3, _ := excelize.ColumnNumberToName(c2 + 1)
		if err := f.SetColWidth(sheet, n1, n2, 7.5); err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, n3, n3, 1); err != nil {
			return err
		}
	}
	return nil
}

// Matrix writes a workbook whose single sheet holds the probability that the row team beats the column team.
func Matrix(w io.Writer, teams map[string]*predict.Team, order []string, m [][]float64) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", matrixSheet); err != nil {
		return fmt.Errorf("Matrix: %w", err)
	}
	st, err := newStyles(f, teams)
	if err != nil {
		return fmt.Errorf("Matrix: unable to create styles: %w", err)
	}
	if err := writeMatrix(f, st, order, m); err != nil {
		return fmt.Errorf("Matrix: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("Matrix: unable to write workbook: %w", err)
	}
	return nil
}

func writeMatrix(f *excelize.File, st *styles, order []string, m [][]float64) error {
	sheet := matrixSheet
	for i, team := range order {
		if err := setStyled(f, sheet, i+2, 1, team, st.teams[team]); err != nil {
			return err
		}
		if err := setStyled(f, sheet, 1, i+2, team, st.teams[team]); err != nil {
			return err
		}
	}
	for i := range m {
		for j, p := range m[i] {
			if math.IsNaN(p) {
				continue
			}
			if err := setStyled(f, sheet, j+2, i+2, p, st.percent); err != nil {
				return err
			}
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, XSplit: 1, YSplit: 1, TopLeftCell: "B2", ActivePane: "bottomRight"})
}
