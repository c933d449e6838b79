package report

import (
	"fmt"
	"io"
	"math"

	"github.com/JoeJimFlood/SportPredictifier/internal/predict"
	"github.com/jedib0t/go-pretty/v6/table"
)

// ForecastTable prints one line per game.
func ForecastTable(w io.Writer, results []predict.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Round", "Venue", "Team 1", "Win Prob.", "Exp. Score", "Team 2", "Win Prob.", "Exp. Score", "Draw", "Hype"})
	for _, r := range results {
		venue := ""
		if r.Venue != nil {
			venue = r.Venue.Code
		}
		t1, t2 := r.Teams[0], r.Teams[1]
		t.AppendRow(table.Row{
			r.Round,
			venue,
			t1,
			fmt.Sprintf("%0.4f", r.Chances[t1]),
			fmt.Sprintf("%0.1f", r.Distributions[t1].Mean),
			t2,
			fmt.Sprintf("%0.4f", r.Chances[t2]),
			fmt.Sprintf("%0.1f", r.Distributions[t2].Mean),
			fmt.Sprintf("%0.4f", r.Draw),
			fmt.Sprintf("%0.2f", r.Hype),
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// MatrixTable prints the probability that the row team beats the column team.
func MatrixTable(w io.Writer, order []string, m [][]float64) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	header := table.Row{""}
	for _, team := range order {
		header = append(header, team)
	}
	t.AppendHeader(header)
	for i, team := range order {
		row := table.Row{team}
		for _, p := range m[i] {
			if math.IsNaN(p) {
				row = append(row, "-")
				continue
			}
			row = append(row, fmt.Sprintf("%0.3f", p))
		}
		t.AppendRow(row)
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// RankingTable prints rankings, best first.
func RankingTable(w io.Writer, rankings []predict.Ranking) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Rank", "Team", "Attack", "Defense", "Overall", "Quantile"})
	for i, r := range rankings {
		t.AppendRow(table.Row{i + 1, r.Team, fmt.Sprintf("%0.2f", r.Attack), fmt.Sprintf("%0.2f", r.Defense), fmt.Sprintf("%0.2f", r.Overall), fmt.Sprintf("%0.4f", r.Quantile)})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}
