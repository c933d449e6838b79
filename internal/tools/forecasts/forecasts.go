package forecasts

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/JoeJimFlood/SportPredictifier/internal/firestore"
	"github.com/JoeJimFlood/SportPredictifier/internal/predict"
)

// Forecasts prints the forecasts stored in Firestore for one round.
func Forecasts(ctx *Context) error {
	_, seasonRef, err := firestore.GetSeason(ctx, ctx.FirestoreClient, ctx.Season)
	if err != nil {
		return fmt.Errorf("Forecasts: %w", err)
	}
	round, _, err := firestore.GetRound(ctx, seasonRef, ctx.Round)
	if err != nil {
		return fmt.Errorf("Forecasts: %w", err)
	}
	stadia, err := firestore.GetStadia(ctx, seasonRef)
	if err != nil {
		return fmt.Errorf("Forecasts: %w", err)
	}
	teams, err := firestore.GetTeams(ctx, seasonRef, stadia)
	if err != nil {
		return fmt.Errorf("Forecasts: %w", err)
	}
	var fcs []firestore.Forecast
	if len(ctx.Games) > 0 {
		fcs, err = firestore.GetForecastsByKey(ctx, ctx.FirestoreClient, seasonRef, ctx.Round, ctx.Games)
	} else {
		fcs, err = firestore.GetForecasts(ctx, seasonRef, ctx.Round)
	}
	if err != nil {
		return fmt.Errorf("Forecasts: %w", err)
	}
	fmt.Printf("Round %d: %d forecasts, updated %s\n", round.Number, len(fcs), round.Updated.Format("2006-01-02 15:04"))
	PrintTable(os.Stdout, fcs, teams, stadia)
	return nil
}

// PrintTable prints one line per team of each stored forecast, naming teams and venues where known.
func PrintTable(w io.Writer, fcs []firestore.Forecast, teams map[string]*predict.Team, stadia map[string]*predict.Stadium) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Game", "Venue", "Team", "Chance", "Expected", "Draw", "Hype"})
	for _, f := range fcs {
		venue := ""
		if f.Venue != nil {
			venue = f.Venue.ID
			if s, ok := stadia[venue]; ok {
				venue = s.Name
			}
		}
		for i, team := range f.Teams {
			name := team
			if tm, ok := teams[team]; ok {
				name = tm.Name
			}
			row := table.Row{"", "", name, fmt.Sprintf("%0.3f", f.Chances[team]), fmt.Sprintf("%0.1f", f.Expected[team]), "", ""}
			if i == 0 {
				row[0] = f.Key()
				row[1] = venue
				row[5] = fmt.Sprintf("%0.3f", f.Draw)
				row[6] = fmt.Sprintf("%0.1f", f.Hype)
			}
			t.AppendRow(row)
		}
		t.AppendSeparator()
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}
