package rank

import (
	"bytes"
	"fmt"
	"os"

	"github.com/JoeJimFlood/SportPredictifier/internal/load"
	"github.com/JoeJimFlood/SportPredictifier/internal/predict"
	"github.com/JoeJimFlood/SportPredictifier/internal/report"
)

// Rank ranks every team with a score table by opponent-adjusted points and prints the rankings.
func Rank(ctx *Context) ([]predict.Ranking, error) {
	settings, err := load.ReadSettings(ctx, ctx.SettingsFile)
	if err != nil {
		return nil, fmt.Errorf("Rank: %w", err)
	}
	season, err := load.LoadSeason(ctx, settings, true)
	if err != nil {
		return nil, fmt.Errorf("Rank: %w", err)
	}
	rankings := predict.Rank(season.ScoreSettings, season.Tables)
	if len(rankings) == 0 {
		return nil, fmt.Errorf("Rank: no team has a game against a ranked opponent")
	}
	report.RankingTable(os.Stdout, rankings)

	if ctx.Round == 0 {
		return rankings, nil
	}
	opts := report.Options{Force: ctx.Force, DryRun: ctx.DryRun}
	if _, err := report.Write(ctx, settings.RankingFile(ctx.Round), opts, func(buf *bytes.Buffer) error {
		return report.RankingsCSV(buf, rankings)
	}); err != nil {
		return nil, fmt.Errorf("Rank: %w", err)
	}
	return rankings, nil
}
