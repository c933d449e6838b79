package predictify

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/JoeJimFlood/SportPredictifier/internal/firestore"
	"github.com/JoeJimFlood/SportPredictifier/internal/load"
	"github.com/JoeJimFlood/SportPredictifier/internal/predict"
	"github.com/JoeJimFlood/SportPredictifier/internal/report"
	"github.com/JoeJimFlood/SportPredictifier/internal/validate"
)

// Predictify forecasts every game of one round and writes the forecast workbook, the rankings,
// and optionally the raw draws and the Firestore forecast documents.
func Predictify(ctx *Context) error {
	settings, err := load.ReadSettings(ctx, ctx.SettingsFile)
	if err != nil {
		return fmt.Errorf("Predictify: %w", err)
	}
	season, err := load.LoadSeason(ctx, settings, true)
	if err != nil {
		return fmt.Errorf("Predictify: %w", err)
	}
	games, err := season.Schedule(ctx, ctx.Round)
	if err != nil {
		return fmt.Errorf("Predictify: %w", err)
	}
	if len(games) == 0 {
		return fmt.Errorf("Predictify: no games scheduled in round %d", ctx.Round)
	}
	if err := validate.All(season.Teams, season.Stadia, season.Tables, games, season.ScoreSettings); err != nil {
		return fmt.Errorf("Predictify: invalid inputs:\n%w", err)
	}

	engine := &predict.Engine{
		Settings:   season.ScoreSettings,
		Teams:      season.Teams,
		Tables:     season.Tables,
		Stadia:     season.Stadia,
		Spatial:    settings.SpatialWeighting,
		References: predict.GameReferences(games),
	}
	if err := engine.Run(); err != nil {
		return fmt.Errorf("Predictify: unable to calculate statistics: %w", err)
	}

	seed := settings.SeedOr(-1)
	if ctx.Seed != nil {
		seed = *ctx.Seed
	}
	runner := predict.Runner{
		Simulator:  predict.Simulator{Tolerance: settings.PoissonTolerance, KeepDraws: settings.KeepDraws},
		Seed:       seed,
		NoProgress: ctx.NoProgress,
	}
	log.Printf("simulating %d games", len(games))
	byKey, err := runner.Run(ctx, games)
	if err != nil {
		return fmt.Errorf("Predictify: %w", err)
	}

	log.Print("ranking teams")
	rankings := predict.Rank(season.ScoreSettings, season.Tables)
	results := make([]predict.Result, 0, len(games))
	for _, g := range games {
		r, ok := byKey[g.Key()]
		if !ok {
			continue
		}
		if err := r.SetHype(rankings); err != nil {
			log.Printf("unable to rate %s: %v", g.Key(), err)
		}
		results = append(results, r)
	}

	report.ForecastTable(os.Stdout, results)

	opts := report.Options{Force: ctx.Force, DryRun: ctx.DryRun}
	if _, err := report.Write(ctx, settings.OutputFile(ForecastFile(ctx.Round)), opts, func(buf *bytes.Buffer) error {
		return report.Forecasts(buf, season.Teams, results)
	}); err != nil {
		return fmt.Errorf("Predictify: %w", err)
	}
	if _, err := report.Write(ctx, settings.RankingFile(ctx.Round), opts, func(buf *bytes.Buffer) error {
		return report.RankingsCSV(buf, rankings)
	}); err != nil {
		return fmt.Errorf("Predictify: %w", err)
	}
	if settings.KeepDraws {
		for _, r := range results {
			r := r
			key := predict.MatchupKey(r.Teams[0], r.Teams[1])
			if _, err := report.Write(ctx, settings.OutputFile(DrawsFile(ctx.Round, key)), opts, func(buf *bytes.Buffer) error {
				return report.DrawsCSV(buf, r)
			}); err != nil {
				return fmt.Errorf("Predictify: %w", err)
			}
		}
	}

	if ctx.FirestoreClient == nil || settings.Season == "" {
		return nil
	}
	seasonRef := firestore.SeasonRef(ctx.FirestoreClient, settings.Season)
	forecasts := make([]firestore.Forecast, len(results))
	simulations := make(map[string]int, len(games))
	for _, g := range games {
		simulations[g.Key()] = g.Simulations
	}
	for i, r := range results {
		key := predict.MatchupKey(r.Teams[0], r.Teams[1])
		forecasts[i] = firestore.NewForecast(seasonRef, r, simulations[key], seed)
	}
	if err := firestore.WriteForecasts(ctx, ctx.FirestoreClient, seasonRef, ctx.Round, forecasts, firestore.WriteOptions{Force: ctx.Force, DryRun: ctx.DryRun}); err != nil {
		return fmt.Errorf("Predictify: %w", err)
	}
	return nil
}

// ForecastFile names the forecast workbook of a round.
func ForecastFile(round int) string {
	return fmt.Sprintf("round_%d_forecasts.xlsx", round)
}

// DrawsFile names the raw draws of one matchup in a round.
func DrawsFile(round int, key string) string {
	return fmt.Sprintf("round_%d_%s_draws.csv", round, key)
}
