package matrix

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/JoeJimFlood/SportPredictifier/internal/load"
	"github.com/JoeJimFlood/SportPredictifier/internal/predict"
	"github.com/JoeJimFlood/SportPredictifier/internal/report"
	"github.com/JoeJimFlood/SportPredictifier/internal/validate"
)

const defaultOutput = "matrix.xlsx"

// Matrix plays every configured matchup and writes the win probability matrix.
func Matrix(ctx *Context) error {
	settings, err := load.ReadSettings(ctx, ctx.SettingsFile)
	if err != nil {
		return fmt.Errorf("Matrix: %w", err)
	}
	mc, err := settings.MatrixConfig()
	if err != nil {
		return fmt.Errorf("Matrix: %w", err)
	}
	season, err := load.LoadSeason(ctx, settings, true)
	if err != nil {
		return fmt.Errorf("Matrix: %w", err)
	}
	rounds, err := mc.Schedule(season.Teams, season.Stadia, season.ScoreSettings, settings.Matrix.Simulations)
	if err != nil {
		return fmt.Errorf("Matrix: unable to schedule matchups: %w", err)
	}
	var games []*predict.ScheduledGame
	for _, r := range rounds {
		games = append(games, r...)
	}
	if err := validate.All(season.Teams, season.Stadia, season.Tables, games, season.ScoreSettings); err != nil {
		return fmt.Errorf("Matrix: invalid inputs:\n%w", err)
	}
	log.Printf("scheduled %d matchups in %d rounds", len(games), len(rounds))

	engine := &predict.Engine{
		Settings: season.ScoreSettings,
		Teams:    season.Teams,
		Tables:   season.Tables,
		Stadia:   season.Stadia,
		Spatial:  settings.SpatialWeighting,
	}
	seed := settings.SeedOr(-1)
	if ctx.Seed != nil {
		seed = *ctx.Seed
	}
	runner := predict.Runner{
		Simulator:  predict.Simulator{Tolerance: settings.PoissonTolerance},
		Seed:       seed,
		NoProgress: ctx.NoProgress,
	}
	if settings.SpatialWeighting {
		// statistics depend on where each round is played
		runner.BeforeRound = func(games []*predict.ScheduledGame) error {
			engine.References = predict.GameReferences(games)
			return engine.Run()
		}
	} else if err := engine.Run(); err != nil {
		return fmt.Errorf("Matrix: unable to calculate statistics: %w", err)
	}

	results, err := runner.RunRounds(ctx, rounds)
	if err != nil {
		return fmt.Errorf("Matrix: %w", err)
	}

	order := mc.Teams()
	m := predict.WinMatrix(order, results)
	report.MatrixTable(os.Stdout, order, m)

	output := settings.Matrix.Output
	if output == "" {
		output = defaultOutput
	}
	opts := report.Options{Force: ctx.Force, DryRun: ctx.DryRun}
	if _, err := report.Write(ctx, settings.OutputFile(output), opts, func(buf *bytes.Buffer) error {
		return report.Matrix(buf, season.Teams, order, m)
	}); err != nil {
		return fmt.Errorf("Matrix: %w", err)
	}
	return nil
}
