package main

import (
	"context"
	"fmt"

	"github.com/JoeJimFlood/SportPredictifier/internal/load"
	"github.com/JoeJimFlood/SportPredictifier/internal/tools/forecasts"
	"github.com/JoeJimFlood/SportPredictifier/internal/tools/setupseason"
)

type setupSeasonCmd struct{}

func (a *setupSeasonCmd) Run(g *globalCmd) error {
	ctx := setupseason.NewContext(context.Background())
	ctx.SettingsFile = g.Settings
	ctx.DryRun = g.DryRun
	ctx.Force = g.Force
	var err error
	ctx.FirestoreClient, err = g.firestoreClient(ctx.Context)
	if err != nil {
		return err
	}
	if ctx.FirestoreClient != nil {
		defer ctx.FirestoreClient.Close()
	}
	return setupseason.SetupSeason(ctx)
}

type forecastsCmd struct {
	Round  int    `arg:"" help:"Round to list." required:""`
	Season string   `help:"Season ID. Defaults to the season named in the settings file."`
	Games  []string `help:"Matchup keys to list (e.g. SEAvSD). Defaults to every game in the round."`
}

func (a *forecastsCmd) Run(g *globalCmd) error {
	ctx := forecasts.NewContext(context.Background())
	ctx.Round = a.Round
	ctx.Season = a.Season
	ctx.Games = a.Games
	if ctx.Season == "" {
		s, err := load.ReadSettings(ctx, g.Settings)
		if err != nil {
			return err
		}
		ctx.Season = s.Season
	}
	if ctx.Season == "" {
		return fmt.Errorf("no season given and none named in %s", g.Settings)
	}
	var err error
	ctx.FirestoreClient, err = g.firestoreClient(ctx.Context)
	if err != nil {
		return err
	}
	if ctx.FirestoreClient == nil {
		return fmt.Errorf("a GCP project is required to read forecasts")
	}
	defer ctx.FirestoreClient.Close()
	return forecasts.Forecasts(ctx)
}
