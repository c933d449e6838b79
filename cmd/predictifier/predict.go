package main

import (
	"context"

	"github.com/JoeJimFlood/SportPredictifier/internal/tools/predictify"
)

type predictCmd struct {
	Round int `arg:"" help:"Round to forecast." required:""`
}

func (a *predictCmd) Run(g *globalCmd) error {
	ctx := predictify.NewContext(context.Background())
	ctx.SettingsFile = g.Settings
	ctx.Round = a.Round
	ctx.DryRun = g.DryRun
	ctx.Force = g.Force
	ctx.NoProgress = g.NoProgress
	ctx.Seed = g.Seed
	var err error
	ctx.FirestoreClient, err = g.firestoreClient(ctx.Context)
	if err != nil {
		return err
	}
	if ctx.FirestoreClient != nil {
		defer ctx.FirestoreClient.Close()
	}
	return predictify.Predictify(ctx)
}
