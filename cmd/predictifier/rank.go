package main

import (
	"context"

	"github.com/JoeJimFlood/SportPredictifier/internal/tools/rank"
)

type rankCmd struct {
	Round int `help:"Write the rankings to the ranking file of this round."`
}

func (a *rankCmd) Run(g *globalCmd) error {
	ctx := rank.NewContext(context.Background())
	ctx.SettingsFile = g.Settings
	ctx.Round = a.Round
	ctx.DryRun = g.DryRun
	ctx.Force = g.Force
	_, err := rank.Rank(ctx)
	return err
}
