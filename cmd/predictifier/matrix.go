package main

import (
	"context"

	"github.com/JoeJimFlood/SportPredictifier/internal/tools/matrix"
)

type matrixCmd struct{}

func (a *matrixCmd) Run(g *globalCmd) error {
	ctx := matrix.NewContext(context.Background())
	ctx.SettingsFile = g.Settings
	ctx.DryRun = g.DryRun
	ctx.Force = g.Force
	ctx.NoProgress = g.NoProgress
	ctx.Seed = g.Seed
	return matrix.Matrix(ctx)
}
