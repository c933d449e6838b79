package main

import (
	"context"

	"github.com/JoeJimFlood/SportPredictifier/internal/tools/distances"
)

type distancesCmd struct {
	Stadia string `arg:"" help:"Stadia file, local or gs://." required:""`
	Output string `arg:"" help:"Distance matrix CSV to write, local or gs://." required:""`
	Unit   string `help:"Distance unit." enum:"km,mi,fraction" default:"km"`
}

func (a *distancesCmd) Run(g *globalCmd) error {
	ctx := distances.NewContext(context.Background())
	ctx.StadiaFile = a.Stadia
	ctx.OutputFile = a.Output
	ctx.Unit = a.Unit
	ctx.DryRun = g.DryRun
	ctx.Force = g.Force
	return distances.Distances(ctx)
}
