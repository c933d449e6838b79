package main

import (
	"context"

	"github.com/JoeJimFlood/SportPredictifier/internal/tools/validatetables"
)

type validateCmd struct {
	Round int `help:"Also check the schedule of this round."`
}

func (a *validateCmd) Run(g *globalCmd) error {
	ctx := validatetables.NewContext(context.Background())
	ctx.SettingsFile = g.Settings
	ctx.Round = a.Round
	return validatetables.ValidateTables(ctx)
}
