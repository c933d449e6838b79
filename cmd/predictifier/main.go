package main

import (
	"context"

	fs "cloud.google.com/go/firestore"
	"github.com/alecthomas/kong"
)

type globalCmd struct {
	Settings   string `help:"Season settings file, local or gs://." default:"settings.yaml"`
	ProjectID  string `name:"project" help:"GCP project ID. Forecasts are only stored in Firestore when set." env:"GCP_PROJECT"`
	DryRun     bool   `help:"Log writes instead of writing files and documents."`
	Force      bool   `help:"Overwrite existing files and documents without asking."`
	NoProgress bool   `help:"Hide progress bars."`
	Seed       *int64 `help:"Random seed. Overrides the settings file. Negative seeds use the clock."`
}

// firestoreClient returns nil when no project is configured.
func (g *globalCmd) firestoreClient(ctx context.Context) (*fs.Client, error) {
	if g.ProjectID == "" {
		return nil, nil
	}
	return fs.NewClient(ctx, g.ProjectID)
}

var CLI struct {
	globalCmd

	Predict   predictCmd   `cmd:"" help:"Forecast every game of a round."`
	Matrix    matrixCmd    `cmd:"" help:"Play every team against every other and write the win probability matrix."`
	Rank      rankCmd      `cmd:"" help:"Rank teams by opponent-adjusted points."`
	Distances distancesCmd `cmd:"" help:"Write the distance between every pair of stadia."`
	Validate  validateCmd  `cmd:"" help:"Check score tables and schedules for consistency."`

	Season struct {
		Setup setupSeasonCmd `cmd:"" help:"Create empty score tables and publish the season to Firestore."`
	} `cmd:""`

	Forecasts forecastsCmd `cmd:"" help:"List the forecasts stored in Firestore for a round."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("predictifier"),
		kong.Description("Forecast sports games by simulating scoring events."),
	)
	err := ctx.Run(&CLI.globalCmd)
	ctx.FatalIfErrorf(err)
}
