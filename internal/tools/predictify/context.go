package predictify

import (
	"context"

	fs "cloud.google.com/go/firestore"
)

type Context struct {
	context.Context

	// FirestoreClient stores forecasts when set and the season settings name a season.
	FirestoreClient *fs.Client

	Force      bool
	DryRun     bool
	NoProgress bool

	SettingsFile string
	Round        int

	// Seed overrides the seed in the settings file. Nil uses the settings seed, or the clock if there is none.
	Seed *int64
}

func NewContext(ctx context.Context) *Context {
	return &Context{Context: ctx}
}
