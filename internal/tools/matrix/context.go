package matrix

import "context"

type Context struct {
	context.Context

	Force      bool
	DryRun     bool
	NoProgress bool

	SettingsFile string

	// Seed overrides the seed in the settings file.
	Seed *int64
}

func NewContext(ctx context.Context) *Context {
	return &Context{Context: ctx}
}
