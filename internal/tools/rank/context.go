package rank

import "context"

type Context struct {
	context.Context

	Force  bool
	DryRun bool

	SettingsFile string

	// Round names the ranking file. Zero prints the rankings without writing them.
	Round int
}

func NewContext(ctx context.Context) *Context {
	return &Context{Context: ctx}
}
