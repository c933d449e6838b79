package validatetables

import "context"

type Context struct {
	context.Context

	SettingsFile string

	// Round also checks the schedule of a round. Zero checks the tables only.
	Round int
}

func NewContext(ctx context.Context) *Context {
	return &Context{Context: ctx}
}
