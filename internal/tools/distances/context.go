package distances

import "context"

type Context struct {
	context.Context

	Force  bool
	DryRun bool

	StadiaFile string
	OutputFile string

	// Unit is "km", "mi", or "fraction" of half the Earth's circumference.
	Unit string
}

func NewContext(ctx context.Context) *Context {
	return &Context{Context: ctx}
}
