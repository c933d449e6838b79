package setupseason

import (
	"context"

	fs "cloud.google.com/go/firestore"
)

type Context struct {
	context.Context

	// FirestoreClient publishes the season when set.
	FirestoreClient *fs.Client

	Force  bool
	DryRun bool

	SettingsFile string
}

func NewContext(ctx context.Context) *Context {
	return &Context{Context: ctx}
}
