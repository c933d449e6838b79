package forecasts

import (
	"context"

	fs "cloud.google.com/go/firestore"
)

type Context struct {
	context.Context
	FirestoreClient *fs.Client

	Season string
	Round  int

	// Games restricts the listing to these matchup keys. Empty lists the whole round.
	Games []string
}

func NewContext(ctx context.Context) *Context {
	return &Context{Context: ctx}
}
