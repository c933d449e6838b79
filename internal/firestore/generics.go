package firestore

import (
	"context"
	"errors"
	"fmt"

	fs "cloud.google.com/go/firestore"
)

// GetAll reads documents of one type in a single round trip, in the order of refs.
// Every missing or unreadable document is reported, not just the first.
func GetAll[T Stadium | Team | Forecast](ctx context.Context, client *fs.Client, refs []*fs.DocumentRef) ([]T, error) {
	snaps, err := client.GetAll(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("GetAll: unable to get documents from client: %w", err)
	}

	out := make([]T, len(snaps))
	var errs []error
	for i, snap := range snaps {
		if !snap.Exists() {
			errs = append(errs, fmt.Errorf("document %s does not exist", refs[i].Path))
			continue
		}
		if err := snap.DataTo(&out[i]); err != nil {
			errs = append(errs, fmt.Errorf("unable to read %T from %s: %w", out[i], refs[i].Path, err))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("GetAll: %w", errors.Join(errs...))
	}
	return out, nil
}
