package firestore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// SEASONS_COLLECTION is the path to the seasons collection in Firestore.
const SEASONS_COLLECTION = "seasons"

// Season is a competition whose forecasts are stored in Firestore.
type Season struct {
	// Name is the display name of the competition ("Major League Rugby 2024").
	Name string `firestore:"name"`

	// Simulations is the default number of simulations per game.
	Simulations int `firestore:"simulations"`

	// SpatialWeighting records whether forecasts weight history by travel distance.
	SpatialWeighting bool `firestore:"spatial_weighting"`

	// Updated is the last time anything in the season was written.
	Updated time.Time `firestore:"updated"`
}

func (s Season) String() string {
	var sb strings.Builder
	sb.WriteString("Season\n")
	ss := []string{
		treeString("Name", 0, false, s.Name),
		treeInt("Simulations", 0, false, s.Simulations),
		treeString("SpatialWeighting", 0, false, fmt.Sprint(s.SpatialWeighting)),
		treeString("Updated", 0, true, s.Updated.Format(time.UnixDate)),
	}
	sb.WriteString(strings.Join(ss, "\n"))
	return sb.String()
}

// NoSeasonError reports a season ID without a document.
type NoSeasonError string

func (e NoSeasonError) Error() string {
	return fmt.Sprintf("no season %q exists", string(e))
}

// SeasonRef returns the document reference of a season. The document need not exist.
func SeasonRef(client *firestore.Client, id string) *firestore.DocumentRef {
	return client.Collection(SEASONS_COLLECTION).Doc(id)
}

// GetSeason gets the season with the given ID.
func GetSeason(ctx context.Context, client *firestore.Client, id string) (Season, *firestore.DocumentRef, error) {
	var s Season
	ref := SeasonRef(client, id)
	snap, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return s, ref, NoSeasonError(id)
	}
	if err != nil {
		return s, ref, err
	}
	if err = snap.DataTo(&s); err != nil {
		return s, ref, err
	}
	return s, ref, nil
}
