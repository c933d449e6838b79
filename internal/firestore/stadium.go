package firestore

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/JoeJimFlood/SportPredictifier/internal/predict"
)

// STADIA_COLLECTION is the path to the stadia collection in Firestore. It is a child of a season.
const STADIA_COLLECTION = "stadia"

// Stadium is a venue document. The document ID is the stadium code.
type Stadium struct {
	Name      string    `firestore:"name"`
	Location  string    `firestore:"location"`
	LatLon    []float64 `firestore:"latlon"`
	Elevation float64   `firestore:"elevation"`
}

// NewStadium converts a stadium from the prediction model to its document form.
func NewStadium(s *predict.Stadium) Stadium {
	return Stadium{
		Name:      s.Name,
		Location:  s.Location,
		LatLon:    []float64{s.Lat, s.Lon},
		Elevation: s.Elevation,
	}
}

// Predict converts the document back to a prediction model stadium with the given code.
func (s Stadium) Predict(code string) (*predict.Stadium, error) {
	if len(s.LatLon) != 2 {
		return nil, fmt.Errorf("Predict: stadium %s has %d coordinates, expected 2", code, len(s.LatLon))
	}
	return &predict.Stadium{
		Code:      code,
		Name:      s.Name,
		Location:  s.Location,
		Lat:       s.LatLon[0],
		Lon:       s.LatLon[1],
		Elevation: s.Elevation,
	}, nil
}

func (s Stadium) String() string {
	var sb strings.Builder
	sb.WriteString("Stadium\n")
	ss := []string{
		treeString("Name", 0, false, s.Name),
		treeString("Location", 0, false, s.Location),
		treeFloat64Slice("LatLon", 0, false, s.LatLon),
		treeFloat64("Elevation", 0, true, s.Elevation),
	}
	sb.WriteString(strings.Join(ss, "\n"))
	return sb.String()
}

// GetStadia returns all stadia in the season keyed by code.
func GetStadia(ctx context.Context, season *firestore.DocumentRef) (map[string]*predict.Stadium, error) {
	out := make(map[string]*predict.Stadium)
	iter := season.Collection(STADIA_COLLECTION).Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("GetStadia: unable to iterate stadia: %w", err)
		}
		var doc Stadium
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("GetStadia: unable to read stadium %s: %w", snap.Ref.ID, err)
		}
		s, err := doc.Predict(snap.Ref.ID)
		if err != nil {
			return nil, fmt.Errorf("GetStadia: %w", err)
		}
		out[s.Code] = s
	}
	return out, nil
}
