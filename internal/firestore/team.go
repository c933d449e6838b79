package firestore

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/JoeJimFlood/SportPredictifier/internal/predict"
)

// TEAMS_COLLECTION is the path to the teams collection in Firestore. It is a child of a season.
const TEAMS_COLLECTION = "teams"

// Team is a team document. The document ID is the team code.
type Team struct {
	// Name is the display name of the team.
	Name string `firestore:"name"`

	// Colors are HTML RGB colors used when rendering forecasts, primary first.
	Colors []string `firestore:"colors"`

	// Stadium refers to the team's home stadium document.
	Stadium *firestore.DocumentRef `firestore:"stadium"`
}

// NewTeam converts a team from the prediction model to its document form.
// The home stadium ref is resolved against the stadia collection of the season.
func NewTeam(season *firestore.DocumentRef, t *predict.Team) Team {
	doc := Team{
		Name:   t.Name,
		Colors: []string{t.Color1, t.Color2},
	}
	if t.Stadium != nil {
		doc.Stadium = season.Collection(STADIA_COLLECTION).Doc(t.Stadium.Code)
	}
	return doc
}

// Predict converts the document back to a prediction model team with the given code.
func (t Team) Predict(code string, stadia map[string]*predict.Stadium) (*predict.Team, error) {
	out := &predict.Team{Code: code, Name: t.Name}
	if len(t.Colors) > 0 {
		out.Color1 = t.Colors[0]
	}
	if len(t.Colors) > 1 {
		out.Color2 = t.Colors[1]
	}
	if t.Stadium == nil {
		return out, nil
	}
	s, ok := stadia[t.Stadium.ID]
	if !ok {
		return nil, fmt.Errorf("Predict: team %s home stadium %s not found", code, t.Stadium.ID)
	}
	out.Stadium = s
	return out, nil
}

func (t Team) String() string {
	var sb strings.Builder
	sb.WriteString("Team\n")
	ss := []string{
		treeString("Name", 0, false, t.Name),
		treeStringSlice("Colors", 0, false, t.Colors),
		treeRef("Stadium", 0, true, t.Stadium),
	}
	sb.WriteString(strings.Join(ss, "\n"))
	return sb.String()
}

// GetTeams returns all teams in the season keyed by code.
func GetTeams(ctx context.Context, season *firestore.DocumentRef, stadia map[string]*predict.Stadium) (map[string]*predict.Team, error) {
	out := make(map[string]*predict.Team)
	iter := season.Collection(TEAMS_COLLECTION).Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("GetTeams: unable to iterate teams: %w", err)
		}
		var doc Team
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("GetTeams: unable to read team %s: %w", snap.Ref.ID, err)
		}
		t, err := doc.Predict(snap.Ref.ID, stadia)
		if err != nil {
			return nil, fmt.Errorf("GetTeams: %w", err)
		}
		out[t.Code] = t
	}
	return out, nil
}
