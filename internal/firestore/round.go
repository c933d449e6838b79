package firestore

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ROUNDS_COLLECTION is the path to the rounds collection in Firestore. It is a child of a season.
const ROUNDS_COLLECTION = "rounds"

// Round is a round of games. The document ID is the round number.
type Round struct {
	Number int `firestore:"number"`

	// Games is the number of forecasts written to the round.
	Games int `firestore:"games"`

	// Updated is the last time forecasts were written to the round.
	Updated time.Time `firestore:"updated"`
}

func (r Round) String() string {
	var sb strings.Builder
	sb.WriteString("Round\n")
	ss := []string{
		treeInt("Number", 0, false, r.Number),
		treeInt("Games", 0, false, r.Games),
		treeString("Updated", 0, true, r.Updated.Format(time.UnixDate)),
	}
	sb.WriteString(strings.Join(ss, "\n"))
	return sb.String()
}

type NoRoundError int

func (e NoRoundError) Error() string {
	return fmt.Sprintf("no round %d exists", e)
}

// RoundRef returns the document reference of a round within a season. The document need not exist.
func RoundRef(season *firestore.DocumentRef, round int) *firestore.DocumentRef {
	return season.Collection(ROUNDS_COLLECTION).Doc(strconv.Itoa(round))
}

// GetRound returns the round object and document ref matching the given season and round number.
func GetRound(ctx context.Context, season *firestore.DocumentRef, round int) (Round, *firestore.DocumentRef, error) {
	var r Round
	ref := RoundRef(season, round)
	snap, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return r, ref, NoRoundError(round)
	}
	if err != nil {
		return r, ref, err
	}
	if err = snap.DataTo(&r); err != nil {
		return r, ref, err
	}
	return r, ref, nil
}
