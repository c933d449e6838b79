package firestore

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/JoeJimFlood/SportPredictifier/internal/predict"
)

// FORECASTS_COLLECTION is the path to the forecasts collection in Firestore. It is a child of a round.
const FORECASTS_COLLECTION = "forecasts"

// Forecast is the stored forecast of one game. The document ID is the matchup key.
type Forecast struct {
	// Teams are the two team codes in schedule order.
	Teams []string `firestore:"teams"`

	// Venue refers to the stadium document where the game is played.
	Venue *firestore.DocumentRef `firestore:"venue"`

	// Chances maps team code to win probability.
	Chances map[string]float64 `firestore:"chances"`
	Draw    float64            `firestore:"draw"`

	// Expected maps team code to mean simulated score.
	Expected map[string]float64 `firestore:"expected"`

	// Percentiles maps team code to the 5th through 95th percentile scores in steps of 5.
	Percentiles map[string][]float64 `firestore:"percentiles"`

	Quality float64 `firestore:"quality"`
	Entropy float64 `firestore:"entropy"`
	Hype    float64 `firestore:"hype"`

	Simulations int   `firestore:"simulations"`
	Seed        int64 `firestore:"seed"`

	Created time.Time `firestore:"created"`
}

// NewForecast converts a simulation result to its document form.
func NewForecast(season *firestore.DocumentRef, r predict.Result, simulations int, seed int64) Forecast {
	f := Forecast{
		Teams:       []string{r.Teams[0], r.Teams[1]},
		Chances:     make(map[string]float64, 2),
		Draw:        r.Draw,
		Expected:    make(map[string]float64, 2),
		Percentiles: make(map[string][]float64, 2),
		Quality:     r.Quality,
		Entropy:     r.Entropy,
		Hype:        r.Hype,
		Simulations: simulations,
		Seed:        seed,
		Created:     time.Now(),
	}
	if r.Venue != nil && season != nil {
		f.Venue = season.Collection(STADIA_COLLECTION).Doc(r.Venue.Code)
	}
	for _, team := range r.Teams {
		f.Chances[team] = r.Chances[team]
		d := r.Distributions[team]
		f.Expected[team] = d.Mean
		f.Percentiles[team] = append([]float64(nil), d.Percentiles[:]...)
	}
	return f
}

// Key returns the matchup key of the forecast.
func (f Forecast) Key() string {
	if len(f.Teams) != 2 {
		return ""
	}
	return predict.MatchupKey(f.Teams[0], f.Teams[1])
}

func (f Forecast) String() string {
	var sb strings.Builder
	sb.WriteString("Forecast\n")
	ss := []string{
		treeStringSlice("Teams", 0, false, f.Teams),
		treeRef("Venue", 0, false, f.Venue),
		treeFloat64Map("Chances", 0, false, f.Chances),
		treeFloat64("Draw", 0, false, f.Draw),
		treeFloat64Map("Expected", 0, false, f.Expected),
		treeFloat64("Quality", 0, false, f.Quality),
		treeFloat64("Entropy", 0, false, f.Entropy),
		treeFloat64("Hype", 0, false, f.Hype),
		treeInt("Simulations", 0, false, f.Simulations),
		treeString("Seed", 0, false, fmt.Sprint(f.Seed)),
		treeString("Created", 0, true, f.Created.Format(time.UnixDate)),
	}
	sb.WriteString(strings.Join(ss, "\n"))
	return sb.String()
}

// WriteOptions control how documents are written.
type WriteOptions struct {
	// Force overwrites existing documents. Otherwise writing an existing document is an error.
	Force bool

	// DryRun logs what would be written without writing.
	DryRun bool
}

// WriteForecasts writes the forecasts of one round in a single transaction and updates the round document.
func WriteForecasts(ctx context.Context, client *firestore.Client, season *firestore.DocumentRef, round int, forecasts []Forecast, opts WriteOptions) error {
	roundRef := RoundRef(season, round)
	col := roundRef.Collection(FORECASTS_COLLECTION)
	sorted := make([]Forecast, len(forecasts))
	copy(sorted, forecasts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key() < sorted[j].Key() })

	if opts.DryRun {
		log.Printf("DRY RUN: would write round %d to %s", round, roundRef.Path)
		for _, f := range sorted {
			log.Printf("DRY RUN: would write forecast to %s:\n%s", col.Doc(f.Key()).Path, f)
		}
		return nil
	}

	err := client.RunTransaction(ctx, func(ctx context.Context, t *firestore.Transaction) error {
		r := Round{Number: round, Games: len(sorted), Updated: time.Now()}
		if err := t.Set(roundRef, &r); err != nil {
			return err
		}
		for _, f := range sorted {
			key := f.Key()
			if key == "" {
				return fmt.Errorf("forecast has %d teams, expected 2", len(f.Teams))
			}
			ref := col.Doc(key)
			var err error
			if opts.Force {
				err = t.Set(ref, &f)
			} else {
				err = t.Create(ref, &f)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("WriteForecasts: unable to write round %d: %w", round, err)
	}
	return nil
}

// GetForecasts returns all forecasts stored for a round, sorted by matchup key.
func GetForecasts(ctx context.Context, season *firestore.DocumentRef, round int) ([]Forecast, error) {
	iter := RoundRef(season, round).Collection(FORECASTS_COLLECTION).OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx)
	defer iter.Stop()
	var out []Forecast
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("GetForecasts: unable to iterate forecasts: %w", err)
		}
		var f Forecast
		if err := snap.DataTo(&f); err != nil {
			return nil, fmt.Errorf("GetForecasts: unable to read forecast %s: %w", snap.Ref.ID, err)
		}
		out = append(out, f)
	}
	return out, nil
}

// GetForecastsByKey returns the forecasts of the given matchups in one round.
func GetForecastsByKey(ctx context.Context, client *firestore.Client, season *firestore.DocumentRef, round int, keys []string) ([]Forecast, error) {
	col := RoundRef(season, round).Collection(FORECASTS_COLLECTION)
	refs := make([]*firestore.DocumentRef, len(keys))
	for i, k := range keys {
		refs[i] = col.Doc(k)
	}
	return GetAll[Forecast](ctx, client, refs)
}

// WriteSeason writes the season document with its stadia and teams in a single transaction.
func WriteSeason(ctx context.Context, client *firestore.Client, id string, season Season, stadia map[string]*predict.Stadium, teams map[string]*predict.Team, opts WriteOptions) error {
	ref := SeasonRef(client, id)
	season.Updated = time.Now()
	stadiumCodes := sortedKeys(stadia)
	teamCodes := sortedKeys(teams)

	if opts.DryRun {
		log.Printf("DRY RUN: would write season to %s:\n%s", ref.Path, season)
		for _, code := range stadiumCodes {
			log.Printf("DRY RUN: would write stadium %s:\n%s", code, NewStadium(stadia[code]))
		}
		for _, code := range teamCodes {
			log.Printf("DRY RUN: would write team %s:\n%s", code, NewTeam(ref, teams[code]))
		}
		return nil
	}

	write := func(t *firestore.Transaction, dr *firestore.DocumentRef, data interface{}) error {
		if opts.Force {
			return t.Set(dr, data)
		}
		return t.Create(dr, data)
	}

	err := client.RunTransaction(ctx, func(ctx context.Context, t *firestore.Transaction) error {
		if err := write(t, ref, &season); err != nil {
			return err
		}
		for _, code := range stadiumCodes {
			s := NewStadium(stadia[code])
			if err := write(t, ref.Collection(STADIA_COLLECTION).Doc(code), &s); err != nil {
				return err
			}
		}
		for _, code := range teamCodes {
			tm := NewTeam(ref, teams[code])
			if err := write(t, ref.Collection(TEAMS_COLLECTION).Doc(code), &tm); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("WriteSeason: unable to write season %s: %w", id, err)
	}
	return nil
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
