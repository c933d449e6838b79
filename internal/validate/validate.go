// Package validate checks the input tables of a season before anything is simulated.
// Every check reports all of the problems it finds, joined into one error.
package validate

import (
	"errors"
	"fmt"
	"sort"

	"github.com/JoeJimFlood/SportPredictifier/internal/predict"
)

// MismatchError reports a game recorded differently by the two teams that played it.
type MismatchError struct {
	Category string
	Round    int
	Team     string
	Opponent string
	Against  float64
	For      float64
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("mismatch in %s in round %d entry between %s (%g against) and %s (%g for)", e.Category, e.Round, e.Team, e.Against, e.Opponent, e.For)
}

// References checks that every team has a home stadium and a score table,
// that every opponent and venue in a score table exists,
// and that every scheduled team and venue exists.
func References(teams map[string]*predict.Team, stadia map[string]*predict.Stadium, tables map[string]*predict.ScoreTable, games []*predict.ScheduledGame) error {
	var errs []error
	for _, code := range sorted(teams) {
		team := teams[code]
		if team.Stadium == nil {
			errs = append(errs, &predict.MissingError{Kind: "home stadium", Context: "team " + code})
		} else if _, ok := stadia[team.Stadium.Code]; !ok {
			errs = append(errs, &predict.MissingError{Kind: "stadium", Code: team.Stadium.Code, Context: "team " + code})
		}
		if _, ok := tables[code]; !ok {
			errs = append(errs, &predict.MissingError{Kind: "score table", Code: code, Context: "team " + code})
		}
	}
	for _, code := range sorted(tables) {
		for _, row := range tables[code].Rows {
			ctx := fmt.Sprintf("score table %s round %d", code, row.Round)
			if _, ok := teams[row.Opponent]; !ok {
				errs = append(errs, &predict.MissingError{Kind: "team", Code: row.Opponent, Context: ctx})
			}
			if _, ok := stadia[row.Venue]; !ok {
				errs = append(errs, &predict.MissingError{Kind: "stadium", Code: row.Venue, Context: ctx})
			}
		}
	}
	for _, g := range games {
		ctx := fmt.Sprintf("schedule round %d", g.Round)
		if g.Team1 == nil || teams[g.Team1.Code] != g.Team1 {
			errs = append(errs, &predict.MissingError{Kind: "team", Code: code(g.Team1), Context: ctx})
		}
		if g.Team2 == nil || teams[g.Team2.Code] != g.Team2 {
			errs = append(errs, &predict.MissingError{Kind: "team", Code: code(g.Team2), Context: ctx})
		}
		if g.Venue == nil {
			errs = append(errs, &predict.MissingError{Kind: "stadium", Context: ctx})
		} else if _, ok := stadia[g.Venue.Code]; !ok {
			errs = append(errs, &predict.MissingError{Kind: "stadium", Code: g.Venue.Code, Context: ctx})
		}
	}
	return errors.Join(errs...)
}

func code(t *predict.Team) string {
	if t == nil {
		return ""
	}
	return t.Code
}

// Consistency checks that a team's "against" counts in every round equal its opponent's "for" counts in the same round.
// Rows against opponents without a score table are skipped.
func Consistency(tables map[string]*predict.ScoreTable, settings *predict.ScoreSettings) error {
	type key struct {
		team     string
		opponent string
		round    int
	}
	index := make(map[key]predict.ScoreRow)
	for _, code := range sorted(tables) {
		for _, row := range tables[code].Rows {
			index[key{code, row.Opponent, row.Round}] = row
		}
	}

	var errs []error
	for _, code := range sorted(tables) {
		for _, row := range tables[code].Rows {
			if _, ok := tables[row.Opponent]; !ok {
				continue
			}
			opp, ok := index[key{row.Opponent, code, row.Round}]
			if !ok {
				errs = append(errs, fmt.Errorf("round %d game between %s and %s is missing from %s's score table", row.Round, code, row.Opponent, row.Opponent))
				continue
			}
			for c, cat := range settings.Categories() {
				against := row.Count(predict.Against, c)
				oppFor := opp.Count(predict.For, c)
				if against != oppFor {
					errs = append(errs, &MismatchError{Category: cat.Code, Round: row.Round, Team: code, Opponent: row.Opponent, Against: against, For: oppFor})
				}
			}
		}
	}
	return errors.Join(errs...)
}

// Conditions checks that no probabilistic category records more successes than it had trials.
func Conditions(tables map[string]*predict.ScoreTable, settings *predict.ScoreSettings) error {
	var errs []error
	for _, code := range sorted(tables) {
		for _, row := range tables[code].Rows {
			for c, cat := range settings.Categories() {
				if !cat.Probabilistic {
					continue
				}
				for _, d := range predict.Directions {
					successes := row.Count(d, c)
					trials := predict.RowTrials(cat, row, d)
					if successes > trials {
						errs = append(errs, fmt.Errorf("score table %s round %d: %s_%s is %g but %s allows only %g", code, row.Round, cat.Code, d, successes, cat.Condition, trials))
					}
				}
			}
		}
	}
	return errors.Join(errs...)
}

// All runs every check.
func All(teams map[string]*predict.Team, stadia map[string]*predict.Stadium, tables map[string]*predict.ScoreTable, games []*predict.ScheduledGame, settings *predict.ScoreSettings) error {
	return errors.Join(
		References(teams, stadia, tables, games),
		Consistency(tables, settings),
		Conditions(tables, settings),
	)
}

func sorted[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
