package load

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/JoeJimFlood/SportPredictifier/internal/predict"
)

// Stadia reads a stadium table with columns code, name, location, lat, lon, elev.
func Stadia(name string, r io.Reader) (map[string]*predict.Stadium, error) {
	t, err := readCSV(name, r)
	if err != nil {
		return nil, err
	}
	errs := t.require("code", "lat", "lon")
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	stadia := make(map[string]*predict.Stadium, len(t.records))
	for _, row := range t.rows(&errs) {
		s := &predict.Stadium{
			Code:      row.str("code"),
			Name:      row.str("name"),
			Location:  row.str("location"),
			Lat:       row.number("lat"),
			Lon:       row.number("lon"),
			Elevation: row.numberOr("elev", 0),
		}
		if s.Code == "" {
			row.fail("empty stadium code")
			continue
		}
		if _, dup := stadia[s.Code]; dup {
			row.fail("duplicate stadium %s", s.Code)
			continue
		}
		if s.Lat < -90 || s.Lat > 90 || s.Lon < -180 || s.Lon > 360 {
			row.fail("stadium %s has coordinates (%g, %g) out of range", s.Code, s.Lat, s.Lon)
		}
		stadia[s.Code] = s
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return stadia, nil
}

// Teams reads a team table with columns code, name, stadium, and colors as r1, g1, b1, r2, g2, b2.
func Teams(name string, r io.Reader, stadia map[string]*predict.Stadium) (map[string]*predict.Team, error) {
	t, err := readCSV(name, r)
	if err != nil {
		return nil, err
	}
	errs := t.require("code", "stadium")
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	teams := make(map[string]*predict.Team, len(t.records))
	for _, row := range t.rows(&errs) {
		team := &predict.Team{
			Code:   row.str("code"),
			Name:   row.str("name"),
			Color1: color(row, "r1", "g1", "b1"),
			Color2: color(row, "r2", "g2", "b2"),
		}
		if team.Code == "" {
			row.fail("empty team code")
			continue
		}
		if _, dup := teams[team.Code]; dup {
			row.fail("duplicate team %s", team.Code)
			continue
		}
		code := row.str("stadium")
		s, ok := stadia[code]
		if !ok {
			row.fail("team %s: stadium %q not found", team.Code, code)
		}
		team.Stadium = s
		teams[team.Code] = team
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return teams, nil
}

// color formats three 0-255 columns as "#rrggbb". Missing columns give black.
func color(row row, r, g, b string) string {
	var c [3]int
	for i, col := range []string{r, g, b} {
		if row.str(col) == "" {
			continue
		}
		v := row.integer(col)
		if v < 0 || v > 255 {
			row.fail("column %s: %d is not a color component", col, v)
			continue
		}
		c[i] = v
	}
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// ScoreSettings reads the score category table with columns code, description, points, prob, opp_effect, base, condition.
func ScoreSettings(name string, r io.Reader) (*predict.ScoreSettings, error) {
	t, err := readCSV(name, r)
	if err != nil {
		return nil, err
	}
	errs := t.require("code", "points")
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	var categories []*predict.ScoreCategory
	for _, row := range t.rows(&errs) {
		c := &predict.ScoreCategory{
			Code:            row.str("code"),
			Description:     row.str("description"),
			Points:          row.number("points"),
			Probabilistic:   row.boolean("prob"),
			OpponentAffects: row.boolean("opp_effect"),
			Base:            row.numberOr("base", 0),
		}
		if c.Code == "" {
			row.fail("empty score category code")
			continue
		}
		if c.Base < 0 || c.Base > 1 {
			row.fail("%s: base probability %g outside [0, 1]", c.Code, c.Base)
		}
		if cond := row.str("condition"); !missing(cond) {
			e, err := predict.ParseCondition(cond)
			if err != nil {
				row.fail("%s: %v", c.Code, err)
			}
			c.Condition = e
		}
		categories = append(categories, c)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return predict.NewScoreSettings(categories)
}

// missing reports the ways spreadsheets write an empty cell.
func missing(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "none", "null", "na":
		return true
	}
	return false
}

// Schedule reads the games of one round (all rounds when round is zero) from a table with columns
// round, year, month, day, team1, team2, venue, and optional knockout and simulations.
func Schedule(name string, r io.Reader, round int, teams map[string]*predict.Team, stadia map[string]*predict.Stadium, settings *predict.ScoreSettings, simulations int) ([]*predict.ScheduledGame, error) {
	t, err := readCSV(name, r)
	if err != nil {
		return nil, err
	}
	errs := t.require("round", "team1", "team2", "venue")
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	var games []*predict.ScheduledGame
	for _, row := range t.rows(&errs) {
		rnd := row.integer("round")
		if round != 0 && rnd != round {
			continue
		}
		g := &predict.ScheduledGame{
			Round:       rnd,
			Knockout:    row.boolean("knockout"),
			Settings:    settings,
			Simulations: simulations,
		}
		if t.has("simulations") && row.str("simulations") != "" {
			g.Simulations = row.integer("simulations")
		}
		if t.has("year") {
			g.Date = time.Date(row.integer("year"), time.Month(row.integer("month")), row.integer("day"), 0, 0, 0, 0, time.UTC)
		}

		var ok bool
		if g.Team1, ok = teams[row.str("team1")]; !ok {
			row.fail("team %q not found", row.str("team1"))
		}
		if g.Team2, ok = teams[row.str("team2")]; !ok {
			row.fail("team %q not found", row.str("team2"))
		}
		if g.Venue, ok = stadia[row.str("venue")]; !ok {
			row.fail("stadium %q not found", row.str("venue"))
		}
		if row.str("team1") == row.str("team2") {
			row.fail("team %s cannot play itself", row.str("team1"))
		}
		games = append(games, g)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return games, nil
}
