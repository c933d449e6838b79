package predict

import (
	"fmt"
	"math"
)

// Matchup is a pair of teams and the stadium where they meet.
type Matchup struct {
	Team1 string
	Team2 string
	Venue string
}

// Group is a named set of teams. Earlier teams host later ones.
type Group struct {
	Name  string
	Teams []string
}

// NeutralVenue hosts every pairing between two groups.
type NeutralVenue struct {
	Venue  string
	Groups [2]string
}

// MatrixConfig describes an all-play-all analysis.
type MatrixConfig struct {
	Groups        []Group
	NeutralVenues []NeutralVenue

	// RoundNumber numbers the first simulated round.
	RoundNumber int

	Knockout bool
}

// Matchups lists every required pairing.
// Teams in the same group meet at the home stadium of whichever is listed first.
// Teams in different groups only meet where a neutral venue is configured for their two groups.
func (mc MatrixConfig) Matchups(teams map[string]*Team) ([]Matchup, error) {
	groups := make(map[string][]string, len(mc.Groups))
	var matchups []Matchup
	for _, g := range mc.Groups {
		groups[g.Name] = g.Teams
		for i, t1 := range g.Teams {
			home, ok := teams[t1]
			if !ok {
				return nil, &MissingError{Kind: "team", Code: t1, Context: "matrix group " + g.Name}
			}
			if home.Stadium == nil {
				return nil, &MissingError{Kind: "stadium", Code: "", Context: "team " + t1}
			}
			for _, t2 := range g.Teams[i+1:] {
				if _, ok := teams[t2]; !ok {
					return nil, &MissingError{Kind: "team", Code: t2, Context: "matrix group " + g.Name}
				}
				matchups = append(matchups, Matchup{Team1: t1, Team2: t2, Venue: home.Stadium.Code})
			}
		}
	}

	for _, nv := range mc.NeutralVenues {
		g1, ok := groups[nv.Groups[0]]
		if !ok {
			return nil, &MissingError{Kind: "group", Code: nv.Groups[0], Context: "neutral venue " + nv.Venue}
		}
		g2, ok := groups[nv.Groups[1]]
		if !ok {
			return nil, &MissingError{Kind: "group", Code: nv.Groups[1], Context: "neutral venue " + nv.Venue}
		}
		for _, t1 := range g1 {
			for _, t2 := range g2 {
				matchups = append(matchups, Matchup{Team1: t1, Team2: t2, Venue: nv.Venue})
			}
		}
	}
	return matchups, nil
}

// AllocateRounds partitions matchups into rounds in which no team plays twice.
// Each round takes, in order, every remaining matchup whose teams are both still free in that round.
func AllocateRounds(matchups []Matchup) [][]Matchup {
	remaining := make([]Matchup, len(matchups))
	copy(remaining, matchups)

	var rounds [][]Matchup
	for len(remaining) > 0 {
		busy := make(map[string]struct{})
		var round []Matchup
		left := remaining[:0:0]
		for _, m := range remaining {
			_, b1 := busy[m.Team1]
			_, b2 := busy[m.Team2]
			if b1 || b2 {
				left = append(left, m)
				continue
			}
			busy[m.Team1] = struct{}{}
			busy[m.Team2] = struct{}{}
			round = append(round, m)
		}
		rounds = append(rounds, round)
		remaining = left
	}
	return rounds
}

// Schedule turns the matrix into rounds of games ready to simulate.
func (mc MatrixConfig) Schedule(teams map[string]*Team, stadia map[string]*Stadium, settings *ScoreSettings, simulations int) ([][]*ScheduledGame, error) {
	matchups, err := mc.Matchups(teams)
	if err != nil {
		return nil, err
	}
	rounds := AllocateRounds(matchups)
	out := make([][]*ScheduledGame, len(rounds))
	for i, round := range rounds {
		games := make([]*ScheduledGame, len(round))
		for j, m := range round {
			venue, ok := stadia[m.Venue]
			if !ok {
				return nil, &MissingError{Kind: "stadium", Code: m.Venue, Context: fmt.Sprintf("matchup %s", MatchupKey(m.Team1, m.Team2))}
			}
			games[j] = &ScheduledGame{
				Round:       mc.RoundNumber + i,
				Team1:       teams[m.Team1],
				Team2:       teams[m.Team2],
				Venue:       venue,
				Knockout:    mc.Knockout,
				Settings:    settings,
				Simulations: simulations,
			}
		}
		out[i] = games
	}
	return out, nil
}

// Teams returns every team in the matrix in group order.
func (mc MatrixConfig) Teams() []string {
	var out []string
	for _, g := range mc.Groups {
		out = append(out, g.Teams...)
	}
	return out
}

// WinMatrix returns m[i][j], the probability that teams[i] beats teams[j].
// The diagonal and any pairing without a result are NaN.
func WinMatrix(teams []string, results map[string]Result) [][]float64 {
	m := make([][]float64, len(teams))
	for i, t1 := range teams {
		m[i] = make([]float64, len(teams))
		for j, t2 := range teams {
			m[i][j] = math.NaN()
			if i == j {
				continue
			}
			if r, ok := results[MatchupKey(t1, t2)]; ok {
				m[i][j] = r.Chances[t1]
			} else if r, ok := results[MatchupKey(t2, t1)]; ok {
				m[i][j] = r.Chances[t1]
			}
		}
	}
	return m
}
