package predict

import (
	"math"
	"testing"
)

func matrixFixture() (MatrixConfig, map[string]*Team, map[string]*Stadium) {
	stadia := map[string]*Stadium{"N": {Code: "N"}}
	teams := make(map[string]*Team)
	for _, code := range []string{"a1", "a2", "a3", "b1", "b2"} {
		s := &Stadium{Code: code + "S"}
		stadia[s.Code] = s
		teams[code] = &Team{Code: code, Stadium: s}
	}
	mc := MatrixConfig{
		Groups: []Group{
			{Name: "A", Teams: []string{"a1", "a2", "a3"}},
			{Name: "B", Teams: []string{"b1", "b2"}},
		},
		NeutralVenues: []NeutralVenue{{Venue: "N", Groups: [2]string{"A", "B"}}},
		RoundNumber:   3,
	}
	return mc, teams, stadia
}

func TestMatchups(t *testing.T) {
	mc, teams, _ := matrixFixture()
	ms, err := mc.Matchups(teams)
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 10 {
		t.Fatalf("expected 10 matchups, got %d", len(ms))
	}
	venues := make(map[string]string)
	for _, m := range ms {
		venues[MatchupKey(m.Team1, m.Team2)] = m.Venue
	}
	tests := map[string]string{
		"a1va2": "a1S",
		"a2va3": "a2S",
		"b1vb2": "b1S",
		"a3vb1": "N",
	}
	for key, expected := range tests {
		if venues[key] != expected {
			t.Errorf("%s: expected %s, got %s", key, expected, venues[key])
		}
	}

	mc.NeutralVenues[0].Groups[1] = "C"
	if _, err := mc.Matchups(teams); err == nil {
		t.Errorf("expected error for unknown group")
	}
}

func TestAllocateRounds(t *testing.T) {
	mc, teams, _ := matrixFixture()
	ms, err := mc.Matchups(teams)
	if err != nil {
		t.Fatal(err)
	}
	rounds := AllocateRounds(ms)

	seen := make(map[Matchup]int)
	for i, round := range rounds {
		if len(round) == 0 {
			t.Errorf("round %d: expected at least one matchup", i)
		}
		playing := make(map[string]bool)
		for _, m := range round {
			if playing[m.Team1] || playing[m.Team2] {
				t.Errorf("round %d: team plays twice in %v", i, round)
			}
			playing[m.Team1] = true
			playing[m.Team2] = true
			seen[m]++
		}
	}
	if len(seen) != len(ms) {
		t.Errorf("expected %d distinct matchups, got %d", len(ms), len(seen))
	}
	for m, n := range seen {
		if n != 1 {
			t.Errorf("%v: expected to be scheduled once, got %d", m, n)
		}
	}
	// the first round is greedy over the declared order
	if rounds[0][0] != ms[0] {
		t.Errorf("expected %v first, got %v", ms[0], rounds[0][0])
	}
}

func TestSchedule(t *testing.T) {
	mc, teams, stadia := matrixFixture()
	rounds, err := mc.Schedule(teams, stadia, nil, 100)
	if err != nil {
		t.Fatal(err)
	}
	for i, round := range rounds {
		for _, g := range round {
			if g.Round != 3+i {
				t.Errorf("expected round %d, got %d", 3+i, g.Round)
			}
			if g.Simulations != 100 {
				t.Errorf("expected 100 simulations, got %d", g.Simulations)
			}
		}
	}

	delete(stadia, "N")
	if _, err := mc.Schedule(teams, stadia, nil, 100); err == nil {
		t.Errorf("expected error for missing neutral venue")
	}
}

func TestWinMatrix(t *testing.T) {
	results := map[string]Result{
		"avb": {Chances: map[string]float64{"a": 0.7, "b": 0.3}},
	}
	m := WinMatrix([]string{"a", "b", "c"}, results)
	if !math.IsNaN(m[0][0]) || !math.IsNaN(m[1][1]) {
		t.Errorf("expected NaN diagonal, got %v", m)
	}
	if m[0][1] != 0.7 || m[1][0] != 0.3 {
		t.Errorf("expected 0.7 and 0.3, got %v and %v", m[0][1], m[1][0])
	}
	if !math.IsNaN(m[0][2]) {
		t.Errorf("expected NaN for unplayed pairing, got %v", m[0][2])
	}
}
