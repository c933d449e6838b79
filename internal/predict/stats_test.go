package predict

import (
	"errors"
	"math"
	"testing"
)

const (
	iPAT = 0
	iTD  = 1
	iFG  = 2
)

func TestEngine(t *testing.T) {
	ss, teams, tables, stadia := mirrorLeague(t)
	e := &Engine{Settings: ss, Teams: teams, Tables: tables, Stadia: stadia}
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		got      Stat
		expected Stat
	}{
		{"own TD for", teams["X"].Stats.Own[For][iTD], Stat{Mean: 2.5}},
		{"own FG for", teams["X"].Stats.Own[For][iFG], Stat{Mean: 1.5, Variance: 0.5}},
		{"own PAT for", teams["X"].Stats.Own[For][iPAT], Stat{Mean: 0.8}},
		{"own PAT against", teams["Y"].Stats.Own[Against][iPAT], Stat{Mean: 0.8}},
		{"residual TD for", teams["X"].Stats.Residual[For][iTD], Stat{Mean: 0, Variance: 0.5}},
		{"residual TD against", teams["Y"].Stats.Residual[Against][iTD], Stat{Mean: 0, Variance: 0.5}},
		{"residual PAT for", teams["X"].Stats.Residual[For][iPAT], Stat{Mean: 0}},
	}
	for _, test := range tests {
		if math.Abs(test.got.Mean-test.expected.Mean) > 1e-12 || math.Abs(test.got.Variance-test.expected.Variance) > 1e-12 {
			t.Errorf("%s: expected %+v, got %+v", test.name, test.expected, test.got)
		}
	}

	ctx := e.OpponentContext("X", For, iTD)
	for i, v := range ctx {
		if v != 2.5 {
			t.Errorf("row %d: expected opponent context 2.5, got %v", i, v)
		}
	}
}

func TestEngineBaseProbability(t *testing.T) {
	ss := testSettings(t)
	e := &Engine{
		Settings: ss,
		Tables: map[string]*ScoreTable{
			"Z": {Team: "Z", Rows: []ScoreRow{row("X", "XS", [3]float64{0, 0, 1}, [3]float64{0, 0, 0})}},
		},
	}
	if s := e.ownStat("Z", For, iPAT, []float64{1}); s.Mean != 0.9 {
		t.Errorf("expected base probability 0.9, got %v", s.Mean)
	}
	if s := e.ownStat("Z", For, iFG, []float64{0}); s != (Stat{}) {
		t.Errorf("expected zero stat for zero weights, got %+v", s)
	}
}

func TestEngineMissingTable(t *testing.T) {
	ss, teams, tables, stadia := mirrorLeague(t)
	delete(tables, "Y")
	e := &Engine{Settings: ss, Teams: teams, Tables: tables, Stadia: stadia}
	var me *MissingError
	if err := e.Run(); !errors.As(err, &me) || me.Code != "Y" {
		t.Errorf("expected MissingError for Y, got %v", err)
	}
}

func TestEngineSpatial(t *testing.T) {
	ss, teams, tables, stadia := mirrorLeague(t)
	e := &Engine{
		Settings:   ss,
		Teams:      teams,
		Tables:     tables,
		Stadia:     stadia,
		Spatial:    true,
		References: map[string]string{"X": "YS", "Y": "YS"},
	}
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	w := e.weights("X", "YS")
	if w[1] != 1 {
		t.Errorf("expected weight 1 for a game at the reference venue, got %v", w[1])
	}
	if !(w[0] < 1 && w[0] > 0) {
		t.Errorf("expected weight in (0, 1) for a home game, got %v", w[0])
	}
	// X's second row (low scoring, at YS) dominates now
	if m := teams["X"].Stats.Own[For][iTD].Mean; !(m < 2.5 && m > 2) {
		t.Errorf("expected spatially weighted TD mean in (2, 2.5), got %v", m)
	}

	// each row judges X against Y as weighted for the venue of that row
	ctx := e.OpponentContext("X", For, iTD)
	if len(ctx) != len(tables["X"].Rows) {
		t.Fatalf("expected %d opponent context rows, got %d", len(tables["X"].Rows), len(ctx))
	}
	for i, r := range tables["X"].Rows {
		expected := e.ownStat("Y", Against, iTD, e.weights("Y", r.Venue)).Mean
		if math.Abs(ctx[i]-expected) > 1e-12 {
			t.Errorf("row %d at %s: expected opponent context %v, got %v", i, r.Venue, expected, ctx[i])
		}
	}
	if ctx[0] == ctx[1] {
		t.Errorf("expected opponent context to differ by venue, got %v", ctx)
	}
}

func TestEngineZeroTrials(t *testing.T) {
	ss, teams, _, stadia := mirrorLeague(t)
	none := [3]float64{0, 0, 1}
	tables := map[string]*ScoreTable{
		"X": {Team: "X", Rows: []ScoreRow{row("Y", "XS", none, none)}},
		"Y": {Team: "Y", Rows: []ScoreRow{row("X", "YS", none, none)}},
	}
	e := &Engine{Settings: ss, Teams: teams, Tables: tables, Stadia: stadia}
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		got      Stat
		expected Stat
	}{
		{"own PAT for", teams["X"].Stats.Own[For][iPAT], Stat{Mean: 0.9}},
		{"own PAT against", teams["X"].Stats.Own[Against][iPAT], Stat{Mean: 0.9}},
		{"residual PAT for", teams["X"].Stats.Residual[For][iPAT], Stat{}},
		{"residual PAT against", teams["X"].Stats.Residual[Against][iPAT], Stat{}},
		{"residual PAT for Y", teams["Y"].Stats.Residual[For][iPAT], Stat{}},
	}
	for _, test := range tests {
		if test.got != test.expected {
			t.Errorf("%s: expected %+v, got %+v", test.name, test.expected, test.got)
		}
	}

	// the opponent rate falls back to the base rate
	if ctx := e.OpponentContext("X", For, iPAT); len(ctx) != 1 || ctx[0] != 0.9 {
		t.Errorf("expected opponent context [0.9], got %v", ctx)
	}
}

func TestExpected(t *testing.T) {
	ss, teams, tables, stadia := mirrorLeague(t)
	e := &Engine{Settings: ss, Teams: teams, Tables: tables, Stadia: stadia}
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	exp, err := Expected(teams["X"], teams["Y"], ss)
	if err != nil {
		t.Fatal(err)
	}
	expected := []Stat{{Mean: 0.8}, {Mean: 2.5, Variance: 0.25}, {Mean: 1.5, Variance: 0.5}}
	for c := range expected {
		if math.Abs(exp[c].Mean-expected[c].Mean) > 1e-12 || math.Abs(exp[c].Variance-expected[c].Variance) > 1e-12 {
			t.Errorf("%s: expected %+v, got %+v", ss.At(c).Code, expected[c], exp[c])
		}
	}

	if _, err := Expected(&Team{Code: "Q"}, teams["Y"], ss); err == nil {
		t.Errorf("expected error for team without statistics")
	}
}

func TestCapProbability(t *testing.T) {
	for _, test := range []struct{ p, expected float64 }{{-0.2, 0}, {0.3, 0.3}, {1.4, 1}} {
		if v := CapProbability(test.p); v != test.expected {
			t.Errorf("expected %v, got %v", test.expected, v)
		}
	}
}

func TestGameReferences(t *testing.T) {
	_, teams, _, stadia := mirrorLeague(t)
	games := []*ScheduledGame{
		{Team1: teams["X"], Team2: teams["Y"], Venue: stadia["YS"]},
	}
	refs := GameReferences(games)
	if refs["X"] != "YS" || refs["Y"] != "YS" {
		t.Errorf("expected both teams referenced to YS, got %v", refs)
	}
}
