package predict

import "testing"

// testSettings returns PAT (probabilistic on TD_{F}), TD, and FG, declared with PAT first
// so that the simulation order differs from declaration order.
func testSettings(t testing.TB) *ScoreSettings {
	t.Helper()
	cond, err := ParseCondition("TD_{F}")
	if err != nil {
		t.Fatal(err)
	}
	ss, err := NewScoreSettings([]*ScoreCategory{
		{Code: "PAT", Points: 1, Probabilistic: true, OpponentAffects: true, Base: 0.9, Condition: cond},
		{Code: "TD", Points: 6, OpponentAffects: true},
		{Code: "FG", Points: 3},
	})
	if err != nil {
		t.Fatal(err)
	}
	return ss
}

// row builds a score row with counts given as PAT, TD, FG.
func row(opp, venue string, f, a [3]float64) ScoreRow {
	return ScoreRow{Opponent: opp, Venue: venue, Weight: 1, For: f[:], Against: a[:]}
}

// mirrorLeague returns two teams whose histories are exact mirrors of each other.
func mirrorLeague(t testing.TB) (*ScoreSettings, map[string]*Team, map[string]*ScoreTable, map[string]*Stadium) {
	t.Helper()
	ss := testSettings(t)
	stadia := map[string]*Stadium{
		"XS": {Code: "XS", Lat: 47.6, Lon: -122.3},
		"YS": {Code: "YS", Lat: 32.7, Lon: -117.2},
	}
	teams := map[string]*Team{
		"X": {Code: "X", Stadium: stadia["XS"]},
		"Y": {Code: "Y", Stadium: stadia["YS"]},
	}
	hi := [3]float64{2, 3, 2}
	lo := [3]float64{2, 2, 1}
	tables := map[string]*ScoreTable{
		"X": {Team: "X", Rows: []ScoreRow{row("Y", "XS", hi, lo), row("Y", "YS", lo, hi)}},
		"Y": {Team: "Y", Rows: []ScoreRow{row("X", "YS", hi, lo), row("X", "XS", lo, hi)}},
	}
	return ss, teams, tables, stadia
}
