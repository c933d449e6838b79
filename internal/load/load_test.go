package load

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JoeJimFlood/SportPredictifier/internal/predict"
	"github.com/tealeg/xlsx"
)

const (
	stadiaCSV = `code,name,location,lat,lon,elev
SEA,Lumen Field,"Seattle, WA",47.5952,-122.3316,5
SD,Snapdragon Stadium,"San Diego, CA",32.7831,-117.1196,20
`
	teamsCSV = `code,name,stadium,r1,g1,b1,r2,g2,b2
SEA,Seawolves,SEA,0,43,92,105,190,40
SD,Legion,SD,255,0,16,0,0,0
`
	scoreSettingsCSV = `code,description,points,prob,opp_effect,base,condition
T,Try,5,False,True,0,
C,Conversion,2,True,True,0.7,T_{F}
P,Penalty,3,False,False,0,nan
`
	seaTableCSV = `ROUND,OPP,VENUE,weight,T_F,C_F,P_F,T_A,C_A,P_A
1,SD,SEA,1,4,3,1,2,1,2
2,SD,SD,0.5,2,2,0,3,2,1
`
	sdTableCSV = `ROUND,OPP,VENUE,T_F,C_F,P_F,T_A,C_A,P_A
1,SEA,SEA,2,1,2,4,3,1
2,SEA,SD,3,2,1,2,2,0
`
	scheduleCSV = `round,year,month,day,team1,team2,venue,knockout
3,2024,5,4,SEA,SD,SEA,False
4,2024,5,11,SD,SEA,SD,True
`
)

func testScoreSettings(t *testing.T) *predict.ScoreSettings {
	t.Helper()
	ss, err := ScoreSettings("score_settings.csv", strings.NewReader(scoreSettingsCSV))
	if err != nil {
		t.Fatal(err)
	}
	return ss
}

func TestStadiaAndTeams(t *testing.T) {
	stadia, err := Stadia("stadia.csv", strings.NewReader(stadiaCSV))
	if err != nil {
		t.Fatal(err)
	}
	if len(stadia) != 2 || stadia["SEA"].Location != "Seattle, WA" || stadia["SD"].Elevation != 20 {
		t.Errorf("unexpected stadia %+v", stadia)
	}

	teams, err := Teams("teams.csv", strings.NewReader(teamsCSV), stadia)
	if err != nil {
		t.Fatal(err)
	}
	sea := teams["SEA"]
	if sea.Color1 != "#002b5c" || sea.Color2 != "#69be28" {
		t.Errorf("expected #002b5c and #69be28, got %s and %s", sea.Color1, sea.Color2)
	}
	if sea.Stadium != stadia["SEA"] {
		t.Errorf("expected home stadium SEA, got %v", sea.Stadium)
	}
}

func TestTeamsReportsEveryError(t *testing.T) {
	stadia, _ := Stadia("stadia.csv", strings.NewReader(stadiaCSV))
	bad := `code,name,stadium,r1,g1,b1
A,Alpha,NOPE,0,0,0
B,Beta,SEA,300,0,0
B,Beta again,SEA,0,0,0
`
	_, err := Teams("teams.csv", strings.NewReader(bad), stadia)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"line 2", "line 3", "line 4"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %s, got %v", want, err)
		}
	}
}

func TestScoreSettings(t *testing.T) {
	ss := testScoreSettings(t)
	if ss.Len() != 3 {
		t.Fatalf("expected 3 categories, got %d", ss.Len())
	}
	c := ss.At(1)
	if !c.Probabilistic || !c.OpponentAffects || c.Base != 0.7 || c.Condition == nil {
		t.Errorf("unexpected conversion settings %+v", c)
	}
	if ss.At(2).Condition != nil || ss.At(2).OpponentAffects {
		t.Errorf("unexpected penalty settings %+v", ss.At(2))
	}

	bad := `code,points,prob,condition
X,1,maybe,
Y,two,True,Z_{F}
`
	_, err := ScoreSettings("bad.csv", strings.NewReader(bad))
	if err == nil || !strings.Contains(err.Error(), "maybe") || !strings.Contains(err.Error(), "two") {
		t.Errorf("expected both bad values reported, got %v", err)
	}
}

func TestScoreTableCSV(t *testing.T) {
	ss := testScoreSettings(t)
	st, err := ScoreTableCSV("SEA.csv", []byte(seaTableCSV), "SEA", "round", ss)
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(st.Rows))
	}
	r := st.Rows[1]
	if r.Round != 2 || r.Opponent != "SD" || r.Venue != "SD" || r.Weight != 0.5 {
		t.Errorf("unexpected row %+v", r)
	}
	if r.Count(predict.For, 0) != 2 || r.Count(predict.Against, 2) != 1 {
		t.Errorf("unexpected counts %+v", r)
	}

	st, err = ScoreTableCSV("SD.csv", []byte(sdTableCSV), "SD", "ROUND", ss)
	if err != nil {
		t.Fatal(err)
	}
	if st.Rows[0].Weight != 1 {
		t.Errorf("expected default weight 1, got %v", st.Rows[0].Weight)
	}

	_, err = ScoreTableCSV("bad.csv", []byte("OPP,VENUE,T_F\nSD,SD,1\n"), "X", "ROUND", ss)
	if err == nil || !strings.Contains(err.Error(), "P_A") {
		t.Errorf("expected missing column error, got %v", err)
	}
}

func TestScoreTableXLSX(t *testing.T) {
	ss := testScoreSettings(t)
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("SEA")
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range strings.Split(strings.TrimSpace(seaTableCSV), "\n") {
		row := sheet.AddRow()
		for _, v := range strings.Split(line, ",") {
			row.AddCell().SetString(v)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}

	st, err := ScoreTableXLSX("SEA.xlsx", buf.Bytes(), "SEA", "ROUND", ss)
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Rows) != 2 || st.Rows[0].Count(predict.For, 0) != 4 {
		t.Errorf("unexpected table %+v", st)
	}
}

func TestSchedule(t *testing.T) {
	ss := testScoreSettings(t)
	stadia, _ := Stadia("stadia.csv", strings.NewReader(stadiaCSV))
	teams, _ := Teams("teams.csv", strings.NewReader(teamsCSV), stadia)

	games, err := Schedule("schedule.csv", strings.NewReader(scheduleCSV), 4, teams, stadia, ss, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	g := games[0]
	if g.Key() != "SDvSEA" || !g.Knockout || g.Simulations != 1000 || g.Date.Day() != 11 {
		t.Errorf("unexpected game %v", g)
	}

	all, err := Schedule("schedule.csv", strings.NewReader(scheduleCSV), 0, teams, stadia, ss, 1000)
	if err != nil || len(all) != 2 {
		t.Errorf("expected 2 games, got %d (%v)", len(all), err)
	}

	_, err = Schedule("schedule.csv", strings.NewReader("round,team1,team2,venue\n1,SEA,XX,YY\n"), 0, teams, stadia, ss, 1000)
	if err == nil || !strings.Contains(err.Error(), "XX") || !strings.Contains(err.Error(), "YY") {
		t.Errorf("expected team and stadium errors, got %v", err)
	}
}

func TestParseSettings(t *testing.T) {
	s, err := ParseSettings([]byte(`
name: Major League Rugby
round_name: round
seed: 7
matrix:
  groups:
    - name: West
      teams: [SEA, SD]
    - name: East
      teams: [NE]
  neutral_venues:
    - venue: SD
      groups: [West, East]
  knockout: true
`))
	if err != nil {
		t.Fatal(err)
	}
	if s.Simulations != defaultSimulations || s.PoissonTolerance != predict.DefaultTolerance {
		t.Errorf("expected defaults, got %d and %g", s.Simulations, s.PoissonTolerance)
	}
	if s.SeedOr(-1) != 7 {
		t.Errorf("expected seed 7, got %d", s.SeedOr(-1))
	}
	mc, err := s.MatrixConfig()
	if err != nil {
		t.Fatal(err)
	}
	if len(mc.Groups) != 2 || mc.Groups[0].Teams[1] != "SD" || mc.NeutralVenues[0].Groups[1] != "East" || !mc.Knockout || mc.RoundNumber != 1 {
		t.Errorf("unexpected matrix config %+v", mc)
	}
	if s.Matrix.Simulations != defaultSimulations {
		t.Errorf("expected matrix simulations to default, got %d", s.Matrix.Simulations)
	}

	if _, err := ParseSettings([]byte("simulations: -5")); err == nil {
		t.Errorf("expected error for negative simulations")
	}
}

func TestSettingsPaths(t *testing.T) {
	s := &Settings{dir: "season", OutputDirectory: "out", RankingFilename: "rankings_{}.csv"}
	if p := s.Path("teams.csv"); p != filepath.Join("season", "teams.csv") {
		t.Errorf("expected season/teams.csv, got %s", p)
	}
	if p := s.Path("gs://bucket/teams.csv"); p != "gs://bucket/teams.csv" {
		t.Errorf("expected unchanged gs path, got %s", p)
	}
	if p := s.RankingFile(5); p != filepath.Join("season", "out", "rankings_5.csv") {
		t.Errorf("expected season/out/rankings_5.csv, got %s", p)
	}

	gs := &Settings{dir: dir("gs://bucket/mlr/settings.yaml"), OutputDirectory: "out"}
	if p := gs.OutputFile("forecasts.xlsx"); p != "gs://bucket/mlr/out/forecasts.xlsx" {
		t.Errorf("expected gs://bucket/mlr/out/forecasts.xlsx, got %s", p)
	}
}

func TestLoadSeason(t *testing.T) {
	d := t.TempDir()
	files := map[string]string{
		"stadia.csv":         stadiaCSV,
		"teams.csv":          teamsCSV,
		"score_settings.csv": scoreSettingsCSV,
		"schedule.csv":       scheduleCSV,
		"tables/SEA.csv":     seaTableCSV,
		"tables/SD.csv":      sdTableCSV,
		"tables/notes.txt":   "ignored",
		"settings.yaml":      "stadia_file: stadia.csv\nteams_file: teams.csv\nscore_settings_file: score_settings.csv\nschedule_file: schedule.csv\nscore_table_directory: tables\nsimulations: 500\n",
	}
	for name, content := range files {
		p := filepath.Join(d, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ctx := context.Background()
	s, err := ReadSettings(ctx, filepath.Join(d, "settings.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	season, err := LoadSeason(ctx, s, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(season.Tables) != 2 || season.Tables["SD"] == nil {
		t.Errorf("expected tables for SEA and SD, got %v", season.Tables)
	}
	games, err := season.Schedule(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 1 || games[0].Simulations != 500 {
		t.Errorf("unexpected games %v", games)
	}
}
