package predictify

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

var season = map[string]string{
	"stadia.csv": `code,name,location,lat,lon,elev
SEA,Lumen Field,"Seattle, WA",47.5952,-122.3316,5
SD,Snapdragon Stadium,"San Diego, CA",32.7831,-117.1196,20
`,
	"teams.csv": `code,name,stadium,r1,g1,b1,r2,g2,b2
SEA,Seawolves,SEA,0,43,92,105,190,40
SD,Legion,SD,255,0,16,0,0,0
`,
	"score_settings.csv": `code,description,points,prob,opp_effect,base,condition
T,Try,5,False,True,0,
C,Conversion,2,True,True,0.7,T_{F}
P,Penalty,3,False,False,0,
`,
	"schedule.csv": `round,year,month,day,team1,team2,venue,knockout
3,2024,5,4,SEA,SD,SEA,False
`,
	"tables/SEA.csv": `ROUND,OPP,VENUE,T_F,C_F,P_F,T_A,C_A,P_A
1,SD,SEA,4,3,1,2,1,2
2,SD,SD,2,2,0,3,2,1
`,
	"tables/SD.csv": `ROUND,OPP,VENUE,T_F,C_F,P_F,T_A,C_A,P_A
1,SEA,SEA,2,1,2,4,3,1
2,SEA,SD,3,2,1,2,2,0
`,
	"settings.yaml": `name: test
stadia_file: stadia.csv
teams_file: teams.csv
score_settings_file: score_settings.csv
schedule_file: schedule.csv
score_table_directory: tables
output_directory: out
simulations: 500
seed: 11
keep_draws: true
spatial_weighting: true
`,
}

func writeSeason(t *testing.T) string {
	t.Helper()
	d := t.TempDir()
	for name, content := range season {
		p := filepath.Join(d, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return d
}

func TestPredictify(t *testing.T) {
	d := writeSeason(t)
	ctx := NewContext(context.Background())
	ctx.SettingsFile = filepath.Join(d, "settings.yaml")
	ctx.Round = 3
	ctx.Force = true
	ctx.NoProgress = true
	if err := Predictify(ctx); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{
		filepath.Join(d, "out", ForecastFile(3)),
		filepath.Join(d, "out", "rankings_3.csv"),
		filepath.Join(d, "out", DrawsFile(3, "SEAvSD")),
	} {
		if _, err := os.Stat(f); err != nil {
			t.Errorf("expected %s to be written, got %v", f, err)
		}
	}
}

func TestPredictifyDryRun(t *testing.T) {
	d := writeSeason(t)
	ctx := NewContext(context.Background())
	ctx.SettingsFile = filepath.Join(d, "settings.yaml")
	ctx.Round = 3
	ctx.DryRun = true
	ctx.NoProgress = true
	if err := Predictify(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(d, "out")); !os.IsNotExist(err) {
		t.Errorf("expected no output directory on a dry run, got %v", err)
	}
}

func TestPredictifyEmptyRound(t *testing.T) {
	d := writeSeason(t)
	ctx := NewContext(context.Background())
	ctx.SettingsFile = filepath.Join(d, "settings.yaml")
	ctx.Round = 9
	ctx.DryRun = true
	if err := Predictify(ctx); err == nil {
		t.Error("expected error for a round without games, got nil")
	}
}
