package validatetables

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/JoeJimFlood/SportPredictifier/internal/validate"
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
P,Penalty,3,False,False,0,
`,
	"schedule.csv": `round,year,month,day,team1,team2,venue,knockout
3,2024,5,4,SEA,SD,SEA,False
4,2024,5,11,SEA,SD,NOWHERE,False
`,
	"tables/SEA.csv": `ROUND,OPP,VENUE,T_F,P_F,T_A,P_A
1,SD,SEA,4,1,2,2
`,
	"settings.yaml": `stadia_file: stadia.csv
teams_file: teams.csv
score_settings_file: score_settings.csv
schedule_file: schedule.csv
score_table_directory: tables
`,
}

func writeSeason(t *testing.T, sdTable string) string {
	t.Helper()
	d := t.TempDir()
	files := map[string]string{"tables/SD.csv": sdTable}
	for k, v := range season {
		files[k] = v
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
	return d
}

func TestValidateTables(t *testing.T) {
	d := writeSeason(t, `ROUND,OPP,VENUE,T_F,P_F,T_A,P_A
1,SEA,SEA,2,2,4,1
`)
	ctx := NewContext(context.Background())
	ctx.SettingsFile = filepath.Join(d, "settings.yaml")
	ctx.Round = 3
	if err := ValidateTables(ctx); err != nil {
		t.Errorf("expected valid tables, got %v", err)
	}
}

func TestValidateTablesMismatch(t *testing.T) {
	d := writeSeason(t, `ROUND,OPP,VENUE,T_F,P_F,T_A,P_A
1,SEA,SEA,2,2,3,1
`)
	ctx := NewContext(context.Background())
	ctx.SettingsFile = filepath.Join(d, "settings.yaml")
	err := ValidateTables(ctx)
	var mismatch *validate.MismatchError
	if !errors.As(err, &mismatch) {
		t.Errorf("expected a mismatch error, got %v", err)
	}
}

func TestValidateTablesBadVenue(t *testing.T) {
	d := writeSeason(t, `ROUND,OPP,VENUE,T_F,P_F,T_A,P_A
1,SEA,SEA,2,2,4,1
`)
	ctx := NewContext(context.Background())
	ctx.SettingsFile = filepath.Join(d, "settings.yaml")
	ctx.Round = 4
	if err := ValidateTables(ctx); err == nil {
		t.Error("expected error for an unknown venue, got nil")
	}
}
