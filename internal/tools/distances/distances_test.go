package distances

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

const stadiaCSV = `code,name,location,lat,lon,elev
SEA,Lumen Field,"Seattle, WA",47.5952,-122.3316,5
SD,Snapdragon Stadium,"San Diego, CA",32.7831,-117.1196,20
`

func TestScale(t *testing.T) {
	tests := []struct {
		unit    string
		want    float64
		wantErr bool
	}{
		{"km", 20037.5, false},
		{"", 20037.5, false},
		{"mi", 12450, false},
		{"fraction", 1, false},
		{"furlongs", 0, true},
	}
	for _, test := range tests {
		got, err := Scale(test.unit)
		if (err != nil) != test.wantErr {
			t.Errorf("%q: expected error %t, got %v", test.unit, test.wantErr, err)
		}
		if got != test.want {
			t.Errorf("%q: expected %f, got %f", test.unit, test.want, got)
		}
	}
}

func TestDistances(t *testing.T) {
	d := t.TempDir()
	in := filepath.Join(d, "stadia.csv")
	if err := os.WriteFile(in, []byte(stadiaCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx := NewContext(context.Background())
	ctx.StadiaFile = in
	ctx.OutputFile = filepath.Join(d, "distances.csv")
	ctx.Unit = "km"
	if err := Distances(ctx); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(ctx.OutputFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 || recs[0][1] != "SD" || recs[0][2] != "SEA" {
		t.Fatalf("expected a 2x2 matrix ordered SD, SEA, got %v", recs)
	}
	km, err := strconv.ParseFloat(recs[1][2], 64)
	if err != nil {
		t.Fatal(err)
	}
	// Seattle to San Diego is about 1700 km
	if km < 1650 || km > 1750 {
		t.Errorf("expected about 1700 km, got %f", km)
	}
	zero, err := strconv.ParseFloat(recs[1][1], 64)
	if err != nil || zero != 0 {
		t.Errorf("expected zero distance on the diagonal, got %s", recs[1][1])
	}
}
