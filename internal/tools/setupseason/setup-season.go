package setupseason

import (
	"bytes"
	"fmt"
	"log"
	"sort"

	"github.com/JoeJimFlood/SportPredictifier/internal/firestore"
	"github.com/JoeJimFlood/SportPredictifier/internal/load"
	"github.com/JoeJimFlood/SportPredictifier/internal/report"
	"github.com/JoeJimFlood/SportPredictifier/internal/uri"
)

// SetupSeason writes an empty score table for every team that does not have one yet
// and publishes the season's stadia and teams to Firestore.
func SetupSeason(ctx *Context) error {
	settings, err := load.ReadSettings(ctx, ctx.SettingsFile)
	if err != nil {
		return fmt.Errorf("SetupSeason: %w", err)
	}
	season, err := load.LoadSeason(ctx, settings, false)
	if err != nil {
		return fmt.Errorf("SetupSeason: %w", err)
	}

	dir := settings.Path(settings.ScoreTableDirectory)
	existing, err := uri.List(ctx, dir, ".csv", ".xlsx")
	if err != nil {
		return fmt.Errorf("SetupSeason: unable to list score tables: %w", err)
	}
	have := make(map[string]struct{}, len(existing))
	for _, f := range existing {
		have[uri.Stem(f)] = struct{}{}
	}

	codes := make([]string, 0, len(season.Teams))
	for code := range season.Teams {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	header := load.Header(settings.RoundName, season.ScoreSettings)
	opts := report.Options{Force: ctx.Force, DryRun: ctx.DryRun}
	created := 0
	for _, code := range codes {
		if _, ok := have[code]; ok {
			continue
		}
		ok, err := report.Write(ctx, uri.Join(dir, code+".csv"), opts, func(buf *bytes.Buffer) error {
			return report.ScoreTableTemplate(buf, header)
		})
		if err != nil {
			return fmt.Errorf("SetupSeason: %w", err)
		}
		if ok {
			created++
		}
	}
	log.Printf("created %d empty score tables", created)

	if ctx.FirestoreClient == nil {
		return nil
	}
	if settings.Season == "" {
		return fmt.Errorf("SetupSeason: settings do not name a season to publish")
	}
	doc := firestore.Season{
		Name:             settings.Name,
		Simulations:      settings.Simulations,
		SpatialWeighting: settings.SpatialWeighting,
	}
	if err := firestore.WriteSeason(ctx, ctx.FirestoreClient, settings.Season, doc, season.Stadia, season.Teams, firestore.WriteOptions{Force: ctx.Force, DryRun: ctx.DryRun}); err != nil {
		return fmt.Errorf("SetupSeason: %w", err)
	}
	return nil
}
