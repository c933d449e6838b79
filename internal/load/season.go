package load

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/JoeJimFlood/SportPredictifier/internal/predict"
	"github.com/JoeJimFlood/SportPredictifier/internal/uri"
)

// Season is every input table named by the settings.
type Season struct {
	Settings      *Settings
	Stadia        map[string]*predict.Stadium
	Teams         map[string]*predict.Team
	ScoreSettings *predict.ScoreSettings

	// Tables is nil when the season was loaded without score tables.
	Tables map[string]*predict.ScoreTable
}

// LoadSeason reads stadia, teams, and score settings, and score tables when withTables is set.
func LoadSeason(ctx context.Context, s *Settings, withTables bool) (*Season, error) {
	season := &Season{Settings: s}

	b, err := uri.ReadAll(ctx, s.Path(s.StadiaFile))
	if err != nil {
		return nil, fmt.Errorf("LoadSeason: unable to read stadia: %w", err)
	}
	if season.Stadia, err = Stadia(s.StadiaFile, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("LoadSeason: %w", err)
	}

	b, err = uri.ReadAll(ctx, s.Path(s.TeamsFile))
	if err != nil {
		return nil, fmt.Errorf("LoadSeason: unable to read teams: %w", err)
	}
	if season.Teams, err = Teams(s.TeamsFile, bytes.NewReader(b), season.Stadia); err != nil {
		return nil, fmt.Errorf("LoadSeason: %w", err)
	}

	b, err = uri.ReadAll(ctx, s.Path(s.ScoreSettingsFile))
	if err != nil {
		return nil, fmt.Errorf("LoadSeason: unable to read score settings: %w", err)
	}
	if season.ScoreSettings, err = ScoreSettings(s.ScoreSettingsFile, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("LoadSeason: %w", err)
	}
	log.Printf("loaded %d stadia, %d teams, %d score categories", len(season.Stadia), len(season.Teams), season.ScoreSettings.Len())

	if !withTables {
		return season, nil
	}
	if season.Tables, err = ScoreTables(ctx, s.Path(s.ScoreTableDirectory), s.RoundName, season.ScoreSettings); err != nil {
		return nil, fmt.Errorf("LoadSeason: %w", err)
	}
	return season, nil
}

// Schedule reads the games of a round from the season's schedule file.
func (season *Season) Schedule(ctx context.Context, round int) ([]*predict.ScheduledGame, error) {
	s := season.Settings
	b, err := uri.ReadAll(ctx, s.Path(s.ScheduleFile))
	if err != nil {
		return nil, fmt.Errorf("Schedule: unable to read schedule: %w", err)
	}
	games, err := Schedule(s.ScheduleFile, bytes.NewReader(b), round, season.Teams, season.Stadia, season.ScoreSettings, s.Simulations)
	if err != nil {
		return nil, fmt.Errorf("Schedule: %w", err)
	}
	return games, nil
}
