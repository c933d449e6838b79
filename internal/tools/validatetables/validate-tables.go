package validatetables

import (
	"fmt"
	"log"

	"github.com/JoeJimFlood/SportPredictifier/internal/load"
	"github.com/JoeJimFlood/SportPredictifier/internal/predict"
	"github.com/JoeJimFlood/SportPredictifier/internal/validate"
)

// ValidateTables loads every input of a season and reports all inconsistencies at once.
func ValidateTables(ctx *Context) error {
	settings, err := load.ReadSettings(ctx, ctx.SettingsFile)
	if err != nil {
		return fmt.Errorf("ValidateTables: %w", err)
	}
	season, err := load.LoadSeason(ctx, settings, true)
	if err != nil {
		return fmt.Errorf("ValidateTables: %w", err)
	}
	var games []*predict.ScheduledGame
	if ctx.Round != 0 {
		games, err = season.Schedule(ctx, ctx.Round)
		if err != nil {
			return fmt.Errorf("ValidateTables: %w", err)
		}
	}
	if err := validate.All(season.Teams, season.Stadia, season.Tables, games, season.ScoreSettings); err != nil {
		return fmt.Errorf("ValidateTables: invalid inputs:\n%w", err)
	}
	log.Printf("%d score tables are valid", len(season.Tables))
	return nil
}
