// Package load reads season settings and the input tables a forecast is built from.
package load

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/JoeJimFlood/SportPredictifier/internal/predict"
	"github.com/JoeJimFlood/SportPredictifier/internal/uri"
	"gopkg.in/yaml.v3"
)

// Settings describes a season. Relative paths are relative to the settings file.
type Settings struct {
	Name string `yaml:"name"`

	// Season identifies the season in Firestore. Forecasts are only stored when it is set.
	Season string `yaml:"season"`

	StadiaFile          string `yaml:"stadia_file"`
	TeamsFile           string `yaml:"teams_file"`
	ScoreSettingsFile   string `yaml:"score_settings_file"`
	ScheduleFile        string `yaml:"schedule_file"`
	ScoreTableDirectory string `yaml:"score_table_directory"`
	OutputDirectory     string `yaml:"output_directory"`
	RankingDirectory    string `yaml:"ranking_directory"`

	// RankingFilename may contain "{}", replaced by the round number.
	RankingFilename string `yaml:"ranking_filename"`

	// RoundName is the header of the round column in score tables ("ROUND", "WEEK", ...).
	RoundName string `yaml:"round_name"`

	Simulations int    `yaml:"simulations"`
	Seed        *int64 `yaml:"seed"`

	SpatialWeighting bool    `yaml:"spatial_weighting"`
	PoissonTolerance float64 `yaml:"poisson_tolerance"`

	// KeepDraws writes the raw simulated scores of every game.
	KeepDraws bool `yaml:"keep_draws"`

	Matrix *MatrixSettings `yaml:"matrix"`

	dir string
}

// MatrixSettings describes an all-play-all analysis.
type MatrixSettings struct {
	Groups        []GroupSettings        `yaml:"groups"`
	NeutralVenues []NeutralVenueSettings `yaml:"neutral_venues"`
	RoundNumber   int                    `yaml:"round_number"`
	Knockout      bool                   `yaml:"knockout"`
	Simulations   int                    `yaml:"simulations"`
	Output        string                 `yaml:"output"`
}

type GroupSettings struct {
	Name  string   `yaml:"name"`
	Teams []string `yaml:"teams"`
}

type NeutralVenueSettings struct {
	Venue  string    `yaml:"venue"`
	Groups [2]string `yaml:"groups"`
}

const (
	defaultSimulations = 100000
	defaultRoundName   = "ROUND"
	defaultRanking     = "rankings_{}.csv"
)

// ReadSettings reads and defaults the season settings at f.
func ReadSettings(ctx context.Context, f string) (*Settings, error) {
	b, err := uri.ReadAll(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("ReadSettings: unable to read %s: %w", f, err)
	}
	s, err := ParseSettings(b)
	if err != nil {
		return nil, fmt.Errorf("ReadSettings: unable to parse %s: %w", f, err)
	}
	s.dir = dir(f)
	return s, nil
}

// ParseSettings decodes settings YAML and fills in defaults.
func ParseSettings(b []byte) (*Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	if s.Simulations == 0 {
		s.Simulations = defaultSimulations
	}
	if s.Simulations < 0 {
		return nil, fmt.Errorf("simulations must be positive, got %d", s.Simulations)
	}
	if s.RoundName == "" {
		s.RoundName = defaultRoundName
	}
	if s.RankingFilename == "" {
		s.RankingFilename = defaultRanking
	}
	if s.PoissonTolerance == 0 {
		s.PoissonTolerance = predict.DefaultTolerance
	}
	if s.PoissonTolerance < 0 {
		return nil, fmt.Errorf("poisson_tolerance must not be negative, got %g", s.PoissonTolerance)
	}
	if s.Matrix != nil && s.Matrix.Simulations == 0 {
		s.Matrix.Simulations = s.Simulations
	}
	s.dir = "."
	return &s, nil
}

// Path resolves a settings path against the settings file's directory.
func (s *Settings) Path(p string) string {
	if p == "" {
		return ""
	}
	if u, err := url.Parse(p); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return p
	}
	if filepath.IsAbs(p) || s.dir == "" || s.dir == "." {
		return p
	}
	return uri.Join(s.dir, p)
}

// RankingFile returns the location of the rankings for a round.
func (s *Settings) RankingFile(round int) string {
	name := strings.ReplaceAll(s.RankingFilename, "{}", strconv.Itoa(round))
	d := s.RankingDirectory
	if d == "" {
		d = s.OutputDirectory
	}
	return s.Path(uri.Join(d, name))
}

// OutputFile returns the location of a file in the output directory.
func (s *Settings) OutputFile(name string) string {
	return s.Path(uri.Join(s.OutputDirectory, name))
}

// SeedOr returns the configured seed, or fallback when none is configured.
func (s *Settings) SeedOr(fallback int64) int64 {
	if s.Seed == nil {
		return fallback
	}
	return *s.Seed
}

// MatrixConfig converts the matrix section for the scheduler.
func (s *Settings) MatrixConfig() (predict.MatrixConfig, error) {
	var mc predict.MatrixConfig
	if s.Matrix == nil {
		return mc, fmt.Errorf("settings have no matrix section")
	}
	if len(s.Matrix.Groups) == 0 {
		return mc, fmt.Errorf("matrix section has no groups")
	}
	for _, g := range s.Matrix.Groups {
		mc.Groups = append(mc.Groups, predict.Group{Name: g.Name, Teams: g.Teams})
	}
	for _, nv := range s.Matrix.NeutralVenues {
		mc.NeutralVenues = append(mc.NeutralVenues, predict.NeutralVenue{Venue: nv.Venue, Groups: nv.Groups})
	}
	mc.RoundNumber = s.Matrix.RoundNumber
	if mc.RoundNumber == 0 {
		mc.RoundNumber = 1
	}
	mc.Knockout = s.Matrix.Knockout
	return mc, nil
}

func dir(f string) string {
	if strings.HasPrefix(f, "gs://") {
		i := strings.LastIndex(f, "/")
		if i <= len("gs://") {
			return f
		}
		return f[:i]
	}
	if u, err := url.Parse(f); err == nil && u.Scheme == "file" {
		return path.Dir(u.Path)
	}
	return filepath.Dir(f)
}
