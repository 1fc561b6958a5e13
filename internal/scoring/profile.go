package scoring

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
)

// Profile is a resolved point-value table keyed by scoring-setting name
// (pts_rec, pts_pass_td, ...). It never changes after resolution.
type Profile struct {
	Name   string
	Points map[string]float64
}

type Preset struct {
	Name        string
	Description string
	Points      map[string]float64
}

// UnknownPresetError reports a preset name that is not one of the built-ins.
type UnknownPresetError struct {
	Name  string
	Valid []string
}

func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("unknown scoring preset %q (valid presets: %s)", e.Name, strings.Join(e.Valid, ", "))
}

func basePoints() map[string]float64 {
	return map[string]float64{
		"pts_pass_yd":  0.04,
		"pts_pass_td":  4,
		"pts_pass_int": -2,
		"pts_rush_yd":  0.1,
		"pts_rush_td":  6,
		"pts_rec":      0,
		"pts_rec_yd":   0.1,
		"pts_rec_td":   6,
		"pts_fum_lost": -2,
		"pts_pass_2pt": 2,
		"pts_rush_2pt": 2,
		"pts_rec_2pt":  2,
	}
}

func withOverrides(overrides map[string]float64) map[string]float64 {
	pts := basePoints()
	for k, v := range overrides {
		pts[k] = v
	}
	return pts
}

var presets = map[string]Preset{
	"standard": {
		Name:        "standard",
		Description: "Traditional scoring, no points per reception",
		Points:      basePoints(),
	},
	"ppr": {
		Name:        "ppr",
		Description: "Full point per reception",
		Points:      withOverrides(map[string]float64{"pts_rec": 1}),
	},
	"half_ppr": {
		Name:        "half_ppr",
		Description: "Half point per reception",
		Points:      withOverrides(map[string]float64{"pts_rec": 0.5}),
	},
	"superflex": {
		Name:        "superflex",
		Description: "Six-point passing touchdowns",
		Points:      withOverrides(map[string]float64{"pts_pass_td": 6}),
	},
	"dynasty": {
		Name:        "dynasty",
		Description: "PPR with a tight end reception premium (1.5 per TE catch)",
		Points: withOverrides(map[string]float64{
			"pts_rec":          1,
			"pts_bonus_rec_te": 0.5,
		}),
	},
}

// PresetNames returns the built-in preset names in a stable order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, name := range PresetNames() {
		out = append(out, presets[name])
	}
	return out
}

// PresetProfile returns the named built-in profile, or an UnknownPresetError.
func PresetProfile(name string) (Profile, error) {
	p, ok := presets[strings.ToLower(name)]
	if !ok {
		return Profile{}, &UnknownPresetError{Name: name, Valid: PresetNames()}
	}
	return Profile{Name: p.Name, Points: p.Points}, nil
}

// Resolve builds the effective scoring profile for a run. Sources in priority
// order: the on-disk override file, the CLI preset name, the league's own
// scoring settings, the standard preset. A missing override file is silently
// skipped; a malformed one logs a warning and falls through. An unknown
// preset name is fatal.
func Resolve(overridePath, presetName string, leagueSettings map[string]float64) (Profile, error) {
	if overridePath != "" {
		profile, err := LoadOverride(overridePath)
		if err == nil {
			return profile, nil
		}
		if !os.IsNotExist(err) {
			slog.Warn("Ignoring malformed scoring override file", "path", overridePath, "error", err)
		}
	}

	if presetName != "" {
		return PresetProfile(presetName)
	}

	if len(leagueSettings) > 0 {
		return Profile{Name: "league", Points: leagueSettings}, nil
	}

	return Profile{Name: "standard", Points: presets["standard"].Points}, nil
}

// LoadOverride reads a custom profile from a JSON object of setting → points.
func LoadOverride(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}
	var points map[string]float64
	if err := json.Unmarshal(data, &points); err != nil {
		return Profile{}, fmt.Errorf("parsing scoring override: %w", err)
	}
	if len(points) == 0 {
		return Profile{}, fmt.Errorf("scoring override %s has no point values", path)
	}
	return Profile{Name: "custom", Points: points}, nil
}

// SaveOverride writes the profile's point table to path so future runs pick
// it up as the highest-priority source.
func SaveOverride(path string, profile Profile) error {
	data, err := json.MarshalIndent(profile.Points, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding scoring override: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing scoring override: %w", err)
	}
	return nil
}
