package scoring

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPresetNames(t *testing.T) {
	names := PresetNames()
	want := []string{"dynasty", "half_ppr", "ppr", "standard", "superflex"}
	if len(names) != len(want) {
		t.Fatalf("expected %d presets, got %d", len(want), len(names))
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("preset %d = %q, want %q", i, names[i], name)
		}
	}
}

func TestPresetValues(t *testing.T) {
	cases := []struct {
		preset string
		key    string
		want   float64
	}{
		{"standard", "pts_rec", 0},
		{"ppr", "pts_rec", 1},
		{"half_ppr", "pts_rec", 0.5},
		{"superflex", "pts_pass_td", 6},
		{"dynasty", "pts_rec", 1},
		{"dynasty", "pts_bonus_rec_te", 0.5},
	}
	for _, c := range cases {
		p, err := PresetProfile(c.preset)
		if err != nil {
			t.Fatalf("PresetProfile(%q): %v", c.preset, err)
		}
		if got := p.Points[c.key]; got != c.want {
			t.Errorf("%s[%s] = %v, want %v", c.preset, c.key, got, c.want)
		}
	}
}

func TestPresetProfileUnknown(t *testing.T) {
	_, err := PresetProfile("xyz")
	if err == nil {
		t.Fatal("expected error for unknown preset")
	}
	var unknownErr *UnknownPresetError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownPresetError, got %T", err)
	}
	if len(unknownErr.Valid) != 5 {
		t.Errorf("expected 5 valid presets in error, got %d", len(unknownErr.Valid))
	}
	for _, name := range []string{"standard", "ppr", "half_ppr", "superflex", "dynasty"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error message should name preset %q: %s", name, err)
		}
	}
}

func TestResolveOverrideWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.json")
	if err := os.WriteFile(path, []byte(`{"pts_rec": 2}`), 0o644); err != nil {
		t.Fatal(err)
	}

	profile, err := Resolve(path, "ppr", map[string]float64{"pts_rec": 0.5})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if profile.Name != "custom" {
		t.Errorf("profile name = %q, want custom", profile.Name)
	}
	if profile.Points["pts_rec"] != 2 {
		t.Errorf("pts_rec = %v, want 2 from override file", profile.Points["pts_rec"])
	}
}

func TestResolvePresetBeatsLeague(t *testing.T) {
	profile, err := Resolve(filepath.Join(t.TempDir(), "missing.json"), "half_ppr", map[string]float64{"pts_rec": 1})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if profile.Name != "half_ppr" || profile.Points["pts_rec"] != 0.5 {
		t.Errorf("expected half_ppr profile, got %q pts_rec=%v", profile.Name, profile.Points["pts_rec"])
	}
}

func TestResolveLeagueSettings(t *testing.T) {
	settings := map[string]float64{"pts_rec": 1, "pts_pass_td": 4}
	profile, err := Resolve(filepath.Join(t.TempDir(), "missing.json"), "", settings)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if profile.Name != "league" {
		t.Errorf("profile name = %q, want league", profile.Name)
	}
}

func TestResolveDefaultsToStandard(t *testing.T) {
	profile, err := Resolve(filepath.Join(t.TempDir(), "missing.json"), "", nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if profile.Name != "standard" {
		t.Errorf("profile name = %q, want standard", profile.Name)
	}
}

func TestResolveMalformedOverrideFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.json")
	if err := os.WriteFile(path, []byte("not json at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	profile, err := Resolve(path, "ppr", nil)
	if err != nil {
		t.Fatalf("malformed override should not be fatal: %v", err)
	}
	if profile.Name != "ppr" {
		t.Errorf("expected fallback to ppr preset, got %q", profile.Name)
	}
}

func TestResolveUnknownPresetFatal(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "missing.json"), "bogus", nil)
	if err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestSaveOverrideRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.json")
	original, err := PresetProfile("dynasty")
	if err != nil {
		t.Fatal(err)
	}

	if err := SaveOverride(path, original); err != nil {
		t.Fatalf("SaveOverride: %v", err)
	}
	loaded, err := LoadOverride(path)
	if err != nil {
		t.Fatalf("LoadOverride: %v", err)
	}
	if loaded.Name != "custom" {
		t.Errorf("loaded profile name = %q, want custom", loaded.Name)
	}
	if len(loaded.Points) != len(original.Points) {
		t.Fatalf("loaded %d point values, want %d", len(loaded.Points), len(original.Points))
	}
	for k, v := range original.Points {
		if loaded.Points[k] != v {
			t.Errorf("loaded[%s] = %v, want %v", k, loaded.Points[k], v)
		}
	}
}
