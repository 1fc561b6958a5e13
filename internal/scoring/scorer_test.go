package scoring

import (
	"math"
	"testing"

	"waiverwire/internal/models"
)

func mustPreset(t *testing.T, name string) Profile {
	t.Helper()
	p, err := PresetProfile(name)
	if err != nil {
		t.Fatalf("PresetProfile(%q): %v", name, err)
	}
	return p
}

func TestCompositeWeightsSumToOne(t *testing.T) {
	sum := weightRecent + weightSeason + weightProjection + weightConsistency + weightTrending
	if sum != 1.0 {
		t.Fatalf("composite weights sum to %v, want exactly 1.0", sum)
	}
}

func TestFantasyPointsReceivingScenario(t *testing.T) {
	// WR with 5 receptions, 75 yards, 1 TD.
	line := models.StatLine{"rec": 5, "rec_yd": 75, "rec_td": 1}

	cases := []struct {
		preset string
		want   float64
	}{
		{"standard", 13.5},
		{"ppr", 18.5},
		{"half_ppr", 16.0},
	}
	for _, c := range cases {
		scorer := NewScorer(mustPreset(t, c.preset))
		if got := scorer.FantasyPoints(line, "WR"); got != c.want {
			t.Errorf("%s: FantasyPoints = %v, want %v", c.preset, got, c.want)
		}
	}
}

func TestFantasyPointsZeroReceptionsIgnoresRecRate(t *testing.T) {
	// A player who never catches a pass scores the same no matter what a
	// reception is worth.
	line := models.StatLine{"rush_yd": 80, "rush_td": 1}

	standard := NewScorer(mustPreset(t, "standard"))
	inflated := NewScorer(Profile{Name: "custom", Points: withOverrides(map[string]float64{"pts_rec": 3})})

	if a, b := standard.FantasyPoints(line, "RB"), inflated.FantasyPoints(line, "RB"); a != b {
		t.Errorf("reception rate changed a zero-reception score: %v vs %v", a, b)
	}
}

func TestFantasyPointsDynastyTEPremium(t *testing.T) {
	line := models.StatLine{"rec": 4, "rec_yd": 40}
	scorer := NewScorer(mustPreset(t, "dynasty"))

	if got := scorer.FantasyPoints(line, "TE"); got != 10.0 {
		t.Errorf("TE points = %v, want 10.0 (8 ppr + 2 premium)", got)
	}
	if got := scorer.FantasyPoints(line, "WR"); got != 8.0 {
		t.Errorf("WR points = %v, want 8.0 (no TE premium)", got)
	}
}

func TestFantasyPointsPenaltyStats(t *testing.T) {
	line := models.StatLine{"pass_yd": 250, "pass_td": 2, "pass_int": 3, "fum_lost": 1}
	scorer := NewScorer(mustPreset(t, "standard"))

	// 10 + 8 - 6 - 2
	if got := scorer.FantasyPoints(line, "QB"); got != 10.0 {
		t.Errorf("QB points = %v, want 10.0", got)
	}
}

func TestScoreTrendingDelta(t *testing.T) {
	// Identical records except the trending flag: the score difference must
	// be exactly the weighted trending bonus.
	base := models.PlayerRecord{
		ID:       "1",
		Position: "WR",
		Recent: []models.StatLine{
			{"rec_yd": 100},
			{"rec_yd": 100},
			{"rec_yd": 100},
		},
		Projection: models.StatLine{"rec_yd": 50},
	}
	flagged := base
	flagged.Trending = true

	scorer := NewScorer(mustPreset(t, "standard"))
	plain, _ := scorer.Score(base)
	trending, _ := scorer.Score(flagged)

	want := weightTrending * trendingBonus
	if got := trending - plain; got != want {
		t.Errorf("trending delta = %v, want exactly %v", got, want)
	}
}

func TestScoreZeroHistoryUsesProjectionAndTrending(t *testing.T) {
	player := models.PlayerRecord{
		ID:         "1",
		Position:   "RB",
		Projection: models.StatLine{"rush_yd": 80},
	}

	scorer := NewScorer(mustPreset(t, "standard"))
	score, perf := scorer.Score(player)

	if math.IsNaN(score) || math.IsInf(score, 0) {
		t.Fatalf("score must be finite, got %v", score)
	}
	if perf.GamesPlayed != 0 || perf.SeasonAvg != 0 || perf.RecentAvg != 0 || perf.Consistency != 0 {
		t.Errorf("history terms should zero out: %+v", perf)
	}
	if want := weightProjection * 8.0; score != want {
		t.Errorf("score = %v, want %v (projection term only)", score, want)
	}

	player.Trending = true
	withBonus, _ := scorer.Score(player)
	if want := weightProjection*8.0 + weightTrending*trendingBonus; withBonus != want {
		t.Errorf("trending zero-history score = %v, want %v", withBonus, want)
	}
}

func TestAnalyzeRecentWindow(t *testing.T) {
	// Five games on record, most recent first; the recent average only looks
	// at the last three.
	player := models.PlayerRecord{
		ID:       "1",
		Position: "RB",
		Recent: []models.StatLine{
			{"rush_yd": 100}, // 10
			{"rush_yd": 200}, // 20
			{"rush_yd": 300}, // 30
			{"rush_yd": 10},  // 1
			{"rush_yd": 10},  // 1
		},
	}

	scorer := NewScorer(mustPreset(t, "standard"))
	perf := scorer.Analyze(player)

	if perf.GamesPlayed != 5 {
		t.Fatalf("GamesPlayed = %d, want 5", perf.GamesPlayed)
	}
	if perf.RecentAvg != 20.0 {
		t.Errorf("RecentAvg = %v, want 20.0", perf.RecentAvg)
	}
	if want := 62.0 / 5.0; perf.SeasonAvg != want {
		t.Errorf("SeasonAvg = %v, want %v", perf.SeasonAvg, want)
	}
}

func TestAnalyzeSingleGameNeutralConsistency(t *testing.T) {
	player := models.PlayerRecord{
		ID:       "1",
		Position: "WR",
		Recent:   []models.StatLine{{"rec_yd": 60}},
	}

	scorer := NewScorer(mustPreset(t, "standard"))
	perf := scorer.Analyze(player)

	if perf.Consistency != neutralConsistency {
		t.Errorf("single-game consistency = %v, want neutral %v", perf.Consistency, neutralConsistency)
	}
}

func TestAnalyzeConsistencyRange(t *testing.T) {
	steady := models.PlayerRecord{
		Position: "WR",
		Recent:   []models.StatLine{{"rec_yd": 100}, {"rec_yd": 100}, {"rec_yd": 100}},
	}
	volatile := models.PlayerRecord{
		Position: "WR",
		Recent:   []models.StatLine{{"rec_yd": 300}, {"rec_yd": 0}, {"rec_yd": 0}},
	}

	scorer := NewScorer(mustPreset(t, "standard"))
	steadyPerf := scorer.Analyze(steady)
	volatilePerf := scorer.Analyze(volatile)

	for _, perf := range []Performance{steadyPerf, volatilePerf} {
		if perf.Consistency < 0 || perf.Consistency > 1 {
			t.Errorf("consistency %v out of [0,1]", perf.Consistency)
		}
	}
	if steadyPerf.Consistency <= volatilePerf.Consistency {
		t.Errorf("steady player should rate more consistent: %v vs %v",
			steadyPerf.Consistency, volatilePerf.Consistency)
	}
}

func TestAnalyzeTrendSlope(t *testing.T) {
	// History is most-recent-first: this player is improving week over week.
	improving := models.PlayerRecord{
		Position: "RB",
		Recent:   []models.StatLine{{"rush_yd": 150}, {"rush_yd": 100}, {"rush_yd": 50}},
	}
	fading := models.PlayerRecord{
		Position: "RB",
		Recent:   []models.StatLine{{"rush_yd": 50}, {"rush_yd": 100}, {"rush_yd": 150}},
	}

	scorer := NewScorer(mustPreset(t, "standard"))
	if perf := scorer.Analyze(improving); perf.Trend <= 0 {
		t.Errorf("improving player trend = %v, want positive", perf.Trend)
	}
	if perf := scorer.Analyze(fading); perf.Trend >= 0 {
		t.Errorf("fading player trend = %v, want negative", perf.Trend)
	}
}

func TestTrendSlopeNeverChangesScore(t *testing.T) {
	// Same totals, opposite trajectories: composite scores must match.
	up := models.PlayerRecord{
		Position: "RB",
		Recent:   []models.StatLine{{"rush_yd": 150}, {"rush_yd": 100}, {"rush_yd": 50}},
	}
	down := models.PlayerRecord{
		Position: "RB",
		Recent:   []models.StatLine{{"rush_yd": 50}, {"rush_yd": 100}, {"rush_yd": 150}},
	}

	scorer := NewScorer(mustPreset(t, "standard"))
	upScore, _ := scorer.Score(up)
	downScore, _ := scorer.Score(down)
	if upScore != downScore {
		t.Errorf("trend direction leaked into the score: %v vs %v", upScore, downScore)
	}
}

func TestFantasyPointsEmptyLine(t *testing.T) {
	scorer := NewScorer(mustPreset(t, "ppr"))
	if got := scorer.FantasyPoints(nil, "WR"); got != 0 {
		t.Errorf("nil stat line = %v, want 0", got)
	}
	if got := scorer.FantasyPoints(models.StatLine{}, "WR"); got != 0 {
		t.Errorf("empty stat line = %v, want 0", got)
	}
}
