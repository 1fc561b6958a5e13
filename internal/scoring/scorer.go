package scoring

import (
	"math"

	"waiverwire/internal/models"
)

// Composite weights. They sum to 1.0; each sub-score is pre-scaled into a
// common 0–~20 band so no single factor dominates.
const (
	weightRecent      = 0.35
	weightSeason      = 0.20
	weightProjection  = 0.25
	weightConsistency = 0.10
	weightTrending    = 0.10

	recentWindow = 3

	// trendingBonus is the flat sub-score a player earns for appearing in
	// the trending-adds feed.
	trendingBonus = 5.0

	// neutralConsistency is used when a single game is not enough history
	// to say anything about volatility.
	neutralConsistency = 0.5

	consistencyScale = 10.0
)

// statToSetting maps stat-line keys to their scoring-setting counterparts.
var statToSetting = map[string]string{
	"pass_yd":  "pts_pass_yd",
	"pass_td":  "pts_pass_td",
	"pass_int": "pts_pass_int",
	"rush_yd":  "pts_rush_yd",
	"rush_td":  "pts_rush_td",
	"rec":      "pts_rec",
	"rec_yd":   "pts_rec_yd",
	"rec_td":   "pts_rec_td",
	"fum_lost": "pts_fum_lost",
	"pass_2pt": "pts_pass_2pt",
	"rush_2pt": "pts_rush_2pt",
	"rec_2pt":  "pts_rec_2pt",
}

// Performance holds the per-player sub-scores behind a composite score.
type Performance struct {
	GamesPlayed int
	SeasonAvg   float64
	RecentAvg   float64
	Projected   float64
	Consistency float64
	Trend       float64
	History     []float64
}

type Scorer struct {
	profile Profile
}

func NewScorer(profile Profile) *Scorer {
	return &Scorer{profile: profile}
}

// FantasyPoints applies the profile to one stat line. Position matters only
// for position-scoped settings such as the dynasty TE reception premium.
func (s *Scorer) FantasyPoints(line models.StatLine, position string) float64 {
	if len(line) == 0 {
		return 0
	}

	var points float64
	for statKey, settingKey := range statToSetting {
		points += line[statKey] * s.profile.Points[settingKey]
	}

	if position == "TE" {
		points += line["rec"] * s.profile.Points["pts_bonus_rec_te"]
	}

	return math.Round(points*100) / 100
}

// Analyze computes the sub-scores for a player. Missing data degrades to
// zeroed terms rather than failing: a player with no game log still gets a
// projection, and a one-game history gets the neutral consistency.
func (s *Scorer) Analyze(player models.PlayerRecord) Performance {
	perf := Performance{
		Projected: s.FantasyPoints(player.Projection, player.Position),
	}

	for _, line := range player.Recent {
		perf.History = append(perf.History, s.FantasyPoints(line, player.Position))
	}
	perf.GamesPlayed = len(perf.History)
	if perf.GamesPlayed == 0 {
		return perf
	}

	perf.SeasonAvg = mean(perf.History)

	recent := perf.History
	if len(recent) > recentWindow {
		recent = recent[:recentWindow]
	}
	perf.RecentAvg = mean(recent)

	perf.Consistency = consistency(perf.History)
	perf.Trend = slope(perf.History)

	return perf
}

// Score computes the weighted composite for a player. Deterministic and free
// of I/O: same record, same profile, same score.
func (s *Scorer) Score(player models.PlayerRecord) (float64, Performance) {
	perf := s.Analyze(player)

	var bonus float64
	if player.Trending {
		bonus = trendingBonus
	}

	score := weightRecent*perf.RecentAvg +
		weightSeason*perf.SeasonAvg +
		weightProjection*perf.Projected +
		weightConsistency*perf.Consistency*consistencyScale +
		weightTrending*bonus

	return math.Round(score*100) / 100, perf
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// consistency is a damped inverse coefficient of variation in [0, 1]: 1 means
// every game scored the same, 0 means wildly volatile. The +1 in the
// denominator keeps near-zero averages from blowing up the ratio.
func consistency(history []float64) float64 {
	if len(history) < 2 {
		return neutralConsistency
	}
	avg := mean(history)
	if avg <= 0 {
		return 0
	}
	var variance float64
	for _, v := range history {
		variance += (v - avg) * (v - avg)
	}
	std := math.Sqrt(variance / float64(len(history)))
	c := 1 - std/(avg+1)
	return math.Max(0, math.Min(1, c))
}

// slope is the least-squares slope of the game log in chronological order.
// Shown as a trend indicator; it never feeds the composite score. History is
// stored most-recent-first, so the walk runs backwards.
func slope(history []float64) float64 {
	n := len(history)
	if n < 3 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i := 0; i < n; i++ {
		x := float64(i)
		y := history[n-1-i]
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := float64(n)*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (float64(n)*sumXY - sumX*sumY) / denom
}
