// Package service runs the full waiver pipeline: fetch league data, resolve
// the scoring profile, score the free-agent pool, and rank recommendations.
// One call, one pass, no state kept between runs.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"waiverwire/internal/api/sleeper"
	"waiverwire/internal/league"
	"waiverwire/internal/models"
	"waiverwire/internal/scoring"
	"waiverwire/internal/waiver"
)

// statWeekWindow is how many completed weeks of stats feed the scorer.
const statWeekWindow = 5

const (
	trendingLookbackHours = 24
	trendingLimit         = 25
	trendingDisplayLimit  = 15
	transactionLimit      = 10
)

type Params struct {
	LeagueID     string
	Season       int
	Week         int
	Username     string
	Position     string
	TopN         int
	PresetName   string
	OverridePath string
	SaveScoring  bool
}

type Report struct {
	League          *models.League
	ProfileName     string
	Roster          *models.RosterAnalysis
	Recommendations []models.Recommendation
	Trending        []models.TrendingEntry
	Transactions    []models.TransactionEntry
	WaiverOrder     []models.WaiverSlot
}

type WaiverService struct {
	api *sleeper.Client
}

func NewWaiverService(api *sleeper.Client) *WaiverService {
	return &WaiverService{api: api}
}

// Run executes one analysis pass. The profile is fully resolved before any
// player is scored, and every candidate is scored before ranking.
func (s *WaiverService) Run(ctx context.Context, p Params) (*Report, error) {
	lg, err := s.api.GetLeague(ctx, p.LeagueID)
	if err != nil {
		return nil, err
	}
	slog.Info("Analyzing league", "name", lg.Name, "season", p.Season, "week", p.Week)

	profile, err := scoring.Resolve(p.OverridePath, p.PresetName, lg.ScoringSettings)
	if err != nil {
		return nil, err
	}
	slog.Info("Resolved scoring profile", "source", profile.Name)

	if p.SaveScoring {
		if err := scoring.SaveOverride(p.OverridePath, profile); err != nil {
			return nil, err
		}
		slog.Info("Saved scoring profile for future runs", "path", p.OverridePath)
	}

	rosters, err := s.api.GetRosters(ctx, p.LeagueID)
	if err != nil {
		return nil, err
	}
	users, err := s.api.GetUsers(ctx, p.LeagueID)
	if err != nil {
		return nil, err
	}
	players, err := s.api.GetAllPlayers(ctx)
	if err != nil {
		return nil, err
	}
	trending, err := s.api.GetTrendingAdds(ctx, trendingLookbackHours, trendingLimit)
	if err != nil {
		return nil, err
	}

	weeklyStats, err := s.fetchStatWindow(ctx, p.Season, p.Week)
	if err != nil {
		return nil, err
	}
	projections, err := s.api.GetProjections(ctx, p.Season, p.Week+1)
	if err != nil {
		return nil, err
	}
	transactions, err := s.api.GetTransactions(ctx, p.LeagueID, p.Week)
	if err != nil {
		return nil, err
	}

	analyzer := league.NewAnalyzer(rosters, users, players)

	if p.Username == "" {
		return nil, fmt.Errorf("no user specified; league managers: %s", strings.Join(analyzer.Usernames(), ", "))
	}
	manager, err := analyzer.FindUser(p.Username)
	if err != nil {
		return nil, fmt.Errorf("%w (league managers: %s)", err, strings.Join(analyzer.Usernames(), ", "))
	}

	analysis, err := analyzer.AnalyzeRoster(manager.UserID)
	if err != nil {
		return nil, err
	}

	trendingIDs := make(map[string]bool, len(trending))
	for _, t := range trending {
		trendingIDs[t.PlayerID] = true
	}

	candidates := analyzer.AvailablePlayers(p.Position)
	for i := range candidates {
		attachHistory(&candidates[i], weeklyStats, projections, trendingIDs)
	}
	slog.Info("Scoring waiver candidates", "count", len(candidates))

	scorer := scoring.NewScorer(profile)
	recommendations := waiver.Rank(candidates, scorer, analysis.Needs, p.Position, p.TopN)

	report := &Report{
		League:          lg,
		ProfileName:     profile.Name,
		Roster:          analysis,
		Recommendations: recommendations,
		Transactions:    analyzer.RecentAdds(transactions, transactionLimit),
		WaiverOrder:     analyzer.WaiverPriority(),
	}
	// League-wide trending only makes sense without a position filter.
	if p.Position == "" {
		report.Trending = analyzer.TrendingReport(trending, trendingDisplayLimit)
	}
	return report, nil
}

// fetchStatWindow pulls stats for the last statWeekWindow completed weeks,
// most recent first.
func (s *WaiverService) fetchStatWindow(ctx context.Context, season, week int) ([]map[string]models.StatLine, error) {
	start := week - statWeekWindow + 1
	if start < 1 {
		start = 1
	}
	var window []map[string]models.StatLine
	for w := week; w >= start; w-- {
		stats, err := s.api.GetStats(ctx, season, w)
		if err != nil {
			return nil, err
		}
		if len(stats) > 0 {
			window = append(window, stats)
		}
	}
	return window, nil
}

// attachHistory fills a candidate's stat log (most recent first), projection,
// and trending flag. Weeks a player did not play simply contribute nothing.
func attachHistory(player *models.PlayerRecord, weeklyStats []map[string]models.StatLine, projections map[string]models.StatLine, trendingIDs map[string]bool) {
	for _, weekStats := range weeklyStats {
		if line, ok := weekStats[player.ID]; ok {
			player.Recent = append(player.Recent, line)
		}
	}
	if line, ok := projections[player.ID]; ok {
		player.Projection = line
	}
	player.Trending = trendingIDs[player.ID]
}
