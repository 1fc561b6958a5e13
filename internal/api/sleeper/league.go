package sleeper

import (
	"context"
	"fmt"

	"waiverwire/internal/models"
)

func (c *Client) GetLeague(ctx context.Context, leagueID string) (*models.League, error) {
	var league models.League
	endpoint := fmt.Sprintf("/league/%s", leagueID)
	if err := c.getCached(ctx, endpoint, "league_"+leagueID, ttlLeague, &league); err != nil {
		return nil, fmt.Errorf("fetching league: %w", err)
	}
	return &league, nil
}

func (c *Client) GetRosters(ctx context.Context, leagueID string) ([]models.Roster, error) {
	var rosters []models.Roster
	endpoint := fmt.Sprintf("/league/%s/rosters", leagueID)
	if err := c.getCached(ctx, endpoint, "rosters_"+leagueID, ttlRosters, &rosters); err != nil {
		return nil, fmt.Errorf("fetching rosters: %w", err)
	}
	return rosters, nil
}

func (c *Client) GetUsers(ctx context.Context, leagueID string) ([]models.User, error) {
	var users []models.User
	endpoint := fmt.Sprintf("/league/%s/users", leagueID)
	if err := c.getCached(ctx, endpoint, "users_"+leagueID, ttlUsers, &users); err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	return users, nil
}

// GetAllPlayers downloads Sleeper's full NFL player dump. It is large (several
// MB), which is why it gets the longest cache lifetime.
func (c *Client) GetAllPlayers(ctx context.Context) (map[string]models.PlayerMeta, error) {
	var players map[string]models.PlayerMeta
	if err := c.getCached(ctx, "/players/nfl", "all_players", ttlPlayers, &players); err != nil {
		return nil, fmt.Errorf("fetching players: %w", err)
	}
	return players, nil
}

// GetTrendingAdds returns the most added players over the lookback window.
func (c *Client) GetTrendingAdds(ctx context.Context, lookbackHours, limit int) ([]models.TrendingPlayer, error) {
	var trending []models.TrendingPlayer
	endpoint := fmt.Sprintf("/players/nfl/trending/add?lookback_hours=%d&limit=%d", lookbackHours, limit)
	key := fmt.Sprintf("trending_add_%d_%d", lookbackHours, limit)
	if err := c.getCached(ctx, endpoint, key, ttlTrending, &trending); err != nil {
		return nil, fmt.Errorf("fetching trending adds: %w", err)
	}
	return trending, nil
}

func (c *Client) GetStats(ctx context.Context, season, week int) (map[string]models.StatLine, error) {
	var stats map[string]models.StatLine
	endpoint := fmt.Sprintf("/stats/nfl/regular/%d/%d", season, week)
	key := fmt.Sprintf("stats_%d_%d", season, week)
	if err := c.getCached(ctx, endpoint, key, ttlStats, &stats); err != nil {
		return nil, fmt.Errorf("fetching stats for week %d: %w", week, err)
	}
	return stats, nil
}

func (c *Client) GetProjections(ctx context.Context, season, week int) (map[string]models.StatLine, error) {
	var projections map[string]models.StatLine
	endpoint := fmt.Sprintf("/projections/nfl/regular/%d/%d", season, week)
	key := fmt.Sprintf("projections_%d_%d", season, week)
	if err := c.getCached(ctx, endpoint, key, ttlProjections, &projections); err != nil {
		return nil, fmt.Errorf("fetching projections for week %d: %w", week, err)
	}
	return projections, nil
}

func (c *Client) GetTransactions(ctx context.Context, leagueID string, week int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	endpoint := fmt.Sprintf("/league/%s/transactions/%d", leagueID, week)
	key := fmt.Sprintf("transactions_%s_%d", leagueID, week)
	if err := c.getCached(ctx, endpoint, key, ttlTransactions, &transactions); err != nil {
		return nil, fmt.Errorf("fetching transactions for week %d: %w", week, err)
	}
	return transactions, nil
}
