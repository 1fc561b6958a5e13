package models

// StatLine is a single week of raw stat counts for one player, keyed by
// Sleeper stat name (pass_yd, rec, rush_td, ...). Values may be fractional.
type StatLine map[string]float64

type League struct {
	LeagueID        string             `json:"league_id"`
	Name            string             `json:"name"`
	Season          string             `json:"season"`
	Status          string             `json:"status"`
	TotalRosters    int                `json:"total_rosters"`
	RosterPositions []string           `json:"roster_positions"`
	ScoringSettings map[string]float64 `json:"scoring_settings"`
}

type Roster struct {
	RosterID int            `json:"roster_id"`
	OwnerID  string         `json:"owner_id"`
	Players  []string       `json:"players"`
	Starters []string       `json:"starters"`
	Reserve  []string       `json:"reserve"`
	Taxi     []string       `json:"taxi"`
	Settings RosterSettings `json:"settings"`
}

type RosterSettings struct {
	Wins           int `json:"wins"`
	Losses         int `json:"losses"`
	Ties           int `json:"ties"`
	WaiverPosition int `json:"waiver_position"`
	WaiverBudget   int `json:"waiver_budget_used"`
}

type User struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

type PlayerMeta struct {
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Position         string   `json:"position"`
	Team             string   `json:"team"`
	FantasyPositions []string `json:"fantasy_positions"`
	Active           bool     `json:"active"`
	InjuryStatus     string   `json:"injury_status"`
	DepthChartOrder  int      `json:"depth_chart_order"`
	SearchRank       int      `json:"search_rank"`
}

func (p PlayerMeta) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

type TrendingPlayer struct {
	PlayerID string `json:"player_id"`
	Count    int    `json:"count"`
}

type Transaction struct {
	Type    string         `json:"type"`
	Status  string         `json:"status"`
	Created int64          `json:"created"`
	Adds    map[string]int `json:"adds"`
	Drops   map[string]int `json:"drops"`
}
