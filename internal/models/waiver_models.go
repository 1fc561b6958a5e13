package models

import "time"

// NeedTier classifies how urgently a roster needs a position. Higher values
// sort first when ranking recommendations.
type NeedTier int

const (
	NeedNone NeedTier = iota
	NeedDepth
	NeedModerate
	NeedCritical
)

func (t NeedTier) String() string {
	switch t {
	case NeedCritical:
		return "critical"
	case NeedModerate:
		return "moderate"
	case NeedDepth:
		return "depth"
	default:
		return "none"
	}
}

// PlayerRecord is one waiver candidate with everything the scorer needs:
// identity, the last few weeks of stats (most recent first, at most five),
// the upcoming-week projection, and the trending flag.
type PlayerRecord struct {
	ID               string
	Name             string
	Position         string
	Team             string
	FantasyPositions []string
	InjuryStatus     string
	SearchRank       int
	Recent           []StatLine
	Projection       StatLine
	Trending         bool
}

// EligibleAt reports whether the player can fill the given position, either
// as his primary position or any of his listed fantasy positions.
func (p PlayerRecord) EligibleAt(position string) bool {
	if p.Position == position {
		return true
	}
	for _, fp := range p.FantasyPositions {
		if fp == position {
			return true
		}
	}
	return false
}

type Recommendation struct {
	Player      PlayerRecord
	Score       float64
	Need        NeedTier
	SeasonAvg   float64
	RecentAvg   float64
	Projected   float64
	Trend       float64
	GamesPlayed int
}

type RosterPlayer struct {
	Name         string
	Team         string
	InjuryStatus string
}

type RosterAnalysis struct {
	Username    string
	Counts      map[string]int
	Needs       map[string]NeedTier
	ByPosition  map[string][]RosterPlayer
	PlayerCount int
}

type TrendingEntry struct {
	Name     string
	Position string
	Team     string
	Adds     int
	Rostered bool
	Injury   string
}

type TransactionEntry struct {
	Player    string
	Position  string
	Team      string
	Manager   string
	Timestamp time.Time
}

type WaiverSlot struct {
	Username string
	Position int
}
