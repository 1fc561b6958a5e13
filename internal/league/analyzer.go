// Package league indexes a Sleeper league's rosters and players: who owns
// whom, which players are free agents, and where each roster is thin.
package league

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"waiverwire/internal/models"
)

// positionPoolCap bounds the number of candidates scored per position.
const positionPoolCap = 200

// maxSuggestionDistance is the largest Levenshtein distance still offered as
// a "did you mean" when a username lookup misses.
const maxSuggestionDistance = 3

// IdealRoster is the target positional shape a healthy roster converges to.
var IdealRoster = map[string]int{
	"QB":  2,
	"RB":  5,
	"WR":  5,
	"TE":  2,
	"K":   1,
	"DEF": 1,
}

// depthPositions benefit from bench depth even when the ideal count is met.
var depthPositions = map[string]bool{
	"RB": true,
	"WR": true,
}

var ErrUserNotFound = fmt.Errorf("user not found in league")

type ManagerRoster struct {
	RosterID       int
	UserID         string
	Username       string
	Players        []string
	Starters       []string
	WaiverPosition int
}

type Analyzer struct {
	players  map[string]models.PlayerMeta
	rosters  []ManagerRoster
	rostered map[string]bool
	byOwner  map[string]*ManagerRoster
}

func NewAnalyzer(rosters []models.Roster, users []models.User, players map[string]models.PlayerMeta) *Analyzer {
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.UserID] = u.DisplayName
	}

	a := &Analyzer{
		players:  players,
		rostered: make(map[string]bool),
		byOwner:  make(map[string]*ManagerRoster),
	}

	for _, r := range rosters {
		username := names[r.OwnerID]
		if username == "" {
			username = "Unknown"
		}
		mr := ManagerRoster{
			RosterID:       r.RosterID,
			UserID:         r.OwnerID,
			Username:       username,
			Players:        r.Players,
			Starters:       r.Starters,
			WaiverPosition: r.Settings.WaiverPosition,
		}
		a.rosters = append(a.rosters, mr)
		for _, pid := range r.Players {
			a.rostered[pid] = true
		}
	}
	for i := range a.rosters {
		a.byOwner[a.rosters[i].UserID] = &a.rosters[i]
	}

	return a
}

// Usernames lists every manager's display name in roster order.
func (a *Analyzer) Usernames() []string {
	out := make([]string, len(a.rosters))
	for i, r := range a.rosters {
		out[i] = r.Username
	}
	return out
}

// FindUser resolves a display name case-insensitively. On a miss it returns
// ErrUserNotFound wrapped with close-match suggestions when any exist.
func (a *Analyzer) FindUser(name string) (*ManagerRoster, error) {
	lowered := strings.ToLower(name)
	for i := range a.rosters {
		if strings.ToLower(a.rosters[i].Username) == lowered {
			return &a.rosters[i], nil
		}
	}

	var suggestions []string
	for _, r := range a.rosters {
		if fuzzy.LevenshteinDistance(lowered, strings.ToLower(r.Username)) <= maxSuggestionDistance {
			suggestions = append(suggestions, r.Username)
		}
	}
	if len(suggestions) > 0 {
		return nil, fmt.Errorf("%w: %q (did you mean: %s?)", ErrUserNotFound, name, strings.Join(suggestions, ", "))
	}
	return nil, fmt.Errorf("%w: %q", ErrUserNotFound, name)
}

// Rostered reports whether any team in the league owns the player.
func (a *Analyzer) Rostered(playerID string) bool {
	return a.rostered[playerID]
}

func (a *Analyzer) PlayerMeta(playerID string) (models.PlayerMeta, bool) {
	meta, ok := a.players[playerID]
	return meta, ok
}

// AvailablePlayers returns active, unrostered players ordered by search rank,
// capped per position to bound the scoring pass. An empty position means all
// positions.
func (a *Analyzer) AvailablePlayers(position string) []models.PlayerRecord {
	var available []models.PlayerRecord
	for id, meta := range a.players {
		if a.rostered[id] || !meta.Active {
			continue
		}
		if position != "" && !hasPosition(meta, position) {
			continue
		}
		rank := meta.SearchRank
		if rank == 0 {
			rank = 99999
		}
		available = append(available, models.PlayerRecord{
			ID:               id,
			Name:             meta.FullName(),
			Position:         meta.Position,
			Team:             meta.Team,
			FantasyPositions: meta.FantasyPositions,
			InjuryStatus:     meta.InjuryStatus,
			SearchRank:       rank,
		})
	}

	sort.Slice(available, func(i, j int) bool {
		if available[i].SearchRank != available[j].SearchRank {
			return available[i].SearchRank < available[j].SearchRank
		}
		return available[i].ID < available[j].ID
	})

	taken := make(map[string]int)
	capped := available[:0]
	for _, p := range available {
		if taken[p.Position] >= positionPoolCap {
			continue
		}
		taken[p.Position]++
		capped = append(capped, p)
	}
	return capped
}

func hasPosition(meta models.PlayerMeta, position string) bool {
	if meta.Position == position {
		return true
	}
	for _, p := range meta.FantasyPositions {
		if p == position {
			return true
		}
	}
	return false
}

// Classify maps each target position to a need tier: a deficit of two or
// more is critical, one is moderate, a met target is depth only where bench
// depth pays off, and a surplus is no need at all.
func Classify(current, ideal map[string]int) map[string]models.NeedTier {
	needs := make(map[string]models.NeedTier, len(ideal))
	for pos, want := range ideal {
		deficit := want - current[pos]
		switch {
		case deficit >= 2:
			needs[pos] = models.NeedCritical
		case deficit == 1:
			needs[pos] = models.NeedModerate
		case deficit == 0 && depthPositions[pos]:
			needs[pos] = models.NeedDepth
		default:
			needs[pos] = models.NeedNone
		}
	}
	return needs
}

// AnalyzeRoster summarizes a manager's positional composition and needs.
func (a *Analyzer) AnalyzeRoster(userID string) (*models.RosterAnalysis, error) {
	roster, ok := a.byOwner[userID]
	if !ok {
		return nil, fmt.Errorf("%w: id %q", ErrUserNotFound, userID)
	}

	counts := make(map[string]int)
	byPos := make(map[string][]models.RosterPlayer)
	for _, pid := range roster.Players {
		meta, ok := a.players[pid]
		if !ok || meta.Position == "" {
			continue
		}
		counts[meta.Position]++
		byPos[meta.Position] = append(byPos[meta.Position], models.RosterPlayer{
			Name:         meta.FullName(),
			Team:         meta.Team,
			InjuryStatus: meta.InjuryStatus,
		})
	}

	return &models.RosterAnalysis{
		Username:    roster.Username,
		Counts:      counts,
		Needs:       Classify(counts, IdealRoster),
		ByPosition:  byPos,
		PlayerCount: len(roster.Players),
	}, nil
}

// WaiverPriority lists managers in claim order, best position first.
func (a *Analyzer) WaiverPriority() []models.WaiverSlot {
	slots := make([]models.WaiverSlot, len(a.rosters))
	for i, r := range a.rosters {
		slots[i] = models.WaiverSlot{Username: r.Username, Position: r.WaiverPosition}
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Position < slots[j].Position
	})
	return slots
}

// RecentAdds digests waiver and free-agent pickups, newest first.
func (a *Analyzer) RecentAdds(transactions []models.Transaction, limit int) []models.TransactionEntry {
	ownerByRoster := make(map[int]string, len(a.rosters))
	for _, r := range a.rosters {
		ownerByRoster[r.RosterID] = r.Username
	}

	var entries []models.TransactionEntry
	for _, tx := range transactions {
		if tx.Type != "waiver" && tx.Type != "free_agent" {
			continue
		}
		for pid, rosterID := range tx.Adds {
			meta, ok := a.players[pid]
			if !ok {
				continue
			}
			manager := ownerByRoster[rosterID]
			if manager == "" {
				manager = "Unknown"
			}
			entries = append(entries, models.TransactionEntry{
				Player:    meta.FullName(),
				Position:  meta.Position,
				Team:      meta.Team,
				Manager:   manager,
				Timestamp: time.UnixMilli(tx.Created),
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// TrendingReport resolves trending-add player ids against league state.
func (a *Analyzer) TrendingReport(trending []models.TrendingPlayer, limit int) []models.TrendingEntry {
	var entries []models.TrendingEntry
	for _, t := range trending {
		meta, ok := a.players[t.PlayerID]
		if !ok {
			continue
		}
		entries = append(entries, models.TrendingEntry{
			Name:     meta.FullName(),
			Position: meta.Position,
			Team:     meta.Team,
			Adds:     t.Count,
			Rostered: a.rostered[t.PlayerID],
			Injury:   meta.InjuryStatus,
		})
		if limit > 0 && len(entries) == limit {
			break
		}
	}
	return entries
}
