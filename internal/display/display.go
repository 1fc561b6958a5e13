// Package display renders report data as terminal tables. It holds no logic
// of its own: everything it prints arrives precomputed.
package display

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"waiverwire/internal/models"
	"waiverwire/internal/scoring"
	"waiverwire/internal/service"
)

var needColors = map[models.NeedTier]*color.Color{
	models.NeedCritical: color.New(color.FgRed, color.Bold),
	models.NeedModerate: color.New(color.FgYellow),
	models.NeedDepth:    color.New(color.FgGreen),
	models.NeedNone:     color.New(color.Faint),
}

type Renderer struct {
	out io.Writer
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

func (r *Renderer) header(text string) {
	fmt.Fprintf(r.out, "\n%s\n", color.New(color.FgCyan, color.Bold).Sprint(text))
}

// RenderRunInfo prints the league banner at the top of a run.
func (r *Renderer) RenderRunInfo(lg *models.League, season, week int, profileName string) {
	r.header(fmt.Sprintf("Sleeper Waiver Wire Assistant | %s", lg.Name))
	fmt.Fprintf(r.out, "Season %d | Week %d | Scoring: %s\n", season, week, profileName)
}

func (r *Renderer) RenderRosterAnalysis(analysis *models.RosterAnalysis) {
	r.header(fmt.Sprintf("Roster Analysis: %s", analysis.Username))

	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"Pos", "Count", "Need", "Players"})
	table.SetAutoWrapText(false)

	for _, pos := range []string{"QB", "RB", "WR", "TE", "K", "DEF"} {
		need := analysis.Needs[pos]
		var names string
		for i, p := range analysis.ByPosition[pos] {
			if i > 0 {
				names += ", "
			}
			names += p.Name
			if p.InjuryStatus != "" {
				names += fmt.Sprintf(" (%s)", p.InjuryStatus)
			}
		}
		table.Append([]string{
			pos,
			strconv.Itoa(analysis.Counts[pos]),
			needColors[need].Sprint(need.String()),
			names,
		})
	}
	table.Render()
}

func (r *Renderer) RenderRecommendations(recs []models.Recommendation, username string) {
	r.header(fmt.Sprintf("Waiver Wire Recommendations for %s", username))
	if len(recs) == 0 {
		fmt.Fprintln(r.out, "No recommendations found matching your criteria.")
		return
	}

	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"Rank", "Player", "Pos", "Team", "Score", "Avg", "Recent", "Proj", "Need", "Status"})

	for i, rec := range recs {
		team := rec.Player.Team
		if team == "" {
			team = "FA"
		}

		status := ""
		if rec.Player.Trending {
			status = "TRENDING"
		}
		if rec.Player.InjuryStatus != "" {
			status = rec.Player.InjuryStatus
		}
		if rec.Trend > 0 && rec.GamesPlayed >= 3 {
			status += " ↑"
		}

		table.Append([]string{
			strconv.Itoa(i + 1),
			rec.Player.Name,
			rec.Player.Position,
			team,
			fmt.Sprintf("%.1f", rec.Score),
			fmt.Sprintf("%.1f", rec.SeasonAvg),
			fmt.Sprintf("%.1f", rec.RecentAvg),
			fmt.Sprintf("%.1f", rec.Projected),
			needColors[rec.Need].Sprint(rec.Need.String()),
			status,
		})
	}
	table.Render()
}

func (r *Renderer) RenderTrending(entries []models.TrendingEntry) {
	if len(entries) == 0 {
		return
	}
	r.header("Trending Players (last 24 hours)")

	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"#", "Player", "Pos", "Team", "Adds", "Status"})

	for i, e := range entries {
		team := e.Team
		if team == "" {
			team = "FA"
		}
		status := "Available"
		if e.Rostered {
			status = "Rostered"
		} else if e.Injury != "" {
			status = e.Injury
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			e.Name,
			e.Position,
			team,
			strconv.Itoa(e.Adds),
			status,
		})
	}
	table.Render()
}

func (r *Renderer) RenderTransactions(entries []models.TransactionEntry) {
	if len(entries) == 0 {
		return
	}
	r.header("Recent League Pickups")

	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"Player", "Pos", "Team", "Manager", "When"})
	for _, e := range entries {
		table.Append([]string{
			e.Player,
			e.Position,
			e.Team,
			e.Manager,
			e.Timestamp.Format("Jan 2 15:04"),
		})
	}
	table.Render()
}

func (r *Renderer) RenderWaiverOrder(slots []models.WaiverSlot) {
	if len(slots) == 0 {
		return
	}
	r.header("Waiver Priority")
	for _, s := range slots {
		fmt.Fprintf(r.out, "  %2d. %s\n", s.Position, s.Username)
	}
}

// RenderPresets lists the built-in scoring presets with their headline values.
func (r *Renderer) RenderPresets(presets []scoring.Preset) {
	r.header("Built-in Scoring Presets")

	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"Preset", "Rec", "Pass TD", "Description"})
	table.SetAutoWrapText(false)
	for _, p := range presets {
		table.Append([]string{
			p.Name,
			fmt.Sprintf("%.1f", p.Points["pts_rec"]),
			fmt.Sprintf("%.0f", p.Points["pts_pass_td"]),
			p.Description,
		})
	}
	table.Render()
}

// RenderReport prints every section of a completed run in display order.
func (r *Renderer) RenderReport(report *service.Report, season, week int) {
	r.RenderRunInfo(report.League, season, week, report.ProfileName)
	r.RenderRosterAnalysis(report.Roster)
	r.RenderRecommendations(report.Recommendations, report.Roster.Username)
	r.RenderTrending(report.Trending)
	r.RenderTransactions(report.Transactions)
	r.RenderWaiverOrder(report.WaiverOrder)
	fmt.Fprintln(r.out, "\nRecommendations weigh recent performance, projections, and roster needs.")
}
