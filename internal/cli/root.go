// Package cli wires flags, config, and the waiver pipeline into the root
// command. Configuration errors (missing league id, unknown preset) fail here
// before anything is fetched or scored.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"waiverwire/internal/api/sleeper"
	"waiverwire/internal/cache"
	"waiverwire/internal/config"
	"waiverwire/internal/display"
	"waiverwire/internal/scoring"
	"waiverwire/internal/service"
)

var validPositions = []string{"QB", "RB", "WR", "TE", "K", "DEF"}

type options struct {
	leagueID    string
	season      int
	week        int
	user        string
	position    string
	top         int
	preset      string
	listPresets bool
	saveScoring bool
	clearCache  bool
}

func NewRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "waiverwire",
		Short:         "Sleeper fantasy football waiver wire assistant",
		Long:          "Fetches your Sleeper league, scores every free agent against the resolved scoring profile, and prints ranked waiver-wire recommendations weighted by your roster's needs.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.leagueID, "league-id", "", "Sleeper league ID (or LEAGUE_ID in .env)")
	flags.IntVar(&opts.season, "season", 0, "NFL season")
	flags.IntVar(&opts.week, "week", 0, "current NFL week")
	flags.StringVar(&opts.user, "user", "", "username whose roster to analyze")
	flags.StringVar(&opts.position, "position", "", "filter by position (QB, RB, WR, TE, K, DEF)")
	flags.IntVar(&opts.top, "top", 15, "number of recommendations")
	flags.StringVar(&opts.preset, "scoring", "", "scoring preset name (see --list-presets)")
	flags.BoolVar(&opts.listPresets, "list-presets", false, "list built-in scoring presets and exit")
	flags.BoolVar(&opts.saveScoring, "save-scoring", false, "save the resolved scoring profile as the custom override")
	flags.BoolVar(&opts.clearCache, "clear-cache", false, "clear the API cache before running")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Could not load .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	applyConfig(cmd, opts, cfg)

	renderer := display.NewRenderer(cmd.OutOrStdout())

	if opts.listPresets {
		renderer.RenderPresets(scoring.Presets())
		return nil
	}

	// Fail on bad configuration before touching the network.
	if opts.preset != "" {
		if _, err := scoring.PresetProfile(opts.preset); err != nil {
			return err
		}
	}
	if opts.position != "" {
		opts.position = strings.ToUpper(opts.position)
		if !validPosition(opts.position) {
			return fmt.Errorf("invalid position %q (valid positions: %s)", opts.position, strings.Join(validPositions, ", "))
		}
	}
	if opts.leagueID == "" {
		return fmt.Errorf("league ID is required: set --league-id or LEAGUE_ID in .env")
	}

	store := cache.New(cfg.CacheDir)
	client := sleeper.NewClient(store)

	if opts.clearCache {
		if err := client.ClearCache(); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		slog.Info("Cache cleared")
	}

	svc := service.NewWaiverService(client)
	report, err := svc.Run(cmd.Context(), service.Params{
		LeagueID:     opts.leagueID,
		Season:       opts.season,
		Week:         opts.week,
		Username:     opts.user,
		Position:     opts.position,
		TopN:         opts.top,
		PresetName:   opts.preset,
		OverridePath: cfg.ScoringOverride,
		SaveScoring:  opts.saveScoring,
	})
	if err != nil {
		return err
	}

	renderer.RenderReport(report, opts.season, opts.week)
	return nil
}

// applyConfig fills any flag the user did not set from the environment config.
func applyConfig(cmd *cobra.Command, opts *options, cfg *config.Config) {
	if !cmd.Flags().Changed("league-id") && cfg.LeagueID != "" {
		opts.leagueID = cfg.LeagueID
	}
	if !cmd.Flags().Changed("season") || opts.season == 0 {
		opts.season = cfg.Season
	}
	if !cmd.Flags().Changed("week") || opts.week == 0 {
		opts.week = cfg.Week
	}
	if !cmd.Flags().Changed("user") && cfg.Username != "" {
		opts.user = cfg.Username
	}
}

func validPosition(pos string) bool {
	for _, p := range validPositions {
		if p == pos {
			return true
		}
	}
	return false
}
