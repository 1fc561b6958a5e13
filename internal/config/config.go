package config

import "github.com/kelseyhightower/envconfig"

// Config carries the environment-sourced defaults. CLI flags override any of
// these at runtime.
type Config struct {
	LeagueID        string `envconfig:"LEAGUE_ID"`
	Season          int    `envconfig:"SEASON" default:"2025"`
	Week            int    `envconfig:"CURRENT_WEEK" default:"1"`
	Username        string `envconfig:"SLEEPER_USERNAME"`
	CacheDir        string `envconfig:"CACHE_DIR" default:"./cache"`
	ScoringOverride string `envconfig:"SCORING_OVERRIDE" default:"./.env.scoring.json"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
