package cmd

import (
	"github.com/douhashi/labeler/internal/config"
	"github.com/douhashi/labeler/internal/github"
	"github.com/douhashi/labeler/internal/linear"
	"github.com/douhashi/labeler/internal/logger"
	"github.com/douhashi/labeler/internal/tracker"
)

// newTrackerFunc is replaced in tests.
var newTrackerFunc = newTracker

// newTracker builds the configured backend. Credentials are checked here, before any request.
func newTracker(cfg *config.Config, log logger.Logger) (tracker.Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Tracker {
	case config.TrackerGitHub:
		client, err := github.NewClient(github.Config{
			Token:      cfg.GitHub.Token,
			Repository: cfg.GitHub.Repository,
			BaseURL:    cfg.GitHub.BaseURL,
			Logger:     log,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		client, err := linear.NewClient(
			linear.Credentials{
				APIKey:     cfg.Linear.APIKey,
				OAuthToken: cfg.Linear.OAuthToken,
			},
			linear.WithEndpoint(cfg.Linear.Endpoint),
			linear.WithLogger(log),
		)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}
