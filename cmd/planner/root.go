// ABOUTME: Root cobra command and the shared planner client
// ABOUTME: Global flags default from the environment-backed configuration

package main

import (
	"fmt"
	"time"

	"content-planner-api/core/locale"
	"content-planner-api/infrastructure/logger/structured"
	"content-planner-api/pkg/config"
	planner "content-planner-api/planner-lib"
	"github.com/spf13/cobra"
)

// app carries the state shared by every subcommand
type app struct {
	cfg *config.Config

	baseURL  string
	token    string
	lang     string
	tz       string
	timeout  time.Duration
	logLevel string

	client *planner.Client
	render renderer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		cfg = &config.Config{}
	}
	a.cfg = cfg

	cmd := &cobra.Command{
		Use:           "planner",
		Short:         "Plan content from the terminal",
		Long:          "planner lists, edits and exports content items stored by the Content Planner API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations["offline"] == "true" {
				return nil
			}
			return a.connect()
		},
	}

	timeout := cfg.Client.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	baseURL := cfg.Client.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.baseURL, "url", baseURL, "persistence service URL (PLANNER_URL)")
	flags.StringVar(&a.token, "token", cfg.Client.Token, "bearer token (PLANNER_TOKEN)")
	flags.StringVar(&a.lang, "lang", "es", "display language: es or en")
	flags.StringVar(&a.tz, "tz", "", "IANA time zone for dates; defaults to the system zone")
	flags.DurationVar(&a.timeout, "timeout", timeout, "request timeout")
	flags.StringVar(&a.logLevel, "log-level", "error", "log level for client diagnostics")

	cmd.AddCommand(
		newListCmd(a),
		newBoardCmd(a),
		newCalendarCmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newMoveCmd(a),
		newDeleteCmd(a),
		newDeleteAllCmd(a),
		newTokenCmd(a),
	)
	return cmd
}

// connect builds the client and loads the current items
func (a *app) connect() error {
	lang, err := locale.ByName(a.lang)
	if err != nil {
		return err
	}

	loc := time.Local
	if a.tz != "" {
		loc, err = time.LoadLocation(a.tz)
		if err != nil {
			return fmt.Errorf("invalid time zone %q: %w", a.tz, err)
		}
	}

	logger := structured.New(structured.Options{Level: a.logLevel, Format: "text"})

	breaker := a.cfg.Client.BreakerFailures
	if breaker < 0 {
		breaker = 0
	}
	client, err := planner.NewClient(
		planner.WithBaseURL(a.baseURL),
		planner.WithToken(a.token),
		planner.WithTimeout(a.timeout),
		planner.WithBreakerFailures(uint32(breaker)),
		planner.WithLogger(logger),
		planner.WithLocation(loc),
		planner.WithLocale(lang),
	)
	if err != nil {
		return err
	}

	a.client = client
	a.render = renderer{lang: lang, loc: loc}
	return nil
}
