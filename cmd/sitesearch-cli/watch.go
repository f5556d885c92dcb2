package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/sitesearch/internal/domain/document"
	"github.com/kailas-cloud/sitesearch/internal/transport/terminal"
	"github.com/kailas-cloud/sitesearch/internal/usecase/controller"
	"github.com/kailas-cloud/sitesearch/internal/usecase/render"
	"github.com/kailas-cloud/sitesearch/internal/usecase/search"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Search as you type: every stdin line replaces the query",
	Long: `Search as you type. Every line read from stdin replaces the query;
results are printed once typing pauses for 300ms. The command exits at
the end of input after the last pending search has been printed.`,
	Example: `  # Interactive search over a local index
  sitesearch-cli watch --index-file public/search.json

  # Start with a query, like opening /search/?q=cache
  sitesearch-cli watch --url https://example.com --q cache`,
	Args: cobra.NoArgs,
	RunE: watchCmdRun,
}

type watchFlags struct {
	query string
	html  bool
}

var watchArgs watchFlags

func init() {
	watchCmd.Flags().StringVar(&watchArgs.query, "q", "",
		"Initial query, searched once the index had time to load.")
	watchCmd.Flags().BoolVar(&watchArgs.html, "html", false,
		"Print HTML fragments instead of plain text.")
	rootCmd.AddCommand(watchCmd)
}

// pollInterval is how often watch checks for pending searches at end of input.
const pollInterval = 20 * time.Millisecond

func watchCmdRun(cmd *cobra.Command, _ []string) error {
	loader, logger, err := newLoader()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	input := terminal.NewInput()
	results := terminal.NewResults(cmd.OutOrStdout())
	if !watchArgs.html {
		results = results.WithPlainText()
	}

	ctrl := controller.New(input, results, loader, search.New(nil), render.New(), logger)
	defer ctrl.Stop()

	var location *url.URL
	if watchArgs.query != "" {
		location = &url.URL{RawQuery: url.Values{controller.QueryParam: {watchArgs.query}}.Encode()}
	}
	ctrl.Start(ctx, location)

	// Registered after Start, so it runs once the controller has re-run the last query.
	loaded := make(chan struct{})
	loader.OnLoaded(func(document.Collection) { close(loaded) })

	if err := input.Scan(ctx, cmd.InOrStdin(), ctrl.InputChanged); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("watch: %w", err)
	}

	return drain(ctx, loaded, ctrl)
}

// drain waits until the index is loaded and no search is pending or running.
func drain(ctx context.Context, loaded <-chan struct{}, ctrl *controller.Controller) error {
	select {
	case <-loaded:
	case <-ctx.Done():
		return nil
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		if ctrl.QueryState() == controller.Idle {
			return nil
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil
		}
	}
}
