package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/sitesearch/internal/logger"
	indexrepo "github.com/kailas-cloud/sitesearch/internal/repository/index"
	"github.com/kailas-cloud/sitesearch/internal/transport/fetch"
	"github.com/kailas-cloud/sitesearch/internal/usecase/index"
	"github.com/kailas-cloud/sitesearch/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "sitesearch-cli",
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Short:         "Search a site's search.json index from the terminal",
	Long: `Search a site's search.json index from the terminal.
The index is read from a local file (--index-file) or fetched from a
site (--url), then scored with the same weights the site uses.`,
}

type rootFlags struct {
	url       string
	indexFile string
	timeout   time.Duration
	retries   int
	logLevel  string
}

var rootArgs = newRootFlags()

func newRootFlags() rootFlags {
	return rootFlags{
		timeout:  30 * time.Second,
		logLevel: "warn",
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootArgs.url, "url", "",
		"Site root to fetch search.json from, e.g. https://example.com.")
	rootCmd.PersistentFlags().StringVar(&rootArgs.indexFile, "index-file", "",
		"Path to a local search.json.")
	rootCmd.PersistentFlags().DurationVar(&rootArgs.timeout, "timeout", rootArgs.timeout,
		"The length of time to wait for the index fetch, 0 waits forever.")
	rootCmd.PersistentFlags().IntVar(&rootArgs.retries, "retries", 0,
		"Number of times a failed index fetch is retried.")
	rootCmd.PersistentFlags().StringVar(&rootArgs.logLevel, "log-level", rootArgs.logLevel,
		"Diagnostic log level on stderr: debug, info, warn, error.")
	rootCmd.SetOut(os.Stdout)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrf("✗ %v\n", err)
		os.Exit(1)
	}
}

var errNoSource = errors.New("exactly one of --url or --index-file is required")

// newSource builds the index source selected by the root flags.
func newSource(logger *zap.Logger) (index.Source, error) {
	switch {
	case rootArgs.url != "" && rootArgs.indexFile != "":
		return nil, errNoSource
	case rootArgs.indexFile != "":
		return indexrepo.NewFileSource(rootArgs.indexFile), nil
	case rootArgs.url != "":
		src, err := fetch.NewSource(&fetch.Config{
			BaseURL: rootArgs.url,
			Path:    fetch.DefaultPath,
			Retries: rootArgs.retries,
			Timeout: rootArgs.timeout,
			Logger:  logger,
		})
		if err != nil {
			return nil, fmt.Errorf("invalid --url: %w", err)
		}
		return src, nil
	default:
		return nil, errNoSource
	}
}

// newLoader wires a loader to the selected source with a stderr logger.
func newLoader() (*index.Loader, *zap.Logger, error) {
	logger, err := logpkg.NewCLILogger(rootArgs.logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	src, err := newSource(logger)
	if err != nil {
		return nil, nil, err
	}
	return index.NewLoader(src, nil, logger), logger, nil
}
