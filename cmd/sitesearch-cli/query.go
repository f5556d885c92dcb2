package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/kailas-cloud/sitesearch/internal/domain"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/query"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/result"
	"github.com/kailas-cloud/sitesearch/internal/usecase/render"
	"github.com/kailas-cloud/sitesearch/internal/usecase/search"
)

var queryCmd = &cobra.Command{
	Use:   "query [terms...]",
	Short: "Run one search and print the ranked results",
	Example: `  # Search a local index and print a table
  sitesearch-cli query --index-file public/search.json distributed cache

  # Fetch the index from a site and print the HTML fragment
  sitesearch-cli query --url https://example.com -o html caching`,
	Args: cobra.MinimumNArgs(1),
	RunE: queryCmdRun,
}

// outputFormat implements pflag.Value for --output.
type outputFormat string

const (
	outputTable outputFormat = "table"
	outputHTML  outputFormat = "html"
	outputJSON  outputFormat = "json"
)

var _ flag.Value = (*outputFormat)(nil)

func (o *outputFormat) String() string { return string(*o) }

func (o *outputFormat) Set(v string) error {
	switch f := outputFormat(v); f {
	case outputTable, outputHTML, outputJSON:
		*o = f
		return nil
	default:
		return fmt.Errorf("must be one of %s, %s, %s", outputTable, outputHTML, outputJSON)
	}
}

func (o *outputFormat) Type() string { return "format" }

type queryFlags struct {
	output outputFormat
}

var queryArgs = queryFlags{output: outputTable}

func init() {
	queryCmd.Flags().VarP(&queryArgs.output, "output", "o",
		"Output format: table, html, json.")
	rootCmd.AddCommand(queryCmd)
}

// queryResult is one entry of the json output.
type queryResult struct {
	Title string   `json:"title"`
	URL   string   `json:"url"`
	Date  string   `json:"date"`
	Tags  []string `json:"tags"`
	Score int      `json:"score"`
}

func queryCmdRun(cmd *cobra.Command, args []string) error {
	loader, logger, err := newLoader()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	c := loader.Load(ctx)
	if err := loader.Err(); err != nil {
		return fmt.Errorf("load index: %w", err)
	}

	raw := strings.Join(args, " ")
	if q := query.Parse(raw); q.TooShort() {
		logger.Warn("Nothing to search", zap.String("query", raw), zap.Error(domain.ErrQueryTooShort))
	}
	results := search.New(nil).Search(c, raw)

	out := cmd.OutOrStdout()
	switch queryArgs.output {
	case outputHTML:
		fragment, err := render.New().Render(results, raw)
		if err != nil {
			return fmt.Errorf("render results: %w", err)
		}
		_, err = fmt.Fprintln(out, strings.TrimSpace(string(fragment)))
		return err
	case outputJSON:
		return printJSON(out, results)
	default:
		if len(results) == 0 {
			text, _ := render.Text(render.NoResults)
			_, err := fmt.Fprintln(out, text)
			return err
		}
		printResults(out, results)
		return nil
	}
}

func printJSON(w io.Writer, results []result.Result) error {
	items := make([]queryResult, 0, len(results))
	for i := range results {
		doc := results[i].Document()
		items = append(items, queryResult{
			Title: doc.Title(),
			URL:   doc.URL(),
			Date:  doc.Date(),
			Tags:  doc.Tags(),
			Score: results[i].Score(),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return nil
}

func printResults(w io.Writer, results []result.Result) {
	rows := make([][]string, 0, len(results))
	for i := range results {
		doc := results[i].Document()
		rows = append(rows, []string{
			strconv.Itoa(results[i].Score()),
			doc.Title(),
			doc.URL(),
			doc.Date(),
			doc.JoinedTags(),
		})
	}
	printTable(w, []string{"score", "title", "url", "date", "tags"}, rows)
}

func printTable(writer io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(writer)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(rows)
	table.Render()
}
