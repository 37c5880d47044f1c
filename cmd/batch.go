package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/screenline/sdnscreen/config"
	"github.com/screenline/sdnscreen/pkg/reference"
	"github.com/screenline/sdnscreen/pkg/resolve"
)

// NewBatchCommand creates the 'batch' command.
func NewBatchCommand(deps *Deps) *cobra.Command {
	var (
		nameColumn     string
		locationColumn string
		threshold      int
		workers        int
	)

	cmd := &cobra.Command{
		Use:   "batch <file.csv>",
		Short: "Cross-reference every row of a CSV source against the list",
		Long: `Cross-reference a CSV source against the designated-entity list.

Each row's name cell is resolved exactly, then fuzzily at the source
threshold, producing one verdict per row in input order. A location column,
when given, adds an orthogonal count of address records whose country or
city contains the row's location value.

Examples:
  sdnscreen batch intel.csv --name-column full_name
  sdnscreen batch intel.csv --name-column name --location-column country
  sdnscreen batch intel.csv --threshold 75 --workers 4 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, deps, args[0], nameColumn, locationColumn, threshold, workers)
		},
	}

	cmd.Flags().StringVar(&nameColumn, "name-column", "name", "column holding the names to resolve")
	cmd.Flags().StringVar(&locationColumn, "location-column", "", "optional column holding a location to cross-check")
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 0,
		fmt.Sprintf("minimum similarity score 0-100 (default %d)", resolve.DefaultSourceThreshold))
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent resolution workers (default from config)")

	return cmd
}

func runBatch(cmd *cobra.Command, deps *Deps, path, nameColumn, locationColumn string, threshold, workers int) error {
	src, err := reference.OpenSource(path)
	if err != nil {
		return err
	}

	eng, err := deps.engine(cmd.Context())
	if err != nil {
		return err
	}
	if threshold <= 0 {
		threshold = deps.Config.SourceThreshold
	}

	resolver := eng.Batch()
	if workers > 0 {
		resolver = resolve.NewBatchResolver(eng.Matcher(),
			resolve.WithAddresses(eng.Set().Addresses),
			resolve.WithWorkers(workers),
			resolve.WithLogger(deps.Logger),
			resolve.WithMetrics(deps.Metrics),
			resolve.WithTracer(deps.Tracer))
	}

	verdicts, err := resolver.ResolveSource(cmd.Context(), src, nameColumn, locationColumn, threshold)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if deps.Config.Output == config.OutputFormatJSON {
		return outputJSON(out, verdicts)
	}

	fmt.Fprintf(out, "%-30s %-6s %-8s %-6s %-10s %s\n",
		"INPUT", "TYPE", "UID", "SCORE", "CONF", "MATCHED")
	for _, v := range verdicts {
		uid, score := "-", "-"
		if v.UID != nil {
			uid = fmt.Sprintf("%d", *v.UID)
		}
		if v.Score != nil {
			score = fmt.Sprintf("%d", *v.Score)
		}
		fmt.Fprintf(out, "%-30s %-6s %-8s %-6s %-10s %s\n",
			truncate(v.InputName, 30), v.MatchType, uid, score, v.Confidence, v.MatchedName)
		if len(v.CandidateUIDs) > 1 {
			fmt.Fprintf(out, "%30s   ambiguous: %v\n", "", v.CandidateUIDs)
		}
		if v.LocationMatches != nil && *v.LocationMatches > 0 {
			fmt.Fprintf(out, "%30s   location hits: %d\n", "", *v.LocationMatches)
		}
	}
	return nil
}

// truncate shortens s to at most max characters, slicing on rune boundaries
// so multibyte names never render as broken UTF-8.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
