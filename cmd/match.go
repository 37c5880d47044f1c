package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/screenline/sdnscreen/config"
	"github.com/screenline/sdnscreen/pkg/resolve"
)

// matchResult is the JSON shape of a single name lookup.
type matchResult struct {
	Query     string          `json:"query"`
	MatchType string          `json:"match_type"`
	ExactUIDs []int64         `json:"exact_uids,omitempty"`
	Fuzzy     []resolve.Match `json:"fuzzy_matches,omitempty"`
}

// NewMatchCommand creates the 'match' command.
func NewMatchCommand(deps *Deps) *cobra.Command {
	var threshold int
	var limit int

	cmd := &cobra.Command{
		Use:   "match <name>",
		Short: "Resolve a single name against the designated-entity list",
		Long: `Resolve a free-text name against the designated-entity list.

The name is normalized (uppercased, honorifics stripped, whitespace
collapsed) and looked up exactly first. When no exact match exists, every
indexed name is scored by normalized edit-distance similarity and matches
at or above the threshold are listed, best first.

Examples:
  sdnscreen match "Ali Hassan"
  sdnscreen match "ali hasan" --threshold 80
  sdnscreen match "ACME TRADING" --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, deps, args[0], threshold, limit)
		},
	}

	cmd.Flags().IntVarP(&threshold, "threshold", "t", 0,
		fmt.Sprintf("minimum similarity score 0-100 (default %d)", resolve.DefaultThreshold))
	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "maximum fuzzy matches to show")

	return cmd
}

func runMatch(cmd *cobra.Command, deps *Deps, name string, threshold, limit int) error {
	eng, err := deps.engine(cmd.Context())
	if err != nil {
		return err
	}
	if threshold <= 0 {
		threshold = deps.Config.Threshold
	}

	result := matchResult{Query: name, MatchType: string(resolve.MatchNone)}
	if uids := eng.Matcher().ExactMatch(name); len(uids) > 0 {
		result.MatchType = string(resolve.MatchExact)
		result.ExactUIDs = uids
	} else if matches := eng.Matcher().FuzzyMatch(name, threshold); len(matches) > 0 {
		result.MatchType = string(resolve.MatchFuzzy)
		if limit > 0 && len(matches) > limit {
			matches = matches[:limit]
		}
		result.Fuzzy = matches
	}

	out := cmd.OutOrStdout()
	if deps.Config.Output == config.OutputFormatJSON {
		return outputJSON(out, result)
	}

	switch result.MatchType {
	case string(resolve.MatchExact):
		fmt.Fprintf(out, "Exact match: %s\n", resolve.Normalize(name))
		for _, uid := range result.ExactUIDs {
			fmt.Fprintf(out, "  uid %d\n", uid)
		}
	case string(resolve.MatchFuzzy):
		fmt.Fprintf(out, "Fuzzy matches for %q (threshold %d):\n", name, threshold)
		fmt.Fprintf(out, "  %-8s %-6s %s\n", "UID", "SCORE", "NAME")
		for _, m := range result.Fuzzy {
			fmt.Fprintf(out, "  %-8d %-6d %s\n", m.UID, m.Score, m.CanonicalName)
		}
	default:
		fmt.Fprintf(out, "No match for %q at threshold %d.\n", name, threshold)
	}
	return nil
}
