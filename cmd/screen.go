package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/screenline/sdnscreen/config"
	"github.com/screenline/sdnscreen/pkg/screening"
)

// screenResult is the JSON shape of a candidate-selection run.
type screenResult struct {
	Programs []string      `json:"programs,omitempty"`
	Keywords []string      `json:"keywords,omitempty"`
	Entities []screenEntry `json:"entities"`
	Total    int           `json:"total"`
}

type screenEntry struct {
	UID     int64  `json:"uid"`
	SDNType string `json:"sdn_type"`
	Name    string `json:"name"`
}

// NewScreenCommand creates the 'screen' command.
func NewScreenCommand(deps *Deps) *cobra.Command {
	var programs []string
	var keywords []string

	cmd := &cobra.Command{
		Use:   "screen",
		Short: "Select candidate entities by program or keyword",
		Long: `Select the candidate entity population matching any of the given
sanctions programs or keywords. Keywords are matched case-insensitively
against names, alias names, and remarks.

Examples:
  sdnscreen screen --program SDGT
  sdnscreen screen --program SDGT --program LEBANON
  sdnscreen screen --keyword hizballah --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreen(cmd, deps, programs, keywords)
		},
	}

	cmd.Flags().StringSliceVarP(&programs, "program", "p", nil, "sanctions program (repeatable)")
	cmd.Flags().StringSliceVarP(&keywords, "keyword", "k", nil, "keyword to search names and remarks (repeatable)")

	return cmd
}

func runScreen(cmd *cobra.Command, deps *Deps, programs, keywords []string) error {
	if len(programs) == 0 && len(keywords) == 0 {
		return fmt.Errorf("at least one --program or --keyword is required")
	}

	set, err := deps.set(cmd.Context())
	if err != nil {
		return err
	}

	uids := screening.SelectCandidates(set, screening.Criteria{
		Programs: programs,
		Keywords: keywords,
	})
	subset := screening.Subset(set, uids)

	result := screenResult{
		Programs: programs,
		Keywords: keywords,
		Entities: make([]screenEntry, 0, len(subset.Entities)),
		Total:    len(subset.Entities),
	}
	for _, e := range subset.Entities {
		result.Entities = append(result.Entities, screenEntry{
			UID:     e.UID,
			SDNType: e.SDNType,
			Name:    e.FullName(),
		})
	}

	out := cmd.OutOrStdout()
	if deps.Config.Output == config.OutputFormatJSON {
		return outputJSON(out, result)
	}

	fmt.Fprintf(out, "%d candidate entities\n", result.Total)
	fmt.Fprintf(out, "  %-8s %-12s %s\n", "UID", "TYPE", "NAME")
	for _, e := range result.Entities {
		fmt.Fprintf(out, "  %-8d %-12s %s\n", e.UID, e.SDNType, e.Name)
	}
	return nil
}
