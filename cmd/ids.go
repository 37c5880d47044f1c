package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/screenline/sdnscreen/config"
	"github.com/screenline/sdnscreen/pkg/reference"
)

// idsResult is the JSON shape of an identity-document search.
type idsResult struct {
	Number    string                       `json:"number,omitempty"`
	Type      string                       `json:"type,omitempty"`
	Documents []reference.IdentityDocument `json:"documents"`
	Total     int                          `json:"total"`
}

// NewIDsCommand creates the 'ids' command.
func NewIDsCommand(deps *Deps) *cobra.Command {
	var number string
	var idType string

	cmd := &cobra.Command{
		Use:   "ids",
		Short: "Search identity documents by number or type",
		Long: `Search the identity-document table by document number and/or
document type. Filters match case-insensitively on substrings; when both
are given a document must satisfy both.

Examples:
  sdnscreen ids --number RL0123456
  sdnscreen ids --type passport
  sdnscreen ids --number 90145 --type passport --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIDs(cmd, deps, number, idType)
		},
	}

	cmd.Flags().StringVarP(&number, "number", "n", "", "document number substring")
	cmd.Flags().StringVarP(&idType, "type", "T", "", "document type substring")

	return cmd
}

func runIDs(cmd *cobra.Command, deps *Deps, number, idType string) error {
	if number == "" && idType == "" {
		return fmt.Errorf("at least one of --number or --type is required")
	}

	eng, err := deps.engine(cmd.Context())
	if err != nil {
		return err
	}

	docs := eng.SearchIDs(number, idType)
	result := idsResult{Number: number, Type: idType, Documents: docs, Total: len(docs)}

	out := cmd.OutOrStdout()
	if deps.Config.Output == config.OutputFormatJSON {
		return outputJSON(out, result)
	}

	fmt.Fprintf(out, "%d matching documents\n", result.Total)
	fmt.Fprintf(out, "  %-8s %-20s %-16s %s\n", "UID", "TYPE", "NUMBER", "COUNTRY")
	for _, d := range docs {
		fmt.Fprintf(out, "  %-8d %-20s %-16s %s\n", d.EntityUID, d.IDType, d.IDNumber, d.IDCountry)
	}
	return nil
}
