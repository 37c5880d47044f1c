package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/screenline/sdnscreen/config"
	"github.com/screenline/sdnscreen/pkg/resolve"
)

// NewProfileCommand creates the 'profile' command.
func NewProfileCommand(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile <uid>",
		Short: "Show the full profile of a listed entity",
		Long: `Show everything the list records about one entity: canonical
identity, aliases, addresses, identity documents, and sanctions programs.

Examples:
  sdnscreen profile 12345
  sdnscreen profile 12345 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfile(cmd, deps, args[0])
		},
	}
	return cmd
}

func runProfile(cmd *cobra.Command, deps *Deps, raw string) error {
	eng, err := deps.engine(cmd.Context())
	if err != nil {
		return err
	}

	profile, ok, err := eng.Profiles().ProfileByID(raw)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no entity with uid %s", raw)
	}

	out := cmd.OutOrStdout()
	if deps.Config.Output == config.OutputFormatJSON {
		return outputJSON(out, profile)
	}

	printProfile(cmd, profile)
	return nil
}

func printProfile(cmd *cobra.Command, p *resolve.Profile) {
	out := cmd.OutOrStdout()
	e := p.Entity

	fmt.Fprintf(out, "Entity %d (%s)\n", e.UID, e.SDNType)
	fmt.Fprintf(out, "  Name:  %s\n", e.FullName())
	if e.Title != "" {
		fmt.Fprintf(out, "  Title: %s\n", e.Title)
	}
	if e.Remarks != "" {
		fmt.Fprintf(out, "  Remarks: %s\n", e.Remarks)
	}
	if len(p.Programs) > 0 {
		fmt.Fprintf(out, "  Programs: %s\n", strings.Join(p.Programs, ", "))
	}

	if len(p.Aliases) > 0 {
		fmt.Fprintln(out, "Aliases:")
		for _, a := range p.Aliases {
			fmt.Fprintf(out, "  %s (%s, %s)\n", a.FullName(), a.Type, a.Category)
		}
	}

	if len(p.Addresses) > 0 {
		fmt.Fprintln(out, "Addresses:")
		for _, a := range p.Addresses {
			parts := []string{}
			for _, part := range []string{a.Address1, a.Address2, a.Address3, a.City, a.StateProvince, a.PostalCode, a.Country} {
				if part != "" {
					parts = append(parts, part)
				}
			}
			fmt.Fprintf(out, "  %s\n", strings.Join(parts, ", "))
		}
	}

	if len(p.IdentityDocuments) > 0 {
		fmt.Fprintln(out, "Identity documents:")
		for _, d := range p.IdentityDocuments {
			line := fmt.Sprintf("  %s %s", d.IDType, d.IDNumber)
			if d.IDCountry != "" {
				line += " (" + d.IDCountry + ")"
			}
			fmt.Fprintln(out, line)
		}
	}
}
