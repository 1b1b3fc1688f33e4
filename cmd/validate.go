package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"vidizone.dev/netstack/internal/topology"
	"vidizone.dev/netstack/internal/ui"
)

func NewValidateCmd() *cobra.Command {
	var flags stackFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the topology for broken references, CIDR and tier violations",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			topo, err := flags.topology(s, "")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			violations := topology.Check(topo)
			if len(violations) == 0 {
				lipgloss.Fprintln(out, ui.SuccessStyle.Render("✓")+fmt.Sprintf(" %d resources valid", len(topo.Declarations())))
				return nil
			}

			rows := make([][]string, 0, len(violations))
			for _, v := range violations {
				rows = append(rows, []string{v.Resource, v.Message})
			}
			lipgloss.Fprintln(out, ui.ErrorStyle.Render("✗")+fmt.Sprintf(" %d violations", len(violations)))
			lipgloss.Fprintln(out, ui.Table([]string{"RESOURCE", "PROBLEM"}, rows))
			return fmt.Errorf("%d violations", len(violations))
		},
	}
	flags.register(cmd)

	return cmd
}
