package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"vidizone.dev/netstack/internal/topology"
	"vidizone.dev/netstack/internal/ui"
)

func NewPlanCmd() *cobra.Command {
	var flags stackFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "List the resources apply would ensure, in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			topo, err := flags.topology(s, "")
			if err != nil {
				return err
			}
			if err := topology.Validate(topo); err != nil {
				return fmt.Errorf("invalid topology: %w", err)
			}

			decls := topo.Declarations()
			rows := make([][]string, 0, len(decls))
			for i, d := range decls {
				rows = append(rows, []string{
					fmt.Sprintf("%d", i+1),
					string(d.Kind),
					d.Name,
					ui.OrDash(strings.Join(d.Refs, ", ")),
				})
			}

			out := cmd.OutOrStdout()
			lipgloss.Fprintln(out, ui.TitleStyle.Render("Stack "+topo.Stack))
			lipgloss.Fprintln(out, ui.Table([]string{"#", "KIND", "NAME", "DEPENDS ON"}, rows))
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}
