package cmd

import (
	"github.com/spf13/cobra"

	"vidizone.dev/netstack/internal/topology"
)

func NewRenderCmd() *cobra.Command {
	var flags stackFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the resolved topology as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			topo, err := flags.topology(s, "")
			if err != nil {
				return err
			}
			return topology.Render(cmd.OutOrStdout(), topo)
		},
	}
	flags.register(cmd)

	return cmd
}
