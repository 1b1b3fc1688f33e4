package cmd

import (
	"errors"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"vidizone.dev/netstack/internal/provision"
	"vidizone.dev/netstack/internal/ui"
)

var errNotConfirmed = errors.New("refusing to destroy without --yes")

func NewDestroyCmd() *cobra.Command {
	var flags stackFlags
	var deleteBuckets bool
	var yes bool

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Delete every resource tagged with the stack",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errNotConfirmed
			}
			s, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			client, id, err := s.connect()
			if err != nil {
				return err
			}
			topo, err := flags.topology(s, client.Region)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printHeader(out, id, client.Region, topo.Stack)

			var buckets []string
			if deleteBuckets {
				for _, b := range topo.Buckets {
					buckets = append(buckets, b.Name)
				}
			}

			p := provision.New(client.VPC, client.EC2, client.S3, client.Region)
			if err := p.Destroy(s.ctx, topo.Stack, buckets...); err != nil {
				return err
			}
			lipgloss.Fprintln(out, ui.SuccessStyle.Render("✓")+" stack "+topo.Stack+" destroyed")
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&deleteBuckets, "delete-buckets", false, "also delete the topology's buckets when empty")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deletion")

	return cmd
}
