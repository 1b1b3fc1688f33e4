package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"vidizone.dev/netstack/internal/provision"
	"vidizone.dev/netstack/internal/topology"
	"vidizone.dev/netstack/internal/ui"
)

func NewStatusCmd() *cobra.Command {
	var flags stackFlags
	var showRules bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Compare the topology with the tagged resources in the account",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			p := provision.New(client.VPC, client.EC2, client.S3, client.Region)
			statuses, err := p.Status(s.ctx, topo)
			if err != nil {
				return err
			}

			missing := 0
			rows := make([][]string, 0, len(statuses))
			for _, st := range statuses {
				if st.State == provision.StateMissing {
					missing++
				}
				rows = append(rows, []string{string(st.Kind), st.Name, ui.OrDash(st.ID), ui.RenderStatus(st.State), ui.OrDash(st.Detail)})
			}
			lipgloss.Fprintln(out, ui.Table([]string{"KIND", "NAME", "ID", "STATE", "DETAIL"}, rows))

			if showRules {
				var ruleRows [][]string
				for _, st := range statuses {
					if st.Kind != topology.KindSecurityGroup || st.State != provision.StatePresent {
						continue
					}
					rules, err := client.VPC.ListSecurityGroupRules(s.ctx, st.ID)
					if err != nil {
						return err
					}
					for _, r := range rules {
						ruleRows = append(ruleRows, []string{st.Name, r.Direction, r.Protocol, r.PortRange, r.Source, ui.OrDash(r.Description)})
					}
				}
				lipgloss.Fprintln(out, ui.Table([]string{"GROUP", "DIRECTION", "PROTOCOL", "PORTS", "SOURCE", "DESCRIPTION"}, ruleRows))
			}

			if missing > 0 {
				lipgloss.Fprintln(out, ui.WarningStyle.Render(fmt.Sprintf("%d of %d resources missing", missing, len(statuses))))
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&showRules, "rules", false, "list the live rules of every security group")

	return cmd
}
