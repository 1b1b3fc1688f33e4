package cmd

import (
	"io"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	awsclient "vidizone.dev/netstack/internal/aws"
	"vidizone.dev/netstack/internal/provision"
	"vidizone.dev/netstack/internal/ui"
)

func NewApplyCmd() *cobra.Command {
	var flags stackFlags

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create every missing resource of the topology",
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
			outputs, err := p.Apply(s.ctx, topo)
			if len(outputs) > 0 {
				rows := make([][]string, 0, len(outputs))
				for _, o := range outputs {
					rows = append(rows, []string{string(o.Kind), o.Name, o.ID})
				}
				lipgloss.Fprintln(out, ui.Table([]string{"KIND", "NAME", "ID"}, rows))
			}
			if err != nil {
				return err
			}
			lipgloss.Fprintln(out, ui.SuccessStyle.Render("✓")+" stack "+topo.Stack+" applied")
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func printHeader(w io.Writer, id awsclient.Identity, region, stack string) {
	d := ui.NewDetailBuilder(10)
	d.Section("Credentials")
	d.Row("Account", id.Account)
	d.Row("Caller", id.ARN)
	d.Section("Target")
	d.Row("Region", region)
	d.Row("Stack", stack)
	lipgloss.Fprint(w, ui.BoxStyle.Render(d.String()))
	lipgloss.Fprintln(w)
}
