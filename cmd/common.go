package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	awsclient "vidizone.dev/netstack/internal/aws"
	"vidizone.dev/netstack/internal/config"
	"vidizone.dev/netstack/internal/ctxlog"
	"vidizone.dev/netstack/internal/topology"
)

// stackFlags are shared by every subcommand.
type stackFlags struct {
	profile string
	region  string
	file    string
	stack   string
}

func (f *stackFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", "AWS profile to use")
	cmd.Flags().StringVarP(&f.region, "region", "r", "", "AWS region to use")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "HCL topology file (built-in vidizone topology when empty)")
	cmd.Flags().StringVar(&f.stack, "stack", "", "stack name used for resource names and tags")
}

// session is the resolved command environment.
type session struct {
	ctx     context.Context
	cfg     *config.Config
	profile string
	region  string
}

// setup loads the config file, applies flag overrides and puts the logger into ctx.
func (f *stackFlags) setup(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	profile, region := cfg.Merge(f.profile, f.region)

	logger, err := ctxlog.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return &session{
		ctx:     ctxlog.WithLogger(ctx, logger),
		cfg:     cfg,
		profile: profile,
		region:  region,
	}, nil
}

// topology loads the --file topology, or builds the vidizone one. region, when
// set, overrides the configured region in the topology variables.
func (f *stackFlags) topology(s *session, region string) (*topology.Topology, error) {
	if region == "" {
		region = s.region
	}
	params := s.cfg.Params(f.stack, region)
	if f.file == "" {
		return topology.Vidizone(params), nil
	}
	return topology.LoadFile(s.ctx, f.file, params)
}

// connect builds the AWS clients and checks the credentials.
func (s *session) connect() (*awsclient.ServiceClient, awsclient.Identity, error) {
	client, err := awsclient.NewServiceClient(s.ctx, s.profile, s.region, awsclient.Tuning{
		WaitTimeout: s.cfg.WaitTimeout(),
		MaxRetries:  s.cfg.MaxRetries,
	})
	if err != nil {
		return nil, awsclient.Identity{}, fmt.Errorf("initializing AWS client: %w", err)
	}
	id, err := awsclient.CallerIdentity(s.ctx, client.STS)
	if err != nil {
		return nil, awsclient.Identity{}, fmt.Errorf("checking credentials: %w", err)
	}
	return client, id, nil
}
