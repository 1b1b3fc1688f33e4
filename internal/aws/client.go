package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	awss3sdk "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	awsec2 "vidizone.dev/netstack/internal/aws/ec2"
	awss3 "vidizone.dev/netstack/internal/aws/s3"
	awsvpc "vidizone.dev/netstack/internal/aws/vpc"
	"vidizone.dev/netstack/internal/retry"
)

type ServiceClient struct {
	Region string
	STS    STSAPI
	VPC    *awsvpc.Client
	EC2    *awsec2.Client
	S3     *awss3.Client
}

// Tuning overrides the clients' waiter timeout and retry budget. Zero values keep
// the client defaults.
type Tuning struct {
	WaitTimeout time.Duration
	MaxRetries  int
}

func (t Tuning) retryOptions() []retry.Option {
	if t.MaxRetries <= 0 {
		return nil
	}
	return []retry.Option{retry.WithMaxRetries(t.MaxRetries)}
}

func NewServiceClient(ctx context.Context, profile, region string, tuning Tuning) (*ServiceClient, error) {
	cfg, err := LoadConfig(ctx, profile, region)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	ec2Client := ec2.NewFromConfig(cfg)

	vpcOpts := []awsvpc.Option{awsvpc.WithRetryOptions(tuning.retryOptions()...)}
	ec2Opts := []awsec2.Option{awsec2.WithRetryOptions(tuning.retryOptions()...)}
	if tuning.WaitTimeout > 0 {
		vpcOpts = append(vpcOpts, awsvpc.WithWaitTimeout(tuning.WaitTimeout))
		ec2Opts = append(ec2Opts, awsec2.WithWaitTimeout(tuning.WaitTimeout))
	}

	return &ServiceClient{
		Region: cfg.Region,
		STS:    sts.NewFromConfig(cfg),
		VPC:    awsvpc.NewClient(ec2Client, vpcOpts...),
		EC2:    awsec2.NewClient(ec2Client, ec2Opts...),
		S3:     awss3.NewClient(awss3sdk.NewFromConfig(cfg), awss3.WithRetryOptions(tuning.retryOptions()...)),
	}, nil
}
