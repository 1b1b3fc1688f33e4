package ec2

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"vidizone.dev/netstack/internal/aws/awserr"
	"vidizone.dev/netstack/internal/retry"
	"vidizone.dev/netstack/internal/tags"
)

type EC2API interface {
	DescribeInstances(ctx context.Context, params *awsec2.DescribeInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInstancesOutput, error)
	RunInstances(ctx context.Context, params *awsec2.RunInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.RunInstancesOutput, error)
	TerminateInstances(ctx context.Context, params *awsec2.TerminateInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.TerminateInstancesOutput, error)
}

type Client struct {
	api         EC2API
	retryOpts   []retry.Option
	waitTimeout time.Duration
}

type Option func(*Client)

func WithRetryOptions(opts ...retry.Option) Option {
	return func(c *Client) {
		c.retryOpts = append(c.retryOpts, opts...)
	}
}

// WithWaitTimeout bounds how long TerminateInstances waits for termination.
func WithWaitTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.waitTimeout = d
	}
}

func NewClient(api EC2API, opts ...Option) *Client {
	c := &Client{
		api:         api,
		retryOpts:   []retry.Option{retry.WithMaxRetries(8), retry.WithInitialDelay(2 * time.Second)},
		waitTimeout: 10 * time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// liveStates excludes terminated and shutting-down instances.
var liveStates = []string{
	string(types.InstanceStateNamePending),
	string(types.InstanceStateNameRunning),
	string(types.InstanceStateNameStopping),
	string(types.InstanceStateNameStopped),
}

func tagValue(tags []types.Tag, key string) string {
	for _, tag := range tags {
		if aws.ToString(tag.Key) == key {
			return aws.ToString(tag.Value)
		}
	}
	return ""
}

func toInstance(inst types.Instance) EC2Instance {
	publicIP := "—"
	if inst.PublicIpAddress != nil {
		publicIP = aws.ToString(inst.PublicIpAddress)
	}
	var state string
	if inst.State != nil {
		state = string(inst.State.Name)
	}
	return EC2Instance{
		Name:       tagValue(inst.Tags, tags.KeyName),
		InstanceID: aws.ToString(inst.InstanceId),
		Type:       string(inst.InstanceType),
		State:      state,
		Tier:       tagValue(inst.Tags, tags.KeyTier),
		SubnetID:   aws.ToString(inst.SubnetId),
		PrivateIP:  aws.ToString(inst.PrivateIpAddress),
		PublicIP:   publicIP,
	}
}

// ListInstances returns the live instances tagged with stack.
func (c *Client) ListInstances(ctx context.Context, stack string) ([]EC2Instance, EC2Summary, error) {
	var instances []EC2Instance
	var summary EC2Summary
	var nextToken *string

	for {
		out, err := c.api.DescribeInstances(ctx, &awsec2.DescribeInstancesInput{
			Filters: []types.Filter{
				{Name: aws.String("tag:" + tags.KeyStack), Values: []string{stack}},
				{Name: aws.String("instance-state-name"), Values: liveStates},
			},
			NextToken: nextToken,
		})
		if err != nil {
			return nil, EC2Summary{}, fmt.Errorf("DescribeInstances: %w", err)
		}

		for _, reservation := range out.Reservations {
			for _, inst := range reservation.Instances {
				instances = append(instances, toInstance(inst))

				summary.Total++
				if inst.State == nil {
					continue
				}
				switch inst.State.Name {
				case types.InstanceStateNameRunning:
					summary.Running++
				case types.InstanceStateNameStopped:
					summary.Stopped++
				}
			}
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	return instances, summary, nil
}

// EnsureInstance returns the live instance carrying the spec's Name and stack
// tags, launching one when none exists.
func (c *Client) EnsureInstance(ctx context.Context, spec InstanceSpec) (EC2Instance, error) {
	out, err := c.api.DescribeInstances(ctx, &awsec2.DescribeInstancesInput{
		Filters: []types.Filter{
			{Name: aws.String("tag:" + tags.KeyName), Values: []string{spec.Tags[tags.KeyName]}},
			{Name: aws.String("tag:" + tags.KeyStack), Values: []string{spec.Tags[tags.KeyStack]}},
			{Name: aws.String("instance-state-name"), Values: liveStates},
		},
	})
	if err != nil {
		return EC2Instance{}, fmt.Errorf("DescribeInstances: %w", err)
	}
	for _, r := range out.Reservations {
		if len(r.Instances) > 0 {
			return toInstance(r.Instances[0]), nil
		}
	}

	input := runInput(spec)
	var launched EC2Instance
	err = retry.WithExponentialBackoff(ctx, func() error {
		run, err := c.api.RunInstances(ctx, input)
		if err != nil {
			return awserr.RetryNotFound(err)
		}
		if len(run.Instances) == 0 {
			return retry.Fatal(fmt.Errorf("no instance returned"))
		}
		launched = toInstance(run.Instances[0])
		return nil
	}, c.retryOpts...)
	if err != nil {
		return EC2Instance{}, fmt.Errorf("RunInstances %s: %w", spec.Tags[tags.KeyName], err)
	}
	return launched, nil
}

func runInput(spec InstanceSpec) *awsec2.RunInstancesInput {
	input := &awsec2.RunInstancesInput{
		ImageId:      aws.String(spec.AMI),
		InstanceType: types.InstanceType(spec.InstanceType),
		MinCount:     aws.Int32(1),
		MaxCount:     aws.Int32(1),
		TagSpecifications: []types.TagSpecification{
			tagSpec(types.ResourceTypeInstance, spec.Tags),
			tagSpec(types.ResourceTypeVolume, spec.Tags),
		},
	}
	if spec.KeyName != "" {
		input.KeyName = aws.String(spec.KeyName)
	}

	// A public address can only be requested on an explicit network interface,
	// which then owns the subnet and groups.
	if spec.AssociatePublicIP {
		input.NetworkInterfaces = []types.InstanceNetworkInterfaceSpecification{{
			DeviceIndex:              aws.Int32(0),
			SubnetId:                 aws.String(spec.SubnetID),
			Groups:                   spec.SecurityGroupIDs,
			AssociatePublicIpAddress: aws.Bool(true),
		}}
		return input
	}
	input.SubnetId = aws.String(spec.SubnetID)
	input.SecurityGroupIds = spec.SecurityGroupIDs
	return input
}

func tagSpec(rt types.ResourceType, t map[string]string) types.TagSpecification {
	spec := types.TagSpecification{ResourceType: rt}
	for _, k := range tags.Keys(t) {
		spec.Tags = append(spec.Tags, types.Tag{Key: aws.String(k), Value: aws.String(t[k])})
	}
	return spec
}

// TerminateInstances terminates ids and waits until all of them are gone, so
// the security groups and subnets they used can be deleted.
func (c *Client) TerminateInstances(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := c.api.TerminateInstances(ctx, &awsec2.TerminateInstancesInput{InstanceIds: ids})
	if err != nil && !awserr.IsNotFound(err) {
		return fmt.Errorf("TerminateInstances: %w", err)
	}

	waiter := awsec2.NewInstanceTerminatedWaiter(c.api)
	if err := waiter.Wait(ctx, &awsec2.DescribeInstancesInput{InstanceIds: ids}, c.waitTimeout); err != nil {
		return fmt.Errorf("waiting for termination: %w", err)
	}
	return nil
}
