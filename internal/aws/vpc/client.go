package vpc

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

type VPCAPI interface {
	DescribeVpcs(ctx context.Context, params *awsec2.DescribeVpcsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeVpcsOutput, error)
	CreateVpc(ctx context.Context, params *awsec2.CreateVpcInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateVpcOutput, error)
	ModifyVpcAttribute(ctx context.Context, params *awsec2.ModifyVpcAttributeInput, optFns ...func(*awsec2.Options)) (*awsec2.ModifyVpcAttributeOutput, error)
	DeleteVpc(ctx context.Context, params *awsec2.DeleteVpcInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteVpcOutput, error)

	DescribeSubnets(ctx context.Context, params *awsec2.DescribeSubnetsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSubnetsOutput, error)
	CreateSubnet(ctx context.Context, params *awsec2.CreateSubnetInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateSubnetOutput, error)
	ModifySubnetAttribute(ctx context.Context, params *awsec2.ModifySubnetAttributeInput, optFns ...func(*awsec2.Options)) (*awsec2.ModifySubnetAttributeOutput, error)
	DeleteSubnet(ctx context.Context, params *awsec2.DeleteSubnetInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteSubnetOutput, error)

	DescribeInternetGateways(ctx context.Context, params *awsec2.DescribeInternetGatewaysInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInternetGatewaysOutput, error)
	CreateInternetGateway(ctx context.Context, params *awsec2.CreateInternetGatewayInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateInternetGatewayOutput, error)
	AttachInternetGateway(ctx context.Context, params *awsec2.AttachInternetGatewayInput, optFns ...func(*awsec2.Options)) (*awsec2.AttachInternetGatewayOutput, error)
	DetachInternetGateway(ctx context.Context, params *awsec2.DetachInternetGatewayInput, optFns ...func(*awsec2.Options)) (*awsec2.DetachInternetGatewayOutput, error)
	DeleteInternetGateway(ctx context.Context, params *awsec2.DeleteInternetGatewayInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteInternetGatewayOutput, error)

	DescribeAddresses(ctx context.Context, params *awsec2.DescribeAddressesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeAddressesOutput, error)
	AllocateAddress(ctx context.Context, params *awsec2.AllocateAddressInput, optFns ...func(*awsec2.Options)) (*awsec2.AllocateAddressOutput, error)
	ReleaseAddress(ctx context.Context, params *awsec2.ReleaseAddressInput, optFns ...func(*awsec2.Options)) (*awsec2.ReleaseAddressOutput, error)

	DescribeNatGateways(ctx context.Context, params *awsec2.DescribeNatGatewaysInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeNatGatewaysOutput, error)
	CreateNatGateway(ctx context.Context, params *awsec2.CreateNatGatewayInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateNatGatewayOutput, error)
	DeleteNatGateway(ctx context.Context, params *awsec2.DeleteNatGatewayInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteNatGatewayOutput, error)

	DescribeRouteTables(ctx context.Context, params *awsec2.DescribeRouteTablesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeRouteTablesOutput, error)
	CreateRouteTable(ctx context.Context, params *awsec2.CreateRouteTableInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateRouteTableOutput, error)
	CreateRoute(ctx context.Context, params *awsec2.CreateRouteInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateRouteOutput, error)
	ReplaceRoute(ctx context.Context, params *awsec2.ReplaceRouteInput, optFns ...func(*awsec2.Options)) (*awsec2.ReplaceRouteOutput, error)
	AssociateRouteTable(ctx context.Context, params *awsec2.AssociateRouteTableInput, optFns ...func(*awsec2.Options)) (*awsec2.AssociateRouteTableOutput, error)
	ReplaceRouteTableAssociation(ctx context.Context, params *awsec2.ReplaceRouteTableAssociationInput, optFns ...func(*awsec2.Options)) (*awsec2.ReplaceRouteTableAssociationOutput, error)
	DisassociateRouteTable(ctx context.Context, params *awsec2.DisassociateRouteTableInput, optFns ...func(*awsec2.Options)) (*awsec2.DisassociateRouteTableOutput, error)
	DeleteRouteTable(ctx context.Context, params *awsec2.DeleteRouteTableInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteRouteTableOutput, error)

	DescribeSecurityGroups(ctx context.Context, params *awsec2.DescribeSecurityGroupsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSecurityGroupsOutput, error)
	DescribeSecurityGroupRules(ctx context.Context, params *awsec2.DescribeSecurityGroupRulesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSecurityGroupRulesOutput, error)
	CreateSecurityGroup(ctx context.Context, params *awsec2.CreateSecurityGroupInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateSecurityGroupOutput, error)
	AuthorizeSecurityGroupIngress(ctx context.Context, params *awsec2.AuthorizeSecurityGroupIngressInput, optFns ...func(*awsec2.Options)) (*awsec2.AuthorizeSecurityGroupIngressOutput, error)
	AuthorizeSecurityGroupEgress(ctx context.Context, params *awsec2.AuthorizeSecurityGroupEgressInput, optFns ...func(*awsec2.Options)) (*awsec2.AuthorizeSecurityGroupEgressOutput, error)
	RevokeSecurityGroupIngress(ctx context.Context, params *awsec2.RevokeSecurityGroupIngressInput, optFns ...func(*awsec2.Options)) (*awsec2.RevokeSecurityGroupIngressOutput, error)
	RevokeSecurityGroupEgress(ctx context.Context, params *awsec2.RevokeSecurityGroupEgressInput, optFns ...func(*awsec2.Options)) (*awsec2.RevokeSecurityGroupEgressOutput, error)
	DeleteSecurityGroup(ctx context.Context, params *awsec2.DeleteSecurityGroupInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteSecurityGroupOutput, error)
}

type Client struct {
	api         VPCAPI
	retryOpts   []retry.Option
	waitTimeout time.Duration
	// waitDelay fixes the NAT waiter polling interval; zero keeps the SDK defaults.
	waitDelay time.Duration
}

type Option func(*Client)

// WithRetryOptions tunes the backoff used for eventually consistent calls and
// dependency violations.
func WithRetryOptions(opts ...retry.Option) Option {
	return func(c *Client) {
		c.retryOpts = append(c.retryOpts, opts...)
	}
}

// WithWaitTimeout bounds how long the NAT gateway waiters wait for the gateway to
// become available or deleted.
func WithWaitTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.waitTimeout = d
	}
}

func NewClient(api VPCAPI, opts ...Option) *Client {
	c := &Client{
		api:         api,
		retryOpts:   []retry.Option{retry.WithMaxRetries(8), retry.WithInitialDelay(2 * time.Second), retry.WithMaxDelay(30 * time.Second)},
		waitTimeout: 10 * time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// retry runs op until it stops failing with a not-found error.
func (c *Client) retry(ctx context.Context, op func() error) error {
	return retry.WithExponentialBackoff(ctx, func() error {
		return awserr.RetryNotFound(op())
	}, c.retryOpts...)
}

// retryWhile runs op until it stops failing with one of codes.
func (c *Client) retryWhile(ctx context.Context, op func() error, codes ...string) error {
	return retry.WithExponentialBackoff(ctx, func() error {
		err := op()
		if err == nil || awserr.Is(err, codes...) {
			return err
		}
		return retry.Fatal(err)
	}, c.retryOpts...)
}

func nameFromTags(tags []types.Tag) string {
	for _, tag := range tags {
		if aws.ToString(tag.Key) == "Name" {
			return aws.ToString(tag.Value)
		}
	}
	return ""
}

func tagSpec(rt types.ResourceType, t map[string]string) []types.TagSpecification {
	spec := types.TagSpecification{ResourceType: rt}
	for _, k := range tags.Keys(t) {
		spec.Tags = append(spec.Tags, types.Tag{Key: aws.String(k), Value: aws.String(t[k])})
	}
	return []types.TagSpecification{spec}
}

func tagFilter(key, value string) types.Filter {
	return types.Filter{Name: aws.String("tag:" + key), Values: []string{value}}
}

// ownedBy matches the resource carrying the same Name and stack tags.
func ownedBy(t map[string]string) []types.Filter {
	return []types.Filter{
		tagFilter(tags.KeyName, t[tags.KeyName]),
		tagFilter(tags.KeyStack, t[tags.KeyStack]),
	}
}

func (c *Client) ListVPCs(ctx context.Context, stack string) ([]VPCInfo, error) {
	var vpcs []VPCInfo
	var nextToken *string

	var filters []types.Filter
	if stack != "" {
		filters = append(filters, tagFilter(tags.KeyStack, stack))
	}

	for {
		out, err := c.api.DescribeVpcs(ctx, &awsec2.DescribeVpcsInput{
			Filters:   filters,
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeVpcs: %w", err)
		}

		for _, v := range out.Vpcs {
			vpcs = append(vpcs, VPCInfo{
				VPCID:     aws.ToString(v.VpcId),
				Name:      nameFromTags(v.Tags),
				CIDR:      aws.ToString(v.CidrBlock),
				IsDefault: aws.ToBool(v.IsDefault),
				State:     string(v.State),
			})
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return vpcs, nil
}

func (c *Client) ListSubnets(ctx context.Context, vpcID string) ([]SubnetInfo, error) {
	var subnets []SubnetInfo
	var nextToken *string

	for {
		out, err := c.api.DescribeSubnets(ctx, &awsec2.DescribeSubnetsInput{
			Filters: []types.Filter{
				{Name: aws.String("vpc-id"), Values: []string{vpcID}},
			},
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeSubnets: %w", err)
		}

		for _, s := range out.Subnets {
			subnets = append(subnets, SubnetInfo{
				SubnetID:     aws.ToString(s.SubnetId),
				Name:         nameFromTags(s.Tags),
				CIDR:         aws.ToString(s.CidrBlock),
				AZ:           aws.ToString(s.AvailabilityZone),
				MapPublicIP:  aws.ToBool(s.MapPublicIpOnLaunch),
				AvailableIPs: int(aws.ToInt32(s.AvailableIpAddressCount)),
			})
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return subnets, nil
}

func (c *Client) ListSecurityGroups(ctx context.Context, vpcID string) ([]SecurityGroupInfo, error) {
	var sgs []SecurityGroupInfo
	var nextToken *string

	for {
		out, err := c.api.DescribeSecurityGroups(ctx, &awsec2.DescribeSecurityGroupsInput{
			Filters: []types.Filter{
				{Name: aws.String("vpc-id"), Values: []string{vpcID}},
			},
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeSecurityGroups: %w", err)
		}

		for _, sg := range out.SecurityGroups {
			sgs = append(sgs, SecurityGroupInfo{
				GroupID:       aws.ToString(sg.GroupId),
				Name:          aws.ToString(sg.GroupName),
				Description:   aws.ToString(sg.Description),
				InboundRules:  len(sg.IpPermissions),
				OutboundRules: len(sg.IpPermissionsEgress),
			})
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return sgs, nil
}

func (c *Client) ListSecurityGroupRules(ctx context.Context, groupID string) ([]SecurityGroupRule, error) {
	var rules []SecurityGroupRule
	var nextToken *string

	for {
		out, err := c.api.DescribeSecurityGroupRules(ctx, &awsec2.DescribeSecurityGroupRulesInput{
			Filters: []types.Filter{
				{Name: aws.String("group-id"), Values: []string{groupID}},
			},
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeSecurityGroupRules: %w", err)
		}

		for _, r := range out.SecurityGroupRules {
			direction := "inbound"
			if aws.ToBool(r.IsEgress) {
				direction = "outbound"
			}
			rules = append(rules, SecurityGroupRule{
				Direction:   direction,
				Protocol:    NormalizeProtocol(aws.ToString(r.IpProtocol)),
				PortRange:   portRange(aws.ToInt32(r.FromPort), aws.ToInt32(r.ToPort)),
				Source:      ruleSource(r),
				Description: aws.ToString(r.Description),
			})
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return rules, nil
}

func portRange(from, to int32) string {
	switch {
	case from == -1 || (from == 0 && to == 65535):
		return "All"
	case from == to:
		return fmt.Sprintf("%d", from)
	default:
		return fmt.Sprintf("%d-%d", from, to)
	}
}

func ruleSource(r types.SecurityGroupRule) string {
	switch {
	case r.CidrIpv4 != nil:
		return aws.ToString(r.CidrIpv4)
	case r.CidrIpv6 != nil:
		return aws.ToString(r.CidrIpv6)
	case r.ReferencedGroupInfo != nil:
		return aws.ToString(r.ReferencedGroupInfo.GroupId)
	case r.PrefixListId != nil:
		return aws.ToString(r.PrefixListId)
	}
	return ""
}

func (c *Client) ListInternetGateways(ctx context.Context, vpcID string) ([]InternetGatewayInfo, error) {
	var igws []InternetGatewayInfo
	var nextToken *string

	for {
		out, err := c.api.DescribeInternetGateways(ctx, &awsec2.DescribeInternetGatewaysInput{
			Filters: []types.Filter{
				{Name: aws.String("attachment.vpc-id"), Values: []string{vpcID}},
			},
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeInternetGateways: %w", err)
		}

		for _, igw := range out.InternetGateways {
			state := "detached"
			for _, att := range igw.Attachments {
				if aws.ToString(att.VpcId) == vpcID {
					state = string(att.State)
					break
				}
			}
			igws = append(igws, InternetGatewayInfo{
				GatewayID: aws.ToString(igw.InternetGatewayId),
				Name:      nameFromTags(igw.Tags),
				State:     state,
			})
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return igws, nil
}

// ListAddresses returns the VPC Elastic IPs tagged with stack.
func (c *Client) ListAddresses(ctx context.Context, stack string) ([]AddressInfo, error) {
	out, err := c.api.DescribeAddresses(ctx, &awsec2.DescribeAddressesInput{
		Filters: []types.Filter{
			tagFilter(tags.KeyStack, stack),
			{Name: aws.String("domain"), Values: []string{string(types.DomainTypeVpc)}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("DescribeAddresses: %w", err)
	}

	addrs := make([]AddressInfo, 0, len(out.Addresses))
	for _, a := range out.Addresses {
		addrs = append(addrs, AddressInfo{
			AllocationID:  aws.ToString(a.AllocationId),
			Name:          nameFromTags(a.Tags),
			PublicIP:      aws.ToString(a.PublicIp),
			AssociationID: aws.ToString(a.AssociationId),
		})
	}
	return addrs, nil
}

func (c *Client) ListRouteTables(ctx context.Context, vpcID string) ([]RouteTableInfo, error) {
	var rts []RouteTableInfo
	var nextToken *string

	for {
		out, err := c.api.DescribeRouteTables(ctx, &awsec2.DescribeRouteTablesInput{
			Filters: []types.Filter{
				{Name: aws.String("vpc-id"), Values: []string{vpcID}},
			},
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeRouteTables: %w", err)
		}

		for _, rt := range out.RouteTables {
			rts = append(rts, routeTableInfo(rt))
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return rts, nil
}

func routeTableInfo(rt types.RouteTable) RouteTableInfo {
	info := RouteTableInfo{
		RouteTableID: aws.ToString(rt.RouteTableId),
		Name:         nameFromTags(rt.Tags),
	}
	for _, r := range rt.Routes {
		dest := aws.ToString(r.DestinationCidrBlock)
		if dest == "" {
			dest = aws.ToString(r.DestinationPrefixListId)
		}
		info.Routes = append(info.Routes, RouteEntry{
			Destination: dest,
			Target:      routeTarget(r),
			Status:      string(r.State),
			Origin:      string(r.Origin),
		})
	}
	for _, a := range rt.Associations {
		if aws.ToBool(a.Main) {
			info.IsMain = true
		}
		// the main association has no subnet
		if a.SubnetId == nil {
			continue
		}
		info.Associations = append(info.Associations, RouteTableAssociation{
			AssociationID: aws.ToString(a.RouteTableAssociationId),
			SubnetID:      aws.ToString(a.SubnetId),
			IsMain:        aws.ToBool(a.Main),
		})
	}
	return info
}

func routeTarget(r types.Route) string {
	for _, id := range []*string{
		r.GatewayId,
		r.NatGatewayId,
		r.VpcPeeringConnectionId,
		r.TransitGatewayId,
		r.NetworkInterfaceId,
		r.InstanceId,
	} {
		if id != nil {
			return aws.ToString(id)
		}
	}
	return ""
}

func (c *Client) ListNATGateways(ctx context.Context, vpcID string) ([]NATGatewayInfo, error) {
	var nats []NATGatewayInfo
	var nextToken *string

	for {
		out, err := c.api.DescribeNatGateways(ctx, &awsec2.DescribeNatGatewaysInput{
			Filter: []types.Filter{
				{Name: aws.String("vpc-id"), Values: []string{vpcID}},
			},
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeNatGateways: %w", err)
		}

		for _, n := range out.NatGateways {
			info := NATGatewayInfo{
				GatewayID: aws.ToString(n.NatGatewayId),
				Name:      nameFromTags(n.Tags),
				State:     string(n.State),
				Type:      string(n.ConnectivityType),
				SubnetID:  aws.ToString(n.SubnetId),
			}
			if len(n.NatGatewayAddresses) > 0 {
				info.ElasticIP = aws.ToString(n.NatGatewayAddresses[0].PublicIp)
				info.PrivateIP = aws.ToString(n.NatGatewayAddresses[0].PrivateIp)
			}
			nats = append(nats, info)
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return nats, nil
}
