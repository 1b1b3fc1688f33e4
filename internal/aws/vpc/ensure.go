package vpc

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"vidizone.dev/netstack/internal/aws/awserr"
	"vidizone.dev/netstack/internal/topology"
)

// The Ensure functions look a resource up by its Name and stack tags and create it
// only when nothing matches, so running them twice converges on the same IDs.

func (c *Client) EnsureVPC(ctx context.Context, spec VPCSpec) (string, error) {
	out, err := c.api.DescribeVpcs(ctx, &awsec2.DescribeVpcsInput{Filters: ownedBy(spec.Tags)})
	if err != nil {
		return "", fmt.Errorf("DescribeVpcs: %w", err)
	}

	var vpcID string
	if len(out.Vpcs) > 0 {
		vpcID = aws.ToString(out.Vpcs[0].VpcId)
	} else {
		created, err := c.api.CreateVpc(ctx, &awsec2.CreateVpcInput{
			CidrBlock:         aws.String(spec.CIDR),
			TagSpecifications: tagSpec(types.ResourceTypeVpc, spec.Tags),
		})
		if err != nil {
			return "", fmt.Errorf("CreateVpc: %w", err)
		}
		vpcID = aws.ToString(created.Vpc.VpcId)
	}

	// EC2 accepts a single attribute per ModifyVpcAttribute call.
	attrs := []*awsec2.ModifyVpcAttributeInput{
		{VpcId: aws.String(vpcID), EnableDnsSupport: &types.AttributeBooleanValue{Value: aws.Bool(spec.EnableDNSSupport)}},
		{VpcId: aws.String(vpcID), EnableDnsHostnames: &types.AttributeBooleanValue{Value: aws.Bool(spec.EnableDNSHostnames)}},
	}
	for _, in := range attrs {
		err := c.retry(ctx, func() error {
			_, err := c.api.ModifyVpcAttribute(ctx, in)
			return err
		})
		if err != nil {
			return "", fmt.Errorf("ModifyVpcAttribute: %w", err)
		}
	}
	return vpcID, nil
}

func (c *Client) EnsureSubnet(ctx context.Context, spec SubnetSpec) (string, error) {
	out, err := c.api.DescribeSubnets(ctx, &awsec2.DescribeSubnetsInput{Filters: ownedBy(spec.Tags)})
	if err != nil {
		return "", fmt.Errorf("DescribeSubnets: %w", err)
	}

	var subnetID string
	mapped := false
	if len(out.Subnets) > 0 {
		subnetID = aws.ToString(out.Subnets[0].SubnetId)
		mapped = aws.ToBool(out.Subnets[0].MapPublicIpOnLaunch)
	} else {
		err := c.retry(ctx, func() error {
			created, err := c.api.CreateSubnet(ctx, &awsec2.CreateSubnetInput{
				VpcId:             aws.String(spec.VPCID),
				CidrBlock:         aws.String(spec.CIDR),
				AvailabilityZone:  aws.String(spec.AvailabilityZone),
				TagSpecifications: tagSpec(types.ResourceTypeSubnet, spec.Tags),
			})
			if err != nil {
				return err
			}
			subnetID = aws.ToString(created.Subnet.SubnetId)
			return nil
		})
		if err != nil {
			return "", fmt.Errorf("CreateSubnet: %w", err)
		}
	}

	if mapped != spec.MapPublicIP {
		err := c.retry(ctx, func() error {
			_, err := c.api.ModifySubnetAttribute(ctx, &awsec2.ModifySubnetAttributeInput{
				SubnetId:            aws.String(subnetID),
				MapPublicIpOnLaunch: &types.AttributeBooleanValue{Value: aws.Bool(spec.MapPublicIP)},
			})
			return err
		})
		if err != nil {
			return "", fmt.Errorf("ModifySubnetAttribute: %w", err)
		}
	}
	return subnetID, nil
}

// EnsureInternetGateway creates the gateway if needed and attaches it to vpcID.
func (c *Client) EnsureInternetGateway(ctx context.Context, vpcID string, t map[string]string) (string, error) {
	out, err := c.api.DescribeInternetGateways(ctx, &awsec2.DescribeInternetGatewaysInput{Filters: ownedBy(t)})
	if err != nil {
		return "", fmt.Errorf("DescribeInternetGateways: %w", err)
	}

	var igwID string
	attached := false
	if len(out.InternetGateways) > 0 {
		igw := out.InternetGateways[0]
		igwID = aws.ToString(igw.InternetGatewayId)
		for _, att := range igw.Attachments {
			if aws.ToString(att.VpcId) == vpcID {
				attached = true
			}
		}
	} else {
		created, err := c.api.CreateInternetGateway(ctx, &awsec2.CreateInternetGatewayInput{
			TagSpecifications: tagSpec(types.ResourceTypeInternetGateway, t),
		})
		if err != nil {
			return "", fmt.Errorf("CreateInternetGateway: %w", err)
		}
		igwID = aws.ToString(created.InternetGateway.InternetGatewayId)
	}

	if attached {
		return igwID, nil
	}
	err = c.retry(ctx, func() error {
		_, err := c.api.AttachInternetGateway(ctx, &awsec2.AttachInternetGatewayInput{
			InternetGatewayId: aws.String(igwID),
			VpcId:             aws.String(vpcID),
		})
		if awserr.Is(err, "Resource.AlreadyAssociated") {
			return nil
		}
		return err
	})
	if err != nil {
		return "", fmt.Errorf("AttachInternetGateway: %w", err)
	}
	return igwID, nil
}

// EnsureElasticIP returns the allocation ID of the tagged VPC address.
func (c *Client) EnsureElasticIP(ctx context.Context, t map[string]string) (string, error) {
	out, err := c.api.DescribeAddresses(ctx, &awsec2.DescribeAddressesInput{Filters: ownedBy(t)})
	if err != nil {
		return "", fmt.Errorf("DescribeAddresses: %w", err)
	}
	if len(out.Addresses) > 0 {
		return aws.ToString(out.Addresses[0].AllocationId), nil
	}

	created, err := c.api.AllocateAddress(ctx, &awsec2.AllocateAddressInput{
		Domain:            types.DomainTypeVpc,
		TagSpecifications: tagSpec(types.ResourceTypeElasticIp, t),
	})
	if err != nil {
		return "", fmt.Errorf("AllocateAddress: %w", err)
	}
	return aws.ToString(created.AllocationId), nil
}

// EnsureNATGateway creates a public NAT gateway in subnetID using the given
// allocation and blocks until it is available.
func (c *Client) EnsureNATGateway(ctx context.Context, subnetID, allocationID string, t map[string]string) (string, error) {
	filters := append(ownedBy(t), types.Filter{
		Name:   aws.String("state"),
		Values: []string{string(types.NatGatewayStatePending), string(types.NatGatewayStateAvailable)},
	})
	out, err := c.api.DescribeNatGateways(ctx, &awsec2.DescribeNatGatewaysInput{Filter: filters})
	if err != nil {
		return "", fmt.Errorf("DescribeNatGateways: %w", err)
	}

	var natID string
	if len(out.NatGateways) > 0 {
		natID = aws.ToString(out.NatGateways[0].NatGatewayId)
		if out.NatGateways[0].State == types.NatGatewayStateAvailable {
			return natID, nil
		}
	} else {
		err := c.retry(ctx, func() error {
			created, err := c.api.CreateNatGateway(ctx, &awsec2.CreateNatGatewayInput{
				SubnetId:          aws.String(subnetID),
				AllocationId:      aws.String(allocationID),
				ConnectivityType:  types.ConnectivityTypePublic,
				TagSpecifications: tagSpec(types.ResourceTypeNatgateway, t),
			})
			if err != nil {
				return err
			}
			natID = aws.ToString(created.NatGateway.NatGatewayId)
			return nil
		})
		if err != nil {
			return "", fmt.Errorf("CreateNatGateway: %w", err)
		}
	}

	waiter := awsec2.NewNatGatewayAvailableWaiter(c.api, func(o *awsec2.NatGatewayAvailableWaiterOptions) {
		if c.waitDelay > 0 {
			o.MinDelay, o.MaxDelay = c.waitDelay, c.waitDelay
		}
	})
	if err := waiter.Wait(ctx, &awsec2.DescribeNatGatewaysInput{NatGatewayIds: []string{natID}}, c.waitTimeout); err != nil {
		return "", fmt.Errorf("waiting for NAT gateway %s: %w", natID, err)
	}
	return natID, nil
}

// EnsureRouteTable creates the table if needed and installs routes, replacing a
// route whose destination already points elsewhere.
func (c *Client) EnsureRouteTable(ctx context.Context, vpcID string, routes []RouteSpec, t map[string]string) (string, error) {
	out, err := c.api.DescribeRouteTables(ctx, &awsec2.DescribeRouteTablesInput{Filters: ownedBy(t)})
	if err != nil {
		return "", fmt.Errorf("DescribeRouteTables: %w", err)
	}

	var rtID string
	var existing RouteTableInfo
	if len(out.RouteTables) > 0 {
		existing = routeTableInfo(out.RouteTables[0])
		rtID = existing.RouteTableID
	} else {
		err := c.retry(ctx, func() error {
			created, err := c.api.CreateRouteTable(ctx, &awsec2.CreateRouteTableInput{
				VpcId:             aws.String(vpcID),
				TagSpecifications: tagSpec(types.ResourceTypeRouteTable, t),
			})
			if err != nil {
				return err
			}
			rtID = aws.ToString(created.RouteTable.RouteTableId)
			return nil
		})
		if err != nil {
			return "", fmt.Errorf("CreateRouteTable: %w", err)
		}
	}

	for _, r := range routes {
		if hasRoute(existing, r) {
			continue
		}
		if err := c.putRoute(ctx, rtID, r); err != nil {
			return "", err
		}
	}
	return rtID, nil
}

func hasRoute(rt RouteTableInfo, r RouteSpec) bool {
	target := r.GatewayID
	if target == "" {
		target = r.NATGatewayID
	}
	return slices.ContainsFunc(rt.Routes, func(e RouteEntry) bool {
		return e.Destination == r.Destination && e.Target == target && e.Status == string(types.RouteStateActive)
	})
}

func (c *Client) putRoute(ctx context.Context, rtID string, r RouteSpec) error {
	var gw, nat *string
	if r.GatewayID != "" {
		gw = aws.String(r.GatewayID)
	}
	if r.NATGatewayID != "" {
		nat = aws.String(r.NATGatewayID)
	}

	err := c.retry(ctx, func() error {
		_, err := c.api.CreateRoute(ctx, &awsec2.CreateRouteInput{
			RouteTableId:         aws.String(rtID),
			DestinationCidrBlock: aws.String(r.Destination),
			GatewayId:            gw,
			NatGatewayId:         nat,
		})
		if !awserr.Is(err, "RouteAlreadyExists") {
			return err
		}
		_, err = c.api.ReplaceRoute(ctx, &awsec2.ReplaceRouteInput{
			RouteTableId:         aws.String(rtID),
			DestinationCidrBlock: aws.String(r.Destination),
			GatewayId:            gw,
			NatGatewayId:         nat,
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("CreateRoute %s in %s: %w", r.Destination, rtID, err)
	}
	return nil
}

// AssociateRouteTable binds subnetID to rtID. A subnet already bound to another
// table is moved, so each subnet ends with exactly one association.
func (c *Client) AssociateRouteTable(ctx context.Context, rtID, subnetID string) (string, error) {
	out, err := c.api.DescribeRouteTables(ctx, &awsec2.DescribeRouteTablesInput{
		Filters: []types.Filter{
			{Name: aws.String("association.subnet-id"), Values: []string{subnetID}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("DescribeRouteTables: %w", err)
	}

	for _, rt := range out.RouteTables {
		for _, a := range rt.Associations {
			if aws.ToString(a.SubnetId) != subnetID {
				continue
			}
			assocID := aws.ToString(a.RouteTableAssociationId)
			if aws.ToString(rt.RouteTableId) == rtID {
				return assocID, nil
			}
			replaced, err := c.api.ReplaceRouteTableAssociation(ctx, &awsec2.ReplaceRouteTableAssociationInput{
				AssociationId: aws.String(assocID),
				RouteTableId:  aws.String(rtID),
			})
			if err != nil {
				return "", fmt.Errorf("ReplaceRouteTableAssociation: %w", err)
			}
			return aws.ToString(replaced.NewAssociationId), nil
		}
	}

	var assocID string
	err = c.retry(ctx, func() error {
		created, err := c.api.AssociateRouteTable(ctx, &awsec2.AssociateRouteTableInput{
			RouteTableId: aws.String(rtID),
			SubnetId:     aws.String(subnetID),
		})
		if err != nil {
			return err
		}
		assocID = aws.ToString(created.AssociationId)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("AssociateRouteTable: %w", err)
	}
	return assocID, nil
}

// EnsureSecurityGroup creates the group if needed and authorizes every declared
// rule. Live rules of an existing group that are not declared are revoked; on a new
// group the default allow-all egress rule is revoked unless it is declared.
func (c *Client) EnsureSecurityGroup(ctx context.Context, spec SecurityGroupSpec) (string, error) {
	out, err := c.api.DescribeSecurityGroups(ctx, &awsec2.DescribeSecurityGroupsInput{
		Filters: []types.Filter{
			{Name: aws.String("vpc-id"), Values: []string{spec.VPCID}},
			{Name: aws.String("group-name"), Values: []string{spec.Name}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("DescribeSecurityGroups: %w", err)
	}

	var groupID string
	created := len(out.SecurityGroups) == 0
	if !created {
		groupID = aws.ToString(out.SecurityGroups[0].GroupId)
		if err := c.revokeUndeclared(ctx, groupID, spec); err != nil {
			return "", fmt.Errorf("%s: %w", spec.Name, err)
		}
	} else {
		err := c.retry(ctx, func() error {
			resp, err := c.api.CreateSecurityGroup(ctx, &awsec2.CreateSecurityGroupInput{
				GroupName:         aws.String(spec.Name),
				Description:       aws.String(spec.Description),
				VpcId:             aws.String(spec.VPCID),
				TagSpecifications: tagSpec(types.ResourceTypeSecurityGroup, spec.Tags),
			})
			if err != nil {
				return err
			}
			groupID = aws.ToString(resp.GroupId)
			return nil
		})
		if err != nil {
			return "", fmt.Errorf("CreateSecurityGroup %s: %w", spec.Name, err)
		}
	}

	// One call per rule: EC2 rejects the whole batch when any rule is a duplicate.
	for _, p := range spec.Ingress {
		err := c.retry(ctx, func() error {
			_, err := c.api.AuthorizeSecurityGroupIngress(ctx, &awsec2.AuthorizeSecurityGroupIngressInput{
				GroupId:       aws.String(groupID),
				IpPermissions: []types.IpPermission{p.ipPermission()},
			})
			if awserr.Is(err, "InvalidPermission.Duplicate") {
				return nil
			}
			return err
		})
		if err != nil {
			return "", fmt.Errorf("AuthorizeSecurityGroupIngress %s: %w", spec.Name, err)
		}
	}

	for _, p := range spec.Egress {
		err := c.retry(ctx, func() error {
			_, err := c.api.AuthorizeSecurityGroupEgress(ctx, &awsec2.AuthorizeSecurityGroupEgressInput{
				GroupId:       aws.String(groupID),
				IpPermissions: []types.IpPermission{p.ipPermission()},
			})
			if awserr.Is(err, "InvalidPermission.Duplicate") {
				return nil
			}
			return err
		})
		if err != nil {
			return "", fmt.Errorf("AuthorizeSecurityGroupEgress %s: %w", spec.Name, err)
		}
	}

	if created && !slices.ContainsFunc(spec.Egress, Permission.allowsAll) {
		_, err := c.api.RevokeSecurityGroupEgress(ctx, &awsec2.RevokeSecurityGroupEgressInput{
			GroupId:       aws.String(groupID),
			IpPermissions: []types.IpPermission{allTraffic.ipPermission()},
		})
		if err != nil && !awserr.Is(err, "InvalidPermission.NotFound") {
			return "", fmt.Errorf("RevokeSecurityGroupEgress %s: %w", spec.Name, err)
		}
	}
	return groupID, nil
}

// revokeUndeclared revokes every live rule of the group that no declared permission
// covers, ingress and egress alike.
func (c *Client) revokeUndeclared(ctx context.Context, groupID string, spec SecurityGroupSpec) error {
	var ingress, egress []string
	var nextToken *string
	for {
		out, err := c.api.DescribeSecurityGroupRules(ctx, &awsec2.DescribeSecurityGroupRulesInput{
			Filters: []types.Filter{
				{Name: aws.String("group-id"), Values: []string{groupID}},
			},
			NextToken: nextToken,
		})
		if err != nil {
			return fmt.Errorf("DescribeSecurityGroupRules: %w", err)
		}
		for _, r := range out.SecurityGroupRules {
			switch {
			case aws.ToBool(r.IsEgress) && !declares(spec.Egress, r):
				egress = append(egress, aws.ToString(r.SecurityGroupRuleId))
			case !aws.ToBool(r.IsEgress) && !declares(spec.Ingress, r):
				ingress = append(ingress, aws.ToString(r.SecurityGroupRuleId))
			}
		}
		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	if len(ingress) > 0 {
		_, err := c.api.RevokeSecurityGroupIngress(ctx, &awsec2.RevokeSecurityGroupIngressInput{
			GroupId:              aws.String(groupID),
			SecurityGroupRuleIds: ingress,
		})
		if err != nil && !awserr.Is(err, "InvalidPermission.NotFound") {
			return fmt.Errorf("RevokeSecurityGroupIngress: %w", err)
		}
	}
	if len(egress) > 0 {
		_, err := c.api.RevokeSecurityGroupEgress(ctx, &awsec2.RevokeSecurityGroupEgressInput{
			GroupId:              aws.String(groupID),
			SecurityGroupRuleIds: egress,
		})
		if err != nil && !awserr.Is(err, "InvalidPermission.NotFound") {
			return fmt.Errorf("RevokeSecurityGroupEgress: %w", err)
		}
	}
	return nil
}

// declares reports whether one of perms covers the live rule exactly: same protocol,
// same port range and an IPv4 CIDR it lists. Rules referencing groups, prefix lists
// or IPv6 ranges are never declared.
func declares(perms []Permission, r types.SecurityGroupRule) bool {
	cidr := aws.ToString(r.CidrIpv4)
	if cidr == "" {
		return false
	}
	proto := strings.ToLower(aws.ToString(r.IpProtocol))
	for _, p := range perms {
		if !slices.Contains(p.CIDRs, cidr) {
			continue
		}
		if p.Protocol == topology.ProtocolAll {
			if proto == topology.ProtocolAll {
				return true
			}
			continue
		}
		if proto == strings.ToLower(p.Protocol) && aws.ToInt32(r.FromPort) == p.FromPort && aws.ToInt32(r.ToPort) == p.ToPort {
			return true
		}
	}
	return false
}

var allTraffic = Permission{Protocol: topology.ProtocolAll, CIDRs: []string{topology.DefaultRoute}}

func (p Permission) allowsAll() bool {
	return p.Protocol == topology.ProtocolAll && slices.Contains(p.CIDRs, topology.DefaultRoute)
}

func (p Permission) ipPermission() types.IpPermission {
	perm := types.IpPermission{IpProtocol: aws.String(p.Protocol)}
	if p.Protocol != topology.ProtocolAll {
		perm.FromPort = aws.Int32(p.FromPort)
		perm.ToPort = aws.Int32(p.ToPort)
	}
	for _, cidr := range p.CIDRs {
		r := types.IpRange{CidrIp: aws.String(cidr)}
		if p.Description != "" {
			r.Description = aws.String(p.Description)
		}
		perm.IpRanges = append(perm.IpRanges, r)
	}
	return perm
}
