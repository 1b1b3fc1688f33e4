package provision

import (
	"context"
	"fmt"

	awsec2 "vidizone.dev/netstack/internal/aws/ec2"
	awss3 "vidizone.dev/netstack/internal/aws/s3"
	awsvpc "vidizone.dev/netstack/internal/aws/vpc"
	"vidizone.dev/netstack/internal/ctxlog"
	"vidizone.dev/netstack/internal/tags"
	"vidizone.dev/netstack/internal/topology"
)

// Apply validates topo and ensures every declared resource in dependency order:
// network, subnets, internet gateways, elastic IPs, NAT gateways, route tables,
// associations, security groups, instances and buckets. On error the outputs
// resolved so far are returned with it.
func (p *Provisioner) Apply(ctx context.Context, topo *topology.Topology) (Outputs, error) {
	if err := topology.Validate(topo); err != nil {
		return nil, fmt.Errorf("invalid topology: %w", err)
	}

	a := &applier{p: p, topo: topo}
	steps := []func(context.Context) error{
		a.ensureNetwork,
		a.ensureSubnets,
		a.ensureInternetGateways,
		a.ensureElasticIPs,
		a.ensureNATGateways,
		a.ensureRouteTables,
		a.ensureAssociations,
		a.ensureSecurityGroups,
		a.ensureInstances,
		a.ensureBuckets,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return a.outputs, err
		}
	}
	return a.outputs, nil
}

type applier struct {
	p       *Provisioner
	topo    *topology.Topology
	outputs Outputs
}

func (a *applier) tags(name, tier string, extra map[string]string) map[string]string {
	return tags.New(a.topo.Stack).WithName(name).WithTier(tier).Merge(extra).Build()
}

func (a *applier) record(ctx context.Context, kind topology.Kind, name, id string) {
	a.outputs = append(a.outputs, Output{Kind: kind, Name: name, ID: id})
	ctxlog.FromContext(ctx).Info("ensured", "kind", kind, "name", name, "id", id)
}

// id returns the ID of a resource ensured earlier in the run. Validation has
// already resolved every reference, so a miss is a bug.
func (a *applier) id(kind topology.Kind, name string) (string, error) {
	id, ok := a.outputs.ID(kind, name)
	if !ok {
		return "", fmt.Errorf("%s.%s referenced before it was ensured", kind, name)
	}
	return id, nil
}

func (a *applier) ensureNetwork(ctx context.Context) error {
	n := a.topo.Network
	id, err := a.p.network.EnsureVPC(ctx, awsvpc.VPCSpec{
		CIDR:               n.CIDR,
		EnableDNSSupport:   n.EnableDNSSupport,
		EnableDNSHostnames: n.EnableDNSHostnames,
		Tags:               a.tags(n.Name, "", n.Tags),
	})
	if err != nil {
		return fmt.Errorf("network %s: %w", n.Name, err)
	}
	a.record(ctx, topology.KindNetwork, n.Name, id)
	return nil
}

func (a *applier) ensureSubnets(ctx context.Context) error {
	for _, s := range a.topo.Subnets {
		vpcID, err := a.id(topology.KindNetwork, s.Network)
		if err != nil {
			return err
		}
		id, err := a.p.network.EnsureSubnet(ctx, awsvpc.SubnetSpec{
			VPCID:            vpcID,
			CIDR:             s.CIDR,
			AvailabilityZone: s.AvailabilityZone,
			MapPublicIP:      s.MapPublicIP,
			Tags:             a.tags(s.Name, s.Tier, s.Tags),
		})
		if err != nil {
			return fmt.Errorf("subnet %s: %w", s.Name, err)
		}
		a.record(ctx, topology.KindSubnet, s.Name, id)
	}
	return nil
}

func (a *applier) ensureInternetGateways(ctx context.Context) error {
	for _, g := range a.topo.InternetGateways {
		vpcID, err := a.id(topology.KindNetwork, g.Network)
		if err != nil {
			return err
		}
		id, err := a.p.network.EnsureInternetGateway(ctx, vpcID, a.tags(g.Name, "", g.Tags))
		if err != nil {
			return fmt.Errorf("internet gateway %s: %w", g.Name, err)
		}
		a.record(ctx, topology.KindInternetGateway, g.Name, id)
	}
	return nil
}

func (a *applier) ensureElasticIPs(ctx context.Context) error {
	for _, e := range a.topo.ElasticIPs {
		id, err := a.p.network.EnsureElasticIP(ctx, a.tags(e.Name, "", e.Tags))
		if err != nil {
			return fmt.Errorf("elastic ip %s: %w", e.Name, err)
		}
		a.record(ctx, topology.KindElasticIP, e.Name, id)
	}
	return nil
}

func (a *applier) ensureNATGateways(ctx context.Context) error {
	for _, n := range a.topo.NATGateways {
		subnetID, err := a.id(topology.KindSubnet, n.Subnet)
		if err != nil {
			return err
		}
		allocID, err := a.id(topology.KindElasticIP, n.ElasticIP)
		if err != nil {
			return err
		}
		ctxlog.FromContext(ctx).Info("waiting for NAT gateway", "name", n.Name)
		id, err := a.p.network.EnsureNATGateway(ctx, subnetID, allocID, a.tags(n.Name, "", n.Tags))
		if err != nil {
			return fmt.Errorf("nat gateway %s: %w", n.Name, err)
		}
		a.record(ctx, topology.KindNATGateway, n.Name, id)
	}
	return nil
}

func (a *applier) ensureRouteTables(ctx context.Context) error {
	for _, rt := range a.topo.RouteTables {
		vpcID, err := a.id(topology.KindNetwork, rt.Network)
		if err != nil {
			return err
		}
		routes := make([]awsvpc.RouteSpec, 0, len(rt.Routes))
		for _, r := range rt.Routes {
			name, kind := r.Target()
			targetID, err := a.id(kind, name)
			if err != nil {
				return err
			}
			spec := awsvpc.RouteSpec{Destination: r.CIDR}
			if kind == topology.KindNATGateway {
				spec.NATGatewayID = targetID
			} else {
				spec.GatewayID = targetID
			}
			routes = append(routes, spec)
		}

		id, err := a.p.network.EnsureRouteTable(ctx, vpcID, routes, a.tags(rt.Name, "", rt.Tags))
		if err != nil {
			return fmt.Errorf("route table %s: %w", rt.Name, err)
		}
		a.record(ctx, topology.KindRouteTable, rt.Name, id)
	}
	return nil
}

func (a *applier) ensureAssociations(ctx context.Context) error {
	for _, assoc := range a.topo.RouteTableAssocs {
		rtID, err := a.id(topology.KindRouteTable, assoc.RouteTable)
		if err != nil {
			return err
		}
		subnetID, err := a.id(topology.KindSubnet, assoc.Subnet)
		if err != nil {
			return err
		}
		id, err := a.p.network.AssociateRouteTable(ctx, rtID, subnetID)
		if err != nil {
			return fmt.Errorf("route table association %s: %w", assoc.Name, err)
		}
		a.record(ctx, topology.KindRouteTableAssoc, assoc.Name, id)
	}
	return nil
}

func permissions(rules []topology.Rule) []awsvpc.Permission {
	out := make([]awsvpc.Permission, 0, len(rules))
	for _, r := range rules {
		out = append(out, awsvpc.Permission{
			Protocol:    r.Protocol,
			FromPort:    int32(r.FromPort),
			ToPort:      int32(r.ToPort),
			CIDRs:       r.CIDRs,
			Description: r.Description,
		})
	}
	return out
}

func (a *applier) ensureSecurityGroups(ctx context.Context) error {
	for _, sg := range a.topo.SecurityGroups {
		vpcID, err := a.id(topology.KindNetwork, sg.Network)
		if err != nil {
			return err
		}
		id, err := a.p.network.EnsureSecurityGroup(ctx, awsvpc.SecurityGroupSpec{
			VPCID:       vpcID,
			Name:        sg.Name,
			Description: sg.Description,
			Ingress:     permissions(sg.Ingress),
			Egress:      permissions(sg.Egress),
			Tags:        a.tags(sg.Name, sg.Tier, sg.Tags),
		})
		if err != nil {
			return fmt.Errorf("security group %s: %w", sg.Name, err)
		}
		a.record(ctx, topology.KindSecurityGroup, sg.Name, id)
	}
	return nil
}

func (a *applier) ensureInstances(ctx context.Context) error {
	for _, inst := range a.topo.Expand() {
		subnetID, err := a.id(topology.KindSubnet, inst.Subnet)
		if err != nil {
			return err
		}
		groupIDs := make([]string, 0, len(inst.SecurityGroups))
		for _, name := range inst.SecurityGroups {
			id, err := a.id(topology.KindSecurityGroup, name)
			if err != nil {
				return err
			}
			groupIDs = append(groupIDs, id)
		}

		subnet, _ := a.topo.Subnet(inst.Subnet)
		launched, err := a.p.compute.EnsureInstance(ctx, awsec2.InstanceSpec{
			AMI:               inst.AMI,
			InstanceType:      inst.InstanceType,
			SubnetID:          subnetID,
			SecurityGroupIDs:  groupIDs,
			KeyName:           inst.KeyName,
			AssociatePublicIP: inst.AssociatePublicIP,
			Tags:              a.tags(inst.Name, subnet.Tier, inst.Tags),
		})
		if err != nil {
			return fmt.Errorf("instance %s: %w", inst.Name, err)
		}
		a.record(ctx, topology.KindInstance, inst.Name, launched.InstanceID)
	}
	return nil
}

func (a *applier) ensureBuckets(ctx context.Context) error {
	for _, b := range a.topo.Buckets {
		doc, err := b.PolicyDocument()
		if err != nil {
			return err
		}
		err = a.p.storage.EnsureBucket(ctx, awss3.BucketSpec{
			Name:              b.Name,
			Region:            a.p.region,
			ObjectOwnership:   b.ObjectOwnership,
			ACL:               b.ACL,
			PublicAccessBlock: b.PublicAccessBlock,
			CORS:              b.CORS,
			Policy:            doc,
			Tags:              a.tags(b.Name, "", b.Tags),
		})
		if err != nil {
			return fmt.Errorf("bucket %s: %w", b.Name, err)
		}
		a.record(ctx, topology.KindBucket, b.Name, b.Name)
	}
	return nil
}
