package provision

import (
	"context"
	"fmt"

	"vidizone.dev/netstack/internal/ctxlog"
)

// groupDefault is the security group EC2 creates with every VPC; it goes away
// with the VPC and cannot be deleted on its own.
const groupDefault = "default"

// Destroy removes every resource tagged with stack in reverse dependency order.
// Buckets are not tagged for discovery; only those named in buckets are deleted,
// and only when empty.
func (p *Provisioner) Destroy(ctx context.Context, stack string, buckets ...string) error {
	log := ctxlog.FromContext(ctx).With("stack", stack)

	instances, _, err := p.compute.ListInstances(ctx, stack)
	if err != nil {
		return err
	}
	if len(instances) > 0 {
		ids := make([]string, 0, len(instances))
		for _, inst := range instances {
			ids = append(ids, inst.InstanceID)
		}
		log.Info("terminating instances", "count", len(ids))
		if err := p.compute.TerminateInstances(ctx, ids); err != nil {
			return err
		}
	}

	vpcs, err := p.network.ListVPCs(ctx, stack)
	if err != nil {
		return err
	}
	for _, v := range vpcs {
		if err := p.destroyNetwork(ctx, v.VPCID, stack); err != nil {
			return fmt.Errorf("network %s: %w", v.Name, err)
		}
	}

	// Addresses outlive a VPC that was already removed by an interrupted destroy.
	addrs, err := p.network.ListAddresses(ctx, stack)
	if err != nil {
		return err
	}
	for _, addr := range addrs {
		log.Info("releasing address", "name", addr.Name, "id", addr.AllocationID)
		if err := p.network.ReleaseAddress(ctx, addr.AllocationID); err != nil {
			return err
		}
	}

	for _, b := range buckets {
		log.Info("deleting bucket", "name", b)
		if err := p.storage.DeleteBucket(ctx, b, p.region); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provisioner) destroyNetwork(ctx context.Context, vpcID, stack string) error {
	log := ctxlog.FromContext(ctx).With("vpc", vpcID)

	groups, err := p.network.ListSecurityGroups(ctx, vpcID)
	if err != nil {
		return err
	}
	for _, g := range groups {
		if g.Name == groupDefault {
			continue
		}
		log.Info("deleting security group", "name", g.Name, "id", g.GroupID)
		if err := p.network.DeleteSecurityGroup(ctx, g.GroupID); err != nil {
			return err
		}
	}

	tables, err := p.network.ListRouteTables(ctx, vpcID)
	if err != nil {
		return err
	}
	for _, rt := range tables {
		if rt.IsMain {
			continue
		}
		log.Info("deleting route table", "name", rt.Name, "id", rt.RouteTableID)
		if err := p.network.DeleteRouteTable(ctx, rt); err != nil {
			return err
		}
	}

	nats, err := p.network.ListNATGateways(ctx, vpcID)
	if err != nil {
		return err
	}
	for _, n := range nats {
		if n.State == "deleted" {
			continue
		}
		log.Info("deleting NAT gateway", "name", n.Name, "id", n.GatewayID)
		if err := p.network.DeleteNATGateway(ctx, n.GatewayID); err != nil {
			return err
		}
	}

	addrs, err := p.network.ListAddresses(ctx, stack)
	if err != nil {
		return err
	}
	for _, addr := range addrs {
		log.Info("releasing address", "name", addr.Name, "id", addr.AllocationID)
		if err := p.network.ReleaseAddress(ctx, addr.AllocationID); err != nil {
			return err
		}
	}

	igws, err := p.network.ListInternetGateways(ctx, vpcID)
	if err != nil {
		return err
	}
	for _, g := range igws {
		log.Info("deleting internet gateway", "name", g.Name, "id", g.GatewayID)
		if err := p.network.DeleteInternetGateway(ctx, g.GatewayID, vpcID); err != nil {
			return err
		}
	}

	subnets, err := p.network.ListSubnets(ctx, vpcID)
	if err != nil {
		return err
	}
	for _, s := range subnets {
		log.Info("deleting subnet", "name", s.Name, "id", s.SubnetID)
		if err := p.network.DeleteSubnet(ctx, s.SubnetID); err != nil {
			return err
		}
	}

	log.Info("deleting network")
	return p.network.DeleteVPC(ctx, vpcID)
}
