package provision

import (
	"context"
	"fmt"
	"strings"

	awsvpc "vidizone.dev/netstack/internal/aws/vpc"
	"vidizone.dev/netstack/internal/topology"
)

const (
	StatePresent = "present"
	StateMissing = "missing"
)

// ResourceStatus is the live state of one declared resource.
type ResourceStatus struct {
	Kind   topology.Kind
	Name   string
	ID     string
	State  string
	Detail string
}

// Status reports, for every declaration of topo in apply order, whether a tagged
// resource exists. Route tables carry their live default route target.
func (p *Provisioner) Status(ctx context.Context, topo *topology.Topology) ([]ResourceStatus, error) {
	live, err := p.discover(ctx, topo)
	if err != nil {
		return nil, err
	}

	var out []ResourceStatus
	for _, d := range topo.Declarations() {
		rs := ResourceStatus{Kind: d.Kind, Name: d.Name, State: StateMissing}
		if r, ok := live[key{d.Kind, d.Name}]; ok {
			rs.ID = r.id
			rs.Detail = r.detail
			rs.State = StatePresent
		}
		out = append(out, rs)
	}
	return out, nil
}

type key struct {
	kind topology.Kind
	name string
}

type liveResource struct {
	id     string
	detail string
}

func (p *Provisioner) discover(ctx context.Context, topo *topology.Topology) (map[key]liveResource, error) {
	live := make(map[key]liveResource)
	put := func(kind topology.Kind, name, id, detail string) {
		if name != "" {
			live[key{kind, name}] = liveResource{id: id, detail: detail}
		}
	}

	vpcs, err := p.network.ListVPCs(ctx, topo.Stack)
	if err != nil {
		return nil, err
	}
	for _, v := range vpcs {
		put(topology.KindNetwork, v.Name, v.VPCID, v.CIDR)
		if err := p.discoverNetwork(ctx, topo, v.VPCID, put); err != nil {
			return nil, err
		}
	}

	addrs, err := p.network.ListAddresses(ctx, topo.Stack)
	if err != nil {
		return nil, err
	}
	for _, a := range addrs {
		put(topology.KindElasticIP, a.Name, a.AllocationID, a.PublicIP)
	}

	instances, _, err := p.compute.ListInstances(ctx, topo.Stack)
	if err != nil {
		return nil, err
	}
	for _, inst := range instances {
		put(topology.KindInstance, inst.Name, inst.InstanceID, fmt.Sprintf("%s %s", inst.State, inst.PrivateIP))
	}

	for _, b := range topo.Buckets {
		info, err := p.storage.DescribeBucket(ctx, b.Name)
		if err != nil {
			return nil, err
		}
		if !info.Exists {
			continue
		}
		detail := info.Region
		if n := len(info.PublicResources); n > 0 {
			detail = fmt.Sprintf("%s, %d public", info.Region, n)
		}
		put(topology.KindBucket, b.Name, b.Name, detail)
	}
	return live, nil
}

func (p *Provisioner) discoverNetwork(ctx context.Context, topo *topology.Topology, vpcID string, put func(topology.Kind, string, string, string)) error {
	subnets, err := p.network.ListSubnets(ctx, vpcID)
	if err != nil {
		return err
	}
	subnetNames := make(map[string]string, len(subnets))
	for _, s := range subnets {
		subnetNames[s.SubnetID] = s.Name
		put(topology.KindSubnet, s.Name, s.SubnetID, fmt.Sprintf("%s %s", s.CIDR, s.AZ))
	}

	igws, err := p.network.ListInternetGateways(ctx, vpcID)
	if err != nil {
		return err
	}
	for _, g := range igws {
		put(topology.KindInternetGateway, g.Name, g.GatewayID, g.State)
	}

	nats, err := p.network.ListNATGateways(ctx, vpcID)
	if err != nil {
		return err
	}
	for _, n := range nats {
		if n.State == "deleted" {
			continue
		}
		put(topology.KindNATGateway, n.Name, n.GatewayID, n.State)
	}

	tables, err := p.network.ListRouteTables(ctx, vpcID)
	if err != nil {
		return err
	}
	for _, rt := range tables {
		put(topology.KindRouteTable, rt.Name, rt.RouteTableID, defaultTarget(rt))
		for _, a := range rt.Associations {
			subnet := subnetNames[a.SubnetID]
			for _, assoc := range topo.AssociationsFor(subnet) {
				if assoc.RouteTable == rt.Name {
					put(topology.KindRouteTableAssoc, assoc.Name, a.AssociationID, subnet)
				}
			}
		}
	}

	groups, err := p.network.ListSecurityGroups(ctx, vpcID)
	if err != nil {
		return err
	}
	for _, g := range groups {
		put(topology.KindSecurityGroup, g.Name, g.GroupID, fmt.Sprintf("%d in, %d out", g.InboundRules, g.OutboundRules))
	}
	return nil
}

func defaultTarget(rt awsvpc.RouteTableInfo) string {
	var targets []string
	for _, r := range rt.Routes {
		if r.Destination == topology.DefaultRoute {
			targets = append(targets, fmt.Sprintf("%s via %s (%s)", r.Destination, r.Target, r.Status))
		}
	}
	return strings.Join(targets, ", ")
}
