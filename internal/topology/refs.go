package topology

import "fmt"

// Kind names a declaration type.
type Kind string

const (
	KindNetwork         Kind = "network"
	KindSubnet          Kind = "subnet"
	KindInternetGateway Kind = "internet_gateway"
	KindElasticIP       Kind = "elastic_ip"
	KindNATGateway      Kind = "nat_gateway"
	KindRouteTable      Kind = "route_table"
	KindRouteTableAssoc Kind = "route_table_association"
	KindSecurityGroup   Kind = "security_group"
	KindInstance        Kind = "instance"
	KindBucket          Kind = "bucket"
)

// Declaration is a flattened view of one declared resource.
type Declaration struct {
	Kind Kind
	Name string
	// Refs are the logical names this declaration points at.
	Refs []string
}

func (d Declaration) String() string {
	return fmt.Sprintf("%s.%s", d.Kind, d.Name)
}

// Declarations lists every resource in apply order. Instance groups are expanded.
func (t *Topology) Declarations() []Declaration {
	var out []Declaration
	out = append(out, Declaration{Kind: KindNetwork, Name: t.Network.Name})
	for _, s := range t.Subnets {
		out = append(out, Declaration{Kind: KindSubnet, Name: s.Name, Refs: []string{s.Network}})
	}
	for _, g := range t.InternetGateways {
		out = append(out, Declaration{Kind: KindInternetGateway, Name: g.Name, Refs: []string{g.Network}})
	}
	for _, e := range t.ElasticIPs {
		out = append(out, Declaration{Kind: KindElasticIP, Name: e.Name})
	}
	for _, n := range t.NATGateways {
		out = append(out, Declaration{Kind: KindNATGateway, Name: n.Name, Refs: []string{n.Subnet, n.ElasticIP}})
	}
	for _, rt := range t.RouteTables {
		refs := []string{rt.Network}
		for _, r := range rt.Routes {
			if name, _ := r.Target(); name != "" {
				refs = append(refs, name)
			}
		}
		out = append(out, Declaration{Kind: KindRouteTable, Name: rt.Name, Refs: refs})
	}
	for _, a := range t.RouteTableAssocs {
		out = append(out, Declaration{Kind: KindRouteTableAssoc, Name: a.Name, Refs: []string{a.Subnet, a.RouteTable}})
	}
	for _, sg := range t.SecurityGroups {
		out = append(out, Declaration{Kind: KindSecurityGroup, Name: sg.Name, Refs: []string{sg.Network}})
	}
	for _, inst := range t.Expand() {
		refs := append([]string{inst.Subnet}, inst.SecurityGroups...)
		out = append(out, Declaration{Kind: KindInstance, Name: inst.Name, Refs: refs})
	}
	for _, b := range t.Buckets {
		out = append(out, Declaration{Kind: KindBucket, Name: b.Name})
	}
	return out
}

// Expand stamps out instance groups. A group with Count N > 0 becomes N instances
// named <name>-1 .. <name>-N; Count 0 keeps the single unsuffixed instance.
func (t *Topology) Expand() []Instance {
	var out []Instance
	for _, inst := range t.Instances {
		if inst.Count <= 0 {
			inst.Count = 0
			out = append(out, inst)
			continue
		}
		for i := range inst.Count {
			copied := inst
			copied.Name = fmt.Sprintf("%s-%d", inst.Name, i+1)
			copied.Count = 0
			copied.SecurityGroups = append([]string(nil), inst.SecurityGroups...)
			out = append(out, copied)
		}
	}
	return out
}

func (t *Topology) Subnet(name string) (Subnet, bool) {
	for _, s := range t.Subnets {
		if s.Name == name {
			return s, true
		}
	}
	return Subnet{}, false
}

func (t *Topology) RouteTable(name string) (RouteTable, bool) {
	for _, rt := range t.RouteTables {
		if rt.Name == name {
			return rt, true
		}
	}
	return RouteTable{}, false
}

func (t *Topology) SecurityGroup(name string) (SecurityGroup, bool) {
	for _, sg := range t.SecurityGroups {
		if sg.Name == name {
			return sg, true
		}
	}
	return SecurityGroup{}, false
}

func (t *Topology) Tier(name string) (Tier, bool) {
	for _, tier := range t.Tiers {
		if tier.Name == name {
			return tier, true
		}
	}
	return Tier{}, false
}

func (t *Topology) hasElasticIP(name string) bool {
	for _, e := range t.ElasticIPs {
		if e.Name == name {
			return true
		}
	}
	return false
}

func (t *Topology) hasInternetGateway(name string) bool {
	for _, g := range t.InternetGateways {
		if g.Name == name {
			return true
		}
	}
	return false
}

func (t *Topology) hasNATGateway(name string) bool {
	for _, n := range t.NATGateways {
		if n.Name == name {
			return true
		}
	}
	return false
}

// TierCIDRs returns the CIDR blocks of every subnet in the tier. The internet
// pseudo-tier resolves to DefaultRoute.
func (t *Topology) TierCIDRs(tier string) []string {
	if tier == TierInternet {
		return []string{DefaultRoute}
	}
	var out []string
	for _, s := range t.Subnets {
		if s.Tier == tier {
			out = append(out, s.CIDR)
		}
	}
	return out
}

// AssociationsFor returns the associations bound to a subnet.
func (t *Topology) AssociationsFor(subnet string) []RouteTableAssociation {
	var out []RouteTableAssociation
	for _, a := range t.RouteTableAssocs {
		if a.Subnet == subnet {
			out = append(out, a)
		}
	}
	return out
}
