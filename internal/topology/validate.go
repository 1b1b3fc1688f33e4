package topology

import (
	"errors"
	"fmt"
	"net/netip"
	"slices"
	"strings"

	"vidizone.dev/netstack/internal/policy"
)

// Violation is one broken invariant, attributed to the declaration it was found on.
type Violation struct {
	Resource string
	Message  string
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Resource, v.Message)
}

// Validate checks the topology and returns all violations joined, or nil.
func Validate(t *Topology) error {
	vs := Check(t)
	if len(vs) == 0 {
		return nil
	}
	errs := make([]error, len(vs))
	for i, v := range vs {
		errs[i] = v
	}
	return errors.Join(errs...)
}

// Check returns every violation found in the topology.
func Check(t *Topology) []Violation {
	c := &checker{t: t}
	c.names()
	c.network()
	c.subnets()
	c.gateways()
	c.routing()
	c.securityGroups()
	c.instances()
	c.buckets()
	return c.out
}

type checker struct {
	t   *Topology
	out []Violation
}

func (c *checker) addf(resource, format string, args ...any) {
	c.out = append(c.out, Violation{Resource: resource, Message: fmt.Sprintf(format, args...)})
}

func (c *checker) names() {
	seen := make(map[string]Kind)
	for _, d := range c.t.Declarations() {
		if d.Name == "" {
			c.addf(string(d.Kind), "missing logical name")
			continue
		}
		if prev, dup := seen[d.Name]; dup {
			c.addf(d.String(), "logical name already used by a %s", prev)
			continue
		}
		seen[d.Name] = d.Kind
	}
}

func (c *checker) network() {
	n := c.t.Network
	if _, err := netip.ParsePrefix(n.CIDR); err != nil {
		c.addf("network."+n.Name, "invalid CIDR block %q", n.CIDR)
	}
}

func (c *checker) networkRef(resource, ref string) {
	if ref != c.t.Network.Name {
		c.addf(resource, "network %q does not resolve to network %q", ref, c.t.Network.Name)
	}
}

func (c *checker) subnets() {
	vpc, vpcErr := netip.ParsePrefix(c.t.Network.CIDR)
	var seen []netip.Prefix
	var seenNames []string

	for _, s := range c.t.Subnets {
		res := "subnet." + s.Name
		c.networkRef(res, s.Network)

		if _, ok := c.t.Tier(s.Tier); !ok {
			c.addf(res, "unknown tier %q", s.Tier)
		}

		p, err := netip.ParsePrefix(s.CIDR)
		if err != nil {
			c.addf(res, "invalid CIDR block %q", s.CIDR)
			continue
		}
		if vpcErr == nil && !contains(vpc, p) {
			c.addf(res, "CIDR %s is outside network CIDR %s", s.CIDR, c.t.Network.CIDR)
		}
		for i, other := range seen {
			if p.Overlaps(other) {
				c.addf(res, "CIDR %s overlaps subnet %s", s.CIDR, seenNames[i])
			}
		}
		seen = append(seen, p)
		seenNames = append(seenNames, s.Name)

		if n := len(c.t.AssociationsFor(s.Name)); n != 1 {
			c.addf(res, "has %d route table associations, want exactly 1", n)
		}
	}
}

func (c *checker) gateways() {
	for _, g := range c.t.InternetGateways {
		c.networkRef("internet_gateway."+g.Name, g.Network)
	}
	for _, e := range c.t.ElasticIPs {
		if e.Domain != "" && e.Domain != AddressDomainVPC {
			c.addf("elastic_ip."+e.Name, "domain %q is not %q", e.Domain, AddressDomainVPC)
		}
	}
	for _, n := range c.t.NATGateways {
		res := "nat_gateway." + n.Name
		s, ok := c.t.Subnet(n.Subnet)
		switch {
		case !ok:
			c.addf(res, "subnet %q is not declared", n.Subnet)
		case !s.Public():
			c.addf(res, "placed in private subnet %q, NAT gateways need a public subnet", n.Subnet)
		}
		if !c.t.hasElasticIP(n.ElasticIP) {
			c.addf(res, "elastic IP %q is not declared", n.ElasticIP)
		}
	}
}

func (c *checker) routing() {
	for _, rt := range c.t.RouteTables {
		res := "route_table." + rt.Name
		c.networkRef(res, rt.Network)

		for _, r := range rt.Routes {
			if _, err := netip.ParsePrefix(r.CIDR); err != nil {
				c.addf(res, "invalid route destination %q", r.CIDR)
			}
			name, kind := r.Target()
			switch kind {
			case KindInternetGateway:
				if !c.t.hasInternetGateway(name) {
					c.addf(res, "route %s targets undeclared internet gateway %q", r.CIDR, name)
				}
			case KindNATGateway:
				if !c.t.hasNATGateway(name) {
					c.addf(res, "route %s targets undeclared NAT gateway %q", r.CIDR, name)
				}
			default:
				c.addf(res, "route %s must have exactly one next hop", r.CIDR)
			}
		}
		if n := len(rt.DefaultRoutes()); n != 1 {
			c.addf(res, "has %d default routes, want exactly 1", n)
		}
	}

	for _, a := range c.t.RouteTableAssocs {
		res := "route_table_association." + a.Name
		s, ok := c.t.Subnet(a.Subnet)
		if !ok {
			c.addf(res, "subnet %q is not declared", a.Subnet)
		}
		rt, rtOK := c.t.RouteTable(a.RouteTable)
		if !rtOK {
			c.addf(res, "route table %q is not declared", a.RouteTable)
		}
		if !ok || !rtOK {
			continue
		}
		defaults := rt.DefaultRoutes()
		if len(defaults) != 1 {
			continue
		}
		_, kind := defaults[0].Target()
		want := KindNATGateway
		if s.Public() {
			want = KindInternetGateway
		}
		if kind != want {
			c.addf(res, "subnet %s default route goes to a %s, want a %s", s.Name, kind, want)
		}
	}
}

func (c *checker) securityGroups() {
	for _, sg := range c.t.SecurityGroups {
		res := "security_group." + sg.Name
		c.networkRef(res, sg.Network)

		tier, ok := c.t.Tier(sg.Tier)
		if !ok {
			c.addf(res, "unknown tier %q", sg.Tier)
			continue
		}
		for _, r := range sg.Ingress {
			c.ingressRule(res, tier, r)
		}
		for _, r := range sg.Egress {
			c.rule(res, "egress", r)
		}
	}
}

func (c *checker) rule(res, direction string, r Rule) {
	switch r.Protocol {
	case ProtocolAll:
	case ProtocolTCP, ProtocolUDP:
		if r.FromPort < 0 || r.ToPort > 65535 || r.FromPort > r.ToPort {
			c.addf(res, "%s port range %d-%d is invalid", direction, r.FromPort, r.ToPort)
		}
	default:
		c.addf(res, "%s protocol %q is not supported", direction, r.Protocol)
	}
	if len(r.CIDRs) == 0 {
		c.addf(res, "%s rule has no source CIDRs", direction)
	}
}

// ingressRule checks that every source of the rule lies within a tier adjacent to the
// group's tier for the port class the rule opens.
func (c *checker) ingressRule(res string, tier Tier, r Rule) {
	c.rule(res, "ingress", r)

	var allowed []string
	switch admin, data := r.opensAdmin(), r.opensData(); {
	case admin && data:
		// a range spanning both port classes must satisfy both
		allowed = intersect(tier.AdminSources, tier.DataSources)
	case admin:
		allowed = tier.AdminSources
	default:
		allowed = tier.DataSources
	}

	var prefixes []netip.Prefix
	for _, name := range allowed {
		for _, cidr := range c.t.TierCIDRs(name) {
			if p, err := netip.ParsePrefix(cidr); err == nil {
				prefixes = append(prefixes, p)
			}
		}
	}

	for _, cidr := range r.CIDRs {
		src, err := netip.ParsePrefix(cidr)
		if err != nil {
			c.addf(res, "invalid ingress source %q", cidr)
			continue
		}
		if !slices.ContainsFunc(prefixes, func(p netip.Prefix) bool { return contains(p, src) }) {
			c.addf(res, "ingress %s %s from %s is outside tiers %v allowed for tier %s", r.Protocol, r.portLabel(), cidr, allowed, tier.Name)
		}
	}
}

func (r Rule) opensAdmin() bool {
	return slices.ContainsFunc(AdminPorts, r.Covers)
}

func (r Rule) opensData() bool {
	if r.Protocol == ProtocolAll {
		return true
	}
	span := r.ToPort - r.FromPort + 1
	admin := 0
	for _, p := range AdminPorts {
		if r.Covers(p) {
			admin++
		}
	}
	return span > admin
}

func (r Rule) portLabel() string {
	switch {
	case r.Protocol == ProtocolAll:
		return "all ports"
	case r.FromPort == r.ToPort:
		return fmt.Sprintf("port %d", r.FromPort)
	}
	return fmt.Sprintf("ports %d-%d", r.FromPort, r.ToPort)
}

func (c *checker) instances() {
	for _, inst := range c.t.Expand() {
		res := "instance." + inst.Name
		if inst.AMI == "" {
			c.addf(res, "missing machine image")
		}
		if inst.InstanceType == "" {
			c.addf(res, "missing instance type")
		}
		s, ok := c.t.Subnet(inst.Subnet)
		if !ok {
			c.addf(res, "subnet %q is not declared", inst.Subnet)
		}
		if len(inst.SecurityGroups) == 0 {
			c.addf(res, "has no security groups")
		}
		for _, name := range inst.SecurityGroups {
			sg, found := c.t.SecurityGroup(name)
			if !found {
				c.addf(res, "security group %q is not declared", name)
				continue
			}
			if ok && sg.Tier != s.Tier {
				c.addf(res, "security group %s is tier %s but subnet %s is tier %s", name, sg.Tier, s.Name, s.Tier)
			}
		}
		if ok && inst.AssociatePublicIP && !s.Public() {
			c.addf(res, "requests a public IP in private subnet %s", s.Name)
		}
	}
}

func (c *checker) buckets() {
	for _, b := range c.t.Buckets {
		res := "bucket." + b.Name

		if b.ObjectOwnership == ObjectOwnershipEnforced && b.ACL != "" && b.ACL != ACLPrivate {
			c.addf(res, "ACL %q conflicts with %s ownership", b.ACL, ObjectOwnershipEnforced)
		}
		for _, prefix := range b.PublicPrefixes {
			switch {
			case prefix == "" || prefix == "/":
				c.addf(res, "public prefix %q would expose the bucket root", prefix)
			case policy.HasWildcard(prefix):
				c.addf(res, "public prefix %q contains a wildcard", prefix)
			}
		}

		raw, err := b.PolicyDocument()
		if err != nil {
			c.addf(res, "%v", err)
			continue
		}
		if raw == "" {
			continue
		}
		doc, err := policy.Parse(raw)
		if err != nil {
			c.addf(res, "%v", err)
			continue
		}
		c.publicStatements(res, b, doc.PublicStatements())
	}
}

// publicStatements checks that public grants are read-only, name their resources
// explicitly and stay inside the declared prefixes.
func (c *checker) publicStatements(res string, b Bucket, statements []policy.Statement) {
	if len(statements) > 0 && b.PublicAccessBlock != nil && b.PublicAccessBlock.BlockPublicPolicy {
		c.addf(res, "policy grants public access but BlockPublicPolicy is set")
	}
	for _, st := range statements {
		if negated := st.Negated(); len(negated) > 0 {
			c.addf(res, "public statement %q uses %s", st.Sid, strings.Join(negated, ", "))
		}
		if !st.ReadOnly() {
			c.addf(res, "public statement %q grants %v, only %s is allowed", st.Sid, []string(st.Action), policy.ActionGetObject)
		}
		for _, resource := range st.Resource {
			prefix, ok := policy.PrefixOf(b.Name, resource)
			switch {
			case !ok:
				c.addf(res, "policy grants public access to foreign resource %s", resource)
			case prefix == "":
				c.addf(res, "policy grants public access to the bucket root (%s)", resource)
			case policy.HasWildcard(prefix):
				c.addf(res, "policy grants public access through wildcard prefix %q", prefix)
			case !slices.Contains(b.PublicPrefixes, prefix):
				c.addf(res, "policy grants public access to undeclared prefix %q", prefix)
			}
		}
	}
}

// contains reports whether inner lies entirely within outer.
func contains(outer, inner netip.Prefix) bool {
	return outer.Bits() <= inner.Bits() && outer.Contains(inner.Masked().Addr())
}

func intersect(a, b []string) []string {
	var out []string
	for _, s := range a {
		if slices.Contains(b, s) {
			out = append(out, s)
		}
	}
	return out
}
