// Package topology declares the vidizone network stack as plain data: one VPC, its
// subnets and gateways, route tables, security groups, instances and the media bucket.
//
// References between declarations are logical names. They are resolved against the
// provider IDs only while applying, see package provision.
package topology

// Well-known values used across the model.
const (
	DefaultRoute = "0.0.0.0/0"

	// TierInternet is the pseudo-tier standing for DefaultRoute in Tier source lists.
	TierInternet = "internet"

	ProtocolAll = "-1"
	ProtocolTCP = "tcp"
	ProtocolUDP = "udp"

	AddressDomainVPC = "vpc"
)

// Topology is the full declaration of one stack.
type Topology struct {
	Stack string `hcl:"stack,optional" yaml:"stack"`

	Network          Network                 `hcl:"network,block" yaml:"network"`
	Tiers            []Tier                  `hcl:"tier,block" yaml:"tiers"`
	Subnets          []Subnet                `hcl:"subnet,block" yaml:"subnets"`
	ElasticIPs       []ElasticIP             `hcl:"elastic_ip,block" yaml:"elastic_ips"`
	InternetGateways []InternetGateway       `hcl:"internet_gateway,block" yaml:"internet_gateways"`
	NATGateways      []NATGateway            `hcl:"nat_gateway,block" yaml:"nat_gateways"`
	RouteTables      []RouteTable            `hcl:"route_table,block" yaml:"route_tables"`
	RouteTableAssocs []RouteTableAssociation `hcl:"route_table_association,block" yaml:"route_table_associations"`
	SecurityGroups   []SecurityGroup         `hcl:"security_group,block" yaml:"security_groups"`
	Instances        []Instance              `hcl:"instance,block" yaml:"instances"`
	Buckets          []Bucket                `hcl:"bucket,block" yaml:"buckets,omitempty"`
}

// Network is the VPC.
type Network struct {
	Name               string            `hcl:"name,label" yaml:"name"`
	CIDR               string            `hcl:"cidr_block" yaml:"cidr_block"`
	EnableDNSSupport   bool              `hcl:"enable_dns_support,optional" yaml:"enable_dns_support"`
	EnableDNSHostnames bool              `hcl:"enable_dns_hostnames,optional" yaml:"enable_dns_hostnames"`
	Tags               map[string]string `hcl:"tags,optional" yaml:"tags,omitempty"`
}

// Tier is a trust level shared by subnets and security groups. DataSources lists the
// tiers allowed on service ports, AdminSources the tiers allowed on administrative ports.
type Tier struct {
	Name         string   `hcl:"name,label" yaml:"name"`
	DataSources  []string `hcl:"data_sources,optional" yaml:"data_sources,omitempty"`
	AdminSources []string `hcl:"admin_sources,optional" yaml:"admin_sources,omitempty"`
}

type Subnet struct {
	Name             string            `hcl:"name,label" yaml:"name"`
	Network          string            `hcl:"network" yaml:"network"`
	CIDR             string            `hcl:"cidr_block" yaml:"cidr_block"`
	AvailabilityZone string            `hcl:"availability_zone" yaml:"availability_zone"`
	MapPublicIP      bool              `hcl:"map_public_ip_on_launch,optional" yaml:"map_public_ip_on_launch"`
	Tier             string            `hcl:"tier" yaml:"tier"`
	Tags             map[string]string `hcl:"tags,optional" yaml:"tags,omitempty"`
}

// Public reports whether instances launched in the subnet get a public address.
func (s Subnet) Public() bool { return s.MapPublicIP }

type ElasticIP struct {
	Name   string            `hcl:"name,label" yaml:"name"`
	Domain string            `hcl:"domain,optional" yaml:"domain"`
	Tags   map[string]string `hcl:"tags,optional" yaml:"tags,omitempty"`
}

type InternetGateway struct {
	Name    string            `hcl:"name,label" yaml:"name"`
	Network string            `hcl:"network" yaml:"network"`
	Tags    map[string]string `hcl:"tags,optional" yaml:"tags,omitempty"`
}

type NATGateway struct {
	Name      string            `hcl:"name,label" yaml:"name"`
	Subnet    string            `hcl:"subnet" yaml:"subnet"`
	ElasticIP string            `hcl:"elastic_ip" yaml:"elastic_ip"`
	Tags      map[string]string `hcl:"tags,optional" yaml:"tags,omitempty"`
}

// Route is one destination/next-hop pair. Exactly one of the target fields is set.
type Route struct {
	CIDR            string `hcl:"cidr_block" yaml:"cidr_block"`
	InternetGateway string `hcl:"internet_gateway,optional" yaml:"internet_gateway,omitempty"`
	NATGateway      string `hcl:"nat_gateway,optional" yaml:"nat_gateway,omitempty"`
}

// Target returns the next-hop name and its kind.
func (r Route) Target() (string, Kind) {
	switch {
	case r.InternetGateway != "" && r.NATGateway == "":
		return r.InternetGateway, KindInternetGateway
	case r.NATGateway != "" && r.InternetGateway == "":
		return r.NATGateway, KindNATGateway
	}
	return "", ""
}

type RouteTable struct {
	Name    string            `hcl:"name,label" yaml:"name"`
	Network string            `hcl:"network" yaml:"network"`
	Routes  []Route           `hcl:"route,block" yaml:"routes"`
	Tags    map[string]string `hcl:"tags,optional" yaml:"tags,omitempty"`
}

// DefaultRoutes returns the routes whose destination is DefaultRoute.
func (rt RouteTable) DefaultRoutes() []Route {
	var out []Route
	for _, r := range rt.Routes {
		if r.CIDR == DefaultRoute {
			out = append(out, r)
		}
	}
	return out
}

type RouteTableAssociation struct {
	Name       string `hcl:"name,label" yaml:"name"`
	Subnet     string `hcl:"subnet" yaml:"subnet"`
	RouteTable string `hcl:"route_table" yaml:"route_table"`
}

// Rule is one ingress or egress permission. FromPort and ToPort are ignored by the
// provider when Protocol is ProtocolAll.
type Rule struct {
	Protocol    string   `hcl:"protocol" yaml:"protocol"`
	FromPort    int      `hcl:"from_port" yaml:"from_port"`
	ToPort      int      `hcl:"to_port" yaml:"to_port"`
	CIDRs       []string `hcl:"cidr_blocks" yaml:"cidr_blocks"`
	Description string   `hcl:"description,optional" yaml:"description,omitempty"`
}

// Covers reports whether port falls inside the rule's range.
func (r Rule) Covers(port int) bool {
	if r.Protocol == ProtocolAll {
		return true
	}
	return port >= r.FromPort && port <= r.ToPort
}

type SecurityGroup struct {
	Name        string            `hcl:"name,label" yaml:"name"`
	Network     string            `hcl:"network" yaml:"network"`
	Description string            `hcl:"description" yaml:"description"`
	Tier        string            `hcl:"tier" yaml:"tier"`
	Ingress     []Rule            `hcl:"ingress,block" yaml:"ingress"`
	Egress      []Rule            `hcl:"egress,block" yaml:"egress"`
	Tags        map[string]string `hcl:"tags,optional" yaml:"tags,omitempty"`
}

// Instance declares one compute instance, or Count index-suffixed copies of it.
type Instance struct {
	Name              string            `hcl:"name,label" yaml:"name"`
	Count             int               `hcl:"count,optional" yaml:"count,omitempty"`
	AMI               string            `hcl:"ami" yaml:"ami"`
	InstanceType      string            `hcl:"instance_type" yaml:"instance_type"`
	Subnet            string            `hcl:"subnet" yaml:"subnet"`
	SecurityGroups    []string          `hcl:"security_groups" yaml:"security_groups"`
	KeyName           string            `hcl:"key_name,optional" yaml:"key_name,omitempty"`
	AssociatePublicIP bool              `hcl:"associate_public_ip_address,optional" yaml:"associate_public_ip_address"`
	Tags              map[string]string `hcl:"tags,optional" yaml:"tags,omitempty"`
}

// PublicAccessBlock mirrors the four S3 public-access-block switches.
type PublicAccessBlock struct {
	BlockPublicACLs       bool `hcl:"block_public_acls,optional" yaml:"block_public_acls"`
	IgnorePublicACLs      bool `hcl:"ignore_public_acls,optional" yaml:"ignore_public_acls"`
	BlockPublicPolicy     bool `hcl:"block_public_policy,optional" yaml:"block_public_policy"`
	RestrictPublicBuckets bool `hcl:"restrict_public_buckets,optional" yaml:"restrict_public_buckets"`
}

type CORSRule struct {
	AllowedOrigins []string `hcl:"allowed_origins" yaml:"allowed_origins"`
	AllowedMethods []string `hcl:"allowed_methods" yaml:"allowed_methods"`
	AllowedHeaders []string `hcl:"allowed_headers,optional" yaml:"allowed_headers,omitempty"`
	ExposeHeaders  []string `hcl:"expose_headers,optional" yaml:"expose_headers,omitempty"`
	MaxAgeSeconds  int      `hcl:"max_age_seconds,optional" yaml:"max_age_seconds,omitempty"`
}

// Bucket is the object-storage container. Policy is the resource policy document; when
// empty it is generated from PublicPrefixes.
type Bucket struct {
	Name              string             `hcl:"name,label" yaml:"name"`
	ObjectOwnership   string             `hcl:"object_ownership,optional" yaml:"object_ownership"`
	ACL               string             `hcl:"acl,optional" yaml:"acl,omitempty"`
	PublicAccessBlock *PublicAccessBlock `hcl:"public_access_block,block" yaml:"public_access_block,omitempty"`
	CORS              []CORSRule         `hcl:"cors_rule,block" yaml:"cors_rules,omitempty"`
	PublicPrefixes    []string           `hcl:"public_prefixes,optional" yaml:"public_prefixes,omitempty"`
	Policy            string             `hcl:"policy,optional" yaml:"policy,omitempty"`
	Tags              map[string]string  `hcl:"tags,optional" yaml:"tags,omitempty"`
}
