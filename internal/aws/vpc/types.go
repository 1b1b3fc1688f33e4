package vpc

type VPCInfo struct {
	VPCID     string
	Name      string
	CIDR      string
	IsDefault bool
	State     string
}

type SubnetInfo struct {
	SubnetID     string
	Name         string
	CIDR         string
	AZ           string
	MapPublicIP  bool
	AvailableIPs int
}

type SecurityGroupInfo struct {
	GroupID       string
	Name          string
	Description   string
	InboundRules  int
	OutboundRules int
}

type InternetGatewayInfo struct {
	GatewayID string
	Name      string
	State     string
}

type AddressInfo struct {
	AllocationID  string
	Name          string
	PublicIP      string
	AssociationID string
}

type RouteTableInfo struct {
	RouteTableID string
	Name         string
	IsMain       bool
	Routes       []RouteEntry
	Associations []RouteTableAssociation
}

type RouteEntry struct {
	Destination string // CIDR or prefix list
	Target      string // igw-xxx, nat-xxx, local, etc.
	Status      string // active, blackhole
	Origin      string // CreateRouteTable, CreateRoute, EnableVgwRoutePropagation
}

type RouteTableAssociation struct {
	AssociationID string
	SubnetID      string
	IsMain        bool
}

type NATGatewayInfo struct {
	GatewayID string
	Name      string
	State     string // available, pending, failed, deleting, deleted
	Type      string // public, private
	SubnetID  string
	ElasticIP string
	PrivateIP string
}

type SecurityGroupRule struct {
	Direction   string // "inbound" or "outbound"
	Protocol    string // tcp, udp, icmp, all, or number
	PortRange   string // "80", "80-443", "All"
	Source      string // CIDR, security group ID, or prefix list (for inbound)
	Description string
}

// Permission is one security group rule to authorize. Ports are ignored for
// protocol "-1".
type Permission struct {
	Protocol    string
	FromPort    int32
	ToPort      int32
	CIDRs       []string
	Description string
}

// RouteSpec is a route to install. Exactly one of GatewayID and NATGatewayID is set.
type RouteSpec struct {
	Destination  string
	GatewayID    string
	NATGatewayID string
}

type VPCSpec struct {
	CIDR               string
	EnableDNSSupport   bool
	EnableDNSHostnames bool
	Tags               map[string]string
}

type SubnetSpec struct {
	VPCID            string
	CIDR             string
	AvailabilityZone string
	MapPublicIP      bool
	Tags             map[string]string
}

type SecurityGroupSpec struct {
	VPCID       string
	Name        string
	Description string
	Ingress     []Permission
	Egress      []Permission
	Tags        map[string]string
}
