package topology

import "fmt"

// Params are the literal inputs of the built-in vidizone topology.
type Params struct {
	Stack        string
	Region       string
	AMI          string
	InstanceType string
	KeyName      string
}

// Defaults for Params fields left empty.
const (
	DefaultStack        = "vidizone"
	DefaultRegion       = "ap-southeast-1"
	DefaultAMI          = "ami-060e277c0d4cce553"
	DefaultInstanceType = "t2.micro"
	DefaultKeyName      = "MyKeyPair"
)

// Tier names of the vidizone stack.
const (
	TierEdge = "edge"
	TierApp  = "app"
	TierData = "data"
)

// Service and admin ports.
const (
	PortSSH      = 22
	PortHTTP     = 80
	PortRedis    = 6379
	PortPostgres = 5432
)

// AdminPorts are matched against Tier.AdminSources, every other port against DataSources.
var AdminPorts = []int{PortSSH}

func (p Params) withDefaults() Params {
	if p.Stack == "" {
		p.Stack = DefaultStack
	}
	if p.Region == "" {
		p.Region = DefaultRegion
	}
	if p.AMI == "" {
		p.AMI = DefaultAMI
	}
	if p.InstanceType == "" {
		p.InstanceType = DefaultInstanceType
	}
	if p.KeyName == "" {
		p.KeyName = DefaultKeyName
	}
	return p
}

func tcp(port int, cidr, description string) Rule {
	return Rule{Protocol: ProtocolTCP, FromPort: port, ToPort: port, CIDRs: []string{cidr}, Description: description}
}

func allOutbound() []Rule {
	return []Rule{{Protocol: ProtocolAll, FromPort: 0, ToPort: 0, CIDRs: []string{DefaultRoute}, Description: "all outbound"}}
}

// Vidizone returns the media-streaming stack: nginx bastion/load balancer in the public
// subnet, app servers in the app subnet, redis, celery workers and postgres in the data
// subnet, and the media bucket.
func Vidizone(p Params) *Topology {
	p = p.withDefaults()
	name := func(suffix string) string { return fmt.Sprintf("%s-%s", p.Stack, suffix) }

	const (
		vpcCIDR      = "10.0.0.0/16"
		publicCIDR   = "10.0.1.0/24"
		private1CIDR = "10.0.2.0/24"
		private2CIDR = "10.0.3.0/24"
	)

	vpc := name("vpc")
	public1 := name("public-subnet-1")
	private1 := name("private-subnet-1")
	private2 := name("private-subnet-2")
	eip := name("nat-eip")
	nat := name("nat-gateway")
	igw := name("app-igw")
	publicRT := name("public-route-table")
	privateRT := name("private-route-table")

	nginxSG := name("nginx-sg")
	appSG := name("app-server-sg")
	redisSG := name("redis-server-sg")
	workerSG := name("worker-server-sg")
	postgresSG := name("postgres-db-sg")

	instance := func(suffix, subnet, sg string, count int, public bool) Instance {
		return Instance{
			Name:              name(suffix),
			Count:             count,
			AMI:               p.AMI,
			InstanceType:      p.InstanceType,
			Subnet:            subnet,
			SecurityGroups:    []string{sg},
			KeyName:           p.KeyName,
			AssociatePublicIP: public,
		}
	}

	return &Topology{
		Stack: p.Stack,
		Network: Network{
			Name:               vpc,
			CIDR:               vpcCIDR,
			EnableDNSSupport:   true,
			EnableDNSHostnames: true,
		},
		Tiers: []Tier{
			{Name: TierEdge, DataSources: []string{TierInternet}, AdminSources: []string{TierInternet}},
			{Name: TierApp, DataSources: []string{TierEdge}, AdminSources: []string{TierEdge}},
			{Name: TierData, DataSources: []string{TierApp}, AdminSources: []string{TierEdge}},
		},
		Subnets: []Subnet{
			{Name: public1, Network: vpc, CIDR: publicCIDR, AvailabilityZone: p.Region + "a", MapPublicIP: true, Tier: TierEdge},
			{Name: private1, Network: vpc, CIDR: private1CIDR, AvailabilityZone: p.Region + "b", Tier: TierApp},
			{Name: private2, Network: vpc, CIDR: private2CIDR, AvailabilityZone: p.Region + "c", Tier: TierData},
		},
		ElasticIPs:       []ElasticIP{{Name: eip, Domain: AddressDomainVPC}},
		InternetGateways: []InternetGateway{{Name: igw, Network: vpc}},
		NATGateways:      []NATGateway{{Name: nat, Subnet: public1, ElasticIP: eip}},
		RouteTables: []RouteTable{
			{Name: publicRT, Network: vpc, Routes: []Route{{CIDR: DefaultRoute, InternetGateway: igw}}},
			{Name: privateRT, Network: vpc, Routes: []Route{{CIDR: DefaultRoute, NATGateway: nat}}},
		},
		RouteTableAssocs: []RouteTableAssociation{
			{Name: name("public-rt-association-1"), Subnet: public1, RouteTable: publicRT},
			{Name: name("private-rt-association-1"), Subnet: private1, RouteTable: privateRT},
			{Name: name("private-rt-association-2"), Subnet: private2, RouteTable: privateRT},
		},
		SecurityGroups: []SecurityGroup{
			{
				Name: nginxSG, Network: vpc, Tier: TierEdge,
				Description: "Allow HTTP and SSH",
				Ingress: []Rule{
					tcp(PortHTTP, DefaultRoute, "HTTP from anywhere"),
					tcp(PortSSH, DefaultRoute, "SSH from anywhere"),
				},
				Egress: allOutbound(),
			},
			{
				Name: appSG, Network: vpc, Tier: TierApp,
				Description: "Allow HTTP and SSH from public subnet",
				Ingress: []Rule{
					tcp(PortSSH, publicCIDR, "SSH from public subnet"),
					tcp(PortHTTP, publicCIDR, "HTTP from public subnet"),
				},
				Egress: allOutbound(),
			},
			{
				Name: redisSG, Network: vpc, Tier: TierData,
				Description: "Allow traffic to Redis server only from app servers, and SSH from Bastion server",
				Ingress: []Rule{
					tcp(PortSSH, publicCIDR, "SSH from bastion"),
					tcp(PortRedis, private1CIDR, "Redis from app servers"),
				},
				Egress: allOutbound(),
			},
			{
				Name: workerSG, Network: vpc, Tier: TierData,
				Description: "Allow SSH from Bastion server",
				Ingress: []Rule{
					tcp(PortSSH, publicCIDR, "SSH from bastion"),
				},
				Egress: allOutbound(),
			},
			{
				Name: postgresSG, Network: vpc, Tier: TierData,
				Description: "Allow SSH from Bastion server",
				Ingress: []Rule{
					tcp(PortSSH, publicCIDR, "SSH from bastion"),
					tcp(PortPostgres, private1CIDR, "Postgres from app servers"),
				},
				Egress: allOutbound(),
			},
		},
		Instances: []Instance{
			instance("nginx-instance", public1, nginxSG, 0, true),
			instance("app-server-instance", private1, appSG, 2, false),
			instance("redis-server-instance", private2, redisSG, 0, false),
			instance("worker-server-instance", private2, workerSG, 2, false),
			instance("postgres-db-instance", private2, postgresSG, 0, false),
		},
		Buckets: []Bucket{{
			Name:            name("media"),
			ObjectOwnership: ObjectOwnershipEnforced,
			ACL:             ACLPrivate,
			PublicAccessBlock: &PublicAccessBlock{
				BlockPublicACLs:       true,
				IgnorePublicACLs:      true,
				BlockPublicPolicy:     false,
				RestrictPublicBuckets: false,
			},
			CORS: []CORSRule{{
				AllowedOrigins: []string{"*"},
				AllowedMethods: []string{"GET", "HEAD"},
				AllowedHeaders: []string{"*"},
				ExposeHeaders:  []string{"ETag", "Content-Length", "Content-Range"},
				MaxAgeSeconds:  3000,
			}},
			PublicPrefixes: []string{"thumbnails/", "streams/"},
		}},
	}
}
