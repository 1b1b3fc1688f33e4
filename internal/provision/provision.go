// Package provision reconciles a topology against AWS.
//
// There is no state file. Every resource carries its logical name and the stack
// tag, and each step looks the resource up by those tags before creating it, so
// Apply can be re-run after a partial failure and Destroy and Status work from
// the tags alone.
package provision

import (
	"context"

	awsec2 "vidizone.dev/netstack/internal/aws/ec2"
	awss3 "vidizone.dev/netstack/internal/aws/s3"
	awsvpc "vidizone.dev/netstack/internal/aws/vpc"
	"vidizone.dev/netstack/internal/topology"
)

type NetworkAPI interface {
	EnsureVPC(ctx context.Context, spec awsvpc.VPCSpec) (string, error)
	EnsureSubnet(ctx context.Context, spec awsvpc.SubnetSpec) (string, error)
	EnsureInternetGateway(ctx context.Context, vpcID string, tags map[string]string) (string, error)
	EnsureElasticIP(ctx context.Context, tags map[string]string) (string, error)
	EnsureNATGateway(ctx context.Context, subnetID, allocationID string, tags map[string]string) (string, error)
	EnsureRouteTable(ctx context.Context, vpcID string, routes []awsvpc.RouteSpec, tags map[string]string) (string, error)
	AssociateRouteTable(ctx context.Context, rtID, subnetID string) (string, error)
	EnsureSecurityGroup(ctx context.Context, spec awsvpc.SecurityGroupSpec) (string, error)

	ListVPCs(ctx context.Context, stack string) ([]awsvpc.VPCInfo, error)
	ListSubnets(ctx context.Context, vpcID string) ([]awsvpc.SubnetInfo, error)
	ListInternetGateways(ctx context.Context, vpcID string) ([]awsvpc.InternetGatewayInfo, error)
	ListAddresses(ctx context.Context, stack string) ([]awsvpc.AddressInfo, error)
	ListNATGateways(ctx context.Context, vpcID string) ([]awsvpc.NATGatewayInfo, error)
	ListRouteTables(ctx context.Context, vpcID string) ([]awsvpc.RouteTableInfo, error)
	ListSecurityGroups(ctx context.Context, vpcID string) ([]awsvpc.SecurityGroupInfo, error)

	DeleteSecurityGroup(ctx context.Context, groupID string) error
	DeleteRouteTable(ctx context.Context, rt awsvpc.RouteTableInfo) error
	DeleteNATGateway(ctx context.Context, natID string) error
	ReleaseAddress(ctx context.Context, allocationID string) error
	DeleteInternetGateway(ctx context.Context, igwID, vpcID string) error
	DeleteSubnet(ctx context.Context, subnetID string) error
	DeleteVPC(ctx context.Context, vpcID string) error
}

type ComputeAPI interface {
	EnsureInstance(ctx context.Context, spec awsec2.InstanceSpec) (awsec2.EC2Instance, error)
	ListInstances(ctx context.Context, stack string) ([]awsec2.EC2Instance, awsec2.EC2Summary, error)
	TerminateInstances(ctx context.Context, ids []string) error
}

type StorageAPI interface {
	EnsureBucket(ctx context.Context, spec awss3.BucketSpec) error
	DescribeBucket(ctx context.Context, name string) (awss3.BucketInfo, error)
	DeleteBucket(ctx context.Context, name, region string) error
}

type Provisioner struct {
	network NetworkAPI
	compute ComputeAPI
	storage StorageAPI
	region  string
}

// New returns a Provisioner. region is where buckets are created.
func New(network NetworkAPI, compute ComputeAPI, storage StorageAPI, region string) *Provisioner {
	return &Provisioner{
		network: network,
		compute: compute,
		storage: storage,
		region:  region,
	}
}

// Output maps one declared resource to the provider ID it resolved to.
type Output struct {
	Kind topology.Kind
	Name string
	ID   string
}

// Outputs are listed in apply order.
type Outputs []Output

// ID returns the provider ID recorded for kind.name.
func (o Outputs) ID(kind topology.Kind, name string) (string, bool) {
	for _, out := range o {
		if out.Kind == kind && out.Name == name {
			return out.ID, true
		}
	}
	return "", false
}
