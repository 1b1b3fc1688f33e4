package provision

import (
	"context"
	"errors"
	"fmt"

	awsec2 "vidizone.dev/netstack/internal/aws/ec2"
	awss3 "vidizone.dev/netstack/internal/aws/s3"
	awsvpc "vidizone.dev/netstack/internal/aws/vpc"
	"vidizone.dev/netstack/internal/tags"
)

var errInjected = errors.New("injected failure")

// fakeCloud is an in-memory NetworkAPI, ComputeAPI and StorageAPI. Ensure calls
// are keyed by the Name tag, so a second apply resolves to the same IDs.
type fakeCloud struct {
	calls   []string
	ids     map[string]string
	creates int
	failOn  string

	vpcSpecs      map[string]awsvpc.VPCSpec
	subnetSpecs   map[string]awsvpc.SubnetSpec
	routes        map[string][]awsvpc.RouteSpec
	groupSpecs    map[string]awsvpc.SecurityGroupSpec
	instanceSpecs map[string]awsec2.InstanceSpec
	bucketSpecs   map[string]awss3.BucketSpec

	// destroy and status inputs
	vpcs       []awsvpc.VPCInfo
	subnets    []awsvpc.SubnetInfo
	igws       []awsvpc.InternetGatewayInfo
	addrs      []awsvpc.AddressInfo
	nats       []awsvpc.NATGatewayInfo
	tables     []awsvpc.RouteTableInfo
	groups     []awsvpc.SecurityGroupInfo
	instances  []awsec2.EC2Instance
	bucketInfo map[string]awss3.BucketInfo
}

func newFakeCloud() *fakeCloud {
	return &fakeCloud{
		ids:           make(map[string]string),
		vpcSpecs:      make(map[string]awsvpc.VPCSpec),
		subnetSpecs:   make(map[string]awsvpc.SubnetSpec),
		routes:        make(map[string][]awsvpc.RouteSpec),
		groupSpecs:    make(map[string]awsvpc.SecurityGroupSpec),
		instanceSpecs: make(map[string]awsec2.InstanceSpec),
		bucketSpecs:   make(map[string]awss3.BucketSpec),
		bucketInfo:    make(map[string]awss3.BucketInfo),
	}
}

func (f *fakeCloud) ensure(kind, name string) (string, error) {
	call := kind + " " + name
	f.calls = append(f.calls, call)
	if f.failOn == call {
		return "", errInjected
	}
	if id, ok := f.ids[name]; ok {
		return id, nil
	}
	f.creates++
	id := fmt.Sprintf("%s-%d", kind, f.creates)
	f.ids[name] = id
	return id, nil
}

func (f *fakeCloud) record(call string) error {
	f.calls = append(f.calls, call)
	if f.failOn == call {
		return errInjected
	}
	return nil
}

func (f *fakeCloud) EnsureVPC(ctx context.Context, spec awsvpc.VPCSpec) (string, error) {
	f.vpcSpecs[spec.Tags[tags.KeyName]] = spec
	return f.ensure("vpc", spec.Tags[tags.KeyName])
}

func (f *fakeCloud) EnsureSubnet(ctx context.Context, spec awsvpc.SubnetSpec) (string, error) {
	f.subnetSpecs[spec.Tags[tags.KeyName]] = spec
	return f.ensure("subnet", spec.Tags[tags.KeyName])
}

func (f *fakeCloud) EnsureInternetGateway(ctx context.Context, vpcID string, t map[string]string) (string, error) {
	return f.ensure("igw", t[tags.KeyName])
}

func (f *fakeCloud) EnsureElasticIP(ctx context.Context, t map[string]string) (string, error) {
	return f.ensure("eipalloc", t[tags.KeyName])
}

func (f *fakeCloud) EnsureNATGateway(ctx context.Context, subnetID, allocationID string, t map[string]string) (string, error) {
	return f.ensure("nat", t[tags.KeyName])
}

func (f *fakeCloud) EnsureRouteTable(ctx context.Context, vpcID string, routes []awsvpc.RouteSpec, t map[string]string) (string, error) {
	f.routes[t[tags.KeyName]] = routes
	return f.ensure("rtb", t[tags.KeyName])
}

func (f *fakeCloud) AssociateRouteTable(ctx context.Context, rtID, subnetID string) (string, error) {
	return f.ensure("rtbassoc", rtID+"/"+subnetID)
}

func (f *fakeCloud) EnsureSecurityGroup(ctx context.Context, spec awsvpc.SecurityGroupSpec) (string, error) {
	f.groupSpecs[spec.Name] = spec
	return f.ensure("sg", spec.Name)
}

func (f *fakeCloud) EnsureInstance(ctx context.Context, spec awsec2.InstanceSpec) (awsec2.EC2Instance, error) {
	f.instanceSpecs[spec.Tags[tags.KeyName]] = spec
	id, err := f.ensure("i", spec.Tags[tags.KeyName])
	return awsec2.EC2Instance{InstanceID: id, Name: spec.Tags[tags.KeyName]}, err
}

func (f *fakeCloud) EnsureBucket(ctx context.Context, spec awss3.BucketSpec) error {
	f.bucketSpecs[spec.Name] = spec
	_, err := f.ensure("bucket", spec.Name)
	return err
}

func (f *fakeCloud) ListVPCs(ctx context.Context, stack string) ([]awsvpc.VPCInfo, error) {
	return f.vpcs, nil
}

func (f *fakeCloud) ListSubnets(ctx context.Context, vpcID string) ([]awsvpc.SubnetInfo, error) {
	return f.subnets, nil
}

func (f *fakeCloud) ListInternetGateways(ctx context.Context, vpcID string) ([]awsvpc.InternetGatewayInfo, error) {
	return f.igws, nil
}

func (f *fakeCloud) ListAddresses(ctx context.Context, stack string) ([]awsvpc.AddressInfo, error) {
	return f.addrs, nil
}

func (f *fakeCloud) ListNATGateways(ctx context.Context, vpcID string) ([]awsvpc.NATGatewayInfo, error) {
	return f.nats, nil
}

func (f *fakeCloud) ListRouteTables(ctx context.Context, vpcID string) ([]awsvpc.RouteTableInfo, error) {
	return f.tables, nil
}

func (f *fakeCloud) ListSecurityGroups(ctx context.Context, vpcID string) ([]awsvpc.SecurityGroupInfo, error) {
	return f.groups, nil
}

func (f *fakeCloud) ListInstances(ctx context.Context, stack string) ([]awsec2.EC2Instance, awsec2.EC2Summary, error) {
	return f.instances, awsec2.EC2Summary{Total: len(f.instances)}, nil
}

func (f *fakeCloud) DescribeBucket(ctx context.Context, name string) (awss3.BucketInfo, error) {
	info, ok := f.bucketInfo[name]
	if !ok {
		return awss3.BucketInfo{Name: name}, nil
	}
	return info, nil
}

func (f *fakeCloud) DeleteSecurityGroup(ctx context.Context, groupID string) error {
	return f.record("delete sg " + groupID)
}

func (f *fakeCloud) DeleteRouteTable(ctx context.Context, rt awsvpc.RouteTableInfo) error {
	return f.record("delete rtb " + rt.RouteTableID)
}

func (f *fakeCloud) DeleteNATGateway(ctx context.Context, natID string) error {
	return f.record("delete nat " + natID)
}

// ReleaseAddress drops the address so a later listing no longer returns it.
func (f *fakeCloud) ReleaseAddress(ctx context.Context, allocationID string) error {
	var kept []awsvpc.AddressInfo
	for _, a := range f.addrs {
		if a.AllocationID != allocationID {
			kept = append(kept, a)
		}
	}
	f.addrs = kept
	return f.record("release eip " + allocationID)
}

func (f *fakeCloud) DeleteInternetGateway(ctx context.Context, igwID, vpcID string) error {
	return f.record("delete igw " + igwID)
}

func (f *fakeCloud) DeleteSubnet(ctx context.Context, subnetID string) error {
	return f.record("delete subnet " + subnetID)
}

func (f *fakeCloud) DeleteVPC(ctx context.Context, vpcID string) error {
	return f.record("delete vpc " + vpcID)
}

func (f *fakeCloud) TerminateInstances(ctx context.Context, ids []string) error {
	return f.record(fmt.Sprintf("terminate %v", ids))
}

func (f *fakeCloud) DeleteBucket(ctx context.Context, name, region string) error {
	return f.record("delete bucket " + name)
}

func newTestProvisioner(f *fakeCloud) *Provisioner {
	return New(f, f, f, "ap-southeast-1")
}
