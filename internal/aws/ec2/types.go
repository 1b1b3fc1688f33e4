package ec2

// EC2Instance represents a single EC2 instance.
type EC2Instance struct {
	Name       string
	InstanceID string
	Type       string
	State      string
	Tier       string
	SubnetID   string
	PrivateIP  string
	PublicIP   string
}

// EC2Summary holds aggregate instance counts.
type EC2Summary struct {
	Total   int
	Running int
	Stopped int
}

// InstanceSpec describes one instance to launch.
type InstanceSpec struct {
	AMI               string
	InstanceType      string
	SubnetID          string
	SecurityGroupIDs  []string
	KeyName           string
	AssociatePublicIP bool
	Tags              map[string]string
}
