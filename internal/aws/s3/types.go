package s3

import "vidizone.dev/netstack/internal/topology"

// BucketSpec is the desired configuration of one bucket. Policy is the final
// JSON document; empty means no policy is applied.
type BucketSpec struct {
	Name              string
	Region            string
	ObjectOwnership   string
	ACL               string
	PublicAccessBlock *topology.PublicAccessBlock
	CORS              []topology.CORSRule
	Policy            string
	Tags              map[string]string
}

type BucketInfo struct {
	Name            string
	Region          string
	Exists          bool
	PublicResources []string
}
