package topology

import (
	"fmt"

	"vidizone.dev/netstack/internal/policy"
)

const (
	ObjectOwnershipEnforced     = "BucketOwnerEnforced"
	ObjectOwnershipPreferred    = "BucketOwnerPreferred"
	ObjectOwnershipObjectWriter = "ObjectWriter"

	ACLPrivate    = "private"
	ACLPublicRead = "public-read"
)

// PolicyDocument returns the bucket's resource policy. A declared Policy is returned
// as is; otherwise public read is generated for PublicPrefixes. The result is empty
// when the bucket has neither.
func (b Bucket) PolicyDocument() (string, error) {
	if b.Policy != "" {
		return b.Policy, nil
	}
	if len(b.PublicPrefixes) == 0 {
		return "", nil
	}
	doc, err := policy.PublicRead(b.Name, b.PublicPrefixes).JSON()
	if err != nil {
		return "", fmt.Errorf("bucket %s: %w", b.Name, err)
	}
	return doc, nil
}
