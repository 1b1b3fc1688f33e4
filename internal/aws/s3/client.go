package s3

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"vidizone.dev/netstack/internal/aws/awserr"
	"vidizone.dev/netstack/internal/policy"
	"vidizone.dev/netstack/internal/retry"
	"vidizone.dev/netstack/internal/tags"
	"vidizone.dev/netstack/internal/topology"
)

type S3API interface {
	HeadBucket(ctx context.Context, params *awss3.HeadBucketInput, optFns ...func(*awss3.Options)) (*awss3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *awss3.CreateBucketInput, optFns ...func(*awss3.Options)) (*awss3.CreateBucketOutput, error)
	DeleteBucket(ctx context.Context, params *awss3.DeleteBucketInput, optFns ...func(*awss3.Options)) (*awss3.DeleteBucketOutput, error)
	GetBucketLocation(ctx context.Context, params *awss3.GetBucketLocationInput, optFns ...func(*awss3.Options)) (*awss3.GetBucketLocationOutput, error)
	PutBucketTagging(ctx context.Context, params *awss3.PutBucketTaggingInput, optFns ...func(*awss3.Options)) (*awss3.PutBucketTaggingOutput, error)
	PutBucketOwnershipControls(ctx context.Context, params *awss3.PutBucketOwnershipControlsInput, optFns ...func(*awss3.Options)) (*awss3.PutBucketOwnershipControlsOutput, error)
	PutPublicAccessBlock(ctx context.Context, params *awss3.PutPublicAccessBlockInput, optFns ...func(*awss3.Options)) (*awss3.PutPublicAccessBlockOutput, error)
	PutBucketAcl(ctx context.Context, params *awss3.PutBucketAclInput, optFns ...func(*awss3.Options)) (*awss3.PutBucketAclOutput, error)
	PutBucketCors(ctx context.Context, params *awss3.PutBucketCorsInput, optFns ...func(*awss3.Options)) (*awss3.PutBucketCorsOutput, error)
	PutBucketPolicy(ctx context.Context, params *awss3.PutBucketPolicyInput, optFns ...func(*awss3.Options)) (*awss3.PutBucketPolicyOutput, error)
	GetBucketPolicy(ctx context.Context, params *awss3.GetBucketPolicyInput, optFns ...func(*awss3.Options)) (*awss3.GetBucketPolicyOutput, error)
	ListObjectsV2(ctx context.Context, params *awss3.ListObjectsV2Input, optFns ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error)
}

type Client struct {
	api       S3API
	retryOpts []retry.Option
}

type Option func(*Client)

func WithRetryOptions(opts ...retry.Option) Option {
	return func(c *Client) {
		c.retryOpts = append(c.retryOpts, opts...)
	}
}

func NewClient(api S3API, opts ...Option) *Client {
	c := &Client{
		api:       api,
		retryOpts: []retry.Option{retry.WithMaxRetries(6), retry.WithInitialDelay(2 * time.Second)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func inRegion(region string) []func(*awss3.Options) {
	var opts []func(*awss3.Options)
	if region != "" {
		opts = append(opts, func(o *awss3.Options) {
			o.Region = region
		})
	}
	return opts
}

// EnsureBucket creates the bucket if needed and applies its configuration. The
// public access block is written before the policy so that a policy granting
// public read is accepted.
func (c *Client) EnsureBucket(ctx context.Context, spec BucketSpec) error {
	opts := inRegion(spec.Region)
	bucket := aws.String(spec.Name)

	_, err := c.api.HeadBucket(ctx, &awss3.HeadBucketInput{Bucket: bucket}, opts...)
	switch {
	case awserr.IsNotFound(err):
		if err := c.createBucket(ctx, spec, opts); err != nil {
			return err
		}
	case err != nil:
		return fmt.Errorf("HeadBucket %s: %w", spec.Name, err)
	}

	if len(spec.Tags) > 0 {
		tagSet := make([]s3types.Tag, 0, len(spec.Tags))
		for _, k := range tags.Keys(spec.Tags) {
			tagSet = append(tagSet, s3types.Tag{Key: aws.String(k), Value: aws.String(spec.Tags[k])})
		}
		err := c.retry(ctx, func() error {
			_, err := c.api.PutBucketTagging(ctx, &awss3.PutBucketTaggingInput{
				Bucket:  bucket,
				Tagging: &s3types.Tagging{TagSet: tagSet},
			}, opts...)
			return err
		})
		if err != nil {
			return fmt.Errorf("PutBucketTagging %s: %w", spec.Name, err)
		}
	}

	if spec.ObjectOwnership != "" {
		_, err := c.api.PutBucketOwnershipControls(ctx, &awss3.PutBucketOwnershipControlsInput{
			Bucket: bucket,
			OwnershipControls: &s3types.OwnershipControls{
				Rules: []s3types.OwnershipControlsRule{{ObjectOwnership: s3types.ObjectOwnership(spec.ObjectOwnership)}},
			},
		}, opts...)
		if err != nil {
			return fmt.Errorf("PutBucketOwnershipControls %s: %w", spec.Name, err)
		}
	}

	if pab := spec.PublicAccessBlock; pab != nil {
		_, err := c.api.PutPublicAccessBlock(ctx, &awss3.PutPublicAccessBlockInput{
			Bucket: bucket,
			PublicAccessBlockConfiguration: &s3types.PublicAccessBlockConfiguration{
				BlockPublicAcls:       aws.Bool(pab.BlockPublicACLs),
				IgnorePublicAcls:      aws.Bool(pab.IgnorePublicACLs),
				BlockPublicPolicy:     aws.Bool(pab.BlockPublicPolicy),
				RestrictPublicBuckets: aws.Bool(pab.RestrictPublicBuckets),
			},
		}, opts...)
		if err != nil {
			return fmt.Errorf("PutPublicAccessBlock %s: %w", spec.Name, err)
		}
	}

	// ACLs are disabled on buckets with enforced ownership.
	if spec.ACL != "" && spec.ObjectOwnership != topology.ObjectOwnershipEnforced {
		_, err := c.api.PutBucketAcl(ctx, &awss3.PutBucketAclInput{
			Bucket: bucket,
			ACL:    s3types.BucketCannedACL(spec.ACL),
		}, opts...)
		if err != nil {
			return fmt.Errorf("PutBucketAcl %s: %w", spec.Name, err)
		}
	}

	if len(spec.CORS) > 0 {
		rules := make([]s3types.CORSRule, 0, len(spec.CORS))
		for _, r := range spec.CORS {
			rule := s3types.CORSRule{
				AllowedOrigins: r.AllowedOrigins,
				AllowedMethods: r.AllowedMethods,
				AllowedHeaders: r.AllowedHeaders,
				ExposeHeaders:  r.ExposeHeaders,
			}
			if r.MaxAgeSeconds > 0 {
				rule.MaxAgeSeconds = aws.Int32(int32(r.MaxAgeSeconds))
			}
			rules = append(rules, rule)
		}
		_, err := c.api.PutBucketCors(ctx, &awss3.PutBucketCorsInput{
			Bucket:            bucket,
			CORSConfiguration: &s3types.CORSConfiguration{CORSRules: rules},
		}, opts...)
		if err != nil {
			return fmt.Errorf("PutBucketCors %s: %w", spec.Name, err)
		}
	}

	if spec.Policy != "" {
		// A freshly relaxed public access block can take a moment to apply.
		err := c.retryWhile(ctx, func() error {
			_, err := c.api.PutBucketPolicy(ctx, &awss3.PutBucketPolicyInput{
				Bucket: bucket,
				Policy: aws.String(spec.Policy),
			}, opts...)
			return err
		}, "AccessDenied")
		if err != nil {
			return fmt.Errorf("PutBucketPolicy %s: %w", spec.Name, err)
		}
	}
	return nil
}

func (c *Client) createBucket(ctx context.Context, spec BucketSpec, opts []func(*awss3.Options)) error {
	input := &awss3.CreateBucketInput{Bucket: aws.String(spec.Name)}
	if spec.ObjectOwnership != "" {
		input.ObjectOwnership = s3types.ObjectOwnership(spec.ObjectOwnership)
	}
	// us-east-1 rejects an explicit location constraint.
	if spec.Region != "" && spec.Region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(spec.Region),
		}
	}

	_, err := c.api.CreateBucket(ctx, input, opts...)
	switch {
	case awserr.Is(err, "BucketAlreadyOwnedByYou"):
		return nil
	case awserr.Is(err, "BucketAlreadyExists"):
		return fmt.Errorf("bucket name %s is owned by another account: %w", spec.Name, err)
	case err != nil:
		return fmt.Errorf("CreateBucket %s: %w", spec.Name, err)
	}
	return nil
}

// DescribeBucket reports whether the bucket exists, where it lives and which
// resources its policy opens to the public.
func (c *Client) DescribeBucket(ctx context.Context, name string) (BucketInfo, error) {
	info := BucketInfo{Name: name}
	bucket := aws.String(name)

	_, err := c.api.HeadBucket(ctx, &awss3.HeadBucketInput{Bucket: bucket})
	if awserr.IsNotFound(err) {
		return info, nil
	}
	if err != nil {
		return BucketInfo{}, fmt.Errorf("HeadBucket %s: %w", name, err)
	}
	info.Exists = true

	loc, err := c.api.GetBucketLocation(ctx, &awss3.GetBucketLocationInput{Bucket: bucket})
	if err != nil {
		return BucketInfo{}, fmt.Errorf("GetBucketLocation(%s): %w", name, err)
	}
	info.Region = string(loc.LocationConstraint)
	if info.Region == "" {
		info.Region = "us-east-1"
	}

	out, err := c.api.GetBucketPolicy(ctx, &awss3.GetBucketPolicyInput{Bucket: bucket}, inRegion(info.Region)...)
	if awserr.Is(err, "NoSuchBucketPolicy") {
		return info, nil
	}
	if err != nil {
		return BucketInfo{}, fmt.Errorf("GetBucketPolicy %s: %w", name, err)
	}
	doc, err := policy.Parse(aws.ToString(out.Policy))
	if err != nil {
		return BucketInfo{}, fmt.Errorf("bucket %s: %w", name, err)
	}
	info.PublicResources = doc.PublicResources()
	return info, nil
}

// ErrBucketNotEmpty is returned by DeleteBucket for a bucket that still holds objects.
var ErrBucketNotEmpty = errors.New("bucket is not empty")

// DeleteBucket deletes an empty bucket. Objects are never removed; a bucket that
// still holds any yields ErrBucketNotEmpty. A missing bucket is not an error.
func (c *Client) DeleteBucket(ctx context.Context, name, region string) error {
	opts := inRegion(region)
	bucket := aws.String(name)

	out, err := c.api.ListObjectsV2(ctx, &awss3.ListObjectsV2Input{
		Bucket:  bucket,
		MaxKeys: aws.Int32(1),
	}, opts...)
	if awserr.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("ListObjectsV2: %w", err)
	}
	if len(out.Contents) > 0 {
		return fmt.Errorf("%s: %w", name, ErrBucketNotEmpty)
	}

	_, err = c.api.DeleteBucket(ctx, &awss3.DeleteBucketInput{Bucket: bucket}, opts...)
	if err != nil && !awserr.IsNotFound(err) {
		return fmt.Errorf("DeleteBucket %s: %w", name, err)
	}
	return nil
}

func (c *Client) retry(ctx context.Context, op func() error) error {
	return retry.WithExponentialBackoff(ctx, func() error {
		return awserr.RetryNotFound(op())
	}, c.retryOpts...)
}

func (c *Client) retryWhile(ctx context.Context, op func() error, codes ...string) error {
	return retry.WithExponentialBackoff(ctx, func() error {
		err := op()
		if err == nil || awserr.Is(err, codes...) {
			return err
		}
		return retry.Fatal(err)
	}, c.retryOpts...)
}
