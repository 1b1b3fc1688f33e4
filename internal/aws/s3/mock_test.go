package s3

import (
	"context"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// mockS3API returns empty outputs for operations a test does not stub.
type mockS3API struct {
	headBucketFunc                 func(ctx context.Context, params *awss3.HeadBucketInput, optFns ...func(*awss3.Options)) (*awss3.HeadBucketOutput, error)
	createBucketFunc               func(ctx context.Context, params *awss3.CreateBucketInput, optFns ...func(*awss3.Options)) (*awss3.CreateBucketOutput, error)
	deleteBucketFunc               func(ctx context.Context, params *awss3.DeleteBucketInput, optFns ...func(*awss3.Options)) (*awss3.DeleteBucketOutput, error)
	getBucketLocationFunc          func(ctx context.Context, params *awss3.GetBucketLocationInput, optFns ...func(*awss3.Options)) (*awss3.GetBucketLocationOutput, error)
	putBucketTaggingFunc           func(ctx context.Context, params *awss3.PutBucketTaggingInput, optFns ...func(*awss3.Options)) (*awss3.PutBucketTaggingOutput, error)
	putBucketOwnershipControlsFunc func(ctx context.Context, params *awss3.PutBucketOwnershipControlsInput, optFns ...func(*awss3.Options)) (*awss3.PutBucketOwnershipControlsOutput, error)
	putPublicAccessBlockFunc       func(ctx context.Context, params *awss3.PutPublicAccessBlockInput, optFns ...func(*awss3.Options)) (*awss3.PutPublicAccessBlockOutput, error)
	putBucketAclFunc               func(ctx context.Context, params *awss3.PutBucketAclInput, optFns ...func(*awss3.Options)) (*awss3.PutBucketAclOutput, error)
	putBucketCorsFunc              func(ctx context.Context, params *awss3.PutBucketCorsInput, optFns ...func(*awss3.Options)) (*awss3.PutBucketCorsOutput, error)
	putBucketPolicyFunc            func(ctx context.Context, params *awss3.PutBucketPolicyInput, optFns ...func(*awss3.Options)) (*awss3.PutBucketPolicyOutput, error)
	getBucketPolicyFunc            func(ctx context.Context, params *awss3.GetBucketPolicyInput, optFns ...func(*awss3.Options)) (*awss3.GetBucketPolicyOutput, error)
	listObjectsV2Func              func(ctx context.Context, params *awss3.ListObjectsV2Input, optFns ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error)
}

func (m *mockS3API) HeadBucket(ctx context.Context, params *awss3.HeadBucketInput, optFns ...func(*awss3.Options)) (*awss3.HeadBucketOutput, error) {
	if m.headBucketFunc == nil {
		return &awss3.HeadBucketOutput{}, nil
	}
	return m.headBucketFunc(ctx, params, optFns...)
}

func (m *mockS3API) CreateBucket(ctx context.Context, params *awss3.CreateBucketInput, optFns ...func(*awss3.Options)) (*awss3.CreateBucketOutput, error) {
	if m.createBucketFunc == nil {
		return &awss3.CreateBucketOutput{}, nil
	}
	return m.createBucketFunc(ctx, params, optFns...)
}

func (m *mockS3API) DeleteBucket(ctx context.Context, params *awss3.DeleteBucketInput, optFns ...func(*awss3.Options)) (*awss3.DeleteBucketOutput, error) {
	if m.deleteBucketFunc == nil {
		return &awss3.DeleteBucketOutput{}, nil
	}
	return m.deleteBucketFunc(ctx, params, optFns...)
}

func (m *mockS3API) GetBucketLocation(ctx context.Context, params *awss3.GetBucketLocationInput, optFns ...func(*awss3.Options)) (*awss3.GetBucketLocationOutput, error) {
	if m.getBucketLocationFunc == nil {
		return &awss3.GetBucketLocationOutput{}, nil
	}
	return m.getBucketLocationFunc(ctx, params, optFns...)
}

func (m *mockS3API) PutBucketTagging(ctx context.Context, params *awss3.PutBucketTaggingInput, optFns ...func(*awss3.Options)) (*awss3.PutBucketTaggingOutput, error) {
	if m.putBucketTaggingFunc == nil {
		return &awss3.PutBucketTaggingOutput{}, nil
	}
	return m.putBucketTaggingFunc(ctx, params, optFns...)
}

func (m *mockS3API) PutBucketOwnershipControls(ctx context.Context, params *awss3.PutBucketOwnershipControlsInput, optFns ...func(*awss3.Options)) (*awss3.PutBucketOwnershipControlsOutput, error) {
	if m.putBucketOwnershipControlsFunc == nil {
		return &awss3.PutBucketOwnershipControlsOutput{}, nil
	}
	return m.putBucketOwnershipControlsFunc(ctx, params, optFns...)
}

func (m *mockS3API) PutPublicAccessBlock(ctx context.Context, params *awss3.PutPublicAccessBlockInput, optFns ...func(*awss3.Options)) (*awss3.PutPublicAccessBlockOutput, error) {
	if m.putPublicAccessBlockFunc == nil {
		return &awss3.PutPublicAccessBlockOutput{}, nil
	}
	return m.putPublicAccessBlockFunc(ctx, params, optFns...)
}

func (m *mockS3API) PutBucketAcl(ctx context.Context, params *awss3.PutBucketAclInput, optFns ...func(*awss3.Options)) (*awss3.PutBucketAclOutput, error) {
	if m.putBucketAclFunc == nil {
		return &awss3.PutBucketAclOutput{}, nil
	}
	return m.putBucketAclFunc(ctx, params, optFns...)
}

func (m *mockS3API) PutBucketCors(ctx context.Context, params *awss3.PutBucketCorsInput, optFns ...func(*awss3.Options)) (*awss3.PutBucketCorsOutput, error) {
	if m.putBucketCorsFunc == nil {
		return &awss3.PutBucketCorsOutput{}, nil
	}
	return m.putBucketCorsFunc(ctx, params, optFns...)
}

func (m *mockS3API) PutBucketPolicy(ctx context.Context, params *awss3.PutBucketPolicyInput, optFns ...func(*awss3.Options)) (*awss3.PutBucketPolicyOutput, error) {
	if m.putBucketPolicyFunc == nil {
		return &awss3.PutBucketPolicyOutput{}, nil
	}
	return m.putBucketPolicyFunc(ctx, params, optFns...)
}

func (m *mockS3API) GetBucketPolicy(ctx context.Context, params *awss3.GetBucketPolicyInput, optFns ...func(*awss3.Options)) (*awss3.GetBucketPolicyOutput, error) {
	if m.getBucketPolicyFunc == nil {
		return &awss3.GetBucketPolicyOutput{}, nil
	}
	return m.getBucketPolicyFunc(ctx, params, optFns...)
}

func (m *mockS3API) ListObjectsV2(ctx context.Context, params *awss3.ListObjectsV2Input, optFns ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error) {
	if m.listObjectsV2Func == nil {
		return &awss3.ListObjectsV2Output{}, nil
	}
	return m.listObjectsV2Func(ctx, params, optFns...)
}

