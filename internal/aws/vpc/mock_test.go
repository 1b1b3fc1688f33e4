package vpc

import (
	"context"

	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
)

// mockVPCAPI returns empty outputs for operations a test does not stub.
type mockVPCAPI struct {
	describeVpcsFunc                  func(ctx context.Context, params *awsec2.DescribeVpcsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeVpcsOutput, error)
	createVpcFunc                     func(ctx context.Context, params *awsec2.CreateVpcInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateVpcOutput, error)
	modifyVpcAttributeFunc            func(ctx context.Context, params *awsec2.ModifyVpcAttributeInput, optFns ...func(*awsec2.Options)) (*awsec2.ModifyVpcAttributeOutput, error)
	deleteVpcFunc                     func(ctx context.Context, params *awsec2.DeleteVpcInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteVpcOutput, error)
	describeSubnetsFunc               func(ctx context.Context, params *awsec2.DescribeSubnetsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSubnetsOutput, error)
	createSubnetFunc                  func(ctx context.Context, params *awsec2.CreateSubnetInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateSubnetOutput, error)
	modifySubnetAttributeFunc         func(ctx context.Context, params *awsec2.ModifySubnetAttributeInput, optFns ...func(*awsec2.Options)) (*awsec2.ModifySubnetAttributeOutput, error)
	deleteSubnetFunc                  func(ctx context.Context, params *awsec2.DeleteSubnetInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteSubnetOutput, error)
	describeInternetGatewaysFunc      func(ctx context.Context, params *awsec2.DescribeInternetGatewaysInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInternetGatewaysOutput, error)
	createInternetGatewayFunc         func(ctx context.Context, params *awsec2.CreateInternetGatewayInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateInternetGatewayOutput, error)
	attachInternetGatewayFunc         func(ctx context.Context, params *awsec2.AttachInternetGatewayInput, optFns ...func(*awsec2.Options)) (*awsec2.AttachInternetGatewayOutput, error)
	detachInternetGatewayFunc         func(ctx context.Context, params *awsec2.DetachInternetGatewayInput, optFns ...func(*awsec2.Options)) (*awsec2.DetachInternetGatewayOutput, error)
	deleteInternetGatewayFunc         func(ctx context.Context, params *awsec2.DeleteInternetGatewayInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteInternetGatewayOutput, error)
	describeAddressesFunc             func(ctx context.Context, params *awsec2.DescribeAddressesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeAddressesOutput, error)
	allocateAddressFunc               func(ctx context.Context, params *awsec2.AllocateAddressInput, optFns ...func(*awsec2.Options)) (*awsec2.AllocateAddressOutput, error)
	releaseAddressFunc                func(ctx context.Context, params *awsec2.ReleaseAddressInput, optFns ...func(*awsec2.Options)) (*awsec2.ReleaseAddressOutput, error)
	describeNatGatewaysFunc           func(ctx context.Context, params *awsec2.DescribeNatGatewaysInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeNatGatewaysOutput, error)
	createNatGatewayFunc              func(ctx context.Context, params *awsec2.CreateNatGatewayInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateNatGatewayOutput, error)
	deleteNatGatewayFunc              func(ctx context.Context, params *awsec2.DeleteNatGatewayInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteNatGatewayOutput, error)
	describeRouteTablesFunc           func(ctx context.Context, params *awsec2.DescribeRouteTablesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeRouteTablesOutput, error)
	createRouteTableFunc              func(ctx context.Context, params *awsec2.CreateRouteTableInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateRouteTableOutput, error)
	createRouteFunc                   func(ctx context.Context, params *awsec2.CreateRouteInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateRouteOutput, error)
	replaceRouteFunc                  func(ctx context.Context, params *awsec2.ReplaceRouteInput, optFns ...func(*awsec2.Options)) (*awsec2.ReplaceRouteOutput, error)
	associateRouteTableFunc           func(ctx context.Context, params *awsec2.AssociateRouteTableInput, optFns ...func(*awsec2.Options)) (*awsec2.AssociateRouteTableOutput, error)
	replaceRouteTableAssociationFunc  func(ctx context.Context, params *awsec2.ReplaceRouteTableAssociationInput, optFns ...func(*awsec2.Options)) (*awsec2.ReplaceRouteTableAssociationOutput, error)
	disassociateRouteTableFunc        func(ctx context.Context, params *awsec2.DisassociateRouteTableInput, optFns ...func(*awsec2.Options)) (*awsec2.DisassociateRouteTableOutput, error)
	deleteRouteTableFunc              func(ctx context.Context, params *awsec2.DeleteRouteTableInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteRouteTableOutput, error)
	describeSecurityGroupsFunc        func(ctx context.Context, params *awsec2.DescribeSecurityGroupsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSecurityGroupsOutput, error)
	describeSecurityGroupRulesFunc    func(ctx context.Context, params *awsec2.DescribeSecurityGroupRulesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSecurityGroupRulesOutput, error)
	createSecurityGroupFunc           func(ctx context.Context, params *awsec2.CreateSecurityGroupInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateSecurityGroupOutput, error)
	authorizeSecurityGroupIngressFunc func(ctx context.Context, params *awsec2.AuthorizeSecurityGroupIngressInput, optFns ...func(*awsec2.Options)) (*awsec2.AuthorizeSecurityGroupIngressOutput, error)
	authorizeSecurityGroupEgressFunc  func(ctx context.Context, params *awsec2.AuthorizeSecurityGroupEgressInput, optFns ...func(*awsec2.Options)) (*awsec2.AuthorizeSecurityGroupEgressOutput, error)
	revokeSecurityGroupIngressFunc    func(ctx context.Context, params *awsec2.RevokeSecurityGroupIngressInput, optFns ...func(*awsec2.Options)) (*awsec2.RevokeSecurityGroupIngressOutput, error)
	revokeSecurityGroupEgressFunc     func(ctx context.Context, params *awsec2.RevokeSecurityGroupEgressInput, optFns ...func(*awsec2.Options)) (*awsec2.RevokeSecurityGroupEgressOutput, error)
	deleteSecurityGroupFunc           func(ctx context.Context, params *awsec2.DeleteSecurityGroupInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteSecurityGroupOutput, error)
}

func (m *mockVPCAPI) DescribeVpcs(ctx context.Context, params *awsec2.DescribeVpcsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeVpcsOutput, error) {
	if m.describeVpcsFunc == nil {
		return &awsec2.DescribeVpcsOutput{}, nil
	}
	return m.describeVpcsFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) CreateVpc(ctx context.Context, params *awsec2.CreateVpcInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateVpcOutput, error) {
	if m.createVpcFunc == nil {
		return &awsec2.CreateVpcOutput{}, nil
	}
	return m.createVpcFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) ModifyVpcAttribute(ctx context.Context, params *awsec2.ModifyVpcAttributeInput, optFns ...func(*awsec2.Options)) (*awsec2.ModifyVpcAttributeOutput, error) {
	if m.modifyVpcAttributeFunc == nil {
		return &awsec2.ModifyVpcAttributeOutput{}, nil
	}
	return m.modifyVpcAttributeFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) DeleteVpc(ctx context.Context, params *awsec2.DeleteVpcInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteVpcOutput, error) {
	if m.deleteVpcFunc == nil {
		return &awsec2.DeleteVpcOutput{}, nil
	}
	return m.deleteVpcFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) DescribeSubnets(ctx context.Context, params *awsec2.DescribeSubnetsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSubnetsOutput, error) {
	if m.describeSubnetsFunc == nil {
		return &awsec2.DescribeSubnetsOutput{}, nil
	}
	return m.describeSubnetsFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) CreateSubnet(ctx context.Context, params *awsec2.CreateSubnetInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateSubnetOutput, error) {
	if m.createSubnetFunc == nil {
		return &awsec2.CreateSubnetOutput{}, nil
	}
	return m.createSubnetFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) ModifySubnetAttribute(ctx context.Context, params *awsec2.ModifySubnetAttributeInput, optFns ...func(*awsec2.Options)) (*awsec2.ModifySubnetAttributeOutput, error) {
	if m.modifySubnetAttributeFunc == nil {
		return &awsec2.ModifySubnetAttributeOutput{}, nil
	}
	return m.modifySubnetAttributeFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) DeleteSubnet(ctx context.Context, params *awsec2.DeleteSubnetInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteSubnetOutput, error) {
	if m.deleteSubnetFunc == nil {
		return &awsec2.DeleteSubnetOutput{}, nil
	}
	return m.deleteSubnetFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) DescribeInternetGateways(ctx context.Context, params *awsec2.DescribeInternetGatewaysInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInternetGatewaysOutput, error) {
	if m.describeInternetGatewaysFunc == nil {
		return &awsec2.DescribeInternetGatewaysOutput{}, nil
	}
	return m.describeInternetGatewaysFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) CreateInternetGateway(ctx context.Context, params *awsec2.CreateInternetGatewayInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateInternetGatewayOutput, error) {
	if m.createInternetGatewayFunc == nil {
		return &awsec2.CreateInternetGatewayOutput{}, nil
	}
	return m.createInternetGatewayFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) AttachInternetGateway(ctx context.Context, params *awsec2.AttachInternetGatewayInput, optFns ...func(*awsec2.Options)) (*awsec2.AttachInternetGatewayOutput, error) {
	if m.attachInternetGatewayFunc == nil {
		return &awsec2.AttachInternetGatewayOutput{}, nil
	}
	return m.attachInternetGatewayFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) DetachInternetGateway(ctx context.Context, params *awsec2.DetachInternetGatewayInput, optFns ...func(*awsec2.Options)) (*awsec2.DetachInternetGatewayOutput, error) {
	if m.detachInternetGatewayFunc == nil {
		return &awsec2.DetachInternetGatewayOutput{}, nil
	}
	return m.detachInternetGatewayFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) DeleteInternetGateway(ctx context.Context, params *awsec2.DeleteInternetGatewayInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteInternetGatewayOutput, error) {
	if m.deleteInternetGatewayFunc == nil {
		return &awsec2.DeleteInternetGatewayOutput{}, nil
	}
	return m.deleteInternetGatewayFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) DescribeAddresses(ctx context.Context, params *awsec2.DescribeAddressesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeAddressesOutput, error) {
	if m.describeAddressesFunc == nil {
		return &awsec2.DescribeAddressesOutput{}, nil
	}
	return m.describeAddressesFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) AllocateAddress(ctx context.Context, params *awsec2.AllocateAddressInput, optFns ...func(*awsec2.Options)) (*awsec2.AllocateAddressOutput, error) {
	if m.allocateAddressFunc == nil {
		return &awsec2.AllocateAddressOutput{}, nil
	}
	return m.allocateAddressFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) ReleaseAddress(ctx context.Context, params *awsec2.ReleaseAddressInput, optFns ...func(*awsec2.Options)) (*awsec2.ReleaseAddressOutput, error) {
	if m.releaseAddressFunc == nil {
		return &awsec2.ReleaseAddressOutput{}, nil
	}
	return m.releaseAddressFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) DescribeNatGateways(ctx context.Context, params *awsec2.DescribeNatGatewaysInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeNatGatewaysOutput, error) {
	if m.describeNatGatewaysFunc == nil {
		return &awsec2.DescribeNatGatewaysOutput{}, nil
	}
	return m.describeNatGatewaysFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) CreateNatGateway(ctx context.Context, params *awsec2.CreateNatGatewayInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateNatGatewayOutput, error) {
	if m.createNatGatewayFunc == nil {
		return &awsec2.CreateNatGatewayOutput{}, nil
	}
	return m.createNatGatewayFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) DeleteNatGateway(ctx context.Context, params *awsec2.DeleteNatGatewayInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteNatGatewayOutput, error) {
	if m.deleteNatGatewayFunc == nil {
		return &awsec2.DeleteNatGatewayOutput{}, nil
	}
	return m.deleteNatGatewayFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) DescribeRouteTables(ctx context.Context, params *awsec2.DescribeRouteTablesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeRouteTablesOutput, error) {
	if m.describeRouteTablesFunc == nil {
		return &awsec2.DescribeRouteTablesOutput{}, nil
	}
	return m.describeRouteTablesFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) CreateRouteTable(ctx context.Context, params *awsec2.CreateRouteTableInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateRouteTableOutput, error) {
	if m.createRouteTableFunc == nil {
		return &awsec2.CreateRouteTableOutput{}, nil
	}
	return m.createRouteTableFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) CreateRoute(ctx context.Context, params *awsec2.CreateRouteInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateRouteOutput, error) {
	if m.createRouteFunc == nil {
		return &awsec2.CreateRouteOutput{}, nil
	}
	return m.createRouteFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) ReplaceRoute(ctx context.Context, params *awsec2.ReplaceRouteInput, optFns ...func(*awsec2.Options)) (*awsec2.ReplaceRouteOutput, error) {
	if m.replaceRouteFunc == nil {
		return &awsec2.ReplaceRouteOutput{}, nil
	}
	return m.replaceRouteFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) AssociateRouteTable(ctx context.Context, params *awsec2.AssociateRouteTableInput, optFns ...func(*awsec2.Options)) (*awsec2.AssociateRouteTableOutput, error) {
	if m.associateRouteTableFunc == nil {
		return &awsec2.AssociateRouteTableOutput{}, nil
	}
	return m.associateRouteTableFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) ReplaceRouteTableAssociation(ctx context.Context, params *awsec2.ReplaceRouteTableAssociationInput, optFns ...func(*awsec2.Options)) (*awsec2.ReplaceRouteTableAssociationOutput, error) {
	if m.replaceRouteTableAssociationFunc == nil {
		return &awsec2.ReplaceRouteTableAssociationOutput{}, nil
	}
	return m.replaceRouteTableAssociationFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) DisassociateRouteTable(ctx context.Context, params *awsec2.DisassociateRouteTableInput, optFns ...func(*awsec2.Options)) (*awsec2.DisassociateRouteTableOutput, error) {
	if m.disassociateRouteTableFunc == nil {
		return &awsec2.DisassociateRouteTableOutput{}, nil
	}
	return m.disassociateRouteTableFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) DeleteRouteTable(ctx context.Context, params *awsec2.DeleteRouteTableInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteRouteTableOutput, error) {
	if m.deleteRouteTableFunc == nil {
		return &awsec2.DeleteRouteTableOutput{}, nil
	}
	return m.deleteRouteTableFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) DescribeSecurityGroups(ctx context.Context, params *awsec2.DescribeSecurityGroupsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSecurityGroupsOutput, error) {
	if m.describeSecurityGroupsFunc == nil {
		return &awsec2.DescribeSecurityGroupsOutput{}, nil
	}
	return m.describeSecurityGroupsFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) DescribeSecurityGroupRules(ctx context.Context, params *awsec2.DescribeSecurityGroupRulesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSecurityGroupRulesOutput, error) {
	if m.describeSecurityGroupRulesFunc == nil {
		return &awsec2.DescribeSecurityGroupRulesOutput{}, nil
	}
	return m.describeSecurityGroupRulesFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) CreateSecurityGroup(ctx context.Context, params *awsec2.CreateSecurityGroupInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateSecurityGroupOutput, error) {
	if m.createSecurityGroupFunc == nil {
		return &awsec2.CreateSecurityGroupOutput{}, nil
	}
	return m.createSecurityGroupFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) AuthorizeSecurityGroupIngress(ctx context.Context, params *awsec2.AuthorizeSecurityGroupIngressInput, optFns ...func(*awsec2.Options)) (*awsec2.AuthorizeSecurityGroupIngressOutput, error) {
	if m.authorizeSecurityGroupIngressFunc == nil {
		return &awsec2.AuthorizeSecurityGroupIngressOutput{}, nil
	}
	return m.authorizeSecurityGroupIngressFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) AuthorizeSecurityGroupEgress(ctx context.Context, params *awsec2.AuthorizeSecurityGroupEgressInput, optFns ...func(*awsec2.Options)) (*awsec2.AuthorizeSecurityGroupEgressOutput, error) {
	if m.authorizeSecurityGroupEgressFunc == nil {
		return &awsec2.AuthorizeSecurityGroupEgressOutput{}, nil
	}
	return m.authorizeSecurityGroupEgressFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) RevokeSecurityGroupIngress(ctx context.Context, params *awsec2.RevokeSecurityGroupIngressInput, optFns ...func(*awsec2.Options)) (*awsec2.RevokeSecurityGroupIngressOutput, error) {
	if m.revokeSecurityGroupIngressFunc == nil {
		return &awsec2.RevokeSecurityGroupIngressOutput{}, nil
	}
	return m.revokeSecurityGroupIngressFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) RevokeSecurityGroupEgress(ctx context.Context, params *awsec2.RevokeSecurityGroupEgressInput, optFns ...func(*awsec2.Options)) (*awsec2.RevokeSecurityGroupEgressOutput, error) {
	if m.revokeSecurityGroupEgressFunc == nil {
		return &awsec2.RevokeSecurityGroupEgressOutput{}, nil
	}
	return m.revokeSecurityGroupEgressFunc(ctx, params, optFns...)
}
func (m *mockVPCAPI) DeleteSecurityGroup(ctx context.Context, params *awsec2.DeleteSecurityGroupInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteSecurityGroupOutput, error) {
	if m.deleteSecurityGroupFunc == nil {
		return &awsec2.DeleteSecurityGroupOutput{}, nil
	}
	return m.deleteSecurityGroupFunc(ctx, params, optFns...)
}
