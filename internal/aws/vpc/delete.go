package vpc

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"

	"vidizone.dev/netstack/internal/aws/awserr"
)

// Deletes treat a resource that is already gone as success.

func gone(err error) error {
	if awserr.IsNotFound(err) {
		return nil
	}
	return err
}

// DeleteNATGateway deletes the gateway and waits until EC2 reports it deleted,
// which also releases its Elastic IP association.
func (c *Client) DeleteNATGateway(ctx context.Context, natID string) error {
	_, err := c.api.DeleteNatGateway(ctx, &awsec2.DeleteNatGatewayInput{NatGatewayId: aws.String(natID)})
	if awserr.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("DeleteNatGateway %s: %w", natID, err)
	}

	waiter := awsec2.NewNatGatewayDeletedWaiter(c.api, func(o *awsec2.NatGatewayDeletedWaiterOptions) {
		if c.waitDelay > 0 {
			o.MinDelay, o.MaxDelay = c.waitDelay, c.waitDelay
		}
	})
	if err := waiter.Wait(ctx, &awsec2.DescribeNatGatewaysInput{NatGatewayIds: []string{natID}}, c.waitTimeout); err != nil {
		return fmt.Errorf("waiting for NAT gateway %s deletion: %w", natID, err)
	}
	return nil
}

func (c *Client) ReleaseAddress(ctx context.Context, allocationID string) error {
	err := c.retryWhile(ctx, func() error {
		_, err := c.api.ReleaseAddress(ctx, &awsec2.ReleaseAddressInput{AllocationId: aws.String(allocationID)})
		return gone(err)
	}, "InvalidIPAddress.InUse", "AuthFailure")
	if err != nil {
		return fmt.Errorf("ReleaseAddress %s: %w", allocationID, err)
	}
	return nil
}

// DeleteRouteTable removes the table's subnet associations and then the table.
func (c *Client) DeleteRouteTable(ctx context.Context, rt RouteTableInfo) error {
	for _, a := range rt.Associations {
		_, err := c.api.DisassociateRouteTable(ctx, &awsec2.DisassociateRouteTableInput{
			AssociationId: aws.String(a.AssociationID),
		})
		if err = gone(err); err != nil {
			return fmt.Errorf("DisassociateRouteTable %s: %w", a.AssociationID, err)
		}
	}

	err := c.retryWhile(ctx, func() error {
		_, err := c.api.DeleteRouteTable(ctx, &awsec2.DeleteRouteTableInput{RouteTableId: aws.String(rt.RouteTableID)})
		return gone(err)
	}, "DependencyViolation")
	if err != nil {
		return fmt.Errorf("DeleteRouteTable %s: %w", rt.RouteTableID, err)
	}
	return nil
}

// DeleteSecurityGroup retries while terminating instances still hold the group.
func (c *Client) DeleteSecurityGroup(ctx context.Context, groupID string) error {
	err := c.retryWhile(ctx, func() error {
		_, err := c.api.DeleteSecurityGroup(ctx, &awsec2.DeleteSecurityGroupInput{GroupId: aws.String(groupID)})
		return gone(err)
	}, "DependencyViolation")
	if err != nil {
		return fmt.Errorf("DeleteSecurityGroup %s: %w", groupID, err)
	}
	return nil
}

func (c *Client) DeleteInternetGateway(ctx context.Context, igwID, vpcID string) error {
	err := c.retryWhile(ctx, func() error {
		_, err := c.api.DetachInternetGateway(ctx, &awsec2.DetachInternetGatewayInput{
			InternetGatewayId: aws.String(igwID),
			VpcId:             aws.String(vpcID),
		})
		if awserr.Is(err, "Gateway.NotAttached") {
			return nil
		}
		return gone(err)
	}, "DependencyViolation")
	if err != nil {
		return fmt.Errorf("DetachInternetGateway %s: %w", igwID, err)
	}

	_, err = c.api.DeleteInternetGateway(ctx, &awsec2.DeleteInternetGatewayInput{InternetGatewayId: aws.String(igwID)})
	if err = gone(err); err != nil {
		return fmt.Errorf("DeleteInternetGateway %s: %w", igwID, err)
	}
	return nil
}

func (c *Client) DeleteSubnet(ctx context.Context, subnetID string) error {
	err := c.retryWhile(ctx, func() error {
		_, err := c.api.DeleteSubnet(ctx, &awsec2.DeleteSubnetInput{SubnetId: aws.String(subnetID)})
		return gone(err)
	}, "DependencyViolation")
	if err != nil {
		return fmt.Errorf("DeleteSubnet %s: %w", subnetID, err)
	}
	return nil
}

func (c *Client) DeleteVPC(ctx context.Context, vpcID string) error {
	err := c.retryWhile(ctx, func() error {
		_, err := c.api.DeleteVpc(ctx, &awsec2.DeleteVpcInput{VpcId: aws.String(vpcID)})
		return gone(err)
	}, "DependencyViolation")
	if err != nil {
		return fmt.Errorf("DeleteVpc %s: %w", vpcID, err)
	}
	return nil
}
