package gateway

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/younsl/spotbid/internal/models"
	"github.com/younsl/spotbid/pkg/diag"
	"github.com/younsl/spotbid/pkg/utils"
)

// EC2Gateway implements Gateway against the AWS EC2 API
type EC2Gateway struct {
	client  *ec2.Client
	region  string
	product string
	rec     *diag.Recorder
}

// NewEC2Gateway creates a gateway for the given region. The product
// description scopes spot price history to one OS/product line.
func NewEC2Gateway(region, product string, rec *diag.Recorder) (*EC2Gateway, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	return &EC2Gateway{
		client:  ec2.NewFromConfig(cfg),
		region:  region,
		product: product,
		rec:     rec,
	}, nil
}

// ListImages returns every image owned by the calling account
func (g *EC2Gateway) ListImages(ctx context.Context) ([]models.Image, error) {
	const op = "DescribeImages"
	g.rec.Call(op, map[string]string{"owners": "self"})

	result, err := g.client.DescribeImages(ctx, &ec2.DescribeImagesInput{
		Owners: []string{"self"},
	})
	g.rec.Result(op, result, err)
	if err != nil {
		return nil, opErr(op, err)
	}

	images := []models.Image{}
	for _, img := range result.Images {
		created, err := time.Parse(time.RFC3339, utils.SafeDeref(img.CreationDate))
		if err != nil {
			return nil, opErr(op, fmt.Errorf("bad creation date for %s: %w", utils.SafeDeref(img.ImageId), err))
		}
		images = append(images, models.Image{
			ImageID:     utils.SafeDeref(img.ImageId),
			Name:        utils.SafeDeref(img.Name),
			Description: utils.SafeDeref(img.Description),
			CreatedAt:   created,
		})
	}
	return images, nil
}

// ListKeyPairs returns every key pair registered in the region
func (g *EC2Gateway) ListKeyPairs(ctx context.Context) ([]models.KeyPair, error) {
	const op = "DescribeKeyPairs"
	g.rec.Call(op, nil)

	result, err := g.client.DescribeKeyPairs(ctx, &ec2.DescribeKeyPairsInput{})
	g.rec.Result(op, result, err)
	if err != nil {
		return nil, opErr(op, err)
	}

	pairs := []models.KeyPair{}
	for _, kp := range result.KeyPairs {
		pairs = append(pairs, models.KeyPair{
			Name:        utils.SafeDeref(kp.KeyName),
			Fingerprint: utils.SafeDeref(kp.KeyFingerprint),
		})
	}
	return pairs, nil
}

// ListSecurityGroups returns every security group in the region
func (g *EC2Gateway) ListSecurityGroups(ctx context.Context) ([]models.SecurityGroup, error) {
	const op = "DescribeSecurityGroups"
	g.rec.Call(op, nil)

	result, err := g.client.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{})
	g.rec.Result(op, result, err)
	if err != nil {
		return nil, opErr(op, err)
	}

	groups := []models.SecurityGroup{}
	for _, sg := range result.SecurityGroups {
		groups = append(groups, models.SecurityGroup{
			GroupID:     utils.SafeDeref(sg.GroupId),
			Name:        utils.SafeDeref(sg.GroupName),
			Description: utils.SafeDeref(sg.Description),
		})
	}
	return groups, nil
}

// SpotPriceHistory returns every spot price sample for the given
// types over the trailing window
func (g *EC2Gateway) SpotPriceHistory(ctx context.Context, instanceTypes []string, window time.Duration) ([]models.PriceSample, error) {
	const op = "DescribeSpotPriceHistory"
	g.rec.Call(op, map[string]interface{}{
		"instanceTypes": instanceTypes,
		"product":       g.product,
		"window":        window.String(),
	})

	sdkTypes := make([]types.InstanceType, 0, len(instanceTypes))
	for _, t := range instanceTypes {
		sdkTypes = append(sdkTypes, types.InstanceType(t))
	}

	now := time.Now()
	input := &ec2.DescribeSpotPriceHistoryInput{
		InstanceTypes:       sdkTypes,
		ProductDescriptions: []string{g.product},
		StartTime:           aws.Time(now.Add(-window)),
		EndTime:             aws.Time(now),
	}

	samples := []models.PriceSample{}
	paginator := ec2.NewDescribeSpotPriceHistoryPaginator(g.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		g.rec.Result(op, page, err)
		if err != nil {
			return nil, opErr(op, err)
		}

		for _, p := range page.SpotPriceHistory {
			price, err := strconv.ParseFloat(utils.SafeDeref(p.SpotPrice), 64)
			if err != nil {
				return nil, opErr(op, fmt.Errorf("bad spot price %q: %w", utils.SafeDeref(p.SpotPrice), err))
			}
			sample := models.PriceSample{
				InstanceType: string(p.InstanceType),
				Zone:         utils.SafeDeref(p.AvailabilityZone),
				Price:        price,
			}
			if p.Timestamp != nil {
				sample.Timestamp = *p.Timestamp
			}
			samples = append(samples, sample)
		}
	}
	return samples, nil
}

// RequestSpotInstance submits one one-time spot request for the fully
// resolved launch spec and returns the provider's receipt
func (g *EC2Gateway) RequestSpotInstance(ctx context.Context, spec models.LaunchSpec) (models.SpotReceipt, error) {
	const op = "RequestSpotInstances"
	g.rec.Call(op, spec)

	input := &ec2.RequestSpotInstancesInput{
		InstanceCount: aws.Int32(1),
		Type:          types.SpotInstanceTypeOneTime,
		SpotPrice:     aws.String(strconv.FormatFloat(spec.BidPrice, 'f', -1, 64)),
		LaunchSpecification: &types.RequestSpotLaunchSpecification{
			ImageId:          aws.String(spec.ImageID),
			KeyName:          aws.String(spec.KeyName),
			SecurityGroupIds: []string{spec.GroupID},
			InstanceType:     types.InstanceType(spec.InstanceType),
			Placement: &types.SpotPlacement{
				AvailabilityZone: aws.String(spec.Zone),
			},
		},
	}

	result, err := g.client.RequestSpotInstances(ctx, input)
	g.rec.Result(op, result, err)
	if err != nil {
		return models.SpotReceipt{}, opErr(op, err)
	}
	if len(result.SpotInstanceRequests) == 0 {
		return models.SpotReceipt{}, opErr(op, fmt.Errorf("empty response"))
	}

	req := result.SpotInstanceRequests[0]
	receipt := models.SpotReceipt{
		RequestID: utils.SafeDeref(req.SpotInstanceRequestId),
		State:     string(req.State),
	}
	if req.Status != nil {
		receipt.StatusCode = utils.SafeDeref(req.Status.Code)
		receipt.StatusMessage = utils.SafeDeref(req.Status.Message)
	}
	return receipt, nil
}
