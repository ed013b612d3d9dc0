// Package pricing looks up on-demand prices so the offer menu can
// show what the spot bid is being compared against. Lookups are
// best-effort: a failed lookup hides the comparison column, it never
// fails the run.
package pricing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/briandowns/spinner"

	"github.com/younsl/spotbid/pkg/utils"
)

// The Pricing API is only served from these regions.
const pricingRegion = "us-east-1"

// Client queries the AWS Pricing API for on-demand instance prices,
// caching per instance type for the lifetime of the run.
type Client struct {
	api    *pricing.Client
	region string

	mu    sync.RWMutex
	cache map[string]float64
}

// NewClient creates a pricing client scoped to the target region.
// region is the region instances will launch in, not the API region.
func NewClient(region string) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(pricingRegion))
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config for pricing API: %w", err)
	}

	return &Client{
		api:    pricing.NewFromConfig(cfg),
		region: region,
		cache:  make(map[string]float64),
	}, nil
}

// OnDemandPrice returns the hourly on-demand price for a Linux
// shared-tenancy instance of the given type
func (c *Client) OnDemandPrice(ctx context.Context, instanceType string) (float64, error) {
	c.mu.RLock()
	if price, ok := c.cache[instanceType]; ok {
		c.mu.RUnlock()
		return price, nil
	}
	c.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filters := []types.Filter{
		{Type: types.FilterTypeTermMatch, Field: aws.String("instanceType"), Value: aws.String(instanceType)},
		{Type: types.FilterTypeTermMatch, Field: aws.String("location"), Value: aws.String(utils.GetRegionDescriptiveName(c.region))},
		{Type: types.FilterTypeTermMatch, Field: aws.String("operatingSystem"), Value: aws.String("Linux")},
		{Type: types.FilterTypeTermMatch, Field: aws.String("tenancy"), Value: aws.String("Shared")},
		{Type: types.FilterTypeTermMatch, Field: aws.String("preInstalledSw"), Value: aws.String("NA")},
		{Type: types.FilterTypeTermMatch, Field: aws.String("capacitystatus"), Value: aws.String("Used")},
	}

	resp, err := c.api.GetProducts(ctx, &pricing.GetProductsInput{
		ServiceCode: aws.String("AmazonEC2"),
		Filters:     filters,
		MaxResults:  aws.Int32(1),
	})
	if err != nil {
		return 0, fmt.Errorf("error calling AWS Pricing API: %w", err)
	}
	if len(resp.PriceList) == 0 {
		return 0, fmt.Errorf("no pricing found for %s in region %s", instanceType, c.region)
	}

	price, err := ExtractOnDemandPrice(resp.PriceList[0])
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.cache[instanceType] = price
	c.mu.Unlock()
	return price, nil
}

// OnDemandPrices fetches prices for every given type, skipping types
// that fail to price. A nil receiver returns an empty map, so callers
// in replay mode need no special casing.
func (c *Client) OnDemandPrices(ctx context.Context, instanceTypes []string) map[string]float64 {
	prices := make(map[string]float64)
	if c == nil {
		return prices
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Retrieving on-demand pricing information"
	s.Color("green")
	s.Start()
	defer s.Stop()

	for _, t := range instanceTypes {
		price, err := c.OnDemandPrice(ctx, t)
		if err != nil {
			continue
		}
		prices[t] = price
	}
	return prices
}
