package awspricing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/elC0mpa/aws-rate-genie/service/aws/awserr"
	"github.com/shopspring/decimal"
)

const (
	formatVersion = "aws_v1"

	serviceCodeEC2 = "AmazonEC2"
	serviceCodeRDS = "AmazonRDS"
)

// leaseHours is the length of each reserved lease in hours, used to spread
// upfront fees over the term.
var leaseHours = map[string]int64{
	"1yr": 8760,
	"3yr": 26280,
}

func NewService(awsconfig aws.Config, opts Options) *service {
	client := pricing.NewFromConfig(awsconfig)
	return newService(client, opts)
}

func newService(client PricingAPI, opts Options) *service {
	return &service{
		client: client,
		opts:   opts,
	}
}

// ReservedHourlyPrice returns the effective hourly price of the configured
// reserved offering for instanceType. Upfront fees are amortized over the lease.
// found is false when no SKU matches.
func (s *service) ReservedHourlyPrice(ctx context.Context, svc model.ServiceName, instanceType string) (decimal.Decimal, bool, error) {
	input, err := s.productsInput(svc, instanceType)
	if err != nil {
		return decimal.Zero, false, err
	}

	var (
		best  decimal.Decimal
		found bool
	)

	paginator := pricing.NewGetProductsPaginator(s.client, input)
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return decimal.Zero, false, awserr.Classify("pricing", err)
		}

		for _, doc := range output.PriceList {
			price, ok, err := s.cheapestReservedPrice(doc)
			if err != nil {
				return decimal.Zero, false, fmt.Errorf("failed to decode price list for %s: %w", instanceType, err)
			}
			if ok && (!found || price.LessThan(best)) {
				best, found = price, true
			}
		}
	}

	return best, found, nil
}

// Ping checks that the Pricing API is reachable with the current credentials.
func (s *service) Ping(ctx context.Context) error {
	_, err := s.client.DescribeServices(ctx, &pricing.DescribeServicesInput{
		FormatVersion: aws.String(formatVersion),
		ServiceCode:   aws.String(serviceCodeEC2),
		MaxResults:    aws.Int32(1),
	})
	return awserr.Classify("pricing", err)
}

func (s *service) productsInput(svc model.ServiceName, instanceType string) (*pricing.GetProductsInput, error) {
	var (
		serviceCode string
		filters     []types.Filter
	)

	switch svc {
	case model.ServiceEC2:
		serviceCode = serviceCodeEC2
		filters = []types.Filter{
			termMatch("instanceType", instanceType),
			termMatch("regionCode", s.opts.Location),
			termMatch("tenancy", "Shared"),
			termMatch("operatingSystem", s.opts.OperatingSystem),
			termMatch("preInstalledSw", "NA"),
			termMatch("capacitystatus", "Used"),
			termMatch("termType", "Reserved"),
		}
	case model.ServiceRDS:
		serviceCode = serviceCodeRDS
		filters = []types.Filter{
			termMatch("instanceType", instanceType),
			termMatch("regionCode", s.opts.Location),
			termMatch("databaseEngine", s.opts.DatabaseEngine),
			termMatch("deploymentOption", "Single-AZ"),
			termMatch("termType", "Reserved"),
		}
	default:
		return nil, fmt.Errorf("unsupported service %q", svc)
	}

	return &pricing.GetProductsInput{
		ServiceCode:   aws.String(serviceCode),
		FormatVersion: aws.String(formatVersion),
		Filters:       filters,
		MaxResults:    aws.Int32(100),
	}, nil
}

func termMatch(field, value string) types.Filter {
	return types.Filter{
		Field: aws.String(field),
		Type:  types.FilterTypeTermMatch,
		Value: aws.String(value),
	}
}

func (s *service) cheapestReservedPrice(doc string) (decimal.Decimal, bool, error) {
	var item priceListItem
	if err := json.Unmarshal([]byte(doc), &item); err != nil {
		return decimal.Zero, false, err
	}

	hours, ok := leaseHours[s.opts.LeaseContractLength]
	if !ok {
		return decimal.Zero, false, fmt.Errorf("unknown lease contract length %q", s.opts.LeaseContractLength)
	}

	var (
		best  decimal.Decimal
		found bool
	)
	for _, term := range item.Terms.Reserved {
		if !s.matchesOffering(term) {
			continue
		}
		price, ok := effectiveHourly(term, hours)
		if !ok {
			continue
		}
		if !found || price.LessThan(best) {
			best, found = price, true
		}
	}

	return best, found, nil
}

func (s *service) matchesOffering(term reservedTerm) bool {
	attrs := term.TermAttributes
	return attrs.LeaseContractLength == s.opts.LeaseContractLength &&
		strings.EqualFold(attrs.PurchaseOption, s.opts.PurchaseOption) &&
		(attrs.OfferingClass == "" || strings.EqualFold(attrs.OfferingClass, s.opts.OfferingClass))
}

// effectiveHourly sums the hourly rate and the upfront fee spread over the lease.
// A term without an hourly dimension does not qualify.
func effectiveHourly(term reservedTerm, hours int64) (decimal.Decimal, bool) {
	var (
		hourly  decimal.Decimal
		upfront decimal.Decimal
		hasHrs  bool
	)

	for _, dim := range term.PriceDimensions {
		usd, err := decimal.NewFromString(dim.PricePerUnit["USD"])
		if err != nil || usd.IsNegative() {
			continue
		}
		switch dim.Unit {
		case "Hrs":
			hourly = hourly.Add(usd)
			hasHrs = true
		case "Quantity":
			upfront = upfront.Add(usd)
		}
	}

	if !hasHrs {
		return decimal.Zero, false
	}

	price := hourly.Add(upfront.Div(decimal.NewFromInt(hours)))
	if !price.IsPositive() {
		return decimal.Zero, false
	}
	return price, true
}
