package awspricing

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/smithy-go"
	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/elC0mpa/aws-rate-genie/service/costengine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePricing struct {
	pages       map[string]*pricing.GetProductsOutput
	err         error
	inputs      []*pricing.GetProductsInput
	describeErr error
}

func (f *fakePricing) GetProducts(_ context.Context, params *pricing.GetProductsInput, _ ...func(*pricing.Options)) (*pricing.GetProductsOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return f.pages[aws.ToString(params.NextToken)], nil
}

func (f *fakePricing) DescribeServices(_ context.Context, _ *pricing.DescribeServicesInput, _ ...func(*pricing.Options)) (*pricing.DescribeServicesOutput, error) {
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	return &pricing.DescribeServicesOutput{}, nil
}

var defaultOptions = Options{
	Location:            "eu-west-2",
	LeaseContractLength: "1yr",
	PurchaseOption:      "No Upfront",
	OfferingClass:       "standard",
	DatabaseEngine:      "MySQL",
	OperatingSystem:     "Linux",
}

const noUpfrontDoc = `{
  "product": {"sku": "ABC", "attributes": {"instanceType": "db.r5.large"}},
  "terms": {
    "Reserved": {
      "ABC.T1": {
        "offerTermCode": "T1",
        "priceDimensions": {
          "ABC.T1.R1": {"unit": "Hrs", "pricePerUnit": {"USD": "0.1500000000"}}
        },
        "termAttributes": {"LeaseContractLength": "1yr", "OfferingClass": "standard", "PurchaseOption": "No Upfront"}
      },
      "ABC.T2": {
        "offerTermCode": "T2",
        "priceDimensions": {
          "ABC.T2.R1": {"unit": "Hrs", "pricePerUnit": {"USD": "0.0900000000"}}
        },
        "termAttributes": {"LeaseContractLength": "3yr", "OfferingClass": "standard", "PurchaseOption": "No Upfront"}
      },
      "ABC.T3": {
        "offerTermCode": "T3",
        "priceDimensions": {
          "ABC.T3.R1": {"unit": "Hrs", "pricePerUnit": {"USD": "0.0500000000"}},
          "ABC.T3.R2": {"unit": "Quantity", "pricePerUnit": {"USD": "876"}}
        },
        "termAttributes": {"LeaseContractLength": "1yr", "OfferingClass": "standard", "PurchaseOption": "Partial Upfront"}
      }
    }
  }
}`

const cheaperDoc = `{
  "product": {"sku": "DEF"},
  "terms": {
    "Reserved": {
      "DEF.T1": {
        "priceDimensions": {
          "DEF.T1.R1": {"unit": "Hrs", "pricePerUnit": {"USD": "0.1200000000"}}
        },
        "termAttributes": {"LeaseContractLength": "1yr", "OfferingClass": "standard", "PurchaseOption": "No Upfront"}
      }
    }
  }
}`

func TestReservedHourlyPrice(t *testing.T) {
	fake := &fakePricing{pages: map[string]*pricing.GetProductsOutput{
		"":     {PriceList: []string{noUpfrontDoc}, NextToken: aws.String("next")},
		"next": {PriceList: []string{cheaperDoc}},
	}}
	svc := newService(fake, defaultOptions)

	price, found, err := svc.ReservedHourlyPrice(context.Background(), model.ServiceRDS, "db.r5.large")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "0.12", price.String())

	require.Len(t, fake.inputs, 2)
	assert.Equal(t, "AmazonRDS", aws.ToString(fake.inputs[0].ServiceCode))

	fields := map[string]string{}
	for _, f := range fake.inputs[0].Filters {
		fields[aws.ToString(f.Field)] = aws.ToString(f.Value)
	}
	assert.Equal(t, "db.r5.large", fields["instanceType"])
	assert.Equal(t, "eu-west-2", fields["regionCode"])
	assert.Equal(t, "MySQL", fields["databaseEngine"])
	assert.Equal(t, "Single-AZ", fields["deploymentOption"])
	assert.Equal(t, "Reserved", fields["termType"])
}

func TestReservedHourlyPriceAmortizesUpfront(t *testing.T) {
	opts := defaultOptions
	opts.PurchaseOption = "Partial Upfront"
	fake := &fakePricing{pages: map[string]*pricing.GetProductsOutput{
		"": {PriceList: []string{noUpfrontDoc}},
	}}

	price, found, err := newService(fake, opts).ReservedHourlyPrice(context.Background(), model.ServiceRDS, "db.r5.large")
	require.NoError(t, err)
	assert.True(t, found)
	// 0.05 per hour plus 876 spread over 8760 hours.
	assert.Equal(t, "0.15", price.String())
}

func TestReservedHourlyPriceEC2Filters(t *testing.T) {
	fake := &fakePricing{pages: map[string]*pricing.GetProductsOutput{"": {}}}

	_, found, err := newService(fake, defaultOptions).ReservedHourlyPrice(context.Background(), model.ServiceEC2, "m5.large")
	require.NoError(t, err)
	assert.False(t, found)

	fields := map[string]string{}
	for _, f := range fake.inputs[0].Filters {
		fields[aws.ToString(f.Field)] = aws.ToString(f.Value)
	}
	assert.Equal(t, "AmazonEC2", aws.ToString(fake.inputs[0].ServiceCode))
	assert.Equal(t, "Linux", fields["operatingSystem"])
	assert.Equal(t, "Shared", fields["tenancy"])
	assert.Equal(t, "NA", fields["preInstalledSw"])
	assert.Equal(t, "Used", fields["capacitystatus"])
}

func TestReservedHourlyPriceNoMatchingTerm(t *testing.T) {
	opts := defaultOptions
	opts.PurchaseOption = "All Upfront"
	fake := &fakePricing{pages: map[string]*pricing.GetProductsOutput{
		"": {PriceList: []string{noUpfrontDoc, cheaperDoc}},
	}}

	_, found, err := newService(fake, opts).ReservedHourlyPrice(context.Background(), model.ServiceRDS, "db.r5.large")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestReservedHourlyPriceErrors(t *testing.T) {
	t.Run("upstream failure", func(t *testing.T) {
		fake := &fakePricing{err: &smithy.GenericAPIError{Code: "ThrottlingException"}}

		_, _, err := newService(fake, defaultOptions).ReservedHourlyPrice(context.Background(), model.ServiceEC2, "m5.large")
		require.Error(t, err)
		assert.ErrorIs(t, err, costengine.ErrUpstreamUnavailable)
	})

	t.Run("bad document", func(t *testing.T) {
		fake := &fakePricing{pages: map[string]*pricing.GetProductsOutput{"": {PriceList: []string{"{not json"}}}}

		_, _, err := newService(fake, defaultOptions).ReservedHourlyPrice(context.Background(), model.ServiceEC2, "m5.large")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode price list")
	})

	t.Run("unsupported service", func(t *testing.T) {
		_, _, err := newService(&fakePricing{}, defaultOptions).ReservedHourlyPrice(context.Background(), "S3", "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported service")
	})
}

func TestPing(t *testing.T) {
	assert.NoError(t, newService(&fakePricing{}, defaultOptions).Ping(context.Background()))

	err := newService(&fakePricing{describeErr: errors.New("dial tcp: i/o timeout")}, defaultOptions).Ping(context.Background())
	assert.ErrorIs(t, err, costengine.ErrUpstreamUnavailable)
}

func TestServiceSatisfiesPriceLookup(t *testing.T) {
	var _ costengine.PriceLookup = newService(&fakePricing{}, defaultOptions)
}
