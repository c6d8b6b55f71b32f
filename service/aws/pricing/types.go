package awspricing

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/shopspring/decimal"
)

// PricingAPI is the subset of the Pricing client used here.
type PricingAPI interface {
	GetProducts(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error)
	DescribeServices(ctx context.Context, params *pricing.DescribeServicesInput, optFns ...func(*pricing.Options)) (*pricing.DescribeServicesOutput, error)
}

// Options selects which reserved offering is priced.
type Options struct {
	// Location is the region code of the priced SKU, e.g. eu-west-2.
	Location            string
	LeaseContractLength string
	PurchaseOption      string
	OfferingClass       string
	DatabaseEngine      string
	OperatingSystem     string
}

type service struct {
	client PricingAPI
	opts   Options
}

type PricingService interface {
	ReservedHourlyPrice(ctx context.Context, service model.ServiceName, instanceType string) (decimal.Decimal, bool, error)
	Ping(ctx context.Context) error
}

// priceListItem is one PriceList document of GetProducts.
type priceListItem struct {
	Product struct {
		Sku        string            `json:"sku"`
		Attributes map[string]string `json:"attributes"`
	} `json:"product"`
	Terms struct {
		Reserved map[string]reservedTerm `json:"Reserved"`
	} `json:"terms"`
}

type reservedTerm struct {
	OfferTermCode   string                    `json:"offerTermCode"`
	PriceDimensions map[string]priceDimension `json:"priceDimensions"`
	TermAttributes  struct {
		LeaseContractLength string `json:"LeaseContractLength"`
		OfferingClass       string `json:"OfferingClass"`
		PurchaseOption      string `json:"PurchaseOption"`
	} `json:"termAttributes"`
}

type priceDimension struct {
	Unit         string            `json:"unit"`
	PricePerUnit map[string]string `json:"pricePerUnit"`
}
