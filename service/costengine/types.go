package costengine

import (
	"context"

	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/go-logr/logr"
	"github.com/shopspring/decimal"
)

// HoursPerMonth is the average number of hours in a month (8760 / 12).
const HoursPerMonth = 730

// PriceLookup resolves the reserved hourly price of an instance type.
// found is false when the catalog has no matching reserved SKU.
type PriceLookup interface {
	ReservedHourlyPrice(ctx context.Context, service model.ServiceName, instanceType string) (price decimal.Decimal, found bool, err error)
}

// PriceLookupFunc adapts a function to PriceLookup.
type PriceLookupFunc func(ctx context.Context, service model.ServiceName, instanceType string) (decimal.Decimal, bool, error)

func (f PriceLookupFunc) ReservedHourlyPrice(ctx context.Context, service model.ServiceName, instanceType string) (decimal.Decimal, bool, error) {
	return f(ctx, service, instanceType)
}

type service struct {
	log         logr.Logger
	concurrency int
}

type CostEngine interface {
	RankTopCosts(records []model.CostRecord, topN int) ([]model.CostRecord, error)
	EnrichWithReservedSavings(ctx context.Context, records []model.CostRecord, lookup PriceLookup, periodHours decimal.Decimal) ([]model.RankedCost, error)
	OptimalHourlyReservation(usage []model.UsageRecord, discountRate decimal.Decimal) (decimal.Decimal, error)
	Recommend(usage []model.UsageRecord, discountRate decimal.Decimal) (*model.ReservationRecommendation, error)
}
