package costengine

import (
	"context"
	"fmt"
	"sort"

	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/go-logr/logr"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// NewService returns a CostEngine. concurrency bounds the number of pricing
// lookups in flight during enrichment; values below 1 mean sequential.
func NewService(log logr.Logger, concurrency int) *service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &service{
		log:         log.WithName("costengine"),
		concurrency: concurrency,
	}
}

// RankTopCosts orders records by on-demand cost, highest first, and keeps the
// first topN. Equal costs keep their input order. The input slice is not modified.
func (s *service) RankTopCosts(records []model.CostRecord, topN int) ([]model.CostRecord, error) {
	return RankTopCosts(records, topN)
}

func RankTopCosts(records []model.CostRecord, topN int) ([]model.CostRecord, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}
	if topN <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopN, topN)
	}

	sorted := make([]model.CostRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OnDemandMonthlyCost.GreaterThan(sorted[j].OnDemandMonthlyCost)
	})

	if topN < len(sorted) {
		sorted = sorted[:topN]
	}

	return sorted, nil
}

type lookupKey struct {
	service      model.ServiceName
	instanceType string
}

type lookupResult struct {
	price decimal.Decimal
	found bool
	err   error
}

// EnrichWithReservedSavings attaches the reserved price of every record's
// instance type. The hourly reserved price is multiplied by periodHours to get
// a cost comparable with the record's on-demand figure.
//
// The catalog is asked once per distinct (service, instance type). A failed
// lookup degrades that row to "no reserved price" and is flagged on the row;
// it does not fail the call. Output order matches input order.
func (s *service) EnrichWithReservedSavings(ctx context.Context, records []model.CostRecord, lookup PriceLookup, periodHours decimal.Decimal) ([]model.RankedCost, error) {
	if !periodHours.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidPeriodHours, periodHours)
	}

	keys := make([]lookupKey, 0, len(records))
	index := make(map[lookupKey]int, len(records))
	for _, r := range records {
		k := lookupKey{service: r.Service, instanceType: r.InstanceType}
		if _, ok := index[k]; ok {
			continue
		}
		index[k] = len(keys)
		keys = append(keys, k)
	}

	results := make([]lookupResult, len(keys))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, k := range keys {
		g.Go(func() error {
			price, found, err := lookup.ReservedHourlyPrice(ctx, k.service, k.instanceType)
			results[i] = lookupResult{price: price, found: found, err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	enriched := make([]model.RankedCost, 0, len(records))
	for _, r := range records {
		res := results[index[lookupKey{service: r.Service, instanceType: r.InstanceType}]]

		reserved := model.ReservedPrice{
			InstanceType:     r.InstanceType,
			PercentageSaving: decimal.Zero,
		}

		switch {
		case res.err != nil:
			s.log.Error(fmt.Errorf("%w: %w", ErrLookupFailure, res.err),
				"treating instance type as having no reserved price",
				"service", r.Service,
				"instanceType", r.InstanceType)
			reserved.LookupFailed = true
		case res.found && res.price.IsPositive():
			hourly := res.price
			equivalent := hourly.Mul(periodHours)
			reserved.HourlyPrice = &hourly
			reserved.ReservedEquivalentCost = &equivalent
			reserved.PercentageSaving = PercentageSaving(r.OnDemandMonthlyCost, equivalent)
		default:
			s.log.V(1).Info("no reserved price found", "service", r.Service, "instanceType", r.InstanceType)
		}

		enriched = append(enriched, model.RankedCost{CostRecord: r, Reserved: reserved})
	}

	return enriched, nil
}

// PercentageSaving returns (onDemand - reserved) / onDemand as a fraction, or
// zero when onDemand is not positive. A reserved cost above the on-demand
// cost gives a negative saving.
func PercentageSaving(onDemand, reserved decimal.Decimal) decimal.Decimal {
	if !onDemand.IsPositive() {
		return decimal.Zero
	}
	return onDemand.Sub(reserved).Div(onDemand)
}

// OptimalHourlyReservation returns the flat hourly reservation price that
// matches the average on-demand spend discounted by discountRate.
func (s *service) OptimalHourlyReservation(usage []model.UsageRecord, discountRate decimal.Decimal) (decimal.Decimal, error) {
	return OptimalHourlyReservation(usage, discountRate)
}

func OptimalHourlyReservation(usage []model.UsageRecord, discountRate decimal.Decimal) (decimal.Decimal, error) {
	if len(usage) == 0 {
		return decimal.Zero, ErrEmptyInput
	}
	if err := validateDiscountRate(discountRate); err != nil {
		return decimal.Zero, err
	}

	return averageOnDemand(usage).Mul(decimal.NewFromInt(1).Sub(discountRate)), nil
}

// Recommend runs OptimalHourlyReservation and returns it with the usage
// summary it was derived from.
func (s *service) Recommend(usage []model.UsageRecord, discountRate decimal.Decimal) (*model.ReservationRecommendation, error) {
	optimal, err := OptimalHourlyReservation(usage, discountRate)
	if err != nil {
		return nil, err
	}

	unused := decimal.Zero
	for _, u := range usage {
		unused = unused.Add(u.UnusedReservedCost)
	}

	return &model.ReservationRecommendation{
		Hours:               len(usage),
		AverageOnDemand:     averageOnDemand(usage),
		TotalUnusedReserved: unused,
		DiscountRate:        discountRate,
		OptimalHourlyPrice:  optimal,
	}, nil
}

func averageOnDemand(usage []model.UsageRecord) decimal.Decimal {
	sum := decimal.Zero
	for _, u := range usage {
		sum = sum.Add(u.OnDemandCost)
	}
	return sum.Div(decimal.NewFromInt(int64(len(usage))))
}

func validateDiscountRate(rate decimal.Decimal) error {
	if !rate.IsPositive() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: got %s", ErrInvalidDiscountRate, rate)
	}
	return nil
}
