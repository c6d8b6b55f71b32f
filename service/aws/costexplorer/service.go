package awscostexplorer

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/elC0mpa/aws-rate-genie/service/aws/awserr"
	"github.com/shopspring/decimal"
)

const (
	costsAggregation  = "UnblendedCost"
	dateLayout        = "2006-01-02"
	noInstanceType    = "NoInstanceType"
	onDemandInstances = "On Demand Instances"
)

// billingServiceNames maps model services to their Cost Explorer SERVICE dimension value.
var billingServiceNames = map[model.ServiceName]string{
	model.ServiceRDS: "Amazon Relational Database Service",
	model.ServiceEC2: "Amazon Elastic Compute Cloud - Compute",
}

func NewService(awsconfig aws.Config) *service {
	client := costexplorer.NewFromConfig(awsconfig)
	return newService(client, time.Now)
}

func newService(client CostExplorerAPI, now func() time.Time) *service {
	return &service{
		client: client,
		now:    now,
	}
}

// GetInstanceCosts returns last month's on-demand spend per (service, instance type).
// Rows without an instance type or with a non-positive amount are dropped and
// repeated keys are summed, so every record is unique within the result.
func (s *service) GetInstanceCosts(ctx context.Context, services []model.ServiceName) (*model.InstanceCosts, error) {
	if len(services) == 0 {
		return nil, fmt.Errorf("no services to query")
	}

	serviceValues := make([]string, 0, len(services))
	for _, svc := range services {
		name, ok := billingServiceNames[svc]
		if !ok {
			return nil, fmt.Errorf("unsupported service %q", svc)
		}
		serviceValues = append(serviceValues, name)
	}

	period := s.lastMonth()
	input := &costexplorer.GetCostAndUsageInput{
		Granularity: types.GranularityMonthly,
		TimePeriod:  period,
		Metrics:     []string{costsAggregation},
		GroupBy: []types.GroupDefinition{
			{
				Key:  aws.String("SERVICE"),
				Type: types.GroupDefinitionTypeDimension,
			},
			{
				Key:  aws.String("INSTANCE_TYPE"),
				Type: types.GroupDefinitionTypeDimension,
			},
		},
		Filter: &types.Expression{
			And: []types.Expression{
				{
					Dimensions: &types.DimensionValues{
						Key:    types.DimensionService,
						Values: serviceValues,
					},
				},
				{
					Dimensions: &types.DimensionValues{
						Key:    types.DimensionPurchaseType,
						Values: []string{onDemandInstances},
					},
				},
			},
		},
	}

	type recordKey struct {
		service      model.ServiceName
		instanceType string
	}

	var records []model.CostRecord
	index := map[recordKey]int{}

	for {
		output, err := s.client.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, awserr.Classify("billing", err)
		}

		for _, result := range output.ResultsByTime {
			for _, g := range result.Groups {
				record, ok := toCostRecord(g)
				if !ok {
					continue
				}
				key := recordKey{service: record.Service, instanceType: record.InstanceType}
				if i, seen := index[key]; seen {
					records[i].OnDemandMonthlyCost = records[i].OnDemandMonthlyCost.Add(record.OnDemandMonthlyCost)
					continue
				}
				index[key] = len(records)
				records = append(records, record)
			}
		}

		if aws.ToString(output.NextPageToken) == "" {
			break
		}
		input.NextPageToken = output.NextPageToken
	}

	return &model.InstanceCosts{
		Period: model.DateInterval{
			Start: period.Start,
			End:   period.End,
		},
		Records: records,
	}, nil
}

func toCostRecord(g types.Group) (model.CostRecord, bool) {
	if len(g.Keys) < 2 {
		return model.CostRecord{}, false
	}

	svc, ok := serviceFromBillingName(g.Keys[0])
	if !ok {
		return model.CostRecord{}, false
	}
	instanceType := g.Keys[1]
	if instanceType == "" || instanceType == noInstanceType {
		return model.CostRecord{}, false
	}

	amount, ok := metricAmount(g.Metrics)
	if !ok || !amount.IsPositive() {
		return model.CostRecord{}, false
	}

	return model.CostRecord{
		Service:             svc,
		InstanceType:        instanceType,
		OnDemandMonthlyCost: amount,
	}, true
}

func serviceFromBillingName(name string) (model.ServiceName, bool) {
	for svc, billingName := range billingServiceNames {
		if billingName == name {
			return svc, true
		}
	}
	return "", false
}

func metricAmount(metrics map[string]types.MetricValue) (decimal.Decimal, bool) {
	metric, ok := metrics[costsAggregation]
	if !ok || metric.Amount == nil {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(*metric.Amount)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// GetLastMonthTotalCosts returns the total unblended cost of the last full month.
func (s *service) GetLastMonthTotalCosts(ctx context.Context) (*model.CostTotal, error) {
	period := s.lastMonth()
	input := &costexplorer.GetCostAndUsageInput{
		Granularity: types.GranularityMonthly,
		TimePeriod:  period,
		Metrics:     []string{costsAggregation},
	}

	output, err := s.client.GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, awserr.Classify("billing", err)
	}
	if len(output.ResultsByTime) == 0 {
		return nil, fmt.Errorf("billing returned no results for %s", aws.ToString(period.Start))
	}

	result := output.ResultsByTime[0]
	amount, _ := metricAmount(result.Total)

	unit := "USD"
	if metric, ok := result.Total[costsAggregation]; ok && metric.Unit != nil {
		unit = *metric.Unit
	}

	return &model.CostTotal{
		DateInterval: model.DateInterval{
			Start: period.Start,
			End:   period.End,
		},
		Amount: amount,
		Unit:   unit,
	}, nil
}

// GetLastSixMonthsCosts returns one "Total" cost group per month, oldest first.
func (s *service) GetLastSixMonthsCosts(ctx context.Context) ([]model.CostInfo, error) {
	now := s.now()
	input := &costexplorer.GetCostAndUsageInput{
		Granularity: types.GranularityMonthly,
		TimePeriod: &types.DateInterval{
			Start: aws.String(firstDayOfMonth(now.AddDate(0, -6, 0)).Format(dateLayout)),
			End:   aws.String(firstDayOfMonth(now).Format(dateLayout)),
		},
		Metrics: []string{costsAggregation},
	}

	output, err := s.client.GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, awserr.Classify("billing", err)
	}

	monthlyCosts := make([]model.CostInfo, 0, len(output.ResultsByTime))
	for _, timeResult := range output.ResultsByTime {
		amount, _ := metricAmount(timeResult.Total)
		unit := ""
		if metric, ok := timeResult.Total[costsAggregation]; ok {
			unit = aws.ToString(metric.Unit)
		}

		costGroups := make(model.CostGroup)
		costGroups["Total"] = struct {
			Amount float64
			Unit   string
		}{
			Amount: amount.InexactFloat64(),
			Unit:   unit,
		}

		var start, end *string
		if timeResult.TimePeriod != nil {
			start, end = timeResult.TimePeriod.Start, timeResult.TimePeriod.End
		}
		monthlyCosts = append(monthlyCosts, model.CostInfo{
			DateInterval: model.DateInterval{Start: start, End: end},
			CostGroup:    costGroups,
		})
	}

	slices.SortStableFunc(monthlyCosts, func(a, b model.CostInfo) int {
		return compareDates(a.Start, b.Start)
	})

	return monthlyCosts, nil
}

// lastMonth is [first day of previous month, first day of current month).
func (s *service) lastMonth() *types.DateInterval {
	firstOfMonth := firstDayOfMonth(s.now())
	return &types.DateInterval{
		Start: aws.String(firstOfMonth.AddDate(0, -1, 0).Format(dateLayout)),
		End:   aws.String(firstOfMonth.Format(dateLayout)),
	}
}

func firstDayOfMonth(month time.Time) time.Time {
	return time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
}

func compareDates(a, b *string) int {
	switch x, y := aws.ToString(a), aws.ToString(b); {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}
