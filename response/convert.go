package response

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/elC0mpa/aws-rate-genie/model"
)

// ConvertAccountInfo converts model.AccountInfo to response.AccountInfo
func ConvertAccountInfo(info *model.AccountInfo) *AccountInfo {
	if info == nil {
		return nil
	}
	return &AccountInfo{
		AccountID: info.AccountID,
		Arn:       info.Arn,
		UserID:    info.UserID,
	}
}

// ConvertCostTotal converts model.CostTotal to response.CostTotal
func ConvertCostTotal(total *model.CostTotal) *CostTotal {
	if total == nil {
		return nil
	}

	currency := total.Unit
	if currency == "" {
		currency = "USD"
	}

	return &CostTotal{
		StartDate: aws.ToString(total.Start),
		EndDate:   aws.ToString(total.End),
		Total:     total.Amount,
		Currency:  currency,
	}
}

// ConvertTrendData converts []model.CostInfo to CostTrend with summary
func ConvertTrendData(data []model.CostInfo) *CostTrend {
	if len(data) == 0 {
		return &CostTrend{
			Months:  []MonthCost{},
			Summary: TrendSummary{},
		}
	}

	months := make([]MonthCost, 0, len(data))
	var totalSpend float64
	var highestAmount, lowestAmount float64
	var highestMonth, lowestMonth string
	first := true

	for _, monthData := range data {
		month := MonthCost{
			StartDate: aws.ToString(monthData.Start),
			EndDate:   aws.ToString(monthData.End),
			Currency:  "USD",
		}
		if total, ok := monthData.CostGroup["Total"]; ok {
			month.Total = total.Amount
			if total.Unit != "" {
				month.Currency = total.Unit
			}
		}

		months = append(months, month)
		totalSpend += month.Total

		monthLabel := ""
		if len(month.StartDate) >= 7 {
			monthLabel = month.StartDate[:7] // YYYY-MM
		}

		if first || month.Total > highestAmount {
			highestAmount = month.Total
			highestMonth = monthLabel
		}
		if first || month.Total < lowestAmount {
			lowestAmount = month.Total
			lowestMonth = monthLabel
		}
		first = false
	}

	return &CostTrend{
		Months: months,
		Summary: TrendSummary{
			TotalSpend:     totalSpend,
			AverageMonthly: totalSpend / float64(len(months)),
			HighestMonth:   highestMonth,
			HighestAmount:  highestAmount,
			LowestMonth:    lowestMonth,
			LowestAmount:   lowestAmount,
		},
	}
}

// ConvertRankedCosts converts []model.RankedCost to response format
func ConvertRankedCosts(rows []model.RankedCost) []InstanceCost {
	result := make([]InstanceCost, 0, len(rows))
	for _, r := range rows {
		result = append(result, InstanceCost{
			Service:                string(r.Service),
			InstanceType:           r.InstanceType,
			OnDemandMonthlyCost:    r.OnDemandMonthlyCost,
			ReservedHourlyPrice:    r.Reserved.HourlyPrice,
			ReservedEquivalentCost: r.Reserved.ReservedEquivalentCost,
			PercentageSaving:       r.Reserved.PercentageSaving,
			LookupFailed:           r.Reserved.LookupFailed,
		})
	}
	return result
}

// ConvertTopInstancesReport converts model.TopInstancesReport to response format
func ConvertTopInstancesReport(report *model.TopInstancesReport) *TopInstancesReport {
	if report == nil {
		return nil
	}
	return &TopInstancesReport{
		ID:             report.ID.String(),
		AccountID:      report.AccountID,
		GeneratedAt:    report.GeneratedAt,
		StartDate:      aws.ToString(report.Period.Start),
		EndDate:        aws.ToString(report.Period.End),
		Instances:      ConvertRankedCosts(report.Rows),
		LookupFailures: report.LookupFailures,
	}
}

// ConvertIdleDatabases converts []model.IdleDatabase to response format
func ConvertIdleDatabases(databases []model.IdleDatabase) []IdleDatabase {
	result := make([]IdleDatabase, 0, len(databases))
	for _, db := range databases {
		result = append(result, IdleDatabase{
			Identifier:   db.Identifier,
			Arn:          db.Arn,
			InstanceType: db.InstanceType,
			Engine:       db.Engine,
			Status:       db.Status,
			CreatedAt:    db.CreatedAt,
			Tagged:       db.Tagged,
		})
	}
	return result
}

// ConvertIdleDatabasesReport converts model.IdleDatabasesReport to response format
func ConvertIdleDatabasesReport(report *model.IdleDatabasesReport) *IdleDatabasesReport {
	if report == nil {
		return nil
	}
	return &IdleDatabasesReport{
		ID:           report.ID.String(),
		AccountID:    report.AccountID,
		GeneratedAt:  report.GeneratedAt,
		LookbackDays: report.LookbackDays,
		Databases:    ConvertIdleDatabases(report.Databases),
	}
}

// ConvertRecommendation converts model.ReservationRecommendation to response format
func ConvertRecommendation(rec *model.ReservationRecommendation) *ReservationRecommendation {
	if rec == nil {
		return nil
	}
	return &ReservationRecommendation{
		Hours:               rec.Hours,
		AverageOnDemand:     rec.AverageOnDemand,
		TotalUnusedReserved: rec.TotalUnusedReserved,
		DiscountRate:        rec.DiscountRate,
		OptimalHourlyPrice:  rec.OptimalHourlyPrice,
	}
}
