package response

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountInfo represents the AWS identity behind the credentials
type AccountInfo struct {
	AccountID string `json:"account_id" yaml:"account_id"`
	Arn       string `json:"arn" yaml:"arn"`
	UserID    string `json:"user_id" yaml:"user_id"`
}

// CostTotal represents the total spend of a period
type CostTotal struct {
	StartDate string          `json:"start_date" yaml:"start_date"`
	EndDate   string          `json:"end_date" yaml:"end_date"`
	Total     decimal.Decimal `json:"total" yaml:"total"`
	Currency  string          `json:"currency" yaml:"currency"`
}

// MonthCost represents one month of a cost trend
type MonthCost struct {
	StartDate string  `json:"start_date" yaml:"start_date"`
	EndDate   string  `json:"end_date" yaml:"end_date"`
	Total     float64 `json:"total" yaml:"total"`
	Currency  string  `json:"currency" yaml:"currency"`
}

// TrendSummary provides summary statistics for cost trend
type TrendSummary struct {
	TotalSpend     float64 `json:"total_spend_6_months" yaml:"total_spend_6_months"`
	AverageMonthly float64 `json:"average_monthly" yaml:"average_monthly"`
	HighestMonth   string  `json:"highest_month" yaml:"highest_month"`
	HighestAmount  float64 `json:"highest_amount" yaml:"highest_amount"`
	LowestMonth    string  `json:"lowest_month" yaml:"lowest_month"`
	LowestAmount   float64 `json:"lowest_amount" yaml:"lowest_amount"`
}

// CostTrend represents 6-month cost trend with summary
type CostTrend struct {
	Months  []MonthCost  `json:"months" yaml:"months"`
	Summary TrendSummary `json:"summary" yaml:"summary"`
}

// InstanceCost is one row of the top instances report
type InstanceCost struct {
	Service                string           `json:"service" yaml:"service"`
	InstanceType           string           `json:"instance_type" yaml:"instance_type"`
	OnDemandMonthlyCost    decimal.Decimal  `json:"on_demand_monthly_cost" yaml:"on_demand_monthly_cost"`
	ReservedHourlyPrice    *decimal.Decimal `json:"reserved_hourly_price,omitempty" yaml:"reserved_hourly_price,omitempty"`
	ReservedEquivalentCost *decimal.Decimal `json:"reserved_equivalent_cost,omitempty" yaml:"reserved_equivalent_cost,omitempty"`
	PercentageSaving       decimal.Decimal  `json:"percentage_saving" yaml:"percentage_saving"`
	LookupFailed           bool             `json:"lookup_failed,omitempty" yaml:"lookup_failed,omitempty"`
}

// TopInstancesReport is the ranked on-demand spend with reserved savings
type TopInstancesReport struct {
	ID             string         `json:"id" yaml:"id"`
	AccountID      string         `json:"account_id" yaml:"account_id"`
	GeneratedAt    time.Time      `json:"generated_at" yaml:"generated_at"`
	StartDate      string         `json:"start_date" yaml:"start_date"`
	EndDate        string         `json:"end_date" yaml:"end_date"`
	Instances      []InstanceCost `json:"instances" yaml:"instances"`
	LookupFailures int            `json:"lookup_failures" yaml:"lookup_failures"`
}

// IdleDatabase represents an RDS instance without connections
type IdleDatabase struct {
	Identifier   string     `json:"identifier" yaml:"identifier"`
	Arn          string     `json:"arn" yaml:"arn"`
	InstanceType string     `json:"instance_type" yaml:"instance_type"`
	Engine       string     `json:"engine" yaml:"engine"`
	Status       string     `json:"status" yaml:"status"`
	CreatedAt    *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	Tagged       bool       `json:"tagged" yaml:"tagged"`
}

// IdleDatabasesReport lists idle RDS instances
type IdleDatabasesReport struct {
	ID           string         `json:"id" yaml:"id"`
	AccountID    string         `json:"account_id" yaml:"account_id"`
	GeneratedAt  time.Time      `json:"generated_at" yaml:"generated_at"`
	LookbackDays int            `json:"lookback_days" yaml:"lookback_days"`
	Databases    []IdleDatabase `json:"databases" yaml:"databases"`
}

// ReservationRecommendation is the optimal flat hourly reservation
type ReservationRecommendation struct {
	Hours               int             `json:"hours" yaml:"hours"`
	AverageOnDemand     decimal.Decimal `json:"average_on_demand" yaml:"average_on_demand"`
	TotalUnusedReserved decimal.Decimal `json:"total_unused_reserved" yaml:"total_unused_reserved"`
	DiscountRate        decimal.Decimal `json:"discount_rate" yaml:"discount_rate"`
	OptimalHourlyPrice  decimal.Decimal `json:"optimal_hourly_price" yaml:"optimal_hourly_price"`
}
