package model

import "github.com/shopspring/decimal"

// ServiceName is the short name of a billed service.
type ServiceName string

const (
	ServiceRDS ServiceName = "RDS"
	ServiceEC2 ServiceName = "EC2"
)

// DateInterval represents a time period for cost analysis
type DateInterval struct {
	Start *string
	End   *string
}

// CostInfo contains cost data for a time period
type CostInfo struct {
	DateInterval
	CostGroup
}

// CostGroup maps group names to their cost data
type CostGroup map[string]struct {
	Amount float64
	Unit   string
}

// CostRecord is one row of billing output: the on-demand spend of one
// instance type of one service over a month.
type CostRecord struct {
	Service             ServiceName
	InstanceType        string
	OnDemandMonthlyCost decimal.Decimal
}

// ReservedPrice is the reserved-instance enrichment of a CostRecord.
// HourlyPrice and ReservedEquivalentCost are nil when no reserved SKU matched.
type ReservedPrice struct {
	InstanceType           string
	HourlyPrice            *decimal.Decimal
	ReservedEquivalentCost *decimal.Decimal
	PercentageSaving       decimal.Decimal
	// LookupFailed is set when the price catalog returned an error for this
	// instance type and the row was degraded to "no reserved price".
	LookupFailed bool
}

// RankedCost pairs a CostRecord with its reserved pricing.
type RankedCost struct {
	CostRecord
	Reserved ReservedPrice
}

// UsageRecord is one hourly observation of a usage report.
type UsageRecord struct {
	ReservedCost       decimal.Decimal
	OnDemandCost       decimal.Decimal
	UnusedReservedCost decimal.Decimal
}

// CostTotal is the total spend of one period.
type CostTotal struct {
	DateInterval
	Amount decimal.Decimal
	Unit   string
}

// InstanceCosts is the result of a billing query grouped by instance type.
type InstanceCosts struct {
	Period  DateInterval
	Records []CostRecord
}
