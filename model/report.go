package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopInstancesReport is the ranked on-demand spend table with reserved savings.
type TopInstancesReport struct {
	ID             uuid.UUID
	AccountID      string
	GeneratedAt    time.Time
	Period         DateInterval
	Rows           []RankedCost
	LookupFailures int
}

// IdleDatabasesReport lists RDS instances without connections.
type IdleDatabasesReport struct {
	ID           uuid.UUID
	AccountID    string
	GeneratedAt  time.Time
	LookbackDays int
	Databases    []IdleDatabase
}

// ReservationRecommendation is the result of the reservation optimizer.
type ReservationRecommendation struct {
	Hours               int
	AverageOnDemand     decimal.Decimal
	TotalUnusedReserved decimal.Decimal
	DiscountRate        decimal.Decimal
	OptimalHourlyPrice  decimal.Decimal
}

// NewReportID returns a random identifier for a generated report.
func NewReportID() uuid.UUID {
	return uuid.New()
}
