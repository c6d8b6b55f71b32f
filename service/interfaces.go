package service

import (
	"context"

	"github.com/elC0mpa/aws-rate-genie/model"
	awsses "github.com/elC0mpa/aws-rate-genie/service/aws/ses"
	"github.com/elC0mpa/aws-rate-genie/service/costengine"
)

// IdentityService provides the account behind the configured credentials
type IdentityService interface {
	GetAccountInfo(ctx context.Context) (*model.AccountInfo, error)
}

// CostService provides billing data
type CostService interface {
	GetInstanceCosts(ctx context.Context, services []model.ServiceName) (*model.InstanceCosts, error)
	GetLastMonthTotalCosts(ctx context.Context) (*model.CostTotal, error)
	GetLastSixMonthsCosts(ctx context.Context) ([]model.CostInfo, error)
}

// PriceCatalog resolves reserved prices and reports whether it is reachable
type PriceCatalog interface {
	costengine.PriceLookup
	Ping(ctx context.Context) error
}

// DatabaseService finds and tags idle databases
type DatabaseService interface {
	FindIdleDatabases(ctx context.Context) ([]model.IdleDatabase, error)
	TagIdleDatabases(ctx context.Context, databases []model.IdleDatabase) ([]model.IdleDatabase, error)
}

// EmailService delivers rendered reports
type EmailService interface {
	Send(ctx context.Context, msg awsses.Message) (string, error)
}

// ExportService stores report files
type ExportService interface {
	Put(ctx context.Context, name string, body []byte, contentType string) (string, error)
}

// Notifier publishes report summaries
type Notifier interface {
	PublishTopInstances(report *model.TopInstancesReport) error
	PublishIdleDatabases(report *model.IdleDatabasesReport) error
}
