package awscostexplorer

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/elC0mpa/aws-rate-genie/model"
)

// CostExplorerAPI is the subset of the Cost Explorer client used here.
type CostExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

type service struct {
	client CostExplorerAPI
	now    func() time.Time
}

type CostService interface {
	GetInstanceCosts(ctx context.Context, services []model.ServiceName) (*model.InstanceCosts, error)
	GetLastMonthTotalCosts(ctx context.Context) (*model.CostTotal, error)
	GetLastSixMonthsCosts(ctx context.Context) ([]model.CostInfo, error)
}
