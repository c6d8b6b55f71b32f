package orchestrator

import (
	"context"
	"io"
	"time"

	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/elC0mpa/aws-rate-genie/service"
	"github.com/elC0mpa/aws-rate-genie/service/costengine"
	"github.com/go-logr/logr"
)

// Dependencies are the collaborators of the workflows. Only the ones a
// workflow uses need to be set; optimize needs the engine alone.
type Dependencies struct {
	Identity  service.IdentityService
	Costs     service.CostService
	Pricing   service.PriceCatalog
	Databases service.DatabaseService
	Email     service.EmailService
	Export    service.ExportService
	Notifier  service.Notifier
	Engine    costengine.CostEngine
}

// Settings are the configured defaults that flags may override.
type Settings struct {
	TopN         int
	PeriodHours  int
	Services     []model.ServiceName
	LookbackDays int
	Output       string
}

type orchestratorService struct {
	deps     Dependencies
	settings Settings
	out      io.Writer
	log      logr.Logger
	now      func() time.Time
}

type OrchestratorService interface {
	Orchestrate(ctx context.Context, flags model.Flags) error
	TopInstances(ctx context.Context, topN int) (*model.TopInstancesReport, error)
	IdleDatabases(ctx context.Context, tag bool) (*model.IdleDatabasesReport, error)
}
