// Package app wires the AWS collaborators, the cost engine and the
// orchestrator from a loaded configuration.
package app

import (
	"context"
	"io"

	"github.com/elC0mpa/aws-rate-genie/config"
	awsconfig "github.com/elC0mpa/aws-rate-genie/service/aws/config"
	awscostexplorer "github.com/elC0mpa/aws-rate-genie/service/aws/costexplorer"
	awspricing "github.com/elC0mpa/aws-rate-genie/service/aws/pricing"
	awsrds "github.com/elC0mpa/aws-rate-genie/service/aws/rds"
	awss3 "github.com/elC0mpa/aws-rate-genie/service/aws/s3"
	awsses "github.com/elC0mpa/aws-rate-genie/service/aws/ses"
	awssts "github.com/elC0mpa/aws-rate-genie/service/aws/sts"
	"github.com/elC0mpa/aws-rate-genie/service/costengine"
	"github.com/elC0mpa/aws-rate-genie/service/notify"
	"github.com/elC0mpa/aws-rate-genie/service/orchestrator"
	"github.com/go-logr/logr"
)

type App struct {
	Deps         orchestrator.Dependencies
	Orchestrator orchestrator.OrchestratorService

	closers []func()
}

// New builds the application. Email, export and MQTT are only wired when
// configured; the MQTT connection is opened here.
func New(ctx context.Context, cfg *config.Config, out io.Writer, log logr.Logger) (*App, error) {
	awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, awsconfig.Options{
		Region:          cfg.AWS.Region,
		Profile:         cfg.AWS.Profile,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		SessionToken:    cfg.AWS.SessionToken,
	})
	if err != nil {
		return nil, err
	}

	a := &App{}

	a.Deps = orchestrator.Dependencies{
		Identity: awssts.NewService(awsCfg),
		Costs:    awscostexplorer.NewService(awsCfg),
		Pricing: awspricing.NewService(awsconfig.WithRegion(awsCfg, cfg.Pricing.Region), awspricing.Options{
			Location:            cfg.Pricing.Location,
			LeaseContractLength: cfg.Pricing.LeaseContractLength,
			PurchaseOption:      cfg.Pricing.PurchaseOption,
			OfferingClass:       cfg.Pricing.OfferingClass,
			DatabaseEngine:      cfg.Pricing.DatabaseEngine,
			OperatingSystem:     cfg.Pricing.OperatingSystem,
		}),
		Databases: awsrds.NewService(awsCfg, awsrds.Options{
			LookbackDays: cfg.Idle.LookbackDays,
			TagKey:       cfg.Idle.TagKey,
			TagValue:     cfg.Idle.TagValue,
		}, log),
		Engine: costengine.NewService(log, cfg.Pricing.Concurrency),
	}

	if cfg.HasEmail() {
		a.Deps.Email = awsses.NewService(awsCfg, cfg.Email.From, cfg.Email.To)
	}
	if cfg.HasExport() {
		a.Deps.Export = awss3.NewService(awsCfg, cfg.Export.S3Bucket, cfg.Export.S3Prefix)
	}
	if cfg.MQTT.Enabled {
		publisher, err := notify.New(cfg.MQTT, log)
		if err != nil {
			return nil, err
		}
		a.Deps.Notifier = publisher
		a.closers = append(a.closers, publisher.Close)
	}

	a.Orchestrator = orchestrator.NewService(a.Deps, Settings(cfg), out, log)

	log.V(1).Info("application wired",
		"region", cfg.AWS.Region,
		"pricingRegion", cfg.Pricing.Region,
		"email", cfg.HasEmail(),
		"export", cfg.HasExport(),
		"mqtt", cfg.MQTT.Enabled)

	return a, nil
}

// Settings maps the configuration onto orchestrator defaults.
func Settings(cfg *config.Config) orchestrator.Settings {
	return orchestrator.Settings{
		TopN:         cfg.Report.TopN,
		PeriodHours:  cfg.Report.PeriodHours,
		Services:     cfg.ReportServices(),
		LookbackDays: cfg.Idle.LookbackDays,
		Output:       cfg.Output,
	}
}

// Close releases the broker connection, if any.
func (a *App) Close() {
	for _, c := range a.closers {
		c()
	}
}
