package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/elC0mpa/aws-rate-genie/response"
	awsses "github.com/elC0mpa/aws-rate-genie/service/aws/ses"
	"github.com/elC0mpa/aws-rate-genie/service/costengine"
	"github.com/elC0mpa/aws-rate-genie/utils"
	"github.com/go-logr/logr"
	"github.com/shopspring/decimal"
)

// noDataMessage is printed instead of an empty table.
const noDataMessage = "No costs or instances found for the specified time period."

func NewService(deps Dependencies, settings Settings, out io.Writer, log logr.Logger) *orchestratorService {
	if settings.Output == "" {
		settings.Output = utils.FormatTable
	}
	return &orchestratorService{
		deps:     deps,
		settings: settings,
		out:      out,
		log:      log.WithName("orchestrator"),
		now:      time.Now,
	}
}

func (s *orchestratorService) Orchestrate(ctx context.Context, flags model.Flags) error {
	output := s.settings.Output
	if flags.Output != "" {
		output = flags.Output
	}

	switch flags.Workflow {
	case model.WorkflowConnect:
		return s.connectWorkflow(ctx, output)
	case model.WorkflowTop:
		return s.topWorkflow(ctx, flags, output)
	case model.WorkflowIdle:
		return s.idleWorkflow(ctx, flags, output)
	case model.WorkflowOptimize:
		return s.optimizeWorkflow(flags, output)
	case model.WorkflowTotal:
		return s.totalWorkflow(ctx, output)
	case model.WorkflowTrend:
		return s.trendWorkflow(ctx, output)
	}

	return fmt.Errorf("unknown workflow %q", flags.Workflow)
}

func (s *orchestratorService) connectWorkflow(ctx context.Context, output string) error {
	info, err := s.deps.Identity.GetAccountInfo(ctx)
	if err != nil {
		return err
	}

	utils.StopSpinner()

	if output == utils.FormatTable {
		utils.DrawAccountInfo(s.out, info)
		return nil
	}
	return s.encode(output, response.ConvertAccountInfo(info))
}

// TopInstances builds the ranked report of the topN most expensive on-demand
// instance types with their reserved savings. It returns costengine.ErrEmptyInput
// when billing has no rows for the period.
func (s *orchestratorService) TopInstances(ctx context.Context, topN int) (*model.TopInstancesReport, error) {
	if topN == 0 {
		topN = s.settings.TopN
	}

	account, err := s.deps.Identity.GetAccountInfo(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.deps.Pricing.Ping(ctx); err != nil {
		return nil, err
	}

	costs, err := s.deps.Costs.GetInstanceCosts(ctx, s.settings.Services)
	if err != nil {
		return nil, err
	}

	// Ranking first keeps pricing lookups to the rows that are shown.
	top, err := s.deps.Engine.RankTopCosts(costs.Records, topN)
	if err != nil {
		return nil, err
	}

	rows, err := s.deps.Engine.EnrichWithReservedSavings(ctx, top, s.deps.Pricing, decimal.NewFromInt(int64(s.settings.PeriodHours)))
	if err != nil {
		return nil, err
	}

	failures := 0
	for _, r := range rows {
		if r.Reserved.LookupFailed {
			failures++
		}
	}

	report := &model.TopInstancesReport{
		ID:             model.NewReportID(),
		AccountID:      account.AccountID,
		GeneratedAt:    s.now().UTC(),
		Period:         costs.Period,
		Rows:           rows,
		LookupFailures: failures,
	}

	s.log.Info("top instances report generated",
		"reportId", report.ID.String(),
		"rows", len(rows),
		"lookupFailures", failures)

	return report, nil
}

func (s *orchestratorService) topWorkflow(ctx context.Context, flags model.Flags, output string) error {
	report, err := s.TopInstances(ctx, flags.TopN)
	if errors.Is(err, costengine.ErrEmptyInput) {
		utils.StopSpinner()
		fmt.Fprintln(s.out, noDataMessage)
		return nil
	}
	if err != nil {
		return err
	}

	utils.StopSpinner()

	switch output {
	case utils.FormatTable:
		utils.DrawTopInstancesTable(s.out, report)
	case utils.FormatCSV:
		fmt.Fprintln(s.out, utils.TopInstancesCSV(report))
	default:
		if err := s.encode(output, response.ConvertTopInstancesReport(report)); err != nil {
			return err
		}
	}

	if flags.Email {
		if err := s.emailTopInstances(ctx, report); err != nil {
			return err
		}
	}
	if flags.Notify {
		if err := s.notify(func(n notifier) error { return n.PublishTopInstances(report) }); err != nil {
			return err
		}
	}
	if flags.Export {
		if err := s.export(ctx, "top_instances", report.ID.String(), response.ConvertTopInstancesReport(report)); err != nil {
			return err
		}
	}

	return nil
}

func (s *orchestratorService) emailTopInstances(ctx context.Context, report *model.TopInstancesReport) error {
	if s.deps.Email == nil {
		return fmt.Errorf("email delivery is not configured")
	}

	id, err := s.deps.Email.Send(ctx, awsses.Message{
		Subject: fmt.Sprintf("Top %d instances by on-demand spend (%s)", len(report.Rows), report.AccountID),
		Text:    utils.TopInstancesText(report),
		HTML:    utils.TopInstancesHTML(report),
	})
	if err != nil {
		return fmt.Errorf("failed to email report: %w", err)
	}

	s.log.Info("report emailed", "reportId", report.ID.String(), "messageId", id)
	return nil
}

// IdleDatabases finds the RDS instances without connections, tagging them when tag is set.
func (s *orchestratorService) IdleDatabases(ctx context.Context, tag bool) (*model.IdleDatabasesReport, error) {
	account, err := s.deps.Identity.GetAccountInfo(ctx)
	if err != nil {
		return nil, err
	}

	databases, err := s.deps.Databases.FindIdleDatabases(ctx)
	if err != nil {
		return nil, err
	}

	if tag && len(databases) > 0 {
		databases, err = s.deps.Databases.TagIdleDatabases(ctx, databases)
		if err != nil {
			return nil, err
		}
	}

	report := &model.IdleDatabasesReport{
		ID:           model.NewReportID(),
		AccountID:    account.AccountID,
		GeneratedAt:  s.now().UTC(),
		LookbackDays: s.settings.LookbackDays,
		Databases:    databases,
	}

	s.log.Info("idle databases report generated", "reportId", report.ID.String(), "databases", len(databases))
	return report, nil
}

func (s *orchestratorService) idleWorkflow(ctx context.Context, flags model.Flags, output string) error {
	report, err := s.IdleDatabases(ctx, flags.Tag)
	if err != nil {
		return err
	}

	utils.StopSpinner()

	switch output {
	case utils.FormatTable:
		utils.DrawIdleDatabasesTable(s.out, report)
	case utils.FormatCSV:
		fmt.Fprintln(s.out, utils.IdleDatabasesCSV(report))
	default:
		if err := s.encode(output, response.ConvertIdleDatabasesReport(report)); err != nil {
			return err
		}
	}

	if flags.Notify {
		if err := s.notify(func(n notifier) error { return n.PublishIdleDatabases(report) }); err != nil {
			return err
		}
	}
	if flags.Export {
		if err := s.export(ctx, "idle_databases", report.ID.String(), response.ConvertIdleDatabasesReport(report)); err != nil {
			return err
		}
	}

	return nil
}

func (s *orchestratorService) optimizeWorkflow(flags model.Flags, output string) error {
	if flags.UsageFile == "" {
		return fmt.Errorf("a usage report file is required")
	}

	f, err := os.Open(flags.UsageFile)
	if err != nil {
		return fmt.Errorf("failed to open usage report: %w", err)
	}
	defer f.Close()

	usage, err := costengine.ParseUsageReport(f)
	if err != nil {
		return err
	}

	rec, err := s.deps.Engine.Recommend(usage, flags.DiscountRate)
	if err != nil {
		return err
	}

	utils.StopSpinner()

	switch output {
	case utils.FormatTable:
		utils.DrawRecommendation(s.out, rec)
		return nil
	case utils.FormatCSV:
		fmt.Fprintln(s.out, utils.RecommendationCSV(rec))
		return nil
	}
	return s.encode(output, response.ConvertRecommendation(rec))
}

func (s *orchestratorService) totalWorkflow(ctx context.Context, output string) error {
	account, err := s.deps.Identity.GetAccountInfo(ctx)
	if err != nil {
		return err
	}

	total, err := s.deps.Costs.GetLastMonthTotalCosts(ctx)
	if err != nil {
		return err
	}

	utils.StopSpinner()

	if output == utils.FormatTable {
		utils.DrawTotalCost(s.out, account.AccountID, total)
		return nil
	}
	return s.encode(output, response.ConvertCostTotal(total))
}

func (s *orchestratorService) trendWorkflow(ctx context.Context, output string) error {
	account, err := s.deps.Identity.GetAccountInfo(ctx)
	if err != nil {
		return err
	}

	costInfo, err := s.deps.Costs.GetLastSixMonthsCosts(ctx)
	if err != nil {
		return err
	}

	utils.StopSpinner()

	if output == utils.FormatTable {
		utils.DrawTrendChart(s.out, account.AccountID, costInfo)
		return nil
	}
	return s.encode(output, response.ConvertTrendData(costInfo))
}

func (s *orchestratorService) encode(output string, payload any) error {
	if output == utils.FormatCSV {
		return fmt.Errorf("csv output is not supported for this report")
	}
	return utils.Encode(s.out, output, payload)
}

type notifier interface {
	PublishTopInstances(report *model.TopInstancesReport) error
	PublishIdleDatabases(report *model.IdleDatabasesReport) error
}

func (s *orchestratorService) notify(publish func(notifier) error) error {
	if s.deps.Notifier == nil {
		return fmt.Errorf("mqtt notifications are not configured")
	}
	if err := publish(s.deps.Notifier); err != nil {
		return fmt.Errorf("failed to publish report: %w", err)
	}
	return nil
}

func (s *orchestratorService) export(ctx context.Context, kind, id string, payload any) error {
	if s.deps.Export == nil {
		return fmt.Errorf("s3 export is not configured")
	}

	var body bytes.Buffer
	if err := utils.Encode(&body, utils.FormatJSON, payload); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}

	name := fmt.Sprintf("%s/%s-%s.%s", kind, s.now().UTC().Format("2006-01-02"), id, utils.Extension(utils.FormatJSON))
	uri, err := s.deps.Export.Put(ctx, name, body.Bytes(), utils.ContentType(utils.FormatJSON))
	if err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}

	s.log.Info("report exported", "uri", uri)
	return nil
}
