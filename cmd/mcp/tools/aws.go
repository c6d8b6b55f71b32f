package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/elC0mpa/aws-rate-genie/config"
	"github.com/elC0mpa/aws-rate-genie/response"
	"github.com/elC0mpa/aws-rate-genie/service/app"
	"github.com/elC0mpa/aws-rate-genie/service/costengine"
	"github.com/go-logr/logr"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterAWSTools registers all AWS tools with the MCP server
func RegisterAWSTools(s *server.MCPServer, cfg *config.Config, log logr.Logger) {
	log = log.WithName("mcp")

	// Account info
	s.AddTool(
		mcp.NewTool("aws_get_account_info",
			mcp.WithDescription("Get AWS account identity information including account ID and ARN"),
		),
		makeAWSAccountInfoHandler(cfg, log),
	)

	// Top instances
	s.AddTool(
		mcp.NewTool("aws_get_top_instances",
			mcp.WithDescription("Rank last month's most expensive on-demand RDS and EC2 instance types and compare each with its reserved instance price"),
			mcp.WithNumber("top_n",
				mcp.Description("Number of instance types to return (defaults to the configured report size)"),
			),
		),
		makeAWSTopInstancesHandler(cfg, log),
	)

	// Total cost
	s.AddTool(
		mcp.NewTool("aws_get_total_cost_last_month",
			mcp.WithDescription("Get the total unblended AWS cost of the last full month"),
		),
		makeAWSTotalCostHandler(cfg, log),
	)

	// Cost trend
	s.AddTool(
		mcp.NewTool("aws_get_cost_trend",
			mcp.WithDescription("Get AWS cost trend for the last 6 months with summary statistics"),
		),
		makeAWSCostTrendHandler(cfg, log),
	)

	// Idle databases
	s.AddTool(
		mcp.NewTool("aws_find_idle_databases",
			mcp.WithDescription("List RDS instances with no database connections over the configured lookback window"),
			mcp.WithBoolean("tag",
				mcp.Description("Tag every idle instance with the configured idle tag"),
			),
		),
		makeAWSIdleDatabasesHandler(cfg, log),
	)
}

func newApp(ctx context.Context, cfg *config.Config, log logr.Logger) (*app.App, *mcp.CallToolResult) {
	a, err := app.New(ctx, cfg, io.Discard, log)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("Failed to configure AWS: %v", err))
	}
	return a, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func makeAWSAccountInfoHandler(cfg *config.Config, log logr.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		a, errResult := newApp(ctx, cfg, log)
		if errResult != nil {
			return errResult, nil
		}
		defer a.Close()

		info, err := a.Deps.Identity.GetAccountInfo(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get account info: %v", err)), nil
		}

		return jsonResult(response.ConvertAccountInfo(info))
	}
}

func makeAWSTopInstancesHandler(cfg *config.Config, log logr.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		topN := int(request.GetFloat("top_n", 0))
		if topN < 0 {
			return mcp.NewToolResultError("top_n must be a positive integer"), nil
		}

		a, errResult := newApp(ctx, cfg, log)
		if errResult != nil {
			return errResult, nil
		}
		defer a.Close()

		report, err := a.Orchestrator.TopInstances(ctx, topN)
		if errors.Is(err, costengine.ErrEmptyInput) {
			return mcp.NewToolResultText("No costs or instances found for the specified time period."), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get top instances: %v", err)), nil
		}

		return jsonResult(response.ConvertTopInstancesReport(report))
	}
}

func makeAWSTotalCostHandler(cfg *config.Config, log logr.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		a, errResult := newApp(ctx, cfg, log)
		if errResult != nil {
			return errResult, nil
		}
		defer a.Close()

		total, err := a.Deps.Costs.GetLastMonthTotalCosts(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get total cost: %v", err)), nil
		}

		return jsonResult(response.ConvertCostTotal(total))
	}
}

func makeAWSCostTrendHandler(cfg *config.Config, log logr.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		a, errResult := newApp(ctx, cfg, log)
		if errResult != nil {
			return errResult, nil
		}
		defer a.Close()

		trendData, err := a.Deps.Costs.GetLastSixMonthsCosts(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get cost trend: %v", err)), nil
		}

		return jsonResult(response.ConvertTrendData(trendData))
	}
}

func makeAWSIdleDatabasesHandler(cfg *config.Config, log logr.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		a, errResult := newApp(ctx, cfg, log)
		if errResult != nil {
			return errResult, nil
		}
		defer a.Close()

		report, err := a.Orchestrator.IdleDatabases(ctx, request.GetBool("tag", false))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to find idle databases: %v", err)), nil
		}

		return jsonResult(response.ConvertIdleDatabasesReport(report))
	}
}
