package tools

import (
	"context"
	"fmt"

	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/elC0mpa/aws-rate-genie/response"
	"github.com/elC0mpa/aws-rate-genie/service/costengine"
	"github.com/go-logr/logr"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/shopspring/decimal"
)

// RegisterOptimizerTools registers the tools that need no cloud access
func RegisterOptimizerTools(s *server.MCPServer, log logr.Logger) {
	engine := costengine.NewService(log.WithName("mcp"), 1)

	s.AddTool(
		mcp.NewTool("optimize_hourly_reservation",
			mcp.WithDescription("Compute the flat hourly reservation price matching the average on-demand spend of an hourly usage series at a discount rate"),
			mcp.WithArray("usage",
				mcp.Required(),
				mcp.Description("Hourly on-demand cost observations in USD"),
				mcp.Items(map[string]any{"type": "number"}),
			),
			mcp.WithNumber("discount_rate",
				mcp.Required(),
				mcp.Description("Reserved discount as a fraction between 0 and 1, e.g. 0.3"),
			),
		),
		makeOptimizeHandler(engine),
	)
}

func makeOptimizeHandler(engine costengine.CostEngine) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		usage, err := usageArgument(request.GetArguments()["usage"])
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		rate, err := request.RequireFloat("discount_rate")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		rec, err := engine.Recommend(usage, decimal.NewFromFloat(rate))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to optimize reservation: %v", err)), nil
		}

		return jsonResult(response.ConvertRecommendation(rec))
	}
}

func usageArgument(raw any) ([]model.UsageRecord, error) {
	values, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("usage must be an array of numbers")
	}

	usage := make([]model.UsageRecord, 0, len(values))
	for i, v := range values {
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("usage[%d] is not a number", i)
		}
		if f < 0 {
			return nil, fmt.Errorf("usage[%d] is negative", i)
		}
		usage = append(usage, model.UsageRecord{
			ReservedCost:       decimal.Zero,
			OnDemandCost:       decimal.NewFromFloat(f),
			UnusedReservedCost: decimal.Zero,
		})
	}
	return usage, nil
}
