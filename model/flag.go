package model

import "github.com/shopspring/decimal"

// Workflow selects what the orchestrator runs.
type Workflow string

const (
	WorkflowConnect  Workflow = "connect"
	WorkflowTop      Workflow = "top"
	WorkflowIdle     Workflow = "idle"
	WorkflowOptimize Workflow = "optimize"
	WorkflowTotal    Workflow = "total"
	WorkflowTrend    Workflow = "trend"
)

type Flags struct {
	Workflow Workflow
	Output   string

	// top
	TopN   int
	Email  bool
	Notify bool
	Export bool

	// idle
	Tag bool

	// optimize
	UsageFile    string
	DiscountRate decimal.Decimal
}
