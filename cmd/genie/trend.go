package main

import (
	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/spf13/cobra"
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Chart the total cost of the last six months",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, model.Flags{Workflow: model.WorkflowTrend})
	},
}

func init() {
	rootCmd.AddCommand(trendCmd)
}
