package main

import (
	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/spf13/cobra"
)

var totalCmd = &cobra.Command{
	Use:   "total",
	Short: "Show last month's total cost",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, model.Flags{Workflow: model.WorkflowTotal})
	},
}

func init() {
	rootCmd.AddCommand(totalCmd)
}
