package main

import (
	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/spf13/cobra"
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Verify the AWS credentials",
	Long:  `Resolves the account, ARN and user id behind the configured credentials.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, model.Flags{Workflow: model.WorkflowConnect})
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)
}
