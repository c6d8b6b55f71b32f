package main

import (
	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/spf13/cobra"
)

var (
	topN      int
	topEmail  bool
	topNotify bool
	topExport bool
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Rank the most expensive on-demand instance types",
	Long: `Reads last month's on-demand spend per instance type from Cost Explorer, keeps the
most expensive ones and compares each with its reserved instance price.`,
	Args: cobra.NoArgs,
	RunE: runTop,
}

func init() {
	topCmd.Flags().IntVarP(&topN, "top", "n", 0, "number of instance types to show (default from config)")
	topCmd.Flags().BoolVar(&topEmail, "email", false, "email the report through SES")
	topCmd.Flags().BoolVar(&topNotify, "notify", false, "publish the report over MQTT")
	topCmd.Flags().BoolVar(&topExport, "export", false, "write the report as JSON to S3")
	rootCmd.AddCommand(topCmd)
}

func runTop(cmd *cobra.Command, args []string) error {
	return run(cmd, model.Flags{
		Workflow: model.WorkflowTop,
		TopN:     topN,
		Email:    topEmail,
		Notify:   topNotify,
		Export:   topExport,
	})
}
