package main

import (
	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/spf13/cobra"
)

var (
	idleTag    bool
	idleNotify bool
	idleExport bool
)

var idleCmd = &cobra.Command{
	Use:   "idle",
	Short: "Find RDS instances without connections",
	Long: `Lists the RDS instances whose CloudWatch DatabaseConnections sum is zero over the
configured lookback window. With --tag each idle instance is tagged.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, model.Flags{
			Workflow: model.WorkflowIdle,
			Tag:      idleTag,
			Notify:   idleNotify,
			Export:   idleExport,
		})
	},
}

func init() {
	idleCmd.Flags().BoolVar(&idleTag, "tag", false, "tag the idle instances")
	idleCmd.Flags().BoolVar(&idleNotify, "notify", false, "publish the report over MQTT")
	idleCmd.Flags().BoolVar(&idleExport, "export", false, "write the report as JSON to S3")
	rootCmd.AddCommand(idleCmd)
}
