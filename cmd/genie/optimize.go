package main

import (
	"fmt"

	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	usageFile    string
	discountRate string
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Compute the optimal hourly reservation from a usage report",
	Long: `Reads an hourly usage report CSV with Reserved($), On Demand($) and
Unused Reserved($) columns and prints the flat hourly reservation price
that matches the average on-demand spend at the given discount rate.`,
	Example: `  genie optimize --file usage.csv --discount 0.3`,
	Args:    cobra.NoArgs,
	RunE:    runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVarP(&usageFile, "file", "f", "", "usage report CSV")
	optimizeCmd.Flags().StringVarP(&discountRate, "discount", "d", "", "reserved discount rate as a fraction, e.g. 0.3")
	_ = optimizeCmd.MarkFlagRequired("file")
	_ = optimizeCmd.MarkFlagRequired("discount")
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	rate, err := decimal.NewFromString(discountRate)
	if err != nil {
		return fmt.Errorf("parsing --discount: %w", err)
	}

	return run(cmd, model.Flags{
		Workflow:     model.WorkflowOptimize,
		UsageFile:    usageFile,
		DiscountRate: rate,
	})
}
