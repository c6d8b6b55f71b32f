package utils

import (
	"fmt"
	"io"

	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// DrawRecommendation prints the reservation optimizer result.
func DrawRecommendation(w io.Writer, rec *model.ReservationRecommendation) {
	tw := recommendationTable(rec, true)
	tw.SetTitle("Hourly Reservation Optimizer")
	tw.SetStyle(table.StyleRounded)
	fmt.Fprintln(w, tw.Render())
}

// RecommendationCSV renders the optimizer result as CSV.
func RecommendationCSV(rec *model.ReservationRecommendation) string {
	return recommendationTable(rec, false).RenderCSV()
}

func recommendationTable(rec *model.ReservationRecommendation, colored bool) table.Writer {
	label, optimal := "Optimal hourly reservation", formatUSD(rec.OptimalHourlyPrice, 4)
	if colored {
		label, optimal = text.FgHiGreen.Sprint(label), text.FgHiGreen.Sprint(optimal)
	}

	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Metric", "Value"})
	tw.AppendRows([]table.Row{
		{"Hours in report", rec.Hours},
		{"Average on-demand (hourly)", formatUSD(rec.AverageOnDemand, 4)},
		{"Unused reserved (total)", formatUSD(rec.TotalUnusedReserved, 2)},
		{"Discount rate", FormatPercentage(rec.DiscountRate)},
		{label, optimal},
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	return tw
}

// DrawAccountInfo prints the identity behind the credentials.
func DrawAccountInfo(w io.Writer, info *model.AccountInfo) {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Account ID", "ARN", "User ID"})
	tw.AppendRow(table.Row{text.FgBlue.Sprint(info.AccountID), info.Arn, info.UserID})
	tw.SetStyle(table.StyleRounded)
	fmt.Fprintf(w, "%s\n", text.FgHiGreen.Sprint(" ✔ Connected to AWS"))
	fmt.Fprintln(w, tw.Render())
}
