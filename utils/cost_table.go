package utils

import (
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
)

var topInstancesHeader = table.Row{
	"#",
	"Service",
	"Instance Type",
	"On-Demand (monthly)",
	"Reserved (hourly)",
	"Reserved (period)",
	"Saving",
}

// DrawTopInstancesTable prints the ranked on-demand spend with reserved savings.
func DrawTopInstancesTable(w io.Writer, report *model.TopInstancesReport) {
	fmt.Fprintf(w, "\n%s\n", text.FgHiWhite.Sprint(" 🧞  TOP INSTANCES BY ON-DEMAND SPEND"))
	fmt.Fprintf(w, " Account ID: %s\n", text.FgBlue.Sprint(report.AccountID))
	fmt.Fprintf(w, " Period: %s to %s\n", aws.ToString(report.Period.Start), aws.ToString(report.Period.End))
	fmt.Fprintln(w, text.FgHiBlue.Sprint(" ------------------------------------------------"))

	tw := topInstancesTable(report, true)
	tw.SetStyle(table.StyleRounded)
	fmt.Fprintln(w, tw.Render())

	if report.LookupFailures > 0 {
		fmt.Fprintln(w, text.FgHiYellow.Sprintf(" %d instance type(s) could not be priced and are shown without a reserved price", report.LookupFailures))
	}
}

// TopInstancesText renders the table without colors, for email bodies.
func TopInstancesText(report *model.TopInstancesReport) string {
	tw := topInstancesTable(report, false)
	tw.SetStyle(table.StyleLight)
	return tw.Render()
}

// TopInstancesHTML renders the table as an HTML fragment.
func TopInstancesHTML(report *model.TopInstancesReport) string {
	return topInstancesTable(report, false).RenderHTML()
}

// TopInstancesCSV renders the table as CSV.
func TopInstancesCSV(report *model.TopInstancesReport) string {
	return topInstancesTable(report, false).RenderCSV()
}

func topInstancesTable(report *model.TopInstancesReport, colored bool) table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(topInstancesHeader)

	for i, row := range report.Rows {
		tw.AppendRow(populateTopInstanceRow(i+1, row, colored))
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	return tw
}

func populateTopInstanceRow(rank int, row model.RankedCost, colored bool) table.Row {
	onDemand := formatUSD(row.OnDemandMonthlyCost, 2)
	hourly := "-"
	equivalent := "-"
	saving := "-"

	switch {
	case row.Reserved.LookupFailed:
		hourly = "lookup failed"
	case row.Reserved.HourlyPrice != nil:
		hourly = formatUSD(*row.Reserved.HourlyPrice, 4)
		equivalent = formatUSD(*row.Reserved.ReservedEquivalentCost, 2)
		saving = FormatPercentage(row.Reserved.PercentageSaving)
	}

	r := table.Row{rank, string(row.Service), row.InstanceType, onDemand, hourly, equivalent, saving}
	if !colored {
		return r
	}

	r[2] = text.FgGreen.Sprint(row.InstanceType)
	switch {
	case row.Reserved.LookupFailed:
		r[4] = text.FgHiYellow.Sprint(hourly)
	case row.Reserved.PercentageSaving.IsPositive():
		r[6] = text.FgHiGreen.Sprint(saving)
	case row.Reserved.PercentageSaving.IsNegative():
		r[6] = text.FgHiRed.Sprint(saving)
	}
	return r
}

// DrawTotalCost prints last month's total spend.
func DrawTotalCost(w io.Writer, accountID string, total *model.CostTotal) {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Account ID", "Period", "Total Cost"})
	tw.AppendRow(table.Row{
		text.FgBlue.Sprint(accountID),
		fmt.Sprintf("%s to %s", aws.ToString(total.Start), aws.ToString(total.End)),
		text.FgHiGreen.Sprintf("%s %s", total.Amount.StringFixed(2), total.Unit),
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
	})
	tw.SetStyle(table.StyleRounded)
	fmt.Fprintln(w, tw.Render())
}

// FormatPercentage renders a fraction such as 0.2734 as "27.34%".
func FormatPercentage(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

func formatUSD(amount decimal.Decimal, places int32) string {
	return amount.StringFixed(places) + " USD"
}
