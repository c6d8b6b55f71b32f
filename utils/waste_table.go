package utils

import (
	"fmt"
	"io"

	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var idleDatabasesHeader = table.Row{"Identifier", "Instance Type", "Engine", "Status", "Created", "Tagged"}

// DrawIdleDatabasesTable prints the RDS instances without connections.
func DrawIdleDatabasesTable(w io.Writer, report *model.IdleDatabasesReport) {
	fmt.Fprintf(w, "\n%s\n", text.FgHiWhite.Sprint(" 💤  IDLE RDS INSTANCES"))
	fmt.Fprintf(w, " Account ID: %s\n", text.FgBlue.Sprint(report.AccountID))
	fmt.Fprintf(w, " No connections in the last %d days\n", report.LookbackDays)
	fmt.Fprintln(w, text.FgHiBlue.Sprint(" ------------------------------------------------"))

	if len(report.Databases) == 0 {
		fmt.Fprintln(w, text.FgHiGreen.Sprint(" No idle databases found."))
		return
	}

	tw := idleDatabasesTable(report)
	tw.SetStyle(table.StyleRounded)
	fmt.Fprintln(w, tw.Render())
}

// IdleDatabasesCSV renders the idle database list as CSV.
func IdleDatabasesCSV(report *model.IdleDatabasesReport) string {
	return idleDatabasesTable(report).RenderCSV()
}

func idleDatabasesTable(report *model.IdleDatabasesReport) table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(idleDatabasesHeader)

	for _, db := range report.Databases {
		created := "-"
		if db.CreatedAt != nil {
			created = db.CreatedAt.Format("2006-01-02")
		}
		tagged := "no"
		if db.Tagged {
			tagged = "yes"
		}
		tw.AppendRow(table.Row{db.Identifier, db.InstanceType, db.Engine, db.Status, created, tagged})
	}

	return tw
}
