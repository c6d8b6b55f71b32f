package utils

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/common-nighthawk/go-figure"
	"github.com/jedib0t/go-pretty/v6/text"
)

var spin *spinner.Spinner

// DrawBanner prints the application banner.
func DrawBanner(w io.Writer) {
	fig := figure.NewFigure("Rate Genie", "", true)
	fmt.Fprintln(w, text.FgHiCyan.Sprint(fig.String()))
}

// StartSpinner shows a progress spinner on w until StopSpinner is called.
func StartSpinner(w io.Writer, suffix string) {
	StopSpinner()
	spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	spin.Suffix = " " + suffix
	spin.Start()
}

// StopSpinner stops the spinner started by StartSpinner, if any.
func StopSpinner() {
	if spin == nil {
		return
	}
	spin.Stop()
	spin = nil
}
