// Package report prints check verdicts and maps them to exit codes.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"check-snmp-lsi-raid/internal/config"
	"check-snmp-lsi-raid/internal/evaluator"
	"check-snmp-lsi-raid/internal/snmp"
	"check-snmp-lsi-raid/internal/statistic"
	"check-snmp-lsi-raid/pkg/types"
)

// CheckName prefixes every verdict line
const CheckName = "CheckSnmpLsiRaid"

// Emit prints the verdict and returns the exit code
func Emit(w io.Writer, checkName string, v types.Verdict) int {
	fmt.Fprintf(w, "%s %s: %s\n", checkName, v.Status, v.Text())
	return v.Status.ExitCode()
}

// Failure converts an error of a check run into an UNKNOWN verdict
func Failure(err error, host, stat string) types.Verdict {
	var msg string
	var unmapped *evaluator.UnmappedStateError
	switch {
	case errors.As(err, &unmapped):
		msg = fmt.Sprintf("Unmapped state code: disk %d: %d in %s table", unmapped.Disk, unmapped.Code, unmapped.Statistic)
	case errors.Is(err, snmp.ErrTimeout):
		msg = "Timeout: No Response from " + host
	case errors.Is(err, statistic.ErrUnknownStatistic):
		msg = fmt.Sprintf("Unknown statistic %q, expected one of: %s", stat, strings.Join(statistic.Names(), ", "))
	case errors.Is(err, evaluator.ErrThresholdsNotApplicable):
		msg = "This statistic does not take warning or critical values"
	case errors.Is(err, evaluator.ErrMissingThresholdRange):
		msg = "Missing threshold range"
	case errors.Is(err, config.ErrInvalidConfig):
		msg = "Invalid configuration: " + strings.TrimPrefix(err.Error(), config.ErrInvalidConfig.Error()+": ")
	default:
		msg = "An unknown error occurred: " + err.Error()
	}
	return types.NewVerdict(types.StatusUnknown, msg)
}

// newTable prints the heading on its own line so it is never wrapped to the
// width of a narrow table
func newTable(w io.Writer, title, stat string) table.Writer {
	fmt.Fprintf(w, "%s: %s\n", title, stat)
	t := table.NewWriter()
	t.SetOutputMirror(w)
	return t
}

// DumpResults prints the joined index to value map in response order
func DumpResults(w io.Writer, stat string, results *types.ResultSet) {
	t := newTable(w, "Results", stat)
	t.AppendHeader(table.Row{"Disk", "Value"})
	for _, r := range results.Readings() {
		t.AppendRow(table.Row{r.Index, r.Value})
	}
	t.AppendFooter(table.Row{"Total", results.Len()})
	t.Render()
}

// DumpEvaluation prints the intermediate warning and critical lists
func DumpEvaluation(w io.Writer, eval evaluator.Evaluation) {
	t := newTable(w, "Classification", eval.Statistic.String())
	t.AppendHeader(table.Row{"Severity", "Message"})
	for _, line := range eval.Criticals {
		t.AppendRow(table.Row{types.StatusCritical, line})
	}
	for _, line := range eval.Warnings {
		t.AppendRow(table.Row{types.StatusWarning, line})
	}
	if eval.Statistic.Family() == statistic.FamilyPhysicalState {
		t.AppendFooter(table.Row{"Hot-spares", eval.HotSpares})
	}
	t.Render()
}
