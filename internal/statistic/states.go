package statistic

import "fmt"

// StateTable maps a coded state to its label
type StateTable struct {
	name   string
	labels map[int64]string
}

// Physical disk states (pdState)
const (
	PDUnconfiguredGood     int64 = 0
	PDUnconfiguredBad      int64 = 1
	PDHotSpare             int64 = 2
	PDOffline              int64 = 16
	PDFailed               int64 = 17
	PDRebuild              int64 = 20
	PDOnline               int64 = 24
	PDCopyback             int64 = 32
	PDSystem               int64 = 64
	PDUnconfiguredShielded int64 = 128
	PDHotSpareShielded     int64 = 130
	PDConfiguredShielded   int64 = 144
)

// Virtual disk states (vdState)
const (
	VDOffline           int64 = 0
	VDPartiallyDegraded int64 = 1
	VDDegraded          int64 = 2
	VDOptimal           int64 = 3
)

var (
	PhysicalDiskStates = StateTable{
		name: "pd_state",
		labels: map[int64]string{
			PDUnconfiguredGood:     "Unconfigured-good",
			PDUnconfiguredBad:      "Unconfigured-bad",
			PDHotSpare:             "Hot-spare",
			PDOffline:              "Offline",
			PDFailed:               "Failed",
			PDRebuild:              "Rebuild",
			PDOnline:               "Online",
			PDCopyback:             "Copyback",
			PDSystem:               "System",
			PDUnconfiguredShielded: "UNCONFIGURED-SHIELDED",
			PDHotSpareShielded:     "HOTSPARE-SHIELDED",
			PDConfiguredShielded:   "CONFIGURED-SHIELDED",
		},
	}

	VirtualDiskStates = StateTable{
		name: "vd_state",
		labels: map[int64]string{
			VDOffline:           "Offline",
			VDPartiallyDegraded: "Partially Degraded",
			VDDegraded:          "Degraded",
			VDOptimal:           "Optimal",
		},
	}
)

// StateLabel returns the label for a code. Codes missing from the table are
// an error, never an empty label.
func StateLabel(table StateTable, code int64) (string, error) {
	label, ok := table.labels[code]
	if !ok {
		return "", fmt.Errorf("%w: %d in %s table", ErrUnmappedStateCode, code, table.name)
	}
	return label, nil
}

// Len returns the number of codes in the table
func (t StateTable) Len() int {
	return len(t.labels)
}
