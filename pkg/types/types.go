package types

import "strings"

// Status represents a check severity. The numeric value is the process exit code.
type Status int

const (
	StatusOK       Status = 0
	StatusWarning  Status = 1
	StatusCritical Status = 2
	StatusUnknown  Status = 3
)

// String returns the upper-case severity label
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "WARNING"
	case StatusCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ExitCode returns the monitoring exit code for the status
func (s Status) ExitCode() int {
	switch s {
	case StatusOK, StatusWarning, StatusCritical:
		return int(s)
	default:
		return int(StatusUnknown)
	}
}

// Verdict is the single result of a check run
type Verdict struct {
	Status   Status
	Messages []string
}

// NewVerdict creates a verdict with the given status and message lines
func NewVerdict(status Status, messages ...string) Verdict {
	return Verdict{Status: status, Messages: messages}
}

// Text joins the verdict messages into the text printed after the status
func (v Verdict) Text() string {
	return strings.Join(v.Messages, "\n")
}

// DiskReading is a single raw value reported for one disk
type DiskReading struct {
	Index int
	Value int64
}

// ResultSet maps disk index to raw value, preserving the order in which the
// agent reported the disks.
type ResultSet struct {
	order  []int
	values map[int]int64
}

// NewResultSet creates an empty result set
func NewResultSet() *ResultSet {
	return &ResultSet{values: make(map[int]int64)}
}

// Set stores a value. A repeated index overwrites the value but keeps its
// original position.
func (r *ResultSet) Set(index int, value int64) {
	if r.values == nil {
		r.values = make(map[int]int64)
	}
	if _, ok := r.values[index]; !ok {
		r.order = append(r.order, index)
	}
	r.values[index] = value
}

// Len returns the number of disks in the result set
func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Readings returns the disk readings in response order
func (r *ResultSet) Readings() []DiskReading {
	if r == nil {
		return nil
	}
	readings := make([]DiskReading, 0, len(r.order))
	for _, index := range r.order {
		readings = append(readings, DiskReading{Index: index, Value: r.values[index]})
	}
	return readings
}

// Thresholds holds the optional warning and critical cutoffs for counter statistics
type Thresholds struct {
	Warning  *int64
	Critical *int64
}

// NewThresholds creates a thresholds pair with both values set
func NewThresholds(warning, critical int64) Thresholds {
	return Thresholds{Warning: &warning, Critical: &critical}
}

// Any reports whether at least one threshold is set
func (t Thresholds) Any() bool {
	return t.Warning != nil || t.Critical != nil
}

// Complete reports whether both thresholds are set
func (t Thresholds) Complete() bool {
	return t.Warning != nil && t.Critical != nil
}
