// Package statistic maps LSI MegaRAID statistic names to their SNMP OIDs and
// decodes the coded disk states reported by the agent.
package statistic

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStatistic is returned for a name that is not a known statistic
	ErrUnknownStatistic = errors.New("unknown statistic")
	// ErrUnmappedStateCode is returned when a state code has no label
	ErrUnmappedStateCode = errors.New("unmapped state code")
)

// Statistic identifies a column of the LSI MegaRAID MIB
type Statistic int

const (
	PhysicalDiskIndex Statistic = iota
	VirtualDiskState
	PhysicalDiskState
	MediaErrorCount
	OtherErrorCount
	PredictiveFailureCount
)

// Family selects how readings of a statistic are classified
type Family int

const (
	FamilyIndex Family = iota
	FamilyPhysicalState
	FamilyVirtualState
	FamilyCounter
)

// lsiPhysicalDrive and lsiVirtualDrive are the table entries under the
// LSI-MegaRAID-SAS-MIB enterprise branch (1.3.6.1.4.1.3582).
const (
	lsiPhysicalDrive = "1.3.6.1.4.1.3582.4.1.4.2.1.2.1"
	lsiVirtualDrive  = "1.3.6.1.4.1.3582.4.1.4.3.1.2.1"
)

type definition struct {
	name   string
	oid    string
	family Family
}

var definitions = map[Statistic]definition{
	PhysicalDiskIndex:      {"pd_index", lsiPhysicalDrive + ".1", FamilyIndex},
	VirtualDiskState:       {"vd_state", lsiVirtualDrive + ".5", FamilyVirtualState},
	PhysicalDiskState:      {"pd_state", lsiPhysicalDrive + ".10", FamilyPhysicalState},
	MediaErrorCount:        {"media_err_count", lsiPhysicalDrive + ".7", FamilyCounter},
	OtherErrorCount:        {"other_err_count", lsiPhysicalDrive + ".8", FamilyCounter},
	PredictiveFailureCount: {"pred_fail_count", lsiPhysicalDrive + ".9", FamilyCounter},
}

// All returns every statistic in declaration order
func All() []Statistic {
	return []Statistic{
		PhysicalDiskIndex,
		VirtualDiskState,
		PhysicalDiskState,
		MediaErrorCount,
		OtherErrorCount,
		PredictiveFailureCount,
	}
}

// Lookup resolves any of the six statistic names, including pd_index
func Lookup(name string) (Statistic, error) {
	for _, s := range All() {
		if definitions[s].name == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownStatistic, name)
}

// Parse resolves a statistic that can be checked. pd_index is only used to
// label the other columns and is rejected.
func Parse(name string) (Statistic, error) {
	s, err := Lookup(name)
	if err != nil {
		return 0, err
	}
	if !s.Evaluable() {
		return 0, fmt.Errorf("%w: %s", ErrUnknownStatistic, name)
	}
	return s, nil
}

// Names returns the names accepted by Parse
func Names() []string {
	var names []string
	for _, s := range All() {
		if s.Evaluable() {
			names = append(names, s.String())
		}
	}
	return names
}

// String returns the statistic name as used on the command line
func (s Statistic) String() string {
	if d, ok := definitions[s]; ok {
		return d.name
	}
	return fmt.Sprintf("statistic(%d)", int(s))
}

// OID returns the column OID walked for the statistic
func (s Statistic) OID() string {
	return definitions[s].oid
}

// Family returns the classification family of the statistic
func (s Statistic) Family() Family {
	return definitions[s].family
}

// Evaluable reports whether the statistic can be selected for a check
func (s Statistic) Evaluable() bool {
	d, ok := definitions[s]
	return ok && d.family != FamilyIndex
}
