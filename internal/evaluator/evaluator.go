// Package evaluator classifies per-disk readings and aggregates them into a
// single check verdict.
package evaluator

import (
	"errors"
	"fmt"
	"strings"

	"check-snmp-lsi-raid/internal/statistic"
	"check-snmp-lsi-raid/internal/utils"
	"check-snmp-lsi-raid/pkg/types"
)

var (
	// ErrThresholdsNotApplicable is returned when thresholds are given for a state statistic
	ErrThresholdsNotApplicable = errors.New("thresholds not applicable to state statistic")
	// ErrMissingThresholdRange is returned when only one of warning and critical is given
	ErrMissingThresholdRange = errors.New("missing threshold range")
)

// UnmappedStateError reports a state code with no label for a disk
type UnmappedStateError struct {
	Statistic statistic.Statistic
	Disk      int
	Code      int64
	Err       error
}

func (e *UnmappedStateError) Error() string {
	return fmt.Sprintf("disk %d: %v", e.Disk, e.Err)
}

func (e *UnmappedStateError) Unwrap() error {
	return e.Err
}

const (
	stateSeparator   = ", "
	counterSeparator = "\n"
)

// Evaluation is the verdict together with the intermediate classification
type Evaluation struct {
	Statistic statistic.Statistic
	Verdict   types.Verdict
	Warnings  []string
	Criticals []string
	HotSpares int
}

// Evaluate classifies the readings of stat. The result depends only on its
// arguments, and messages follow the order of the result set.
func Evaluate(stat statistic.Statistic, results *types.ResultSet, thresholds types.Thresholds) (Evaluation, error) {
	readings := results.Readings()

	switch stat.Family() {
	case statistic.FamilyPhysicalState:
		if thresholds.Any() {
			return Evaluation{}, ErrThresholdsNotApplicable
		}
		return evaluatePhysicalDisks(stat, readings)
	case statistic.FamilyVirtualState:
		if thresholds.Any() {
			return Evaluation{}, ErrThresholdsNotApplicable
		}
		return evaluateVirtualDisks(stat, readings)
	case statistic.FamilyCounter:
		return evaluateCounters(stat, readings, thresholds)
	default:
		return Evaluation{}, fmt.Errorf("%w: %s", statistic.ErrUnknownStatistic, stat)
	}
}

func evaluatePhysicalDisks(stat statistic.Statistic, readings []types.DiskReading) (Evaluation, error) {
	eval := Evaluation{Statistic: stat}

	for _, r := range readings {
		switch r.Value {
		case statistic.PDOnline:
			continue
		case statistic.PDHotSpare:
			eval.HotSpares++
			continue
		}
		label, err := statistic.StateLabel(statistic.PhysicalDiskStates, r.Value)
		if err != nil {
			return Evaluation{}, unmapped(stat, r, err)
		}
		eval.Criticals = append(eval.Criticals, utils.DiskLine(r.Index, label))
	}

	switch {
	case len(eval.Criticals) > 0:
		eval.Verdict = types.NewVerdict(types.StatusCritical, strings.Join(eval.Criticals, stateSeparator))
	case eval.HotSpares >= 1:
		eval.Verdict = types.NewVerdict(types.StatusOK, fmt.Sprintf("All disks optimal, %d Hot-spare", eval.HotSpares))
	default:
		eval.Verdict = types.NewVerdict(types.StatusWarning, "All disks optimal, No hot-spares detected!")
	}
	return eval, nil
}

func evaluateVirtualDisks(stat statistic.Statistic, readings []types.DiskReading) (Evaluation, error) {
	eval := Evaluation{Statistic: stat}

	for _, r := range readings {
		if r.Value == statistic.VDOptimal {
			continue
		}
		label, err := statistic.StateLabel(statistic.VirtualDiskStates, r.Value)
		if err != nil {
			return Evaluation{}, unmapped(stat, r, err)
		}
		line := utils.DiskLine(r.Index, label)
		switch r.Value {
		case statistic.VDPartiallyDegraded, statistic.VDDegraded:
			eval.Warnings = append(eval.Warnings, line)
		case statistic.VDOffline:
			eval.Criticals = append(eval.Criticals, line)
		}
	}

	switch {
	case len(eval.Criticals) > 0:
		all := append(append([]string{}, eval.Criticals...), eval.Warnings...)
		eval.Verdict = types.NewVerdict(types.StatusCritical, strings.Join(all, stateSeparator))
	case len(eval.Warnings) > 0:
		eval.Verdict = types.NewVerdict(types.StatusWarning, strings.Join(eval.Warnings, stateSeparator))
	default:
		eval.Verdict = types.NewVerdict(types.StatusOK, "All virtual devices optimal")
	}
	return eval, nil
}

func evaluateCounters(stat statistic.Statistic, readings []types.DiskReading, thresholds types.Thresholds) (Evaluation, error) {
	eval := Evaluation{Statistic: stat}

	var nonZero []types.DiskReading
	for _, r := range readings {
		if r.Value != 0 {
			nonZero = append(nonZero, r)
		}
	}

	// Thresholds are not checked when there is nothing to compare them with
	if len(nonZero) == 0 {
		eval.Verdict = types.NewVerdict(types.StatusOK, "No errors detected")
		return eval, nil
	}

	if !thresholds.Any() {
		for _, r := range nonZero {
			eval.Warnings = append(eval.Warnings, utils.ErrorCountLine(r.Index, r.Value))
		}
		eval.Verdict = types.NewVerdict(types.StatusWarning, strings.Join(eval.Warnings, counterSeparator))
		return eval, nil
	}

	if !thresholds.Complete() {
		return Evaluation{}, ErrMissingThresholdRange
	}

	warning, critical := *thresholds.Warning, *thresholds.Critical
	for _, r := range nonZero {
		switch {
		case r.Value >= critical:
			eval.Criticals = append(eval.Criticals, utils.ErrorCountLine(r.Index, r.Value))
		case r.Value >= warning:
			eval.Warnings = append(eval.Warnings, utils.ErrorCountLine(r.Index, r.Value))
		}
	}

	switch {
	case len(eval.Criticals) > 0:
		all := append(append([]string{}, eval.Criticals...), eval.Warnings...)
		eval.Verdict = types.NewVerdict(types.StatusCritical, strings.Join(all, counterSeparator))
	case len(eval.Warnings) > 0:
		eval.Verdict = types.NewVerdict(types.StatusWarning, strings.Join(eval.Warnings, counterSeparator))
	default:
		eval.Verdict = types.NewVerdict(types.StatusOK, "No errors above warning threshold")
	}
	return eval, nil
}

func unmapped(stat statistic.Statistic, r types.DiskReading, err error) error {
	return &UnmappedStateError{Statistic: stat, Disk: r.Index, Code: r.Value, Err: err}
}
