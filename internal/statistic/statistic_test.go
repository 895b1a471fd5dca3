package statistic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupIsTotal(t *testing.T) {
	testCases := []struct {
		name   string
		stat   Statistic
		oid    string
		family Family
	}{
		{"pd_index", PhysicalDiskIndex, "1.3.6.1.4.1.3582.4.1.4.2.1.2.1.1", FamilyIndex},
		{"vd_state", VirtualDiskState, "1.3.6.1.4.1.3582.4.1.4.3.1.2.1.5", FamilyVirtualState},
		{"pd_state", PhysicalDiskState, "1.3.6.1.4.1.3582.4.1.4.2.1.2.1.10", FamilyPhysicalState},
		{"media_err_count", MediaErrorCount, "1.3.6.1.4.1.3582.4.1.4.2.1.2.1.7", FamilyCounter},
		{"other_err_count", OtherErrorCount, "1.3.6.1.4.1.3582.4.1.4.2.1.2.1.8", FamilyCounter},
		{"pred_fail_count", PredictiveFailureCount, "1.3.6.1.4.1.3582.4.1.4.2.1.2.1.9", FamilyCounter},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Lookup(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.stat, s)
			assert.Equal(t, tc.oid, s.OID())
			assert.Equal(t, tc.family, s.Family())
			assert.Equal(t, tc.name, s.String())
		})
	}
	assert.Len(t, All(), len(testCases))
}

func TestLookupRejectsUnknownNames(t *testing.T) {
	for _, name := range []string{"", "PD_STATE", "pd_state ", "battery", "1.3.6.1.4.1.3582"} {
		_, err := Lookup(name)
		assert.True(t, errors.Is(err, ErrUnknownStatistic), "name %q", name)
	}
}

func TestParseRejectsIndexColumn(t *testing.T) {
	_, err := Parse("pd_index")
	assert.ErrorIs(t, err, ErrUnknownStatistic)

	s, err := Parse("media_err_count")
	require.NoError(t, err)
	assert.Equal(t, MediaErrorCount, s)
	assert.True(t, s.Evaluable())
	assert.False(t, PhysicalDiskIndex.Evaluable())
}

func TestNames(t *testing.T) {
	assert.Equal(t,
		[]string{"vd_state", "pd_state", "media_err_count", "other_err_count", "pred_fail_count"},
		Names())
}

func TestStringOutOfRange(t *testing.T) {
	assert.Equal(t, "statistic(42)", Statistic(42).String())
	assert.False(t, Statistic(42).Evaluable())
}

func TestStateLabel(t *testing.T) {
	testCases := []struct {
		table StateTable
		code  int64
		label string
	}{
		{PhysicalDiskStates, PDOnline, "Online"},
		{PhysicalDiskStates, PDHotSpare, "Hot-spare"},
		{PhysicalDiskStates, PDFailed, "Failed"},
		{PhysicalDiskStates, PDConfiguredShielded, "CONFIGURED-SHIELDED"},
		{VirtualDiskStates, VDOffline, "Offline"},
		{VirtualDiskStates, VDPartiallyDegraded, "Partially Degraded"},
		{VirtualDiskStates, VDOptimal, "Optimal"},
	}

	for _, tc := range testCases {
		label, err := StateLabel(tc.table, tc.code)
		require.NoError(t, err)
		assert.Equal(t, tc.label, label)
	}

	assert.Equal(t, 12, PhysicalDiskStates.Len())
	assert.Equal(t, 4, VirtualDiskStates.Len())
}

func TestStateLabelUnmapped(t *testing.T) {
	_, err := StateLabel(PhysicalDiskStates, 99)
	assert.ErrorIs(t, err, ErrUnmappedStateCode)

	_, err = StateLabel(VirtualDiskStates, 4)
	assert.ErrorIs(t, err, ErrUnmappedStateCode)
	assert.Contains(t, err.Error(), "vd_state")
}
