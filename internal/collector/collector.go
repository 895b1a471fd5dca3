package collector

import (
	"context"

	log "github.com/sirupsen/logrus"

	"check-snmp-lsi-raid/internal/snmp"
	"check-snmp-lsi-raid/internal/statistic"
	"check-snmp-lsi-raid/pkg/types"
)

// Walker walks two table columns side by side
type Walker interface {
	WalkColumns(ctx context.Context, indexOID, valueOID string) (snmp.Columns, error)
}

// Collector reads one statistic per disk from the agent
type Collector struct {
	walker Walker
}

// New creates a new collector
func New(walker Walker) *Collector {
	return &Collector{walker: walker}
}

// Collect walks the disk index column together with the statistic column and
// returns the joined result set
func (c *Collector) Collect(ctx context.Context, stat statistic.Statistic) (*types.ResultSet, error) {
	cols, err := c.walker.WalkColumns(ctx, statistic.PhysicalDiskIndex.OID(), stat.OID())
	if err != nil {
		return nil, err
	}

	results, dropped := Join(cols.Index, cols.Values)
	if dropped > 0 {
		log.WithFields(log.Fields{
			"statistic": stat.String(),
			"index":     len(cols.Index),
			"values":    len(cols.Values),
		}).Warnf("Column lengths differ, dropped %d unpaired entries", dropped)
	}

	log.WithFields(log.Fields{
		"statistic": stat.String(),
		"disks":     results.Len(),
	}).Debug("Collected disk readings")
	return results, nil
}

// Join pairs the i-th index with the i-th value. Pairing stops at the shorter
// sequence; the number of unpaired entries is returned. A repeated index
// keeps the last value.
func Join(index, values []int64) (*types.ResultSet, int) {
	n := len(index)
	if len(values) < n {
		n = len(values)
	}

	results := types.NewResultSet()
	for i := 0; i < n; i++ {
		results.Set(int(index[i]), values[i])
	}
	return results, len(index) + len(values) - 2*n
}
