// Package snmp walks LSI MegaRAID table columns over SNMP.
package snmp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrTimeout is returned when the agent does not answer in time
	ErrTimeout = errors.New("snmp request timeout")
	// ErrTransport is returned for any other transport or agent failure
	ErrTransport = errors.New("snmp transport failure")
	// ErrVersion is returned for an unsupported protocol version label
	ErrVersion = errors.New("unsupported snmp version")
)

const (
	VersionV1  = "SNMPv1"
	VersionV2c = "SNMPv2c"
)

// defaultMaxRows bounds a walk against agents that never leave the branch
const defaultMaxRows = 65536

// Options describes how to reach the agent
type Options struct {
	Host      string
	Port      uint16
	Community string
	Version   string
	Timeout   time.Duration
}

// Columns holds the values of two table columns walked side by side
type Columns struct {
	Index  []int64
	Values []int64
}

// nextGetter is the part of gosnmp.GoSNMP used by a walk
type nextGetter interface {
	GetNext(oids []string) (*gosnmp.SnmpPacket, error)
}

// Session is an open connection to an agent
type Session struct {
	host    string
	client  nextGetter
	closer  func() error
	closed  bool
	maxRows int
}

// ParseVersion converts a version label to the gosnmp version
func ParseVersion(label string) (gosnmp.SnmpVersion, error) {
	switch label {
	case VersionV1:
		return gosnmp.Version1, nil
	case VersionV2c:
		return gosnmp.Version2c, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrVersion, label)
	}
}

// Dial opens a session to the agent. The request is not retried.
func Dial(ctx context.Context, opts Options) (*Session, error) {
	version, err := ParseVersion(opts.Version)
	if err != nil {
		return nil, err
	}

	client := &gosnmp.GoSNMP{
		Context:   ctx,
		Target:    opts.Host,
		Port:      opts.Port,
		Community: opts.Community,
		Version:   version,
		Timeout:   opts.Timeout,
		Retries:   0,
	}
	if err := client.Connect(); err != nil {
		return nil, classify(opts.Host, err)
	}

	log.WithFields(log.Fields{
		"host":    opts.Host,
		"port":    opts.Port,
		"version": opts.Version,
		"timeout": opts.Timeout,
	}).Debug("SNMP session opened")

	return newSession(opts.Host, client, client.Conn.Close), nil
}

func newSession(host string, client nextGetter, closer func() error) *Session {
	return &Session{host: host, client: client, closer: closer, maxRows: defaultMaxRows}
}

// Close releases the session. Calling it more than once is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.closer == nil {
		return nil
	}
	log.WithField("host", s.host).Debug("SNMP session closed")
	return s.closer()
}

// WalkColumns walks two columns in lockstep, requesting the next row of both
// in a single GETNEXT. The walk ends as soon as either column leaves its
// branch, so the i-th index always belongs to the i-th value.
func (s *Session) WalkColumns(ctx context.Context, indexOID, valueOID string) (Columns, error) {
	if s.closed {
		return Columns{}, fmt.Errorf("%w: session closed", ErrTransport)
	}

	roots := []string{normalizeOID(indexOID), normalizeOID(valueOID)}
	cursor := []string{roots[0], roots[1]}
	var cols Columns

	for {
		if len(cols.Index) >= s.maxRows {
			return Columns{}, fmt.Errorf("%w: walk of %s exceeded %d rows", ErrTransport, valueOID, s.maxRows)
		}
		if err := ctx.Err(); err != nil {
			return Columns{}, classify(s.host, err)
		}

		packet, err := s.client.GetNext(cursor)
		if err != nil {
			return Columns{}, classify(s.host, err)
		}
		// SNMPv1 agents signal the end of the MIB view with noSuchName
		if packet.Error == gosnmp.NoSuchName {
			break
		}
		if packet.Error != gosnmp.NoError {
			return Columns{}, fmt.Errorf("%w: agent returned error %v", ErrTransport, packet.Error)
		}
		if len(packet.Variables) != len(roots) {
			return Columns{}, fmt.Errorf("%w: expected %d variables, got %d", ErrTransport, len(roots), len(packet.Variables))
		}

		index, value := packet.Variables[0], packet.Variables[1]
		if !inBranch(roots[0], index) || !inBranch(roots[1], value) {
			break
		}

		i, err := toInt64(index)
		if err != nil {
			return Columns{}, err
		}
		v, err := toInt64(value)
		if err != nil {
			return Columns{}, err
		}
		cols.Index = append(cols.Index, i)
		cols.Values = append(cols.Values, v)
		cursor = []string{index.Name, value.Name}
	}

	log.WithFields(log.Fields{
		"host": s.host,
		"oid":  valueOID,
		"rows": len(cols.Index),
	}).Debug("SNMP walk finished")
	return cols, nil
}

func normalizeOID(oid string) string {
	return "." + strings.TrimPrefix(oid, ".")
}

func inBranch(root string, pdu gosnmp.SnmpPDU) bool {
	switch pdu.Type {
	case gosnmp.EndOfMibView, gosnmp.NoSuchObject, gosnmp.NoSuchInstance:
		return false
	}
	return strings.HasPrefix(normalizeOID(pdu.Name), root+".")
}

func toInt64(pdu gosnmp.SnmpPDU) (int64, error) {
	switch pdu.Type {
	case gosnmp.Integer, gosnmp.Counter32, gosnmp.Gauge32, gosnmp.Counter64, gosnmp.Uinteger32, gosnmp.TimeTicks:
		return gosnmp.ToBigInt(pdu.Value).Int64(), nil
	default:
		return 0, fmt.Errorf("%w: %s is not an integer (%v)", ErrTransport, pdu.Name, pdu.Type)
	}
}

func classify(host string, err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout(),
		strings.Contains(strings.ToLower(err.Error()), "timeout"):
		return fmt.Errorf("%w: no response from %s: %v", ErrTimeout, host, err)
	default:
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
}
