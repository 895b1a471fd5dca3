package health

import (
	"context"
	"io"
	"time"

	log "github.com/sirupsen/logrus"

	"check-snmp-lsi-raid/internal/collector"
	"check-snmp-lsi-raid/internal/config"
	"check-snmp-lsi-raid/internal/evaluator"
	"check-snmp-lsi-raid/internal/metrics"
	"check-snmp-lsi-raid/internal/report"
	"check-snmp-lsi-raid/internal/snmp"
	"check-snmp-lsi-raid/internal/statistic"
	"check-snmp-lsi-raid/pkg/types"
)

// Session is an open agent session that can walk table columns
type Session interface {
	collector.Walker
	Close() error
}

// Dialer opens a session to the agent
type Dialer func(ctx context.Context, opts snmp.Options) (Session, error)

// DialSNMP opens a gosnmp session
func DialSNMP(ctx context.Context, opts snmp.Options) (Session, error) {
	s, err := snmp.Dial(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Outcome is the result of one check run
type Outcome struct {
	Verdict    types.Verdict
	Results    *types.ResultSet
	Evaluation *evaluator.Evaluation
	Err        error
}

// Service runs a single check
type Service struct {
	cfg     config.Config
	dial    Dialer
	metrics *metrics.Metrics
	debug   io.Writer
}

// New creates a new check service. debug receives the result dumps when
// cfg.Debug is set; m may be nil.
func New(cfg config.Config, dial Dialer, m *metrics.Metrics, debug io.Writer) *Service {
	if dial == nil {
		dial = DialSNMP
	}
	if debug == nil {
		debug = io.Discard
	}
	return &Service{
		cfg:     cfg,
		dial:    dial,
		metrics: m,
		debug:   debug,
	}
}

// Check runs the check and always returns a verdict. Errors become UNKNOWN.
func (s *Service) Check(ctx context.Context) Outcome {
	start := time.Now()
	outcome := s.run(ctx)
	if outcome.Err != nil {
		log.WithError(outcome.Err).WithField("statistic", s.cfg.Statistic).Debug("Check failed")
		outcome.Verdict = report.Failure(outcome.Err, s.cfg.Host, s.cfg.Statistic)
	}
	s.record(outcome, time.Since(start))
	return outcome
}

func (s *Service) run(ctx context.Context) Outcome {
	// the statistic is validated before the agent is contacted
	if err := s.cfg.Validate(); err != nil {
		return Outcome{Err: err}
	}
	stat, err := statistic.Parse(s.cfg.Statistic)
	if err != nil {
		return Outcome{Err: err}
	}

	logger := log.WithFields(log.Fields{
		"host":      s.cfg.Host,
		"statistic": stat.String(),
		"oid":       stat.OID(),
	})

	session, err := s.dial(ctx, s.cfg.SNMPOptions())
	if err != nil {
		return Outcome{Err: err}
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close SNMP session")
		}
	}()

	logger.Debug("Walking statistic column")
	results, err := collector.New(session).Collect(ctx, stat)
	if err != nil {
		return Outcome{Err: err}
	}
	if s.cfg.Debug {
		report.DumpResults(s.debug, stat.String(), results)
	}

	eval, err := evaluator.Evaluate(stat, results, s.cfg.Thresholds())
	if err != nil {
		return Outcome{Results: results, Err: err}
	}
	if s.cfg.Debug {
		report.DumpEvaluation(s.debug, eval)
	}

	logger.WithField("status", eval.Verdict.Status).Debug("Check evaluated")
	return Outcome{Verdict: eval.Verdict, Results: results, Evaluation: &eval}
}

func (s *Service) record(outcome Outcome, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.Reset()
	s.metrics.Record(s.cfg.Statistic, outcome.Verdict.Status, outcome.Results, elapsed)

	if s.cfg.MetricsFile == "" {
		return
	}
	if err := s.metrics.WriteTextfile(s.cfg.MetricsFile); err != nil {
		log.WithError(err).WithField("path", s.cfg.MetricsFile).Warn("Failed to write metrics file")
	}
}
