package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"check-snmp-lsi-raid/internal/config"
	"check-snmp-lsi-raid/internal/health"
	"check-snmp-lsi-raid/internal/metrics"
	"check-snmp-lsi-raid/internal/report"
	"check-snmp-lsi-raid/internal/statistic"
	"check-snmp-lsi-raid/pkg/types"
)

// Build-time variables (set via -ldflags)
var (
	version = "dev"
	commit  = "unknown"
)

// options mirrors the command line flags
type options struct {
	configFile  string
	host        string
	port        uint16
	community   string
	statistic   string
	warning     int64
	critical    int64
	snmpVersion string
	timeout     int
	debug       bool
	logLevel    string
	metricsFile string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, health.DialSNMP)
	stop()
	os.Exit(code)
}

// run executes the check and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer, dial health.Dialer) int {
	code := int(types.StatusOK)
	cmd := newRootCommand(stdout, stderr, dial, &code)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		return report.Emit(stdout, report.CheckName, types.NewVerdict(types.StatusUnknown, err.Error()))
	}
	return code
}

func newRootCommand(stdout, stderr io.Writer, dial health.Dialer, code *int) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "check-snmp-lsi-raid",
		Short: "Check LSI MegaRAID disk health over SNMP.",
		Long: "check-snmp-lsi-raid walks the LSI MegaRAID SNMP agent for one statistic and reports\n" +
			"an OK, WARNING, CRITICAL or UNKNOWN verdict with the matching exit code.\n" +
			"Statistics: " + strings.Join(statistic.Names(), ", "),
		Example: "check-snmp-lsi-raid -h 10.0.0.5 -C public -S pd_state\n" +
			"check-snmp-lsi-raid -h 10.0.0.5 -S media_err_count -w 5 -c 20",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := buildConfig(cmd.Flags(), opts)
			if err != nil {
				return err
			}
			setupLogging(stderr, cfg.LogLevel, cfg.Debug)

			svc := health.New(*cfg, dial, metrics.New(), stdout)
			outcome := svc.Check(cmd.Context())
			*code = report.Emit(stdout, report.CheckName, outcome.Verdict)
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	// -h is the agent host, so help only has the long form
	flags.Bool("help", false, "help for check-snmp-lsi-raid")
	flags.StringVar(&opts.configFile, "config", "", "YAML file with check settings")
	flags.StringVarP(&opts.host, "host", "h", "127.0.0.1", "Agent host or address")
	flags.Uint16VarP(&opts.port, "port", "p", 161, "Agent UDP port")
	flags.StringVarP(&opts.community, "community", "C", "public", "SNMP community string")
	flags.StringVarP(&opts.statistic, "statistic", "S", "", "Statistic to check ("+strings.Join(statistic.Names(), ", ")+")")
	flags.Int64VarP(&opts.warning, "warning", "w", 0, "Warning threshold (counter statistics only)")
	flags.Int64VarP(&opts.critical, "critical", "c", 0, "Critical threshold (counter statistics only)")
	flags.StringVarP(&opts.snmpVersion, "snmp-version", "v", "SNMPv2c", "SNMP version to use (SNMPv1, SNMPv2c)")
	flags.IntVarP(&opts.timeout, "timeout", "t", 1, "Network timeout in seconds")
	flags.BoolVarP(&opts.debug, "debug", "D", false, "Print the raw results and classification lists")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level on stderr (debug, info, warn, error)")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")

	return cmd
}

// buildConfig applies defaults, environment, the config file and finally
// the flags given on the command line
func buildConfig(flags *pflag.FlagSet, opts *options) (*config.Config, error) {
	cfg := config.New()
	if opts.configFile != "" {
		if err := cfg.LoadFile(opts.configFile); err != nil {
			return nil, err
		}
	}

	if flags.Changed("host") {
		cfg.Host = opts.host
	}
	if flags.Changed("port") {
		cfg.Port = opts.port
	}
	if flags.Changed("community") {
		cfg.Community = opts.community
	}
	if flags.Changed("statistic") {
		cfg.Statistic = opts.statistic
	}
	if flags.Changed("warning") {
		w := opts.warning
		cfg.Warning = &w
	}
	if flags.Changed("critical") {
		c := opts.critical
		cfg.Critical = &c
	}
	if flags.Changed("snmp-version") {
		cfg.SNMPVersion = opts.snmpVersion
	}
	if flags.Changed("timeout") {
		cfg.Timeout = time.Duration(opts.timeout) * time.Second
	}
	if flags.Changed("debug") {
		cfg.Debug = opts.debug
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = opts.metricsFile
	}
	return cfg, nil
}

func setupLogging(out io.Writer, level string, debug bool) {
	log.SetOutput(out)
	log.SetFormatter(&log.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
		log.WithError(err).Warn("Invalid log level, using warn")
	}
	if debug {
		lvl = log.DebugLevel
	}
	log.SetLevel(lvl)
}
