package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sirosfoundation/go-frejaeid/internal/config"
	"github.com/sirosfoundation/go-frejaeid/pkg/client"
	"github.com/sirosfoundation/go-frejaeid/pkg/metrics"
)

// app is the state shared by all commands of one invocation
type app struct {
	v        *viper.Viper
	out      io.Writer
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics.Collector

	// customize adjusts the client configuration before a client is built
	customize func(*client.Config)
}

// flag name -> configuration key
var boundFlags = map[string]string{
	"environment":       "environment",
	"server-url":        "serverUrl",
	"context":           "transactionContext",
	"relying-party-id":  "relyingPartyId",
	"keystore":          "tls.keystore",
	"keystore-password": "tls.keystorePassword",
	"server-cert":       "tls.serverCertificate",
	"connect-timeout":   "timeouts.connection",
	"read-timeout":      "timeouts.read",
	"poll-interval":     "polling.interval",
	"log-level":         "logging.level",
	"log-format":        "logging.format",
	"metrics-textfile":  "observability.metrics.textfile",
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out}
	return a.rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "frejaeid",
		Short:             "Freja eID relying party client",
		Long:              `Initiate, poll, cancel and delete Freja eID authentications, signatures and organisation IDs.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		Version:           "1.0.0",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "YAML configuration file")
	pf.StringP("output", "o", "json", "Output format: json or yaml")
	pf.String("environment", "", "Freja eID environment: test or production")
	pf.String("server-url", "", "Base URL overriding the environment")
	pf.String("context", "", "Transaction context: personal or organisational")
	pf.String("relying-party-id", "", "Act on behalf of this relying party")
	pf.String("keystore", "", "PKCS#12 keystore with the client certificate")
	pf.String("keystore-password", "", "Keystore password")
	pf.String("server-cert", "", "Trusted server certificate (PEM or DER)")
	pf.Duration("connect-timeout", 0, "Connection timeout")
	pf.Duration("read-timeout", 0, "Read timeout")
	pf.Duration("poll-interval", 0, "Delay between result polls")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("log-format", "", "Log format: console or json")
	pf.String("metrics-textfile", "", "Write Prometheus metrics to this file on exit")

	for flag, key := range boundFlags {
		// The flags are defined above
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}
	a.v.SetEnvPrefix("FREJAEID")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(a.authCmd(), a.signCmd(), a.orgIDCmd())
	return root
}

// setup loads the configuration, merges flags and environment, and builds
// the logger and metrics
func (a *app) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")

	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}
	a.merge(cfg)
	if err := cfg.Finalize(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	a.logger = logger

	a.registry = prometheus.NewRegistry()
	if a.metrics, err = metrics.NewCollector(a.registry); err != nil {
		return err
	}
	return nil
}

// merge overlays every key set by a flag or an environment variable
func (a *app) merge(cfg *config.Config) {
	str := func(key string, dst *string) {
		if a.v.IsSet(key) && a.v.GetString(key) != "" {
			*dst = a.v.GetString(key)
		}
	}
	str("environment", &cfg.Environment)
	str("serverUrl", &cfg.ServerURL)
	str("transactionContext", &cfg.TransactionContext)
	str("relyingPartyId", &cfg.RelyingPartyID)
	str("tls.keystore", &cfg.TLS.Keystore)
	str("tls.keystorePassword", &cfg.TLS.KeystorePassword)
	str("tls.serverCertificate", &cfg.TLS.ServerCertificate)
	str("logging.level", &cfg.Logging.Level)
	str("logging.format", &cfg.Logging.Format)
	str("observability.metrics.textfile", &cfg.Observability.Metrics.Textfile)

	if d := a.v.GetDuration("timeouts.connection"); d != 0 {
		cfg.Timeouts.Connection = d
	}
	if d := a.v.GetDuration("timeouts.read"); d != 0 {
		cfg.Timeouts.Read = d
	}
	if d := a.v.GetDuration("polling.interval"); d != 0 {
		cfg.Polling.Interval = d
	}
}

func (a *app) teardown() error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.cfg == nil || a.cfg.Observability.Metrics.Textfile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.cfg.Observability.Metrics.Textfile, a.registry); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

func (a *app) clientConfig() (client.Config, error) {
	cc, err := a.cfg.ClientConfig(a.logger, a.metrics)
	if err != nil {
		return client.Config{}, err
	}
	if a.customize != nil {
		a.customize(&cc)
	}
	return cc, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc.Build()
}
