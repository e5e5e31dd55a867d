// Package config handles configuration loading for the frejaeid CLI.
//
// Configuration is loaded from a YAML file with support for environment
// variable expansion (${VAR} or $VAR syntax), so the keystore password can
// be injected at runtime.
//
// # Configuration Sections
//
//   - environment, serverUrl: which Freja eID installation to call
//   - tls: keystore and trusted server certificate
//   - timeouts: connection and read timeouts
//   - polling: interval between get-result calls and the default wait
//   - logging: zap level and encoding
//   - observability: Prometheus textfile output
//
// # Example Configuration
//
//	environment: test
//	transactionContext: personal
//	tls:
//	  keystore: /etc/frejaeid/rp.p12
//	  keystorePassword: ${FREJAEID_KEYSTORE_PASSWORD}
//	  serverCertificate: /etc/frejaeid/server.pem
//	timeouts:
//	  connection: 20s
//	  read: 20s
//	polling:
//	  interval: 3s
//	  maxWait: 2m
//
// See [Load] for loading configuration from a file.
package config

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sirosfoundation/go-frejaeid/pkg/client"
	"github.com/sirosfoundation/go-frejaeid/pkg/eid"
	"github.com/sirosfoundation/go-frejaeid/pkg/lifecycle"
	"github.com/sirosfoundation/go-frejaeid/pkg/metrics"
	"github.com/sirosfoundation/go-frejaeid/pkg/transport"
)

// Config is the root configuration structure
type Config struct {
	Environment        string              `yaml:"environment"`
	ServerURL          string              `yaml:"serverUrl"`
	TransactionContext string              `yaml:"transactionContext"`
	RelyingPartyID     string              `yaml:"relyingPartyId"`
	TLS                TLSConfig           `yaml:"tls"`
	Timeouts           TimeoutConfig       `yaml:"timeouts"`
	Polling            PollingConfig       `yaml:"polling"`
	Logging            LoggingConfig       `yaml:"logging"`
	Observability      ObservabilityConfig `yaml:"observability"`
}

// TLSConfig holds the client TLS material
type TLSConfig struct {
	Keystore          string `yaml:"keystore"`
	KeystorePassword  string `yaml:"keystorePassword"`
	ServerCertificate string `yaml:"serverCertificate"`
}

// TimeoutConfig holds transport timeouts
type TimeoutConfig struct {
	Connection time.Duration `yaml:"connection"`
	Read       time.Duration `yaml:"read"`
}

// PollingConfig holds result polling settings
type PollingConfig struct {
	Interval time.Duration `yaml:"interval"`
	// MaxWait is used by poll commands that are not given --max-wait
	MaxWait time.Duration `yaml:"maxWait"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

// ObservabilityConfig holds metrics settings
type ObservabilityConfig struct {
	Metrics struct {
		// Textfile receives the collected metrics in the Prometheus text
		// format when a command finishes
		Textfile string `yaml:"textfile"`
	} `yaml:"metrics"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used without a config file. It still
// has to be completed with TLS settings.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Finalize applies defaults and validates. It is called again after flag
// and environment overrides have been merged.
func (c *Config) Finalize() error {
	c.applyDefaults()
	if err := c.validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Environment == "" && c.ServerURL == "" {
		c.Environment = "test"
	}
	if c.TransactionContext == "" {
		c.TransactionContext = eid.ContextPersonal.String()
	}
	if c.Timeouts.Connection == 0 {
		c.Timeouts.Connection = transport.DefaultConnectionTimeout
	}
	if c.Timeouts.Read == 0 {
		c.Timeouts.Read = transport.DefaultReadTimeout
	}
	if c.Polling.Interval == 0 {
		c.Polling.Interval = lifecycle.DefaultPollInterval
	}
	if c.Polling.MaxWait == 0 {
		c.Polling.MaxWait = 2 * time.Minute
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
}

func (c *Config) validate() error {
	if c.Environment != "" {
		if _, err := eid.ParseEnvironment(c.Environment); err != nil {
			return fmt.Errorf("environment: %w", err)
		}
	}
	if _, err := eid.ParseTransactionContext(c.TransactionContext); err != nil {
		return fmt.Errorf("transactionContext: %w", err)
	}

	if c.Timeouts.Connection < 0 || c.Timeouts.Read < 0 {
		return fmt.Errorf("timeouts cannot be negative")
	}
	if c.Polling.Interval < lifecycle.MinPollInterval || c.Polling.Interval > lifecycle.MaxPollInterval {
		return fmt.Errorf("polling.interval must be between %s and %s, got %s",
			lifecycle.MinPollInterval, lifecycle.MaxPollInterval, c.Polling.Interval)
	}
	if c.Polling.MaxWait < time.Second {
		return fmt.Errorf("polling.maxWait must be at least 1s, got %s", c.Polling.MaxWait)
	}

	switch c.Logging.Format {
	case "json", "console":
		// Valid formats
	default:
		return fmt.Errorf("logging.format must be 'json' or 'console', got '%s'", c.Logging.Format)
	}
	if _, err := zap.ParseAtomicLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}

	return nil
}

// ClientConfig converts the file configuration into a client configuration
func (c *Config) ClientConfig(logger *zap.Logger, m *metrics.Collector) (client.Config, error) {
	var env eid.Environment
	if c.Environment != "" {
		var err error
		if env, err = eid.ParseEnvironment(c.Environment); err != nil {
			return client.Config{}, err
		}
	}
	txCtx, err := eid.ParseTransactionContext(c.TransactionContext)
	if err != nil {
		return client.Config{}, err
	}

	return client.Config{
		Environment: env,
		ServerURL:   c.ServerURL,
		SSL: transport.SSLSettings{
			KeystorePath:          c.TLS.Keystore,
			KeystorePassword:      c.TLS.KeystorePassword,
			ServerCertificatePath: c.TLS.ServerCertificate,
		},
		ConnectionTimeout:  c.Timeouts.Connection,
		ReadTimeout:        c.Timeouts.Read,
		PollingInterval:    c.Polling.Interval,
		TransactionContext: txCtx,
		Logger:             logger,
		Metrics:            m,
	}, nil
}

// MaxWaitSeconds returns the default poll budget in whole seconds
func (c *Config) MaxWaitSeconds() int {
	return int(c.Polling.MaxWait / time.Second)
}
