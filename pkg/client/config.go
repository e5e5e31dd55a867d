package client

import (
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sirosfoundation/go-frejaeid/pkg/eid"
	"github.com/sirosfoundation/go-frejaeid/pkg/endpoint"
	"github.com/sirosfoundation/go-frejaeid/pkg/lifecycle"
	"github.com/sirosfoundation/go-frejaeid/pkg/metrics"
	"github.com/sirosfoundation/go-frejaeid/pkg/transport"
)

// Defaults applied to zero fields of Config
const (
	DefaultConnectionTimeout = transport.DefaultConnectionTimeout
	DefaultReadTimeout       = transport.DefaultReadTimeout
	DefaultPollingInterval   = lifecycle.DefaultPollInterval
)

// Config is the immutable configuration of a client. It is passed by value
// and read once by the constructors.
type Config struct {
	// Environment selects the base URL. ServerURL overrides it.
	Environment eid.Environment
	ServerURL   string

	// SSL is required even when Transport is injected
	SSL transport.SSLSettings

	ConnectionTimeout time.Duration
	ReadTimeout       time.Duration
	PollingInterval   time.Duration

	// TransactionContext is ignored by NewOrganisationIDClient, which always
	// acts in the organisational context
	TransactionContext eid.TransactionContext

	// Transport replaces the HTTPS transport, typically in tests
	Transport lifecycle.Transport
	Logger    *zap.Logger
	Metrics   *metrics.Collector
}

// BaseURL returns the URL every route is appended to
func (c Config) BaseURL() (string, error) {
	if c.ServerURL != "" {
		u, err := url.Parse(c.ServerURL)
		if err != nil {
			return "", eid.WrapConfigError(err, "invalid server URL %q", c.ServerURL)
		}
		if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
			return "", eid.NewConfigError("server URL %q must be an absolute http(s) URL", c.ServerURL)
		}
		return strings.TrimRight(c.ServerURL, "/"), nil
	}

	if c.Environment == "" {
		return "", eid.NewConfigError("environment or server URL is required")
	}
	base := c.Environment.URL()
	if base == "" {
		return "", eid.NewConfigError("unknown environment %q", string(c.Environment))
	}
	return base, nil
}

// logger returns the root logger of all client components
func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger.Named("frejaeid")
}

// buildTransport loads the TLS material and builds the HTTPS transport, unless
// one was injected
func (c Config) buildTransport(logger *zap.Logger) (lifecycle.Transport, error) {
	if c.ConnectionTimeout < 0 {
		return nil, eid.NewConfigError("connection timeout cannot be negative, got %s", c.ConnectionTimeout)
	}
	if c.ReadTimeout < 0 {
		return nil, eid.NewConfigError("read timeout cannot be negative, got %s", c.ReadTimeout)
	}

	tlsConfig, err := transport.LoadTLSConfig(c.SSL)
	if err != nil {
		return nil, err
	}
	if c.Transport != nil {
		return c.Transport, nil
	}

	httpsConfig := transport.DefaultHTTPSConfig()
	httpsConfig.TLSConfig = tlsConfig
	if c.ConnectionTimeout > 0 {
		httpsConfig.ConnectionTimeout = c.ConnectionTimeout
	}
	if c.ReadTimeout > 0 {
		httpsConfig.ReadTimeout = c.ReadTimeout
	}
	httpsConfig.Logger = logger
	httpsConfig.Metrics = c.Metrics

	return transport.NewHTTPSClient(httpsConfig), nil
}

// newEngine validates the configuration and builds the engine of one
// transaction kind
func (c Config) newEngine(kind endpoint.Kind, txCtx eid.TransactionContext, ops ...endpoint.Operation) (*lifecycle.Engine, *zap.Logger, error) {
	base, err := c.BaseURL()
	if err != nil {
		return nil, nil, err
	}

	logger := c.logger()
	tr, err := c.buildTransport(logger)
	if err != nil {
		return nil, nil, err
	}

	engine, err := lifecycle.New(lifecycle.Settings{
		BaseURL:            base,
		Kind:               kind,
		TransactionContext: txCtx,
		Capabilities: lifecycle.Capabilities{
			Operations: ops,
			Terminal:   eid.DefaultTerminalStatuses,
		},
		Transport:    tr,
		PollInterval: c.PollingInterval,
		Logger:       logger,
		Metrics:      c.Metrics,
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("client created",
		zap.String("kind", string(kind)),
		zap.String("base_url", base),
		zap.Stringer("context", txCtx),
		zap.Duration("polling_interval", engine.PollInterval()))

	return engine, logger.Named(string(kind)), nil
}
