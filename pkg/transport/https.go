package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/sirosfoundation/go-frejaeid/pkg/eid"
	"github.com/sirosfoundation/go-frejaeid/pkg/endpoint"
	"github.com/sirosfoundation/go-frejaeid/pkg/metrics"
)

// TLS version constants
const (
	TLS12 = tls.VersionTLS12
	TLS13 = tls.VersionTLS13
)

// Default timeouts
const (
	DefaultConnectionTimeout = 20 * time.Second
	DefaultReadTimeout       = 20 * time.Second
)

const (
	contentType     = "application/json"
	userAgent       = "go-frejaeid/1.0"
	tracerName      = "github.com/sirosfoundation/go-frejaeid/pkg/transport"
	maxResponseSize = 10 << 20
	maxErrorExcerpt = 512
)

// RecommendedTLS12CipherSuites are offered when TLS 1.2 is negotiated
var RecommendedTLS12CipherSuites = []uint16{
	tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
	tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
}

// HTTPSConfig contains the HTTPS client configuration
type HTTPSConfig struct {
	MinTLSVersion uint16
	MaxTLSVersion uint16
	CipherSuites  []uint16
	// TLSConfig carries the client certificate and the trusted server
	// certificate, usually built by LoadTLSConfig. It is cloned.
	TLSConfig         *tls.Config
	ConnectionTimeout time.Duration
	ReadTimeout       time.Duration
	IdleConnTimeout   time.Duration
	Logger            *zap.Logger
	Metrics           *metrics.Collector
}

// DefaultHTTPSConfig returns a default HTTPS configuration
func DefaultHTTPSConfig() *HTTPSConfig {
	return &HTTPSConfig{
		MinTLSVersion:     TLS12,
		MaxTLSVersion:     TLS13,
		CipherSuites:      RecommendedTLS12CipherSuites,
		ConnectionTimeout: DefaultConnectionTimeout,
		ReadTimeout:       DefaultReadTimeout,
		IdleConnTimeout:   90 * time.Second,
	}
}

// HTTPSClient performs Freja eID round trips over mutually authenticated
// HTTPS. It never retries and is safe for concurrent use.
type HTTPSClient struct {
	client  *http.Client
	config  *HTTPSConfig
	logger  *zap.Logger
	tracer  trace.Tracer
	metrics *metrics.Collector
}

// NewHTTPSClient creates a new HTTPS client
func NewHTTPSClient(config *HTTPSConfig) *HTTPSClient {
	if config == nil {
		config = DefaultHTTPSConfig()
	}

	var tlsConfig *tls.Config
	if config.TLSConfig != nil {
		tlsConfig = config.TLSConfig.Clone()
	} else {
		tlsConfig = &tls.Config{}
	}
	if tlsConfig.MinVersion < TLS12 {
		tlsConfig.MinVersion = TLS12
	}
	if config.MinTLSVersion > tlsConfig.MinVersion {
		tlsConfig.MinVersion = config.MinTLSVersion
	}
	if tlsConfig.MaxVersion == 0 {
		tlsConfig.MaxVersion = config.MaxTLSVersion
	}
	if tlsConfig.CipherSuites == nil {
		tlsConfig.CipherSuites = config.CipherSuites
	}

	dialer := &net.Dialer{
		Timeout:   config.ConnectionTimeout,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSClientConfig:       tlsConfig,
		TLSHandshakeTimeout:   config.ConnectionTimeout,
		ResponseHeaderTimeout: config.ReadTimeout,
		IdleConnTimeout:       config.IdleConnTimeout,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &HTTPSClient{
		client:  &http.Client{Transport: transport},
		config:  config,
		logger:  logger.Named("transport"),
		tracer:  otel.Tracer(tracerName),
		metrics: config.Metrics,
	}
}

// EncodeBody frames a request as <param>=<base64(json(body))>, followed by
// &relyingPartyId=<id> when relyingPartyID is not empty. The id is query
// escaped.
func EncodeBody(tmpl endpoint.Template, body any, relyingPartyID string) ([]byte, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", tmpl.Param, err)
	}

	var b bytes.Buffer
	b.WriteString(tmpl.Param)
	b.WriteByte('=')
	b.WriteString(base64.StdEncoding.EncodeToString(raw))
	if relyingPartyID != "" {
		b.WriteString("&relyingPartyId=")
		b.WriteString(url.QueryEscape(relyingPartyID))
	}
	return b.Bytes(), nil
}

// Send posts body to rawURL using tmpl and decodes a successful response into
// out. Failures are *eid.ServiceError or *eid.TransportError.
func (c *HTTPSClient) Send(ctx context.Context, rawURL string, tmpl endpoint.Template, body, out any, relyingPartyID string) error {
	requestID := uuid.NewString()

	ctx, span := c.tracer.Start(ctx, "frejaeid."+tmpl.Param, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", tmpl.Method),
		attribute.String("http.rawURL", rawURL),
		attribute.String("frejaeid.request_id", requestID),
	)

	log := c.logger.With(
		zap.String("request_id", requestID),
		zap.String("operation", tmpl.Param),
		zap.String("rawURL", rawURL),
	)

	start := time.Now()
	status, err := c.roundTrip(ctx, rawURL, tmpl, body, out, relyingPartyID)
	elapsed := time.Since(start)

	span.SetAttributes(attribute.Int("http.status_code", status))
	c.metrics.ObserveRequest(tmpl.Param, outcome(err), elapsed)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Debug("request failed", zap.Int("status", status), zap.Duration("elapsed", elapsed), zap.Error(err))
		return err
	}

	log.Debug("request completed", zap.Int("status", status), zap.Duration("elapsed", elapsed))
	return nil
}

func (c *HTTPSClient) roundTrip(ctx context.Context, rawURL string, tmpl endpoint.Template, body, out any, relyingPartyID string) (int, error) {
	payload, err := EncodeBody(tmpl, body, relyingPartyID)
	if err != nil {
		return 0, &eid.TransportError{URL: rawURL, Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, tmpl.Method, rawURL, bytes.NewReader(payload))
	if err != nil {
		return 0, &eid.TransportError{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", contentType)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, &eid.TransportError{URL: rawURL, Message: "failed to send request", Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return resp.StatusCode, &eid.TransportError{URL: rawURL, StatusCode: resp.StatusCode, Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, errorFromResponse(rawURL, resp.StatusCode, data)
	}

	// Only operations without a response body may get an empty answer
	if len(bytes.TrimSpace(data)) == 0 {
		if out == nil {
			return resp.StatusCode, nil
		}
		return resp.StatusCode, &eid.TransportError{URL: rawURL, StatusCode: resp.StatusCode, Message: "empty response"}
	}
	if out == nil {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, &eid.TransportError{URL: rawURL, StatusCode: resp.StatusCode, Message: "failed to decode response", Cause: err}
	}
	return resp.StatusCode, nil
}

// errorFromResponse maps a non-200 answer to a service error when the body
// carries a code, and to a transport error otherwise
func errorFromResponse(rawURL string, status int, data []byte) error {
	var svc eid.ServiceError
	if json.Unmarshal(data, &svc) == nil && svc.Code != 0 {
		return &svc
	}

	excerpt := string(bytes.TrimSpace(data))
	if len(excerpt) > maxErrorExcerpt {
		excerpt = excerpt[:maxErrorExcerpt] + "..."
	}
	if excerpt == "" {
		excerpt = http.StatusText(status)
	}
	return &eid.TransportError{URL: rawURL, StatusCode: status, Message: excerpt}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, eid.ErrService):
		return metrics.OutcomeServiceError
	default:
		return metrics.OutcomeTransportError
	}
}
