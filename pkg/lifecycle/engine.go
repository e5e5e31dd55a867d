package lifecycle

import (
	"context"
	"math"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sirosfoundation/go-frejaeid/pkg/eid"
	"github.com/sirosfoundation/go-frejaeid/pkg/endpoint"
	"github.com/sirosfoundation/go-frejaeid/pkg/message"
	"github.com/sirosfoundation/go-frejaeid/pkg/metrics"
	"github.com/sirosfoundation/go-frejaeid/pkg/validation"
)

// Poll interval bounds
const (
	DefaultPollInterval = 3 * time.Second
	MinPollInterval     = 1 * time.Second
	MaxPollInterval     = 30 * time.Second
)

// Transport performs one round trip. A successful response is decoded into out.
type Transport interface {
	Send(ctx context.Context, url string, tmpl endpoint.Template, body, out any, relyingPartyID string) error
}

// Validator checks a request before it is sent
type Validator interface {
	Validate(kind endpoint.Kind, txCtx eid.TransactionContext, req any) error
}

// Capabilities is the per-kind table driving the engine
type Capabilities struct {
	// Operations lists every operation the engine must be able to route
	Operations []endpoint.Operation
	// Terminal is the set of statuses that end a poll. Empty means
	// eid.DefaultTerminalStatuses.
	Terminal eid.StatusSet
}

// Settings configures an Engine
type Settings struct {
	BaseURL            string
	Kind               endpoint.Kind
	TransactionContext eid.TransactionContext
	Capabilities       Capabilities
	Transport          Transport

	// Optional
	Resolver     *endpoint.Resolver
	Validator    Validator
	PollInterval time.Duration
	Logger       *zap.Logger
	Metrics      *metrics.Collector
	Clock        Clock
}

// Engine runs the transaction lifecycle of one transaction kind. It is
// immutable and safe for concurrent use.
type Engine struct {
	baseURL   string
	kind      endpoint.Kind
	txCtx     eid.TransactionContext
	caps      Capabilities
	transport Transport
	resolver  *endpoint.Resolver
	validator Validator
	interval  time.Duration
	logger    *zap.Logger
	metrics   *metrics.Collector
	clock     Clock
}

// New creates an engine. Every operation in s.Capabilities must resolve in
// the configured context; any problem is an *eid.ConfigError.
func New(s Settings) (*Engine, error) {
	if s.BaseURL == "" {
		return nil, eid.NewConfigError("base URL is required")
	}
	if s.Kind == "" {
		return nil, eid.NewConfigError("transaction kind is required")
	}
	if !s.TransactionContext.Valid() {
		return nil, eid.NewConfigError("invalid transaction context %d", int(s.TransactionContext))
	}
	if s.Transport == nil {
		return nil, eid.NewConfigError("transport is required")
	}
	if len(s.Capabilities.Operations) == 0 {
		return nil, eid.NewConfigError("no operations configured for %s", s.Kind)
	}

	interval := s.PollInterval
	if interval == 0 {
		interval = DefaultPollInterval
	}
	if interval < MinPollInterval || interval > MaxPollInterval {
		return nil, eid.NewConfigError("polling interval %s is outside [%s, %s]", interval, MinPollInterval, MaxPollInterval)
	}

	e := &Engine{
		baseURL:   strings.TrimRight(s.BaseURL, "/"),
		kind:      s.Kind,
		txCtx:     s.TransactionContext,
		caps:      s.Capabilities,
		transport: s.Transport,
		resolver:  s.Resolver,
		validator: s.Validator,
		interval:  interval,
		logger:    s.Logger,
		metrics:   s.Metrics,
		clock:     s.Clock,
	}
	if e.caps.Terminal.Len() == 0 {
		e.caps.Terminal = eid.DefaultTerminalStatuses
	}
	if e.resolver == nil {
		e.resolver = endpoint.NewResolver()
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	e.logger = e.logger.Named(string(s.Kind))
	if e.validator == nil {
		e.validator = validation.New(validation.WithLogger(e.logger))
	}
	if e.clock == nil {
		e.clock = SystemClock{}
	}

	if err := e.resolver.Require(e.kind, e.txCtx, e.caps.Operations...); err != nil {
		return nil, eid.WrapConfigError(err, "incomplete route table for %s", e.kind)
	}

	return e, nil
}

// Kind returns the transaction kind
func (e *Engine) Kind() endpoint.Kind { return e.kind }

// TransactionContext returns the context every call is made in
func (e *Engine) TransactionContext() eid.TransactionContext { return e.txCtx }

// PollInterval returns the delay between get-result attempts
func (e *Engine) PollInterval() time.Duration { return e.interval }

// IsTerminal reports whether status ends a poll
func (e *Engine) IsTerminal(status eid.TransactionStatus) bool {
	return e.caps.Terminal.Contains(status)
}

// call resolves op, validates req and sends it
func (e *Engine) call(ctx context.Context, op endpoint.Operation, req, out any) error {
	url, tmpl, err := e.route(op)
	if err != nil {
		return err
	}
	if err := e.validator.Validate(e.kind, e.txCtx, req); err != nil {
		return err
	}
	return e.dispatch(ctx, url, tmpl, req, out)
}

// send resolves op and sends an already validated req
func (e *Engine) send(ctx context.Context, op endpoint.Operation, req, out any) error {
	url, tmpl, err := e.route(op)
	if err != nil {
		return err
	}
	return e.dispatch(ctx, url, tmpl, req, out)
}

// route resolves op to its absolute URL and wire template
func (e *Engine) route(op endpoint.Operation) (string, endpoint.Template, error) {
	if !slices.Contains(e.caps.Operations, op) {
		return "", endpoint.Template{}, eid.NewConfigError("%s does not support %s", e.kind, op)
	}
	route, err := e.resolver.Resolve(e.kind, op, e.txCtx)
	if err != nil {
		return "", endpoint.Template{}, eid.WrapConfigError(err, "resolving %s", op)
	}
	return e.baseURL + route.Path, route.Template, nil
}

func (e *Engine) dispatch(ctx context.Context, url string, tmpl endpoint.Template, req, out any) error {
	var relyingPartyID string
	if scoped, ok := req.(message.RelyingPartyScoped); ok {
		relyingPartyID = scoped.RelyingParty()
	}
	return e.transport.Send(ctx, url, tmpl, req, out, relyingPartyID)
}

// Send runs op and decodes the response into a T. It serves the operations
// without a dedicated helper, such as listing organisation ID users.
func Send[T any](ctx context.Context, e *Engine, op endpoint.Operation, req any) (*T, error) {
	var out T
	if err := e.call(ctx, op, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Initiate starts a transaction and returns its reference
func Initiate[T message.Referencer](ctx context.Context, e *Engine, req any) (string, error) {
	resp, err := Send[T](ctx, e, endpoint.OpInitiate, req)
	if err != nil {
		return "", err
	}

	ref := (*resp).Reference()
	if ref == "" {
		url, _, _ := e.route(endpoint.OpInitiate)
		return "", &eid.TransportError{URL: url, Message: "initiate response carries no transaction reference"}
	}

	e.logger.Debug("transaction initiated", zap.String("reference", ref))
	return ref, nil
}

// GetResult fetches the current result of one transaction in a single round trip
func GetResult[T message.Resulter](ctx context.Context, e *Engine, req any) (*T, error) {
	return Send[T](ctx, e, endpoint.OpGetResult, req)
}

// GetResults fetches every pending result of the relying party
func GetResults[T any](ctx context.Context, e *Engine, req any) (*T, error) {
	return Send[T](ctx, e, endpoint.OpGetResults, req)
}

// Cancel cancels a transaction that has not reached a terminal status
func Cancel(ctx context.Context, e *Engine, req any) error {
	return e.call(ctx, endpoint.OpCancel, req, nil)
}

// Delete removes a previously completed transaction artefact
func Delete(ctx context.Context, e *Engine, req any) error {
	return e.call(ctx, endpoint.OpDelete, req, nil)
}

// maxBudgetSeconds is the longest wait a time.Duration can hold
const maxBudgetSeconds = int64(math.MaxInt64 / time.Second)

// budget converts a wait in seconds to a duration, saturating instead of
// overflowing
func budget(seconds int) time.Duration {
	if int64(seconds) > maxBudgetSeconds {
		return math.MaxInt64
	}
	return time.Duration(seconds) * time.Second
}

// PollForResult calls get-result until a terminal status is returned or
// maxWaitSeconds have elapsed. Attempts are sequential. The request is
// validated once. The deadline is checked before every attempt, and a sleep
// never extends past it.
//
// Errors from get-result end the poll at once. Running out of time yields an
// *eid.PollingTimeoutError. Cancelling ctx interrupts the sleep.
func PollForResult[T message.Resulter](ctx context.Context, e *Engine, req any, maxWaitSeconds int) (*T, error) {
	if err := validation.MaxWait(maxWaitSeconds); err != nil {
		return nil, err
	}
	if err := e.validator.Validate(e.kind, e.txCtx, req); err != nil {
		return nil, err
	}

	log := e.logger
	if r, ok := req.(message.Referencer); ok {
		log = log.With(zap.String("reference", r.Reference()))
	}

	deadline := e.clock.Now().Add(budget(maxWaitSeconds))
	var last eid.TransactionStatus

	for attempt := 1; ; attempt++ {
		now := e.clock.Now()
		if !now.Before(deadline) {
			e.metrics.ObservePoll(string(e.kind), metrics.PollTimeout)
			log.Debug("poll timed out", zap.Int("attempts", attempt-1), zap.String("status", string(last)))
			return nil, &eid.PollingTimeoutError{TimeoutSeconds: maxWaitSeconds, LastStatus: last}
		}

		e.metrics.ObservePollAttempt(string(e.kind))
		var result T
		if err := e.send(ctx, endpoint.OpGetResult, req, &result); err != nil {
			e.metrics.ObservePoll(string(e.kind), metrics.PollError)
			return nil, err
		}

		last = result.TransactionStatus()
		log.Debug("poll attempt", zap.Int("attempt", attempt), zap.String("status", string(last)))

		if e.IsTerminal(last) {
			e.metrics.ObservePoll(string(e.kind), metrics.PollCompleted)
			return &result, nil
		}

		wait := min(e.interval, deadline.Sub(e.clock.Now()))
		if wait <= 0 {
			continue
		}
		if err := e.clock.Sleep(ctx, wait); err != nil {
			e.metrics.ObservePoll(string(e.kind), metrics.PollError)
			log.Debug("poll interrupted", zap.Int("attempt", attempt), zap.Error(err))
			return nil, err
		}
	}
}
