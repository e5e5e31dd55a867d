package client

import (
	"context"

	"go.uber.org/zap"

	"github.com/sirosfoundation/go-frejaeid/pkg/endpoint"
	"github.com/sirosfoundation/go-frejaeid/pkg/lifecycle"
	"github.com/sirosfoundation/go-frejaeid/pkg/message"
)

// AuthenticationClient runs authentication transactions
type AuthenticationClient struct {
	engine *lifecycle.Engine
	logger *zap.Logger
}

// NewAuthenticationClient creates an authentication client
func NewAuthenticationClient(cfg Config) (*AuthenticationClient, error) {
	engine, logger, err := cfg.newEngine(endpoint.KindAuthentication, cfg.TransactionContext,
		endpoint.OpInitiate, endpoint.OpGetResult, endpoint.OpGetResults, endpoint.OpCancel)
	if err != nil {
		return nil, err
	}
	return &AuthenticationClient{engine: engine, logger: logger}, nil
}

// Initiate starts an authentication and returns its reference
func (c *AuthenticationClient) Initiate(ctx context.Context, req *message.InitiateAuthenticationRequest) (string, error) {
	ref, err := lifecycle.Initiate[message.InitiateAuthenticationResponse](ctx, c.engine, req)
	if err != nil {
		return "", err
	}
	c.logger.Debug("received authentication reference", zap.String("reference", ref))
	return ref, nil
}

// GetResult returns the current state of an authentication
func (c *AuthenticationClient) GetResult(ctx context.Context, req *message.AuthenticationResultRequest) (*message.AuthenticationResult, error) {
	res, err := lifecycle.GetResult[message.AuthenticationResult](ctx, c.engine, req)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("received authentication result",
		zap.String("reference", res.AuthRef), zap.String("status", string(res.Status)))
	return res, nil
}

// GetResults returns every authentication result not yet fetched
func (c *AuthenticationClient) GetResults(ctx context.Context, req *message.ResultsRequest) ([]message.AuthenticationResult, error) {
	res, err := lifecycle.GetResults[message.AuthenticationResults](ctx, c.engine, req)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("received authentication results", zap.Int("count", len(res.AuthenticationResults)))
	return res.AuthenticationResults, nil
}

// PollForResult waits up to maxWaitSeconds for the authentication to finish
func (c *AuthenticationClient) PollForResult(ctx context.Context, req *message.AuthenticationResultRequest, maxWaitSeconds int) (*message.AuthenticationResult, error) {
	res, err := lifecycle.PollForResult[message.AuthenticationResult](ctx, c.engine, req, maxWaitSeconds)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("authentication finished",
		zap.String("reference", res.AuthRef), zap.String("status", string(res.Status)))
	return res, nil
}

// Cancel cancels an authentication in progress
func (c *AuthenticationClient) Cancel(ctx context.Context, req *message.CancelAuthenticationRequest) error {
	if err := lifecycle.Cancel(ctx, c.engine, req); err != nil {
		return err
	}
	c.logger.Debug("authentication cancelled", zap.String("reference", req.AuthRef))
	return nil
}
