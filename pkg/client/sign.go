package client

import (
	"context"

	"go.uber.org/zap"

	"github.com/sirosfoundation/go-frejaeid/pkg/endpoint"
	"github.com/sirosfoundation/go-frejaeid/pkg/lifecycle"
	"github.com/sirosfoundation/go-frejaeid/pkg/message"
)

// SignClient runs signature transactions
type SignClient struct {
	engine *lifecycle.Engine
	logger *zap.Logger
}

// NewSignClient creates a signature client
func NewSignClient(cfg Config) (*SignClient, error) {
	engine, logger, err := cfg.newEngine(endpoint.KindSignature, cfg.TransactionContext,
		endpoint.OpInitiate, endpoint.OpGetResult, endpoint.OpGetResults, endpoint.OpCancel)
	if err != nil {
		return nil, err
	}
	return &SignClient{engine: engine, logger: logger}, nil
}

// Initiate starts a signature and returns its reference
func (c *SignClient) Initiate(ctx context.Context, req *message.InitiateSignRequest) (string, error) {
	ref, err := lifecycle.Initiate[message.InitiateSignResponse](ctx, c.engine, req)
	if err != nil {
		return "", err
	}
	c.logger.Debug("received sign reference", zap.String("reference", ref))
	return ref, nil
}

func (c *SignClient) GetResult(ctx context.Context, req *message.SignResultRequest) (*message.SignResult, error) {
	res, err := lifecycle.GetResult[message.SignResult](ctx, c.engine, req)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("received sign result",
		zap.String("reference", res.SignRef), zap.String("status", string(res.Status)))
	return res, nil
}

func (c *SignClient) GetResults(ctx context.Context, req *message.ResultsRequest) ([]message.SignResult, error) {
	res, err := lifecycle.GetResults[message.SignResults](ctx, c.engine, req)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("received sign results", zap.Int("count", len(res.SignatureResults)))
	return res.SignatureResults, nil
}

// PollForResult waits up to maxWaitSeconds for the signature to finish
func (c *SignClient) PollForResult(ctx context.Context, req *message.SignResultRequest, maxWaitSeconds int) (*message.SignResult, error) {
	res, err := lifecycle.PollForResult[message.SignResult](ctx, c.engine, req, maxWaitSeconds)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("signature finished",
		zap.String("reference", res.SignRef), zap.String("status", string(res.Status)))
	return res, nil
}

func (c *SignClient) Cancel(ctx context.Context, req *message.CancelSignRequest) error {
	if err := lifecycle.Cancel(ctx, c.engine, req); err != nil {
		return err
	}
	c.logger.Debug("signature cancelled", zap.String("reference", req.SignRef))
	return nil
}
