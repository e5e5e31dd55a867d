package client

import (
	"context"

	"go.uber.org/zap"

	"github.com/sirosfoundation/go-frejaeid/pkg/eid"
	"github.com/sirosfoundation/go-frejaeid/pkg/endpoint"
	"github.com/sirosfoundation/go-frejaeid/pkg/lifecycle"
	"github.com/sirosfoundation/go-frejaeid/pkg/message"
)

// OrganisationIDClient manages organisation IDs. It always acts in the
// organisational context.
type OrganisationIDClient struct {
	engine *lifecycle.Engine
	logger *zap.Logger
}

// NewOrganisationIDClient creates an organisation ID client
func NewOrganisationIDClient(cfg Config) (*OrganisationIDClient, error) {
	engine, logger, err := cfg.newEngine(endpoint.KindOrganisationID, eid.ContextOrganisational,
		endpoint.OpInitiate, endpoint.OpGetResult, endpoint.OpCancel, endpoint.OpDelete, endpoint.OpGetAllUsers)
	if err != nil {
		return nil, err
	}
	return &OrganisationIDClient{engine: engine, logger: logger}, nil
}

// InitiateAdd starts adding an organisation ID to a user and returns the reference
func (c *OrganisationIDClient) InitiateAdd(ctx context.Context, req *message.InitiateAddOrganisationIDRequest) (string, error) {
	ref, err := lifecycle.Initiate[message.InitiateAddOrganisationIDResponse](ctx, c.engine, req)
	if err != nil {
		return "", err
	}
	c.logger.Debug("received add organisation ID reference", zap.String("reference", ref))
	return ref, nil
}

// GetResult returns the current state of an add organisation ID transaction
func (c *OrganisationIDClient) GetResult(ctx context.Context, req *message.OrganisationIDResultRequest) (*message.OrganisationIDResult, error) {
	res, err := lifecycle.GetResult[message.OrganisationIDResult](ctx, c.engine, req)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("received add organisation ID result",
		zap.String("reference", res.OrgIDRef), zap.String("status", string(res.Status)))
	return res, nil
}

// PollForResult waits up to maxWaitSeconds for the transaction to finish
func (c *OrganisationIDClient) PollForResult(ctx context.Context, req *message.OrganisationIDResultRequest, maxWaitSeconds int) (*message.OrganisationIDResult, error) {
	res, err := lifecycle.PollForResult[message.OrganisationIDResult](ctx, c.engine, req, maxWaitSeconds)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("add organisation ID finished",
		zap.String("reference", res.OrgIDRef), zap.String("status", string(res.Status)))
	return res, nil
}

// CancelAdd cancels an add organisation ID transaction in progress
func (c *OrganisationIDClient) CancelAdd(ctx context.Context, req *message.CancelAddOrganisationIDRequest) error {
	if err := lifecycle.Cancel(ctx, c.engine, req); err != nil {
		return err
	}
	c.logger.Debug("add organisation ID cancelled", zap.String("reference", req.OrgIDRef))
	return nil
}

// Delete removes an organisation ID from its holder
func (c *OrganisationIDClient) Delete(ctx context.Context, req *message.DeleteOrganisationIDRequest) error {
	if err := lifecycle.Delete(ctx, c.engine, req); err != nil {
		return err
	}
	c.logger.Debug("organisation ID deleted", zap.String("identifier", req.Identifier))
	return nil
}

// GetAllUsers lists every user holding an organisation ID of the relying party
func (c *OrganisationIDClient) GetAllUsers(ctx context.Context, req *message.AllOrganisationIDUsersRequest) ([]message.OrganisationIDUserInfo, error) {
	res, err := lifecycle.Send[message.AllOrganisationIDUsers](ctx, c.engine, endpoint.OpGetAllUsers, req)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("received organisation ID users", zap.Int("count", len(res.UserInfos)))
	return res.UserInfos, nil
}
