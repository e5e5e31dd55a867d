package endpoint

import (
	"errors"
	"testing"

	"github.com/sirosfoundation/go-frejaeid/pkg/eid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		kind     Kind
		op       Operation
		ctx      eid.TransactionContext
		path     string
		template Template
	}{
		{KindAuthentication, OpInitiate, eid.ContextPersonal, "/authentication/1.0/initAuthentication", InitAuthenticationTemplate},
		{KindAuthentication, OpGetResult, eid.ContextOrganisational, "/organisation/authentication/1.0/getOneResult", AuthenticationResultTemplate},
		{KindSignature, OpGetResult, eid.ContextPersonal, "/sign/1.0/getOneResult", SignResultTemplate},
		{KindSignature, OpGetResult, eid.ContextOrganisational, "/organisation/sign/1.0/getOneResult", SignResultTemplate},
		{KindSignature, OpGetResults, eid.ContextPersonal, "/sign/1.0/getResults", SignResultsTemplate},
		{KindSignature, OpCancel, eid.ContextOrganisational, "/organisation/sign/1.0/cancel", CancelSignTemplate},
		{KindOrganisationID, OpInitiate, eid.ContextOrganisational, "/organisation/management/orgId/1.0/initAdd", InitAddOrganisationIDTemplate},
		{KindOrganisationID, OpCancel, eid.ContextOrganisational, "/organisation/management/orgId/1.0/cancelAdd", CancelAddOrganisationIDTemplate},
		{KindOrganisationID, OpDelete, eid.ContextOrganisational, "/organisation/management/orgId/1.0/delete", DeleteOrganisationIDTemplate},
		{KindOrganisationID, OpGetAllUsers, eid.ContextOrganisational, "/organisation/management/orgId/1.0/users/getAll", AllOrganisationIDUsersTemplate},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+string(tt.op)+"/"+tt.ctx.String(), func(t *testing.T) {
			route, err := r.Resolve(tt.kind, tt.op, tt.ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.path, route.Path)
			assert.Equal(t, tt.template, route.Template)
			assert.Equal(t, "POST", route.Template.Method)
		})
	}
}

func TestResolver_NotFound(t *testing.T) {
	r := NewResolver()

	_, err := r.Resolve(KindOrganisationID, OpInitiate, eid.ContextPersonal)
	assert.True(t, errors.Is(err, ErrRouteNotFound))

	_, err = r.Resolve(KindAuthentication, OpDelete, eid.ContextPersonal)
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestResolver_Require(t *testing.T) {
	r := NewResolver()

	for _, ctx := range []eid.TransactionContext{eid.ContextPersonal, eid.ContextOrganisational} {
		assert.NoError(t, r.Require(KindAuthentication, ctx, OpInitiate, OpGetResult, OpGetResults, OpCancel))
		assert.NoError(t, r.Require(KindSignature, ctx, OpInitiate, OpGetResult, OpGetResults, OpCancel))
	}
	assert.NoError(t, r.Require(KindOrganisationID, eid.ContextOrganisational,
		OpInitiate, OpGetResult, OpCancel, OpDelete, OpGetAllUsers))

	err := r.Require(KindOrganisationID, eid.ContextPersonal, OpInitiate, OpDelete)
	assert.ErrorIs(t, err, ErrRouteNotFound)
	assert.Contains(t, err.Error(), "initiate")
	assert.Contains(t, err.Error(), "delete")
}
