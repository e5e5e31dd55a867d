package endpoint

import (
	"errors"
	"fmt"

	"github.com/sirosfoundation/go-frejaeid/pkg/eid"
)

// ErrRouteNotFound is returned when no route exists for a kind/operation/context
var ErrRouteNotFound = errors.New("route not found")

// Kind is a transaction kind
type Kind string

const (
	KindAuthentication Kind = "authentication"
	KindSignature      Kind = "signature"
	KindOrganisationID Kind = "organisationId"
)

// Operation is one call of the lifecycle
type Operation string

const (
	OpInitiate    Operation = "initiate"
	OpGetResult   Operation = "getResult"
	OpGetResults  Operation = "getResults"
	OpCancel      Operation = "cancel"
	OpDelete      Operation = "delete"
	OpGetAllUsers Operation = "getAllUsers"
)

// Route is a resolved URL path and request template
type Route struct {
	Path     string
	Template Template
}

type routeKey struct {
	kind Kind
	op   Operation
	ctx  eid.TransactionContext
}

// Resolver is an immutable route table
type Resolver struct {
	routes map[routeKey]Route
}

// NewResolver returns the resolver for the Freja eID API
func NewResolver() *Resolver {
	r := &Resolver{routes: make(map[routeKey]Route)}

	both := func(kind Kind, op Operation, path string, tmpl Template) {
		r.routes[routeKey{kind, op, eid.ContextPersonal}] = Route{Path: path, Template: tmpl}
		r.routes[routeKey{kind, op, eid.ContextOrganisational}] = Route{Path: "/organisation" + path, Template: tmpl}
	}
	org := func(op Operation, path string, tmpl Template) {
		r.routes[routeKey{KindOrganisationID, op, eid.ContextOrganisational}] = Route{Path: path, Template: tmpl}
	}

	both(KindAuthentication, OpInitiate, "/authentication/1.0/initAuthentication", InitAuthenticationTemplate)
	both(KindAuthentication, OpGetResult, "/authentication/1.0/getOneResult", AuthenticationResultTemplate)
	both(KindAuthentication, OpGetResults, "/authentication/1.0/getResults", AuthenticationResultsTemplate)
	both(KindAuthentication, OpCancel, "/authentication/1.0/cancel", CancelAuthenticationTemplate)

	both(KindSignature, OpInitiate, "/sign/1.0/initSignature", InitSignTemplate)
	both(KindSignature, OpGetResult, "/sign/1.0/getOneResult", SignResultTemplate)
	both(KindSignature, OpGetResults, "/sign/1.0/getResults", SignResultsTemplate)
	both(KindSignature, OpCancel, "/sign/1.0/cancel", CancelSignTemplate)

	org(OpInitiate, "/organisation/management/orgId/1.0/initAdd", InitAddOrganisationIDTemplate)
	org(OpGetResult, "/organisation/management/orgId/1.0/getOneResult", OrganisationIDResultTemplate)
	org(OpCancel, "/organisation/management/orgId/1.0/cancelAdd", CancelAddOrganisationIDTemplate)
	org(OpDelete, "/organisation/management/orgId/1.0/delete", DeleteOrganisationIDTemplate)
	org(OpGetAllUsers, "/organisation/management/orgId/1.0/users/getAll", AllOrganisationIDUsersTemplate)

	return r
}

// Resolve returns the route for the given kind, operation and context
func (r *Resolver) Resolve(kind Kind, op Operation, ctx eid.TransactionContext) (Route, error) {
	route, ok := r.routes[routeKey{kind, op, ctx}]
	if !ok {
		return Route{}, fmt.Errorf("%w: %s/%s in %s context", ErrRouteNotFound, kind, op, ctx)
	}
	return route, nil
}

// Require checks that every listed operation resolves
func (r *Resolver) Require(kind Kind, ctx eid.TransactionContext, ops ...Operation) error {
	var errs []error
	for _, op := range ops {
		if _, err := r.Resolve(kind, op, ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
