// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package endpoint maps a transaction kind, an operation and a transaction
context to the concrete URL path and request template of the Freja eID API.

# Routes

The table is static and built once:

	resolver := endpoint.NewResolver()
	route, err := resolver.Resolve(endpoint.KindSignature, endpoint.OpGetResult, eid.ContextOrganisational)
	// route.Path     == "/organisation/sign/1.0/getOneResult"
	// route.Template == endpoint.SignResultTemplate

A missing entry returns [ErrRouteNotFound]. Callers are expected to check
the operations they expose at construction time with [Resolver.Require].

# Templates

A [Template] names the form parameter that carries the base64-encoded JSON
request, e.g. initAuthRequest=eyJ1c2VySW5mb1R5cGUiOi... The transport owns
the encoding. Templates are plain values and are never mutated.
*/
package endpoint
