// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package lifecycle implements the transaction lifecycle shared by every Freja
eID transaction kind.

An Engine is configured once with a base URL, a transaction kind, a
transaction context and a capability table. The table lists the operations
the engine must route and the statuses that end a poll. Construction fails
with an *eid.ConfigError unless every listed operation resolves.

	e, err := lifecycle.New(lifecycle.Settings{
	    BaseURL:            eid.EnvironmentTest.URL(),
	    Kind:               endpoint.KindAuthentication,
	    TransactionContext: eid.ContextPersonal,
	    Capabilities: lifecycle.Capabilities{
	        Operations: []endpoint.Operation{endpoint.OpInitiate, endpoint.OpGetResult},
	    },
	    Transport: httpsClient,
	})

The operations are generic functions over the response type:

	ref, err := lifecycle.Initiate[message.InitiateAuthenticationResponse](ctx, e, req)
	res, err := lifecycle.PollForResult[message.AuthenticationResult](ctx, e,
	    message.NewAuthenticationResultRequest(ref), 120)

Every request is validated before it is routed. A request that fails
validation never reaches the Transport.

# Polling

PollForResult fixes a deadline of now + maxWaitSeconds and then loops. Each
iteration checks the deadline, issues one get-result call and returns on a
terminal status. Otherwise it sleeps for the poll interval, cut short so it
never passes the deadline. Attempts never overlap. Any error from get-result
ends the poll unchanged and nothing is retried. Reaching the deadline yields
an *eid.PollingTimeoutError.

The default interval is 3 seconds and may be set between 1 and 30 seconds.
Tests inject a Clock to run the loop without waiting.
*/
package lifecycle
