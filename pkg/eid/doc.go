// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package eid defines the vocabulary shared by every Freja eID transaction kind.

# Transaction Context

A client acts either for an individual end user or for an organisation:

	eid.ContextPersonal
	eid.ContextOrganisational

The context is fixed when a client is built and selects the endpoint family
used for every call.

# Transaction Status

A transaction moves through a small state machine observed by polling:

	STARTED -> DELIVERED_TO_MOBILE/OPENED* -> APPROVED | REJECTED | CANCELED | RP_CANCELED | EXPIRED

Which statuses are terminal is a table ([StatusSet]), not a switch, so a
transaction kind can register its own final states:

	terminal := eid.NewStatusSet(eid.StatusApproved, eid.StatusRejected)
	if terminal.Contains(result.Status) {
	    // done
	}

# Errors

Every failure returned by the library is one of five kinds, each matched
with errors.Is against a sentinel:

	ErrConfig          invalid or missing TLS material, nonsensical settings
	ErrValidation      malformed request, raised before any network call
	ErrService         structured error returned by the remote service
	ErrTransport       connectivity, timeout or decoding failure
	ErrPollingTimeout  a bounded poll expired before a final status

Use errors.As to read the details:

	var svcErr *eid.ServiceError
	if errors.As(err, &svcErr) && svcErr.Code == eid.CodeInvalidReference {
	    // re-initiate
	}
*/
package eid
