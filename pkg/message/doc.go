// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package message defines the request and response payloads exchanged with the
Freja eID service.

The lifecycle engine only needs two things from a payload: the transaction
reference, and for results the current status. Types expose them through the
[Referencer] and [Resulter] interfaces. Everything else is plain data with
JSON tags matching the wire names, plus `validate` tags consumed by package
validation.

# Targeting a User

Initiate requests embed a [UserTarget]:

	req := &message.InitiateAuthenticationRequest{
	    UserTarget:         message.EmailUser("joe@example.com"),
	    AttributesToReturn: message.Attributes(eid.AttributeBasicUserInfo, eid.AttributeEmailAddress),
	}

	req = &message.InitiateAuthenticationRequest{
	    UserTarget: message.SSNUser(eid.CountrySweden, "198710180000"),
	}

# Relying Party

Integrators acting for several relying parties set the embedded
[RelyingPartyScope]. The id is never serialized into the JSON body. The
transport appends it as a separate parameter.
*/
package message
