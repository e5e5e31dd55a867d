// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package frejaeid is a relying party client for the Freja eID identity
service.

# Overview

go-frejaeid lets a relying party ask Freja eID users to authenticate, to sign
text or data, and to accept an organisation ID. Every interaction is a
transaction that is initiated, observed until it reaches a final status and
optionally cancelled. All calls travel over mutually authenticated TLS using
the relying party's PKCS#12 keystore.

# Package Structure

The library is organized into the following packages:

	github.com/sirosfoundation/go-frejaeid/pkg/client     - Authentication, sign and organisation ID clients
	github.com/sirosfoundation/go-frejaeid/pkg/lifecycle  - Transaction engine: initiate, get result, poll, cancel, delete
	github.com/sirosfoundation/go-frejaeid/pkg/message    - Request and response payloads
	github.com/sirosfoundation/go-frejaeid/pkg/endpoint   - Environment and context aware URL resolution
	github.com/sirosfoundation/go-frejaeid/pkg/validation - Request validation before anything is sent
	github.com/sirosfoundation/go-frejaeid/pkg/transport  - mTLS HTTPS transport and wire encoding
	github.com/sirosfoundation/go-frejaeid/pkg/eid        - Shared enumerations and the error taxonomy
	github.com/sirosfoundation/go-frejaeid/pkg/metrics    - Prometheus collectors

The frejaeid command in cmd/frejaeid exposes the same operations on the
command line.

# Quick Start

To authenticate a user by email address:

	auth, err := client.NewAuthenticationClient(client.Config{
	    Environment: eid.EnvironmentTest,
	    SSL: transport.SSLSettings{
	        KeystorePath:          "rp.p12",
	        KeystorePassword:      password,
	        ServerCertificatePath: "freja-test.pem",
	    },
	})

	ref, err := auth.Initiate(ctx, &message.InitiateAuthenticationRequest{
	    UserTarget: message.EmailUser("joe@example.com"),
	})
	res, err := auth.PollForResult(ctx, message.NewAuthenticationResultRequest(ref), 120)

# Errors

Every failure is one of a few kinds, testable with errors.Is and errors.As:

  - eid.ConfigError: the client or an operation is misconfigured
  - eid.ValidationError: a request was rejected locally and never sent
  - eid.ServiceError: Freja eID answered with an error code
  - eid.TransportError: the call failed or the response could not be read
  - eid.PollingTimeoutError: no final status was seen within the wait budget

# License

BSD-2-Clause License
*/
package frejaeid
