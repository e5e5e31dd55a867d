// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package transport implements the mutually authenticated HTTPS transport used
to reach the Freja eID service.

# Wire Format

Every request is a POST whose body is a single form-style parameter holding
the base64 encoded JSON request:

	initAuthRequest=eyJ1c2VySW5mb1R5cGUiOiJFTUFJTCIsLi4ufQ==

When the caller acts on behalf of another relying party the identifier is
appended:

	initAuthRequest=...&relyingPartyId=relying_party_id

A 200 answer carries the JSON response. Any other status carrying a
{"code":..,"message":..} body becomes an *eid.ServiceError. Everything else,
including connection failures and timeouts, becomes an *eid.TransportError.
Requests are never retried.

# TLS Configuration

The client authenticates with a certificate from a PKCS#12 keystore and
trusts only the configured server certificate:

	tlsConfig, err := transport.LoadTLSConfig(transport.SSLSettings{
	    KeystorePath:          "/etc/frejaeid/rp.p12",
	    KeystorePassword:      os.Getenv("KEYSTORE_PASSWORD"),
	    ServerCertificatePath: "/etc/frejaeid/server.pem",
	})

A prepared *tls.Config may be supplied instead. TLS 1.2 is the minimum
version in both cases.

# Client Usage

	client := transport.NewHTTPSClient(&transport.HTTPSConfig{
	    TLSConfig:         tlsConfig,
	    ConnectionTimeout: 20 * time.Second,
	    ReadTimeout:       20 * time.Second,
	    Logger:            logger,
	})

	var resp message.InitiateAuthenticationResponse
	err := client.Send(ctx, url, endpoint.InitAuthenticationTemplate, req, &resp, "")

Each round trip is logged at debug level with a request id, recorded as an
OpenTelemetry client span and, when a metrics.Collector is configured,
counted and timed.
*/
package transport
