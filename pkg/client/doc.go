// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package client provides the Freja eID client facades: one client per
transaction kind, each built from an immutable Config.

# Configuration

	cfg := client.Config{
	    Environment: eid.EnvironmentTest,
	    SSL: transport.SSLSettings{
	        KeystorePath:          "/etc/frejaeid/rp.p12",
	        KeystorePassword:      password,
	        ServerCertificatePath: "/etc/frejaeid/server.pem",
	    },
	    Logger: logger,
	}

Everything is checked when a client is built. Missing or unreadable TLS
material, an unknown environment, negative timeouts and a polling interval
outside [1s, 30s] all fail with an *eid.ConfigError. Calls never report
configuration problems.

# Authentication

	auth, err := client.NewAuthenticationClient(cfg)
	if err != nil {
	    return err
	}

	ref, err := auth.Initiate(ctx, &message.InitiateAuthenticationRequest{
	    UserTarget: message.EmailUser("joe@example.com"),
	})
	if err != nil {
	    return err
	}

	res, err := auth.PollForResult(ctx, message.NewAuthenticationResultRequest(ref), 120)

# Signatures and Organisation IDs

NewSignClient works the same way with sign requests.
NewOrganisationIDClient always acts in the organisational context. It adds,
cancels and deletes organisation IDs, and lists the users that hold them.

Clients are safe for concurrent use. PollForResult blocks the caller.
*/
package client
