// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package metrics exposes Prometheus collectors for Freja eID round trips and
result polling.

A Collector is optional everywhere it is accepted. A nil *Collector is a
valid no-op, so callers never need to guard their observations:

	reg := prometheus.NewRegistry()
	m, err := metrics.NewCollector(reg)
	if err != nil {
	    return err
	}

	cfg := client.Config{Environment: eid.EnvironmentTest, Metrics: m, ...}

# Series

  - frejaeid_requests_total{operation,outcome}: round trips by template parameter
    and outcome (ok, service_error, transport_error)
  - frejaeid_request_duration_seconds{operation}: round trip latency
  - frejaeid_poll_attempts_total{kind}: get-result calls issued while polling
  - frejaeid_polls_total{kind,outcome}: finished polls (completed, timeout, error)
*/
package metrics
