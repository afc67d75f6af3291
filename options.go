// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

package heapprof

import (
	"github.com/DataDog/datadog-go/v5/statsd"

	"github.com/heapprof/heapprof/internal/log"
	"github.com/heapprof/heapprof/internal/telemetry"
)

// Option configures a session started with Start. Functional options,
// following the teacher's own WithXxx style (options_test.go: WithAPIKey,
// WithAgentAddr, ...).
type Option func(*config)

type config struct {
	statsd statsd.ClientInterface
	logger log.Logger
}

func newConfig(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *config) telemetryClient() *telemetry.Client {
	if c.statsd == nil {
		return nil
	}
	return telemetry.New(c.statsd)
}

// WithStatsd configures a statsd client samples and reports are reported
// to. By default no client is configured and internal/telemetry is a
// no-op, matching the teacher's default *statsd.NoOpClient.
func WithStatsd(client statsd.ClientInterface) Option {
	return func(c *config) { c.statsd = client }
}

// WithLogger installs l as the active logger for the duration of the
// session started by this Start call (and beyond, until another session or
// caller changes it — this package's logger is process-global, matching
// internal/log's own package-level design).
func WithLogger(l log.Logger) Option {
	return func(c *config) { c.logger = l }
}
