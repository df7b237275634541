/*
 * Copyright The OpenTelemetry Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package config

// Main configuration object applied by the public facade's transform and
// serialization calls.

import (
	"github.com/apache/arrow-go/v18/arrow/memory"
	"go.uber.org/zap"

	"github.com/gtrak/otlp2records/stats"
)

type Config struct {
	// Pool is the Arrow memory allocator used by the Columnar Builder and
	// the IPC writer.
	Pool memory.Allocator

	// Logger receives one Debug-level entry per transform call with the
	// decoded row counts (and, for metrics, the skipped counts). Defaults to
	// a no-op logger.
	Logger *zap.Logger

	// StatsCollector, when non-nil, receives one RecordBatchRows call per
	// built record. Callers hold onto the collector they pass in via
	// WithStats to read BatchSizeDistribution() later; nil disables
	// collection entirely (the zero-cost default).
	StatsCollector *stats.TranscodeStats
}

// DefaultConfig returns a Config with the following default values:
//   - Pool: memory.NewGoAllocator()
//   - Logger: zap.NewNop()
//   - StatsCollector: nil (disabled)
func DefaultConfig() *Config {
	return &Config{
		Pool:   memory.NewGoAllocator(),
		Logger: zap.NewNop(),
	}
}

type Option func(*Config)

// WithAllocator sets the Arrow memory allocator to use.
func WithAllocator(allocator memory.Allocator) Option {
	return func(cfg *Config) {
		cfg.Pool = allocator
	}
}

// WithLogger sets the logger used for skip/recovery diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// WithStats routes batch-size recording into sc, a collector the caller
// constructed with stats.NewTranscodeStats(true) and keeps a reference to so
// it can inspect BatchSizeDistribution() across many transform calls.
func WithStats(sc *stats.TranscodeStats) Option {
	return func(cfg *Config) {
		cfg.StatsCollector = sc
	}
}

// Apply builds a Config from a set of options layered on DefaultConfig.
func Apply(opts ...Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
