// Copyright The OpenTelemetry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//       http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package stats holds the skipped-record counters (§3.4, §7) and, adapted
// from this module's lineage, an ambient batch-size distribution tracker.
package stats

import (
	"sync/atomic"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// SkippedCounts tallies per-reason metric data point drops (§3.4).
type SkippedCounts struct {
	Summary     atomic.Uint64 // unsupported metric kind
	NonFinite   atomic.Uint64 // non-finite or absent numeric value
	Malformed   atomic.Uint64 // malformed nested record, local recovery
}

// Snapshot is a point-in-time, non-atomic copy of SkippedCounts suitable for
// returning to callers.
type Snapshot struct {
	Summary   uint64
	NonFinite uint64
	Malformed uint64
}

func (c *SkippedCounts) Snapshot() Snapshot {
	return Snapshot{
		Summary:   c.Summary.Load(),
		NonFinite: c.NonFinite.Load(),
		Malformed: c.Malformed.Load(),
	}
}

// TranscodeStats is optional ambient observability, adapted from this
// module's ProducerStats lineage: atomic batch-produced counters plus an
// HdrHistogram-backed row-count distribution per signal. It never changes
// any transform_* behavior; it is purely informational and only collected
// when enabled via config.WithStats.
type TranscodeStats struct {
	enabled bool

	LogsBatchesProduced    atomic.Uint64
	TracesBatchesProduced  atomic.Uint64
	MetricsBatchesProduced atomic.Uint64

	rowCountDist *hdrhistogram.Histogram
}

// NewTranscodeStats returns a TranscodeStats. When enabled is false,
// RecordBatchRows is a no-op (avoids histogram bookkeeping cost on the hot
// path when the caller hasn't opted in).
func NewTranscodeStats(enabled bool) *TranscodeStats {
	return &TranscodeStats{
		enabled:      enabled,
		rowCountDist: hdrhistogram.New(0, 1_000_000, 3),
	}
}

// RecordBatchRows records one produced batch's row count into the
// distribution tracker.
func (s *TranscodeStats) RecordBatchRows(n int64) {
	if !s.enabled {
		return
	}
	_ = s.rowCountDist.RecordValue(n)
}

// BatchSizeDistribution returns the row-count histogram collected so far, or
// nil if stats collection was never enabled.
func (s *TranscodeStats) BatchSizeDistribution() *hdrhistogram.Histogram {
	if !s.enabled {
		return nil
	}
	return s.rowCountDist
}
