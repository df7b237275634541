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

// Package otlp2records is the public facade (§4.G): it wires the OTLP
// Decoder, Row Normalizer, and Columnar Builder into the three signal
// transforms callers use, and hands the resulting arrow.Record to the
// Output Serializers.
package otlp2records

import (
	"github.com/apache/arrow-go/v18/arrow"
	"go.uber.org/zap"

	"github.com/gtrak/otlp2records/internal/config"
	"github.com/gtrak/otlp2records/pkg/build"
	"github.com/gtrak/otlp2records/pkg/decode"
	"github.com/gtrak/otlp2records/pkg/output"
	"github.com/gtrak/otlp2records/pkg/rowvalue"
	"github.com/gtrak/otlp2records/pkg/schema"
	"github.com/gtrak/otlp2records/stats"
)

// Format re-exports decode.Format so callers need only import this package
// for the common path.
type Format = decode.Format

const (
	FormatProto = decode.FormatProto
	FormatJSON  = decode.FormatJSON
	FormatAuto  = decode.FormatAuto
)

// Option re-exports config.Option.
type Option = config.Option

var (
	WithAllocator = config.WithAllocator
	WithLogger    = config.WithLogger
	WithStats     = config.WithStats
)

// Row is re-exported for callers building rows outside the decode package,
// e.g. tests or a custom ingestion path feeding the Columnar Builder
// directly.
type Row = rowvalue.Row

// MetricsRecordBatches is the metric dispatch multiplex (§3.4) materialized
// as Arrow records: each signal's rows land in its own record, built against
// its own static schema. A nil field means that signal had no data points
// this batch.
type MetricsRecordBatches struct {
	Gauge        arrow.Record
	Sum          arrow.Record
	Histogram    arrow.Record
	ExpHistogram arrow.Record
	Skipped      stats.Snapshot
}

// Release releases every non-nil record held by b.
func (b *MetricsRecordBatches) Release() {
	for _, rec := range []arrow.Record{b.Gauge, b.Sum, b.Histogram, b.ExpHistogram} {
		if rec != nil {
			rec.Release()
		}
	}
}

// TransformLogs decodes data (proto, JSON, or autodetected) into logs rows
// and builds them against the static logs schema.
func TransformLogs(data []byte, format Format, opts ...Option) (arrow.Record, error) {
	cfg := config.Apply(opts...)
	rows, err := decode.DecodeLogs(data, format)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Debug("decoded logs", zap.Int("rows", len(rows)))
	rec, err := build.ValuesToArrow(cfg.Pool, schema.Logs(), rows)
	if err != nil {
		return nil, err
	}
	if cfg.StatsCollector != nil {
		cfg.StatsCollector.LogsBatchesProduced.Add(1)
		cfg.StatsCollector.RecordBatchRows(rec.NumRows())
	}
	return rec, nil
}

// TransformTraces decodes data into span rows and builds them against the
// static traces schema.
func TransformTraces(data []byte, format Format, opts ...Option) (arrow.Record, error) {
	cfg := config.Apply(opts...)
	rows, err := decode.DecodeTraces(data, format)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Debug("decoded traces", zap.Int("rows", len(rows)))
	rec, err := build.ValuesToArrow(cfg.Pool, schema.Traces(), rows)
	if err != nil {
		return nil, err
	}
	if cfg.StatsCollector != nil {
		cfg.StatsCollector.TracesBatchesProduced.Add(1)
		cfg.StatsCollector.RecordBatchRows(rec.NumRows())
	}
	return rec, nil
}

// TransformMetrics decodes data and builds every populated signal
// (gauge/sum/histogram/exp_histogram) against its own static schema,
// skipping Summary data points and non-finite values per §3.4/§4.B.
func TransformMetrics(data []byte, format Format, opts ...Option) (*MetricsRecordBatches, error) {
	cfg := config.Apply(opts...)
	decoded, err := decode.DecodeMetrics(data, format)
	if err != nil {
		return nil, err
	}

	skipped := decoded.Skipped.Snapshot()
	cfg.Logger.Debug("decoded metrics",
		zap.Int("gauge", len(decoded.Gauge)),
		zap.Int("sum", len(decoded.Sum)),
		zap.Int("histogram", len(decoded.Histogram)),
		zap.Int("exp_histogram", len(decoded.ExpHistogram)),
		zap.Uint64("skipped_summary", skipped.Summary),
		zap.Uint64("skipped_non_finite", skipped.NonFinite),
	)

	out := &MetricsRecordBatches{Skipped: skipped}

	buildSignal := func(rows []rowvalue.Row, sch *arrow.Schema, dst *arrow.Record) error {
		if len(rows) == 0 {
			return nil
		}
		rec, err := build.ValuesToArrow(cfg.Pool, sch, rows)
		if err != nil {
			return err
		}
		*dst = rec
		return nil
	}
	if err := buildSignal(decoded.Gauge, schema.Gauge(), &out.Gauge); err != nil {
		out.Release()
		return nil, err
	}
	if err := buildSignal(decoded.Sum, schema.Sum(), &out.Sum); err != nil {
		out.Release()
		return nil, err
	}
	if err := buildSignal(decoded.Histogram, schema.Histogram(), &out.Histogram); err != nil {
		out.Release()
		return nil, err
	}
	if err := buildSignal(decoded.ExpHistogram, schema.ExpHistogram(), &out.ExpHistogram); err != nil {
		out.Release()
		return nil, err
	}

	if cfg.StatsCollector != nil {
		cfg.StatsCollector.MetricsBatchesProduced.Add(1)
		for _, rec := range []arrow.Record{out.Gauge, out.Sum, out.Histogram, out.ExpHistogram} {
			if rec != nil {
				cfg.StatsCollector.RecordBatchRows(rec.NumRows())
			}
		}
	}
	return out, nil
}

// ToParquet, ToIPC, ToJSON forward a built Record to the Output Serializers
// (§4.F). Each releases rec once serialized.
func ToParquet(rec arrow.Record) ([]byte, error) { return output.ToParquet(rec) }
func ToJSON(rec arrow.Record) ([]byte, error)    { return output.ToNDJSON(rec) }

func ToIPC(rec arrow.Record, opts ...Option) ([]byte, error) {
	cfg := config.Apply(opts...)
	return output.ToIPC(cfg.Pool, rec)
}
