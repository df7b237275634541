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

package otlp2records_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	colmetricspb "go.opentelemetry.io/proto/otlp/collector/metrics/v1"
	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	logspb "go.opentelemetry.io/proto/otlp/logs/v1"
	metricspb "go.opentelemetry.io/proto/otlp/metrics/v1"
	resourcepb "go.opentelemetry.io/proto/otlp/resource/v1"

	otlp2records "github.com/gtrak/otlp2records"
	"github.com/gtrak/otlp2records/internal/testfixture"
	"github.com/gtrak/otlp2records/stats"
)

func sampleLogsPayload(t *testing.T) []byte {
	t.Helper()
	req := &collogspb.ExportLogsServiceRequest{
		ResourceLogs: []*logspb.ResourceLogs{
			{
				Resource: &resourcepb.Resource{},
				ScopeLogs: []*logspb.ScopeLogs{
					{
						LogRecords: []*logspb.LogRecord{
							{Body: &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: "hi"}}},
							{Body: &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: "bye"}}},
						},
					},
				},
			},
		},
	}
	data, err := proto.Marshal(req)
	require.NoError(t, err)
	return data
}

func TestTransformLogsColumnLengthInvariant(t *testing.T) {
	t.Parallel()

	rec, err := otlp2records.TransformLogs(sampleLogsPayload(t), otlp2records.FormatProto)
	require.NoError(t, err)
	defer rec.Release()

	require.Equal(t, int64(2), rec.NumRows())
	for i := 0; i < int(rec.NumCols()); i++ {
		require.Equal(t, rec.NumRows(), int64(rec.Column(i).Len()))
	}
}

func TestTransformLogsThenToParquetProducesPAR1File(t *testing.T) {
	t.Parallel()

	rec, err := otlp2records.TransformLogs(sampleLogsPayload(t), otlp2records.FormatProto)
	require.NoError(t, err)

	data, err := otlp2records.ToParquet(rec)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("PAR1")))
}

func TestTransformLogsThenToJSONProducesOneLinePerRow(t *testing.T) {
	t.Parallel()

	rec, err := otlp2records.TransformLogs(sampleLogsPayload(t), otlp2records.FormatProto)
	require.NoError(t, err)

	data, err := otlp2records.ToJSON(rec)
	require.NoError(t, err)
	require.Equal(t, 2, bytes.Count(data, []byte("\n")))
}

func TestTransformLogsThenToIPCProducesNonEmptyStream(t *testing.T) {
	t.Parallel()

	rec, err := otlp2records.TransformLogs(sampleLogsPayload(t), otlp2records.FormatProto)
	require.NoError(t, err)

	data, err := otlp2records.ToIPC(rec)
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestTransformMetricsDispatchesFiniteOnlyAndSkipsSummary(t *testing.T) {
	t.Parallel()

	req := &colmetricspb.ExportMetricsServiceRequest{
		ResourceMetrics: []*metricspb.ResourceMetrics{
			{
				Resource: &resourcepb.Resource{},
				ScopeMetrics: []*metricspb.ScopeMetrics{
					{
						Metrics: []*metricspb.Metric{
							{
								Name: "in.flight",
								Data: &metricspb.Metric_Gauge{
									Gauge: &metricspb.Gauge{
										DataPoints: []*metricspb.NumberDataPoint{
											{Value: &metricspb.NumberDataPoint_AsInt{AsInt: 3}},
											{Value: &metricspb.NumberDataPoint_AsDouble{AsDouble: math.Inf(1)}},
										},
									},
								},
							},
							{
								Name: "response.size",
								Data: &metricspb.Metric_Summary{
									Summary: &metricspb.Summary{
										DataPoints: []*metricspb.SummaryDataPoint{{}},
									},
								},
							},
						},
					},
				},
			},
		},
	}
	data, err := proto.Marshal(req)
	require.NoError(t, err)

	batches, err := otlp2records.TransformMetrics(data, otlp2records.FormatProto)
	require.NoError(t, err)
	defer batches.Release()

	require.NotNil(t, batches.Gauge)
	require.Equal(t, int64(1), batches.Gauge.NumRows())
	require.Nil(t, batches.Sum)
	require.Nil(t, batches.Histogram)
	require.Nil(t, batches.ExpHistogram)
	require.Equal(t, uint64(1), batches.Skipped.NonFinite)
	require.Equal(t, uint64(1), batches.Skipped.Summary)
}

func TestTransformLogsAutoDetectsProtoPayload(t *testing.T) {
	t.Parallel()

	rec, err := otlp2records.TransformLogs(sampleLogsPayload(t), otlp2records.FormatAuto)
	require.NoError(t, err)
	defer rec.Release()
	require.Equal(t, int64(2), rec.NumRows())
}

// TestTransformLogsHandlesRandomizedBatches runs the full decode/build/output
// pipeline against a handful of randomly generated batches rather than one
// fixed payload, to shake out row-count mismatches that a single hand-picked
// record would not reach.
func TestTransformLogsHandlesRandomizedBatches(t *testing.T) {
	t.Parallel()

	for i := 0; i < 5; i++ {
		req := testfixture.LogsRequest(i + 1)
		data, err := proto.Marshal(req)
		require.NoError(t, err)

		rec, err := otlp2records.TransformLogs(data, otlp2records.FormatProto)
		require.NoError(t, err)

		require.Equal(t, int64(4*(i+1)), rec.NumRows())
		data, err = otlp2records.ToParquet(rec)
		require.NoError(t, err)
		require.NotEmpty(t, data)
	}
}

func TestTransformTracesHandlesRandomizedBatches(t *testing.T) {
	t.Parallel()

	req := testfixture.TracesRequest(3)
	data, err := proto.Marshal(req)
	require.NoError(t, err)

	rec, err := otlp2records.TransformTraces(data, otlp2records.FormatProto)
	require.NoError(t, err)
	defer rec.Release()
	require.Equal(t, int64(3), rec.NumRows())
}

func TestWithStatsCollectsBatchSizeDistribution(t *testing.T) {
	t.Parallel()

	collector := stats.NewTranscodeStats(true)
	rec, err := otlp2records.TransformLogs(sampleLogsPayload(t), otlp2records.FormatProto, otlp2records.WithStats(collector))
	require.NoError(t, err)
	defer rec.Release()

	require.Equal(t, uint64(1), collector.LogsBatchesProduced.Load())
	dist := collector.BatchSizeDistribution()
	require.NotNil(t, dist)
	require.Equal(t, int64(2), dist.Max())
}
