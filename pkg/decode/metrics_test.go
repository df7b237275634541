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

package decode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	colmetricspb "go.opentelemetry.io/proto/otlp/collector/metrics/v1"
	metricspb "go.opentelemetry.io/proto/otlp/metrics/v1"
	resourcepb "go.opentelemetry.io/proto/otlp/resource/v1"

	"github.com/gtrak/otlp2records/pkg/schema"
)

func sampleMetricsRequest() *colmetricspb.ExportMetricsServiceRequest {
	return &colmetricspb.ExportMetricsServiceRequest{
		ResourceMetrics: []*metricspb.ResourceMetrics{
			{
				Resource: &resourcepb.Resource{},
				ScopeMetrics: []*metricspb.ScopeMetrics{
					{
						Metrics: []*metricspb.Metric{
							{
								Name: "queue.depth",
								Data: &metricspb.Metric_Gauge{
									Gauge: &metricspb.Gauge{
										DataPoints: []*metricspb.NumberDataPoint{
											{Value: &metricspb.NumberDataPoint_AsInt{AsInt: 7}, TimeUnixNano: 1000},
											{Value: &metricspb.NumberDataPoint_AsDouble{AsDouble: math.NaN()}, TimeUnixNano: 1001},
										},
									},
								},
							},
							{
								Name: "requests.total",
								Data: &metricspb.Metric_Sum{
									Sum: &metricspb.Sum{
										IsMonotonic:            true,
										AggregationTemporality: metricspb.AggregationTemporality_AGGREGATION_TEMPORALITY_CUMULATIVE,
										DataPoints: []*metricspb.NumberDataPoint{
											{Value: &metricspb.NumberDataPoint_AsDouble{AsDouble: 12.5}, TimeUnixNano: 1000},
										},
									},
								},
							},
							{
								Name: "request.duration",
								Data: &metricspb.Metric_Histogram{
									Histogram: &metricspb.Histogram{
										DataPoints: []*metricspb.HistogramDataPoint{
											{
												Count:          3,
												BucketCounts:   []uint64{1, 2, 0},
												ExplicitBounds: []float64{1.0, 2.0},
												TimeUnixNano:   1000,
											},
										},
									},
								},
							},
							{
								Name: "latency.distribution",
								Data: &metricspb.Metric_ExponentialHistogram{
									ExponentialHistogram: &metricspb.ExponentialHistogram{
										DataPoints: []*metricspb.ExponentialHistogramDataPoint{
											{
												Count: 5,
												Scale: 2,
												Positive: &metricspb.ExponentialHistogramDataPoint_Buckets{
													Offset:       1,
													BucketCounts: []uint64{1, 1, 3},
												},
												TimeUnixNano: 1000,
											},
										},
									},
								},
							},
							{
								Name: "request.size",
								Data: &metricspb.Metric_Summary{
									Summary: &metricspb.Summary{
										DataPoints: []*metricspb.SummaryDataPoint{
											{TimeUnixNano: 1000},
											{TimeUnixNano: 1001},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestDecodeMetricsProtoDispatchesDisjointly(t *testing.T) {
	t.Parallel()

	data, err := proto.Marshal(sampleMetricsRequest())
	require.NoError(t, err)

	res, err := DecodeMetricsProto(data)
	require.NoError(t, err)

	require.Len(t, res.Gauge, 1, "the NaN gauge point must be skipped, not emitted")
	require.Equal(t, 7.0, res.Gauge[0][schema.MetricValue].Float64())
	require.Equal(t, uint64(1), res.Skipped.NonFinite.Load())

	require.Len(t, res.Sum, 1)
	require.Equal(t, 12.5, res.Sum[0][schema.MetricValue].Float64())
	require.True(t, res.Sum[0][schema.IsMonotonic].Bool())

	require.Len(t, res.Histogram, 1)
	require.Equal(t, int64(3), res.Histogram[0][schema.HistogramCount].Int64())
	require.Len(t, res.Histogram[0][schema.HistogramBucketCounts].Array(), 3)

	require.Len(t, res.ExpHistogram, 1)
	require.Equal(t, int64(2), res.ExpHistogram[0][schema.ExpHistogramScale].Int64())
	positive := res.ExpHistogram[0][schema.ExpHistogramPositive].Map()
	offsetVal, ok := positive.Get(schema.ExpHistogramBucketOffset)
	require.True(t, ok)
	require.Equal(t, int64(1), offsetVal.Int64())

	require.True(t, res.Histogram[0][schema.HistogramSum].IsNull(), "unset optional sum must stay null")
	require.Equal(t, uint64(2), res.Skipped.Summary.Load())
	require.Equal(t, uint64(0), res.Skipped.Malformed.Load())
}

const sampleMetricsJSON = `{
  "resourceMetrics": [{
    "resource": {},
    "scopeMetrics": [{
      "metrics": [
        {
          "name": "queue.depth",
          "gauge": {"dataPoints": [
            {"asInt": "7", "timeUnixNano": "1000"}
          ]}
        },
        {
          "name": "requests.total",
          "sum": {
            "isMonotonic": true,
            "aggregationTemporality": 2,
            "dataPoints": [{"asDouble": 12.5, "timeUnixNano": "1000"}]
          }
        },
        {
          "name": "request.size",
          "summary": {"dataPoints": [{"timeUnixNano": "1000"}]}
        }
      ]
    }]
  }]
}`

func TestDecodeMetricsJSONMatchesProtoShape(t *testing.T) {
	t.Parallel()

	res, err := DecodeMetricsJSON([]byte(sampleMetricsJSON))
	require.NoError(t, err)

	require.Len(t, res.Gauge, 1)
	require.Equal(t, 7.0, res.Gauge[0][schema.MetricValue].Float64())

	require.Len(t, res.Sum, 1)
	require.Equal(t, 12.5, res.Sum[0][schema.MetricValue].Float64())
	require.Equal(t, int64(2), res.Sum[0][schema.AggregationTemporality].Int64())

	require.Equal(t, uint64(1), res.Skipped.Summary.Load())
}

func TestDecodeMetricsJSONMalformed(t *testing.T) {
	t.Parallel()

	_, err := DecodeMetricsJSON([]byte(`{not json`))
	require.Error(t, err)

	var decErr *Error
	require.ErrorAs(t, err, &decErr)
	require.Equal(t, JSON, decErr.Kind)
}
