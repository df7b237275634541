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

// Package schema is the Schema Registry: pure accessors returning the
// static Arrow schema handles for logs, traces, gauge, sum, histogram and
// exp-histogram. Two calls to the same accessor return structurally
// identical schemas (field order, nullability, nested types) — they are
// built fresh from compile-time constant field slices, never mutated.
package schema

import (
	"github.com/apache/arrow-go/v18/arrow"
)

func field(name string, dt arrow.DataType, nullable bool) arrow.Field {
	return arrow.Field{Name: name, Type: dt, Nullable: nullable}
}

// resourceStruct returns the struct type shared by every row schema for the
// `resource` column: a service/origin descriptor with a string-keyed
// attribute map.
func resourceStruct() *arrow.StructType {
	return arrow.StructOf(
		field(ResourceAttributes, attributesMapType(), true),
	)
}

// scopeStruct returns the struct type shared by every row schema for the
// `scope` column: instrumentation-library name, version, attributes.
func scopeStruct() *arrow.StructType {
	return arrow.StructOf(
		field(ScopeName, arrow.BinaryTypes.String, true),
		field(ScopeVersion, arrow.BinaryTypes.String, true),
		field(ScopeAttributes, attributesMapType(), true),
	)
}

// attributesMapType returns the map<utf8,utf8> type used for every
// `attributes` column. Keys are non-nullable (map key invariant); values
// are nullable to accommodate the utf8-from-null coercion rule.
func attributesMapType() *arrow.MapType {
	mt := arrow.MapOf(arrow.BinaryTypes.String, arrow.BinaryTypes.String)
	mt.KeysSorted = false
	return mt
}

func commonFields() []arrow.Field {
	return []arrow.Field{
		field(Resource, resourceStruct(), true),
		field(Scope, scopeStruct(), true),
	}
}

// Logs returns the static Arrow schema for the logs row (§3.2).
func Logs() *arrow.Schema {
	fields := []arrow.Field{
		field(TimeUnixNano, arrow.PrimitiveTypes.Int64, true),
		field(ObservedTimeUnixNano, arrow.PrimitiveTypes.Int64, true),
		field(SeverityNumber, arrow.PrimitiveTypes.Int64, true),
		field(SeverityText, arrow.BinaryTypes.String, true),
		field(Body, arrow.BinaryTypes.String, true),
		field(TraceID, arrow.BinaryTypes.String, false),
		field(SpanID, arrow.BinaryTypes.String, false),
		field(Attributes, attributesMapType(), true),
	}
	fields = append(fields, commonFields()...)
	return arrow.NewSchema(fields, nil)
}

func eventStruct() *arrow.StructType {
	return arrow.StructOf(
		field(EventTimeUnixNano, arrow.PrimitiveTypes.Int64, true),
		field(EventName, arrow.BinaryTypes.String, true),
		field(EventAttributes, attributesMapType(), true),
		field(EventDroppedAttrCount, arrow.PrimitiveTypes.Int64, true),
	)
}

func linkStruct() *arrow.StructType {
	return arrow.StructOf(
		field(LinkTraceID, arrow.BinaryTypes.String, false),
		field(LinkSpanID, arrow.BinaryTypes.String, false),
		field(LinkTraceState, arrow.BinaryTypes.String, true),
		field(LinkAttributes, attributesMapType(), true),
		field(LinkDroppedAttrCount, arrow.PrimitiveTypes.Int64, true),
		field(LinkFlags, arrow.PrimitiveTypes.Int64, true),
	)
}

// Traces returns the static Arrow schema for the traces (spans) row (§3.2).
func Traces() *arrow.Schema {
	fields := []arrow.Field{
		field(TraceID, arrow.BinaryTypes.String, false),
		field(SpanID, arrow.BinaryTypes.String, false),
		field(ParentSpanID, arrow.BinaryTypes.String, true),
		field(TraceState, arrow.BinaryTypes.String, true),
		field(Name, arrow.BinaryTypes.String, true),
		field(Kind, arrow.PrimitiveTypes.Int64, true),
		field(StartTimeUnixNano, arrow.PrimitiveTypes.Int64, true),
		field(EndTimeUnixNano, arrow.PrimitiveTypes.Int64, true),
		field(DurationNs, arrow.PrimitiveTypes.Int64, true),
		field(Attributes, attributesMapType(), true),
		field(StatusCode, arrow.PrimitiveTypes.Int64, true),
		field(StatusMessage, arrow.BinaryTypes.String, true),
		field(Events, arrow.ListOf(eventStruct()), true),
		field(Links, arrow.ListOf(linkStruct()), true),
		field(DroppedAttributesCount, arrow.PrimitiveTypes.Int64, true),
		field(DroppedEventsCount, arrow.PrimitiveTypes.Int64, true),
		field(DroppedLinksCount, arrow.PrimitiveTypes.Int64, true),
		field(Flags, arrow.PrimitiveTypes.Int64, true),
	}
	fields = append(fields, commonFields()...)
	return arrow.NewSchema(fields, nil)
}

func exemplarStruct() *arrow.StructType {
	return arrow.StructOf(
		field(TimeUnixNano, arrow.PrimitiveTypes.Int64, true),
		field(MetricValue, arrow.PrimitiveTypes.Float64, true),
		field(TraceID, arrow.BinaryTypes.String, true),
		field(SpanID, arrow.BinaryTypes.String, true),
	)
}

func numberPointFields() []arrow.Field {
	return []arrow.Field{
		field(TimeUnixNano, arrow.PrimitiveTypes.Int64, true),
		field(StartTimeUnixNano, arrow.PrimitiveTypes.Int64, true),
		field(MetricName, arrow.BinaryTypes.String, true),
		field(MetricDescription, arrow.BinaryTypes.String, true),
		field(MetricUnit, arrow.BinaryTypes.String, true),
		field(Attributes, attributesMapType(), true),
		field(Flags, arrow.PrimitiveTypes.Int64, true),
		field(Exemplars, arrow.ListOf(exemplarStruct()), true),
	}
}

// Gauge returns the static Arrow schema for gauge metric data points.
func Gauge() *arrow.Schema {
	fields := numberPointFields()
	fields = append(fields, field(MetricValue, arrow.PrimitiveTypes.Float64, false))
	fields = append(fields, commonFields()...)
	return arrow.NewSchema(fields, nil)
}

// Sum returns the static Arrow schema for sum metric data points.
func Sum() *arrow.Schema {
	fields := numberPointFields()
	fields = append(fields,
		field(MetricValue, arrow.PrimitiveTypes.Float64, false),
		field(AggregationTemporality, arrow.PrimitiveTypes.Int64, true),
		field(IsMonotonic, arrow.FixedWidthTypes.Boolean, true),
	)
	fields = append(fields, commonFields()...)
	return arrow.NewSchema(fields, nil)
}

func histogramCommonFields() []arrow.Field {
	fields := numberPointFields()
	fields = append(fields,
		field(HistogramCount, arrow.PrimitiveTypes.Int64, false),
		field(HistogramSum, arrow.PrimitiveTypes.Float64, true),
		field(HistogramMin, arrow.PrimitiveTypes.Float64, true),
		field(HistogramMax, arrow.PrimitiveTypes.Float64, true),
		field(HistogramBucketCounts, arrow.ListOf(arrow.PrimitiveTypes.Int64), true),
		field(HistogramExplicitBounds, arrow.ListOf(arrow.PrimitiveTypes.Float64), true),
	)
	return fields
}

// Histogram returns the static Arrow schema for histogram metric data points.
func Histogram() *arrow.Schema {
	fields := histogramCommonFields()
	fields = append(fields, commonFields()...)
	return arrow.NewSchema(fields, nil)
}

func expHistogramBucketsStruct() *arrow.StructType {
	return arrow.StructOf(
		field(ExpHistogramBucketOffset, arrow.PrimitiveTypes.Int32, true),
		field(ExpHistogramBucketCounts, arrow.ListOf(arrow.PrimitiveTypes.Int64), true),
	)
}

// ExpHistogram returns the static Arrow schema for exponential-histogram
// metric data points.
func ExpHistogram() *arrow.Schema {
	fields := histogramCommonFields()
	fields = append(fields,
		field(ExpHistogramScale, arrow.PrimitiveTypes.Int64, true),
		field(ExpHistogramZeroCount, arrow.PrimitiveTypes.Int64, true),
		field(ExpHistogramPositive, expHistogramBucketsStruct(), true),
		field(ExpHistogramNegative, expHistogramBucketsStruct(), true),
	)
	fields = append(fields, commonFields()...)
	return arrow.NewSchema(fields, nil)
}
