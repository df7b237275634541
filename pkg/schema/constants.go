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

package schema

// Column names shared by every row schema, and per-signal column names.
// Adapted from the constants table this module descends from, trimmed to
// the flat denormalized row model this spec requires (no dictionary /
// attrs-id indirection).
const (
	Resource           = "resource"
	ResourceAttributes = "attributes"
	Scope              = "scope"
	ScopeName          = "name"
	ScopeVersion       = "version"
	ScopeAttributes    = "attributes"

	TimeUnixNano         = "time_unix_nano"
	StartTimeUnixNano    = "start_time_unix_nano"
	EndTimeUnixNano      = "end_time_unix_nano"
	ObservedTimeUnixNano = "observed_time_unix_nano"
	DurationNs           = "duration_ns"

	SeverityNumber = "severity_number"
	SeverityText   = "severity_text"
	Body           = "body"

	TraceID      = "trace_id"
	SpanID       = "span_id"
	ParentSpanID = "parent_span_id"
	TraceState   = "trace_state"

	Name  = "name"
	Kind  = "kind"
	Flags = "flags"

	Attributes              = "attributes"
	DroppedAttributesCount   = "dropped_attributes_count"
	DroppedEventsCount       = "dropped_events_count"
	DroppedLinksCount        = "dropped_links_count"
	StatusCode               = "status_code"
	StatusMessage            = "status_message"
	Events                   = "events"
	Links                    = "links"
	EventTimeUnixNano        = "time_unix_nano"
	EventName                = "name"
	EventAttributes          = "attributes"
	EventDroppedAttrCount    = "dropped_attributes_count"
	LinkTraceID              = "trace_id"
	LinkSpanID               = "span_id"
	LinkTraceState           = "trace_state"
	LinkAttributes           = "attributes"
	LinkDroppedAttrCount     = "dropped_attributes_count"
	LinkFlags                = "flags"

	MetricName        = "metric_name"
	MetricDescription = "metric_description"
	MetricUnit        = "metric_unit"
	MetricValue       = "value"
	Exemplars         = "exemplars"

	AggregationTemporality = "aggregation_temporality"
	IsMonotonic            = "is_monotonic"

	HistogramCount          = "count"
	HistogramSum            = "sum"
	HistogramMin            = "min"
	HistogramMax            = "max"
	HistogramBucketCounts   = "bucket_counts"
	HistogramExplicitBounds = "explicit_bounds"

	ExpHistogramScale        = "scale"
	ExpHistogramZeroCount    = "zero_count"
	ExpHistogramPositive     = "positive"
	ExpHistogramNegative     = "negative"
	ExpHistogramBucketOffset = "offset"
	ExpHistogramBucketCounts = "bucket_counts"
)
