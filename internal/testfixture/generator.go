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

// Package testfixture generates randomized, structurally valid OTLP requests
// for property-style tests: unlike a literal fixture, every call produces a
// batch with different ids, bodies, and values, exercising the decode path
// against a wider corner of the input space than a handful of hand-written
// records would.
package testfixture

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"

	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	coltracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	logspb "go.opentelemetry.io/proto/otlp/logs/v1"
	resourcepb "go.opentelemetry.io/proto/otlp/resource/v1"
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"
)

func genID(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(gofakeit.Number(0, 255))
	}
	return b
}

func defaultAttributes() []*commonpb.KeyValue {
	return []*commonpb.KeyValue{
		{Key: "service.name", Value: &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: gofakeit.AppName()}}},
		{Key: "host.name", Value: &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: gofakeit.DomainName()}}},
	}
}

var severities = []struct {
	num  logspb.SeverityNumber
	text string
}{
	{logspb.SeverityNumber_SEVERITY_NUMBER_DEBUG, "DEBUG"},
	{logspb.SeverityNumber_SEVERITY_NUMBER_INFO, "INFO"},
	{logspb.SeverityNumber_SEVERITY_NUMBER_WARN, "WARN"},
	{logspb.SeverityNumber_SEVERITY_NUMBER_ERROR, "ERROR"},
}

// LogsRequest builds a randomized ExportLogsServiceRequest with batchSize
// resource-log groups, one log record per severity level each.
func LogsRequest(batchSize int) *collogspb.ExportLogsServiceRequest {
	now := uint64(time.Now().UnixNano())
	resourceLogs := make([]*logspb.ResourceLogs, 0, batchSize)

	for i := 0; i < batchSize; i++ {
		var records []*logspb.LogRecord
		for _, sev := range severities {
			records = append(records, &logspb.LogRecord{
				TimeUnixNano:         now + uint64(i),
				ObservedTimeUnixNano: now + uint64(i),
				SeverityNumber:       sev.num,
				SeverityText:         sev.text,
				Body: &commonpb.AnyValue{
					Value: &commonpb.AnyValue_StringValue{StringValue: gofakeit.LoremIpsumSentence(10)},
				},
				Attributes: defaultAttributes(),
				TraceId:    genID(16),
				SpanId:     genID(8),
			})
		}
		resourceLogs = append(resourceLogs, &logspb.ResourceLogs{
			Resource: &resourcepb.Resource{Attributes: defaultAttributes()},
			ScopeLogs: []*logspb.ScopeLogs{
				{
					Scope:      &commonpb.InstrumentationScope{Name: gofakeit.AppName(), Version: gofakeit.AppVersion()},
					LogRecords: records,
				},
			},
		})
	}

	return &collogspb.ExportLogsServiceRequest{ResourceLogs: resourceLogs}
}

// TracesRequest builds a randomized ExportTraceServiceRequest with batchSize
// resource-span groups, one span each.
func TracesRequest(batchSize int) *coltracepb.ExportTraceServiceRequest {
	now := uint64(time.Now().UnixNano())
	resourceSpans := make([]*tracepb.ResourceSpans, 0, batchSize)

	for i := 0; i < batchSize; i++ {
		start := now + uint64(i)*1000
		end := start + uint64(gofakeit.Number(1, 5000))
		span := &tracepb.Span{
			TraceId:           genID(16),
			SpanId:            genID(8),
			Name:              gofakeit.HackerVerb() + "." + gofakeit.HackerNoun(),
			Kind:              tracepb.Span_SPAN_KIND_INTERNAL,
			StartTimeUnixNano: start,
			EndTimeUnixNano:   end,
			Attributes:        defaultAttributes(),
			Status:            &tracepb.Status{Code: tracepb.Status_STATUS_CODE_OK},
		}
		resourceSpans = append(resourceSpans, &tracepb.ResourceSpans{
			Resource: &resourcepb.Resource{Attributes: defaultAttributes()},
			ScopeSpans: []*tracepb.ScopeSpans{
				{
					Scope: &commonpb.InstrumentationScope{Name: gofakeit.AppName()},
					Spans: []*tracepb.Span{span},
				},
			},
		})
	}

	return &coltracepb.ExportTraceServiceRequest{ResourceSpans: resourceSpans}
}
