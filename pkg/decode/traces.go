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
	"google.golang.org/protobuf/proto"

	coltracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"

	"github.com/gtrak/otlp2records/pkg/rowvalue"
	"github.com/gtrak/otlp2records/pkg/schema"
)

// DecodeTracesProto parses an ExportTraceServiceRequest into one row per
// span (§4.B, §3.2).
func DecodeTracesProto(data []byte) ([]rowvalue.Row, error) {
	var req coltracepb.ExportTraceServiceRequest
	if err := proto.Unmarshal(data, &req); err != nil {
		return nil, newProtoError(err)
	}

	var rows []rowvalue.Row
	for _, rs := range req.GetResourceSpans() {
		resourceVal := ResourceValue(rs.GetResource())
		for _, ss := range rs.GetScopeSpans() {
			scopeVal := ScopeValue(ss.GetScope())
			for _, span := range ss.GetSpans() {
				rows = append(rows, spanToRow(span, resourceVal, scopeVal))
			}
		}
	}
	return rows, nil
}

func spanToRow(span *tracepb.Span, resourceVal, scopeVal rowvalue.Value) rowvalue.Row {
	start, end := span.GetStartTimeUnixNano(), span.GetEndTimeUnixNano()
	haveStart, haveEnd := start != 0, end != 0

	events := make([]rowvalue.Value, 0, len(span.GetEvents()))
	for _, ev := range span.GetEvents() {
		m := rowvalue.NewOrderedMap()
		m.Set(schema.EventTimeUnixNano, timestampOrNull(ev.GetTimeUnixNano()))
		m.Set(schema.EventName, rowvalue.NewBytes(ev.GetName()))
		m.Set(schema.EventAttributes, AttributesToMap(ev.GetAttributes()))
		m.Set(schema.EventDroppedAttrCount, rowvalue.NewInt64(int64(ev.GetDroppedAttributesCount())))
		events = append(events, rowvalue.NewMap(m))
	}

	links := make([]rowvalue.Value, 0, len(span.GetLinks()))
	for _, lk := range span.GetLinks() {
		m := rowvalue.NewOrderedMap()
		m.Set(schema.LinkTraceID, rowvalue.NewBytes(HexID(lk.GetTraceId())))
		m.Set(schema.LinkSpanID, rowvalue.NewBytes(HexID(lk.GetSpanId())))
		m.Set(schema.LinkTraceState, rowvalue.NewBytes(lk.GetTraceState()))
		m.Set(schema.LinkAttributes, AttributesToMap(lk.GetAttributes()))
		m.Set(schema.LinkDroppedAttrCount, rowvalue.NewInt64(int64(lk.GetDroppedAttributesCount())))
		m.Set(schema.LinkFlags, rowvalue.NewInt64(int64(lk.GetFlags())))
		links = append(links, rowvalue.NewMap(m))
	}

	return rowvalue.Row{
		schema.TraceID:                rowvalue.NewBytes(HexID(span.GetTraceId())),
		schema.SpanID:                 rowvalue.NewBytes(HexID(span.GetSpanId())),
		schema.ParentSpanID:           rowvalue.NewBytes(HexID(span.GetParentSpanId())),
		schema.TraceState:             rowvalue.NewBytes(span.GetTraceState()),
		schema.Name:                   rowvalue.NewBytes(span.GetName()),
		schema.Kind:                   rowvalue.NewInt64(int64(span.GetKind())),
		schema.StartTimeUnixNano:      timestampOrNull(start),
		schema.EndTimeUnixNano:        timestampOrNull(end),
		schema.DurationNs:             DurationNs(start, end, haveStart, haveEnd),
		schema.Attributes:             AttributesToMap(span.GetAttributes()),
		schema.StatusCode:             rowvalue.NewInt64(int64(span.GetStatus().GetCode())),
		schema.StatusMessage:          rowvalue.NewBytes(span.GetStatus().GetMessage()),
		schema.Events:                 rowvalue.NewArray(events),
		schema.Links:                  rowvalue.NewArray(links),
		schema.DroppedAttributesCount: rowvalue.NewInt64(int64(span.GetDroppedAttributesCount())),
		schema.DroppedEventsCount:     rowvalue.NewInt64(int64(span.GetDroppedEventsCount())),
		schema.DroppedLinksCount:      rowvalue.NewInt64(int64(span.GetDroppedLinksCount())),
		schema.Flags:                  rowvalue.NewInt64(int64(span.GetFlags())),
		schema.Resource:               resourceVal,
		schema.Scope:                  scopeVal,
	}
}

// DecodeTracesJSON parses a canonical OTLP-JSON traces payload into the
// same row shape DecodeTracesProto produces.
func DecodeTracesJSON(data []byte) ([]rowvalue.Row, error) {
	top, err := parseJSONObject(data)
	if err != nil {
		return nil, newJSONError(err)
	}

	var rows []rowvalue.Row
	for _, rsRaw := range jGetArr(top, "resourceSpans") {
		rs, _ := rsRaw.(jsonObj)
		if rs == nil {
			continue
		}
		resourceVal := jResourceValue(rs)
		for _, ssRaw := range jGetArr(rs, "scopeSpans") {
			ss, _ := ssRaw.(jsonObj)
			if ss == nil {
				continue
			}
			scopeVal := jScopeValue(ss)
			for _, spanRaw := range jGetArr(ss, "spans") {
				span, _ := spanRaw.(jsonObj)
				if span == nil {
					continue
				}
				rows = append(rows, jSpanToRow(span, resourceVal, scopeVal))
			}
		}
	}
	return rows, nil
}

func jSpanToRow(span jsonObj, resourceVal, scopeVal rowvalue.Value) rowvalue.Row {
	start, haveStart := jGetUint64(span, "startTimeUnixNano")
	end, haveEnd := jGetUint64(span, "endTimeUnixNano")
	haveStart = haveStart && start != 0
	haveEnd = haveEnd && end != 0

	eventsArr := jGetArr(span, "events")
	events := make([]rowvalue.Value, 0, len(eventsArr))
	for _, evRaw := range eventsArr {
		ev, _ := evRaw.(jsonObj)
		if ev == nil {
			continue
		}
		t, _ := jGetUint64(ev, "timeUnixNano")
		dac, _ := jGetInt64(ev, "droppedAttributesCount")
		m := rowvalue.NewOrderedMap()
		m.Set(schema.EventTimeUnixNano, timestampOrNull(t))
		m.Set(schema.EventName, rowvalue.NewBytes(jGetStr(ev, "name")))
		m.Set(schema.EventAttributes, jAttributes(jGetArr(ev, "attributes")))
		m.Set(schema.EventDroppedAttrCount, rowvalue.NewInt64(dac))
		events = append(events, rowvalue.NewMap(m))
	}

	linksArr := jGetArr(span, "links")
	links := make([]rowvalue.Value, 0, len(linksArr))
	for _, lkRaw := range linksArr {
		lk, _ := lkRaw.(jsonObj)
		if lk == nil {
			continue
		}
		dac, _ := jGetInt64(lk, "droppedAttributesCount")
		flags, _ := jGetInt64(lk, "flags")
		m := rowvalue.NewOrderedMap()
		m.Set(schema.LinkTraceID, rowvalue.NewBytes(jHexID(lk, "traceId")))
		m.Set(schema.LinkSpanID, rowvalue.NewBytes(jHexID(lk, "spanId")))
		m.Set(schema.LinkTraceState, rowvalue.NewBytes(jGetStr(lk, "traceState")))
		m.Set(schema.LinkAttributes, jAttributes(jGetArr(lk, "attributes")))
		m.Set(schema.LinkDroppedAttrCount, rowvalue.NewInt64(dac))
		m.Set(schema.LinkFlags, rowvalue.NewInt64(flags))
		links = append(links, rowvalue.NewMap(m))
	}

	kind, _ := jGetInt64(span, "kind")
	dAttrs, _ := jGetInt64(span, "droppedAttributesCount")
	dEvents, _ := jGetInt64(span, "droppedEventsCount")
	dLinks, _ := jGetInt64(span, "droppedLinksCount")
	flags, _ := jGetInt64(span, "flags")
	status := jGetObj(span, "status")
	statusCode, _ := jGetInt64(status, "code")

	return rowvalue.Row{
		schema.TraceID:                rowvalue.NewBytes(jHexID(span, "traceId")),
		schema.SpanID:                 rowvalue.NewBytes(jHexID(span, "spanId")),
		schema.ParentSpanID:           rowvalue.NewBytes(jHexID(span, "parentSpanId")),
		schema.TraceState:             rowvalue.NewBytes(jGetStr(span, "traceState")),
		schema.Name:                   rowvalue.NewBytes(jGetStr(span, "name")),
		schema.Kind:                   rowvalue.NewInt64(kind),
		schema.StartTimeUnixNano:      timestampOrNull(start),
		schema.EndTimeUnixNano:        timestampOrNull(end),
		schema.DurationNs:             DurationNs(start, end, haveStart, haveEnd),
		schema.Attributes:             jAttributes(jGetArr(span, "attributes")),
		schema.StatusCode:             rowvalue.NewInt64(statusCode),
		schema.StatusMessage:          rowvalue.NewBytes(jGetStr(status, "message")),
		schema.Events:                 rowvalue.NewArray(events),
		schema.Links:                  rowvalue.NewArray(links),
		schema.DroppedAttributesCount: rowvalue.NewInt64(dAttrs),
		schema.DroppedEventsCount:     rowvalue.NewInt64(dEvents),
		schema.DroppedLinksCount:      rowvalue.NewInt64(dLinks),
		schema.Flags:                  rowvalue.NewInt64(flags),
		schema.Resource:               resourceVal,
		schema.Scope:                  scopeVal,
	}
}
