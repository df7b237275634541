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

	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"

	"github.com/gtrak/otlp2records/pkg/rowvalue"
	"github.com/gtrak/otlp2records/pkg/schema"
)

// DecodeLogsProto parses an ExportLogsServiceRequest and denormalizes it
// into one row per log record (§4.B).
func DecodeLogsProto(data []byte) ([]rowvalue.Row, error) {
	var req collogspb.ExportLogsServiceRequest
	if err := proto.Unmarshal(data, &req); err != nil {
		return nil, newProtoError(err)
	}

	var rows []rowvalue.Row
	for _, rl := range req.GetResourceLogs() {
		resourceVal := ResourceValue(rl.GetResource())
		for _, sl := range rl.GetScopeLogs() {
			scopeVal := ScopeValue(sl.GetScope())
			for _, lr := range sl.GetLogRecords() {
				row := rowvalue.Row{
					schema.TimeUnixNano:         timestampOrNull(lr.GetTimeUnixNano()),
					schema.ObservedTimeUnixNano: timestampOrNull(lr.GetObservedTimeUnixNano()),
					schema.SeverityNumber:       rowvalue.NewInt64(int64(lr.GetSeverityNumber())),
					schema.SeverityText:         rowvalue.NewBytes(lr.GetSeverityText()),
					schema.Body:                 bodyValue(AnyValueToRowValue(lr.GetBody())),
					schema.TraceID:              rowvalue.NewBytes(HexID(lr.GetTraceId())),
					schema.SpanID:               rowvalue.NewBytes(HexID(lr.GetSpanId())),
					schema.Attributes:           AttributesToMap(lr.GetAttributes()),
					schema.Resource:             resourceVal,
					schema.Scope:                scopeVal,
				}
				rows = append(rows, row)
			}
		}
	}
	return rows, nil
}

// timestampOrNull encodes a fixed64 OTLP timestamp field: OTLP always
// transmits a concrete uint64, but 0 is conventionally "unset" for
// time_unix_nano/observed_time_unix_nano, so 0 becomes null when the
// schema allows it (§4.D).
func timestampOrNull(v uint64) rowvalue.Value {
	if v == 0 {
		return rowvalue.Null
	}
	return rowvalue.NewInt64(int64(v))
}

// bodyValue coerces the log record body AnyValue to the utf8 `body` column
// (§4.D "body coerced via AnyValue stringification").
func bodyValue(v rowvalue.Value) rowvalue.Value {
	switch v.Kind() {
	case rowvalue.KindBytes, rowvalue.KindNull:
		return v
	case rowvalue.KindArray, rowvalue.KindMap:
		return rowvalue.NewBytes(rowvalue.CanonicalJSON(v))
	default:
		return rowvalue.NewBytes(v.String())
	}
}

// DecodeLogsJSON parses a canonical OTLP-JSON logs payload (§6) into the
// same row shape DecodeLogsProto produces.
func DecodeLogsJSON(data []byte) ([]rowvalue.Row, error) {
	top, err := parseJSONObject(data)
	if err != nil {
		return nil, newJSONError(err)
	}

	var rows []rowvalue.Row
	for _, rlRaw := range jGetArr(top, "resourceLogs") {
		rl, _ := rlRaw.(jsonObj)
		if rl == nil {
			continue
		}
		resourceVal := jResourceValue(rl)
		for _, slRaw := range jGetArr(rl, "scopeLogs") {
			sl, _ := slRaw.(jsonObj)
			if sl == nil {
				continue
			}
			scopeVal := jScopeValue(sl)
			for _, lrRaw := range jGetArr(sl, "logRecords") {
				lr, _ := lrRaw.(jsonObj)
				if lr == nil {
					continue
				}
				timeNano, _ := jGetUint64(lr, "timeUnixNano")
				obsNano, _ := jGetUint64(lr, "observedTimeUnixNano")
				sevNum, _ := jGetInt64(lr, "severityNumber")
				row := rowvalue.Row{
					schema.TimeUnixNano:         timestampOrNull(timeNano),
					schema.ObservedTimeUnixNano: timestampOrNull(obsNano),
					schema.SeverityNumber:       rowvalue.NewInt64(sevNum),
					schema.SeverityText:         rowvalue.NewBytes(jGetStr(lr, "severityText")),
					schema.Body:                 bodyValue(jAnyValue(jGetObj(lr, "body"))),
					schema.TraceID:              rowvalue.NewBytes(jHexID(lr, "traceId")),
					schema.SpanID:               rowvalue.NewBytes(jHexID(lr, "spanId")),
					schema.Attributes:           jAttributes(jGetArr(lr, "attributes")),
					schema.Resource:             resourceVal,
					schema.Scope:                scopeVal,
				}
				rows = append(rows, row)
			}
		}
	}
	return rows, nil
}
