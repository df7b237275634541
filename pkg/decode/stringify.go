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
	"encoding/base64"
	"encoding/hex"
	"strings"
	"unicode/utf8"

	commonpb "go.opentelemetry.io/proto/otlp/common/v1"

	"github.com/gtrak/otlp2records/pkg/rowvalue"
)

// HexID renders a binary trace/span/parent-span id as lowercase hex; a
// zero-length id becomes the empty string (§4.B).
func HexID(id []byte) string {
	if len(id) == 0 {
		return ""
	}
	return hex.EncodeToString(id)
}

// sanitizeUTF8 replaces invalid UTF-8 byte sequences with U+FFFD, preserving
// the tagged union's Bytes(UTF-8) invariant (§3.1) at the point a raw byte
// string first enters the value model.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(s[i:])
			if size == 1 {
				b.WriteRune(utf8.RuneError)
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// AnyValueToRowValue converts an OTLP AnyValue into the untyped row value
// model, per the authoritative stringification rule (§4.B): scalars use
// their native form, generic bytes use base64 (not hex — hex is reserved
// for trace/span/parent-span ids), arrays and maps recurse structurally so
// that CanonicalJSON renders them identically to the spec's canonical JSON
// text rule when a utf8 column is the destination.
func AnyValueToRowValue(v *commonpb.AnyValue) rowvalue.Value {
	if v == nil {
		return rowvalue.Null
	}
	switch val := v.Value.(type) {
	case *commonpb.AnyValue_StringValue:
		return rowvalue.NewBytes(sanitizeUTF8(val.StringValue))
	case *commonpb.AnyValue_BoolValue:
		return rowvalue.NewBool(val.BoolValue)
	case *commonpb.AnyValue_IntValue:
		return rowvalue.NewInt64(val.IntValue)
	case *commonpb.AnyValue_DoubleValue:
		return rowvalue.NewFloat64(val.DoubleValue)
	case *commonpb.AnyValue_BytesValue:
		return rowvalue.NewBytes(base64.StdEncoding.EncodeToString(val.BytesValue))
	case *commonpb.AnyValue_ArrayValue:
		items := make([]rowvalue.Value, 0, len(val.ArrayValue.GetValues()))
		for _, item := range val.ArrayValue.GetValues() {
			items = append(items, AnyValueToRowValue(item))
		}
		return rowvalue.NewArray(items)
	case *commonpb.AnyValue_KvlistValue:
		m := rowvalue.NewOrderedMap()
		for _, kv := range val.KvlistValue.GetValues() {
			m.Set(kv.GetKey(), AnyValueToRowValue(kv.GetValue()))
		}
		return rowvalue.NewMap(m)
	default:
		return rowvalue.Null
	}
}

// AttributesToMap converts a repeated KeyValue sequence into the row map
// model used for every `attributes` column. Duplicate keys: last write wins
// (§4.B, §9 Open Question (a)); every leaf is further coerced to utf8 by the
// Columnar Builder's map<utf8,utf8> rule, so nested AnyValues here are
// stringified exactly as CanonicalJSON/String would render them.
func AttributesToMap(kvs []*commonpb.KeyValue) rowvalue.Value {
	m := rowvalue.NewOrderedMap()
	for _, kv := range kvs {
		m.Set(kv.GetKey(), stringifyForAttributeValue(kv.GetValue()))
	}
	return rowvalue.NewMap(m)
}

// stringifyForAttributeValue renders an AnyValue directly as the utf8 leaf
// an `attributes: map<utf8,utf8>` column requires, applying the same rule
// the Columnar Builder's utf8 coercion table would apply to the equivalent
// Value, so attribute values never carry through as non-Bytes kinds that
// would force a second coercion pass.
func stringifyForAttributeValue(v *commonpb.AnyValue) rowvalue.Value {
	rv := AnyValueToRowValue(v)
	switch rv.Kind() {
	case rowvalue.KindBytes, rowvalue.KindNull:
		return rv
	case rowvalue.KindArray, rowvalue.KindMap:
		return rowvalue.NewBytes(rowvalue.CanonicalJSON(rv))
	default:
		return rowvalue.NewBytes(rv.String())
	}
}
