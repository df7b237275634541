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

package rowvalue

import (
	"encoding/json"
	"strings"
)

// CanonicalJSON renders v as canonical JSON text, per the authoritative
// stringification rule: scalars use their native string form, bytes use
// base64 (handled by callers holding the raw []byte before it becomes a
// Value), and arrays/maps recurse into JSON arrays/objects.
func CanonicalJSON(v Value) string {
	var b strings.Builder
	writeJSON(&b, v)
	return b.String()
}

func writeJSON(b *strings.Builder, v Value) {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		if v.b {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindInt64:
		enc, _ := json.Marshal(v.i)
		b.Write(enc)
	case KindFloat64:
		enc, _ := json.Marshal(v.f)
		b.Write(enc)
	case KindBytes:
		enc, _ := json.Marshal(v.s)
		b.Write(enc)
	case KindArray:
		b.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSON(b, item)
		}
		b.WriteByte(']')
	case KindMap:
		b.WriteByte('{')
		first := true
		if v.m != nil {
			v.m.Range(func(key string, val Value) {
				if !first {
					b.WriteByte(',')
				}
				first = false
				keyEnc, _ := json.Marshal(key)
				b.Write(keyEnc)
				b.WriteByte(':')
				writeJSON(b, val)
			})
		}
		b.WriteByte('}')
	}
}
