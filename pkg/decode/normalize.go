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
	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	resourcepb "go.opentelemetry.io/proto/otlp/resource/v1"

	"github.com/gtrak/otlp2records/pkg/schema"

	"github.com/gtrak/otlp2records/pkg/rowvalue"
)

// ResourceValue denormalizes an OTLP Resource into the `resource` struct
// column every row schema carries, copying its attributes by value (§4.B
// "Denormalization"). A nil resource yields Null, which the Columnar
// Builder null-pads into the struct's children.
func ResourceValue(r *resourcepb.Resource) rowvalue.Value {
	if r == nil {
		return rowvalue.Null
	}
	m := rowvalue.NewOrderedMap()
	m.Set(schema.ResourceAttributes, AttributesToMap(r.GetAttributes()))
	return rowvalue.NewMap(m)
}

// ScopeValue denormalizes an OTLP InstrumentationScope into the `scope`
// struct column every row schema carries.
func ScopeValue(s *commonpb.InstrumentationScope) rowvalue.Value {
	if s == nil {
		return rowvalue.Null
	}
	m := rowvalue.NewOrderedMap()
	m.Set(schema.ScopeName, rowvalue.NewBytes(s.GetName()))
	m.Set(schema.ScopeVersion, rowvalue.NewBytes(s.GetVersion()))
	m.Set(schema.ScopeAttributes, AttributesToMap(s.GetAttributes()))
	return rowvalue.NewMap(m)
}

// DurationNs computes a span's derived duration field (§4.D, testable
// property S8): max(0, end-start) when both endpoints are present;
// otherwise the field stays null.
func DurationNs(startUnixNano, endUnixNano uint64, haveStart, haveEnd bool) rowvalue.Value {
	if !haveStart || !haveEnd {
		return rowvalue.Null
	}
	if endUnixNano < startUnixNano {
		return rowvalue.NewInt64(0)
	}
	return rowvalue.NewInt64(int64(endUnixNano - startUnixNano))
}
