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

// Package rowvalue implements the untyped row value model: the tagged union
// the OTLP decoders emit and the columnar builder consumes.
package rowvalue

import "fmt"

// Kind discriminates the tagged union. Match on Kind, not on Go type, in
// every hot loop — avoids interface type-assertion dispatch.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt64
	KindFloat64
	KindBytes
	KindArray
	KindMap
)

// Value is a single leaf (or nested) value in a decoded row. Floating-point
// leaves are guaranteed finite: NewFloat64 rejects NaN and ±Inf, returning
// the null value instead (callers that need to count this as skipped check
// the result with IsNull).
type Value struct {
	kind  Kind
	b     bool
	i     int64
	f     float64
	s     string // KindBytes: UTF-8 text
	arr   []Value
	m     *OrderedMap
}

// Null is the zero Value and reports KindNull.
var Null = Value{kind: KindNull}

func NewBool(v bool) Value    { return Value{kind: KindBool, b: v} }
func NewInt64(v int64) Value  { return Value{kind: KindInt64, i: v} }
func NewBytes(v string) Value { return Value{kind: KindBytes, s: v} }

// NewFloat64 returns a finite float64 value, or Null if v is NaN/±Inf.
// Callers on the metrics path are responsible for turning the Null result
// into a skipped.non_finite count; the value model itself never carries
// non-finite numbers (§3.1 invariant).
func NewFloat64(v float64) Value {
	if isNonFinite(v) {
		return Null
	}
	return Value{kind: KindFloat64, f: v}
}

func isNonFinite(v float64) bool {
	return v != v || v > maxFloat64 || v < -maxFloat64
}

const maxFloat64 = 1.7976931348623157e+308

func NewArray(items []Value) Value {
	return Value{kind: KindArray, arr: items}
}

func NewMap(m *OrderedMap) Value {
	return Value{kind: KindMap, m: m}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Bool() bool       { return v.b }
func (v Value) Int64() int64     { return v.i }
func (v Value) Float64() float64 { return v.f }
func (v Value) Bytes() string    { return v.s }
func (v Value) Array() []Value   { return v.arr }
func (v Value) Map() *OrderedMap { return v.m }

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindInt64:
		return fmt.Sprintf("%d", v.i)
	case KindFloat64:
		return fmt.Sprintf("%g", v.f)
	case KindBytes:
		return v.s
	default:
		return "<composite>"
	}
}

// OrderedMap preserves source (insertion) order of keys, with last-write-wins
// semantics on duplicate keys (§4.B, §9 Open Question (a)).
type OrderedMap struct {
	keys   []string
	values map[string]Value
}

func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]Value)}
}

// Set inserts or overwrites key. On overwrite the key keeps its original
// position in iteration order; only the value changes (last write wins).
func (m *OrderedMap) Set(key string, val Value) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = val
}

func (m *OrderedMap) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *OrderedMap) Len() int { return len(m.keys) }

// Range iterates entries in insertion order.
func (m *OrderedMap) Range(fn func(key string, val Value)) {
	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}

// Row is a single decoded record: a flat map of schema field name to Value.
// Nested schema fields (resource, scope, events, links, positive, negative)
// are represented as KindMap/KindArray values under their field name.
type Row map[string]Value
