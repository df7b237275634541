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

// Package build implements the Columnar Builder (§4.E): it projects untyped
// rows onto a statically declared Arrow schema, one typed array builder per
// column. appendValue picks the typed append path by switching on the
// field's Arrow data type for every value it appends; that dispatch is not
// precomputed per schema.
package build

import (
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/gtrak/otlp2records/internal/werror"
	"github.com/gtrak/otlp2records/pkg/rowvalue"
)

// ValuesToArrow is the Columnar Builder's single entry point:
// values_to_arrow(schema, rows) -> RecordBatch | BuildError.
//
// Column capacities are preallocated to len(rows) (§5 resource-bound note).
// A type mismatch or a null written into a non-nullable field aborts the
// whole build; the partially built record is released and never returned.
func ValuesToArrow(mem memory.Allocator, sch *arrow.Schema, rows []rowvalue.Row) (arrow.Record, error) {
	rb := array.NewRecordBuilder(mem, sch)
	defer rb.Release()

	for i := range sch.Fields() {
		rb.Field(i).Reserve(len(rows))
	}

	fields := sch.Fields()
	for _, row := range rows {
		for i := range fields {
			f := &fields[i]
			v := row[f.Name]
			if err := appendValue(rb.Field(i), f.Type, f.Nullable, f.Name, v); err != nil {
				return nil, err
			}
		}
	}

	return rb.NewRecord(), nil
}

// appendValue appends a single value into b according to dt, the coercion
// table in §4.E. fieldPath is used only for error messages.
func appendValue(b array.Builder, dt arrow.DataType, nullable bool, fieldPath string, v rowvalue.Value) error {
	switch t := dt.(type) {
	case *arrow.StringType:
		return appendUTF8(b.(*array.StringBuilder), nullable, fieldPath, v)
	case *arrow.Int64Type:
		return appendInt64(b.(*array.Int64Builder), nullable, fieldPath, v)
	case *arrow.Int32Type:
		return appendInt32(b.(*array.Int32Builder), nullable, fieldPath, v)
	case *arrow.Float64Type:
		return appendFloat64(b.(*array.Float64Builder), nullable, fieldPath, v)
	case *arrow.BooleanType:
		return appendBool(b.(*array.BooleanBuilder), nullable, fieldPath, v)
	case *arrow.ListType:
		return appendList(b.(*array.ListBuilder), t.ElemField(), nullable, fieldPath, v)
	case *arrow.StructType:
		return appendStruct(b.(*array.StructBuilder), t, nullable, fieldPath, v)
	case *arrow.MapType:
		return appendMap(b.(*array.MapBuilder), nullable, fieldPath, v)
	default:
		return newTypeMismatch(fieldPath, dt.String(), "unsupported declared type")
	}
}

func appendUTF8(b *array.StringBuilder, nullable bool, fieldPath string, v rowvalue.Value) error {
	switch v.Kind() {
	case rowvalue.KindNull:
		if nullable {
			b.AppendNull()
		} else {
			b.Append("")
		}
		return nil
	case rowvalue.KindBytes:
		b.Append(v.Bytes())
		return nil
	case rowvalue.KindBool, rowvalue.KindInt64, rowvalue.KindFloat64:
		b.Append(v.String())
		return nil
	case rowvalue.KindArray, rowvalue.KindMap:
		b.Append(rowvalue.CanonicalJSON(v))
		return nil
	default:
		return newTypeMismatch(fieldPath, "utf8", "unknown")
	}
}

func appendInt64(b *array.Int64Builder, nullable bool, fieldPath string, v rowvalue.Value) error {
	switch v.Kind() {
	case rowvalue.KindNull:
		if !nullable {
			return newNullInNonNullable(fieldPath)
		}
		b.AppendNull()
		return nil
	case rowvalue.KindInt64:
		b.Append(v.Int64())
		return nil
	case rowvalue.KindFloat64:
		f := v.Float64()
		if f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64 {
			b.Append(int64(f))
			return nil
		}
		if nullable {
			b.AppendNull()
			return nil
		}
		return newTypeMismatch(fieldPath, "i64", "non-integral float64")
	case rowvalue.KindBool:
		if v.Bool() {
			b.Append(1)
		} else {
			b.Append(0)
		}
		return nil
	default:
		return newTypeMismatch(fieldPath, "i64", "composite value")
	}
}

func appendInt32(b *array.Int32Builder, nullable bool, fieldPath string, v rowvalue.Value) error {
	switch v.Kind() {
	case rowvalue.KindNull:
		if !nullable {
			return newNullInNonNullable(fieldPath)
		}
		b.AppendNull()
		return nil
	case rowvalue.KindInt64:
		b.Append(int32(v.Int64()))
		return nil
	default:
		return newTypeMismatch(fieldPath, "i32", "non-integer value")
	}
}

func appendFloat64(b *array.Float64Builder, nullable bool, fieldPath string, v rowvalue.Value) error {
	switch v.Kind() {
	case rowvalue.KindNull:
		if !nullable {
			return newNullInNonNullable(fieldPath)
		}
		b.AppendNull()
		return nil
	case rowvalue.KindFloat64:
		b.Append(v.Float64())
		return nil
	case rowvalue.KindInt64:
		b.Append(float64(v.Int64()))
		return nil
	default:
		return newTypeMismatch(fieldPath, "f64", "composite value")
	}
}

func appendBool(b *array.BooleanBuilder, nullable bool, fieldPath string, v rowvalue.Value) error {
	switch v.Kind() {
	case rowvalue.KindNull:
		if !nullable {
			return newNullInNonNullable(fieldPath)
		}
		b.AppendNull()
		return nil
	case rowvalue.KindBool:
		b.Append(v.Bool())
		return nil
	default:
		return newTypeMismatch(fieldPath, "bool", "non-bool value")
	}
}

func appendList(b *array.ListBuilder, elemField arrow.Field, nullable bool, fieldPath string, v rowvalue.Value) error {
	switch v.Kind() {
	case rowvalue.KindNull:
		if !nullable {
			return newNullInNonNullable(fieldPath)
		}
		b.AppendNull()
		return nil
	case rowvalue.KindArray:
		b.Append(true)
		elemBuilder := b.ValueBuilder()
		for _, item := range v.Array() {
			if err := appendValue(elemBuilder, elemField.Type, elemField.Nullable, fieldPath+"[]", item); err != nil {
				return werror.Wrap(err)
			}
		}
		return nil
	default:
		return newTypeMismatch(fieldPath, "list", "non-array value")
	}
}

func appendStruct(b *array.StructBuilder, st *arrow.StructType, nullable bool, fieldPath string, v rowvalue.Value) error {
	switch v.Kind() {
	case rowvalue.KindNull:
		if !nullable {
			return newNullInNonNullable(fieldPath)
		}
		// StructBuilder.AppendNull marks the validity bit and advances every
		// child builder with a null automatically.
		b.AppendNull()
		return nil
	case rowvalue.KindMap:
		b.Append(true)
		m := v.Map()
		for i := 0; i < st.NumFields(); i++ {
			childField := st.Field(i)
			var childVal rowvalue.Value
			if m != nil {
				if cv, ok := m.Get(childField.Name); ok {
					childVal = cv
				}
			}
			if err := appendValue(b.FieldBuilder(i), childField.Type, childField.Nullable, fieldPath+"."+childField.Name, childVal); err != nil {
				return werror.Wrap(err)
			}
		}
		return nil
	default:
		return newTypeMismatch(fieldPath, "struct", "non-map value")
	}
}

func appendMap(b *array.MapBuilder, nullable bool, fieldPath string, v rowvalue.Value) error {
	switch v.Kind() {
	case rowvalue.KindNull:
		if !nullable {
			return newNullInNonNullable(fieldPath)
		}
		b.AppendNull()
		return nil
	case rowvalue.KindMap:
		b.Append(true)
		keyBuilder := b.KeyBuilder().(*array.StringBuilder)
		itemBuilder := b.ItemBuilder().(*array.StringBuilder)
		m := v.Map()
		if m != nil {
			m.Range(func(key string, val rowvalue.Value) {
				keyBuilder.Append(key)
				if err := appendUTF8(itemBuilder, true, fieldPath+".value", val); err != nil {
					// appendUTF8 with nullable=true never errors.
					_ = err
				}
			})
		}
		return nil
	default:
		return newTypeMismatch(fieldPath, "map", "non-map value")
	}
}
