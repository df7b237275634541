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

package output

import (
	"bufio"
	"bytes"
	"encoding/json"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// ToNDJSON serializes a Record as line-delimited JSON: one object per row,
// fields in schema order, using each column's native JSON representation
// (§4.F). Nested struct and map values are encoded as JSON objects with
// their keys in sorted order. An empty record produces empty output, not a
// blank line.
//
// No example library in the pack exposes a line-delimited-JSON Arrow writer;
// this is hand-rolled on encoding/json + bufio rather than imported.
func ToNDJSON(rec arrow.Record) ([]byte, error) {
	defer rec.Release()

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	sch := rec.Schema()

	for row := 0; row < int(rec.NumRows()); row++ {
		line := []byte{'{'}
		for col := 0; col < int(rec.NumCols()); col++ {
			if col > 0 {
				line = append(line, ',')
			}
			key, _ := json.Marshal(sch.Field(col).Name)
			val, err := json.Marshal(columnJSONValue(rec.Column(col), row))
			if err != nil {
				return nil, newError(FormatNDJSON, err)
			}
			line = append(append(append(line, key...), ':'), val...)
		}
		line = append(line, '}')
		if _, err := w.Write(line); err != nil {
			return nil, newError(FormatNDJSON, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return nil, newError(FormatNDJSON, err)
		}
	}

	if err := w.Flush(); err != nil {
		return nil, newError(FormatNDJSON, err)
	}
	return buf.Bytes(), nil
}

// columnJSONValue extracts the row-th value of col as a plain Go value
// suitable for encoding/json, recursing into list/struct/map columns.
func columnJSONValue(col arrow.Array, row int) interface{} {
	if col.IsNull(row) {
		return nil
	}
	switch c := col.(type) {
	case *array.String:
		return c.Value(row)
	case *array.Int64:
		return c.Value(row)
	case *array.Int32:
		return c.Value(row)
	case *array.Float64:
		return c.Value(row)
	case *array.Boolean:
		return c.Value(row)
	case *array.List:
		start, end := c.ValueOffsets(row)
		values := c.ListValues()
		items := make([]interface{}, 0, end-start)
		for i := start; i < end; i++ {
			items = append(items, columnJSONValue(values, int(i)))
		}
		return items
	case *array.Struct:
		out := make(map[string]interface{}, c.NumField())
		dt := c.DataType().(*arrow.StructType)
		for i := 0; i < c.NumField(); i++ {
			out[dt.Field(i).Name] = columnJSONValue(c.Field(i), row)
		}
		return out
	case *array.Map:
		start, end := c.ValueOffsets(row)
		keys := c.Keys()
		items := c.Items()
		out := make(map[string]interface{}, end-start)
		for i := start; i < end; i++ {
			var key string
			if ks, ok := keys.(*array.String); ok {
				key = ks.Value(int(i))
			}
			out[key] = columnJSONValue(items, int(i))
		}
		return out
	default:
		return nil
	}
}
