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
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/gtrak/otlp2records/pkg/rowvalue"
)

// jsonObj/jsonArr are the generic tree shapes produced by decoding OTLP-JSON
// with json.Number preserved, so stringified int64 timestamps round-trip
// exactly instead of losing precision through float64.
type jsonObj = map[string]interface{}
type jsonArr = []interface{}

func parseJSONObject(data []byte) (jsonObj, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	obj, ok := v.(jsonObj)
	if !ok {
		return nil, errNotAnObject
	}
	return obj, nil
}

var errNotAnObject = errors.New("top-level OTLP-JSON payload must be an object")

func jGetObj(o jsonObj, key string) jsonObj {
	if o == nil {
		return nil
	}
	v, _ := o[key].(jsonObj)
	return v
}

func jGetArr(o jsonObj, key string) jsonArr {
	if o == nil {
		return nil
	}
	v, _ := o[key].(jsonArr)
	return v
}

func jGetStr(o jsonObj, key string) string {
	if o == nil {
		return ""
	}
	v, _ := o[key].(string)
	return v
}

// jGetInt64 reads a field that OTLP-JSON stringifies (int64/uint64 fields
// are rendered as JSON strings to survive the float64 precision ceiling).
func jGetInt64(o jsonObj, key string) (int64, bool) {
	if o == nil {
		return 0, false
	}
	switch v := o[key].(type) {
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			uN, uerr := strconv.ParseUint(v, 10, 64)
			if uerr != nil {
				return 0, false
			}
			return int64(uN), true
		}
		return n, true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func jGetUint64(o jsonObj, key string) (uint64, bool) {
	n, ok := jGetInt64(o, key)
	return uint64(n), ok
}

func jGetFloat64(o jsonObj, key string) (float64, bool) {
	if o == nil {
		return 0, false
	}
	switch v := o[key].(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func jGetBool(o jsonObj, key string) bool {
	if o == nil {
		return false
	}
	v, _ := o[key].(bool)
	return v
}

// jHexID renders a JSON trace/span/parent-span id field (already a hex
// string per canonical OTLP-JSON, §6) as lowercase hex; absent becomes "".
func jHexID(o jsonObj, key string) string {
	return strings.ToLower(jGetStr(o, key))
}

// jAttributes converts a JSON `attributes` array ([{"key":...,"value":{...}}])
// into the row map model, last-write-wins on duplicate keys.
func jAttributes(arr jsonArr) rowvalue.Value {
	m := rowvalue.NewOrderedMap()
	for _, item := range arr {
		kv, ok := item.(jsonObj)
		if !ok {
			continue
		}
		key := jGetStr(kv, "key")
		m.Set(key, jStringifyAttrValue(jGetObj(kv, "value")))
	}
	return rowvalue.NewMap(m)
}

func jAnyValue(v jsonObj) rowvalue.Value {
	if v == nil {
		return rowvalue.Null
	}
	if s, ok := v["stringValue"].(string); ok {
		return rowvalue.NewBytes(sanitizeUTF8(s))
	}
	if b, ok := v["boolValue"].(bool); ok {
		return rowvalue.NewBool(b)
	}
	if iv, ok := jGetInt64(v, "intValue"); ok {
		return rowvalue.NewInt64(iv)
	}
	if fv, ok := jGetFloat64(v, "doubleValue"); ok {
		return rowvalue.NewFloat64(fv)
	}
	if bs, ok := v["bytesValue"].(string); ok {
		decoded, err := base64.StdEncoding.DecodeString(bs)
		if err != nil {
			return rowvalue.NewBytes(bs)
		}
		return rowvalue.NewBytes(base64.StdEncoding.EncodeToString(decoded))
	}
	if av := jGetObj(v, "arrayValue"); av != nil {
		values := jGetArr(av, "values")
		items := make([]rowvalue.Value, 0, len(values))
		for _, item := range values {
			obj, _ := item.(jsonObj)
			items = append(items, jAnyValue(obj))
		}
		return rowvalue.NewArray(items)
	}
	if kv := jGetObj(v, "kvlistValue"); kv != nil {
		values := jGetArr(kv, "values")
		m := rowvalue.NewOrderedMap()
		for _, item := range values {
			obj, _ := item.(jsonObj)
			if obj == nil {
				continue
			}
			m.Set(jGetStr(obj, "key"), jAnyValue(jGetObj(obj, "value")))
		}
		return rowvalue.NewMap(m)
	}
	return rowvalue.Null
}

func jStringifyAttrValue(v jsonObj) rowvalue.Value {
	rv := jAnyValue(v)
	switch rv.Kind() {
	case rowvalue.KindBytes, rowvalue.KindNull:
		return rv
	case rowvalue.KindArray, rowvalue.KindMap:
		return rowvalue.NewBytes(rowvalue.CanonicalJSON(rv))
	default:
		return rowvalue.NewBytes(rv.String())
	}
}

// jResourceValue / jScopeValue mirror ResourceValue/ScopeValue (normalize.go)
// for the JSON decode path.
func jResourceValue(o jsonObj) rowvalue.Value {
	res := jGetObj(o, "resource")
	if res == nil {
		return rowvalue.Null
	}
	m := rowvalue.NewOrderedMap()
	m.Set("attributes", jAttributes(jGetArr(res, "attributes")))
	return rowvalue.NewMap(m)
}

func jScopeValue(o jsonObj) rowvalue.Value {
	scope := jGetObj(o, "scope")
	if scope == nil {
		return rowvalue.Null
	}
	m := rowvalue.NewOrderedMap()
	m.Set("name", rowvalue.NewBytes(jGetStr(scope, "name")))
	m.Set("version", rowvalue.NewBytes(jGetStr(scope, "version")))
	m.Set("attributes", jAttributes(jGetArr(scope, "attributes")))
	return rowvalue.NewMap(m)
}
