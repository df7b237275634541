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
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFloat64RejectsNonFinite(t *testing.T) {
	t.Parallel()

	require.True(t, NewFloat64(math.NaN()).IsNull())
	require.True(t, NewFloat64(math.Inf(1)).IsNull())
	require.True(t, NewFloat64(math.Inf(-1)).IsNull())

	v := NewFloat64(3.5)
	require.Equal(t, KindFloat64, v.Kind())
	require.Equal(t, 3.5, v.Float64())
}

func TestValueStringNativeForm(t *testing.T) {
	t.Parallel()

	require.Equal(t, "null", Null.String())
	require.Equal(t, "true", NewBool(true).String())
	require.Equal(t, "42", NewInt64(42).String())
	require.Equal(t, "hello", NewBytes("hello").String())
}

func TestOrderedMapLastWriteWinsPreservesPosition(t *testing.T) {
	t.Parallel()

	m := NewOrderedMap()
	m.Set("a", NewInt64(1))
	m.Set("b", NewInt64(2))
	m.Set("a", NewInt64(99))

	require.Equal(t, 2, m.Len())

	var keys []string
	var vals []int64
	m.Range(func(key string, val Value) {
		keys = append(keys, key)
		vals = append(vals, val.Int64())
	})

	require.Equal(t, []string{"a", "b"}, keys)
	require.Equal(t, []int64{99, 2}, vals)

	v, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, int64(99), v.Int64())

	_, ok = m.Get("missing")
	require.False(t, ok)
}

func TestNewArrayAndMapKinds(t *testing.T) {
	t.Parallel()

	arr := NewArray([]Value{NewInt64(1), NewBytes("x")})
	require.Equal(t, KindArray, arr.Kind())
	require.Len(t, arr.Array(), 2)

	m := NewOrderedMap()
	m.Set("k", NewBool(true))
	mv := NewMap(m)
	require.Equal(t, KindMap, mv.Kind())
	require.Equal(t, 1, mv.Map().Len())
}
