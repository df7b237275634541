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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalJSONScalars(t *testing.T) {
	t.Parallel()

	require.Equal(t, "null", CanonicalJSON(Null))
	require.Equal(t, "true", CanonicalJSON(NewBool(true)))
	require.Equal(t, "7", CanonicalJSON(NewInt64(7)))
	require.Equal(t, `"hi \"there\""`, CanonicalJSON(NewBytes(`hi "there"`)))
}

func TestCanonicalJSONArrayAndMap(t *testing.T) {
	t.Parallel()

	arr := NewArray([]Value{NewInt64(1), NewBytes("a"), Null})
	require.Equal(t, `[1,"a",null]`, CanonicalJSON(arr))

	m := NewOrderedMap()
	m.Set("b", NewInt64(2))
	m.Set("a", NewBytes("x"))
	require.Equal(t, `{"b":2,"a":"x"}`, CanonicalJSON(NewMap(m)))
}

func TestCanonicalJSONNestedComposite(t *testing.T) {
	t.Parallel()

	inner := NewOrderedMap()
	inner.Set("k", NewBool(false))
	outer := NewArray([]Value{NewMap(inner), NewInt64(3)})

	require.Equal(t, `[{"k":false},3]`, CanonicalJSON(outer))
}
