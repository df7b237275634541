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

package schema

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/require"
)

// mustField looks up the sole field named name in sch, failing the test if
// it is absent or ambiguous.
func mustField(t *testing.T, sch *arrow.Schema, name string) arrow.Field {
	t.Helper()
	ids := sch.FieldIndices(name)
	require.Lenf(t, ids, 1, "expected exactly one field named %q", name)
	return sch.Field(ids[0])
}

// TestAccessorsAreStableAcrossCalls verifies the Schema Registry invariant:
// two calls to the same accessor return structurally identical schemas.
func TestAccessorsAreStableAcrossCalls(t *testing.T) {
	t.Parallel()

	accessors := map[string]func() *arrow.Schema{
		"logs":          Logs,
		"traces":        Traces,
		"gauge":         Gauge,
		"sum":           Sum,
		"histogram":     Histogram,
		"exp_histogram": ExpHistogram,
	}

	for name, fn := range accessors {
		name, fn := name, fn
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			require.True(t, fn().Equal(fn()), "schema for %s must be stable across calls", name)
		})
	}
}

func TestLogsSchemaRequiredFields(t *testing.T) {
	t.Parallel()

	sch := Logs()

	require.False(t, mustField(t, sch, TraceID).Nullable)
	require.False(t, mustField(t, sch, SpanID).Nullable)
	require.True(t, mustField(t, sch, Body).Nullable)
}

func TestTracesSchemaCarriesEventsAndLinksAsLists(t *testing.T) {
	t.Parallel()

	sch := Traces()

	eventsList, ok := mustField(t, sch, Events).Type.(*arrow.ListType)
	require.True(t, ok)
	eventStruct, ok := eventsList.ElemField().Type.(*arrow.StructType)
	require.True(t, ok)
	require.Equal(t, 4, eventStruct.NumFields())

	linksList, ok := mustField(t, sch, Links).Type.(*arrow.ListType)
	require.True(t, ok)
	linkStruct, ok := linksList.ElemField().Type.(*arrow.StructType)
	require.True(t, ok)
	require.Equal(t, 6, linkStruct.NumFields())
}

func TestGaugeAndSumCarryNonNullableValue(t *testing.T) {
	t.Parallel()

	require.False(t, mustField(t, Gauge(), MetricValue).Nullable)
	require.False(t, mustField(t, Sum(), MetricValue).Nullable)
	mustField(t, Sum(), IsMonotonic)
}

func TestHistogramAndExpHistogramCarryCount(t *testing.T) {
	t.Parallel()

	require.False(t, mustField(t, Histogram(), HistogramCount).Nullable)
	require.False(t, mustField(t, ExpHistogram(), HistogramCount).Nullable)
	mustField(t, ExpHistogram(), ExpHistogramPositive)
	mustField(t, ExpHistogram(), ExpHistogramNegative)
}
