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

package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/gtrak/otlp2records/pkg/build"
	"github.com/gtrak/otlp2records/pkg/output"
	"github.com/gtrak/otlp2records/pkg/rowvalue"
	"github.com/gtrak/otlp2records/pkg/schema"
)

func sampleLogsRecord(t *testing.T) []rowvalue.Row {
	t.Helper()
	return []rowvalue.Row{
		{
			schema.TraceID: rowvalue.NewBytes("aa"),
			schema.SpanID:  rowvalue.NewBytes("bb"),
			schema.Body:    rowvalue.NewBytes("hello"),
		},
		{
			schema.TraceID: rowvalue.NewBytes("cc"),
			schema.SpanID:  rowvalue.NewBytes("dd"),
		},
	}
}

func TestToParquetProducesNonEmptyPAR1File(t *testing.T) {
	t.Parallel()

	rec, err := build.ValuesToArrow(memory.NewGoAllocator(), schema.Logs(), sampleLogsRecord(t))
	require.NoError(t, err)

	data, err := output.ToParquet(rec)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	require.True(t, bytes.HasPrefix(data, []byte("PAR1")))
	require.True(t, bytes.HasSuffix(data, []byte("PAR1")))
}

func TestToIPCProducesNonEmptyStream(t *testing.T) {
	t.Parallel()

	pool := memory.NewGoAllocator()
	rec, err := build.ValuesToArrow(pool, schema.Logs(), sampleLogsRecord(t))
	require.NoError(t, err)

	data, err := output.ToIPC(pool, rec)
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestToNDJSONEmitsOneLinePerRow(t *testing.T) {
	t.Parallel()

	rec, err := build.ValuesToArrow(memory.NewGoAllocator(), schema.Logs(), sampleLogsRecord(t))
	require.NoError(t, err)

	data, err := output.ToNDJSON(rec)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.Equal(t, "hello", first[schema.Body])
	require.Equal(t, "aa", first[schema.TraceID])
}

func TestToNDJSONEmptyRecordProducesNoLines(t *testing.T) {
	t.Parallel()

	rec, err := build.ValuesToArrow(memory.NewGoAllocator(), schema.Logs(), nil)
	require.NoError(t, err)

	data, err := output.ToNDJSON(rec)
	require.NoError(t, err)
	require.Empty(t, data)
}
