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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/gtrak/otlp2records/pkg/schema"
)

func TestDecodeLogsAutoPicksJSONWhenPayloadLooksLikeJSON(t *testing.T) {
	t.Parallel()

	rows, err := DecodeLogs([]byte(sampleLogsJSON), FormatAuto)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "order placed", rows[0][schema.Body].Bytes())
}

func TestDecodeLogsAutoPicksProtoWhenPayloadLooksBinary(t *testing.T) {
	t.Parallel()

	data, err := proto.Marshal(sampleLogsRequest())
	require.NoError(t, err)

	rows, err := DecodeLogs(data, FormatAuto)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "order placed", rows[0][schema.Body].Bytes())
}

func TestDecodeLogsAutoBothFailReturnsUnsupportedWithBothMessages(t *testing.T) {
	t.Parallel()

	_, err := DecodeLogs([]byte{0xff, 0xff, 0xff, 0xff}, FormatAuto)
	require.Error(t, err)

	var decErr *Error
	require.ErrorAs(t, err, &decErr)
	require.Equal(t, Unsupported, decErr.Kind)
	require.Contains(t, err.Error(), "decode(unsupported)")
	require.Contains(t, err.Error(), "decode(proto)")
	require.Contains(t, err.Error(), "decode(json)")
}

func TestDecodeMetricsAutoBothFailReturnsUnsupported(t *testing.T) {
	t.Parallel()

	_, err := DecodeMetrics([]byte{0xff, 0xff, 0xff, 0xff}, FormatAuto)
	require.Error(t, err)

	var decErr *Error
	require.ErrorAs(t, err, &decErr)
	require.Equal(t, Unsupported, decErr.Kind)
}

func TestDecodeTracesAutoPicksJSON(t *testing.T) {
	t.Parallel()

	rows, err := DecodeTraces([]byte(sampleTracesJSON), FormatAuto)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.True(t, strings.HasPrefix(rows[0][schema.Name].Bytes(), "checkout"))
}
