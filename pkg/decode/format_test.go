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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLooksLikeJSON(t *testing.T) {
	t.Parallel()

	require.True(t, LooksLikeJSON([]byte(`{"a":1}`)))
	require.True(t, LooksLikeJSON([]byte("  \n\t[1,2]")))
	require.False(t, LooksLikeJSON([]byte{0x0a, 0x0c, 0x03}))
	require.False(t, LooksLikeJSON(nil))
}

func TestFormatFromContentType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		ct   string
		want Format
	}{
		{"application/json", FormatJSON},
		{"application/json; charset=utf-8", FormatJSON},
		{"application/otlp+json", FormatJSON},
		{"application/x-protobuf", FormatProto},
		{"application/protobuf", FormatProto},
		{"text/plain", FormatAuto},
		{"", FormatAuto},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FormatFromContentType(tc.ct), "content-type %q", tc.ct)
	}
}
