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
	"bytes"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ToIPC serializes a single Record as an Arrow IPC stream: one schema
// message, one record-batch message, and the stream end-of-stream marker
// (§4.F).
func ToIPC(mem memory.Allocator, rec arrow.Record) ([]byte, error) {
	defer rec.Release()

	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, ipc.WithAllocator(mem), ipc.WithSchema(rec.Schema()))

	if err := w.Write(rec); err != nil {
		_ = w.Close()
		return nil, newError(FormatIPC, err)
	}
	if err := w.Close(); err != nil {
		return nil, newError(FormatIPC, err)
	}

	return buf.Bytes(), nil
}
