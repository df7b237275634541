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

// Package output implements the Output Serializers (§4.F): Parquet, Arrow
// IPC stream, and NDJSON encodings of a built arrow.Record.
package output

import "fmt"

// Format selects the serialization a Record is encoded into.
type Format uint8

const (
	FormatParquet Format = iota
	FormatIPC
	FormatNDJSON
)

// Error is the output serializer's error type. Cause is the underlying
// writer failure; Unwrap exposes it so callers can errors.Is/As past the
// Format wrapper.
type Error struct {
	Format Format
	Cause  error
}

func (e *Error) Error() string {
	var name string
	switch e.Format {
	case FormatParquet:
		name = "parquet"
	case FormatIPC:
		name = "ipc"
	default:
		name = "ndjson"
	}
	return fmt.Sprintf("output(%s): %s", name, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(format Format, err error) error {
	return &Error{Format: format, Cause: err}
}
