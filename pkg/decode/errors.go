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

// Package decode implements the OTLP Decoder (§4.B), Format Autodetect
// (§4.C), and Row Normalizer (§4.D) components.
package decode

import "fmt"

// ErrorKind discriminates the decoder error taxonomy:
// DecodeError::{Proto,Json,Unsupported}.
type ErrorKind uint8

const (
	Proto ErrorKind = iota
	JSON
	Unsupported
)

// Error is the decoder's error type. Cause is the underlying proto/json
// decode failure (or, for Unsupported, the aggregated Auto-mode failure);
// Unwrap exposes it so callers can errors.Is/As past the Kind wrapper.
type Error struct {
	Kind  ErrorKind
	Cause error
}

func (e *Error) Error() string {
	switch e.Kind {
	case Proto:
		return fmt.Sprintf("decode(proto): %s", e.Cause)
	case JSON:
		return fmt.Sprintf("decode(json): %s", e.Cause)
	default:
		return fmt.Sprintf("decode(unsupported): %s", e.Cause)
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newProtoError(err error) error {
	return &Error{Kind: Proto, Cause: err}
}

func newJSONError(err error) error {
	return &Error{Kind: JSON, Cause: err}
}

// newUnsupported builds the Auto-mode double-fail error, aggregating both
// underlying failures (§4.C) behind a single Cause so either is reachable
// via errors.Is/As.
func newUnsupported(cause error) error {
	return &Error{Kind: Unsupported, Cause: cause}
}
