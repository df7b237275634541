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

import "strings"

// Format selects the wire encoding a payload is decoded as.
type Format uint8

const (
	FormatProto Format = iota
	FormatJSON
	FormatAuto
)

// LooksLikeJSON reports whether the first non-whitespace byte of b is '{'
// or '[' (§4.C).
func LooksLikeJSON(b []byte) bool {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '{', '[':
			return true
		default:
			return false
		}
	}
	return false
}

// FormatFromContentType infers a Format from an HTTP content-type string,
// per §4.G / §6.
func FormatFromContentType(contentType string) Format {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if semi := strings.IndexByte(ct, ';'); semi >= 0 {
		ct = strings.TrimSpace(ct[:semi])
	}
	switch ct {
	case "application/json", "application/otlp+json":
		return FormatJSON
	case "application/x-protobuf", "application/protobuf", "application/otlp":
		return FormatProto
	default:
		return FormatAuto
	}
}
