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
	"go.uber.org/multierr"

	"github.com/gtrak/otlp2records/pkg/rowvalue"
)

// DecodeLogs dispatches to the proto or JSON log decoder per format; under
// FormatAuto it sniffs the payload (§4.C) and falls back to the other
// decoder if the sniffed one fails.
func DecodeLogs(data []byte, format Format) ([]rowvalue.Row, error) {
	switch format {
	case FormatProto:
		return DecodeLogsProto(data)
	case FormatJSON:
		return DecodeLogsJSON(data)
	default:
		return autoDecode(data,
			func(b []byte) ([]rowvalue.Row, error) { return DecodeLogsJSON(b) },
			func(b []byte) ([]rowvalue.Row, error) { return DecodeLogsProto(b) },
		)
	}
}

// DecodeTraces mirrors DecodeLogs for the trace signal.
func DecodeTraces(data []byte, format Format) ([]rowvalue.Row, error) {
	switch format {
	case FormatProto:
		return DecodeTracesProto(data)
	case FormatJSON:
		return DecodeTracesJSON(data)
	default:
		return autoDecode(data,
			func(b []byte) ([]rowvalue.Row, error) { return DecodeTracesJSON(b) },
			func(b []byte) ([]rowvalue.Row, error) { return DecodeTracesProto(b) },
		)
	}
}

// DecodeMetrics mirrors DecodeLogs for the metrics signal, returning the
// gauge/sum/histogram/exp_histogram dispatch multiplex.
func DecodeMetrics(data []byte, format Format) (*MetricsResult, error) {
	switch format {
	case FormatProto:
		return DecodeMetricsProto(data)
	case FormatJSON:
		return DecodeMetricsJSON(data)
	default:
		return autoDecodeMetrics(data)
	}
}

// autoDecode implements the Format Autodetect algorithm (§4.C): sniff the
// payload with LooksLikeJSON to pick a primary decoder, try it, and on
// failure retry with the other decoder before giving up. Both failure
// messages are preserved in the returned Unsupported error so neither is
// silently swallowed.
func autoDecode(data []byte, jsonDecode, protoDecode func([]byte) ([]rowvalue.Row, error)) ([]rowvalue.Row, error) {
	primary, secondary := jsonDecode, protoDecode
	if !LooksLikeJSON(data) {
		primary, secondary = protoDecode, jsonDecode
	}

	rows, err1 := primary(data)
	if err1 == nil {
		return rows, nil
	}
	rows, err2 := secondary(data)
	if err2 == nil {
		return rows, nil
	}
	return nil, newUnsupported(multierr.Append(err1, err2))
}

func autoDecodeMetrics(data []byte) (*MetricsResult, error) {
	order := []func([]byte) (*MetricsResult, error){DecodeMetricsProto, DecodeMetricsJSON}
	if LooksLikeJSON(data) {
		order = []func([]byte) (*MetricsResult, error){DecodeMetricsJSON, DecodeMetricsProto}
	}

	res, err1 := order[0](data)
	if err1 == nil {
		return res, nil
	}
	res, err2 := order[1](data)
	if err2 == nil {
		return res, nil
	}
	return nil, newUnsupported(multierr.Append(err1, err2))
}
