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
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// ToParquet serializes a single Record into an uncompressed, single-row-group
// Parquet file (§4.F). An empty record still produces a valid PAR1-framed
// file with zero rows.
func ToParquet(rec arrow.Record) ([]byte, error) {
	defer rec.Release()

	var buf bytes.Buffer
	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Uncompressed))
	arrProps := pqarrow.DefaultWriterProps()

	writer, err := pqarrow.NewFileWriter(rec.Schema(), &buf, props, arrProps)
	if err != nil {
		return nil, newError(FormatParquet, err)
	}

	if err := writer.Write(rec); err != nil {
		_ = writer.Close()
		return nil, newError(FormatParquet, err)
	}
	if err := writer.Close(); err != nil {
		return nil, newError(FormatParquet, err)
	}

	return buf.Bytes(), nil
}
