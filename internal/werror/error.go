/*
 * Copyright The OpenTelemetry Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package werror

import (
	"runtime"
	"strconv"
)

// Wrapper wraps an error with the file, line, and function where it was
// wrapped. The Columnar Builder uses it to decorate an error bubbling up
// through nested list/struct recursion with the call site that re-raised it.
type Wrapper struct {
	err error

	file     string
	line     int
	function string
}

// Error returns the wrapped error's message, prefixed with the call site.
func (w Wrapper) Error() string {
	msg := w.function + ":" + strconv.Itoa(w.line)
	if w.err != nil {
		msg += "->" + w.err.Error()
	}
	return msg
}

// Unwrap returns the wrapped error.
func (w Wrapper) Unwrap() error {
	return w.err
}

// Wrap wraps err with the file, line, and function of its caller. Returns
// nil if err is nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}

	pc, file, line, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)

	return Wrapper{
		err:      err,
		file:     file,
		line:     line,
		function: fn.Name(),
	}
}
