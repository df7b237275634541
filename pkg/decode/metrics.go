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
	"google.golang.org/protobuf/proto"

	colmetricspb "go.opentelemetry.io/proto/otlp/collector/metrics/v1"
	metricspb "go.opentelemetry.io/proto/otlp/metrics/v1"

	"github.com/gtrak/otlp2records/pkg/rowvalue"
	"github.com/gtrak/otlp2records/pkg/schema"
	"github.com/gtrak/otlp2records/stats"
)

// MetricsResult is the metric dispatch multiplex (§3.4): each data point's
// metric-type oneof determines which of these row sets it lands in; Summary
// data points are never emitted, only counted in Skipped.
type MetricsResult struct {
	Gauge        []rowvalue.Row
	Sum          []rowvalue.Row
	Histogram    []rowvalue.Row
	ExpHistogram []rowvalue.Row
	Skipped      stats.SkippedCounts
}

func optionalFloat(p *float64) rowvalue.Value {
	if p == nil {
		return rowvalue.Null
	}
	return rowvalue.NewFloat64(*p)
}

func int64List(vs []uint64) rowvalue.Value {
	items := make([]rowvalue.Value, len(vs))
	for i, v := range vs {
		items[i] = rowvalue.NewInt64(int64(v))
	}
	return rowvalue.NewArray(items)
}

func float64List(vs []float64) rowvalue.Value {
	items := make([]rowvalue.Value, len(vs))
	for i, v := range vs {
		items[i] = rowvalue.NewFloat64(v)
	}
	return rowvalue.NewArray(items)
}

func exemplarsValue(exs []*metricspb.Exemplar) rowvalue.Value {
	items := make([]rowvalue.Value, 0, len(exs))
	for _, ex := range exs {
		var val rowvalue.Value
		switch v := ex.GetValue().(type) {
		case *metricspb.Exemplar_AsDouble:
			val = rowvalue.NewFloat64(v.AsDouble)
		case *metricspb.Exemplar_AsInt:
			val = rowvalue.NewFloat64(float64(v.AsInt))
		default:
			val = rowvalue.Null
		}
		m := rowvalue.NewOrderedMap()
		m.Set(schema.TimeUnixNano, timestampOrNull(ex.GetTimeUnixNano()))
		m.Set(schema.MetricValue, val)
		m.Set(schema.TraceID, rowvalue.NewBytes(HexID(ex.GetTraceId())))
		m.Set(schema.SpanID, rowvalue.NewBytes(HexID(ex.GetSpanId())))
		items = append(items, rowvalue.NewMap(m))
	}
	return rowvalue.NewArray(items)
}

// numberPointBase builds the fields every gauge/sum/histogram/exp-histogram
// row shares (§3.2).
func numberPointBase(name, description, unit string, startNano, timeNano uint64,
	attributes rowvalue.Value, exemplars rowvalue.Value, flags uint32,
	resourceVal, scopeVal rowvalue.Value) rowvalue.Row {
	return rowvalue.Row{
		schema.TimeUnixNano:      timestampOrNull(timeNano),
		schema.StartTimeUnixNano: timestampOrNull(startNano),
		schema.MetricName:        rowvalue.NewBytes(name),
		schema.MetricDescription: rowvalue.NewBytes(description),
		schema.MetricUnit:        rowvalue.NewBytes(unit),
		schema.Attributes:        attributes,
		schema.Flags:             rowvalue.NewInt64(int64(flags)),
		schema.Exemplars:         exemplars,
		schema.Resource:          resourceVal,
		schema.Scope:             scopeVal,
	}
}

// DecodeMetricsProto parses an ExportMetricsServiceRequest, dispatching
// every data point into gauge/sum/histogram/exp_histogram row sets and
// tallying skipped counts for Summary and non-finite/missing values (§4.B).
func DecodeMetricsProto(data []byte) (*MetricsResult, error) {
	var req colmetricspb.ExportMetricsServiceRequest
	if err := proto.Unmarshal(data, &req); err != nil {
		return nil, newProtoError(err)
	}

	res := &MetricsResult{}
	for _, rm := range req.GetResourceMetrics() {
		resourceVal := ResourceValue(rm.GetResource())
		for _, sm := range rm.GetScopeMetrics() {
			scopeVal := ScopeValue(sm.GetScope())
			for _, metric := range sm.GetMetrics() {
				dispatchMetricProto(metric, resourceVal, scopeVal, res)
			}
		}
	}
	return res, nil
}

func dispatchMetricProto(metric *metricspb.Metric, resourceVal, scopeVal rowvalue.Value, res *MetricsResult) {
	name, desc, unit := metric.GetName(), metric.GetDescription(), metric.GetUnit()
	switch data := metric.GetData().(type) {
	case *metricspb.Metric_Gauge:
		for _, dp := range data.Gauge.GetDataPoints() {
			val, ok := numberDataPointValue(dp)
			base := numberPointBase(name, desc, unit, dp.GetStartTimeUnixNano(), dp.GetTimeUnixNano(),
				AttributesToMap(dp.GetAttributes()), exemplarsValue(dp.GetExemplars()), dp.GetFlags(), resourceVal, scopeVal)
			if !ok {
				res.Skipped.NonFinite.Add(1)
				continue
			}
			base[schema.MetricValue] = val
			res.Gauge = append(res.Gauge, base)
		}
	case *metricspb.Metric_Sum:
		for _, dp := range data.Sum.GetDataPoints() {
			val, ok := numberDataPointValue(dp)
			base := numberPointBase(name, desc, unit, dp.GetStartTimeUnixNano(), dp.GetTimeUnixNano(),
				AttributesToMap(dp.GetAttributes()), exemplarsValue(dp.GetExemplars()), dp.GetFlags(), resourceVal, scopeVal)
			if !ok {
				res.Skipped.NonFinite.Add(1)
				continue
			}
			base[schema.MetricValue] = val
			base[schema.AggregationTemporality] = rowvalue.NewInt64(int64(data.Sum.GetAggregationTemporality()))
			base[schema.IsMonotonic] = rowvalue.NewBool(data.Sum.GetIsMonotonic())
			res.Sum = append(res.Sum, base)
		}
	case *metricspb.Metric_Histogram:
		for _, dp := range data.Histogram.GetDataPoints() {
			base := numberPointBase(name, desc, unit, dp.GetStartTimeUnixNano(), dp.GetTimeUnixNano(),
				AttributesToMap(dp.GetAttributes()), exemplarsValue(dp.GetExemplars()), dp.GetFlags(), resourceVal, scopeVal)
			base[schema.HistogramCount] = rowvalue.NewInt64(int64(dp.GetCount()))
			base[schema.HistogramSum] = optionalFloat(dp.Sum)
			base[schema.HistogramMin] = optionalFloat(dp.Min)
			base[schema.HistogramMax] = optionalFloat(dp.Max)
			base[schema.HistogramBucketCounts] = int64List(dp.GetBucketCounts())
			base[schema.HistogramExplicitBounds] = float64List(dp.GetExplicitBounds())
			res.Histogram = append(res.Histogram, base)
		}
	case *metricspb.Metric_ExponentialHistogram:
		for _, dp := range data.ExponentialHistogram.GetDataPoints() {
			base := numberPointBase(name, desc, unit, dp.GetStartTimeUnixNano(), dp.GetTimeUnixNano(),
				AttributesToMap(dp.GetAttributes()), exemplarsValue(dp.GetExemplars()), dp.GetFlags(), resourceVal, scopeVal)
			base[schema.HistogramCount] = rowvalue.NewInt64(int64(dp.GetCount()))
			base[schema.HistogramSum] = optionalFloat(dp.Sum)
			base[schema.HistogramMin] = optionalFloat(dp.Min)
			base[schema.HistogramMax] = optionalFloat(dp.Max)
			base[schema.ExpHistogramScale] = rowvalue.NewInt64(int64(dp.GetScale()))
			base[schema.ExpHistogramZeroCount] = rowvalue.NewInt64(int64(dp.GetZeroCount()))
			base[schema.ExpHistogramPositive] = expBucketsValue(dp.GetPositive())
			base[schema.ExpHistogramNegative] = expBucketsValue(dp.GetNegative())
			res.ExpHistogram = append(res.ExpHistogram, base)
		}
	case *metricspb.Metric_Summary:
		res.Skipped.Summary.Add(uint64(len(data.Summary.GetDataPoints())))
	default:
		res.Skipped.Malformed.Add(1)
	}
}

func expBucketsValue(b *metricspb.ExponentialHistogramDataPoint_Buckets) rowvalue.Value {
	if b == nil {
		return rowvalue.Null
	}
	m := rowvalue.NewOrderedMap()
	m.Set(schema.ExpHistogramBucketOffset, rowvalue.NewInt64(int64(b.GetOffset())))
	m.Set(schema.ExpHistogramBucketCounts, int64List(b.GetBucketCounts()))
	return rowvalue.NewMap(m)
}

// numberDataPointValue coerces the as_double/as_int oneof to f64 (§4.B "Sum
// data point value"). ok is false when the value is absent or non-finite —
// the caller must count it as skipped.non_finite rather than emit the row.
func numberDataPointValue(dp *metricspb.NumberDataPoint) (rowvalue.Value, bool) {
	var f float64
	switch v := dp.GetValue().(type) {
	case *metricspb.NumberDataPoint_AsDouble:
		f = v.AsDouble
	case *metricspb.NumberDataPoint_AsInt:
		f = float64(v.AsInt)
	default:
		return rowvalue.Null, false
	}
	val := rowvalue.NewFloat64(f)
	if val.IsNull() {
		return rowvalue.Null, false
	}
	return val, true
}

// DecodeMetricsJSON parses a canonical OTLP-JSON metrics payload into the
// same MetricsResult shape DecodeMetricsProto produces.
func DecodeMetricsJSON(data []byte) (*MetricsResult, error) {
	top, err := parseJSONObject(data)
	if err != nil {
		return nil, newJSONError(err)
	}

	res := &MetricsResult{}
	for _, rmRaw := range jGetArr(top, "resourceMetrics") {
		rm, _ := rmRaw.(jsonObj)
		if rm == nil {
			continue
		}
		resourceVal := jResourceValue(rm)
		for _, smRaw := range jGetArr(rm, "scopeMetrics") {
			sm, _ := smRaw.(jsonObj)
			if sm == nil {
				continue
			}
			scopeVal := jScopeValue(sm)
			for _, metricRaw := range jGetArr(sm, "metrics") {
				metric, _ := metricRaw.(jsonObj)
				if metric == nil {
					continue
				}
				jDispatchMetric(metric, resourceVal, scopeVal, res)
			}
		}
	}
	return res, nil
}

func jNumberPointBase(metric, dp jsonObj, resourceVal, scopeVal rowvalue.Value) rowvalue.Row {
	start, _ := jGetUint64(dp, "startTimeUnixNano")
	t, _ := jGetUint64(dp, "timeUnixNano")
	flags, _ := jGetInt64(dp, "flags")
	return numberPointBase(jGetStr(metric, "name"), jGetStr(metric, "description"), jGetStr(metric, "unit"),
		start, t, jAttributes(jGetArr(dp, "attributes")), jExemplars(jGetArr(dp, "exemplars")), uint32(flags),
		resourceVal, scopeVal)
}

func jExemplars(arr jsonArr) rowvalue.Value {
	items := make([]rowvalue.Value, 0, len(arr))
	for _, raw := range arr {
		ex, _ := raw.(jsonObj)
		if ex == nil {
			continue
		}
		var val rowvalue.Value
		if f, ok := jGetFloat64(ex, "asDouble"); ok {
			val = rowvalue.NewFloat64(f)
		} else if iv, ok := jGetInt64(ex, "asInt"); ok {
			val = rowvalue.NewFloat64(float64(iv))
		} else {
			val = rowvalue.Null
		}
		t, _ := jGetUint64(ex, "timeUnixNano")
		m := rowvalue.NewOrderedMap()
		m.Set(schema.TimeUnixNano, timestampOrNull(t))
		m.Set(schema.MetricValue, val)
		m.Set(schema.TraceID, rowvalue.NewBytes(jHexID(ex, "traceId")))
		m.Set(schema.SpanID, rowvalue.NewBytes(jHexID(ex, "spanId")))
		items = append(items, rowvalue.NewMap(m))
	}
	return rowvalue.NewArray(items)
}

func jInt64ListField(o jsonObj, key string) rowvalue.Value {
	arr := jGetArr(o, key)
	items := make([]rowvalue.Value, 0, len(arr))
	for _, raw := range arr {
		switch v := raw.(type) {
		case string:
			n, ok := jGetInt64(map[string]interface{}{"v": v}, "v")
			if ok {
				items = append(items, rowvalue.NewInt64(n))
			}
		default:
			n, ok := jGetInt64(map[string]interface{}{"v": raw}, "v")
			if ok {
				items = append(items, rowvalue.NewInt64(n))
			}
		}
	}
	return rowvalue.NewArray(items)
}

func jFloat64ListField(o jsonObj, key string) rowvalue.Value {
	arr := jGetArr(o, key)
	items := make([]rowvalue.Value, 0, len(arr))
	for _, raw := range arr {
		f, ok := jGetFloat64(map[string]interface{}{"v": raw}, "v")
		if ok {
			items = append(items, rowvalue.NewFloat64(f))
		}
	}
	return rowvalue.NewArray(items)
}

func jOptionalFloat(o jsonObj, key string) rowvalue.Value {
	if o == nil {
		return rowvalue.Null
	}
	if _, present := o[key]; !present {
		return rowvalue.Null
	}
	f, ok := jGetFloat64(o, key)
	if !ok {
		return rowvalue.Null
	}
	return rowvalue.NewFloat64(f)
}

func jDispatchMetric(metric jsonObj, resourceVal, scopeVal rowvalue.Value, res *MetricsResult) {
	if gauge := jGetObj(metric, "gauge"); gauge != nil {
		for _, dpRaw := range jGetArr(gauge, "dataPoints") {
			dp, _ := dpRaw.(jsonObj)
			if dp == nil {
				continue
			}
			val, ok := jNumberDataPointValue(dp)
			base := jNumberPointBase(metric, dp, resourceVal, scopeVal)
			if !ok {
				res.Skipped.NonFinite.Add(1)
				continue
			}
			base[schema.MetricValue] = val
			res.Gauge = append(res.Gauge, base)
		}
		return
	}
	if sum := jGetObj(metric, "sum"); sum != nil {
		temporality, _ := jGetInt64(sum, "aggregationTemporality")
		monotonic := jGetBool(sum, "isMonotonic")
		for _, dpRaw := range jGetArr(sum, "dataPoints") {
			dp, _ := dpRaw.(jsonObj)
			if dp == nil {
				continue
			}
			val, ok := jNumberDataPointValue(dp)
			base := jNumberPointBase(metric, dp, resourceVal, scopeVal)
			if !ok {
				res.Skipped.NonFinite.Add(1)
				continue
			}
			base[schema.MetricValue] = val
			base[schema.AggregationTemporality] = rowvalue.NewInt64(temporality)
			base[schema.IsMonotonic] = rowvalue.NewBool(monotonic)
			res.Sum = append(res.Sum, base)
		}
		return
	}
	if hist := jGetObj(metric, "histogram"); hist != nil {
		for _, dpRaw := range jGetArr(hist, "dataPoints") {
			dp, _ := dpRaw.(jsonObj)
			if dp == nil {
				continue
			}
			base := jNumberPointBase(metric, dp, resourceVal, scopeVal)
			count, _ := jGetInt64(dp, "count")
			base[schema.HistogramCount] = rowvalue.NewInt64(count)
			base[schema.HistogramSum] = jOptionalFloat(dp, "sum")
			base[schema.HistogramMin] = jOptionalFloat(dp, "min")
			base[schema.HistogramMax] = jOptionalFloat(dp, "max")
			base[schema.HistogramBucketCounts] = jInt64ListField(dp, "bucketCounts")
			base[schema.HistogramExplicitBounds] = jFloat64ListField(dp, "explicitBounds")
			res.Histogram = append(res.Histogram, base)
		}
		return
	}
	if eh := jGetObj(metric, "exponentialHistogram"); eh != nil {
		for _, dpRaw := range jGetArr(eh, "dataPoints") {
			dp, _ := dpRaw.(jsonObj)
			if dp == nil {
				continue
			}
			base := jNumberPointBase(metric, dp, resourceVal, scopeVal)
			count, _ := jGetInt64(dp, "count")
			scale, _ := jGetInt64(dp, "scale")
			zeroCount, _ := jGetInt64(dp, "zeroCount")
			base[schema.HistogramCount] = rowvalue.NewInt64(count)
			base[schema.HistogramSum] = jOptionalFloat(dp, "sum")
			base[schema.HistogramMin] = jOptionalFloat(dp, "min")
			base[schema.HistogramMax] = jOptionalFloat(dp, "max")
			base[schema.ExpHistogramScale] = rowvalue.NewInt64(scale)
			base[schema.ExpHistogramZeroCount] = rowvalue.NewInt64(zeroCount)
			base[schema.ExpHistogramPositive] = jExpBuckets(jGetObj(dp, "positive"))
			base[schema.ExpHistogramNegative] = jExpBuckets(jGetObj(dp, "negative"))
			res.ExpHistogram = append(res.ExpHistogram, base)
		}
		return
	}
	if summary := jGetObj(metric, "summary"); summary != nil {
		res.Skipped.Summary.Add(uint64(len(jGetArr(summary, "dataPoints"))))
		return
	}
	res.Skipped.Malformed.Add(1)
}

func jExpBuckets(b jsonObj) rowvalue.Value {
	if b == nil {
		return rowvalue.Null
	}
	offset, _ := jGetInt64(b, "offset")
	m := rowvalue.NewOrderedMap()
	m.Set(schema.ExpHistogramBucketOffset, rowvalue.NewInt64(offset))
	m.Set(schema.ExpHistogramBucketCounts, jInt64ListField(b, "bucketCounts"))
	return rowvalue.NewMap(m)
}

func jNumberDataPointValue(dp jsonObj) (rowvalue.Value, bool) {
	var f float64
	var present bool
	if fv, ok := jGetFloat64(dp, "asDouble"); ok {
		f, present = fv, true
	} else if iv, ok := jGetInt64(dp, "asInt"); ok {
		f, present = float64(iv), true
	}
	if !present {
		return rowvalue.Null, false
	}
	val := rowvalue.NewFloat64(f)
	if val.IsNull() {
		return rowvalue.Null, false
	}
	return val, true
}
