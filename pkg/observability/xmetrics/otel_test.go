package xmetrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// newTestObserver 返回接入内存 reader / recorder 的 Observer。
func newTestObserver(t *testing.T, opts ...Option) (Observer, *tracetest.SpanRecorder, *sdkmetric.ManualReader) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	})

	obs, err := NewOTelObserver(append([]Option{WithTracerProvider(tp), WithMeterProvider(mp)}, opts...)...)
	require.NoError(t, err)
	return obs, recorder, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestOTelObserverSpan(t *testing.T) {
	obs, recorder, _ := newTestObserver(t)

	_, span := obs.Start(context.Background(), SpanOptions{
		Component: "xsock",
		Operation: "connect",
		Kind:      KindClient,
		Attrs:     []Attr{String("net.sock.addr", "127.0.0.1:80"), {Key: "", Value: 1}, {Key: "nil", Value: nil}},
	})
	span.End(Result{Err: errors.New("refused"), Attrs: []Attr{Int("net.sock.bytes", 0)}})

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	s := spans[0]
	assert.Equal(t, "connect", s.Name())
	assert.Equal(t, trace.SpanKindClient, s.SpanKind())
	assert.Equal(t, codes.Error, s.Status().Code)
	assert.Equal(t, "refused", s.Status().Description)
	assert.Contains(t, s.Attributes(), attribute.String("component", "xsock"))
	assert.Contains(t, s.Attributes(), attribute.String("net.sock.addr", "127.0.0.1:80"))
	assert.Contains(t, s.Attributes(), attribute.Int("net.sock.bytes", 0))
	assert.Len(t, s.Events(), 1, "error is recorded as event")
}

func TestOTelObserverMetrics(t *testing.T) {
	obs, _, reader := newTestObserver(t)

	for _, err := range []error{nil, nil, errors.New("boom")} {
		_, span := obs.Start(context.Background(), SpanOptions{Component: "xsock", Operation: "send"})
		span.End(Result{Err: err})
		span.End(Result{Err: err}) // 幂等
	}

	metrics := collect(t, reader)
	total, ok := metrics[metricOperationTotal]
	require.True(t, ok)
	sum, ok := total.Data.(metricdata.Sum[int64])
	require.True(t, ok)

	counts := map[string]int64{}
	for _, dp := range sum.DataPoints {
		status, _ := dp.Attributes.Value("status")
		op, _ := dp.Attributes.Value("operation")
		assert.Equal(t, "send", op.AsString())
		counts[status.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"ok": 2, "error": 1}, counts)

	_, ok = metrics[metricOperationDuration]
	assert.True(t, ok)
}

func TestOTelObserverDefaults(t *testing.T) {
	obs, recorder, _ := newTestObserver(t)

	//nolint:staticcheck // 验证 nil ctx 兜底
	ctx, span := obs.Start(nil, SpanOptions{})
	assert.NotNil(t, ctx)
	span.End(Result{Status: StatusError})

	s := recorder.Ended()[0]
	assert.Equal(t, unknownOperation, s.Name())
	assert.Equal(t, trace.SpanKindInternal, s.SpanKind())
	assert.Equal(t, "operation failed", s.Status().Description)
	assert.Contains(t, s.Attributes(), attribute.String("component", unknownComponent))
}

func TestNewOTelObserverOptions(t *testing.T) {
	_, err := NewOTelObserver(nil)
	assert.ErrorIs(t, err, ErrNilOption)

	for _, bounds := range [][]float64{{}, {0.1, 0.1}, {0.2, 0.1}} {
		_, err := NewOTelObserver(WithDurationBuckets(bounds...))
		assert.ErrorIs(t, err, ErrInvalidBuckets, "%v", bounds)
	}

	obs, err := NewOTelObserver(
		WithInstrumentationName(""),
		WithTracerProvider(nil),
		WithMeterProvider(nil),
		WithDurationBuckets(0.0001, 0.001, 0.01),
	)
	require.NoError(t, err)
	assert.NotNil(t, obs)
}

func TestToKeyValue(t *testing.T) {
	tests := []struct {
		in   Attr
		want attribute.KeyValue
	}{
		{Bool("b", true), attribute.Bool("b", true)},
		{Int64("i", 7), attribute.Int64("i", 7)},
		{Attr{Key: "p", Value: uint16(8080)}, attribute.Int("p", 8080)},
		{Attr{Key: "f", Value: 1.5}, attribute.Float64("f", 1.5)},
		{Duration("d", time.Millisecond), attribute.Int64("d", 1_000_000)},
		{Attr{Key: "s", Value: KindServer}, attribute.String("s", "Server")},
		{Attr{Key: "x", Value: []int{1}}, attribute.String("x", "[1]")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toKeyValue(tt.in))
	}
}

var errMeterRefused = errors.New("meter refused")

// refusingMeterProvider 在创建名为 refuse 的指标时返回错误。
type refusingMeterProvider struct {
	noop.MeterProvider
	refuse string
}

func (p refusingMeterProvider) Meter(string, ...metric.MeterOption) metric.Meter {
	return refusingMeter{refuse: p.refuse}
}

type refusingMeter struct {
	noop.Meter
	refuse string
}

func (m refusingMeter) Int64Counter(name string, opts ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	if name == m.refuse {
		return nil, errMeterRefused
	}
	return m.Meter.Int64Counter(name, opts...)
}

func (m refusingMeter) Float64Histogram(name string, opts ...metric.Float64HistogramOption) (metric.Float64Histogram, error) {
	if name == m.refuse {
		return nil, errMeterRefused
	}
	return m.Meter.Float64Histogram(name, opts...)
}

func TestNewOTelObserverInstrumentFailure(t *testing.T) {
	for _, name := range []string{metricOperationTotal, metricOperationDuration} {
		t.Run(name, func(t *testing.T) {
			obs, err := NewOTelObserver(WithMeterProvider(refusingMeterProvider{refuse: name}))
			assert.Nil(t, obs)
			assert.ErrorIs(t, err, ErrCreateInstrument)
			assert.ErrorIs(t, err, errMeterRefused)
			assert.Contains(t, err.Error(), name)
		})
	}
}
