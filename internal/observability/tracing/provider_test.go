package tracing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func samplingParams(method, path string) sdktrace.SamplingParameters {
	return sdktrace.SamplingParameters{
		TraceID: trace.TraceID{0x01},
		Name:    "HTTP " + method,
		Kind:    trace.SpanKindServer,
		Attributes: []attribute.KeyValue{
			attribute.String(attrHTTPMethod, method),
			attribute.String(attrHTTPPath, path),
		},
	}
}

func TestRouteSamplerUsesDrawRatioForDraws(t *testing.T) {
	sampler := newRouteSampler(0, 1)

	assert.Equal(t, sdktrace.RecordAndSample, sampler.ShouldSample(samplingParams("POST", "/api/draw")).Decision)
	assert.Equal(t, sdktrace.RecordAndSample, sampler.ShouldSample(samplingParams("POST", "/api/draw/")).Decision)
	assert.Equal(t, sdktrace.Drop, sampler.ShouldSample(samplingParams("GET", "/api/draw/records")).Decision)
	assert.Equal(t, sdktrace.Drop, sampler.ShouldSample(samplingParams("GET", "/api/foods")).Decision)
}

func TestRouteSamplerBaseRatioStillApplies(t *testing.T) {
	sampler := newRouteSampler(1, 0)

	assert.Equal(t, sdktrace.Drop, sampler.ShouldSample(samplingParams("POST", "/api/draw")).Decision)
	assert.Equal(t, sdktrace.RecordAndSample, sampler.ShouldSample(samplingParams("GET", "/health")).Decision)
	assert.Contains(t, sampler.Description(), "RouteSampler")
}
