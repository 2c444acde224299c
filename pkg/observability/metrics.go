package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricHashCalls    = "lookup3.hash.calls.total"
	metricHashBytes    = "lookup3.hash.bytes.total"
	metricHashDuration = "lookup3.hash.duration.seconds"
	metricBloomOps     = "lookup3.bloom.ops.total"
	metricErrorsTotal  = "lookup3.errors.total"

	attrStrategy = "strategy"
	attrVariant  = "variant"
	attrOp       = "op"
	attrOutcome  = "outcome"
)

// Hash variants recorded on the calls counter.
const (
	VariantSingle   = "single"
	VariantDual     = "dual"
	VariantWord     = "word"
	VariantDualWord = "dual_word"
)

// Bloom operations recorded on the ops counter.
const (
	BloomOpAdd   = "add"
	BloomOpQuery = "query"
)

// durationBucketBoundaries covers 100ns to 1s; single hashes of short keys
// sit at the low end and whole-file inputs at the high end.
var durationBucketBoundaries = []float64{1e-7, 1e-6, 1e-5, 1e-4, 1e-3, 0.01, 0.1, 1}

// HashMetrics holds the OTel instruments for hashing and filter operations.
type HashMetrics struct {
	hashCalls    metric.Int64Counter
	hashBytes    metric.Int64Counter
	hashDuration metric.Float64Histogram
	bloomOps     metric.Int64Counter
	errorsTotal  metric.Int64Counter
}

// NewHashMetrics creates the hashing instruments from the given meter.
func NewHashMetrics(mt metric.Meter) (*HashMetrics, error) {
	calls, err := mt.Int64Counter(metricHashCalls,
		metric.WithDescription("Total number of hash computations"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricHashCalls, err)
	}

	hashed, err := mt.Int64Counter(metricHashBytes,
		metric.WithDescription("Total number of bytes hashed"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricHashBytes, err)
	}

	duration, err := mt.Float64Histogram(metricHashDuration,
		metric.WithDescription("Hash computation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricHashDuration, err)
	}

	bloomOps, err := mt.Int64Counter(metricBloomOps,
		metric.WithDescription("Total number of approximate-set operations"),
		metric.WithUnit("{op}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricBloomOps, err)
	}

	errTotal, err := mt.Int64Counter(metricErrorsTotal,
		metric.WithDescription("Total number of failed operations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricErrorsTotal, err)
	}

	return &HashMetrics{
		hashCalls:    calls,
		hashBytes:    hashed,
		hashDuration: duration,
		bloomOps:     bloomOps,
		errorsTotal:  errTotal,
	}, nil
}

// RecordHash records one hash computation over size bytes.
func (hm *HashMetrics) RecordHash(ctx context.Context, strategy, variant string, size int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrStrategy, strategy),
		attribute.String(attrVariant, variant),
	)

	hm.hashCalls.Add(ctx, 1, attrs)
	hm.hashBytes.Add(ctx, int64(size), attrs)
	hm.hashDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordBloom records one filter operation and its membership outcome.
func (hm *HashMetrics) RecordBloom(ctx context.Context, op, outcome string) {
	hm.bloomOps.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrOp, op),
		attribute.String(attrOutcome, outcome),
	))
}

// RecordError records a failed operation.
func (hm *HashMetrics) RecordError(ctx context.Context, op string) {
	hm.errorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrOp, op)))
}
