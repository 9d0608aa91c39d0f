package rexfs

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting storage metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see package prometheus for a ready-made collector).
type MetricsCollector interface {
	// RecordOpen is called after each Open.
	// duration is the time taken, err is nil if successful.
	RecordOpen(duration time.Duration, err error)

	// RecordCreate is called after each Create.
	RecordCreate(duration time.Duration, err error)

	// RecordRead is called after each Read on a handle with the bytes transferred.
	RecordRead(n int, err error)

	// RecordWrite is called after each Write on a handle with the bytes transferred.
	RecordWrite(n int, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordOpen(time.Duration, error)   {}
func (NoopMetricsCollector) RecordCreate(time.Duration, error) {}
func (NoopMetricsCollector) RecordRead(int, error)             {}
func (NoopMetricsCollector) RecordWrite(int, error)            {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for tests and debugging without external dependencies.
type BasicMetricsCollector struct {
	OpenCount        atomic.Int64
	OpenErrors       atomic.Int64
	OpenTotalNanos   atomic.Int64
	CreateCount      atomic.Int64
	CreateErrors     atomic.Int64
	CreateTotalNanos atomic.Int64
	ReadCalls        atomic.Int64
	ReadBytes        atomic.Int64
	ReadErrors       atomic.Int64
	WriteCalls       atomic.Int64
	WriteBytes       atomic.Int64
	WriteErrors      atomic.Int64
}

// RecordOpen implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOpen(duration time.Duration, err error) {
	b.OpenCount.Add(1)
	b.OpenTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.OpenErrors.Add(1)
	}
}

// RecordCreate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCreate(duration time.Duration, err error) {
	b.CreateCount.Add(1)
	b.CreateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CreateErrors.Add(1)
	}
}

// RecordRead implements MetricsCollector.
// io.EOF is not counted as an error.
func (b *BasicMetricsCollector) RecordRead(n int, err error) {
	b.ReadCalls.Add(1)
	b.ReadBytes.Add(int64(n))
	if err != nil && !isEOF(err) {
		b.ReadErrors.Add(1)
	}
}

// RecordWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWrite(n int, err error) {
	b.WriteCalls.Add(1)
	b.WriteBytes.Add(int64(n))
	if err != nil {
		b.WriteErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		OpenCount:      b.OpenCount.Load(),
		OpenErrors:     b.OpenErrors.Load(),
		OpenAvgNanos:   avg(b.OpenTotalNanos.Load(), b.OpenCount.Load()),
		CreateCount:    b.CreateCount.Load(),
		CreateErrors:   b.CreateErrors.Load(),
		CreateAvgNanos: avg(b.CreateTotalNanos.Load(), b.CreateCount.Load()),
		ReadCalls:      b.ReadCalls.Load(),
		ReadBytes:      b.ReadBytes.Load(),
		ReadErrors:     b.ReadErrors.Load(),
		WriteCalls:     b.WriteCalls.Load(),
		WriteBytes:     b.WriteBytes.Load(),
		WriteErrors:    b.WriteErrors.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	OpenCount      int64
	OpenErrors     int64
	OpenAvgNanos   int64
	CreateCount    int64
	CreateErrors   int64
	CreateAvgNanos int64
	ReadCalls      int64
	ReadBytes      int64
	ReadErrors     int64
	WriteCalls     int64
	WriteBytes     int64
	WriteErrors    int64
}
