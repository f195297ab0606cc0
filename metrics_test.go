package ciudadauth

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMetricsDisabledRecordsNothing(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})

	m.Inc(MetricLoginSuccess)
	m.Observe(MetricRefreshLatency, 42*time.Millisecond)

	if v := m.Value(MetricLoginSuccess); v != 0 {
		t.Fatalf("disabled metrics recorded a counter: %d", v)
	}

	s := m.Snapshot()
	if len(s.Counters) != 0 || len(s.Histograms) != 0 {
		t.Fatalf("disabled snapshot must be empty: %+v", s)
	}
}

func TestMetricsIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricRefreshFailure)

	if v := m.Value(MetricLoginSuccess); v != 2 {
		t.Fatalf("expected 2, got %d", v)
	}
	if v := m.Value(MetricRefreshFailure); v != 1 {
		t.Fatalf("expected 1, got %d", v)
	}
	if v := m.Value(MetricLogout); v != 0 {
		t.Fatalf("expected 0, got %d", v)
	}
}

func TestMetricsOutOfRangeIDIgnored(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(metricIDCount)
	m.Inc(metricIDCount + 100)
	if v := m.Value(metricIDCount); v != 0 {
		t.Fatalf("out-of-range id must be ignored, got %d", v)
	}
}

func TestMetricsConcurrentIncrements(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const goroutines = 8
	const perGoroutine = 1000

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				m.Inc(MetricRefreshSuccess)
			}
		}()
	}
	wg.Wait()

	if v := m.Value(MetricRefreshSuccess); v != goroutines*perGoroutine {
		t.Fatalf("expected %d, got %d", goroutines*perGoroutine, v)
	}
}

func TestMetricsLatencyHistogramBuckets(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})

	cases := []struct {
		d      time.Duration
		bucket int
	}{
		{3 * time.Millisecond, 0},
		{8 * time.Millisecond, 1},
		{20 * time.Millisecond, 2},
		{40 * time.Millisecond, 3},
		{90 * time.Millisecond, 4},
		{200 * time.Millisecond, 5},
		{400 * time.Millisecond, 6},
		{2 * time.Second, 7},
	}
	for _, tc := range cases {
		m.Observe(MetricRefreshLatency, tc.d)
	}

	s := m.Snapshot()
	buckets, ok := s.Histograms[MetricRefreshLatency]
	if !ok {
		t.Fatal("expected refresh latency histogram in snapshot")
	}
	for _, tc := range cases {
		if buckets[tc.bucket] != 1 {
			t.Fatalf("duration %v expected in bucket %d, buckets=%v", tc.d, tc.bucket, buckets)
		}
	}
}

func TestMetricsLatencyDisabledByDefault(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Observe(MetricRefreshLatency, 42*time.Millisecond)

	s := m.Snapshot()
	if len(s.Histograms) != 0 {
		t.Fatalf("latency histogram must be off by default: %+v", s.Histograms)
	}
}

func TestMetricsObserveIgnoresNonLatencyIDs(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})

	m.Observe(MetricLoginSuccess, 10*time.Millisecond)

	s := m.Snapshot()
	if _, ok := s.Histograms[MetricLoginSuccess]; ok {
		t.Fatal("only the refresh latency histogram is recorded")
	}
}

func TestStoreCountsOperationOutcomes(t *testing.T) {
	gw := &mockGateway{}
	store := newTestStore(t, gw, nil)

	authenticate(t, store, gw, "acc-1", "refresh-1")
	_ = store.SendOTP(context.Background(), "+639171234567")
	_ = store.Logout(context.Background())

	counters := store.MetricsSnapshot().Counters
	if counters[MetricLoginSuccess] != 1 {
		t.Fatalf("expected 1 login success, got %d", counters[MetricLoginSuccess])
	}
	if counters[MetricOTPSendSuccess] != 1 {
		t.Fatalf("expected 1 otp send success, got %d", counters[MetricOTPSendSuccess])
	}
	if counters[MetricLogout] != 1 {
		t.Fatalf("expected 1 logout, got %d", counters[MetricLogout])
	}
}
