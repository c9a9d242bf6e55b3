package internal

import (
	"sort"
	"sync"
	"time"
)

type MetricsCollector struct {
	logger *Logger

	requestCount     map[string]int64
	requestDuration  map[string][]int64
	requestErrors    map[string]int64
	upstreamCount    map[string]int64
	upstreamDuration map[string][]int64
	upstreamErrors   map[string]int64

	mu sync.RWMutex
}

func NewMetricsCollector(logger *Logger) *MetricsCollector {
	mc := &MetricsCollector{
		logger:           logger,
		requestCount:     make(map[string]int64),
		requestDuration:  make(map[string][]int64),
		requestErrors:    make(map[string]int64),
		upstreamCount:    make(map[string]int64),
		upstreamDuration: make(map[string][]int64),
		upstreamErrors:   make(map[string]int64),
	}

	go mc.startMetricsReporter()
	return mc
}

func (mc *MetricsCollector) RecordRequest(endpoint string, duration time.Duration, statusCode int) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.requestCount[endpoint]++
	mc.requestDuration[endpoint] = append(mc.requestDuration[endpoint], duration.Milliseconds())

	if statusCode >= 400 {
		mc.requestErrors[endpoint]++
	}
}

// RecordUpstream tracks one Riot API call. A zero status means the request
// never produced a response (transport failure).
func (mc *MetricsCollector) RecordUpstream(endpoint string, duration time.Duration, statusCode int) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.upstreamCount[endpoint]++
	mc.upstreamDuration[endpoint] = append(mc.upstreamDuration[endpoint], duration.Milliseconds())

	if statusCode == 0 || statusCode >= 400 {
		mc.upstreamErrors[endpoint]++
	}
}

func (mc *MetricsCollector) startMetricsReporter() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		mc.reportMetrics()
	}
}

func (mc *MetricsCollector) reportMetrics() {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	mc.logger.Info("metrics_report").
		Component("metrics").
		Operation("report").
		Meta("total_requests", mc.sumMapValues(mc.requestCount)).
		Meta("total_request_errors", mc.sumMapValues(mc.requestErrors)).
		Meta("total_upstream_calls", mc.sumMapValues(mc.upstreamCount)).
		Meta("total_upstream_errors", mc.sumMapValues(mc.upstreamErrors)).
		Log()

	mc.reportEndpointPerformance()
}

func (mc *MetricsCollector) reportEndpointPerformance() {
	for endpoint, durations := range mc.upstreamDuration {
		if len(durations) == 0 {
			continue
		}

		mc.logger.Info("upstream_performance").
			Component("metrics").
			Operation("performance_report").
			Meta("endpoint", endpoint).
			Meta("call_count", mc.upstreamCount[endpoint]).
			Meta("avg_duration_ms", mc.calculateAverage(durations)).
			Meta("p95_duration_ms", mc.calculatePercentile(durations, 0.95)).
			Meta("error_count", mc.upstreamErrors[endpoint]).
			Log()
	}
}

func (mc *MetricsCollector) sumMapValues(m map[string]int64) int64 {
	sum := int64(0)
	for _, count := range m {
		sum += count
	}
	return sum
}

func (mc *MetricsCollector) calculateAverage(values []int64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := int64(0)
	for _, v := range values {
		sum += v
	}

	return float64(sum) / float64(len(values))
}

func (mc *MetricsCollector) calculatePercentile(values []int64, percentile float64) int64 {
	if len(values) == 0 {
		return 0
	}

	sortedValues := make([]int64, len(values))
	copy(sortedValues, values)
	sort.Slice(sortedValues, func(i, j int) bool {
		return sortedValues[i] < sortedValues[j]
	})

	index := int(percentile * float64(len(sortedValues)-1))
	return sortedValues[index]
}

func (mc *MetricsCollector) GetMetrics() map[string]interface{} {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	return map[string]interface{}{
		"requests": map[string]interface{}{
			"counts": mc.requestCount,
			"errors": mc.requestErrors,
		},
		"upstream": map[string]interface{}{
			"counts": mc.upstreamCount,
			"errors": mc.upstreamErrors,
		},
	}
}
