package metrics

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
)

// ContextKeyErrorCode is where the error handler leaves the code it rendered.
const ContextKeyErrorCode = "error_code"

// Metrics holds process-local request counters.
// Thread-safe via atomics and mutex.
type Metrics struct {
	totalRequests  int64
	activeRequests int64
	totalErrors    int64
	totalLatencyMs int64
	maxLatencyMs   int64
	startTime      time.Time
	now            func() time.Time

	mu                sync.Mutex
	endpointCounts    map[string]int64
	endpointLatencies map[string]int64 // total ms per endpoint
	statusCodes       map[int]int64
	errorCodes        map[string]int64
}

func New() *Metrics {
	m := &Metrics{now: time.Now}
	m.Reset()
	return m
}

// Middleware tracks request count, latency, in-flight requests and error
// codes. Errors are rendered here so the final status is known.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			atomic.AddInt64(&m.activeRequests, 1)
			defer atomic.AddInt64(&m.activeRequests, -1)
			start := m.now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			m.record(c, m.now().Sub(start).Milliseconds())
			return nil
		}
	}
}

func (m *Metrics) record(c echo.Context, latencyMs int64) {
	atomic.AddInt64(&m.totalRequests, 1)
	atomic.AddInt64(&m.totalLatencyMs, latencyMs)

	// Update max latency (lock-free CAS loop)
	for {
		current := atomic.LoadInt64(&m.maxLatencyMs)
		if latencyMs <= current {
			break
		}
		if atomic.CompareAndSwapInt64(&m.maxLatencyMs, current, latencyMs) {
			break
		}
	}

	statusCode := c.Response().Status
	path := c.Path()
	if path == "" {
		path = c.Request().URL.Path
	}
	endpoint := fmt.Sprintf("%s %s", c.Request().Method, path)
	errorCode, _ := c.Get(ContextKeyErrorCode).(string)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.endpointCounts[endpoint]++
	m.endpointLatencies[endpoint] += latencyMs
	m.statusCodes[statusCode]++
	if statusCode >= 400 {
		atomic.AddInt64(&m.totalErrors, 1)
	}
	if errorCode != "" {
		m.errorCodes[errorCode]++
	}
}

// Snapshot is a point-in-time copy of the counters
type Snapshot struct {
	TotalRequests  int64            `json:"totalRequests"`
	ActiveRequests int64            `json:"activeRequests"`
	TotalErrors    int64            `json:"totalErrors"`
	ErrorRate      float64          `json:"errorRatePct"`
	AvgLatencyMs   float64          `json:"avgLatencyMs"`
	MaxLatencyMs   int64            `json:"maxLatencyMs"`
	UptimeSeconds  float64          `json:"uptimeSeconds"`
	EndpointCounts map[string]int64 `json:"endpointCounts"`
	EndpointAvgMs  map[string]int64 `json:"endpointAvgLatencyMs"`
	StatusCodes    map[int]int64    `json:"statusCodes"`
	ErrorCodes     map[string]int64 `json:"errorCodes"`
}

func (m *Metrics) Snapshot() Snapshot {
	total := atomic.LoadInt64(&m.totalRequests)
	errs := atomic.LoadInt64(&m.totalErrors)
	totalLatency := atomic.LoadInt64(&m.totalLatencyMs)

	var avgLatency, errorRate float64
	if total > 0 {
		avgLatency = float64(totalLatency) / float64(total)
		errorRate = float64(errs) / float64(total) * 100
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	endpointCounts := make(map[string]int64, len(m.endpointCounts))
	endpointAvg := make(map[string]int64, len(m.endpointLatencies))
	for k, v := range m.endpointCounts {
		endpointCounts[k] = v
		if v > 0 {
			endpointAvg[k] = m.endpointLatencies[k] / v
		}
	}
	statusCodes := make(map[int]int64, len(m.statusCodes))
	for k, v := range m.statusCodes {
		statusCodes[k] = v
	}
	errorCodes := make(map[string]int64, len(m.errorCodes))
	for k, v := range m.errorCodes {
		errorCodes[k] = v
	}

	return Snapshot{
		TotalRequests:  total,
		ActiveRequests: atomic.LoadInt64(&m.activeRequests),
		TotalErrors:    errs,
		ErrorRate:      errorRate,
		AvgLatencyMs:   avgLatency,
		MaxLatencyMs:   atomic.LoadInt64(&m.maxLatencyMs),
		UptimeSeconds:  m.now().Sub(m.startTime).Seconds(),
		EndpointCounts: endpointCounts,
		EndpointAvgMs:  endpointAvg,
		StatusCodes:    statusCodes,
		ErrorCodes:     errorCodes,
	}
}

// Reset zeroes every counter except in-flight requests.
func (m *Metrics) Reset() {
	atomic.StoreInt64(&m.totalRequests, 0)
	atomic.StoreInt64(&m.totalErrors, 0)
	atomic.StoreInt64(&m.totalLatencyMs, 0)
	atomic.StoreInt64(&m.maxLatencyMs, 0)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.endpointCounts = make(map[string]int64)
	m.endpointLatencies = make(map[string]int64)
	m.statusCodes = make(map[int]int64)
	m.errorCodes = make(map[string]int64)
	m.startTime = m.now()
}
