package services

import (
	"sync"
	"time"
)

// stubMetrics is a test double for MetricsRecorderInterface that counts
// calls. The real Prometheus recorder registers collectors globally, so
// tests use this stub instead.
type stubMetrics struct {
	mu                sync.Mutex
	mutations         map[string]int
	exports           map[string]int
	authEvents        map[string]int
	uploads           map[string]int
	dashboardRequests int
}

func newStubMetrics() *stubMetrics {
	return &stubMetrics{
		mutations:  make(map[string]int),
		exports:    make(map[string]int),
		authEvents: make(map[string]int),
		uploads:    make(map[string]int),
	}
}

func (m *stubMetrics) RecordTransactionMutation(operation, transactionType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutations[operation+"/"+transactionType]++
}

func (m *stubMetrics) RecordDashboardRequest(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dashboardRequests++
}

func (m *stubMetrics) RecordExport(format, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exports[format+"/"+status]++
}

func (m *stubMetrics) RecordAuthEvent(event, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authEvents[event+"/"+status]++
}

func (m *stubMetrics) RecordUploadStored(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads[kind]++
}

func (m *stubMetrics) exportCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exports[key]
}

func (m *stubMetrics) authEventCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authEvents[key]
}
