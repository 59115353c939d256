package service

import (
	"fmt"
	"sync"
	"time"
)

// IngestionMetrics tracks statistics about one ingestion run
type IngestionMetrics struct {
	mu               sync.RWMutex
	StartTime        time.Time
	Duration         time.Duration
	TeamStats        int
	Lines            int
	Results          int
	ValidationErrors int
	Errors           int
}

// NewIngestionMetrics creates a new metrics tracker
func NewIngestionMetrics() *IngestionMetrics {
	return &IngestionMetrics{StartTime: time.Now()}
}

// Reset resets all counters
func (m *IngestionMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartTime = time.Now()
	m.Duration = 0
	m.TeamStats = 0
	m.Lines = 0
	m.Results = 0
	m.ValidationErrors = 0
	m.Errors = 0
}

// RecordTeamStats increments the persisted snapshot count
func (m *IngestionMetrics) RecordTeamStats(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TeamStats += n
}

// RecordLine increments the persisted line count
func (m *IngestionMetrics) RecordLine() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lines++
}

// RecordResult increments the persisted result count
func (m *IngestionMetrics) RecordResult() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Results++
}

// RecordValidationError increments the validation error count
func (m *IngestionMetrics) RecordValidationError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ValidationErrors++
}

// RecordError increments the system error count
func (m *IngestionMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

// String returns a formatted representation of the run
func (m *IngestionMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return fmt.Sprintf(
		"IngestionMetrics{TeamStats=%d, Lines=%d, Results=%d, ValidationErrors=%d, Errors=%d, Duration=%v}",
		m.TeamStats,
		m.Lines,
		m.Results,
		m.ValidationErrors,
		m.Errors,
		m.Duration,
	)
}
