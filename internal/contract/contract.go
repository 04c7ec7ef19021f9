// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/sweeplens/schema"
)

// TableLoader defines how a sweep table is materialized from a data source.
// This allows the core analysis logic to be tested without real files.
type TableLoader interface {
	// Load reads the trial table at the given path.
	Load(ctx context.Context, path string) (*schema.Table, error)
}

// HistoryManager defines the interface for accessing the history store.
// This allows the persistence layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for tracking analysis runs.
type HistoryStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, csvPath string) (int64, error)

	// EndRun updates the run with completion data and issue counts
	EndRun(runID int64, endTime time.Time, status string, numTrials int, summary *schema.StructuredSummary) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns retrieves every recorded run in insertion order
	GetAllRuns() ([]schema.RunRecord, error)

	// Close closes the underlying connection
	Close() error
}
