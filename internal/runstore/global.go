package runstore

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/sweeplens/internal/contract"
	"github.com/huangsam/sweeplens/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &HistoryStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// HistoryStoreManager coordinates access to the shared history store.
type HistoryStoreManager struct {
	sync.Mutex
	history contract.HistoryStore
}

var _ contract.HistoryManager = &HistoryStoreManager{} // Compile-time check

// GetHistoryStore returns the configured history store, or nil when
// tracking is disabled.
func (m *HistoryStoreManager) GetHistoryStore() contract.HistoryStore {
	m.Lock()
	defer m.Unlock()
	return m.history
}

// InitStores initializes the global history manager. backend can be empty
// to skip initialization entirely.
func InitStores(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		if backend == "" {
			return
		}

		store, err := NewHistoryStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize run history: %w", err)
			return
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.history = store
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.history != nil {
			_ = Manager.history.Close()
		}
	})
}

// ClearHistory clears the run history for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the runs table.
// For NoneBackend, it does nothing.
func ClearHistory(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return clearSQLTable("mysql", connStr, runsTable)

	case schema.PostgreSQLBackend:
		return clearSQLTable("pgx", connStr, runsTable)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported history backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(driverName, connStr, tableName string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	return nil
}
