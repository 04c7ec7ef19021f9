// Package runstore persists analysis run history across SQLite, MySQL,
// and PostgreSQL backends.
package runstore

import (
	"fmt"
	"time"

	"github.com/huangsam/sweeplens/schema"
)

// runsTable is the name of the table for recorded analysis runs.
const runsTable = "sweeplens_runs"

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.PostgreSQLBackend:
		return fmt.Sprintf("\"%s\"", name)
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite
		return fmt.Sprintf("\"%s\"", name)
	}
}

// formatTime converts a time.Time to the appropriate format for the backend.
// SQLite stores times as RFC 3339 strings, the others use native datetimes.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}
