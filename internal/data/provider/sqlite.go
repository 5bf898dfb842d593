package provider

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // sqlite driver

	"github.com/colonyops/reportbox/internal/core/report"
)

const busyTimeout = 5000

// DefaultQuery selects records from a table named reports, keyed by rowid.
const DefaultQuery = `SELECT CAST(rowid AS TEXT), name, content FROM reports ORDER BY rowid`

// SQLite reads records from a SQLite database opened read-only. The query
// must return three columns: key, name and content. A NULL key means the
// record has no provider identity.
type SQLite struct {
	path  string
	query string
}

// NewSQLite creates a SQLite provider. An empty query uses DefaultQuery.
func NewSQLite(path, query string) *SQLite {
	if query == "" {
		query = DefaultQuery
	}
	return &SQLite{path: path, query: query}
}

// Name implements Provider.
func (s *SQLite) Name() string { return "sqlite:" + s.path }

// Reports implements Provider.
func (s *SQLite) Reports(ctx context.Context) ([]report.Record, error) {
	db, err := sql.Open("sqlite", s.dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, s.query)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	if len(cols) != 3 {
		return nil, fmt.Errorf("query must return 3 columns (key, name, content), got %d", len(cols))
	}

	records := make([]report.Record, 0)
	for rows.Next() {
		var (
			key     sql.NullString
			name    sql.NullString
			content sql.NullString
		)
		if err := rows.Scan(&key, &name, &content); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		records = append(records, report.Record{
			Key:     key.String,
			Name:    name.String,
			Content: content.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}

	return records, nil
}

// WatchTarget implements Watchable. The WAL sidecar is included so commits
// in WAL mode are noticed.
func (s *SQLite) WatchTarget() (WatchTarget, error) {
	base := fileTarget(s.path)
	wal := fileTarget(s.path + "-wal")
	return WatchTarget{
		Dirs: base.Dirs,
		Match: func(p string) bool {
			return base.Match(p) || wal.Match(p)
		},
	}, nil
}

func (s *SQLite) dsn() string {
	return fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(%d)", s.path, busyTimeout)
}
