package history

import (
	"fmt"
	"time"

	"crawshaw.io/sqlite"
)

// SQLiteStore is an implementation of Store that uses SQLite.
type SQLiteStore struct {
	conn   *sqlite.Conn
	dbPath string
}

// NewSQLiteStore creates a new SQLiteStore instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Initialize initializes the store with the given database path.
func (s *SQLiteStore) Initialize(dbPath string) error {
	s.dbPath = dbPath

	// Open the SQLite database
	conn, err := sqlite.OpenConn(dbPath, sqlite.SQLITE_OPEN_CREATE|sqlite.SQLITE_OPEN_READWRITE)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	s.conn = conn

	// Create the table if it doesn't exist
	err = s.createTable()
	if err != nil {
		// Close the connection on error
		s.conn.Close()
		return fmt.Errorf("failed to create table: %w", err)
	}

	return nil
}

// createTable creates the deploy_history table if it doesn't exist.
func (s *SQLiteStore) createTable() error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS deploy_history (
		id TEXT PRIMARY KEY,
		project TEXT NOT NULL,
		url TEXT NOT NULL,
		timestamp INTEGER NOT NULL
	);`

	stmt, err := s.conn.Prepare(createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare create table statement: %w", err)
	}
	defer stmt.Reset()

	_, err = stmt.Step()
	if err != nil {
		return fmt.Errorf("failed to execute create table statement: %w", err)
	}

	return nil
}

// Close closes the store and releases any resources.
func (s *SQLiteStore) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Record stores one deployment.
func (s *SQLiteStore) Record(dep Deployment) error {
	insertSQL := `
	INSERT OR REPLACE INTO deploy_history (id, project, url, timestamp)
	VALUES (?, ?, ?, ?);`

	stmt, err := s.conn.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Reset()

	// Bind parameters - indices in sqlite are 1-based
	stmt.BindText(1, dep.ID)
	stmt.BindText(2, dep.Project)
	stmt.BindText(3, dep.URL)
	stmt.BindInt64(4, dep.Timestamp.Unix())

	_, err = stmt.Step()
	if err != nil {
		return fmt.Errorf("failed to insert deployment record: %w", err)
	}

	return nil
}

// Recent returns up to limit deployments, newest first.
func (s *SQLiteStore) Recent(limit int) ([]Deployment, error) {
	if limit <= 0 {
		return nil, nil
	}

	selectSQL := `
	SELECT id, project, url, timestamp FROM deploy_history
	ORDER BY timestamp DESC LIMIT ?;`

	stmt, err := s.conn.Prepare(selectSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Reset()

	stmt.BindInt64(1, int64(limit))

	var deployments []Deployment
	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return nil, fmt.Errorf("failed to execute select statement: %w", err)
		}
		if !hasRow {
			break // No more rows
		}

		// Column indices are 0-based
		deployments = append(deployments, Deployment{
			ID:        stmt.ColumnText(0),
			Project:   stmt.ColumnText(1),
			URL:       stmt.ColumnText(2),
			Timestamp: time.Unix(stmt.ColumnInt64(3), 0),
		})
	}

	return deployments, nil
}

// Clear removes all recorded deployments.
func (s *SQLiteStore) Clear() (int, error) {
	countSQL := `SELECT COUNT(*) FROM deploy_history;`
	stmt, err := s.conn.Prepare(countSQL)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare count statement: %w", err)
	}

	hasRow, err := stmt.Step()
	if err != nil {
		stmt.Reset()
		return 0, fmt.Errorf("failed to count deployment records: %w", err)
	}
	count := 0
	if hasRow {
		count = int(stmt.ColumnInt64(0))
	}
	stmt.Reset()

	deleteSQL := `DELETE FROM deploy_history;`
	del, err := s.conn.Prepare(deleteSQL)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare delete statement: %w", err)
	}
	defer del.Reset()

	_, err = del.Step()
	if err != nil {
		return 0, fmt.Errorf("failed to clear deployment records: %w", err)
	}

	return count, nil
}
