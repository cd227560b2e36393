package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/pedro-r-marques/devops-tutor/pkg/assistant"
)

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	uuid TEXT PRIMARY KEY,
	workflow TEXT NOT NULL,
	success INTEGER NOT NULL,
	created INTEGER NOT NULL,
	data BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS analyses_created ON analyses (created);
`

type SqliteStore struct {
	Filename string
	DSN      string
	db       *sql.DB
	sysClock func() time.Time
}

// NewSqliteStore opens (and creates when needed) the analysis database.
func NewSqliteStore(filename string) (*SqliteStore, error) {
	dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", filename)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", filename, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating schema in %s: %w", filename, err)
	}
	return &SqliteStore{
		Filename: filename,
		DSN:      dsn,
		db:       db,
		sysClock: time.Now,
	}, nil
}

func (s *SqliteStore) Close() error {
	return s.db.Close()
}

func (s *SqliteStore) Save(analysis *assistant.Analysis) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("encode analysis %v: %w", analysis.ID, err)
	}
	var name string
	var success int
	if analysis.Workflow != nil {
		name = analysis.Workflow.Name
		if analysis.Workflow.Success {
			success = 1
		}
	}
	created := analysis.Created
	if created.IsZero() {
		created = s.sysClock()
	}
	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO analyses (uuid, workflow, success, created, data) VALUES (?, ?, ?, ?, ?)",
		analysis.ID.String(), name, success, created.UnixNano(), data)
	if err != nil {
		return fmt.Errorf("save analysis %v: %w", analysis.ID, err)
	}
	return nil
}

func decodeAnalysis(data []byte) (*assistant.Analysis, error) {
	var analysis assistant.Analysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (s *SqliteStore) Get(id uuid.UUID) (*assistant.Analysis, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM analyses WHERE uuid = ?", id.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, assistant.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeAnalysis(data)
}

func (s *SqliteStore) List(limit int) ([]*assistant.Analysis, error) {
	return s.query("SELECT data FROM analyses ORDER BY created DESC LIMIT ?", limit)
}

// ListByWorkflow returns the analyses of workflows with the given name,
// most recent first.
func (s *SqliteStore) ListByWorkflow(name string, limit int) ([]*assistant.Analysis, error) {
	return s.query("SELECT data FROM analyses WHERE workflow = ? ORDER BY created DESC LIMIT ?", name, limit)
}

func (s *SqliteStore) query(stmt string, args ...interface{}) ([]*assistant.Analysis, error) {
	rows, err := s.db.Query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*assistant.Analysis, 0)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		analysis, err := decodeAnalysis(data)
		if err != nil {
			log.Error().Err(err).Msg("decode stored analysis")
			continue
		}
		result = append(result, analysis)
	}
	return result, rows.Err()
}

// Prune deletes analyses older than maxAge and returns how many were
// removed.
func (s *SqliteStore) Prune(maxAge time.Duration) (int64, error) {
	cutoff := s.sysClock().Add(-maxAge)
	r, err := s.db.Exec("DELETE FROM analyses WHERE created < ?", cutoff.UnixNano())
	if err != nil {
		return 0, err
	}
	return r.RowsAffected()
}

var _ assistant.AnalysisStore = (*SqliteStore)(nil)
