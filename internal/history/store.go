package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"aiintegration/internal/config"
	"aiintegration/internal/services"
)

// ErrDisabled reports that history is turned off in configuration.
var ErrDisabled = errors.New("run history disabled")

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run kinds.
const (
	KindDetect = "detect"
	KindRoute  = "route"
)

// Run is one persisted invocation.
type Run struct {
	ID            string          `json:"id"`
	Kind          string          `json:"kind"`
	Model         string          `json:"model"`
	Source        string          `json:"source"`
	CreatedAt     time.Time       `json:"createdAt"`
	SchemaVersion int             `json:"schemaVersion"`
	PointCount    int             `json:"pointCount"`
	OutlierCount  int             `json:"outlierCount"`
	Result        json.RawMessage `json:"result,omitempty"`
}

// Entry is the data needed to record a run. Result is marshaled to JSON.
type Entry struct {
	Kind         string
	Model        string
	Source       string
	PointCount   int
	OutlierCount int
	Result       any
}

// Store manages the run journal backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open initializes or connects to the history database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil || strings.TrimSpace(cfg.History.Path) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "history", "history path not configured", nil)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.History.Path
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, now: time.Now}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts a run and returns it with its generated identifier.
func (s *Store) Record(ctx context.Context, entry Entry) (*Run, error) {
	switch entry.Kind {
	case KindDetect, KindRoute:
	default:
		return nil, services.Wrap(services.ErrValidation, "history", fmt.Sprintf("unknown run kind %q", entry.Kind), nil)
	}
	payload, err := json.Marshal(entry.Result)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	run := &Run{
		ID:            uuid.NewString(),
		Kind:          entry.Kind,
		Model:         entry.Model,
		Source:        entry.Source,
		CreatedAt:     s.now().UTC(),
		SchemaVersion: services.SchemaVersion,
		PointCount:    entry.PointCount,
		OutlierCount:  entry.OutlierCount,
		Result:        payload,
	}
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO runs (
            id, kind, model, source, created_at,
            schema_version, point_count, outlier_count, result_json
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Kind,
		run.Model,
		run.Source,
		run.CreatedAt.Format(timeLayout),
		run.SchemaVersion,
		run.PointCount,
		run.OutlierCount,
		string(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// List returns the most recent runs first, without their result payloads.
// A limit <= 0 returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, kind, model, source, created_at, schema_version, point_count, outlier_count
        FROM runs ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var created string
		if err := rows.Scan(&run.ID, &run.Kind, &run.Model, &run.Source, &created, &run.SchemaVersion, &run.PointCount, &run.OutlierCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.CreatedAt = parseTime(created)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Get fetches a run by identifier, including its result payload. A missing
// run returns nil without error. A unique identifier prefix is accepted.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, services.Wrap(services.ErrValidation, "history", "run id required", nil)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, model, source, created_at, schema_version, point_count, outlier_count, result_json
        FROM runs WHERE id = ? OR id LIKE ? ESCAPE '\' ORDER BY id LIMIT 2`,
		id, escapeLike(id)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		var run Run
		var created, payload string
		if err := rows.Scan(&run.ID, &run.Kind, &run.Model, &run.Source, &created, &run.SchemaVersion, &run.PointCount, &run.OutlierCount, &payload); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.CreatedAt = parseTime(created)
		run.Result = json.RawMessage(payload)
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	for i := range matches {
		if matches[i].ID == id {
			return &matches[i], nil
		}
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return &matches[0], nil
	default:
		return nil, services.Wrap(services.ErrValidation, "history", fmt.Sprintf("run id prefix %q is ambiguous", id), nil)
	}
}

func parseTime(value string) time.Time {
	ts, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// escapeLike makes value match literally in a LIKE pattern using ESCAPE '\'.
func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(value)
}
