/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Persists teams, their members and tasks, the calculation history and the
  versioned envelopes behind the storage endpoints. In production, the same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

INTERFACES IMPLEMENTED:
  team.Store: Teams, members, tasks
  store.KV:   Versioned envelopes (via Store.Envelopes)

OWNERSHIP:
  members and tasks reference teams with ON DELETE CASCADE, so deleting a
  team removes everything it owns. Creating a task for a missing team fails
  with team.ErrTeamNotFound.

KEY TABLES:
  teams:        Team records
  members:      Team members, compensation stored as JSON, ordered by position
  tasks:        Recurring tasks, frequency stored as JSON
  calculations: Append-only history of calculation inputs and results
  envelopes:    Key-value storage of versioned JSON envelopes

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/wage.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - team/store.go: team.Store contract
  - store/envelope.go: Envelope and KV contract
  - store/redis: Redis-backed KV
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/wage-engine/store"
	"github.com/warp/wage-engine/team"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ team.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A ":memory:" database exists per connection.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Teams
	CREATE TABLE IF NOT EXISTS teams (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Members (owned by a team)
	CREATE TABLE IF NOT EXISTS members (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		compensation_json TEXT NOT NULL,
		joined_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_members_team
		ON members(team_id, position);

	-- Tasks (owned by a team)
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		description TEXT,
		estimated_minutes REAL NOT NULL,
		frequency_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_team
		ON tasks(team_id);

	-- Calculation history (append-only)
	CREATE TABLE IF NOT EXISTS calculations (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		input_json TEXT NOT NULL,
		result_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_calculations_created
		ON calculations(created_at DESC);

	-- Versioned envelopes
	CREATE TABLE IF NOT EXISTS envelopes (
		key TEXT PRIMARY KEY,
		version INTEGER NOT NULL,
		timestamp TEXT NOT NULL,
		data TEXT NOT NULL,
		enabled BOOLEAN NOT NULL DEFAULT TRUE
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// TEAM STORE (team.Store interface)
// =============================================================================

// CreateTeam saves a team and replaces its members.
func (s *Store) CreateTeam(ctx context.Context, t *team.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = time.Now().UTC()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = t.UpdatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO teams (id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			updated_at = excluded.updated_at
	`
	if _, err := tx.ExecContext(ctx, query,
		t.ID, t.Name, nullString(t.Description),
		t.CreatedAt.Format(time.RFC3339), t.UpdatedAt.Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("failed to save team: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM members WHERE team_id = ?", t.ID); err != nil {
		return fmt.Errorf("failed to clear members: %w", err)
	}
	for i, m := range t.Members {
		if err := insertMember(ctx, tx, t.ID, i, m); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertMember(ctx context.Context, db interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}, teamID string, position int, m team.Member) error {
	compJSON, err := json.Marshal(m.Compensation)
	if err != nil {
		return fmt.Errorf("failed to encode compensation: %w", err)
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO members (id, team_id, position, name, role, active, compensation_json, joined_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = db.ExecContext(ctx, query,
		m.ID, teamID, position, m.Name, m.Role, m.Active,
		string(compJSON), m.JoinedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("member %s already exists: %w", m.ID, err)
		}
		return fmt.Errorf("failed to save member: %w", err)
	}
	return nil
}

// GetTeam retrieves a team with its members.
func (s *Store) GetTeam(ctx context.Context, id string) (*team.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getTeam(ctx, id)
}

func (s *Store) getTeam(ctx context.Context, id string) (*team.Team, error) {
	var t team.Team
	var desc sql.NullString
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, description, created_at, updated_at FROM teams WHERE id = ?",
		id,
	).Scan(&t.ID, &t.Name, &desc, &createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, team.ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	t.Description = desc.String
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	members, err := s.loadMembers(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Members = members
	return &t, nil
}

func (s *Store) loadMembers(ctx context.Context, teamID string) ([]team.Member, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, role, active, compensation_json, joined_at
		FROM members
		WHERE team_id = ?
		ORDER BY position ASC
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	members := []team.Member{}
	for rows.Next() {
		var m team.Member
		var compJSON, joinedAt string
		if err := rows.Scan(&m.ID, &m.Name, &m.Role, &m.Active, &compJSON, &joinedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(compJSON), &m.Compensation); err != nil {
			return nil, fmt.Errorf("failed to decode compensation of member %s: %w", m.ID, err)
		}
		m.JoinedAt, _ = time.Parse(time.RFC3339, joinedAt)
		members = append(members, m)
	}
	return members, rows.Err()
}

// ListTeams returns all teams ordered by name, members included.
func (s *Store) ListTeams(ctx context.Context) ([]team.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id FROM teams ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	teams := make([]team.Team, 0, len(ids))
	for _, id := range ids {
		t, err := s.getTeam(ctx, id)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *t)
	}
	return teams, nil
}

// DeleteTeam removes a team. Its members and tasks go with it.
func (s *Store) DeleteTeam(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM teams WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return affected(res, team.ErrTeamNotFound)
}

// AddMember appends a member to a team.
func (s *Store) AddMember(ctx context.Context, teamID string, m team.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var position int
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE((SELECT MAX(position) + 1 FROM members WHERE team_id = t.id), 0)
		FROM teams t WHERE t.id = ?
	`, teamID).Scan(&position)
	if errors.Is(err, sql.ErrNoRows) {
		return team.ErrTeamNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up team: %w", err)
	}

	if err := insertMember(ctx, tx, teamID, position, m); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "UPDATE teams SET updated_at = ? WHERE id = ?",
		time.Now().UTC().Format(time.RFC3339), teamID); err != nil {
		return fmt.Errorf("failed to touch team: %w", err)
	}

	return tx.Commit()
}

// RemoveMember removes one member from a team.
func (s *Store) RemoveMember(ctx context.Context, teamID, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM members WHERE team_id = ? AND id = ?", teamID, memberID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return affected(res, team.ErrMemberNotFound)
}

// =============================================================================
// TASK STORE
// =============================================================================

// CreateTask saves a task. The owning team must exist.
func (s *Store) CreateTask(ctx context.Context, t *team.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM teams WHERE id = ?", t.TeamID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to look up team: %w", err)
	}
	if exists == 0 {
		return team.ErrTeamNotFound
	}

	freqJSON, err := json.Marshal(t.Frequency)
	if err != nil {
		return fmt.Errorf("failed to encode frequency: %w", err)
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO tasks (id, team_id, name, description, estimated_minutes, frequency_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			estimated_minutes = excluded.estimated_minutes,
			frequency_json = excluded.frequency_json
	`
	_, err = s.db.ExecContext(ctx, query,
		t.ID, t.TeamID, t.Name, nullString(t.Description), t.EstimatedMinutes,
		string(freqJSON), t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isForeignKeyError(err) {
			return team.ErrTeamNotFound
		}
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// GetTask retrieves a task by ID.
func (s *Store) GetTask(ctx context.Context, id string) (*team.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks, err := s.queryTasks(ctx, `
		SELECT id, team_id, name, description, estimated_minutes, frequency_json, created_at
		FROM tasks WHERE id = ?
	`, id)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, team.ErrTaskNotFound
	}
	return &tasks[0], nil
}

// ListTasks returns a team's tasks in creation order.
func (s *Store) ListTasks(ctx context.Context, teamID string) ([]team.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryTasks(ctx, `
		SELECT id, team_id, name, description, estimated_minutes, frequency_json, created_at
		FROM tasks WHERE team_id = ?
		ORDER BY created_at ASC, rowid ASC
	`, teamID)
}

// DeleteTask removes a task.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return affected(res, team.ErrTaskNotFound)
}

func (s *Store) queryTasks(ctx context.Context, query string, args ...any) ([]team.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []team.Task{}
	for rows.Next() {
		var t team.Task
		var desc sql.NullString
		var freqJSON, createdAt string
		if err := rows.Scan(&t.ID, &t.TeamID, &t.Name, &desc, &t.EstimatedMinutes, &freqJSON, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(freqJSON), &t.Frequency); err != nil {
			return nil, fmt.Errorf("failed to decode frequency of task %s: %w", t.ID, err)
		}
		t.Description = desc.String
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// =============================================================================
// CALCULATION HISTORY
// =============================================================================

// CalculationRecord is one stored calculation.
type CalculationRecord struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

// SaveCalculation appends a calculation to the history.
func (s *Store) SaveCalculation(ctx context.Context, id, kind string, input, result any) error {
	inputJSON, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to encode calculation input: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode calculation result: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO calculations (id, kind, input_json, result_json, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, kind, string(inputJSON), string(resultJSON), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save calculation: %w", err)
	}
	return nil
}

// ListCalculations returns the most recent calculations first.
// A limit of zero or less returns everything.
func (s *Store) ListCalculations(ctx context.Context, limit int) ([]CalculationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, kind, input_json, result_json, created_at
		FROM calculations
		ORDER BY created_at DESC, rowid DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query calculations: %w", err)
	}
	defer rows.Close()

	records := []CalculationRecord{}
	for rows.Next() {
		var r CalculationRecord
		var input, result, createdAt string
		if err := rows.Scan(&r.ID, &r.Kind, &input, &result, &createdAt); err != nil {
			return nil, err
		}
		r.Input = json.RawMessage(input)
		r.Result = json.RawMessage(result)
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

// =============================================================================
// ENVELOPE STORE (store.KV interface)
// =============================================================================

// Envelopes is the store.KV view of a Store.
type Envelopes struct {
	s *Store
}

var _ store.KV = (*Envelopes)(nil)

// Envelopes returns the key-value view backed by the envelopes table.
func (s *Store) Envelopes() *Envelopes {
	return &Envelopes{s: s}
}

func (e *Envelopes) Get(ctx context.Context, key string) (*store.Envelope, error) {
	e.s.mu.RLock()
	defer e.s.mu.RUnlock()

	var env store.Envelope
	var ts, data string
	err := e.s.db.QueryRowContext(ctx,
		"SELECT version, timestamp, data, enabled FROM envelopes WHERE key = ?",
		key,
	).Scan(&env.Version, &ts, &data, &env.Enabled)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %q: %w", key, err)
	}

	env.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
	env.Data = json.RawMessage(data)
	return &env, nil
}

func (e *Envelopes) Put(ctx context.Context, key string, env store.Envelope) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	if err := env.Check(); err != nil {
		return err
	}

	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	_, err := e.s.db.ExecContext(ctx, `
		INSERT INTO envelopes (key, version, timestamp, data, enabled)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			version = excluded.version,
			timestamp = excluded.timestamp,
			data = excluded.data,
			enabled = excluded.enabled
	`, key, env.Version, env.Timestamp.UTC().Format(time.RFC3339Nano), string(env.Data), env.Enabled)
	if err != nil {
		return fmt.Errorf("failed to put %q: %w", key, err)
	}
	return nil
}

func (e *Envelopes) Delete(ctx context.Context, key string) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	res, err := e.s.db.ExecContext(ctx, "DELETE FROM envelopes WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return affected(res, store.ErrNotFound)
}

func (e *Envelopes) Keys(ctx context.Context) ([]string, error) {
	e.s.mu.RLock()
	defer e.s.mu.RUnlock()

	rows, err := e.s.db.QueryContext(ctx, "SELECT key FROM envelopes ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to query keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"tasks", "members", "teams", "calculations", "envelopes"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// Helper functions

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func affected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func isUniqueConstraintError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key"))
}

func isForeignKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
