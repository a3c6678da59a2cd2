// Package sqlstore implements store.Store on SQLite (modernc.org/sqlite) or
// PostgreSQL (lib/pq) through sqlx. Records are kept as JSON documents next
// to the columns needed for keys and ordering.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/core/store"
)

// Supported driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS subjects (
        user_id TEXT NOT NULL,
        id TEXT NOT NULL,
        created_at BIGINT NOT NULL,
        record TEXT NOT NULL,
        PRIMARY KEY (user_id, id)
    )`,
	`CREATE TABLE IF NOT EXISTS plans (
        user_id TEXT PRIMARY KEY,
        generated_at BIGINT NOT NULL,
        record TEXT NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS progress (
        user_id TEXT NOT NULL,
        session_id TEXT NOT NULL,
        completed BOOLEAN NOT NULL,
        updated_at BIGINT NOT NULL,
        PRIMARY KEY (user_id, session_id)
    )`,
	`CREATE TABLE IF NOT EXISTS tasks (
        user_id TEXT NOT NULL,
        id TEXT NOT NULL,
        due_date TEXT NOT NULL,
        record TEXT NOT NULL,
        PRIMARY KEY (user_id, id)
    )`,
}

// Store is a SQL backed store.Store.
type Store struct {
	db *sqlx.DB
}

var _ store.Store = (*Store)(nil)

// Open connects with driver ("sqlite" or "postgres") and ensures the schema.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// one writer at a time avoids SQLITE_BUSY and keeps in-memory databases alive
		db.SetMaxOpenConns(1)
	}
	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) ListSubjects(ctx context.Context, userID string) ([]model.Subject, error) {
	var records []string
	q := s.db.Rebind(`SELECT record FROM subjects WHERE user_id = ? ORDER BY created_at, id`)
	if err := s.db.SelectContext(ctx, &records, q, userID); err != nil {
		return nil, err
	}
	return decodeAll[model.Subject](records)
}

func (s *Store) GetSubject(ctx context.Context, userID, id string) (model.Subject, error) {
	var rec string
	q := s.db.Rebind(`SELECT record FROM subjects WHERE user_id = ? AND id = ?`)
	if err := s.db.GetContext(ctx, &rec, q, userID, id); err != nil {
		return model.Subject{}, notFound(err)
	}
	var subj model.Subject
	return subj, decode(rec, &subj)
}

func (s *Store) SaveSubject(ctx context.Context, userID string, subj model.Subject) error {
	b, err := json.Marshal(subj)
	if err != nil {
		return err
	}
	q := s.db.Rebind(`INSERT INTO subjects (user_id, id, created_at, record) VALUES (?, ?, ?, ?)
        ON CONFLICT (user_id, id) DO UPDATE SET created_at = excluded.created_at, record = excluded.record`)
	_, err = s.db.ExecContext(ctx, q, userID, subj.ID, subj.CreatedAt.UnixNano(), string(b))
	return err
}

func (s *Store) DeleteSubject(ctx context.Context, userID, id string) error {
	return s.delete(ctx, `DELETE FROM subjects WHERE user_id = ? AND id = ?`, userID, id)
}

func (s *Store) LoadPlan(ctx context.Context, userID string) (*model.Plan, error) {
	var rec string
	q := s.db.Rebind(`SELECT record FROM plans WHERE user_id = ?`)
	if err := s.db.GetContext(ctx, &rec, q, userID); err != nil {
		return nil, notFound(err)
	}
	var p model.Plan
	if err := decode(rec, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) SavePlan(ctx context.Context, userID string, p model.Plan) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	q := s.db.Rebind(`INSERT INTO plans (user_id, generated_at, record) VALUES (?, ?, ?)
        ON CONFLICT (user_id) DO UPDATE SET generated_at = excluded.generated_at, record = excluded.record`)
	_, err = s.db.ExecContext(ctx, q, userID, p.GeneratedAt.UnixNano(), string(b))
	return err
}

func (s *Store) ListPlanUsers(ctx context.Context) ([]string, error) {
	var users []string
	if err := s.db.SelectContext(ctx, &users, `SELECT user_id FROM plans ORDER BY user_id`); err != nil {
		return nil, err
	}
	return users, nil
}

type progressRow struct {
	SessionID string `db:"session_id"`
	Completed bool   `db:"completed"`
	UpdatedAt int64  `db:"updated_at"`
}

func (s *Store) LoadProgress(ctx context.Context, userID string) (model.Progress, error) {
	var rows []progressRow
	q := s.db.Rebind(`SELECT session_id, completed, updated_at FROM progress WHERE user_id = ?`)
	if err := s.db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, err
	}
	out := make(model.Progress, len(rows))
	for _, r := range rows {
		out[r.SessionID] = model.ProgressEntry{Completed: r.Completed, UpdatedAt: time.Unix(0, r.UpdatedAt).UTC()}
	}
	return out, nil
}

func (s *Store) SetProgress(ctx context.Context, userID, sessionID string, e model.ProgressEntry) error {
	q := s.db.Rebind(`INSERT INTO progress (user_id, session_id, completed, updated_at) VALUES (?, ?, ?, ?)
        ON CONFLICT (user_id, session_id) DO UPDATE SET completed = excluded.completed, updated_at = excluded.updated_at`)
	_, err := s.db.ExecContext(ctx, q, userID, sessionID, e.Completed, e.UpdatedAt.UnixNano())
	return err
}

func (s *Store) ListTasks(ctx context.Context, userID string) ([]model.Task, error) {
	var records []string
	q := s.db.Rebind(`SELECT record FROM tasks WHERE user_id = ? ORDER BY due_date, id`)
	if err := s.db.SelectContext(ctx, &records, q, userID); err != nil {
		return nil, err
	}
	return decodeAll[model.Task](records)
}

func (s *Store) GetTask(ctx context.Context, userID, id string) (model.Task, error) {
	var rec string
	q := s.db.Rebind(`SELECT record FROM tasks WHERE user_id = ? AND id = ?`)
	if err := s.db.GetContext(ctx, &rec, q, userID, id); err != nil {
		return model.Task{}, notFound(err)
	}
	var t model.Task
	return t, decode(rec, &t)
}

func (s *Store) SaveTask(ctx context.Context, userID string, t model.Task) error {
	b, err := json.Marshal(t)
	if err != nil {
		return err
	}
	q := s.db.Rebind(`INSERT INTO tasks (user_id, id, due_date, record) VALUES (?, ?, ?, ?)
        ON CONFLICT (user_id, id) DO UPDATE SET due_date = excluded.due_date, record = excluded.record`)
	_, err = s.db.ExecContext(ctx, q, userID, t.ID, t.DueDate.String(), string(b))
	return err
}

func (s *Store) DeleteTask(ctx context.Context, userID, id string) error {
	return s.delete(ctx, `DELETE FROM tasks WHERE user_id = ? AND id = ?`, userID, id)
}

func (s *Store) delete(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func decode(rec string, out any) error {
	if err := json.Unmarshal([]byte(rec), out); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	return nil
}

func decodeAll[T any](records []string) ([]T, error) {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		var v T
		if err := decode(rec, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
