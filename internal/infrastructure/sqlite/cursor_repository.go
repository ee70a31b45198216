package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/caret/internal/history"
	"github.com/zjrosen/caret/internal/textbuf"
)

const cursorColumns = `id, path, line, character, session, updated_at`

// cursorRepository implements history.Repository using SQLite.
type cursorRepository struct {
	db  *sql.DB
	now func() time.Time
}

func newCursorRepository(db *sql.DB) *cursorRepository {
	return &cursorRepository{db: db, now: time.Now}
}

var _ history.Repository = (*cursorRepository)(nil)

// cursorModel is one cursor_history row. Times are stored as Unix milliseconds.
type cursorModel struct {
	ID        string
	Path      string
	Line      int
	Character int
	Session   string
	UpdatedAt int64
}

func scanCursor(scanner interface{ Scan(...any) error }) (cursorModel, error) {
	var m cursorModel
	err := scanner.Scan(&m.ID, &m.Path, &m.Line, &m.Character, &m.Session, &m.UpdatedAt)
	return m, err
}

func (m cursorModel) entry() history.Entry {
	return history.Entry{
		ID:        m.ID,
		Path:      m.Path,
		Position:  textbuf.Pos(m.Line, m.Character),
		Session:   m.Session,
		UpdatedAt: time.UnixMilli(m.UpdatedAt).UTC(),
	}
}

func (r *cursorRepository) Find(path string) (history.Entry, error) {
	row := r.db.QueryRow(`SELECT `+cursorColumns+` FROM cursor_history WHERE path = ?`, path)
	m, err := scanCursor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return history.Entry{}, history.ErrNotFound
	}
	if err != nil {
		return history.Entry{}, fmt.Errorf("failed to find cursor for %s: %w", path, err)
	}
	return m.entry(), nil
}

// Save upserts on path. An existing row keeps its id.
func (r *cursorRepository) Save(e history.Entry) (history.Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = r.now()
	}

	_, err := r.db.Exec(
		`INSERT INTO cursor_history (`+cursorColumns+`) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (path) DO UPDATE SET
			line = excluded.line,
			character = excluded.character,
			session = excluded.session,
			updated_at = excluded.updated_at`,
		e.ID, e.Path, e.Position.Line, e.Position.Character, e.Session, e.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return history.Entry{}, fmt.Errorf("failed to save cursor for %s: %w", e.Path, err)
	}
	return r.Find(e.Path)
}

func (r *cursorRepository) List(limit int) ([]history.Entry, error) {
	query := `SELECT ` + cursorColumns + ` FROM cursor_history ORDER BY updated_at DESC, path`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cursor history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []history.Entry
	for rows.Next() {
		m, err := scanCursor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cursor history: %w", err)
		}
		out = append(out, m.entry())
	}
	return out, rows.Err()
}

func (r *cursorRepository) Prune(keep int) (int, error) {
	result, err := r.db.Exec(
		`DELETE FROM cursor_history WHERE id NOT IN (
			SELECT id FROM cursor_history ORDER BY updated_at DESC, path LIMIT ?
		)`, max(keep, 0))
	if err != nil {
		return 0, fmt.Errorf("failed to prune cursor history: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned rows: %w", err)
	}
	return int(n), nil
}

// Close is a no-op; the connection belongs to DB.
func (r *cursorRepository) Close() error { return nil }
