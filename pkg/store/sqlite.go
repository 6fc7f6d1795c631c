package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"tableflip.dev/todo/pkg/item"
)

const schema = `
CREATE TABLE IF NOT EXISTS todos (
	id          VARCHAR(36) PRIMARY KEY,
	title       VARCHAR(255) NOT NULL,
	description TEXT,
	completed   BOOLEAN DEFAULT FALSE,
	position    INT NOT NULL
)`

type sqlitePersistence struct {
	db   *sql.DB
	path string
	// mu serializes writers so position shifts never interleave.
	mu  sync.Mutex
	hub *hub
}

var _ Persistence = (*sqlitePersistence)(nil)

// OpenSQLite opens (creating if needed) a todo database at path.
func OpenSQLite(path string) (Persistence, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: create db directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create todos table: %w", err)
	}
	return &sqlitePersistence{db: db, path: path, hub: newHub()}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (item.Item, error) {
	var (
		it          item.Item
		description sql.NullString
	)
	if err := row.Scan(&it.ID, &it.Title, &description, &it.Completed, &it.Position); err != nil {
		return item.Item{}, err
	}
	it.Description = description.String
	return it, nil
}

const selectColumns = `SELECT id, title, description, completed, position FROM todos`

func (s *sqlitePersistence) List(ctx context.Context) ([]item.Item, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("store: list todos: %w", err)
	}
	defer rows.Close()
	out := make([]item.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan todo: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *sqlitePersistence) Get(ctx context.Context, id string) (item.Item, error) {
	return getTodo(ctx, s.db, id)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getTodo(ctx context.Context, q querier, id string) (item.Item, error) {
	it, err := scanItem(q.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return item.Item{}, ErrNotFound
	}
	if err != nil {
		return item.Item{}, fmt.Errorf("store: get %s: %w", id, err)
	}
	return it, nil
}

func (s *sqlitePersistence) Create(ctx context.Context, it item.Item) (item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos`).Scan(&it.Position); err != nil {
			return fmt.Errorf("store: count todos: %w", err)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO todos (id, title, description, completed, position) VALUES (?, ?, ?, ?, ?)`,
			it.ID, it.Title, it.Description, it.Completed, it.Position)
		if err != nil {
			return fmt.Errorf("store: insert %s: %w", it.ID, err)
		}
		return nil
	})
	if err != nil {
		return item.Item{}, err
	}
	s.hub.publish(Event{Type: EventChanged, ID: it.ID})
	return it, nil
}

func (s *sqlitePersistence) Update(ctx context.Context, it item.Item) (item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.ExecContext(ctx,
		`UPDATE todos SET title = ?, description = ?, completed = ? WHERE id = ?`,
		it.Title, it.Description, it.Completed, it.ID)
	if err != nil {
		return item.Item{}, fmt.Errorf("store: update %s: %w", it.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return item.Item{}, ErrNotFound
	}
	s.hub.publish(Event{Type: EventChanged, ID: it.ID})
	return getTodo(ctx, s.db, it.ID)
}

func (s *sqlitePersistence) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		current, err := getTodo(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id); err != nil {
			return fmt.Errorf("store: delete %s: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE todos SET position = position - 1 WHERE position > ?`, current.Position); err != nil {
			return fmt.Errorf("store: compact positions: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.hub.publish(Event{Type: EventChanged, ID: id})
	return nil
}

func (s *sqlitePersistence) Reorder(ctx context.Context, id string, position int) (item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var moved item.Item
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var total int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos`).Scan(&total); err != nil {
			return fmt.Errorf("store: count todos: %w", err)
		}
		current, err := getTodo(ctx, tx, id)
		if err != nil {
			return err
		}
		if position < 0 || position >= total {
			return fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidPosition, position, total-1)
		}
		moved = current
		if current.Position == position {
			return nil
		}
		if position > current.Position {
			_, err = tx.ExecContext(ctx,
				`UPDATE todos SET position = position - 1 WHERE position > ? AND position <= ?`,
				current.Position, position)
		} else {
			_, err = tx.ExecContext(ctx,
				`UPDATE todos SET position = position + 1 WHERE position >= ? AND position < ?`,
				position, current.Position)
		}
		if err != nil {
			return fmt.Errorf("store: shift positions: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE todos SET position = ? WHERE id = ?`, position, id); err != nil {
			return fmt.Errorf("store: place %s: %w", id, err)
		}
		moved.Position = position
		return nil
	})
	if err != nil {
		return item.Item{}, err
	}
	s.hub.publish(Event{Type: EventInvalidated, ID: id})
	return moved, nil
}

func (s *sqlitePersistence) Watch(ctx context.Context) (<-chan Event, error) {
	return s.hub.watch(ctx), nil
}

func (s *sqlitePersistence) Close() error {
	s.hub.close()
	return s.db.Close()
}

func (s *sqlitePersistence) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}
