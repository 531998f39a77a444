package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	_ "modernc.org/sqlite"
)

// SQLiteStore - локальный бэкенд для разработки и тестов.
type SQLiteStore struct {
	db      *sql.DB
	clock   clockwork.Clock
	dialect sqliteDialect
}

// OpenSQLite открывает базу с одним соединением: для ":memory:" каждое
// новое соединение видело бы пустую базу.
func OpenSQLite(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть sqlite %s: %w", dsn, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON; PRAGMA busy_timeout = 5000;"); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func NewSQLiteStore(db *sql.DB, opts Options) *SQLiteStore {
	return &SQLiteStore{db: db, clock: opts.clock()}
}

func (s *SQLiteStore) Query(ctx context.Context, collection string, q Query) ([]Document, error) {
	if err := checkTarget(collection); err != nil {
		return nil, err
	}
	builder, err := selectDocuments(s.dialect, collection, q)
	if err != nil {
		return nil, err
	}
	rows, err := builder.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("запрос к коллекции %s: %w", collection, err)
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		doc, err := scanSQLiteDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}
	return docs, nil
}

func (s *SQLiteStore) Count(ctx context.Context, collection string, q Query) (uint64, error) {
	if err := checkTarget(collection); err != nil {
		return 0, err
	}
	builder, err := countDocuments(s.dialect, collection, q)
	if err != nil {
		return 0, err
	}
	var total uint64
	if err := builder.RunWith(s.db).QueryRowContext(ctx).Scan(&total); err != nil {
		return 0, fmt.Errorf("подсчёт документов %s: %w", collection, err)
	}
	return total, nil
}

func (s *SQLiteStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	if err := checkTarget(collection, id); err != nil {
		return nil, err
	}
	row := sq.Select(documentsColumns).
		From(documentsTable).
		Where(sq.Eq{"collection": collection, "id": id}).
		RunWith(s.db).
		QueryRowContext(ctx)
	return scanSQLiteDocument(row)
}

func (s *SQLiteStore) Create(ctx context.Context, collection string, data Fields) (*Document, error) {
	if err := checkTarget(collection); err != nil {
		return nil, err
	}
	now := s.clock.Now().UTC()
	prepared, err := prepareFields(data, now)
	if err != nil {
		return nil, err
	}
	raw, err := encodeData(prepared)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	stamp := FormatTime(now)
	query := fmt.Sprintf("INSERT INTO %s (collection, id, data, create_time, update_time) VALUES (?, ?, ?, ?, ?)", documentsTable)
	if _, err := s.db.ExecContext(ctx, query, collection, id, string(raw), stamp, stamp); err != nil {
		return nil, fmt.Errorf("создание документа в %s: %w", collection, err)
	}
	return s.Get(ctx, collection, id)
}

func (s *SQLiteStore) Update(ctx context.Context, collection, id string, patch Fields) (*Document, error) {
	if err := checkTarget(collection, id); err != nil {
		return nil, err
	}
	now := s.clock.Now().UTC()
	prepared, err := prepareFields(patch, now)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("не удалось начать транзакцию: %w", err)
	}
	defer tx.Rollback()

	var current string
	selectQuery := fmt.Sprintf("SELECT data FROM %s WHERE collection = ? AND id = ?", documentsTable)
	if err := tx.QueryRowContext(ctx, selectQuery, collection, id).Scan(&current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	existing, err := decodeData([]byte(current))
	if err != nil {
		return nil, err
	}
	raw, err := encodeData(mergeFields(existing, prepared))
	if err != nil {
		return nil, err
	}

	updateQuery := fmt.Sprintf("UPDATE %s SET data = ?, update_time = ? WHERE collection = ? AND id = ?", documentsTable)
	if _, err := tx.ExecContext(ctx, updateQuery, string(raw), FormatTime(now), collection, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}
	return s.Get(ctx, collection, id)
}

func (s *SQLiteStore) Delete(ctx context.Context, collection, id string) error {
	if err := checkTarget(collection, id); err != nil {
		return err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE collection = ? AND id = ?", documentsTable)
	result, err := s.db.ExecContext(ctx, query, collection, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func scanSQLiteDocument(row sq.RowScanner) (*Document, error) {
	var (
		doc                    Document
		raw, created, modified string
	)
	if err := row.Scan(&doc.ID, &raw, &created, &modified); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	data, err := decodeData([]byte(raw))
	if err != nil {
		return nil, err
	}
	doc.Data = data
	if doc.CreateTime, err = time.Parse(TimeLayout, created); err != nil {
		return nil, err
	}
	if doc.UpdateTime, err = time.Parse(TimeLayout, modified); err != nil {
		return nil, err
	}
	return &doc, nil
}
