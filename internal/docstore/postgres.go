package docstore

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
)

// PostgresStore хранит документы всех коллекций в одной таблице с jsonb.
type PostgresStore struct {
	pool    *pgxpool.Pool
	clock   clockwork.Clock
	dialect postgresDialect
}

func NewPostgresStore(pool *pgxpool.Pool, opts Options) *PostgresStore {
	return &PostgresStore{pool: pool, clock: opts.clock()}
}

func (s *PostgresStore) Query(ctx context.Context, collection string, q Query) ([]Document, error) {
	if err := checkTarget(collection); err != nil {
		return nil, err
	}
	builder, err := selectDocuments(s.dialect, collection, q)
	if err != nil {
		return nil, err
	}
	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ToSql для %s: %w", collection, err)
	}

	rows, err := s.pool.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("запрос к коллекции %s: %w", collection, err)
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		doc, err := scanPgDocument(rows)
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

func (s *PostgresStore) Count(ctx context.Context, collection string, q Query) (uint64, error) {
	if err := checkTarget(collection); err != nil {
		return 0, err
	}
	builder, err := countDocuments(s.dialect, collection, q)
	if err != nil {
		return 0, err
	}
	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("count ToSql: %w", err)
	}
	var total uint64
	if err := s.pool.QueryRow(ctx, sqlQuery, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("подсчёт документов %s: %w", collection, err)
	}
	return total, nil
}

func (s *PostgresStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	if err := checkTarget(collection, id); err != nil {
		return nil, err
	}
	sqlQuery, args, err := sq.Select(documentsColumns).
		From(documentsTable).
		Where(sq.Eq{"collection": collection, "id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanPgDocument(s.pool.QueryRow(ctx, sqlQuery, args...))
}

func (s *PostgresStore) Create(ctx context.Context, collection string, data Fields) (*Document, error) {
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

	query := fmt.Sprintf(`
		INSERT INTO %s (collection, id, data, create_time, update_time)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING %s`, documentsTable, documentsColumns)

	return scanPgDocument(s.pool.QueryRow(ctx, query, collection, uuid.NewString(), raw, now))
}

func (s *PostgresStore) Update(ctx context.Context, collection, id string, patch Fields) (*Document, error) {
	if err := checkTarget(collection, id); err != nil {
		return nil, err
	}
	now := s.clock.Now().UTC()
	prepared, err := prepareFields(patch, now)
	if err != nil {
		return nil, err
	}

	var updated *Document
	err = withTx(ctx, s.pool, func(tx pgx.Tx) error {
		selectQuery := fmt.Sprintf("SELECT data FROM %s WHERE collection = $1 AND id = $2 FOR UPDATE", documentsTable)
		var current []byte
		if err := tx.QueryRow(ctx, selectQuery, collection, id).Scan(&current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		existing, err := decodeData(current)
		if err != nil {
			return err
		}
		raw, err := encodeData(mergeFields(existing, prepared))
		if err != nil {
			return err
		}

		updateQuery := fmt.Sprintf(`
			UPDATE %s SET data = $1, update_time = $2
			WHERE collection = $3 AND id = $4
			RETURNING %s`, documentsTable, documentsColumns)
		updated, err = scanPgDocument(tx.QueryRow(ctx, updateQuery, raw, now, collection, id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	if err := checkTarget(collection, id); err != nil {
		return err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE collection = $1 AND id = $2", documentsTable)
	result, err := s.pool.Exec(ctx, query, collection, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Close не закрывает пул: им владеет вызывающий.
func (s *PostgresStore) Close() error { return nil }

func scanPgDocument(row pgx.Row) (*Document, error) {
	var (
		doc Document
		raw []byte
	)
	if err := row.Scan(&doc.ID, &raw, &doc.CreateTime, &doc.UpdateTime); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	data, err := decodeData(raw)
	if err != nil {
		return nil, err
	}
	doc.Data = data
	doc.CreateTime = doc.CreateTime.UTC()
	doc.UpdateTime = doc.UpdateTime.UTC()
	return &doc, nil
}

func withTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) (err error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
			if err != nil {
				err = fmt.Errorf("ошибка при коммите транзакции: %w", err)
			}
		}
	}()

	err = fn(tx)
	return err
}
