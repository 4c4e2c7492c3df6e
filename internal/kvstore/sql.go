package kvstore

import (
	"context"
	"database/sql"
	"errors"
)

// SQLStore 把文档保存在 documents 表中，PostgreSQL 和 SQLite 共用
type SQLStore struct {
	db          *sql.DB
	selectQuery string
	upsertQuery string
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	if err := s.db.QueryRowContext(ctx, s.selectQuery, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, s.upsertQuery, key, value)
	return err
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
