package keys

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uploadKeysTable = "upload_keys"

// LoadPostgres однократно вычитывает таблицу upload_keys и закрывает пул.
func LoadPostgres(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect keys db: %w", err)
	}
	defer pool.Close()

	sqlStr, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("key", "identifier").
		From(uploadKeysTable).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query keys: %w", err)
	}
	defer rows.Close()

	table := map[string]string{}
	for rows.Next() {
		var key, identifier string
		if err := rows.Scan(&key, &identifier); err != nil {
			return nil, fmt.Errorf("scan key row: %w", err)
		}
		table[key] = identifier
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keys: %w", err)
	}

	return NewStore(table)
}
