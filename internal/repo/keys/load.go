package keys

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// IsPostgres сообщает, указывает ли источник ключей на Postgres.
func IsPostgres(source string) bool {
	s := strings.TrimSpace(source)
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// Load строит Store из файла (JSON/YAML) либо из таблицы Postgres.
func Load(ctx context.Context, source string) (*Store, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("keys source is empty")
	}
	if IsPostgres(source) {
		return LoadPostgres(ctx, source)
	}
	return LoadFile(source)
}

// LoadFile читает таблицу ключей из JSON-объекта или YAML-маппинга.
func LoadFile(path string) (*Store, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keys file: %w", err)
	}

	table := map[string]string{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &table)
	default:
		err = json.Unmarshal(b, &table)
	}
	if err != nil {
		return nil, fmt.Errorf("parse keys file %s: %w", path, err)
	}

	return NewStore(table)
}
