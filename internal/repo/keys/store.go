package keys

import (
	"fmt"
	"sync"
)

// Store — неизменяемая после инициализации таблица ключ -> идентификатор.
type Store struct {
	mu   sync.RWMutex
	keys map[string]string
}

// NewStore копирует таблицу ключей; пустые ключи и идентификаторы запрещены.
func NewStore(table map[string]string) (*Store, error) {
	keys := make(map[string]string, len(table))
	for k, id := range table {
		if k == "" {
			return nil, fmt.Errorf("empty key in credential table")
		}
		if id == "" {
			return nil, fmt.Errorf("empty identifier for a key in credential table")
		}
		keys[k] = id
	}

	return &Store{keys: keys}, nil
}

// Authorize возвращает идентификатор владельца ключа.
func (s *Store) Authorize(key string) (string, bool) {
	if s == nil || key == "" {
		return "", false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.keys[key]
	return id, ok
}

// Len возвращает число загруженных ключей.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}
