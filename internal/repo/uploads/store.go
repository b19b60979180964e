package uploads

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const chunkSize = 32 * 1024

// Store пишет загруженные файлы в фиксированный каталог.
type Store struct {
	dir string
}

// Usage описывает суммарную статистику каталога загрузок.
type Usage struct {
	Files      int
	TotalBytes int64
}

// New создаёт каталог загрузок при необходимости.
func New(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("uploads dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &Store{dir: dir}, nil
}

// Dir возвращает корневой каталог загрузок.
func (s *Store) Dir() string {
	return s.dir
}

// Path возвращает полный путь файла с данным именем.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Write сохраняет поток r в <dir>/<name>.
func (s *Store) Write(name string, r io.Reader) (int64, error) {
	if name == "" || name != filepath.Base(name) {
		return 0, fmt.Errorf("invalid file name %q", name)
	}
	return WriteFile(s.Path(name), r)
}

// WriteFile создаёт (или обрезает) файл path и переносит в него поток по чанкам.
// Первая ошибка чтения или записи прерывает операцию, недописанный файл удаляется.
func WriteFile(path string, r io.Reader) (n int64, err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(path)
		}
	}()

	buf := make([]byte, chunkSize)
	for {
		nr, readErr := r.Read(buf)
		if nr > 0 {
			nw, writeErr := f.Write(buf[:nr])
			n += int64(nw)
			if writeErr != nil {
				return n, fmt.Errorf("write chunk: %w", writeErr)
			}
			if nw != nr {
				return n, fmt.Errorf("write chunk: %w", io.ErrShortWrite)
			}
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return n, fmt.Errorf("read chunk: %w", readErr)
		}
	}

	if err = f.Close(); err != nil {
		return n, fmt.Errorf("close file: %w", err)
	}

	return n, nil
}

// Usage обходит каталог и суммирует размеры файлов.
func (s *Store) Usage() (Usage, error) {
	var u Usage
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		u.Files++
		u.TotalBytes += info.Size()

		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Usage{}, err
	}

	return u, nil
}
