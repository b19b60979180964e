// Package randstr генерирует короткие случайные строки, безопасные для имён файлов.
package randstr

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
)

// Alphabet — допустимые символы сгенерированных имён, ровно 64 штуки.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// mask покрывает индексы алфавита наименьшей степенью двойки (64 символа -> 6 бит),
// так что при текущем алфавите отбраковки не бывает.
const mask = 0x3f

// Generator выбирает символы алфавита равновероятно, отбрасывая выборки вне диапазона.
type Generator struct {
	mu  sync.Mutex
	src io.Reader
}

// New создаёт генератор поверх источника случайных байт; nil означает crypto/rand.
func New(src io.Reader) *Generator {
	if src == nil {
		src = rand.Reader
	}
	return &Generator{src: src}
}

var defaultGenerator = New(nil)

// Generate возвращает строку длины n из генератора по умолчанию.
func Generate(n int) (string, error) {
	return defaultGenerator.Generate(n)
}

// Generate возвращает строку ровно из n символов алфавита.
func (g *Generator) Generate(n int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("randstr: negative length %d", n)
	}

	out := make([]byte, 0, n)
	buf := make([]byte, n)

	g.mu.Lock()
	defer g.mu.Unlock()

	for len(out) < n {
		if _, err := io.ReadFull(g.src, buf); err != nil {
			return "", fmt.Errorf("randstr: read random source: %w", err)
		}
		for _, b := range buf {
			idx := int(b & mask)
			if idx >= len(Alphabet) {
				continue
			}
			out = append(out, Alphabet[idx])
			if len(out) == n {
				break
			}
		}
	}

	return string(out), nil
}
