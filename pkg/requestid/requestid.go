// Package requestid проставляет X-Request-ID каждому запросу и кладёт его в контекст.
package requestid

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	Header      = "X-Request-ID"
	maxIDLength = 128
)

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type contextKey struct{}

// Middleware сохраняет валидный клиентский X-Request-ID или генерирует новый.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(Header)
		if !isValid(rid) {
			rid = uuid.NewString()
		}
		w.Header().Set(Header, rid)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), rid)))
	})
}

func WithContext(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, contextKey{}, rid)
}

// FromContext возвращает id запроса или пустую строку.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	rid, _ := ctx.Value(contextKey{}).(string)
	return rid
}

func isValid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validID.MatchString(id)
}
