package uploadhttp

import (
	"fmt"
	"net/http"
)

// getStatus сообщает, что сервис жив; авторизация не требуется.
func (s *Server) getStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = fmt.Fprintf(w, "%s running...", s.Cfg.ServiceName)
}
