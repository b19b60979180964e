package uploadhttp

import (
	"io"
	"net/http"
	"strings"

	"github.com/sir_venger/upload_lite/pkg/httperrors"
	"github.com/sir_venger/upload_lite/pkg/uploadproto"
)

// postUpload ограничивает тело запроса и целиком делегирует загрузку сервису.
func (s *Server) postUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.Cfg.MaxRequestBytes)

	key := r.Header.Get(uploadproto.HeaderAuthorization)
	res, err := s.Uploads.Upload(r.Context(), key, newPartSource(r, s.Logger))
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, strings.Join(res.Names(), uploadproto.NameSeparator))
}
