package uploadhttp

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/sir_venger/upload_lite/internal/models"
	"github.com/sir_venger/upload_lite/pkg/requestid"
)

// partSource лениво открывает multipart-тело: до авторизации тело не читается.
type partSource struct {
	req  *http.Request
	mr   *multipart.Reader
	log  *slog.Logger
	done bool
}

func newPartSource(r *http.Request, log *slog.Logger) *partSource {
	return &partSource{req: r, log: log}
}

// NextPart возвращает следующую часть. Испорченная часть завершает перебор как конец потока,
// а превышение лимита размера считается ошибкой записи.
func (s *partSource) NextPart() (models.UploadPart, error) {
	if s.done {
		return models.UploadPart{}, io.EOF
	}

	if s.mr == nil {
		mr, err := s.req.MultipartReader()
		if err != nil {
			s.done = true
			return models.UploadPart{}, fmt.Errorf("%w: %v", models.ErrBadRequest, err)
		}
		s.mr = mr
	}

	part, err := s.mr.NextPart()
	if err != nil {
		s.done = true
		if errors.Is(err, io.EOF) {
			return models.UploadPart{}, io.EOF
		}

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return models.UploadPart{}, fmt.Errorf("%w: %v", models.ErrWriteFailed, err)
		}

		s.log.Debug("malformed multipart part, stopping iteration",
			"rid", requestid.FromContext(s.req.Context()), "err", err)
		return models.UploadPart{}, io.EOF
	}

	return models.UploadPart{FileName: part.FileName(), Body: part}, nil
}
