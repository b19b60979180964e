package uploadsvc

import (
	"context"
	"io"
	"log/slog"

	"github.com/sir_venger/upload_lite/internal/metrics"
	"github.com/sir_venger/upload_lite/internal/models"
	"github.com/sir_venger/upload_lite/pkg/randstr"
)

type (
	// KeyStore авторизует ключ загрузки и возвращает идентификатор владельца.
	KeyStore interface {
		Authorize(key string) (string, bool)
	}

	// FileStore сохраняет поток под заданным именем.
	FileStore interface {
		Write(name string, r io.Reader) (int64, error)
	}

	// NameGenerator выдаёт случайные строки заданной длины.
	NameGenerator interface {
		Generate(n int) (string, error)
	}

	// PartSource — ленивый поток частей одного запроса, io.EOF означает конец.
	PartSource interface {
		NextPart() (models.UploadPart, error)
	}

	// Service принимает multipart-загрузки.
	Service interface {
		Upload(ctx context.Context, credential string, parts PartSource) (models.UploadResult, error)
	}
)

type Deps struct {
	Keys     KeyStore
	Files    FileStore
	Names    NameGenerator
	Observer metrics.Observer
	Logger   *slog.Logger
}

type Uploads struct {
	Deps
}

// New конструирует оркестратор загрузок; Names, Observer и Logger имеют умолчания.
func New(deps Deps) *Uploads {
	if deps.Names == nil {
		deps.Names = randstr.New(nil)
	}
	if deps.Observer == nil {
		deps.Observer = metrics.Nop{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	return &Uploads{Deps: deps}
}

var _ Service = (*Uploads)(nil)
