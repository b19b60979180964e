package uploadsvc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sir_venger/upload_lite/internal/metrics"
	"github.com/sir_venger/upload_lite/internal/models"
	"github.com/sir_venger/upload_lite/pkg/requestid"
)

const noFileName = "<none>"

// Upload авторизует ключ и последовательно сохраняет части запроса.
// Первая неудачная запись прерывает запрос; уже записанные файлы остаются на диске.
func (s *Uploads) Upload(ctx context.Context, credential string, parts PartSource) (models.UploadResult, error) {
	log := s.Logger.With("rid", requestid.FromContext(ctx))

	identifier, ok := s.Keys.Authorize(credential)
	s.Observer.RecordAuth(ok)
	if !ok {
		s.Observer.RecordRequest(metrics.OutcomeUnauthorized)
		return models.UploadResult{}, models.ErrUnauthorized
	}
	log.Info("uploading some files", "identifier", identifier)

	res := models.UploadResult{Identifier: identifier}
	for {
		part, err := parts.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, models.ErrWriteFailed) {
			log.Warn("reading next part failed", "err", err)
			s.Observer.RecordRequest(metrics.OutcomeFailed)
			return models.UploadResult{}, err
		}
		if err != nil {
			log.Debug("rejecting upload body", "err", err)
			s.Observer.RecordRequest(metrics.OutcomeBadRequest)
			return models.UploadResult{}, err
		}

		stored, err := s.storePart(part)
		if err != nil {
			log.Warn("An error occurred while attempting to write file",
				"name", stored.Name, "orig", stored.Original, "err", err)
			s.Observer.RecordRequest(metrics.OutcomeFailed)
			return models.UploadResult{}, fmt.Errorf("%w: %s: %v", models.ErrWriteFailed, stored.Original, err)
		}

		log.Info("Uploaded", "name", stored.Name, "orig", stored.Original, "size", stored.Size)
		res.Files = append(res.Files, stored)
	}

	s.Observer.RecordRequest(metrics.OutcomeOK)
	return res, nil
}

// storePart именует часть и пишет её в хранилище; StoredFile заполняется и при ошибке для логов.
func (s *Uploads) storePart(part models.UploadPart) (models.StoredFile, error) {
	stored := models.StoredFile{Original: part.FileName}
	if stored.Original == "" {
		stored.Original = noFileName
	}

	name, err := TargetName(s.Names, part.FileName)
	if err != nil {
		s.Observer.RecordPart(0, 0, err)
		return stored, fmt.Errorf("generate name: %w", err)
	}
	stored.Name = name

	body := part.Body
	if body == nil {
		body = bytes.NewReader(nil)
	}

	start := time.Now()
	n, err := s.Files.Write(name, body)
	s.Observer.RecordPart(n, time.Since(start), err)
	stored.Size = n

	return stored, err
}
