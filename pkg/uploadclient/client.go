// Package uploadclient содержит HTTP-клиент сервиса загрузок.
package uploadclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/sir_venger/upload_lite/pkg/uploadproto"
)

var (
	// ErrUnauthorized — сервер отверг ключ (403).
	ErrUnauthorized = errors.New("upload key rejected")
	// ErrUnexpectedStatus возвращается на любой ответ, кроме 200 и 403.
	ErrUnexpectedStatus = errors.New("unexpected upload response")
)

const formField = "file"

// File описывает один загружаемый файл. Size нужен только индикатору прогресса, 0 означает "неизвестен".
type File struct {
	Name   string
	Reader io.Reader
	Size   int64
}

type Client interface {
	// Upload отправляет файлы одним multipart-запросом и возвращает сгенерированные имена
	Upload(ctx context.Context, files ...File) ([]string, error)
	// Status возвращает строку статуса сервиса
	Status(ctx context.Context) (string, error)
}

type Option func(*httpClient)

// WithHTTPClient подменяет http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *httpClient) { h.c = c }
}

// WithProgress включает индикатор выполнения в указанный writer.
func WithProgress(w io.Writer) Option {
	return func(h *httpClient) { h.progress = w }
}

type httpClient struct {
	c        *http.Client
	baseURL  string
	key      string
	progress io.Writer
}

// New создаёт клиент для сервиса по адресу baseURL с ключом загрузки key.
func New(baseURL, key string, opts ...Option) Client {
	h := &httpClient{
		c:       &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Upload стримит тело через io.Pipe, не буферизуя файлы целиком.
func (h *httpClient) Upload(ctx context.Context, files ...File) ([]string, error) {
	bar := h.newBar(files)

	pr, pw := io.Pipe()
	defer pr.Close()

	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeParts(mw, files, bar))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+uploadproto.PathRoot, pr)
	if err != nil {
		bar.Fail(err)
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(uploadproto.HeaderAuthorization, h.key)

	resp, err := h.c.Do(req)
	if err != nil {
		bar.Fail(err)
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden:
		bar.Fail(ErrUnauthorized)
		return nil, ErrUnauthorized
	default:
		err = fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
		bar.Fail(err)
		return nil, err
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		bar.Fail(err)
		return nil, err
	}
	bar.Finish()

	if len(b) == 0 {
		return []string{}, nil
	}
	return strings.Split(string(b), uploadproto.NameSeparator), nil
}

func writeParts(mw *multipart.Writer, files []File, bar *progressBar) error {
	for _, f := range files {
		w, err := mw.CreateFormFile(formField, f.Name)
		if err != nil {
			return err
		}

		var src io.Reader = f.Reader
		if src == nil {
			continue
		}
		if bar != nil {
			src = io.TeeReader(src, progressWriter{bar: bar})
		}
		if _, err := io.Copy(w, src); err != nil {
			return fmt.Errorf("copy %s: %w", f.Name, err)
		}
	}
	return mw.Close()
}

// Status читает GET /.
func (h *httpClient) Status(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+uploadproto.PathRoot, nil)
	if err != nil {
		return "", err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *httpClient) newBar(files []File) *progressBar {
	if h.progress == nil {
		return nil
	}

	var total int64
	for _, f := range files {
		if f.Size <= 0 {
			total = 0
			break
		}
		total += f.Size
	}

	prefix := fmt.Sprintf("Uploading %d file(s)", len(files))
	bar := newProgressBar(h.progress, prefix, total)
	bar.render(true, "")
	return bar
}
