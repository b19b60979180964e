package uploadclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sir_venger/upload_lite/pkg/uploadproto"
)

type received struct {
	mu    sync.Mutex
	key   string
	names []string
	data  []string
}

// echoServer принимает multipart и отвечает именами "n0\nn1...".
func echoServer(t *testing.T, got *received) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = io.WriteString(w, "svc running...")
			return
		}
		got.mu.Lock()
		defer got.mu.Unlock()
		got.key = r.Header.Get(uploadproto.HeaderAuthorization)
		if got.key != "secret" {
			w.WriteHeader(http.StatusForbidden)
			return
		}

		mr, err := r.MultipartReader()
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var out []string
		for {
			p, err := mr.NextPart()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			b, _ := io.ReadAll(p)
			got.names = append(got.names, p.FileName())
			got.data = append(got.data, string(b))
			out = append(out, "n"+string(rune('0'+len(out))))
		}
		_, _ = io.WriteString(w, strings.Join(out, uploadproto.NameSeparator))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestUpload_StreamsFilesAndParsesNames(t *testing.T) {
	var got received
	ts := echoServer(t, &got)

	c := New(ts.URL+"/", "secret")
	names, err := c.Upload(context.Background(),
		File{Name: "a.txt", Reader: strings.NewReader("alpha")},
		File{Name: "b.bin", Reader: bytes.NewReader([]byte{0, 1, 2})},
	)
	require.NoError(t, err)

	got.mu.Lock()
	defer got.mu.Unlock()
	assert.Equal(t, []string{"n0", "n1"}, names)
	assert.Equal(t, []string{"a.txt", "b.bin"}, got.names)
	assert.Equal(t, []string{"alpha", "\x00\x01\x02"}, got.data)
}

func TestUpload_NoFiles(t *testing.T) {
	var got received
	ts := echoServer(t, &got)

	names, err := New(ts.URL, "secret").Upload(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestUpload_Forbidden(t *testing.T) {
	var got received
	ts := echoServer(t, &got)

	_, err := New(ts.URL, "wrong").Upload(context.Background(), File{Name: "a", Reader: strings.NewReader("a")})
	require.ErrorIs(t, err, ErrUnauthorized)

	got.mu.Lock()
	defer got.mu.Unlock()
	assert.Equal(t, "wrong", got.key)
}

func TestUpload_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	_, err := New(ts.URL, "k").Upload(context.Background(), File{Name: "a", Reader: strings.NewReader("a")})
	require.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "500")
}

func TestUpload_ProgressOutput(t *testing.T) {
	var got received
	ts := echoServer(t, &got)

	var progress bytes.Buffer
	payload := strings.Repeat("x", 4096)
	_, err := New(ts.URL, "secret", WithProgress(&progress)).Upload(context.Background(),
		File{Name: "x.txt", Reader: strings.NewReader(payload), Size: int64(len(payload))})
	require.NoError(t, err)

	out := progress.String()
	assert.Contains(t, out, "Uploading 1 file(s)")
	assert.Contains(t, out, "100%")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestStatus(t *testing.T) {
	var got received
	ts := echoServer(t, &got)

	s, err := New(ts.URL, "").Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "svc running...", s)
}

func TestHumanBytes(t *testing.T) {
	assert.Equal(t, "512 B", humanBytes(512))
	assert.Equal(t, "1.0 KB", humanBytes(1024))
	assert.Equal(t, "1.5 MB", humanBytes(3<<19))
}
