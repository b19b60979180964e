package uploads_test

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sir_venger/upload_lite/internal/repo/uploads"
)

func TestWriteFile_RoundTrip(t *testing.T) {
	cases := []struct {
		name string
		size int
	}{
		{"empty", 0},
		{"one byte", 1},
		{"one chunk boundary", 32 * 1024},
		{"one MiB", 1 << 20},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := bytes.Repeat([]byte{0xA1, 0xB2, 0xC3, 0xD4}, tc.size/4+1)[:tc.size]
			path := filepath.Join(t.TempDir(), "out.bin")

			// HalfReader дробит поток на мелкие чанки.
			n, err := uploads.WriteFile(path, iotest.HalfReader(bytes.NewReader(payload)))
			require.NoError(t, err)
			assert.EqualValues(t, tc.size, n)

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

// patternReader отдаёт n детерминированных байт, не держа их в памяти целиком.
type patternReader struct {
	left int64
	pos  byte
}

func (r *patternReader) Read(p []byte) (int, error) {
	if r.left <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > r.left {
		p = p[:r.left]
	}
	for i := range p {
		p[i] = r.pos
		r.pos++
	}
	r.left -= int64(len(p))
	return len(p), nil
}

func TestWriteFile_NearlyOneGiB(t *testing.T) {
	if testing.Short() {
		t.Skip("large write skipped in -short mode")
	}

	const size = 1<<30 - 1
	path := filepath.Join(t.TempDir(), "big.bin")

	want := sha256.New()
	n, err := uploads.WriteFile(path, io.TeeReader(&patternReader{left: size}, want))
	require.NoError(t, err)
	require.EqualValues(t, size, n)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	got := sha256.New()
	copied, err := io.Copy(got, f)
	require.NoError(t, err)
	assert.EqualValues(t, size, copied)
	assert.Equal(t, want.Sum(nil), got.Sum(nil))
}

func TestWriteFile_TruncatesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("a much longer previous content"), 0o644))

	_, err := uploads.WriteFile(path, bytes.NewReader([]byte("short")))
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "short", string(got))
}

func TestWriteFile_ReadErrorAbortsAndRemovesTarget(t *testing.T) {
	errBoom := errors.New("connection reset")
	path := filepath.Join(t.TempDir(), "broken.bin")

	r := io.MultiReader(bytes.NewReader([]byte("partial data")), iotest.ErrReader(errBoom))
	_, err := uploads.WriteFile(path, r)
	require.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "read chunk")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteFile_CreateError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "out.bin")

	_, err := uploads.WriteFile(path, bytes.NewReader([]byte("x")))
	require.Error(t, err)
}

func TestStore_WriteAndUsage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := uploads.New(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())

	_, err = s.Write("abcde.txt", bytes.NewReader([]byte("hello")))
	require.NoError(t, err)
	_, err = s.Write("fghijk", bytes.NewReader([]byte("world!")))
	require.NoError(t, err)

	u, err := s.Usage()
	require.NoError(t, err)
	assert.Equal(t, 2, u.Files)
	assert.EqualValues(t, 11, u.TotalBytes)
}

func TestStore_WriteRejectsPaths(t *testing.T) {
	s, err := uploads.New(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "../escape.txt", "nested/file.txt"} {
		_, err := s.Write(name, bytes.NewReader(nil))
		assert.Error(t, err, name)
	}
}

func TestNew_EmptyDir(t *testing.T) {
	_, err := uploads.New("  ")
	require.Error(t, err)
}
