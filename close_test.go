package huntgen

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCloser is a test double that implements io.Closer.
type stubCloser struct {
	closeErr   error
	closeCalls int
}

func (s *stubCloser) Close() error {
	s.closeCalls++
	return s.closeErr
}

func TestCloseWithLog(t *testing.T) {
	t.Run("nil closer is a no-op", func(t *testing.T) {
		var logBuf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logBuf, nil))

		CloseWithLog(nil, logger, "store")
		assert.Empty(t, logBuf.String())
	})

	t.Run("successful close does not log", func(t *testing.T) {
		closer := &stubCloser{}
		var logBuf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logBuf, nil))

		CloseWithLog(closer, logger, "store")

		assert.Equal(t, 1, closer.closeCalls)
		assert.Empty(t, logBuf.String())
	})

	t.Run("close error logs a warning", func(t *testing.T) {
		closer := &stubCloser{closeErr: errors.New("connection busy")}
		var logBuf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logBuf, nil))

		CloseWithLog(closer, logger, "query library")

		assert.Equal(t, 1, closer.closeCalls)
		logOutput := logBuf.String()
		assert.Contains(t, logOutput, "failed to close resource")
		assert.Contains(t, logOutput, "query library")
		assert.Contains(t, logOutput, "connection busy")
		assert.Contains(t, logOutput, "level=WARN")
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		closer := &stubCloser{closeErr: errors.New("boom")}

		require.NotPanics(t, func() {
			CloseWithLog(closer, nil, "store")
		})
		assert.Equal(t, 1, closer.closeCalls)
	})

	t.Run("defer pattern closes everything", func(t *testing.T) {
		var logBuf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logBuf, nil))

		ok := &stubCloser{}
		broken := &stubCloser{closeErr: errors.New("cleanup error")}

		func() {
			defer CloseWithLog(broken, logger, "broken resource")
			defer CloseWithLog(ok, logger, "ok resource")
		}()

		assert.Equal(t, 1, ok.closeCalls)
		assert.Equal(t, 1, broken.closeCalls)
		assert.Contains(t, logBuf.String(), "broken resource")
		assert.NotContains(t, logBuf.String(), "ok resource")
	})
}
