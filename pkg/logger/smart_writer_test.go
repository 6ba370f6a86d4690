package logger_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/frankieli/casino_engine/pkg/logger"
)

type captureWriter struct {
	buf bytes.Buffer
}

func (w *captureWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func TestSmartWriterImmediateFlushOnError(t *testing.T) {
	out := &captureWriter{}
	// Long interval so the background flusher cannot interfere.
	sw := logger.NewSmartWriter(out, 10*time.Second)

	infoLine := []byte(`{"level":"info","message":"settled"}` + "\n")
	n, err := sw.Write(infoLine)
	assert.NoError(t, err)
	assert.Equal(t, len(infoLine), n)
	assert.Equal(t, 0, out.buf.Len(), "info lines stay buffered")

	errorLine := []byte(`{"level":"error","message":"credit failed"}` + "\n")
	n, err = sw.Write(errorLine)
	assert.NoError(t, err)
	assert.Equal(t, len(errorLine), n)

	// An error line flushes everything buffered before it.
	assert.Equal(t, string(infoLine)+string(errorLine), out.buf.String())
}

func TestSmartWriterAutoFlush(t *testing.T) {
	out := &captureWriter{}
	sw := logger.NewSmartWriter(out, 100*time.Millisecond)

	infoLine := []byte(`{"level":"info","message":"settled"}` + "\n")
	sw.Write(infoLine)
	assert.Equal(t, 0, out.buf.Len())

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, string(infoLine), out.buf.String(), "the flusher drains the buffer on its interval")
}

func TestSmartWriterExplicitSync(t *testing.T) {
	out := &captureWriter{}
	sw := logger.NewSmartWriter(out, 10*time.Second)

	infoLine := []byte(`{"level":"info","message":"settled"}` + "\n")
	sw.Write(infoLine)
	assert.Equal(t, 0, out.buf.Len())

	assert.NoError(t, sw.Sync())
	assert.Equal(t, string(infoLine), out.buf.String())
}
