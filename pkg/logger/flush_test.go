package logger_test

import (
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/frankieli/casino_engine/pkg/logger"
)

// Runs itself as a subprocess that panics after writing a buffered line, then
// checks the line still made it to the file.
func TestLoggerFlushOnPanic(t *testing.T) {
	if os.Getenv("RUN_PANIC_TEST") == "1" {
		doLoggerWork()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestLoggerFlushOnPanic")
	cmd.Env = append(os.Environ(), "RUN_PANIC_TEST=1")
	// A non-zero exit is the expected outcome.
	_ = cmd.Run()

	content, err := os.ReadFile("panic_test.log")
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	assert.Contains(t, string(content), "This message should be flushed before panic", "Buffered log was not flushed on panic")

	os.Remove("panic_test.log")
}

func doLoggerWork() {
	logger.InitWithFile("panic_test.log", "info", "json", false)
	defer logger.Flush()

	logger.InfoGlobal().Msg("This message should be flushed before panic")

	// Short enough that the interval flusher never fires; only the deferred
	// Flush can save the line.
	time.Sleep(10 * time.Millisecond)

	panic("Intentional panic for testing")
}
