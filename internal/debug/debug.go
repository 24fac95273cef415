package debug

import (
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	once    sync.Once
	enabled bool
	logger  zerolog.Logger
)

// setup opens the log file named by OBSERVE_DEBUG, if any.
// Failures to open the file disable logging rather than erroring.
func setup() {
	path := os.Getenv("OBSERVE_DEBUG")
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	logger = zerolog.New(f).With().Timestamp().Logger()
	enabled = true
}

// Enabled reports whether debug logging is active for this process.
func Enabled() bool {
	once.Do(setup)
	return enabled
}

// Log writes a formatted debug message. No-op unless OBSERVE_DEBUG is set.
func Log(format string, args ...any) {
	once.Do(setup)
	if !enabled {
		return
	}
	logger.Debug().Msg(fmt.Sprintf(format, args...))
}

// Logger returns the underlying zerolog logger for callers that want
// structured fields. The returned logger discards everything when debug
// logging is disabled.
func Logger() *zerolog.Logger {
	once.Do(setup)
	if !enabled {
		l := zerolog.Nop()
		return &l
	}
	return &logger
}
