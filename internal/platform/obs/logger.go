package obs

import (
	"io"
	"os"

	"github.com/go-kit/log"
)

// Logger is the process-wide logfmt logger.
var Logger log.Logger

func init() {
	Logger = NewLogger(os.Stderr)
}

// NewLogger returns a timestamped logfmt logger writing to w.
func NewLogger(w io.Writer) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	return log.With(logger, "ts", log.DefaultTimestampUTC)
}

// SetOutput redirects the process-wide logger, mostly for tests.
func SetOutput(w io.Writer) {
	Logger = NewLogger(w)
}
