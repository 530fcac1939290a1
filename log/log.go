// A simple logging interface that wraps the standard library 'log' package to
// add a debug level. Parse results are written to stdout so shell scripts can
// eval them; diagnostics go to stderr to keep that stream clean. Note, this
// is not a high-performance library. If you need that, use something like
// https://pkg.go.dev/github.com/golang/glog.
package log

import (
	"fmt"
	stdLog "log"
	"os"
)

type Logger struct {
	debug bool
}

func New(debug bool) Logger {
	return Logger{debug}
}

// For output the calling script consumes - wraps fmt. Always adds a trailing
// newline.
func (l Logger) Infof(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

// For diagnostics users should see without polluting stdout.
func (l Logger) Errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// For stuff developers care about - wraps log and only logs if debug is true.
func (l Logger) Debugf(format string, args ...any) {
	if l.debug {
		stdLog.Printf(format, args...)
	}
}
