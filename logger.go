package sprite

import (
	"fmt"
	"log"
	"os"
)

// Logger receives load-time warnings (Printf) and the non-returning fatal
// path (Fatalf) used by the Must helpers. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
	Fatalf(format string, args ...any)
}

// DefaultLogger writes to stderr with standard timestamps.
func DefaultLogger() Logger {
	return log.New(os.Stderr, "", log.LstdFlags)
}

// quietLogger drops warnings but keeps the fatal path.
type quietLogger struct {
	Logger
}

func (quietLogger) Printf(string, ...any) {}

// Quiet wraps l so that warnings are discarded. Fatalf still reaches l.
func Quiet(l Logger) Logger {
	if _, ok := l.(quietLogger); ok {
		return l
	}
	return quietLogger{l}
}

// warner prefixes every warning with the sprite and the file declaring it.
type warner struct {
	log    Logger
	sprite string
	file   string
}

func (w warner) warnf(format string, args ...any) {
	if w.log == nil {
		return
	}
	w.log.Printf("sprite: %q (%s): %s", w.sprite, w.file, fmt.Sprintf(format, args...))
}
