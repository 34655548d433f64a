package mock

import "github.com/fwojciec/formpull"

var _ formpull.Logger = (*Logger)(nil)

// Logger is a mock implementation of formpull.Logger.
type Logger struct {
	ErrorFn func(msg string, args ...any)
}

func (l *Logger) Error(msg string, args ...any) {
	l.ErrorFn(msg, args...)
}
