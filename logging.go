package swiftmt

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var pkgLogger atomic.Pointer[zap.Logger]

func init() {
	pkgLogger.Store(zap.NewNop())
}

// SetLogger replaces the logger used for soft parse warnings. A nil logger
// silences the package again.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	pkgLogger.Store(l)
}

// L returns the package logger.
func L() *zap.Logger {
	return pkgLogger.Load()
}
