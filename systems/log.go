package systems

import "go.uber.org/zap"

var logger = zap.NewNop()

// SetLogger replaces the logger used by every system.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

func Logger() *zap.Logger { return logger }
