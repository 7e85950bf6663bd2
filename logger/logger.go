package logger

import (
	"go.uber.org/zap"
)

var Log *zap.SugaredLogger

// Init builds the process-wide logger. Must be called before anything
// else logs.
func Init() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}
	Log = logger.Sugar()
}

// Sync flushes buffered entries. Called once on shutdown.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
