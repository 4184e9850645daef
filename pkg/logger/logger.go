package logger

import (
	"go.uber.org/zap"
)

// New builds the process-wide logger. Development mode uses the
// human-readable console encoder instead of JSON.
func New(development bool) *zap.Logger {
	var l *zap.Logger
	var err error
	if development {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return l
}
