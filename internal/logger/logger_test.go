package logger

import (
	"testing"
)

func TestInitDoesNotPanic(t *testing.T) {
	Init()

	Info("info message")
	Infof("formatted %s", "info")
	Error("error message", "key", "value")
	Errorf("formatted %v", 42)
	Debug("debug message")
	Debugf("formatted %d", 7)
}
