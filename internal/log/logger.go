// Package log provides the global leveled logger shared by the lura commands
// and libraries. Messages go to stderr so command output stays pipeable.

package log

import (
	"fmt"
	"os"
	"sync"
	"time"
)

type Level int

const (
	LevelNone    Level = iota // Disables logging.
	LevelError                // Failures that abort an operation.
	LevelWarning              // Recoverable conditions, such as link drops.
	LevelInfo                 // Session lifecycle events.
	LevelDebug                // Per-notification and per-request detail.
)

var labels = map[Level]string{
	LevelDebug:   "[debug]",
	LevelInfo:    "[info ]",
	LevelWarning: "[warn ]",
	LevelError:   "[error]",
}

var mu sync.Mutex
var minLevel Level

func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = level
}

func currentLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return minLevel
}

func emit(level Level, format string, a ...interface{}) {
	if level <= currentLevel() {
		msg := fmt.Sprintf("%s %s ", time.Now().Format(time.RFC3339), labels[level])
		msg += fmt.Sprintf(format, a...)
		fmt.Fprintln(os.Stderr, msg)
	}
}

func Debug(format string, a ...interface{}) {
	emit(LevelDebug, format, a...)
}
func Info(format string, a ...interface{}) {
	emit(LevelInfo, format, a...)
}
func Warning(format string, a ...interface{}) {
	emit(LevelWarning, format, a...)
}
func Error(format string, a ...interface{}) {
	emit(LevelError, format, a...)
}
