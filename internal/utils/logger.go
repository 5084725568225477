package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	DebugMode      bool
	CurrentLevel   LogLevel = LevelWarn
	ShowRaylibInfo bool
	ShowDebugUI    bool

	output = termenv.NewOutput(os.Stderr)
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseLogLevel maps a level name (case-insensitive) to a LogLevel.
func ParseLogLevel(name string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelWarn, fmt.Errorf("unknown log level %q", name)
}

// SetOutput redirects log output. Colors are only emitted when w is a terminal.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
	output = termenv.NewOutput(w)
}

func levelColor(level LogLevel) termenv.Color {
	switch level {
	case LevelDebug:
		return output.Color("6")
	case LevelInfo:
		return output.Color("4")
	case LevelWarn:
		return output.Color("3")
	default:
		return output.Color("1")
	}
}

func logMessage(level LogLevel, format string, v ...interface{}) {
	if level < CurrentLevel {
		return
	}
	emit(level, format, v...)
}

func emit(level LogLevel, format string, v ...interface{}) {
	tag := output.String("[" + level.String() + "]").Foreground(levelColor(level))
	log.Printf(tag.String()+" "+format, v...)
}

func Info(format string, v ...interface{})  { logMessage(LevelInfo, format, v...) }
func Debug(format string, v ...interface{}) { logMessage(LevelDebug, format, v...) }
func Warn(format string, v ...interface{})  { logMessage(LevelWarn, format, v...) }
func Error(format string, v ...interface{}) { logMessage(LevelError, format, v...) }

func RaylibLogCallback(level int, text string) {
	formatted := output.String("[RAYLIB]").Foreground(output.Color("5")).String() + " " + text
	switch level {
	case 1, 2: // LOG_TRACE, LOG_DEBUG
		if CurrentLevel <= LevelDebug {
			Debug("%s", formatted)
		}
	case 3: // LOG_INFO
		if ShowRaylibInfo || CurrentLevel <= LevelInfo {
			emit(LevelInfo, "%s", formatted)
		}
	case 4: // LOG_WARNING
		Warn("%s", formatted)
	case 5, 6: // LOG_ERROR, LOG_FATAL
		Error("%s", formatted)
	}
}
