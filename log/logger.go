package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

type Level logging.Level

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

// The logger format
var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

// The internal leveled logger backend
var leveledBackend logging.LeveledBackend

// The logger interface
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// Create a new named logger.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// Override the backend output sink. The current verbosity is preserved.
func SetSink(sink io.Writer) {
	level := logging.NOTICE
	if leveledBackend != nil {
		level = leveledBackend.GetLevel("")
	}

	backend := logging.NewLogBackend(sink, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(backendWithFormatter)
	leveledBackend.SetLevel(level, "")
	logging.SetBackend(leveledBackend)
}

// Set logger verbosity for all modules.
func SetLevel(level Level) {
	leveledBackend.SetLevel(level.backendLevel(), "")
}

// Set logger verbosity for a single module (e.g. "film").
func SetModuleLevel(module string, level Level) {
	leveledBackend.SetLevel(level.backendLevel(), module)
}

// Check whether messages at the given level are emitted for a module.
func IsEnabledFor(module string, level Level) bool {
	return leveledBackend.IsEnabledFor(level.backendLevel(), module)
}

// Parse a level name as it appears in scene description files.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "notice", "":
		return Notice, nil
	case "warning", "warn":
		return Warning, nil
	case "error":
		return Error, nil
	}
	return Notice, fmt.Errorf("log: unknown level %q", name)
}

// Implements Stringer.
func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Notice:
		return "notice"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

func (l Level) backendLevel() logging.Level {
	switch l {
	case Debug:
		return logging.DEBUG
	case Info:
		return logging.INFO
	case Warning:
		return logging.WARNING
	case Error:
		return logging.ERROR
	}
	return logging.NOTICE
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}
