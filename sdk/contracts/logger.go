package contracts

import (
	"fmt"
	"strings"
)

// LogLevel represents the severity level for logging.
type LogLevel int

const (
	// InfoLevel indicates informational messages that highlight the progress of the application.
	InfoLevel LogLevel = iota
	// DebugLevel indicates debug messages that are useful for developers to troubleshoot issues.
	DebugLevel
	// ErrorLevel indicates error messages that represent serious issues that need attention.
	ErrorLevel
	// WarnLevel indicates potentially harmful situations that should be monitored.
	WarnLevel
	// FatalLevel indicates very severe error events that will presumably lead the application to abort.
	FatalLevel
)

var levelNames = map[LogLevel]string{
	InfoLevel:  "info",
	DebugLevel: "debug",
	ErrorLevel: "error",
	WarnLevel:  "warn",
	FatalLevel: "fatal",
}

func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LogLevel(%d)", int(l))
}

// ParseLogLevel accepts the names printed by LogLevel.String, case
// insensitively, plus "warning". The empty string means InfoLevel.
func ParseLogLevel(s string) (LogLevel, error) {
	s = strings.ToLower(s)
	switch s {
	case "":
		return InfoLevel, nil
	case "warning":
		return WarnLevel, nil
	}
	for level, name := range levelNames {
		if name == s {
			return level, nil
		}
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// LogDestination specifies where the log messages should be directed.
type LogDestination string

const (
	// ConsoleLog directs log messages to the console output.
	ConsoleLog LogDestination = "console"
	// FileLog directs log messages to a file.
	FileLog LogDestination = "file"
)

// Field builds typed log fields.
type Field interface {
	Int(key string, val int) Field
	String(key string, val string) Field
	Error(key string, val error) Field
	Uint64(key string, val uint64) Field
	Uint8(key string, val uint8) Field
}

// Logger records messages at different severity levels.
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Debug(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	Field() Field

	SetLevel(level LogLevel)
	SetDestination(dest LogDestination, filePath ...string)
}
