package logger

import (
	"io"
	"log"
	"os"
	"strings"
)

type LogLevel int

const (
	ERROR LogLevel = iota
	WARN
	INFO
	DEBUG
	TRACE
)

var (
	Info  = log.New(io.Discard, "INFO:  ", log.LstdFlags)
	Warn  = log.New(os.Stdout, "WARN:  ", log.LstdFlags)
	Error = log.New(os.Stderr, "ERROR: ", log.LstdFlags)
	Debug = log.New(io.Discard, "DEBUG: ", log.LstdFlags)
	Trace = log.New(io.Discard, "TRACE: ", log.LstdFlags)

	currentLevel = WARN
)

func StringToLogLevel(value string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return ERROR
	case "warn":
		return WARN
	case "info":
		return INFO
	case "debug":
		return DEBUG
	case "trace":
		return TRACE
	}
	log.Printf("Invalid log level: '%s'. Returning INFO", value)
	return INFO
}

func (s LogLevel) String() string {
	switch s {
	case ERROR:
		return "ERROR"
	case WARN:
		return "WARN"
	case INFO:
		return "INFO"
	case DEBUG:
		return "DEBUG"
	case TRACE:
		return "TRACE"
	}
	return "UNKNOWN"
}

func IsLogLevel(level LogLevel) bool {
	return currentLevel >= level
}

// Initialize sets up loggers writing errors to stderr and everything else to stdout.
func Initialize(logLevel LogLevel) {
	InitializeWithWriters(logLevel, os.Stdout, os.Stderr)
}

func InitializeWithWriters(logLevel LogLevel, out io.Writer, errOut io.Writer) {
	currentLevel = logLevel

	var errorWriter = io.Discard
	var warnWriter = io.Discard
	var infoWriter = io.Discard
	var debugWriter = io.Discard
	var traceWriter = io.Discard
	if logLevel >= ERROR {
		errorWriter = errOut
	}
	if logLevel >= WARN {
		warnWriter = out
	}
	if logLevel >= INFO {
		infoWriter = out
	}
	if logLevel >= DEBUG {
		debugWriter = out
	}
	if logLevel >= TRACE {
		traceWriter = out
	}

	Error = log.New(errorWriter, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	Warn = log.New(warnWriter, "WARN:  ", log.Ldate|log.Ltime|log.Lshortfile)
	Info = log.New(infoWriter, "INFO:  ", log.Ldate|log.Ltime|log.Lshortfile)
	Debug = log.New(debugWriter, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	Trace = log.New(traceWriter, "TRACE: ", log.Ldate|log.Ltime|log.Lshortfile)
}
