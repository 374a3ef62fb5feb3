package logger

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Level defines log levels.
type Level int8

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
	PanicLevel
	NoLevel
	Disabled
	TraceLevel Level = -1
)

func (l Level) String() string {
	switch l {
	case TraceLevel:
		return zerolog.LevelTraceValue
	case DebugLevel:
		return zerolog.LevelDebugValue
	case InfoLevel:
		return zerolog.LevelInfoValue
	case WarnLevel:
		return zerolog.LevelWarnValue
	case ErrorLevel:
		return zerolog.LevelErrorValue
	case FatalLevel:
		return zerolog.LevelFatalValue
	case PanicLevel:
		return zerolog.LevelPanicValue
	case Disabled:
		return "disabled"
	case NoLevel:
		return ""
	}
	return strconv.Itoa(int(l))
}

// Context field names shared across the coordinator.
const (
	ConnField        = "cid"
	RoomField        = "rid"
	ParticipantField = "part"
	ProcessField     = "pid"
	DirectionField   = "d"
	TagField         = "s"
)

var pid = os.Getpid()

type Logger struct {
	logger *zerolog.Logger
}

// New makes a JSON logger writing into stderr.
func New(isDebug bool) *Logger {
	setLevel(isDebug)
	return NewWriter(os.Stderr)
}

// NewConsole makes a human-readable logger.
// The tag param is printed in front of every message.
func NewConsole(isDebug bool, tag string, noColor bool) *Logger {
	setLevel(isDebug)
	zerolog.TimeFieldFormat = time.RFC3339Nano
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05.0000", NoColor: noColor,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			ProcessField,
			zerolog.LevelFieldName,
			TagField,
			ConnField,
			DirectionField,
			zerolog.MessageFieldName,
		},
		FieldsExclude: []string{TagField, ConnField, DirectionField, ProcessField},
	}
	if output.NoColor {
		output.FormatMessage = func(i any) string {
			if i == nil {
				return ""
			}
			return fmt.Sprintf("%v", i)
		}
	}
	logger := zerolog.New(output).With().
		Str(ProcessField, fmt.Sprintf("%4x", pid)).
		Str(TagField, tag).
		Str(ConnField, " ").
		Str(DirectionField, " ").
		Timestamp().Logger()
	return &Logger{logger: &logger}
}

// NewWriter makes a JSON logger into w.
func NewWriter(w io.Writer) *Logger {
	logger := zerolog.New(w).With().Timestamp().Int(ProcessField, pid).Logger()
	return &Logger{logger: &logger}
}

// Nop returns a logger that discards everything.
func Nop() *Logger { l := zerolog.Nop(); return &Logger{logger: &l} }

func Default() *Logger { return &Logger{logger: &log.Logger} }

func setLevel(isDebug bool) {
	lvl := zerolog.InfoLevel
	if isDebug {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// GetLevel returns the current Level of l.
func (l *Logger) GetLevel() Level { return Level(l.logger.GetLevel()) }

// With creates a child logger with the field added to its context.
func (l *Logger) With() zerolog.Context { return l.logger.With() }

// Extend adds some additional context to the existing logger.
func (l *Logger) Extend(ctx zerolog.Context) *Logger {
	logger := ctx.Logger()
	return &Logger{logger: &logger}
}

// Debug starts a new message with debug level.
// You must call Msg on the returned event in order to send the event.
func (l *Logger) Debug() *zerolog.Event { return l.logger.Debug() }

// Info starts a new message with info level.
func (l *Logger) Info() *zerolog.Event { return l.logger.Info() }

// Warn starts a new message with warn level.
func (l *Logger) Warn() *zerolog.Event { return l.logger.Warn() }

// Error starts a new message with error level.
func (l *Logger) Error() *zerolog.Event { return l.logger.Error() }
