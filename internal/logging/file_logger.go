package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// TimeLayout is the timestamp format of log file lines.
const TimeLayout = "2006-01-02 15:04:05,000"

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

// Options configures a FileLogger.
type Options struct {
	// Path is the log file. Its directory is created if missing and the
	// file is opened in append mode.
	Path string

	// Verbose enables Verbose() output on the console. The log file always
	// records verbose lines.
	Verbose bool

	// Console receives human-oriented output. Nil means os.Stderr.
	Console io.Writer
}

// FileLogger writes every message to an append-mode log file as
// "<time> - <LEVEL> - <message>" and mirrors it to the console. Error
// lines in the file carry a stack trace.
type FileLogger struct {
	zl    *zap.Logger
	sugar *zap.SugaredLogger
	file  *os.File
}

// NewFileLogger opens the log file and builds the logger.
// The caller must call Close when done.
func NewFileLogger(opts Options) (*FileLogger, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("log file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	consoleLevel := zapcore.InfoLevel
	if opts.Verbose {
		consoleLevel = zapcore.DebugLevel
	}

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(fileEncoderConfig()), zapcore.AddSync(file), zapcore.DebugLevel),
		messageOnlyCore{zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig(isTerminal(console))), zapcore.AddSync(console), consoleLevel)},
	)
	zl := zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel))

	return &FileLogger{zl: zl, sugar: zl.Sugar(), file: file}, nil
}

func fileEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		StacktraceKey:    "stacktrace",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout(TimeLayout),
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " - ",
	}
}

// consoleEncoderConfig mirrors the plain console output of the CLI: info
// lines are bare messages, verbose and error lines carry a tag.
func consoleEncoderConfig(color bool) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      consoleLevelEncoder(color),
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

func consoleLevelEncoder(color bool) zapcore.LevelEncoder {
	return func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		var tag, code string
		switch {
		case l == zapcore.DebugLevel:
			tag = "[VERBOSE]"
		case l == zapcore.WarnLevel:
			tag, code = "[WARN]", ansiYellow
		case l >= zapcore.ErrorLevel:
			tag, code = "[ERROR]", ansiRed
		default:
			return
		}
		if color && code != "" {
			tag = code + tag + ansiReset
		}
		enc.AppendString(tag)
	}
}

// messageOnlyCore drops structured fields, so console lines stay bare
// messages while the file keeps run_id and friends.
type messageOnlyCore struct {
	zapcore.Core
}

func (c messageOnlyCore) With([]zapcore.Field) zapcore.Core { return c }

func (c messageOnlyCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c messageOnlyCore) Write(ent zapcore.Entry, _ []zapcore.Field) error {
	return c.Core.Write(ent, nil)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// With returns a logger that attaches key=value to every line it writes.
// The returned logger shares the file; only the original must be closed.
func (l *FileLogger) With(key string, value interface{}) *FileLogger {
	zl := l.zl.With(zap.Any(key, value))
	return &FileLogger{zl: zl, sugar: zl.Sugar()}
}

// Verbose logs detailed diagnostic information.
func (l *FileLogger) Verbose(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info logs informational messages about normal operations.
func (l *FileLogger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Error logs error messages with a stack trace in the log file.
func (l *FileLogger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Close flushes buffered output and closes the log file.
func (l *FileLogger) Close() error {
	_ = l.zl.Sync()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
