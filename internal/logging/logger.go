package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

type Logger struct {
	// Messages more verbose than this level are dropped.
	Level

	// Tag used to filter and classify log messages.
	Tag string

	out io.Writer

	// Shared by all derived loggers so lines from different goroutines don't
	// interleave.
	mu *sync.Mutex
}

// Write to stderr by default.
var DefaultLogger = &Logger{defaultLevel, "", os.Stderr, new(sync.Mutex)}

// SetDestination overrides the writer for this logger. Loggers derived
// afterwards inherit it.
func (log *Logger) SetDestination(out io.Writer) {
	log.mu.Lock()
	log.out = out
	log.mu.Unlock()
}

// WithTag derives a logger with the given tag, whose level is looked up from the
// configured tag directives.
func (log *Logger) WithTag(tag string) *Logger {
	return &Logger{determineLevel(tag, log.Level), tag, log.out, log.mu}
}

// WithDefaultLevel derives a logger whose level is the given one unless a tag
// directive overrides it.
func (log *Logger) WithDefaultLevel(level Level) *Logger {
	return &Logger{determineLevel(log.Tag, level), log.Tag, log.out, log.mu}
}

// Enabled reports whether messages at the given level would be written.
func (log *Logger) Enabled(level Level) bool {
	return level <= log.Level
}

type buffer []byte

func (b *buffer) Write(p []byte) (int, error) {
	*b = append(*b, p...)
	return len(p), nil
}

func (b *buffer) writeByte(c byte) {
	*b = append(*b, c)
}

var bufPool = sync.Pool{
	New: func() interface{} {
		return make(buffer, 0, 256)
	},
}

// Log a message at the given level, annotated with the file and line number
// 'calldepth' frames up the stack.
func (log *Logger) Log(level Level, calldepth int, format string, a ...interface{}) {
	if level > log.Level {
		return
	}

	buf := bufPool.Get().(buffer)
	defer func() { bufPool.Put(buf[:0]) }()

	headerColor.Fprint(&buf, time.Now().Format(timestampFormat))
	level.color().Fprintf(&buf, " %c/%s", level.letter(), log.Tag)

	_, file, line, ok := runtime.Caller(calldepth + 1)
	if !ok {
		file = "?"
	}
	fmt.Fprintf(&buf, "[%s:%d] ", filepath.Base(file), line)

	fmt.Fprintf(&buf, format, a...)
	if n := len(format); n == 0 || format[n-1] != '\n' {
		buf.writeByte('\n')
	}

	log.mu.Lock()
	_, err := log.out.Write(buf)
	log.mu.Unlock()
	if err != nil {
		panic(fmt.Sprintf("failed to log to %v: %v", log.out, err))
	}
}

func (log *Logger) Error(format string, a ...interface{}) {
	log.Log(Error, 1, format, a...)
}

func (log *Logger) Warn(format string, a ...interface{}) {
	log.Log(Warn, 1, format, a...)
}

func (log *Logger) Info(format string, a ...interface{}) {
	log.Log(Info, 1, format, a...)
}

func (log *Logger) Debug(format string, a ...interface{}) {
	log.Log(Debug, 1, format, a...)
}

func (log *Logger) Trace(n int, format string, a ...interface{}) {
	log.Log(Level(n), 1, format, a...)
}

func (log *Logger) Panicf(format string, a ...interface{}) {
	s := fmt.Sprintf(format, a...)
	log.Log(Error, 1, "%s", s)
	panic(s)
}

// PanicWith logs at Error level and panics with v instead of the message, so
// callers can recover a typed value. Use for states that should be
// unreachable.
func (log *Logger) PanicWith(v interface{}, format string, a ...interface{}) {
	log.Log(Error, 1, format, a...)
	panic(v)
}
