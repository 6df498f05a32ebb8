package logging

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for s, want := range map[string]Level{
		"e": Error, "ERROR": Error, "w": Warn, "info": Info, "D": Debug, "trace": MaxLevel, "3": Level(3),
	} {
		got, err := ParseLevel(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
	_, err = ParseLevel("12")
	assert.Error(t, err)
}

func TestLevelLetter(t *testing.T) {
	assert.Equal(t, byte('E'), Error.letter())
	assert.Equal(t, byte('D'), Debug.letter())
	assert.Equal(t, byte('7'), Level(7).letter())
	assert.Equal(t, "Warn", Warn.String())
	assert.Equal(t, "5", Level(5).String())
}

func TestConfigureTagDirective(t *testing.T) {
	require.NoError(t, Configure("loggertest=debug"))
	l := DefaultLogger.WithTag("loggertest")
	assert.Equal(t, Debug, l.Level)
	assert.True(t, l.Enabled(Debug))

	require.NoError(t, Configure("loggertest=warn"))
	assert.Equal(t, Warn, DefaultLogger.WithTag("loggertest").Level)

	assert.Error(t, Configure("loggertest=bogus"))
}

func TestLogWritesTaggedLine(t *testing.T) {
	var out bytes.Buffer
	l := &Logger{Debug, "unit", &out, new(sync.Mutex)}

	l.Info("hello %s", "world")
	l.Trace(5, "dropped")

	line := out.String()
	assert.Contains(t, line, "I/unit")
	assert.Contains(t, line, "logger_test.go:")
	assert.True(t, strings.HasSuffix(line, "hello world\n"))
	assert.Equal(t, 1, strings.Count(line, "\n"))
}

func TestPanicfLogsThenPanics(t *testing.T) {
	var out bytes.Buffer
	l := &Logger{Info, "unit", &out, new(sync.Mutex)}

	assert.PanicsWithValue(t, "unreachable state 7", func() {
		l.Panicf("unreachable state %d", 7)
	})
	assert.Contains(t, out.String(), "unreachable state 7")
}

func TestPanicWithKeepsValue(t *testing.T) {
	var out bytes.Buffer
	l := &Logger{Info, "unit", &out, new(sync.Mutex)}

	v := errors.New("typed")
	assert.PanicsWithValue(t, v, func() {
		l.PanicWith(v, "unreachable state %d", 8)
	})
	assert.Contains(t, out.String(), "unreachable state 8")
}
