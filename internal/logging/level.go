package logging

import (
	"errors"
	"strconv"
	"strings"
)

// Level is a logging verbosity. Higher values are more verbose.
type Level int

const (
	Error Level = iota - 2
	Warn
	Info
	Debug

	// Numeric trace levels go up to 9.
	MaxLevel Level = 9
)

// Changed by LOGLEVEL or Configure.
var defaultLevel = Info

// ParseLevel accepts level names, their first letter, or a number in
// [Error, MaxLevel].
func ParseLevel(s string) (Level, error) {
	return parseLevel(s)
}

func parseLevel(s string) (level Level, err error) {
	switch strings.ToUpper(s) {
	case "E", "ERROR":
		return Error, nil
	case "W", "WARN":
		return Warn, nil
	case "I", "INFO":
		return Info, nil
	case "D", "DEBUG":
		return Debug, nil
	case "T", "TRACE":
		return MaxLevel, nil
	}

	n, ierr := strconv.Atoi(s)
	if ierr != nil {
		return 0, errors.New("invalid logging level: " + s)
	}
	level = Level(n)
	if level < Error || level > MaxLevel {
		return 0, errors.New("numeric level out of range: " + s)
	}
	return level, nil
}

func (l Level) String() string {
	switch l {
	case Error:
		return "Error"
	case Warn:
		return "Warn"
	case Info:
		return "Info"
	case Debug:
		return "Debug"
	default:
		return strconv.Itoa(int(l))
	}
}

func (l Level) letter() byte {
	if l <= Debug {
		return "EWID"[l-Error]
	}
	return byte('0' + l)
}
