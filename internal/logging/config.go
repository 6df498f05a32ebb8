package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

const envVar = "LOGLEVEL"

type tagLevel struct {
	tag   string
	level Level
}

var (
	tagMu     sync.RWMutex
	tagLevels []tagLevel
)

func init() {
	if err := Configure(os.Getenv(envVar)); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid %s: %s\n", envVar, err)
	}
}

// Configure applies comma-separated "tag=level" directives. A directive without
// "tag=" sets the default level. Loggers derived afterwards pick up the new
// levels; existing loggers keep theirs.
func Configure(directives string) error {
	var parsed []tagLevel
	def := defaultLevel
	for _, d := range strings.Split(directives, ",") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		v := strings.SplitN(d, "=", 2)
		level, err := parseLevel(v[len(v)-1])
		if err != nil {
			return fmt.Errorf("directive '%s': %v", d, err)
		}
		if len(v) == 1 {
			def = level
		} else {
			parsed = append(parsed, tagLevel{v[0], level})
		}
	}

	tagMu.Lock()
	defaultLevel = def
	tagLevels = append(tagLevels, parsed...)
	tagMu.Unlock()

	DefaultLogger.Level = determineLevel(DefaultLogger.Tag, def)
	return nil
}

// Later directives win over earlier ones for the same tag.
func determineLevel(tag string, fallback Level) Level {
	tagMu.RLock()
	defer tagMu.RUnlock()
	for i := len(tagLevels) - 1; i >= 0; i-- {
		if tagLevels[i].tag == tag {
			return tagLevels[i].level
		}
	}
	return fallback
}
