package signaling

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/lanikai/fakertc"
)

const DefaultPort = 8000

// Config describes the signaling server and the peer connections it creates.
type Config struct {
	// HTTP port on which to listen.
	Port int `json:"port"`

	// Passed to every PeerConnection the server creates.
	RTC fakertc.Configuration `json:"rtcConfiguration"`
}

// LoadConfig loads the configuration from a JSON file. Fields absent from the
// file keep their defaults.
func LoadConfig(filePath string) (*Config, error) {
	c := &Config{Port: DefaultPort}

	d, err := os.ReadFile(filePath)
	if err != nil {
		return c, errors.Wrap(err, "signaling config")
	}
	if err := json.Unmarshal(d, c); err != nil {
		return c, errors.Wrapf(err, "signaling config %s", filePath)
	}
	return c, nil
}
