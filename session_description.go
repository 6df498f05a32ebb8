package fakertc

import (
	"math/rand"
	"strconv"

	"github.com/lanikai/fakertc/internal/sdp"
)

// SDPType is the type of a session description.
type SDPType string

const (
	SDPTypeOffer    SDPType = "offer"
	SDPTypePranswer SDPType = "pranswer"
	SDPTypeAnswer   SDPType = "answer"
	SDPTypeRollback SDPType = "rollback"
)

// Placeholder body for descriptions created without SDP. The session id is
// chosen once per process.
var emptySDP = func() string {
	s := sdp.Empty(strconv.Itoa(100000000 + rand.Intn(900000000)))
	return s.String()
}()

// SessionDescription is an SDP offer or answer. Treat it as immutable once
// created.
type SessionDescription struct {
	Type SDPType `json:"type"`
	SDP  string  `json:"sdp"`
}

// NewSessionDescription creates a description of the given type. An empty body
// is replaced by a minimal SDP session with no media.
func NewSessionDescription(t SDPType, body string) *SessionDescription {
	if body == "" {
		body = emptySDP
	}
	return &SessionDescription{Type: t, SDP: body}
}

func (d *SessionDescription) String() string {
	if d == nil {
		return "<nil>"
	}
	return string(d.Type)
}
