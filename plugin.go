package fakertc

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Implementation is the set of constructors a runtime WebRTC selector uses to
// drive this package in place of a native implementation.
type Implementation struct {
	NewPeerConnection     func(config Configuration, opts ...Option) *PeerConnection
	NewSessionDescription func(t SDPType, sdp string) *SessionDescription
	NewIceCandidate       func(candidate, sdpMid string, sdpMLineIndex uint16) *IceCandidate

	// Whether an established session can be negotiated again.
	CanRenegotiate bool
}

// Interface advertises this simulation to implementation selectors.
var Interface = Implementation{
	NewPeerConnection:     NewPeerConnection,
	NewSessionDescription: NewSessionDescription,
	NewIceCandidate:       NewIceCandidate,
	CanRenegotiate:        true,
}

var (
	nativeMu sync.Mutex
	natives  = map[string]bool{}
)

// RegisterNative records that the host provides a native implementation under
// the given name, which makes the simulation unnecessary.
func RegisterNative(name string) error {
	if name == "" {
		return errors.New("native implementation name is empty")
	}

	nativeMu.Lock()
	defer nativeMu.Unlock()
	if natives[name] {
		return errors.Errorf("native implementation '%s' already registered", name)
	}
	natives[name] = true
	logger().Debug("Registered native implementation %s", name)
	return nil
}

// UnregisterNative removes a name added by RegisterNative.
func UnregisterNative(name string) {
	nativeMu.Lock()
	defer nativeMu.Unlock()
	delete(natives, name)
}

// Natives lists the registered native implementations, sorted.
func Natives() []string {
	nativeMu.Lock()
	defer nativeMu.Unlock()
	var names []string
	for name := range natives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRequired reports whether the simulation is needed, i.e. no native
// implementation has been registered.
func IsRequired() bool {
	nativeMu.Lock()
	defer nativeMu.Unlock()
	return len(natives) == 0
}

// IsInstalled always reports true: the simulation needs nothing from the host.
func IsInstalled() bool {
	return true
}
