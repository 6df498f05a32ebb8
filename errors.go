package fakertc

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies the failures a PeerConnection reports.
type ErrorKind int

const (
	// InvalidState: the operation was attempted on a closed connection.
	InvalidState ErrorKind = iota + 1

	// InvalidSessionDescription: the description type is not allowed in the
	// current signaling state.
	InvalidSessionDescription

	// Internal: unreachable states and unimplemented operations.
	Internal
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidState:
		return "InvalidState"
	case InvalidSessionDescription:
		return "InvalidSessionDescription"
	case Internal:
		return "Internal"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the error type returned and delivered by PeerConnection.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String() + "Error"
	}
	return e.Kind.String() + "Error: " + e.Message
}

// Is matches any *Error of the same kind, so the sentinels below work with
// errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrInvalidState              = &Error{Kind: InvalidState}
	ErrInvalidSessionDescription = &Error{Kind: InvalidSessionDescription}
	ErrInternal                  = &Error{Kind: Internal}
)

// IsKind reports whether err, or an error it wraps, is an *Error of the given
// kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func makeError(kind ErrorKind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

func errClosed(op string) *Error {
	return makeError(InvalidState,
		`Failed to execute "%s()", the RTCPeerConnection signalingState is "closed"`, op)
}
