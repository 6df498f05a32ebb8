package signaling

// A signaling Client accepts remote peers and runs a call session for each.
type Client interface {
	// Listen accepts connections until an error occurs or until the client is
	// explicitly shut down.
	Listen() error

	// Shutdown interrupts the client and closes every open session.
	Shutdown() error
}

var _ Client = (*Server)(nil)
