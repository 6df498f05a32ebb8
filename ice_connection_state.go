package fakertc

// IceConnectionState describes connectivity to the remote peer.
type IceConnectionState int

const (
	IceConnectionStateNew IceConnectionState = iota + 1
	IceConnectionStateChecking
	IceConnectionStateConnected
	IceConnectionStateCompleted
	IceConnectionStateFailed
	IceConnectionStateDisconnected
	IceConnectionStateClosed
)

const (
	iceConnectionStateNewStr          = "new"
	iceConnectionStateCheckingStr     = "checking"
	iceConnectionStateConnectedStr    = "connected"
	iceConnectionStateCompletedStr    = "completed"
	iceConnectionStateFailedStr       = "failed"
	iceConnectionStateDisconnectedStr = "disconnected"
	iceConnectionStateClosedStr       = "closed"
)

func NewIceConnectionState(raw string) IceConnectionState {
	switch raw {
	case iceConnectionStateNewStr:
		return IceConnectionStateNew
	case iceConnectionStateCheckingStr:
		return IceConnectionStateChecking
	case iceConnectionStateConnectedStr:
		return IceConnectionStateConnected
	case iceConnectionStateCompletedStr:
		return IceConnectionStateCompleted
	case iceConnectionStateFailedStr:
		return IceConnectionStateFailed
	case iceConnectionStateDisconnectedStr:
		return IceConnectionStateDisconnected
	case iceConnectionStateClosedStr:
		return IceConnectionStateClosed
	default:
		return 0
	}
}

func (s IceConnectionState) valid() bool {
	return s >= IceConnectionStateNew && s <= IceConnectionStateClosed
}

func (s IceConnectionState) String() string {
	switch s {
	case IceConnectionStateNew:
		return iceConnectionStateNewStr
	case IceConnectionStateChecking:
		return iceConnectionStateCheckingStr
	case IceConnectionStateConnected:
		return iceConnectionStateConnectedStr
	case IceConnectionStateCompleted:
		return iceConnectionStateCompletedStr
	case IceConnectionStateFailed:
		return iceConnectionStateFailedStr
	case IceConnectionStateDisconnected:
		return iceConnectionStateDisconnectedStr
	case IceConnectionStateClosed:
		return iceConnectionStateClosedStr
	default:
		return "unknown"
	}
}
