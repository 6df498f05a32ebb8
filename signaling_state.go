package fakertc

// SignalingState is the state of the offer/answer exchange.
type SignalingState int

const (
	// SignalingStateStable: no exchange in progress. Initial state.
	SignalingStateStable SignalingState = iota + 1

	// SignalingStateHaveLocalOffer: a local offer has been applied.
	SignalingStateHaveLocalOffer

	// SignalingStateHaveRemoteOffer: a remote offer has been applied.
	SignalingStateHaveRemoteOffer

	// SignalingStateHaveLocalPranswer: a remote offer and a local provisional
	// answer have been applied.
	SignalingStateHaveLocalPranswer

	// SignalingStateHaveRemotePranswer: a local offer and a remote provisional
	// answer have been applied.
	SignalingStateHaveRemotePranswer

	// SignalingStateClosed: the connection has been closed. Terminal.
	SignalingStateClosed
)

const (
	signalingStateStableStr             = "stable"
	signalingStateHaveLocalOfferStr     = "have-local-offer"
	signalingStateHaveRemoteOfferStr    = "have-remote-offer"
	signalingStateHaveLocalPranswerStr  = "have-local-pranswer"
	signalingStateHaveRemotePranswerStr = "have-remote-pranswer"
	signalingStateClosedStr             = "closed"
)

// NewSignalingState parses the W3C name of a signaling state. Unknown names
// yield an invalid state.
func NewSignalingState(raw string) SignalingState {
	switch raw {
	case signalingStateStableStr:
		return SignalingStateStable
	case signalingStateHaveLocalOfferStr:
		return SignalingStateHaveLocalOffer
	case signalingStateHaveRemoteOfferStr:
		return SignalingStateHaveRemoteOffer
	case signalingStateHaveLocalPranswerStr:
		return SignalingStateHaveLocalPranswer
	case signalingStateHaveRemotePranswerStr:
		return SignalingStateHaveRemotePranswer
	case signalingStateClosedStr:
		return SignalingStateClosed
	default:
		return 0
	}
}

func (s SignalingState) valid() bool {
	return s >= SignalingStateStable && s <= SignalingStateClosed
}

func (s SignalingState) String() string {
	switch s {
	case SignalingStateStable:
		return signalingStateStableStr
	case SignalingStateHaveLocalOffer:
		return signalingStateHaveLocalOfferStr
	case SignalingStateHaveRemoteOffer:
		return signalingStateHaveRemoteOfferStr
	case SignalingStateHaveLocalPranswer:
		return signalingStateHaveLocalPranswerStr
	case SignalingStateHaveRemotePranswer:
		return signalingStateHaveRemotePranswerStr
	case SignalingStateClosed:
		return signalingStateClosedStr
	default:
		return "unknown"
	}
}
