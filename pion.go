package fakertc

import (
	"github.com/pion/webrtc/v4"
)

// Conversions to and from pion's value types, for harnesses that pair a
// simulated peer with a real one.

// Pion converts d to a pion session description.
func (d *SessionDescription) Pion() webrtc.SessionDescription {
	return webrtc.SessionDescription{
		Type: webrtc.NewSDPType(string(d.Type)),
		SDP:  d.SDP,
	}
}

// SessionDescriptionFromPion converts a pion session description. The body is
// kept as is; an empty body gets the placeholder.
func SessionDescriptionFromPion(d webrtc.SessionDescription) *SessionDescription {
	return NewSessionDescription(SDPType(d.Type.String()), d.SDP)
}

// Pion converts c to pion's JSON candidate form. An empty mid is left nil.
func (c *IceCandidate) Pion() webrtc.ICECandidateInit {
	index := c.SDPMLineIndex
	init := webrtc.ICECandidateInit{
		Candidate:     c.Candidate,
		SDPMLineIndex: &index,
	}
	if c.SDPMid != "" {
		mid := c.SDPMid
		init.SDPMid = &mid
	}
	return init
}

// IceCandidateFromPion converts pion's JSON candidate form. Missing fields
// become zero values.
func IceCandidateFromPion(init webrtc.ICECandidateInit) *IceCandidate {
	c := &IceCandidate{Candidate: init.Candidate}
	if init.SDPMid != nil {
		c.SDPMid = *init.SDPMid
	}
	if init.SDPMLineIndex != nil {
		c.SDPMLineIndex = *init.SDPMLineIndex
	}
	return c
}

func (s SignalingState) Pion() webrtc.SignalingState {
	switch s {
	case SignalingStateStable:
		return webrtc.SignalingStateStable
	case SignalingStateHaveLocalOffer:
		return webrtc.SignalingStateHaveLocalOffer
	case SignalingStateHaveRemoteOffer:
		return webrtc.SignalingStateHaveRemoteOffer
	case SignalingStateHaveLocalPranswer:
		return webrtc.SignalingStateHaveLocalPranswer
	case SignalingStateHaveRemotePranswer:
		return webrtc.SignalingStateHaveRemotePranswer
	case SignalingStateClosed:
		return webrtc.SignalingStateClosed
	default:
		return webrtc.SignalingStateUnknown
	}
}

func (s IceGatheringState) Pion() webrtc.ICEGatheringState {
	return webrtc.NewICEGatheringState(s.String())
}

func (s IceConnectionState) Pion() webrtc.ICEConnectionState {
	return webrtc.NewICEConnectionState(s.String())
}
