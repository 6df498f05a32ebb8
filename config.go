//////////////////////////////////////////////////////////////////////////////
//
// Configuration for PeerConnection, and construction options
//
// Copyright 2019 Lanikai Labs. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package fakertc

import (
	"github.com/lanikai/fakertc/internal/sched"
)

// Configuration mirrors the W3C RTCConfiguration dictionary. A PeerConnection
// stores it as given and never reads it.
type Configuration struct {
	IceServers           []IceServer `json:"iceServers,omitempty"`
	IceTransportPolicy   string      `json:"iceTransportPolicy,omitempty"`
	BundlePolicy         string      `json:"bundlePolicy,omitempty"`
	RtcpMuxPolicy        string      `json:"rtcpMuxPolicy,omitempty"`
	IceCandidatePoolSize uint8       `json:"iceCandidatePoolSize,omitempty"`

	// PEM-encoded certificates
	Certificates []string `json:"certificates,omitempty"`
}

type IceServer struct {
	URLs       []string `json:"urls"`
	Username   string   `json:"username,omitempty"`
	Credential string   `json:"credential,omitempty"`
}

type options struct {
	scheduler sched.Scheduler
	logTag    string
}

// An Option adjusts how a PeerConnection runs, as opposed to what it
// negotiates.
type Option func(*options)

// WithScheduler runs the connection's continuations and event delivery on s
// instead of the shared default loop.
func WithScheduler(s sched.Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithLogTag sets the logging tag of the connection, so its level can be set
// separately through LOGLEVEL.
func WithLogTag(tag string) Option {
	return func(o *options) {
		o.logTag = tag
	}
}
