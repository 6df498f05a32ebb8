//////////////////////////////////////////////////////////////////////////////
//
// PeerConnection simulates the signaling and connectivity state machine of a
// W3C RTCPeerConnection, without any network transport.
//
// Copyright (c) 2019 Lanikai Labs. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package fakertc

import (
	"context"
	"sync"

	"github.com/lanikai/fakertc/internal/logging"
	"github.com/lanikai/fakertc/internal/sched"
)

const logTag = "rtc"

// logger is derived on use so levels configured after init apply.
func logger() *logging.Logger {
	return logging.DefaultLogger.WithTag(logTag)
}

// PeerConnection negotiates like a real peer connection: descriptions move the
// signaling state, ICE gathering completes on its own, and once both
// descriptions are in place the ICE connection runs through checking,
// connected and completed. Nothing is sent anywhere.
//
// Operations validate synchronously and complete on the connection's
// scheduler. Callbacks and event handlers run on the scheduler, never inside
// the call that caused them, and may call back into the connection.
type PeerConnection struct {
	EventTarget

	// Guards everything below.
	mu sync.Mutex

	config Configuration

	localDescription  *SessionDescription
	remoteDescription *SessionDescription

	signalingState     SignalingState
	iceGatheringState  IceGatheringState
	iceConnectionState IceConnectionState

	scheduler sched.Scheduler
	log       *logging.Logger

	// Stops watching the context given to NewPeerConnectionWithContext.
	stopWatch func() bool
}

// NewPeerConnection creates a connection in the stable state and starts ICE
// gathering.
func NewPeerConnection(config Configuration, opts ...Option) *PeerConnection {
	o := options{logTag: logTag}
	for _, opt := range opts {
		opt(&o)
	}
	if o.scheduler == nil {
		o.scheduler = sched.Default()
	}

	pc := &PeerConnection{
		config:             config,
		signalingState:     SignalingStateStable,
		iceGatheringState:  IceGatheringStateNew,
		iceConnectionState: IceConnectionStateNew,
		scheduler:          o.scheduler,

		// Derived per connection to pick up levels configured after init.
		log: logging.DefaultLogger.WithTag(o.logTag),
	}
	pc.EventTarget.init(pc, o.scheduler)

	pc.log.Debug("new()")
	pc.runIceGatherer()
	return pc
}

// NewPeerConnectionWithContext creates a connection that is closed when ctx is
// done.
func NewPeerConnectionWithContext(ctx context.Context, config Configuration, opts ...Option) *PeerConnection {
	pc := NewPeerConnection(config, opts...)

	pc.mu.Lock()
	pc.stopWatch = context.AfterFunc(ctx, pc.Close)
	pc.mu.Unlock()

	return pc
}

// Configuration returns the configuration the connection was created with.
func (pc *PeerConnection) Configuration() Configuration {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.config
}

func (pc *PeerConnection) SignalingState() SignalingState {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.signalingState
}

func (pc *PeerConnection) IceGatheringState() IceGatheringState {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.iceGatheringState
}

func (pc *PeerConnection) IceConnectionState() IceConnectionState {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.iceConnectionState
}

func (pc *PeerConnection) LocalDescription() *SessionDescription {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.localDescription
}

func (pc *PeerConnection) RemoteDescription() *SessionDescription {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.remoteDescription
}

// OnSignalingStateChange sets the default signalingstatechange handler.
func (pc *PeerConnection) OnSignalingStateChange(fn func(*Event)) {
	pc.SetEventHandler(EventSignalingStateChange, fn)
}

// OnIceGatheringStateChange sets the default icegatheringstatechange handler.
func (pc *PeerConnection) OnIceGatheringStateChange(fn func(*Event)) {
	pc.SetEventHandler(EventIceGatheringStateChange, fn)
}

// OnIceConnectionStateChange sets the default iceconnectionstatechange handler.
func (pc *PeerConnection) OnIceConnectionStateChange(fn func(*Event)) {
	pc.SetEventHandler(EventIceConnectionStateChange, fn)
}

// OnIceCandidate sets the default icecandidate handler. A nil e.Candidate
// signals the end of candidates.
func (pc *PeerConnection) OnIceCandidate(fn func(*Event)) {
	pc.SetEventHandler(EventIceCandidate, fn)
}

// CreateOffer passes a new offer to onSuccess. The offer is not applied.
func (pc *PeerConnection) CreateOffer(onSuccess func(*SessionDescription), onFailure func(error)) error {
	return pc.createDescription("createOffer", SDPTypeOffer, onSuccess)
}

// CreateAnswer passes a new answer to onSuccess. The answer is not applied.
func (pc *PeerConnection) CreateAnswer(onSuccess func(*SessionDescription), onFailure func(error)) error {
	return pc.createDescription("createAnswer", SDPTypeAnswer, onSuccess)
}

func (pc *PeerConnection) createDescription(op string, t SDPType, onSuccess func(*SessionDescription)) error {
	pc.log.Debug("%s()", op)

	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.signalingState == SignalingStateClosed {
		return errClosed(op)
	}

	pc.scheduler.Schedule(func() {
		if pc.isClosed() {
			return
		}
		if onSuccess != nil {
			onSuccess(NewSessionDescription(t, ""))
		}
	})
	return nil
}

// A side of the offer/answer exchange, named by the states a description from
// that side leads to.
type side struct {
	op           string
	remote       bool
	haveOffer    SignalingState
	havePranswer SignalingState

	// States in which this side is expected to answer.
	peerOffer    SignalingState
	peerPranswer SignalingState
}

var (
	localSide = side{
		op:           "setLocalDescription",
		haveOffer:    SignalingStateHaveLocalOffer,
		havePranswer: SignalingStateHaveLocalPranswer,
		peerOffer:    SignalingStateHaveRemoteOffer,
		peerPranswer: SignalingStateHaveRemotePranswer,
	}
	remoteSide = side{
		op:           "setRemoteDescription",
		remote:       true,
		haveOffer:    SignalingStateHaveRemoteOffer,
		havePranswer: SignalingStateHaveRemotePranswer,
		peerOffer:    SignalingStateHaveLocalOffer,
		peerPranswer: SignalingStateHaveLocalPranswer,
	}
)

// SetLocalDescription stores d as the local description immediately, then
// applies it to the signaling state. onFailure receives an
// InvalidSessionDescription error if d's type is not allowed in the current
// state.
func (pc *PeerConnection) SetLocalDescription(d *SessionDescription, onSuccess func(), onFailure func(error)) error {
	return pc.setDescription(localSide, d, onSuccess, onFailure)
}

// SetRemoteDescription is SetLocalDescription for the remote side.
func (pc *PeerConnection) SetRemoteDescription(d *SessionDescription, onSuccess func(), onFailure func(error)) error {
	return pc.setDescription(remoteSide, d, onSuccess, onFailure)
}

func (pc *PeerConnection) setDescription(s side, d *SessionDescription, onSuccess func(), onFailure func(error)) error {
	pc.log.Debug("%s()", s.op)

	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.signalingState == SignalingStateClosed {
		return errClosed(s.op)
	}

	if d != nil {
		if s.remote {
			pc.remoteDescription = d
		} else {
			pc.localDescription = d
		}
	}

	pc.scheduler.Schedule(func() {
		err, closed := pc.applyDescription(s, d)
		if closed {
			return
		}
		if err != nil {
			pc.log.Warn("%s() | %s", s.op, err.Message)
			if onFailure != nil {
				onFailure(err)
			}
			return
		}
		if onSuccess != nil {
			onSuccess()
		}
	})
	return nil
}

func (pc *PeerConnection) applyDescription(s side, d *SessionDescription) (err *Error, closed bool) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	state := pc.signalingState
	if state == SignalingStateClosed {
		return nil, true
	}
	if d == nil {
		return makeError(InvalidSessionDescription, "missing session description"), false
	}

	invalid := func() *Error {
		return makeError(InvalidSessionDescription,
			`invalid session description of type "%s" while in "%s" signaling state`, d.Type, state)
	}

	switch state {
	case SignalingStateStable:
		if d.Type != SDPTypeOffer {
			return invalid(), false
		}
		pc.setSignalingState(s.haveOffer)

	case s.peerOffer, s.havePranswer:
		switch d.Type {
		case SDPTypeAnswer:
			pc.setSignalingState(SignalingStateStable)
		case SDPTypePranswer:
			pc.setSignalingState(s.havePranswer)
		default:
			return invalid(), false
		}

	case s.haveOffer, s.peerPranswer:
		return invalid(), false

	default:
		e := makeError(Internal, `%s() | unknown signaling state "%s"`, s.op, state)
		pc.log.PanicWith(e, "%s", e.Message)
	}
	return nil, false
}

// AddIceCandidate accepts any candidate. Candidates are neither validated nor
// stored.
func (pc *PeerConnection) AddIceCandidate(c *IceCandidate, onSuccess func(), onFailure func(error)) error {
	pc.log.Debug("addIceCandidate()")

	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.signalingState == SignalingStateClosed {
		return errClosed("addIceCandidate")
	}

	pc.scheduler.Schedule(func() {
		if pc.isClosed() {
			return
		}
		if onSuccess != nil {
			onSuccess()
		}
	})
	return nil
}

// GetLocalStreams always returns an empty list.
func (pc *PeerConnection) GetLocalStreams() ([]*MediaStream, error) {
	return pc.streams("getLocalStreams")
}

// GetRemoteStreams always returns an empty list.
func (pc *PeerConnection) GetRemoteStreams() ([]*MediaStream, error) {
	return pc.streams("getRemoteStreams")
}

func (pc *PeerConnection) streams(op string) ([]*MediaStream, error) {
	pc.log.Debug("%s()", op)
	if pc.isClosed() {
		return nil, errClosed(op)
	}
	return []*MediaStream{}, nil
}

// GetStreamByID never finds a stream.
func (pc *PeerConnection) GetStreamByID(id string) (*MediaStream, error) {
	pc.log.Debug("getStreamById(%q)", id)
	if pc.isClosed() {
		return nil, errClosed("getStreamById")
	}
	return nil, nil
}

// AddStream is not implemented and always fails.
func (pc *PeerConnection) AddStream(s *MediaStream) error {
	return pc.unimplemented("addStream")
}

// RemoveStream is not implemented and always fails.
func (pc *PeerConnection) RemoveStream(s *MediaStream) error {
	return pc.unimplemented("removeStream")
}

func (pc *PeerConnection) unimplemented(op string) error {
	pc.log.Debug("%s()", op)
	if pc.isClosed() {
		return errClosed(op)
	}
	return makeError(Internal, "%s() not implemented", op)
}

// Close moves the ICE connection state and then the signaling state to closed.
// Afterwards the connection never changes again and emits no new events.
// Calling Close more than once has no effect.
func (pc *PeerConnection) Close() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.signalingState == SignalingStateClosed {
		return
	}

	pc.log.Debug("close()")
	if pc.stopWatch != nil {
		pc.stopWatch()
	}

	pc.setIceConnectionState(IceConnectionStateClosed)
	pc.setSignalingState(SignalingStateClosed)
}

func (pc *PeerConnection) isClosed() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.signalingState == SignalingStateClosed
}

// The state setters below must be called with pc.mu held. They do nothing once
// the connection is closed or when the state is unchanged.

func (pc *PeerConnection) setSignalingState(state SignalingState) {
	if pc.signalingState == SignalingStateClosed {
		return
	}
	if !state.valid() {
		e := makeError(Internal, `wrong RTCSignalingState "%d"`, int(state))
		pc.log.PanicWith(e, "%s", e.Message)
	}
	if pc.signalingState == state {
		return
	}

	pc.log.Debug("signalingState: %s -> %s", pc.signalingState, state)
	pc.signalingState = state
	pc.dispatchEvent(&Event{Type: EventSignalingStateChange})

	// Every signaling change with both descriptions present (re)starts ICE
	// connectivity.
	if state != SignalingStateClosed && pc.localDescription != nil && pc.remoteDescription != nil {
		pc.runIceConnector()
	}
}

func (pc *PeerConnection) setIceGatheringState(state IceGatheringState) {
	if pc.signalingState == SignalingStateClosed {
		return
	}
	if !state.valid() {
		e := makeError(Internal, `wrong RTCIceGatheringState "%d"`, int(state))
		pc.log.PanicWith(e, "%s", e.Message)
	}
	if pc.iceGatheringState == state {
		return
	}

	pc.log.Debug("iceGatheringState: %s -> %s", pc.iceGatheringState, state)
	pc.iceGatheringState = state
	pc.dispatchEvent(&Event{Type: EventIceGatheringStateChange})
}

func (pc *PeerConnection) setIceConnectionState(state IceConnectionState) {
	if pc.signalingState == SignalingStateClosed {
		return
	}
	if !state.valid() {
		e := makeError(Internal, `wrong RTCIceConnectionState "%d"`, int(state))
		pc.log.PanicWith(e, "%s", e.Message)
	}
	if pc.iceConnectionState == state {
		return
	}

	pc.log.Debug("iceConnectionState: %s -> %s", pc.iceConnectionState, state)
	pc.iceConnectionState = state
	pc.dispatchEvent(&Event{Type: EventIceConnectionStateChange})
}

// runIceGatherer moves to gathering on the next turn, and to complete one turn
// later, announcing the end of candidates.
func (pc *PeerConnection) runIceGatherer() {
	pc.scheduler.Schedule(func() {
		pc.mu.Lock()
		defer pc.mu.Unlock()
		if pc.signalingState == SignalingStateClosed {
			return
		}
		pc.setIceGatheringState(IceGatheringStateGathering)

		pc.scheduler.Schedule(func() {
			pc.mu.Lock()
			defer pc.mu.Unlock()
			if pc.signalingState == SignalingStateClosed {
				return
			}
			pc.setIceGatheringState(IceGatheringStateComplete)
			pc.dispatchEvent(&Event{Type: EventIceCandidate})
		})
	})
}

func (pc *PeerConnection) runIceConnector() {
	pc.advanceIceConnection(
		IceConnectionStateChecking,
		IceConnectionStateConnected,
		IceConnectionStateCompleted,
	)
}

// advanceIceConnection enters each state on its own scheduler turn.
func (pc *PeerConnection) advanceIceConnection(states ...IceConnectionState) {
	if len(states) == 0 {
		return
	}
	pc.scheduler.Schedule(func() {
		pc.mu.Lock()
		defer pc.mu.Unlock()
		if pc.signalingState == SignalingStateClosed {
			return
		}
		pc.setIceConnectionState(states[0])
		pc.advanceIceConnection(states[1:]...)
	})
}
