package signaling

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/lanikai/fakertc"
	"github.com/lanikai/fakertc/internal/ice"
	"github.com/lanikai/fakertc/internal/logging"
	"github.com/lanikai/fakertc/internal/sdp"
)

// Message is the JSON form of everything exchanged over the websocket. Which
// fields are set depends on Type.
type Message struct {
	Type string `json:"type"`

	// offer, answer, pranswer
	SDP string `json:"sdp,omitempty"`

	// iceCandidate. A nil Candidate marks the end of candidates.
	Candidate     *string `json:"candidate,omitempty"`
	SDPMid        string  `json:"sdpMid,omitempty"`
	SDPMLineIndex uint16  `json:"sdpMLineIndex,omitempty"`

	// state
	SignalingState     string `json:"signalingState,omitempty"`
	IceGatheringState  string `json:"iceGatheringState,omitempty"`
	IceConnectionState string `json:"iceConnectionState,omitempty"`

	// error
	Error string `json:"error,omitempty"`
}

// Message types.
const (
	TypeOffer        = "offer"
	TypeAnswer       = "answer"
	TypePranswer     = "pranswer"
	TypeIceCandidate = "iceCandidate"
	TypeState        = "state"
	TypeError        = "error"
)

// A Session represents one remote peer connected over a websocket, and the
// simulated PeerConnection answering it.
type Session struct {
	// Context used to indicate the end of the session. The PeerConnection is
	// closed when it is done.
	context.Context

	ws  *websocket.Conn
	pc  *fakertc.PeerConnection
	log *logging.Logger

	// gorilla/websocket allows one concurrent writer.
	writeMu sync.Mutex
}

func newSession(ctx context.Context, ws *websocket.Conn, config fakertc.Configuration, opts ...fakertc.Option) *Session {
	s := &Session{
		Context: ctx,
		ws:      ws,
		log:     logging.DefaultLogger.WithTag("signaling"),
	}
	s.pc = fakertc.NewPeerConnectionWithContext(ctx, config, opts...)

	stateChanged := func(*fakertc.Event) { s.sendState() }
	s.pc.OnSignalingStateChange(stateChanged)
	s.pc.OnIceGatheringStateChange(stateChanged)
	s.pc.OnIceConnectionStateChange(stateChanged)
	s.pc.OnIceCandidate(func(e *fakertc.Event) {
		if e.Candidate == nil {
			s.send(&Message{Type: TypeIceCandidate})
			return
		}
		c := e.Candidate.Candidate
		s.send(&Message{
			Type:          TypeIceCandidate,
			Candidate:     &c,
			SDPMid:        e.Candidate.SDPMid,
			SDPMLineIndex: e.Candidate.SDPMLineIndex,
		})
	})
	return s
}

// PeerConnection returns the connection answering the remote peer.
func (s *Session) PeerConnection() *fakertc.PeerConnection {
	return s.pc
}

// serve processes incoming messages until the websocket fails or is closed.
func (s *Session) serve() error {
	for {
		var msg Message
		if err := s.ws.ReadJSON(&msg); err != nil {
			return errors.Wrap(err, "read websocket message")
		}

		switch msg.Type {
		case TypeOffer:
			s.handleOffer(msg.SDP)
		case TypeAnswer, TypePranswer:
			s.handleRemoteDescription(fakertc.NewSessionDescription(fakertc.SDPType(msg.Type), msg.SDP), nil)
		case TypeIceCandidate:
			s.handleCandidate(&msg)
		default:
			s.log.Warn("Unexpected websocket message: %+v", msg)
		}
	}
}

func (s *Session) handleOffer(body string) {
	if body != "" {
		if offer, err := sdp.ParseSession(body); err != nil {
			s.log.Warn("Could not parse offer: %v", err)
		} else {
			s.log.Info("Offer from %s (session %s, %d media)",
				offer.Origin.Address, offer.Origin.SessionId, len(offer.Media))
		}
	}

	s.handleRemoteDescription(fakertc.NewSessionDescription(fakertc.SDPTypeOffer, body), func() {
		if err := s.pc.CreateAnswer(s.sendAnswer, s.fail); err != nil {
			s.fail(err)
		}
	})
}

func (s *Session) handleRemoteDescription(d *fakertc.SessionDescription, onSuccess func()) {
	if err := s.pc.SetRemoteDescription(d, onSuccess, s.fail); err != nil {
		s.fail(err)
	}
}

func (s *Session) sendAnswer(answer *fakertc.SessionDescription) {
	err := s.pc.SetLocalDescription(answer, func() {
		s.send(&Message{Type: TypeAnswer, SDP: answer.SDP})
	}, s.fail)
	if err != nil {
		s.fail(err)
	}
}

func (s *Session) handleCandidate(msg *Message) {
	var c *fakertc.IceCandidate
	if msg.Candidate == nil {
		s.log.Debug("End of remote candidates")
	} else {
		// The connection accepts anything; parsing is only for the log.
		if parsed, err := ice.ParseCandidate(*msg.Candidate); err != nil {
			s.log.Warn("Invalid ICE candidate: %v", err)
		} else {
			s.log.Debug("Remote %s candidate %s (mid %s)", parsed.Type, parsed.Address(), msg.SDPMid)
		}
		c = fakertc.NewIceCandidate(*msg.Candidate, msg.SDPMid, msg.SDPMLineIndex)
	}
	if err := s.pc.AddIceCandidate(c, nil, s.fail); err != nil {
		s.fail(err)
	}
}

func (s *Session) sendState() {
	s.send(&Message{
		Type:               TypeState,
		SignalingState:     s.pc.SignalingState().String(),
		IceGatheringState:  s.pc.IceGatheringState().String(),
		IceConnectionState: s.pc.IceConnectionState().String(),
	})
}

func (s *Session) fail(err error) {
	s.log.Warn("%v", err)
	s.send(&Message{Type: TypeError, Error: err.Error()})
}

func (s *Session) send(msg *Message) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.ws.WriteJSON(msg); err != nil {
		// Expected once the remote side has gone away.
		s.log.Debug("Dropped %s message: %v", msg.Type, err)
	}
}
