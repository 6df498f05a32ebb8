package signaling

import (
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanikai/fakertc"
	"github.com/lanikai/fakertc/internal/sched"
)

const browserOffer = "v=0\r\n" +
	"o=- 4611731400430051336 2 IN IP4 127.0.0.1\r\n" +
	"s=-\r\n" +
	"t=0 0\r\n" +
	"a=group:BUNDLE 0\r\n" +
	"a=msid-semantic: WMS\r\n" +
	"m=application 9 UDP/DTLS/SCTP webrtc-datachannel\r\n" +
	"c=IN IP4 0.0.0.0\r\n" +
	"a=ice-ufrag:EsAw\r\n" +
	"a=ice-pwd:P2uYro0UCOQ4zxjKXaWCBui1\r\n" +
	"a=mid:0\r\n" +
	"a=sctp-port:5000\r\n"

func startServer(t *testing.T) (*Server, *websocket.Conn) {
	t.Helper()

	loop := sched.NewLoop()
	t.Cleanup(loop.Close)

	s := NewServer(Config{}, fakertc.WithScheduler(loop))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return s, ws
}

// readUntil reads messages until done returns true, and returns all of them.
func readUntil(t *testing.T, ws *websocket.Conn, done func(*Message) bool) []*Message {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))

	var msgs []*Message
	for {
		msg := new(Message)
		require.NoError(t, ws.ReadJSON(msg))
		msgs = append(msgs, msg)
		if done(msg) {
			return msgs
		}
	}
}

func TestOfferAnswer(t *testing.T) {
	_, ws := startServer(t)

	require.NoError(t, ws.WriteJSON(&Message{Type: TypeOffer, SDP: browserOffer}))

	var answer *Message
	msgs := readUntil(t, ws, func(msg *Message) bool {
		if msg.Type == TypeAnswer {
			answer = msg
		}
		return answer != nil && msg.Type == TypeState && msg.IceConnectionState == "completed"
	})

	require.NotNil(t, answer)
	assert.True(t, strings.HasPrefix(answer.SDP, "v=0\r\no=- "), answer.SDP)
	assert.Contains(t, answer.SDP, "a=msid-semantic: WMS\r\n")

	var endOfCandidates bool
	for _, msg := range msgs {
		assert.NotEqual(t, TypeError, msg.Type, msg.Error)
		if msg.Type == TypeIceCandidate {
			assert.Nil(t, msg.Candidate)
			endOfCandidates = true
		}
	}
	assert.True(t, endOfCandidates)

	last := msgs[len(msgs)-1]
	assert.Equal(t, "stable", last.SignalingState)
	assert.Equal(t, "complete", last.IceGatheringState)
}

func TestRemoteCandidates(t *testing.T) {
	_, ws := startServer(t)

	c := "candidate:1 1 udp 2130706431 192.0.2.1 54400 typ host"
	require.NoError(t, ws.WriteJSON(&Message{Type: TypeOffer}))
	require.NoError(t, ws.WriteJSON(&Message{Type: TypeIceCandidate, Candidate: &c, SDPMid: "0"}))
	require.NoError(t, ws.WriteJSON(&Message{Type: TypeIceCandidate}))

	msgs := readUntil(t, ws, func(msg *Message) bool {
		return msg.Type == TypeState && msg.IceConnectionState == "completed"
	})
	for _, msg := range msgs {
		assert.NotEqual(t, TypeError, msg.Type, msg.Error)
	}
}

func TestInvalidDescriptionReportsError(t *testing.T) {
	_, ws := startServer(t)

	// An answer without an offer.
	require.NoError(t, ws.WriteJSON(&Message{Type: TypeAnswer}))

	msgs := readUntil(t, ws, func(msg *Message) bool {
		return msg.Type == TypeError
	})
	errMsg := msgs[len(msgs)-1].Error
	assert.Contains(t, errMsg, "InvalidSessionDescriptionError")
	assert.Contains(t, errMsg, `"answer"`)
	assert.Contains(t, errMsg, `"stable"`)
}

func TestShutdownClosesSessions(t *testing.T) {
	s, ws := startServer(t)

	require.NoError(t, ws.WriteJSON(&Message{Type: TypeOffer}))
	readUntil(t, ws, func(msg *Message) bool { return msg.Type == TypeAnswer })

	require.NoError(t, s.Shutdown())

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var msg Message
		if err := ws.ReadJSON(&msg); err != nil {
			assert.NotContains(t, err.Error(), "timeout")
			return
		}
	}
}

func TestNoSessionsAfterShutdown(t *testing.T) {
	s := NewServer(Config{}, fakertc.WithScheduler(sched.NewQueue()))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	require.NoError(t, s.Shutdown())
	assert.False(t, s.addSession())

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"rtcConfiguration": {
			"iceServers": [{"urls": ["stun:stun.example.org:3478"]}],
			"bundlePolicy": "max-bundle"
		}
	}`), 0644))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, c.Port)
	assert.Equal(t, "max-bundle", c.RTC.BundlePolicy)
	require.Len(t, c.RTC.IceServers, 1)
	assert.Equal(t, []string{"stun:stun.example.org:3478"}, c.RTC.IceServers[0].URLs)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestAdvertisedHost(t *testing.T) {
	addr := &net.TCPAddr{IP: net.ParseIP("192.0.2.7"), Port: 8000}
	assert.Equal(t, "192.0.2.7:8000", advertisedHost(addr))

	host := advertisedHost(&net.TCPAddr{IP: net.IPv4zero, Port: 8000})
	assert.True(t, strings.HasSuffix(host, ":8000"), host)
	assert.NotContains(t, host, "0.0.0.0")
}
