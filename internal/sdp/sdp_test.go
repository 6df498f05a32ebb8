package sdp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	errors "golang.org/x/xerrors"
)

func TestParseOrigin(t *testing.T) {
	o, err := parseOrigin("username id 123 IN IP4 0.0.0.0")
	require.NoError(t, err)
	assert.Equal(t, "username", o.Username)
	assert.Equal(t, "id", o.SessionId)
	assert.EqualValues(t, 123, o.SessionVersion)
	assert.Equal(t, "IN", o.NetworkType)
	assert.Equal(t, "IP4", o.AddressType)
	assert.Equal(t, "0.0.0.0", o.Address)
}

func TestWriteOrigin(t *testing.T) {
	o, _ := parseOrigin("username id 123 IN IP4 0.0.0.0")
	assert.Equal(t, "username id 123 IN IP4 0.0.0.0", o.String())
}

func TestEmptySession(t *testing.T) {
	s := Empty("123456789")
	assert.Equal(t,
		"v=0\r\n"+
			"o=- 123456789 2 IN IP4 127.0.0.1\r\n"+
			"s=-\r\n"+
			"t=0 0\r\n"+
			"a=msid-semantic: WMS\r\n",
		s.String())
}

const browserOffer = `v=0
o=- 6830938501909068252 2 IN IP4 127.0.0.1
s=-
t=0 0
a=group:BUNDLE 0
a=msid-semantic: WMS
m=application 9 UDP/DTLS/SCTP webrtc-datachannel
c=IN IP4 0.0.0.0
a=ice-ufrag:n3E3
a=ice-pwd:auh7I7RsuhlZQgS2XYLStR05
a=ice-options:trickle
a=setup:actpass
a=mid:0
a=sctp-port:5000
`

func TestParseSession(t *testing.T) {
	s, err := ParseSession(browserOffer)
	require.NoError(t, err)

	assert.EqualValues(t, 0, s.Version)
	assert.Equal(t, "-", s.Name)
	assert.Equal(t, "6830938501909068252", s.Origin.SessionId)
	assert.EqualValues(t, 2, s.Origin.SessionVersion)
	assert.Equal(t, "BUNDLE 0", s.GetAttr("group"))
	require.Len(t, s.Time, 1)
	assert.Equal(t, Time{}, s.Time[0])

	require.Len(t, s.Media, 1)
	m := s.Media[0]
	assert.Equal(t, "application", m.Type)
	assert.Equal(t, 9, m.Port)
	assert.Equal(t, []string{"webrtc-datachannel"}, m.Format)
	require.NotNil(t, m.Connection)
	assert.Equal(t, "0.0.0.0", m.Connection.Address)
	assert.Equal(t, "n3E3", m.GetAttr("ice-ufrag"))
	assert.Equal(t, "0", m.GetAttr("mid"))
	assert.Empty(t, s.GetAttr("ice-ufrag"), "media attributes stay in the media section")
}

func TestParseRoundTripsEmpty(t *testing.T) {
	e := Empty("42")
	s, err := ParseSession(e.String())
	require.NoError(t, err)
	assert.Equal(t, e, s)
}

func TestParseSessionErrors(t *testing.T) {
	_, err := ParseSession("v=0\r\nbogus\r\n")
	assert.Error(t, err)

	_, err = ParseSession("v=0\r\no=missing-fields\r\n")
	require.Error(t, err)
	var perr *parseError
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, "origin", perr.which)

	_, err = ParseSession("m=video\r\n")
	assert.Error(t, err)
}
