// Package sdp models the subset of RFC 4566 session descriptions needed to
// synthesize placeholder descriptions and to inspect descriptions received from
// remote peers.
package sdp

import (
	"fmt"
	"strconv"
	"strings"

	errors "golang.org/x/xerrors"
)

type Session struct {
	Version    int
	Origin     Origin
	Name       string
	Info       string      // Optional
	Connection *Connection // Optional
	Time       []Time
	Attributes []Attribute
	Media      []Media
}

type Origin struct {
	Username       string
	SessionId      string
	SessionVersion uint64
	NetworkType    string
	AddressType    string
	Address        string
}

type Connection struct {
	NetworkType string
	AddressType string
	Address     string
}

// Time is a "t=" line, as NTP seconds. Zero means unbounded.
type Time struct {
	Start uint64
	Stop  uint64
}

type Attribute struct {
	Key   string
	Value string
}

type Media struct {
	Type   string
	Port   int
	Proto  string
	Format []string

	Connection *Connection // Optional
	Attributes []Attribute
}

// Empty returns the description of a session with no media, as produced by a
// peer connection that has nothing to negotiate yet.
func Empty(sessionId string) Session {
	return Session{
		Origin: Origin{
			Username:       "-",
			SessionId:      sessionId,
			SessionVersion: 2,
			NetworkType:    "IN",
			AddressType:    "IP4",
			Address:        "127.0.0.1",
		},
		Name: "-",
		Time: []Time{{}},
		Attributes: []Attribute{
			{"msid-semantic", " WMS"},
		},
	}
}

type parseError struct {
	which string
	value string
	cause error
}

func (e *parseError) Error() string {
	msg := fmt.Sprintf("sdp: invalid %s description: %q", e.which, e.value)
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *parseError) Unwrap() error {
	return e.cause
}

func (o *Origin) String() string {
	return fmt.Sprintf("%s %s %d %s %s %s",
		o.Username, o.SessionId, o.SessionVersion, o.NetworkType, o.AddressType, o.Address)
}

func parseOrigin(s string) (o Origin, err error) {
	_, err = fmt.Sscanf(s, "%s %s %d %s %s %s",
		&o.Username, &o.SessionId, &o.SessionVersion, &o.NetworkType, &o.AddressType, &o.Address)
	if err != nil {
		err = &parseError{"origin", s, err}
	}
	return
}

func (c *Connection) String() string {
	return fmt.Sprintf("%s %s %s", c.NetworkType, c.AddressType, c.Address)
}

func parseConnection(s string) (c Connection, err error) {
	_, err = fmt.Sscanf(s, "%s %s %s", &c.NetworkType, &c.AddressType, &c.Address)
	if err != nil {
		err = &parseError{"connection", s, err}
	}
	return
}

func (t Time) String() string {
	return fmt.Sprintf("%d %d", t.Start, t.Stop)
}

func parseTime(s string) (t Time, err error) {
	_, err = fmt.Sscanf(s, "%d %d", &t.Start, &t.Stop)
	if err != nil {
		err = &parseError{"time", s, err}
	}
	return
}

func (a Attribute) String() string {
	if a.Value == "" {
		return a.Key
	}
	return a.Key + ":" + a.Value
}

func parseAttribute(s string) Attribute {
	f := strings.SplitN(s, ":", 2)
	if len(f) == 2 {
		return Attribute{f[0], f[1]}
	}
	return Attribute{Key: f[0]}
}

func getAttr(attrs []Attribute, key string) string {
	for _, a := range attrs {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

func (m *Media) GetAttr(key string) string {
	return getAttr(m.Attributes, key)
}

func (m *Media) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "m=%s %d %s %s\r\n", m.Type, m.Port, m.Proto, strings.Join(m.Format, " "))
	if m.Connection != nil {
		b.WriteString("c=" + m.Connection.String() + "\r\n")
	}
	for _, a := range m.Attributes {
		b.WriteString("a=" + a.String() + "\r\n")
	}
	return b.String()
}

func parseMediaLine(value string) (m Media, err error) {
	fields := strings.Fields(value)
	if len(fields) < 3 {
		return m, &parseError{"media", value, nil}
	}
	m.Type = fields[0]
	if m.Port, err = strconv.Atoi(strings.SplitN(fields[1], "/", 2)[0]); err != nil {
		return m, &parseError{"media", value, err}
	}
	m.Proto = fields[2]
	m.Format = fields[3:]
	return m, nil
}

func (s *Session) GetAttr(key string) string {
	return getAttr(s.Attributes, key)
}

func (s *Session) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "v=%d\r\n", s.Version)
	b.WriteString("o=" + s.Origin.String() + "\r\n")
	b.WriteString("s=" + s.Name + "\r\n")
	if s.Info != "" {
		b.WriteString("i=" + s.Info + "\r\n")
	}
	if s.Connection != nil {
		b.WriteString("c=" + s.Connection.String() + "\r\n")
	}
	for _, t := range s.Time {
		b.WriteString("t=" + t.String() + "\r\n")
	}
	for _, a := range s.Attributes {
		b.WriteString("a=" + a.String() + "\r\n")
	}
	for i := range s.Media {
		b.WriteString(s.Media[i].String())
	}
	return b.String()
}

// ParseSession parses SDP text. Unknown line types are skipped; lines after an
// "m=" line belong to that media section.
func ParseSession(text string) (s Session, err error) {
	var media *Media
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if line == "" {
			continue
		}
		if len(line) < 2 || line[1] != '=' {
			return s, errors.Errorf("sdp: malformed line %q", line)
		}
		typecode, value := line[0], line[2:]

		switch typecode {
		case 'v':
			if s.Version, err = strconv.Atoi(value); err != nil {
				err = &parseError{"version", value, err}
			}
		case 'o':
			s.Origin, err = parseOrigin(value)
		case 's':
			s.Name = value
		case 'i':
			if media == nil {
				s.Info = value
			}
		case 'c':
			var c Connection
			c, err = parseConnection(value)
			if media != nil {
				media.Connection = &c
			} else {
				s.Connection = &c
			}
		case 't':
			var t Time
			t, err = parseTime(value)
			s.Time = append(s.Time, t)
		case 'a':
			if media != nil {
				media.Attributes = append(media.Attributes, parseAttribute(value))
			} else {
				s.Attributes = append(s.Attributes, parseAttribute(value))
			}
		case 'm':
			var m Media
			if m, err = parseMediaLine(value); err == nil {
				s.Media = append(s.Media, m)
				media = &s.Media[len(s.Media)-1]
			}
		}

		if err != nil {
			return s, errors.Errorf("sdp: line %q: %w", line, err)
		}
	}
	return s, nil
}
