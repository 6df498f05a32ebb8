// Package ice parses the candidate lines carried by trickled ICE candidates.
// Nothing here gathers or checks candidates.
package ice

import (
	"bufio"
	"fmt"
	"net"
	"strings"

	"github.com/pkg/errors"
)

// Candidate types.
const (
	HostType  = "host"
	SrflxType = "srflx"
	PrflxType = "prflx"
	RelayType = "relay"
)

// An ICE candidate. See [RFC8445 §5.3] for a definition of fields.
type Candidate struct {
	Foundation string
	Component  int
	Protocol   string
	Priority   uint32
	Host       string // IP address or mDNS hostname
	IP         net.IP // nil for mDNS hostnames
	Port       int
	Type       string
	Attrs      []Attribute // Extension attributes
}

type Attribute struct {
	Name  string
	Value string
}

// Attr returns the value of the named extension attribute, or "".
func (c *Candidate) Attr(name string) string {
	for _, a := range c.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// Address returns the candidate's transport address as host:port.
func (c *Candidate) Address() string {
	return net.JoinHostPort(c.Host, fmt.Sprint(c.Port))
}

func (c Candidate) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "candidate:%s %d %s %d %s %d typ %s",
		c.Foundation, c.Component, c.Protocol, c.Priority, c.Host, c.Port, c.Type)
	for _, a := range c.Attrs {
		fmt.Fprintf(&b, " %s %s", a.Name, a.Value)
	}
	return b.String()
}

// ParseCandidate parses a candidate line of the form
//   candidate:{foundation} {component-id} {protocol} {priority} {address} {port} typ {type} ...
// See [draft-ietf-mmusic-ice-sip-sdp-16] Section 5.1. A leading "a=" is
// accepted.
func ParseCandidate(desc string) (c Candidate, err error) {
	r := strings.NewReader(strings.TrimPrefix(desc, "a="))

	_, err = fmt.Fscanf(r, "candidate:%s %d %s %d %s %d typ %s",
		&c.Foundation, &c.Component, &c.Protocol, &c.Priority, &c.Host, &c.Port, &c.Type)
	if err != nil {
		return c, errors.Wrapf(err, "candidate %q", desc)
	}
	if c.Component < 1 || c.Component > 256 {
		return c, errors.Errorf("candidate %q: component ID out of range: %d", desc, c.Component)
	}
	if c.IP = net.ParseIP(c.Host); c.IP == nil && !strings.HasSuffix(c.Host, ".local") {
		return c, errors.Errorf("candidate %q: invalid address %s", desc, c.Host)
	}
	switch c.Type {
	case HostType, SrflxType, PrflxType, RelayType:
	default:
		return c, errors.Errorf("candidate %q: unknown type %s", desc, c.Type)
	}

	// The rest of the candidate line consists of "name value" pairs.
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	var name string
	for scanner.Scan() {
		if name == "" {
			name = scanner.Text()
			continue
		}
		c.Attrs = append(c.Attrs, Attribute{name, scanner.Text()})
		name = ""
	}
	if name != "" {
		return c, errors.Errorf("candidate %q: unmatched attribute name: %s", desc, name)
	}
	return c, nil
}
