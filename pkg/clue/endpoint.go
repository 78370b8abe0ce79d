package clue

import (
	"net"
	"regexp"
	"strconv"
)

// DefaultPort is used when no port is given.
const DefaultPort = 80

// hostPattern accepts a dotted-quad IPv4 address with octets 0-255, or a
// hostname whose last label is 2-14 lowercase letters.
var hostPattern = regexp.MustCompile(`^(((25[0-5]|2[0-4][0-9]|1[0-9]{2}|[0-9]{1,2})\.){3}(25[0-5]|2[0-4][0-9]|1[0-9]{2}|[0-9]{1,2})|([a-zA-Z0-9\-_]+\.)*[a-zA-Z0-9\-_]+\.[a-z]{2,14})$`)

// ValidateHost returns a *ValidationError if host is not acceptable as a
// Clue server address. Schemes, ports and paths are rejected.
func ValidateHost(host string) error {
	if !hostPattern.MatchString(host) {
		return &ValidationError{Host: host}
	}
	return nil
}

// Endpoint is a validated host plus a port. The port is not range-checked.
type Endpoint struct {
	host string
	port int
}

// NewEndpoint validates host and returns the endpoint.
func NewEndpoint(host string, port int) (Endpoint, error) {
	if err := ValidateHost(host); err != nil {
		return Endpoint{}, err
	}
	return Endpoint{host: host, port: port}, nil
}

// Host returns the current host.
func (e Endpoint) Host() string { return e.host }

// Port returns the current port.
func (e Endpoint) Port() int { return e.port }

// SetHost replaces the host. An invalid host leaves the endpoint unchanged.
func (e *Endpoint) SetHost(host string) error {
	if err := ValidateHost(host); err != nil {
		return err
	}
	e.host = host
	return nil
}

// SetPort replaces the port without validation.
func (e *Endpoint) SetPort(port int) { e.port = port }

// ResetPort restores DefaultPort.
func (e *Endpoint) ResetPort() { e.port = DefaultPort }

// Address returns host:port in the form accepted by net.Dial.
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.host, strconv.Itoa(e.port))
}

// ClueURL returns the trigger URL for name. The name is not escaped.
func (e Endpoint) ClueURL(name string) string {
	return "https://" + e.Address() + clueEndpoint + name
}

const clueEndpoint = "/api/clue/"
