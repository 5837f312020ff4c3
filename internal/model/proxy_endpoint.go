package model

import (
	"errors"
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

// ProxyEndpoint errors.
var (
	// ErrMalformedProxy is returned when a proxy string does not split into
	// exactly two colon-separated parts.
	ErrMalformedProxy = errors.New("malformed proxy: expected ip:port")
	// ErrInvalidAddress is returned when the address part is not an IPv4 or IPv6 literal.
	ErrInvalidAddress = errors.New("invalid proxy address: not an IPv4 or IPv6 address")
	// ErrInvalidPort is returned when the port part is not numeric or out of range.
	ErrInvalidPort = errors.New("invalid proxy port: must be a number between 0 and 65535")
)

// maxPort is the largest valid TCP port.
const maxPort = 65535

// ProxyEndpoint is an immutable value object for a proxy given as "ip:port".
type ProxyEndpoint struct {
	addr netip.Addr
	port uint16
}

// NewProxyEndpoint parses s as "ip:port".
//
// The string must contain exactly one colon, so an IPv6 literal fails as
// malformed before its address is ever parsed.
func NewProxyEndpoint(s string) (ProxyEndpoint, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return ProxyEndpoint{}, fmt.Errorf("%w: %q", ErrMalformedProxy, s)
	}

	addr, err := netip.ParseAddr(parts[0])
	if err != nil {
		return ProxyEndpoint{}, fmt.Errorf("%w: %q", ErrInvalidAddress, parts[0])
	}

	port, ok := parsePort(parts[1])
	if !ok {
		return ProxyEndpoint{}, fmt.Errorf("%w: %q", ErrInvalidPort, parts[1])
	}

	return ProxyEndpoint{addr: addr, port: port}, nil
}

// MustNewProxyEndpoint creates a new ProxyEndpoint or panics if invalid.
// Use only for known-valid addresses in tests or initialization.
func MustNewProxyEndpoint(s string) ProxyEndpoint {
	p, err := NewProxyEndpoint(s)
	if err != nil {
		panic(err)
	}
	return p
}

// parsePort accepts only ASCII digits and values in [0, 65535].
func parsePort(s string) (uint16, bool) {
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n > maxPort {
		return 0, false
	}
	return uint16(n), true
}

// Addr returns the proxy IP address.
func (p ProxyEndpoint) Addr() netip.Addr {
	return p.addr
}

// Port returns the proxy port.
func (p ProxyEndpoint) Port() uint16 {
	return p.port
}

// String returns the endpoint in host:port form, bracketing IPv6 addresses.
func (p ProxyEndpoint) String() string {
	return netip.AddrPortFrom(p.addr, p.port).String()
}

// IsZero reports whether p is the zero value.
func (p ProxyEndpoint) IsZero() bool {
	return !p.addr.IsValid()
}

// MarshalText implements encoding.TextMarshaler.
func (p ProxyEndpoint) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// IPv6 endpoints produced by MarshalText are bracketed and are accepted here
// even though NewProxyEndpoint rejects them.
func (p *ProxyEndpoint) UnmarshalText(text []byte) error {
	if ap, err := netip.ParseAddrPort(string(text)); err == nil {
		*p = ProxyEndpoint{addr: ap.Addr(), port: ap.Port()}
		return nil
	}
	parsed, err := NewProxyEndpoint(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
