// Package privip classifies textual IPv4 addresses into the RFC 1918 private
// ranges used by AWStats host reports for internal traffic.
package privip

import (
	"strconv"
	"strings"
)

// IsPrivate reports whether addr is a well-formed dotted-quad IPv4 address
// inside one of the private ranges 10.0.0.0/8, 172.16.0.0/12 or 192.168.0.0/16.
// Malformed strings and non-address tokens (hostnames, "Others") are never
// private. Input is matched exactly; surrounding whitespace disqualifies it.
func IsPrivate(addr string) bool {
	octets, ok := parseQuad(addr)
	if !ok {
		return false
	}
	switch {
	case octets[0] == 10:
		return true
	case octets[0] == 172 && octets[1] >= 16 && octets[1] <= 31:
		return true
	case octets[0] == 192 && octets[1] == 168:
		return true
	}
	return false
}

// parseQuad splits addr into exactly four decimal octets in [0, 255].
func parseQuad(addr string) ([4]int, bool) {
	var octets [4]int
	parts := strings.Split(addr, ".")
	if len(parts) != 4 {
		return octets, false
	}
	for i, part := range parts {
		if len(part) == 0 || len(part) > 3 || !digitsOnly(part) {
			return octets, false
		}
		value, err := strconv.Atoi(part)
		if err != nil || value > 255 {
			return octets, false
		}
		octets[i] = value
	}
	return octets, true
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
