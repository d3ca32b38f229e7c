// Copyright 2022-2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package udpduplex

import (
	"errors"
	"fmt"
	"net/netip"
	"strconv"
)

// ParsePort parses a decimal UDP port number.
func ParsePort(val string) (uint16, error) {
	p, err := strconv.ParseUint(val, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q", val)
	}
	return uint16(p), nil
}

// ParsePeerIP parses an IPv4 address in dotted-decimal form.
// IPv6 addresses, IPv4-mapped IPv6 addresses and zoned addresses are rejected.
func ParsePeerIP(val string) (netip.Addr, error) {
	if val == "" {
		return netip.Addr{}, errors.New("invalid peer IP address: empty")
	}

	ip, err := netip.ParseAddr(val)
	if err != nil || !ip.Is4() {
		return netip.Addr{}, fmt.Errorf("invalid peer IP address: %s", val)
	}

	return ip, nil
}

// ParsePeer parses peer IP and port given as separate values.
func ParsePeer(ip, port string) (netip.AddrPort, error) {
	addr, err := ParsePeerIP(ip)
	if err != nil {
		return netip.AddrPort{}, err
	}
	p, err := ParsePort(port)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("peer: %w", err)
	}

	return netip.AddrPortFrom(addr, p), nil
}
