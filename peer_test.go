// Copyright 2022-2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package udpduplex

import (
	"net/netip"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePort(t *testing.T) {
	tests := []struct {
		input string
		want  uint16
		err   bool
	}{
		{input: "0", want: 0},
		{input: "50000", want: 50000},
		{input: "65535", want: 65535},
		{input: "65536", err: true},
		{input: "-1", err: true},
		{input: "", err: true},
		{input: "80a", err: true},
		{input: " 80", err: true},
	}

	for i := range tests {
		tc := &tests[i]
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParsePort(tc.input)
			if tc.err {
				if err == nil {
					t.Fatalf("expected error, got %d", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestParsePeerIPInvalid(t *testing.T) {
	inputs := []string{
		"",
		"abc",
		"256.1.1.1",
		"1.2.3",
		"1.2.3.4.5",
		"01.2.3.4",
		"1.2.3.4:80",
		"::1",
		"::ffff:1.2.3.4",
		"fe80::1%eth0",
		" 1.2.3.4",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParsePeerIP(in)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.HasPrefix(err.Error(), "invalid peer IP address") {
				t.Errorf("unexpected error: %s", err)
			}
		})
	}
}

func TestParsePeer(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		port string
		want netip.AddrPort
		err  string
	}{
		{
			name: "loopback",
			ip:   "127.0.0.1",
			port: "50001",
			want: netip.MustParseAddrPort("127.0.0.1:50001"),
		},
		{
			name: "broadcast",
			ip:   "255.255.255.255",
			port: "9",
			want: netip.MustParseAddrPort("255.255.255.255:9"),
		},
		{
			name: "invalid ip",
			ip:   "300.0.0.1",
			port: "1",
			err:  "invalid peer IP address",
		},
		{
			name: "invalid port",
			ip:   "10.0.0.1",
			port: "70000",
			err:  "peer: invalid port",
		},
	}

	for i := range tests {
		tc := &tests[i]
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePeer(tc.ip, tc.port)
			if tc.err != "" {
				if err == nil || !strings.Contains(err.Error(), tc.err) {
					t.Fatalf("expected error %q, got %v", tc.err, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want.String(), got.String()); diff != "" {
				t.Errorf("unexpected peer (-want +got):\n%s", diff)
			}
		})
	}
}
