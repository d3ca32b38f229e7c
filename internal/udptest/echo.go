// Copyright 2022-2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package udptest provides a UDP echo peer for tests.
package udptest

import (
	"errors"
	"net"
	"net/netip"
	"sync"
	"testing"

	"golang.org/x/net/nettest"
)

type Datagram struct {
	Data string
	From netip.AddrPort
}

// EchoServer writes every datagram back to its sender.
// Received datagrams are also published on the Received channel, if the channel is full they are dropped.
type EchoServer struct {
	conn net.PacketConn
	recv chan Datagram
	wg   sync.WaitGroup
}

// NewEchoServer starts an echo server on a loopback IPv4 address.
// The server is closed when the test finishes.
func NewEchoServer(tb testing.TB, bufSize int) *EchoServer {
	tb.Helper()

	conn, err := nettest.NewLocalPacketListener("udp4")
	if err != nil {
		tb.Fatalf("listen: %v", err)
	}

	s := &EchoServer{
		conn: conn,
		recv: make(chan Datagram, 64),
	}
	s.wg.Add(1)
	go s.serve(tb, bufSize)

	tb.Cleanup(func() {
		conn.Close()
		s.wg.Wait()
	})

	return s
}

func (s *EchoServer) serve(tb testing.TB, bufSize int) {
	defer s.wg.Done()

	buf := make([]byte, bufSize)
	for {
		n, caddr, err := s.conn.ReadFrom(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			tb.Logf("echo: read: %v", err)
			continue
		}

		ua, ok := caddr.(*net.UDPAddr)
		if !ok {
			continue
		}
		d := Datagram{Data: string(buf[:n]), From: unmap(ua.AddrPort())}
		select {
		case s.recv <- d:
		default:
		}

		if _, err := s.conn.WriteTo(buf[:n], caddr); err != nil && !errors.Is(err, net.ErrClosed) {
			tb.Logf("echo: write to %s: %v", caddr, err)
		}
	}
}

// Addr returns the loopback address the server listens on.
func (s *EchoServer) Addr() netip.AddrPort {
	return unmap(s.conn.LocalAddr().(*net.UDPAddr).AddrPort())
}

func (s *EchoServer) Received() <-chan Datagram {
	return s.recv
}

func unmap(ap netip.AddrPort) netip.AddrPort {
	return netip.AddrPortFrom(ap.Addr().Unmap(), ap.Port())
}
