// Copyright 2022-2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package udpduplex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/netip"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/saucelabs/udpduplex/log"
)

// PacketConn is the subset of *net.UDPConn used by Session.
type PacketConn interface {
	ReadFromUDPAddrPort(b []byte) (int, netip.AddrPort, error)
	WriteToUDPAddrPort(b []byte, addr netip.AddrPort) (int, error)
	SetReadDeadline(t time.Time) error
	LocalAddr() net.Addr
	Close() error
}

var _ PacketConn = (*net.UDPConn)(nil)

const payloadPrefix = "hello "

type SessionConfig struct {
	// LocalPort is the UDP port bound on all IPv4 interfaces, 0 picks an ephemeral port.
	LocalPort uint16

	// Peer is the only address datagrams are sent to.
	Peer netip.AddrPort

	// PollInterval is the maximum time a loop iteration waits for inbound datagrams.
	PollInterval time.Duration

	// ReadBufferSize is the size of the receive buffer.
	// The last byte is never filled, longer datagrams are truncated.
	ReadBufferSize int

	PromRegistry  prometheus.Registerer
	PromNamespace string
}

func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		PollInterval:   10 * time.Millisecond,
		ReadBufferSize: 512,
	}
}

func (c *SessionConfig) Validate() error {
	if !c.Peer.IsValid() {
		return errors.New("peer address is not set")
	}
	if !c.Peer.Addr().Is4() {
		return fmt.Errorf("peer address %s is not IPv4", c.Peer.Addr())
	}
	if c.PollInterval <= 0 {
		return errors.New("poll interval must be positive")
	}
	if c.ReadBufferSize < 2 {
		return fmt.Errorf("read buffer size must be at least 2 bytes, got %d", c.ReadBufferSize)
	}
	return nil
}

// Session sends "hello <counter>" to the peer once per wall-clock second and prints inbound datagrams.
// Each loop iteration drains all pending datagrams before it decides whether to send.
type Session struct {
	config  SessionConfig
	conn    PacketConn
	out     io.Writer
	log     log.StructuredLogger
	metrics *sessionMetrics
	buf     []byte

	blocking bool
	ready    atomic.Bool
	counter  uint64
	lastSend time.Time
	now      func() time.Time

	closeOnce sync.Once
	closeErr  error
}

// NewSession binds the local port and returns a session ready to run.
// Console lines (banner, SEND, RECV) are written to out.
func NewSession(cfg *SessionConfig, out io.Writer, log log.StructuredLogger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: int(cfg.LocalPort)})
	if err != nil {
		return nil, fmt.Errorf("bind: %w", err)
	}

	return newSession(cfg, conn, out, log), nil
}

func newSession(cfg *SessionConfig, conn PacketConn, out io.Writer, log log.StructuredLogger) *Session {
	s := &Session{
		config:  *cfg,
		conn:    conn,
		out:     out,
		log:     log,
		metrics: newSessionMetrics(cfg.PromRegistry, cfg.PromNamespace),
		buf:     make([]byte, cfg.ReadBufferSize),
		now:     time.Now,
	}

	if err := conn.SetReadDeadline(time.Now().Add(cfg.PollInterval)); err != nil {
		s.degrade(err)
	}

	return s
}

func (s *Session) degrade(err error) {
	s.log.Warn("failed to set non-blocking mode, using blocking socket", "error", err)
	s.blocking = true
}

// Addr returns the bound local address.
func (s *Session) Addr() string {
	return s.conn.LocalAddr().String()
}

// Ready reports whether the loop is running.
func (s *Session) Ready() bool {
	return s.ready.Load()
}

// Blocking reports whether the session fell back to blocking reads.
func (s *Session) Blocking() bool {
	return s.blocking
}

// Run prints the banner and runs the send/receive loop until ctx is canceled.
// The socket is closed when Run returns.
func (s *Session) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { s.Close() })
	defer stop()
	defer s.Close()

	s.printBanner()
	s.ready.Store(true)
	defer s.ready.Store(false)

	for ctx.Err() == nil {
		s.drain()
		if ctx.Err() != nil {
			break
		}
		s.maybeSend()
	}

	s.log.Debug("session stopped", "sent", s.counter)
	return nil
}

func (s *Session) printBanner() {
	fmt.Fprintf(s.out, "Local  : port %d\n", s.localPort())
	fmt.Fprintf(s.out, "Peer   : %s\n", s.config.Peer)
	fmt.Fprintf(s.out, "Sending one packet per second. Press Ctrl+C to stop.\n")
}

func (s *Session) localPort() int {
	if a, ok := s.conn.LocalAddr().(*net.UDPAddr); ok {
		return a.Port
	}
	return int(s.config.LocalPort)
}

// drain reads datagrams until the poll deadline expires.
// In blocking mode it performs a single read.
func (s *Session) drain() {
	if !s.blocking {
		if err := s.conn.SetReadDeadline(time.Now().Add(s.config.PollInterval)); err != nil {
			s.degrade(err)
		}
	}

	// Reserve the last byte, payloads are capped at len(buf)-1.
	b := s.buf[:len(s.buf)-1]
	for {
		n, from, err := s.conn.ReadFromUDPAddrPort(b)
		if err != nil {
			if isTimeout(err) || errors.Is(err, net.ErrClosed) {
				return
			}
			s.metrics.receiveError()
			s.log.Error("receive failed", "error", err)
			return
		}
		if n == 0 {
			return
		}

		s.metrics.receive(n)
		fmt.Fprintf(s.out, "RECV from %s:%d: %s\n", from.Addr().Unmap(), from.Port(), b[:n])

		if s.blocking {
			return
		}
	}
}

// maybeSend sends one datagram if the wall-clock second changed since the last send.
// Missed seconds are not caught up.
func (s *Session) maybeSend() {
	now := s.now()
	if now.Unix() == s.lastSend.Unix() {
		return
	}
	s.lastSend = now

	payload := Payload(s.counter)
	s.counter++

	if _, err := s.conn.WriteToUDPAddrPort(payload, s.config.Peer); err != nil {
		if errors.Is(err, net.ErrClosed) {
			return
		}
		s.metrics.sendError()
		s.log.Error("send failed", "peer", s.config.Peer, "error", err)
		return
	}

	s.metrics.send(len(payload))
	fmt.Fprintf(s.out, "SEND to %s: %s\n", s.config.Peer, payload)
}

// Close closes the socket, it is safe to call multiple times.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}

// Payload returns the datagram payload for the given counter value.
func Payload(counter uint64) []byte {
	return strconv.AppendUint([]byte(payloadPrefix), counter, 10)
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
