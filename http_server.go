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
	"net"
	"net/http"
	"time"

	"github.com/saucelabs/udpduplex/log"
)

type HTTPServerConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

func DefaultHTTPServerConfig() *HTTPServerConfig {
	return &HTTPServerConfig{
		Addr:              "",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
	}
}

// HTTPServer serves the API handler, it listens on construction so that the address is known before Run.
type HTTPServer struct {
	config   HTTPServerConfig
	log      log.StructuredLogger
	srv      *http.Server
	listener net.Listener
}

func NewHTTPServer(cfg *HTTPServerConfig, h http.Handler, log log.StructuredLogger) (*HTTPServer, error) {
	l, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to open listener on address %s: %w", cfg.Addr, err)
	}

	return &HTTPServer{
		config: *cfg,
		log:    log,
		srv: &http.Server{
			Handler:           h,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
		listener: l,
	}, nil
}

func (hs *HTTPServer) Addr() string {
	return hs.listener.Addr().String()
}

func (hs *HTTPServer) Run(ctx context.Context) error {
	hs.log.Info("HTTP server listen", "address", hs.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- hs.srv.Serve(hs.listener)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), hs.config.ShutdownTimeout)
	defer cancel()
	if err := hs.srv.Shutdown(sctx); err != nil {
		hs.log.Error("failed to shutdown server", "error", err)
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	hs.log.Debug("server was shutdown gracefully")
	return nil
}

func (hs *HTTPServer) Close() error {
	err := hs.srv.Close()
	// The listener is only tracked by srv once Serve was called.
	if lerr := hs.listener.Close(); lerr != nil && !errors.Is(lerr, net.ErrClosed) {
		err = errors.Join(err, lerr)
	}
	return err
}
