// Copyright 2022-2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package run

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/saucelabs/udpduplex"
	"github.com/saucelabs/udpduplex/bind"
	"github.com/saucelabs/udpduplex/internal/version"
	"github.com/saucelabs/udpduplex/log"
	"github.com/saucelabs/udpduplex/log/slog"
	"github.com/saucelabs/udpduplex/runctx"
	"github.com/saucelabs/udpduplex/utils/cobrautil"
	"github.com/spf13/cobra"
	"go.uber.org/goleak"
)

const promNs = "udpduplex"

type command struct {
	promReg         *prometheus.Registry
	sessionConfig   *udpduplex.SessionConfig
	apiServerConfig *udpduplex.HTTPServerConfig
	logConfig       *log.Config

	goleak bool
}

func (c *command) runE(cmd *cobra.Command, args []string) (cmdErr error) {
	// Arguments are validated by now, do not print usage on runtime errors.
	cmd.SilenceUsage = true

	onError, err := c.registerErrorsMetric()
	if err != nil {
		return fmt.Errorf("register errors metric: %w", err)
	}
	logger := slog.New(c.logConfig, slog.WithOnError(onError), slog.WithWriter(cmd.ErrOrStderr()))
	defer func() {
		if err := logger.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "close logger: %s\n", err)
		}
	}()
	defer func() {
		if cmdErr != nil {
			logger.Error("fatal error exiting", "error", cmdErr)
			cmd.SilenceErrors = true
		}
	}()

	if err := c.parseArgs(args); err != nil {
		return err
	}

	logger.Debug("starting", "version", version.Version, "commit", version.Commit,
		"GOMAXPROCS", runtime.GOMAXPROCS(0))

	cfg, err := cobrautil.FlagsDescriber{
		Format:          cobrautil.Plain,
		ShowChangedOnly: false,
		ShowHidden:      true,
	}.DescribeFlags(cmd.Flags())
	if err != nil {
		return err
	}
	logger.Debug("configuration\n" + string(cfg))

	s, err := udpduplex.NewSession(c.sessionConfig, cmd.OutOrStdout(), logger.Named("session"))
	if err != nil {
		return err
	}
	defer s.Close()

	g := runctx.NewGroup(s.Run)

	if c.apiServerConfig.Addr != "" {
		if err := c.registerProcMetrics(); err != nil {
			return fmt.Errorf("register process metrics: %w", err)
		}
		if err := c.registerVersionMetric(); err != nil {
			return fmt.Errorf("register version metric: %w", err)
		}

		h := udpduplex.NewAPIHandler(c.promReg, s, string(cfg))
		a, err := udpduplex.NewHTTPServer(c.apiServerConfig, h, logger.Named("api"))
		if err != nil {
			return err
		}
		defer a.Close()
		g.Add(a.Run)
	}

	if c.goleak {
		defer func() {
			if err := goleak.Find(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "goleak: %s", err)
				os.Exit(1)
			}
		}()
	}

	return g.RunContext(cmd.Context())
}

// parseArgs validates all positional arguments before any socket is created.
func (c *command) parseArgs(args []string) error {
	localPort, err := udpduplex.ParsePort(args[0])
	if err != nil {
		return fmt.Errorf("local port: %w", err)
	}
	peer, err := udpduplex.ParsePeer(args[1], args[2])
	if err != nil {
		return err
	}

	c.sessionConfig.LocalPort = localPort
	c.sessionConfig.Peer = peer
	return nil
}

func (c *command) registerErrorsMetric() (func(name string), error) {
	m := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: promNs,
		Name:      "errors_total",
		Help:      "Number of errors logged",
	}, []string{"name"})

	if err := c.promReg.Register(m); err != nil {
		return nil, err
	}

	return func(name string) {
		m.WithLabelValues(name).Inc()
	}, nil
}

func (c *command) registerProcMetrics() error {
	return errors.Join(
		// Note that ProcessCollector is only available in Linux and Windows.
		c.promReg.Register(collectors.NewProcessCollector(
			collectors.ProcessCollectorOpts{Namespace: promNs})),
		c.promReg.Register(collectors.NewGoCollector()),
	)
}

func (c *command) registerVersionMetric() error {
	return c.promReg.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: promNs,
		Name:      "version",
		Help:      "udpduplex version, value is always 1",
		ConstLabels: prometheus.Labels{
			"version": version.Version,
			"commit":  version.Commit,
			"time":    version.Time,
		},
	}, func() float64 {
		return 1
	}))
}

func Command() *cobra.Command {
	c := makeCommand()

	cmd := &cobra.Command{
		Use:     "run <local_port> <peer_ip> <peer_port> [flags]",
		Short:   "Exchange UDP datagrams with a peer",
		Long:    long,
		Example: example,
		Args:    cobra.ExactArgs(3),
		RunE:    c.runE,
	}

	fs := cmd.Flags()
	bind.SessionConfig(fs, c.sessionConfig)
	bind.HTTPServerConfig(fs, c.apiServerConfig, "api")
	bind.LogConfig(fs, c.logConfig)

	fs.BoolVar(&c.goleak, "goleak", false, "enable goleak")
	bind.MarkFlagHidden(cmd,
		"goleak",
	)

	return cmd
}

func makeCommand() command {
	c := command{
		promReg:         prometheus.NewRegistry(),
		sessionConfig:   udpduplex.DefaultSessionConfig(),
		apiServerConfig: udpduplex.DefaultHTTPServerConfig(),
		logConfig:       log.DefaultConfig(),
	}
	c.sessionConfig.PromRegistry = c.promReg
	c.sessionConfig.PromNamespace = promNs

	return c
}

const long = `Bind a local UDP port, send "hello <counter>" to the peer once per second and print every datagram received.

The local port is bound on all IPv4 interfaces.
The peer IP must be an IPv4 address in dotted-decimal form.
Received datagrams are printed as they are, there is no framing, acknowledgment or retransmission.
Press Ctrl+C to stop, the socket is closed on exit.
`

const example = `  # On host A (192.168.0.10)
  udpduplex 50000 192.168.0.11 50001

  # On host B (192.168.0.11)
  udpduplex 50001 192.168.0.10 50000

  # Expose Prometheus metrics on localhost:10000
  udpduplex 50000 127.0.0.1 50001 --api-address localhost:10000
`
