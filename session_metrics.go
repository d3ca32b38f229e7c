// Copyright 2022-2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package udpduplex

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type sessionMetrics struct {
	sent          prometheus.Counter
	sentBytes     prometheus.Counter
	sendErrors    prometheus.Counter
	received      prometheus.Counter
	receivedBytes prometheus.Counter
	receiveErrors prometheus.Counter
}

func newSessionMetrics(r prometheus.Registerer, namespace string) *sessionMetrics {
	if r == nil {
		r = prometheus.NewRegistry() // This registry will be discarded.
	}
	f := promauto.With(r)

	return &sessionMetrics{
		sent: f.NewCounter(prometheus.CounterOpts{
			Name:      "datagrams_sent_total",
			Namespace: namespace,
			Help:      "Number of datagrams sent to the peer",
		}),
		sentBytes: f.NewCounter(prometheus.CounterOpts{
			Name:      "sent_bytes_total",
			Namespace: namespace,
			Help:      "Number of payload bytes sent to the peer",
		}),
		sendErrors: f.NewCounter(prometheus.CounterOpts{
			Name:      "send_errors_total",
			Namespace: namespace,
			Help:      "Number of failed sends",
		}),
		received: f.NewCounter(prometheus.CounterOpts{
			Name:      "datagrams_received_total",
			Namespace: namespace,
			Help:      "Number of datagrams received",
		}),
		receivedBytes: f.NewCounter(prometheus.CounterOpts{
			Name:      "received_bytes_total",
			Namespace: namespace,
			Help:      "Number of payload bytes received, after truncation",
		}),
		receiveErrors: f.NewCounter(prometheus.CounterOpts{
			Name:      "receive_errors_total",
			Namespace: namespace,
			Help:      "Number of receive errors other than timeouts",
		}),
	}
}

func (m *sessionMetrics) send(n int) {
	m.sent.Inc()
	m.sentBytes.Add(float64(n))
}

func (m *sessionMetrics) sendError() {
	m.sendErrors.Inc()
}

func (m *sessionMetrics) receive(n int) {
	m.received.Inc()
	m.receivedBytes.Add(float64(n))
}

func (m *sessionMetrics) receiveError() {
	m.receiveErrors.Inc()
}
