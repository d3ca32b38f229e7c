// Copyright 2022-2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package promutil

import (
	"bytes"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// WithPrefix returns a filter that accepts metric families whose name starts with prefix.
func WithPrefix(prefix string) func(*dto.MetricFamily) bool {
	return func(mf *dto.MetricFamily) bool {
		return strings.HasPrefix(mf.GetName(), prefix)
	}
}

// DumpPrometheusMetrics encodes the gathered metric families accepted by all filters in text format.
func DumpPrometheusMetrics(g prometheus.Gatherer, filters ...func(*dto.MetricFamily) bool) (string, error) {
	got, err := g.Gather()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.FmtText)
	for _, mf := range got {
		if !accept(mf, filters) {
			continue
		}
		if err := enc.Encode(mf); err != nil {
			return "", err
		}
	}

	return buf.String(), nil
}

func accept(mf *dto.MetricFamily, filters []func(*dto.MetricFamily) bool) bool {
	for _, f := range filters {
		if !f(mf) {
			return false
		}
	}
	return true
}

// CounterValue returns the value of an unlabeled counter.
// It returns false if the family does not exist or is not a counter.
func CounterValue(g prometheus.Gatherer, name string) (float64, bool) {
	got, err := g.Gather()
	if err != nil {
		return 0, false
	}
	for _, mf := range got {
		if mf.GetName() != name || mf.GetType() != dto.MetricType_COUNTER {
			continue
		}
		var v float64
		for _, m := range mf.GetMetric() {
			v += m.GetCounter().GetValue()
		}
		return v, true
	}
	return 0, false
}

// ParseMetricFamilies parses metrics in text format, the result can be used as a Gatherer.
func ParseMetricFamilies(r io.Reader) (*Gatherer, error) {
	var parser expfmt.TextParser
	mf, err := parser.TextToMetricFamilies(r)
	if err != nil {
		return nil, err
	}

	return &Gatherer{mf: mf}, nil
}

type Gatherer struct {
	mf map[string]*dto.MetricFamily
}

func (g *Gatherer) Gather() ([]*dto.MetricFamily, error) {
	res := make([]*dto.MetricFamily, 0, len(g.mf))
	for _, mf := range g.mf {
		res = append(res, mf)
	}
	return res, nil
}
