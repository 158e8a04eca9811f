/*
 * Copyright 2026 The Normalize Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package engine

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics bundles the Prometheus collectors exposed by an Engine: a
// CounterVec, a HistogramVec and a Gauge, registered once, on the first
// newMetrics call.
// Normalize-call metrics are namespaced "normalize" and labeled by
// outcome rather than HTTP status, since a normalize call has none.
type metrics struct {
	callsTotal     *prometheus.CounterVec
	callDuration   *prometheus.HistogramVec
	cycleDepthHigh prometheus.Gauge
}

var (
	metricsOnce     sync.Once
	defaultMetrics  *metrics
	registerMetrics = func(m *metrics) {
		prometheus.MustRegister(m.callsTotal, m.callDuration, m.cycleDepthHigh)
	}
)

// newMetrics builds (and, the first time, registers with the default
// Prometheus registry) the Engine's metric collectors.
func newMetrics() *metrics {
	metricsOnce.Do(func() {
		m := &metrics{
			callsTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "normalize",
					Subsystem: "engine",
					Name:      "calls_total",
					Help:      "Total Normalize calls, by outcome.",
				},
				[]string{"outcome"},
			),
			callDuration: prometheus.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: "normalize",
					Subsystem: "engine",
					Name:      "call_duration_seconds",
					Help:      "Normalize call latency.",
					Buckets:   prometheus.DefBuckets,
				},
				[]string{"outcome"},
			),
			cycleDepthHigh: prometheus.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "normalize",
					Subsystem: "engine",
					Name:      "cycle_set_high_watermark",
					Help:      "Largest Cycle-Detection Set size observed by the most recent Normalize call.",
				},
			),
		}
		registerMetrics(m)
		defaultMetrics = m
	})
	return defaultMetrics
}
