// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metric provides small wrappers around prometheus instruments so
// callers can track a counter, gauge, or running average without importing
// the prometheus client directly.
package metric

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// ErrMetricNotFound is returned when a metric is not found.
var ErrMetricNotFound = errors.New("metric not found")

// Averager tracks a running average of observed values. Unlike Counter and
// Gauge it has no prometheus type of its own; NewAveragerMetric renders it
// onto a prometheus.Gauge so the running mean is still scrapeable.
type Averager interface {
	Observe(value float64)
	Read() float64
}

type averager struct {
	mu    sync.RWMutex
	sum   float64
	count int64
}

// NewAverager returns a new, unregistered Averager.
func NewAverager() Averager {
	return &averager{}
}

func (a *averager) Observe(value float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sum += value
	a.count++
}

func (a *averager) Read() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.count == 0 {
		return 0
	}
	return a.sum / float64(a.count)
}

// NewAveragerMetric returns an Averager whose Read value is exposed as
// namespace_name via reg, mirroring how poll latency averages are
// published alongside the raw poll-count gauges.
func NewAveragerMetric(namespace, name, help string, reg prometheus.Registerer) (Averager, error) {
	a := &averagerMetric{gauge: prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})}
	if err := reg.Register(a.gauge); err != nil {
		return nil, err
	}
	return a, nil
}

type averagerMetric struct {
	mu    sync.RWMutex
	sum   float64
	count int64
	gauge prometheus.Gauge
}

func (a *averagerMetric) Observe(value float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sum += value
	a.count++
	a.gauge.Set(a.sum / float64(a.count))
}

func (a *averagerMetric) Read() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.count == 0 {
		return 0
	}
	return a.sum / float64(a.count)
}

// Counter tracks a monotonically increasing count.
type Counter interface {
	Inc()
	Add(delta int64)
	Read() int64
}

type counter struct {
	mu  sync.RWMutex
	val int64
	ctr prometheus.Counter
}

// NewCounterMetric returns a Counter registered under namespace_name.
func NewCounterMetric(namespace, name, help string, reg prometheus.Registerer) (Counter, error) {
	c := &counter{ctr: prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})}
	if err := reg.Register(c.ctr); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *counter) Inc() { c.Add(1) }

func (c *counter) Add(delta int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.val += delta
	c.ctr.Add(float64(delta))
}

func (c *counter) Read() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.val
}

// Gauge tracks a value that can move up or down.
type Gauge interface {
	Set(value float64)
	Add(delta float64)
	Read() float64
}

type gauge struct {
	mu  sync.RWMutex
	val float64
	g   prometheus.Gauge
}

// NewGaugeMetric returns a Gauge registered under namespace_name.
func NewGaugeMetric(namespace, name, help string, reg prometheus.Registerer) (Gauge, error) {
	gg := &gauge{g: prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})}
	if err := reg.Register(gg.g); err != nil {
		return nil, err
	}
	return gg, nil
}

func (g *gauge) Set(value float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.val = value
	g.g.Set(value)
}

func (g *gauge) Add(delta float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.val += delta
	g.g.Add(delta)
}

func (g *gauge) Read() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.val
}
