// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"time"

	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

const (
	namespace       = "pebble"
	metricsInterval = 10 * time.Second
)

// sampled gauges are refreshed from [pebble.DB.Metrics] every metricsInterval.
var sampled = []struct {
	name string
	help string
	read func(*pebble.Metrics) float64
}{
	{"tombstone_count", "approximate count of internal tombstones", func(m *pebble.Metrics) float64 {
		return float64(m.Keys.TombstoneCount)
	}},
	{"obsolete_table_size", "bytes in tables no longer referenced by the db", func(m *pebble.Metrics) float64 {
		return float64(m.Table.ObsoleteSize)
	}},
	{"obsolete_table_count", "tables no longer referenced by the db", func(m *pebble.Metrics) float64 {
		return float64(m.Table.ObsoleteCount)
	}},
	{"zombie_table_size", "bytes in unreferenced tables still held by iterators", func(m *pebble.Metrics) float64 {
		return float64(m.Table.ZombieSize)
	}},
	{"zombie_table_count", "unreferenced tables still held by iterators", func(m *pebble.Metrics) float64 {
		return float64(m.Table.ZombieCount)
	}},
	{"obsolete_wal_size", "bytes in WAL files no longer needed", func(m *pebble.Metrics) float64 {
		return float64(m.WAL.ObsoletePhysicalSize)
	}},
	{"obsolete_wal_count", "WAL files no longer needed", func(m *pebble.Metrics) float64 {
		return float64(m.WAL.ObsoleteFiles)
	}},
}

type metrics struct {
	stallStart atomic.Int64
	writeStall prometheus.Summary

	getLatency   prometheus.Summary
	batchLatency prometheus.Summary
	batchWrites  prometheus.Counter

	compactions       *prometheus.CounterVec
	activeCompactions prometheus.Gauge

	gauges []prometheus.Gauge
}

func summary(name, help string) prometheus.Summary {
	return prometheus.NewSummary(prometheus.SummaryOpts{Namespace: namespace, Name: name, Help: help})
}

func newMetrics() (*prometheus.Registry, *metrics, error) {
	m := &metrics{
		writeStall:   summary("write_stall", "time spent stalled on disk writes (ns)"),
		getLatency:   summary("read_latency", "time spent in db get (ns)"),
		batchLatency: summary("batch_latency", "time spent committing a change set (ns)"),
		batchWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_writes",
			Help:      "number of committed change sets",
		}),
		compactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compactions",
			Help:      "number of compactions by input level",
		}, []string{"level"}),
		activeCompactions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_compactions",
			Help:      "number of running compactions",
		}),
	}

	r := prometheus.NewRegistry()
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.writeStall),
		r.Register(m.getLatency),
		r.Register(m.batchLatency),
		r.Register(m.batchWrites),
		r.Register(m.compactions),
		r.Register(m.activeCompactions),
	)
	for _, s := range sampled {
		g := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: s.name, Help: s.help})
		errs.Add(r.Register(g))
		m.gauges = append(m.gauges, g)
	}
	return r, m, errs.Err
}

func (m *metrics) sample(pm *pebble.Metrics) {
	for i, s := range sampled {
		m.gauges[i].Set(s.read(pm))
	}
}

func (d *Database) onCompactionBegin(info pebble.CompactionInfo) {
	d.metrics.activeCompactions.Inc()
	level := "other"
	if len(info.Input) > 0 && info.Input[0].Level == 0 {
		level = "l0"
	}
	d.metrics.compactions.WithLabelValues(level).Inc()
}

func (d *Database) onCompactionEnd(pebble.CompactionInfo) {
	d.metrics.activeCompactions.Dec()
}

func (d *Database) onWriteStallBegin(pebble.WriteStallBeginInfo) {
	d.metrics.stallStart.Store(time.Now().UnixNano())
}

func (d *Database) onWriteStallEnd() {
	d.metrics.writeStall.Observe(float64(time.Now().UnixNano() - d.metrics.stallStart.Load()))
}

func (d *Database) collectMetrics() {
	t := time.NewTicker(metricsInterval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			d.metrics.sample(d.db.Metrics())
		case <-d.closing:
			return
		}
	}
}
