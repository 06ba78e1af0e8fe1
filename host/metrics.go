// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	txsAccepted prometheus.Counter
	txsRejected *prometheus.CounterVec
	simulations prometheus.Counter
	execution   prometheus.Histogram
	stateWrites prometheus.Counter
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		txsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "host",
			Name:      "txs_accepted",
			Help:      "number of committed transactions",
		}),
		txsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "host",
			Name:      "txs_rejected",
			Help:      "number of transactions that committed nothing",
		}, []string{"stage"}),
		simulations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "host",
			Name:      "simulations",
			Help:      "number of read-only calls",
		}),
		execution: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "host",
			Name:      "execution_seconds",
			Help:      "time spent executing a transaction",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		stateWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "host",
			Name:      "state_writes",
			Help:      "number of keys written by committed transactions",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.txsAccepted),
		r.Register(m.txsRejected),
		r.Register(m.simulations),
		r.Register(m.execution),
		r.Register(m.stateWrites),
	)
	return m, errs.Err
}
