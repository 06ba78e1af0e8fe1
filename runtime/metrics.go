// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	calls     *prometheus.CounterVec
	failures  *prometheus.CounterVec
	rollbacks prometheus.Counter
	denied    *prometheus.CounterVec
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "runtime",
			Name:      "calls",
			Help:      "number of contract calls",
		}, []string{"contract", "function"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "runtime",
			Name:      "failures",
			Help:      "number of contract calls returning an error",
		}, []string{"contract", "function"}),
		rollbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "runtime",
			Name:      "rollbacks",
			Help:      "number of state rollbacks after a failed call",
		}),
		denied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "runtime",
			Name:      "denied",
			Help:      "number of calls refused before execution",
		}, []string{"reason"}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.calls),
		r.Register(m.failures),
		r.Register(m.rollbacks),
		r.Register(m.denied),
	)
	return m, errs.Err
}
