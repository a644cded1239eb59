package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Métricas de autorización. Viven en un paquete aparte para que authz y
// los middlewares HTTP las usen sin importarse entre sí.

var (
	GateDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "authz_gate_decisions_total",
		Help: "Decisiones de los gates de rol por gate y resultado",
	}, []string{"gate", "result"}) // result: allow|deny|error

	RoleCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "authz_role_cache_lookups_total",
		Help: "Lookups al cache de roles por resultado",
	}, []string{"result"}) // result: hit|miss

	RoleResolveLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "authz_role_resolve_latency_ms",
		Help:    "Latencia de la resolución de rol contra el store, en milisegundos",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})
)

// RegisterAuthz registra las métricas en el registry indicado (o el default si nil).
func RegisterAuthz(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{GateDecisions, RoleCacheLookups, RoleResolveLatency} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
