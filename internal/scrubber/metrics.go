package scrubber

import "github.com/prometheus/client_golang/prometheus"

// metrics instruments the sweep loop. A nil *metrics is valid and all
// methods are no-ops on it, so telemetry stays optional.
type metrics struct {
	sweepsTotal    prometheus.Counter
	callbacksTotal prometheus.Counter
	repairsTotal   prometheus.Counter
	regions        prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}
	m := &metrics{
		sweepsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "radmem_scrubber_sweeps_total",
			Help: "Completed scrub sweeps.",
		}),
		callbacksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "radmem_scrubber_callbacks_total",
			Help: "Repair callbacks invoked across all sweeps.",
		}),
		repairsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "radmem_scrubber_repairs_total",
			Help: "Callbacks that reported a corrected discrepancy.",
		}),
		regions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "radmem_scrubber_regions",
			Help: "Currently registered memory regions.",
		}),
	}
	reg.MustRegister(m.sweepsTotal, m.callbacksTotal, m.repairsTotal, m.regions)
	return m
}

func (m *metrics) setRegions(n int) {
	if m == nil {
		return
	}
	m.regions.Set(float64(n))
}

func (m *metrics) observeSweep(callbacks, repaired int) {
	if m == nil {
		return
	}
	m.sweepsTotal.Inc()
	m.callbacksTotal.Add(float64(callbacks))
	m.repairsTotal.Add(float64(repaired))
}
