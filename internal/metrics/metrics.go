package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder exposes scan, classification and tracking counters.
type Recorder struct {
	scans      *prometheus.CounterVec
	updates    *prometheus.CounterVec
	visible    prometheus.Gauge
	suspicious prometheus.Gauge
	amplitude  prometheus.Gauge
}

// New creates a recorder and registers its collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wififinder_scan_requests_total",
			Help: "Active scan requests, by throttle result.",
		}, []string{"result"}),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wififinder_tracker_updates_total",
			Help: "Tracker refreshes, by whether the target was found.",
		}, []string{"found"}),
		visible: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wififinder_networks_visible",
			Help: "Access points in the last batch.",
		}),
		suspicious: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wififinder_networks_suspicious",
			Help: "Access points flagged suspicious in the last batch.",
		}),
		amplitude: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wififinder_vibration_amplitude",
			Help: "Last requested vibration amplitude, 0 when suppressed.",
		}),
	}
	reg.MustRegister(r.scans, r.updates, r.visible, r.suspicious, r.amplitude)
	return r
}

func (r *Recorder) ScanRequest(allowed bool) {
	if allowed {
		r.scans.WithLabelValues("allowed").Inc()
		return
	}
	r.scans.WithLabelValues("throttled").Inc()
}

func (r *Recorder) Batch(visible, suspicious int) {
	r.visible.Set(float64(visible))
	r.suspicious.Set(float64(suspicious))
}

func (r *Recorder) TrackerUpdate(found bool, amplitude int) {
	if found {
		r.updates.WithLabelValues("true").Inc()
	} else {
		r.updates.WithLabelValues("false").Inc()
	}
	r.amplitude.Set(float64(amplitude))
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
