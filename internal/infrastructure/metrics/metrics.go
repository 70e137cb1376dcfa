// Package metrics expone contadores Prometheus de comandos y de fallos de persistencia.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Costbook-api/internal/domain"
)

// Metrics registro propio (no el global) para poder crear varios en tests.
type Metrics struct {
	registry    *prometheus.Registry
	commands    *prometheus.CounterVec
	persistence *prometheus.CounterVec
}

// New crea el registro con los colectores de proceso y Go.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		commands: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "costbook",
			Name:      "commands_total",
			Help:      "Comandos ejecutados por nombre y resultado.",
		}, []string{"command", "outcome"}),
		persistence: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "costbook",
			Name:      "persistence_failures_total",
			Help:      "Fallos del almacenamiento por colección y operación.",
		}, []string{"collection", "op"}),
	}
}

// ObserveCommand cuenta un comando. outcome: ok, invalid, duplicate, not_found, error.
func (m *Metrics) ObserveCommand(command string, err error) {
	m.commands.WithLabelValues(command, outcome(err)).Inc()
}

// ObservePersistenceFailure cuenta un fallo de lectura, escritura o borrado.
func (m *Metrics) ObservePersistenceFailure(collection, op string) {
	m.persistence.WithLabelValues(collection, op).Inc()
}

// Handler handler HTTP de /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry acceso al registro (tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	case errors.Is(err, domain.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
