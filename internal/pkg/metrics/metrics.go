// Package metrics exposes Prometheus metrics for a client session.
//
// Metrics collected:
//   - bigtwo_client_messages_received_total: messages received by kind
//   - bigtwo_client_messages_sent_total: messages sent by kind
//   - bigtwo_client_channel_errors_total: channel errors by type (closed, decode, send)
//   - bigtwo_client_dispatch_duration_seconds: time spent dispatching a message
//   - bigtwo_client_connected: 1 while a session is connected
//
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/davinnev/Big-Two-LAN/internal/pkg/message"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bigtwo_client"

// Error types recorded by ChannelError.
const (
	ErrorClosed = "closed"
	ErrorDecode = "decode"
	ErrorSend   = "send"
)

// Metrics holds the client's collectors.
type Metrics struct {
	received         *prometheus.CounterVec
	sent             *prometheus.CounterVec
	channelErrors    *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec
	connected        prometheus.Gauge
}

// New creates the client collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		received: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Total number of messages received from the server",
		}, []string{"kind"}),
		sent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_sent_total",
			Help:      "Total number of messages sent to the server",
		}, []string{"kind"}),
		channelErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "channel_errors_total",
			Help:      "Total channel errors by type",
		}, []string{"type"}),
		dispatchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dispatch_duration_seconds",
			Help:      "Message dispatch duration in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}, []string{"kind"}),
		connected: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connected",
			Help:      "Whether a session is connected (1) or not (0)",
		}),
	}
}

// Received counts a message read from the server.
func (m *Metrics) Received(k message.Kind) {
	if m == nil {
		return
	}
	m.received.WithLabelValues(k.String()).Inc()
}

// Sent counts a message written to the server.
func (m *Metrics) Sent(k message.Kind) {
	if m == nil {
		return
	}
	m.sent.WithLabelValues(k.String()).Inc()
}

// ChannelError counts a channel failure; errType is one of the Error constants.
func (m *Metrics) ChannelError(errType string) {
	if m == nil {
		return
	}
	m.channelErrors.WithLabelValues(errType).Inc()
}

// Dispatched observes how long the dispatcher took to handle a message.
func (m *Metrics) Dispatched(k message.Kind, d time.Duration) {
	if m == nil {
		return
	}
	m.dispatchDuration.WithLabelValues(k.String()).Observe(d.Seconds())
}

// SetConnected reports whether a session is currently connected.
func (m *Metrics) SetConnected(connected bool) {
	if m == nil {
		return
	}
	if connected {
		m.connected.Set(1)
		return
	}
	m.connected.Set(0)
}
