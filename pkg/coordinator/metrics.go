package coordinator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cocode"

var (
	roomsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "rooms_active",
		Help:      "Rooms currently held in memory.",
	})
	connectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "connections_active",
		Help:      "Open websocket connections.",
	})
	packetsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "packets_total",
		Help:      "Inbound packets by type and handling result.",
	}, []string{"type", "result"})
	broadcastsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcast_messages_total",
		Help:      "Messages fanned out to room members by type.",
	}, []string{"type"})
)

// packet handling results
const (
	resultOk        = "ok"
	resultStale     = "stale"
	resultMalformed = "malformed"
	resultError     = "error"
)
