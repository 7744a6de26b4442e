package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommandsHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yasen_commands_total",
		Help: "Total number of dispatched commands by outcome",
	}, []string{"command", "outcome"})

	CommandDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "yasen_command_duration_seconds",
		Help:    "Duration of command handlers",
		Buckets: prometheus.DefBuckets,
	}, []string{"command"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "yasen_http_request_duration_seconds",
		Help:    "Duration of outbound API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"service", "status"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yasen_http_requests_total",
		Help: "Total number of outbound API requests",
	}, []string{"service", "status"})

	DocumentSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yasen_document_saves_total",
		Help: "Total number of persisted document writes",
	}, []string{"document", "status"})

	PresenceRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yasen_presence_retries_total",
		Help: "Total number of presence update retries after a closed connection",
	})

	DiscordMessagesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discord_messages_sent_total",
		Help: "Total number of Discord messages sent",
	}, []string{"kind", "status"})
)
