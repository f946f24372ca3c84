// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pollbot_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pollbot_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 3},
		},
		[]string{"method", "path"},
	)

	// Poll lifecycle
	PollsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pollbot_polls_created_total",
			Help: "Polls successfully posted",
		},
	)

	PollsClosed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pollbot_polls_closed_total",
			Help: "Polls closed by their creator",
		},
	)

	OpenPolls = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pollbot_open_polls",
			Help: "Polls currently open for voting",
		},
	)

	VotesRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pollbot_votes_recorded_total",
			Help: "Ballots recorded, including changed votes",
		},
	)

	CloseDenied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pollbot_close_denied_total",
			Help: "Close attempts by someone other than the creator",
		},
	)

	ValidationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pollbot_validation_failures_total",
			Help: "Rejected poll commands and vote payloads",
		},
	)

	// Delivery
	DeliveryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pollbot_delivery_failures_total",
			Help: "Failed messaging gateway calls",
		},
		[]string{"op"}, // post, update, ephemeral
	)

	DeliveryLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pollbot_delivery_latency_seconds",
			Help:    "Messaging gateway call latency",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"op"},
	)
)
