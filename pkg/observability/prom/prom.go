// Package prom implements the observability hooks with Prometheus metrics.
//
// Metrics are registered with the default registry on import. Install the
// hooks once at startup with [Install] and expose them with promhttp.
package prom

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/graphwalk/pkg/observability"
)

var (
	// analysisTotal counts analyses by kind and result
	analysisTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "graphwalk_analysis_total",
		Help: "Total analyses run by kind and result",
	}, []string{"kind", "result"})

	// analysisDuration tracks algorithm latency
	analysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "graphwalk_analysis_duration_seconds",
		Help:    "Analysis duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10us to ~2.6s
	}, []string{"kind"})

	// animationsTotal counts animation sessions by mode and outcome
	animationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "graphwalk_animations_total",
		Help: "Animation sessions by mode and outcome (started, rejected, completed, canceled)",
	}, []string{"mode", "outcome"})

	// animationFrames counts frames played
	animationFrames = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "graphwalk_animation_frames_total",
		Help: "Animation frames played by mode",
	}, []string{"mode"})

	// animationActive is 1 while a session runs
	animationActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "graphwalk_animation_active",
		Help: "Whether an animation session is currently running",
	})

	// drawDuration tracks time spent in the drawer
	drawDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "graphwalk_draw_duration_seconds",
		Help:    "Time spent handing one frame to the drawer",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	})

	// drawErrors counts failed draws
	drawErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "graphwalk_draw_errors_total",
		Help: "Frames the drawer failed to render",
	})

	// compositionErrors counts aborted compositions by layer
	compositionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "graphwalk_composition_errors_total",
		Help: "Compositions aborted by a consistency check, by layer",
	}, []string{"layer"})

	// httpRequests counts HTTP responses by route and status
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "graphwalk_http_requests_total",
		Help: "HTTP requests by method, route and status code",
	}, []string{"method", "route", "code"})

	// httpDuration tracks HTTP handler latency
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "graphwalk_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Install registers Prometheus-backed implementations of every hook.
func Install() {
	observability.SetAnalysisHooks(AnalysisHooks{})
	observability.SetAnimationHooks(AnimationHooks{})
	observability.SetRenderHooks(RenderHooks{})
	observability.SetHTTPHooks(HTTPHooks{})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// AnalysisHooks records analysis counts and latency.
type AnalysisHooks struct{}

func (AnalysisHooks) OnAnalysisStart(context.Context, string, int) {}

func (AnalysisHooks) OnAnalysisComplete(_ context.Context, kind string, _ int, d time.Duration, err error) {
	analysisTotal.WithLabelValues(kind, result(err)).Inc()
	analysisDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// AnimationHooks records session outcomes and frame counts.
type AnimationHooks struct{}

func (AnimationHooks) OnAnimationStart(_ context.Context, mode string, _ int) {
	animationsTotal.WithLabelValues(mode, "started").Inc()
	animationActive.Set(1)
}

func (AnimationHooks) OnAnimationRejected(_ context.Context, mode string) {
	animationsTotal.WithLabelValues(mode, "rejected").Inc()
}

func (AnimationHooks) OnFrame(_ context.Context, mode string, _ int) {
	animationFrames.WithLabelValues(mode).Inc()
}

func (AnimationHooks) OnAnimationComplete(_ context.Context, mode string, _ int, _ time.Duration, canceled bool) {
	outcome := "completed"
	if canceled {
		outcome = "canceled"
	}
	animationsTotal.WithLabelValues(mode, outcome).Inc()
	animationActive.Set(0)
}

// RenderHooks records draw latency and failures.
type RenderHooks struct{}

func (RenderHooks) OnDraw(_ string, d time.Duration, err error) {
	drawDuration.Observe(d.Seconds())
	if err != nil {
		drawErrors.Inc()
	}
}

func (RenderHooks) OnCompositionError(layer string, _ error) {
	compositionErrors.WithLabelValues(layer).Inc()
}

// HTTPHooks records request counts and latency.
type HTTPHooks struct{}

func (HTTPHooks) OnRequest(context.Context, string, string) {}

func (HTTPHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
