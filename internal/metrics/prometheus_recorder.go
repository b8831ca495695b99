package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "blogbuilder"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration    *prom.HistogramVec
	buildDuration    prom.Histogram
	stageResults     *prom.CounterVec
	buildOutcome     *prom.CounterVec
	postsRendered    *prom.CounterVec
	postWarnings     *prom.CounterVec
	indexedPosts     prom.Gauge
	watchTriggers    prom.Counter
	rebuildCoalesced prom.Counter
}

// NewPrometheusRecorder constructs the collectors and registers them on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		postsRendered: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "posts_rendered_total",
			Help:      "Rendered post pages by language",
		}, []string{"lang"}),
		postWarnings: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "post_warnings_total",
			Help:      "Non-fatal post problems by kind",
		}, []string{"kind"}),
		indexedPosts: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "indexed_posts",
			Help:      "Entries written to the post index by the last build",
		}),
		watchTriggers: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "watch_triggers_total",
			Help:      "Source changes that requested a rebuild",
		}),
		rebuildCoalesced: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "watch_rebuilds_coalesced_total",
			Help:      "Rebuild requests folded into an already pending rebuild",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome,
		pr.postsRendered, pr.postWarnings, pr.indexedPosts, pr.watchTriggers, pr.rebuildCoalesced)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncPostsRendered(lang string) {
	if p == nil {
		return
	}
	p.postsRendered.WithLabelValues(lang).Inc()
}

func (p *PrometheusRecorder) IncPostWarnings(kind string) {
	if p == nil {
		return
	}
	p.postWarnings.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) SetIndexedPosts(n int) {
	if p == nil {
		return
	}
	p.indexedPosts.Set(float64(n))
}

func (p *PrometheusRecorder) IncWatchTrigger() {
	if p == nil {
		return
	}
	p.watchTriggers.Inc()
}

func (p *PrometheusRecorder) IncRebuildCoalesced() {
	if p == nil {
		return
	}
	p.rebuildCoalesced.Inc()
}

// WriteTextfile writes every metric gathered from g to path in the Prometheus
// text exposition format, replacing the file atomically. Missing parent
// directories are created.
func WriteTextfile(path string, g prom.Gatherer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prom.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
