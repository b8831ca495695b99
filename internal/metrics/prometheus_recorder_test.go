package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("render", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStageResult("render", ResultSuccess)
	pr.IncBuildOutcome(BuildOutcomeSuccess)
	pr.IncPostsRendered("en")
	pr.IncPostWarnings("missing_field")
	pr.SetIndexedPosts(3)
	pr.IncWatchTrigger()
	pr.IncRebuildCoalesced()

	mfs, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	assert.True(t, names["blogbuilder_build_duration_seconds"])
	assert.True(t, names["blogbuilder_posts_rendered_total"])
	assert.True(t, names["blogbuilder_indexed_posts"])
	assert.True(t, names["blogbuilder_watch_rebuilds_coalesced_total"])
}

func TestPrometheusRecorder_NilReceiver(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.IncBuildOutcome(BuildOutcomeFailed)
		pr.SetIndexedPosts(1)
	})
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.SetIndexedPosts(2)

	path := filepath.Join(t.TempDir(), "textfile", "blogbuilder.prom")
	require.NoError(t, WriteTextfile(path, reg))

	// #nosec G304 -- path is controlled by test.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "blogbuilder_indexed_posts 2")
}
