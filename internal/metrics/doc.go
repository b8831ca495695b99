// Package metrics provides build observability for blogbuilder.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	b := build.New(cfg, build.WithRecorder(metrics.NoopRecorder{}))
//
// PrometheusRecorder registers its collectors on a caller-provided registry.
// Since builds are one-shot processes, the registry is exported with WriteTextfile
// in the text exposition format (node_exporter textfile collector) rather than
// served over HTTP.
package metrics
