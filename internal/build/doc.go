// Package build runs a complete site build: every post of every language is
// rendered, the post index is rewritten and the client scripts are emitted.
// The CLI and watch mode both route through Builder.BuildAll.
package build
