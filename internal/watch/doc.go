// Package watch rebuilds the site when Markdown sources change.
//
// Events from fsnotify are filtered down to post sources, debounced over a
// quiet window and handed to a single rebuild worker. A change that arrives
// while a build is running queues exactly one follow-up build.
package watch
