package build

import (
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/i18n"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// Status represents the outcome of a build execution.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
)

// Report describes one build run.
type Report struct {
	BuildID    string
	Status     Status
	ConfigHash string

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// PostsByLang counts rendered posts per language.
	PostsByLang map[i18n.Lang]int
	// Results holds one entry per rendered post, in processing order.
	Results []*post.Result

	IndexPath string
	Scripts   []string
}

func newReport(id, configHash string, start time.Time) *Report {
	r := &Report{
		BuildID:     id,
		ConfigHash:  configHash,
		StartTime:   start,
		PostsByLang: make(map[i18n.Lang]int, len(i18n.All)),
	}
	for _, l := range i18n.All {
		r.PostsByLang[l] = 0
	}
	return r
}

// Total is the number of rendered posts.
func (r *Report) Total() int {
	return len(r.Results)
}

// Warnings counts non-fatal problems across all posts.
func (r *Report) Warnings() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Warnings)
	}
	return n
}

func (r *Report) finish(status Status) {
	r.Status = status
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
}
