package pipeline

import (
	"time"
)

// Stage identifies where in the pipeline an article's journey ended.
type Stage string

const (
	StageFetch   Stage = "fetch"
	StageRewrite Stage = "rewrite"
	StageEnrich  Stage = "enrich"
	StagePublish Stage = "publish"
)

// Outcome is an article's terminal state for one run. Every fetched
// article reaches exactly one outcome.
type Outcome string

const (
	OutcomeFilteredOut   Outcome = "filtered-out"
	OutcomeAlreadySeen   Outcome = "already-seen"
	OutcomeRewriteFailed Outcome = "rewrite-failed"
	OutcomePublishFailed Outcome = "publish-failed"
	OutcomePublished     Outcome = "published"
)

// Result records one article's terminal state. Created by the stage
// that ends the article's progress and never mutated afterwards.
type Result struct {
	ArticleID     string
	Title         string
	FeedName      string
	Outcome       Outcome
	Stage         Stage // failure stage, set for failed outcomes
	Reason        string
	DraftID       string
	ImageIncluded bool
}

// Summary aggregates a run. Built per feed by each worker and merged
// into the run total after the worker finishes its feed.
type Summary struct {
	StartedAt  time.Time
	FinishedAt time.Time

	FeedsProcessed int
	FeedsFailed    int

	Fetched        int
	Published      int
	FilteredOut    int
	AlreadySeen    int
	ImagesIncluded int

	FailedByStage map[Stage]int

	Results []Result
}

func NewSummary() *Summary {
	return &Summary{
		FailedByStage: make(map[Stage]int),
	}
}

// Skipped counts articles that terminated without an error: filtered
// out or already seen.
func (s *Summary) Skipped() int {
	return s.FilteredOut + s.AlreadySeen
}

// Failed counts articles that terminated with an error at any stage.
func (s *Summary) Failed() int {
	total := 0
	for _, n := range s.FailedByStage {
		total += n
	}
	return total
}

func (s *Summary) record(r Result) {
	s.Fetched++
	s.Results = append(s.Results, r)

	switch r.Outcome {
	case OutcomeFilteredOut:
		s.FilteredOut++
	case OutcomeAlreadySeen:
		s.AlreadySeen++
	case OutcomeRewriteFailed, OutcomePublishFailed:
		s.FailedByStage[r.Stage]++
	case OutcomePublished:
		s.Published++
		if r.ImageIncluded {
			s.ImagesIncluded++
		}
	}
}

func (s *Summary) merge(other *Summary) {
	s.FeedsProcessed += other.FeedsProcessed
	s.FeedsFailed += other.FeedsFailed
	s.Fetched += other.Fetched
	s.Published += other.Published
	s.FilteredOut += other.FilteredOut
	s.AlreadySeen += other.AlreadySeen
	s.ImagesIncluded += other.ImagesIncluded
	for stage, n := range other.FailedByStage {
		s.FailedByStage[stage] += n
	}
	s.Results = append(s.Results, other.Results...)
}
