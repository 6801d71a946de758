// Copyright 2025 Skylark Media, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package analysis contains the pure computation of the alignment engine.
// This file implements the frame-transcript aligner.
//
// Logic Flow:
// For every scored frame the aligner cuts a symmetric time window around the
// frame's timestamp, clamps it to the video bounds, maps it onto a word-index
// range through the speech-rate estimator, and slices the matching excerpt
// out of the transcript. Frames are independent of one another, so the work
// fans out across a small worker pool; each job carries its input index and
// the results land in a pre-sized slice at that index, which restores input
// order without a sort.
package analysis

import (
	"strings"
	"sync"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/model"
)

// Default tuning for the pipeline. The configuration layer overrides these
// from the [alignment] TOML table.
const (
	DefaultWindowSeconds        = 30.0
	DefaultSubstantialWordCount = 30
	DefaultDiagramThreshold     = 0.5
	DefaultWorkers              = 4
)

// Aligner extracts a transcript excerpt for each visual frame.
// WindowSeconds is the half-width of the alignment window: a frame at time t
// gets the excerpt spoken during [t-WindowSeconds, t+WindowSeconds].
type Aligner struct {
	WindowSeconds float64
	Workers       int
}

// NewAligner returns an aligner with the given half-window, falling back to
// the defaults for unset values.
func NewAligner(windowSeconds float64, workers int) *Aligner {
	if windowSeconds <= 0 {
		windowSeconds = DefaultWindowSeconds
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Aligner{WindowSeconds: windowSeconds, Workers: workers}
}

// Align produces exactly one AlignedSegment per input frame, preserving input
// order. A negative total duration fails with ErrInvalidDuration. A
// zero-duration video degrades instead of failing: every window collapses to
// [0,0] and every excerpt is empty. Frames at the very start or end of the
// video get asymmetric, truncated windows.
func (a *Aligner) Align(frames []*model.VisualFrame, transcript *model.TranscriptBlock) ([]*model.AlignedSegment, error) {
	duration := transcript.TotalDurationSeconds
	if duration < 0 {
		return nil, ErrInvalidDuration
	}

	segments := make([]*model.AlignedSegment, len(frames))
	if len(frames) == 0 {
		return segments, nil
	}

	if duration == 0 {
		// No time base to distribute words over. Emit degenerate segments
		// rather than failing: downstream stages handle empty excerpts.
		for i, frame := range frames {
			segments[i] = &model.AlignedSegment{Timestamp: frame.Timestamp, Frame: *frame}
		}
		return segments, nil
	}

	words := transcript.Words()
	rate, err := NewSpeechRate(len(words), duration)
	if err != nil {
		return nil, err
	}

	type alignJob struct {
		index int
		frame *model.VisualFrame
	}

	jobs := make(chan alignJob, len(frames))

	var wg sync.WaitGroup
	for w := 0; w < a.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				// Each worker writes only to its own index, so the slice
				// needs no locking and the output order matches the input.
				segments[j.index] = a.alignOne(j.frame, words, rate, duration)
			}
		}()
	}

	for i, frame := range frames {
		jobs <- alignJob{index: i, frame: frame}
	}
	close(jobs)
	wg.Wait()

	return segments, nil
}

// alignOne cuts the excerpt for a single frame.
func (a *Aligner) alignOne(frame *model.VisualFrame, words []string, rate SpeechRate, duration float64) *model.AlignedSegment {
	start := frame.Timestamp - a.WindowSeconds
	end := frame.Timestamp + a.WindowSeconds

	// Clamp the window to the video bounds. A frame at t=0 yields [0, w]
	// rather than a negative start.
	if start < 0 {
		start = 0
	}
	if end > duration {
		end = duration
	}

	lo, hi := rate.WindowIndices(start, end)
	excerptWords := words[lo:hi]

	return &model.AlignedSegment{
		Timestamp: frame.Timestamp,
		Frame:     *frame,
		Excerpt: model.AudioExcerpt{
			Text:               strings.Join(excerptWords, " "),
			WordCount:          len(excerptWords),
			WindowStartSeconds: start,
			WindowEndSeconds:   end,
		},
	}
}
