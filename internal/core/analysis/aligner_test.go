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

// Unit tests for the frame-transcript aligner: segment cardinality and
// ordering across the worker pool, window clamping at the video bounds, and
// the degenerate zero-duration path.
package analysis_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/analysis"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/model"
)

// numberedTranscript builds a transcript of n distinct words ("w0 w1 ...")
// over the given duration, so excerpt slices are easy to predict.
func numberedTranscript(n int, duration float64) *model.TranscriptBlock {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	return &model.TranscriptBlock{
		Text:                 strings.Join(words, " "),
		TotalDurationSeconds: duration,
	}
}

func TestAlignOneSegmentPerFrameInInputOrder(t *testing.T) {
	// Enough frames to keep the worker pool busy; order must still match
	// the input exactly.
	frames := make([]*model.VisualFrame, 50)
	for i := range frames {
		frames[i] = &model.VisualFrame{Timestamp: float64(i * 10)}
	}
	transcript := numberedTranscript(600, 600)

	aligner := analysis.NewAligner(30, 8)
	segments, err := aligner.Align(frames, transcript)
	assert.NoError(t, err)
	assert.Len(t, segments, len(frames))

	for i, segment := range segments {
		assert.NotNil(t, segment)
		assert.Equal(t, frames[i].Timestamp, segment.Timestamp)
		assert.Equal(t, *frames[i], segment.Frame)
	}
}

func TestAlignExcerptMatchesWindow(t *testing.T) {
	// 60 words over 60 seconds: one word per second, so a [25, 35] window
	// carries exactly words 25 through 34.
	transcript := numberedTranscript(60, 60)
	frames := []*model.VisualFrame{{Timestamp: 30}}

	aligner := analysis.NewAligner(5, 1)
	segments, err := aligner.Align(frames, transcript)
	assert.NoError(t, err)
	assert.Len(t, segments, 1)

	excerpt := segments[0].Excerpt
	assert.Equal(t, 25.0, excerpt.WindowStartSeconds)
	assert.Equal(t, 35.0, excerpt.WindowEndSeconds)
	assert.Equal(t, 10, excerpt.WordCount)
	assert.Equal(t, strings.Join(transcript.Words()[25:35], " "), excerpt.Text)
}

func TestAlignClampsWindowAtVideoStart(t *testing.T) {
	transcript := numberedTranscript(120, 120)
	frames := []*model.VisualFrame{{Timestamp: 0}}

	aligner := analysis.NewAligner(30, 1)
	segments, err := aligner.Align(frames, transcript)
	assert.NoError(t, err)

	// A frame at t=0 gets the truncated window [0, 30], never a negative
	// start.
	assert.Equal(t, 0.0, segments[0].Excerpt.WindowStartSeconds)
	assert.Equal(t, 30.0, segments[0].Excerpt.WindowEndSeconds)
	assert.Equal(t, 30, segments[0].Excerpt.WordCount)
}

func TestAlignClampsWindowAtVideoEnd(t *testing.T) {
	transcript := numberedTranscript(120, 120)
	frames := []*model.VisualFrame{{Timestamp: 120}}

	aligner := analysis.NewAligner(30, 1)
	segments, err := aligner.Align(frames, transcript)
	assert.NoError(t, err)

	assert.Equal(t, 90.0, segments[0].Excerpt.WindowStartSeconds)
	assert.Equal(t, 120.0, segments[0].Excerpt.WindowEndSeconds)
	assert.Equal(t, 30, segments[0].Excerpt.WordCount)
}

func TestAlignZeroDurationDegrades(t *testing.T) {
	// No time base to distribute words over: one degenerate segment per
	// frame with an empty excerpt, not a failure.
	transcript := &model.TranscriptBlock{Text: "some words here", TotalDurationSeconds: 0}
	frames := []*model.VisualFrame{{Timestamp: 0}, {Timestamp: 5}}

	aligner := analysis.NewAligner(30, 2)
	segments, err := aligner.Align(frames, transcript)
	assert.NoError(t, err)
	assert.Len(t, segments, 2)
	for i, segment := range segments {
		assert.Equal(t, frames[i].Timestamp, segment.Timestamp)
		assert.Equal(t, "", segment.Excerpt.Text)
		assert.Equal(t, 0, segment.Excerpt.WordCount)
	}
}

func TestAlignNegativeDurationFails(t *testing.T) {
	transcript := &model.TranscriptBlock{Text: "some words", TotalDurationSeconds: -10}
	frames := []*model.VisualFrame{{Timestamp: 0}}

	aligner := analysis.NewAligner(30, 2)
	_, err := aligner.Align(frames, transcript)
	assert.ErrorIs(t, err, analysis.ErrInvalidDuration)
}

func TestAlignEmptyFrameList(t *testing.T) {
	aligner := analysis.NewAligner(30, 2)
	segments, err := aligner.Align(nil, numberedTranscript(100, 100))
	assert.NoError(t, err)
	assert.NotNil(t, segments)
	assert.Len(t, segments, 0)
}

func TestAlignIsDeterministic(t *testing.T) {
	frames := model.GetExampleFrames()
	transcript := model.GetExampleTranscript()
	aligner := analysis.NewAligner(30, 4)

	first, err := aligner.Align(frames, transcript)
	assert.NoError(t, err)
	second, err := aligner.Align(frames, transcript)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}
