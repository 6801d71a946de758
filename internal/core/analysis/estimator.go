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

// Package analysis contains the pure computation at the center of the
// alignment engine: speech-rate estimation, frame-transcript alignment,
// segment classification and scoring, and gap detection. Everything in this
// package is deterministic and free of I/O; the commands package wraps these
// pieces into chain steps and supplies telemetry around them.
//
// This file implements the temporal estimator. The transcript carries no
// timestamps of its own, so the engine assumes a uniform speech rate derived
// from the total word count and the total video duration, and uses that rate
// to map time windows onto word-index ranges. The estimator is deliberately
// the only place this assumption lives: a future transcript source with true
// word-level timestamps can replace it without touching the aligner.
package analysis

import (
	"errors"
	"math"
)

// ErrInvalidDuration is returned when the total video duration does not
// permit a speech-rate estimate. The rate is undefined without a positive
// time base, so this is the engine's one hard input error.
var ErrInvalidDuration = errors.New("total duration must be greater than zero to estimate speech rate")

// SpeechRate maps time ranges onto transcript word-index ranges under a
// uniform words-per-second assumption. It is a stateless value; the aligner
// creates one per run and reuses it for every frame.
type SpeechRate struct {
	totalWords      int
	durationSeconds float64
	wordsPerSecond  float64
}

// NewSpeechRate derives the estimator from the transcript word count and the
// total video duration. A duration of zero or less fails with
// ErrInvalidDuration. An empty transcript is not an error: the rate degrades
// to zero and every window maps to the empty word range.
func NewSpeechRate(totalWords int, durationSeconds float64) (SpeechRate, error) {
	if durationSeconds <= 0 {
		return SpeechRate{}, ErrInvalidDuration
	}
	return SpeechRate{
		totalWords:      totalWords,
		durationSeconds: durationSeconds,
		wordsPerSecond:  float64(totalWords) / durationSeconds,
	}, nil
}

// WordsPerSecond returns the derived average speech rate.
func (s SpeechRate) WordsPerSecond() float64 {
	return s.wordsPerSecond
}

// WindowIndices maps a time window [startSeconds, endSeconds] onto the
// half-open word-index range [floor(start*wps), floor(end*wps)), clamped to
// [0, totalWords]. Callers slice the transcript's word list with the returned
// bounds; a degenerate window yields an empty range, never an error.
func (s SpeechRate) WindowIndices(startSeconds, endSeconds float64) (lo, hi int) {
	lo = int(math.Floor(startSeconds * s.wordsPerSecond))
	hi = int(math.Floor(endSeconds * s.wordsPerSecond))

	if lo < 0 {
		lo = 0
	}
	if hi > s.totalWords {
		hi = s.totalWords
	}
	if lo > s.totalWords {
		lo = s.totalWords
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}
