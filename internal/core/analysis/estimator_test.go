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

// Unit tests for the speech-rate estimator: derivation of the uniform rate
// and the clamping behavior of the window-to-word-index mapping.
package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/analysis"
)

func TestNewSpeechRateRejectsNonPositiveDuration(t *testing.T) {
	_, err := analysis.NewSpeechRate(100, 0)
	assert.ErrorIs(t, err, analysis.ErrInvalidDuration)

	_, err = analysis.NewSpeechRate(100, -30)
	assert.ErrorIs(t, err, analysis.ErrInvalidDuration)
}

func TestNewSpeechRateDerivesRate(t *testing.T) {
	rate, err := analysis.NewSpeechRate(1200, 600)
	assert.NoError(t, err)
	assert.Equal(t, 2.0, rate.WordsPerSecond())
}

func TestNewSpeechRateEmptyTranscript(t *testing.T) {
	// No words is not an error; every window maps to the empty range.
	rate, err := analysis.NewSpeechRate(0, 600)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, rate.WordsPerSecond())

	lo, hi := rate.WindowIndices(0, 600)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 0, hi)
}

func TestWindowIndicesMapsWindows(t *testing.T) {
	// 100 words over 50 seconds: 2 words per second.
	rate, err := analysis.NewSpeechRate(100, 50)
	assert.NoError(t, err)

	lo, hi := rate.WindowIndices(0, 10)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 20, hi)

	lo, hi = rate.WindowIndices(10, 25)
	assert.Equal(t, 20, lo)
	assert.Equal(t, 50, hi)
}

func TestWindowIndicesClampsToWordRange(t *testing.T) {
	rate, err := analysis.NewSpeechRate(100, 50)
	assert.NoError(t, err)

	// A window running past the end of the video clamps to the word total.
	lo, hi := rate.WindowIndices(45, 60)
	assert.Equal(t, 90, lo)
	assert.Equal(t, 100, hi)

	// A window entirely past the end yields the empty range at the total.
	lo, hi = rate.WindowIndices(55, 60)
	assert.Equal(t, 100, lo)
	assert.Equal(t, 100, hi)
}

func TestWindowIndicesDegenerateWindows(t *testing.T) {
	rate, err := analysis.NewSpeechRate(100, 50)
	assert.NoError(t, err)

	// A zero-width window maps to an empty range, not an error.
	lo, hi := rate.WindowIndices(5, 5)
	assert.Equal(t, lo, hi)

	// An inverted window collapses to empty rather than a negative span.
	lo, hi = rate.WindowIndices(10, 5)
	assert.Equal(t, lo, hi)
}
