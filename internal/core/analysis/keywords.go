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
// This file holds the fixed lexical keyword sets the classifier and the gap
// analyzer match excerpts against. Matching is exact word membership after
// lowercasing and punctuation stripping; there is no semantic or
// embedding-based matching.
package analysis

import "strings"

// codeKeywords are spoken terms that indicate the narrator is talking about
// source code.
var codeKeywords = wordSet(
	"function", "func", "class", "method", "variable", "constant",
	"import", "package", "struct", "interface", "array", "slice",
	"string", "integer", "boolean", "loop", "return", "parameter",
	"argument", "compile", "syntax", "code", "implementation",
)

// architectureKeywords are spoken terms that indicate the narrator is talking
// about system structure or a diagram.
var architectureKeywords = wordSet(
	"system", "architecture", "diagram", "component", "service",
	"database", "module", "layer", "design", "infrastructure",
	"pipeline", "workflow", "flow", "topology", "schema",
)

func wordSet(words ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}

// punctuationCutSet covers the trailing and leading punctuation that
// transcription output attaches to words.
const punctuationCutSet = ".,;:!?()[]{}\"'`"

// HasCodeKeywords reports whether the text mentions any code-related term.
func HasCodeKeywords(text string) bool {
	return countMatches(text, codeKeywords) > 0
}

// HasArchitectureKeywords reports whether the text mentions any
// architecture-related term.
func HasArchitectureKeywords(text string) bool {
	return countMatches(text, architectureKeywords) > 0
}

// HasTechnicalKeywords reports whether the text mentions any term from either
// keyword set. The gap analyzer uses this to separate technical narration
// from general talk.
func HasTechnicalKeywords(text string) bool {
	return HasCodeKeywords(text) || HasArchitectureKeywords(text)
}

// TechnicalDensity returns the fraction of words in the text that match a
// technical keyword, in [0, 1]. It stands in for a priority score on gaps
// that originate from narration rather than from a scored frame.
func TechnicalDensity(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}
	hits := countMatches(text, codeKeywords) + countMatches(text, architectureKeywords)
	density := float64(hits) / float64(len(words))
	if density > 1 {
		density = 1
	}
	return density
}

func countMatches(text string, set map[string]struct{}) int {
	count := 0
	for _, raw := range strings.Fields(strings.ToLower(text)) {
		word := strings.Trim(raw, punctuationCutSet)
		if _, ok := set[word]; ok {
			count++
		}
	}
	return count
}
