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

// Package model defines the data structures for the alignment engine. This
// file provides factory functions for hardcoded example inputs. They back the
// unit tests and double as living documentation of what a well-formed
// manifest looks like.
package model

import "strings"

// GetExampleMetadata returns sample video metadata for a short programming
// tutorial.
func GetExampleMetadata() *VideoMetadata {
	return &VideoMetadata{
		Title:           "Building a REST API in Go",
		Author:          "Skylark Media Engineering",
		DurationSeconds: 600,
	}
}

// GetExampleFrames returns three scored frames that between them exercise the
// interesting classifier paths: a high-priority code frame, a mid-priority
// diagram frame, and a low-priority frame with no detected visual content.
func GetExampleFrames() []*VisualFrame {
	return []*VisualFrame{
		{
			Timestamp:        10,
			SourcePath:       "frames/frame_00010.jpg",
			CodeScore:        0.92,
			HasCode:          true,
			PriorityScore:    0.8,
			DetectionReasons: []string{"editor chrome", "monospace text"},
		},
		{
			Timestamp:     100,
			SourcePath:    "frames/frame_00100.jpg",
			CodeScore:     0.1,
			HasCode:       false,
			DiagramScore:  0.6,
			PriorityScore: 0.4,
		},
		{
			Timestamp:     500,
			SourcePath:    "frames/frame_00500.jpg",
			CodeScore:     0.05,
			HasCode:       false,
			PriorityScore: 0.2,
		},
	}
}

// GetExampleTranscript returns a 600-second transcript whose technical
// vocabulary clusters where the example frames expect it: code terms near the
// start, architecture terms in the middle, and plain talk at the end.
func GetExampleTranscript() *TranscriptBlock {
	var b strings.Builder

	// Words 0-149 cover roughly the first minute of the video at the derived
	// speech rate, so the code vocabulary lands inside the first frame's
	// alignment window.
	b.WriteString("welcome back everyone today we write a small web service from scratch ")
	b.WriteString("first we define a function called handler and a struct for the request payload ")
	b.WriteString("notice how the import block stays tidy and each method returns an error explicitly ")
	for i := 0; i < 18; i++ {
		b.WriteString("we keep the handler code short and test every variable and return path carefully ")
	}

	// Middle of the transcript: architecture vocabulary near t=100s.
	b.WriteString("now step back and look at the overall system architecture in this diagram ")
	b.WriteString("each component talks to the database through a single service layer ")
	for i := 0; i < 40; i++ {
		b.WriteString("the design keeps every module behind a clean boundary in the larger system ")
	}

	// Tail of the transcript: no technical vocabulary near t=500s.
	for i := 0; i < 45; i++ {
		b.WriteString("thanks again for watching and please share the show with a friend ")
	}

	return &TranscriptBlock{Text: strings.TrimSpace(b.String()), TotalDurationSeconds: 600}
}

// GetExampleManifest bundles the example inputs the way the intake bucket
// would deliver them.
func GetExampleManifest() *AlignmentManifest {
	return &AlignmentManifest{
		Metadata:   *GetExampleMetadata(),
		Frames:     GetExampleFrames(),
		Transcript: *GetExampleTranscript(),
		SourceURI:  "gs://modal-align-intake/examples/rest-api-tutorial.manifest.json",
	}
}
