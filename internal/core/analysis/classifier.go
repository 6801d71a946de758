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
// This file implements the segment classifier and scorer.
//
// Classification is an explicit decision table over five boolean predicates,
// not a cascade of if/else branches: each row of the table states exactly
// which predicate values it requires, rows are evaluated top to bottom, and
// the first matching row decides the segment type. That keeps the precedence
// between rows auditable and testable in isolation. Code rows precede
// diagram rows: HasCode is a hard decision made by the upstream scorer while
// "has diagram" is a soft threshold over DiagramScore, and the harder signal
// wins when a frame carries both.
//
// The scorer is additive and independent of the table, though it reads the
// same predicates. Both are total functions: missing optional inputs were
// already degraded to zero values upstream, so nothing here can fail.
package analysis

import "github.com/skylarkmedia/gcp-go-modal-align/internal/core/model"

// Classifier assigns each aligned segment a type label, an alignment score,
// and a quality tier. The zero value is not useful; use NewClassifier.
type Classifier struct {
	DiagramScoreThreshold float64 // DiagramScore at or above this counts as "diagram shown".
	SubstantialWordCount  int     // Excerpts with at least this many words count as "discussed".
}

// NewClassifier builds a classifier, falling back to the documented defaults
// for unset values.
func NewClassifier(diagramThreshold float64, substantialWords int) *Classifier {
	if diagramThreshold <= 0 {
		diagramThreshold = DefaultDiagramThreshold
	}
	if substantialWords <= 0 {
		substantialWords = DefaultSubstantialWordCount
	}
	return &Classifier{
		DiagramScoreThreshold: diagramThreshold,
		SubstantialWordCount:  substantialWords,
	}
}

// predicates are the boolean facts about one segment that both the decision
// table and the scorer consume.
type predicates struct {
	hasCode     bool
	hasDiagram  bool
	codeWords   bool
	archWords   bool
	substantial bool
	technical   bool
}

// cond is a tri-state requirement a table row places on one predicate:
// required true, required false, or irrelevant.
type cond int8

const (
	either cond = iota
	yes
	no
)

func (c cond) matches(value bool) bool {
	switch c {
	case yes:
		return value
	case no:
		return !value
	default:
		return true
	}
}

// tableRow is a single row of the classification decision table.
type tableRow struct {
	hasCode     cond
	hasDiagram  cond
	codeWords   cond
	archWords   cond
	substantial cond
	technical   cond
	result      model.SegmentType
}

func (r tableRow) matches(p predicates) bool {
	return r.hasCode.matches(p.hasCode) &&
		r.hasDiagram.matches(p.hasDiagram) &&
		r.codeWords.matches(p.codeWords) &&
		r.archWords.matches(p.archWords) &&
		r.substantial.matches(p.substantial) &&
		r.technical.matches(p.technical)
}

// decisionTable is evaluated top to bottom; the first matching row wins.
// Code rows come before diagram rows (documented precedence), and the final
// row is a catch-all so classification is total.
var decisionTable = []tableRow{
	{hasCode: yes, codeWords: yes, result: model.SegmentCodeExplanation},
	{hasCode: yes, codeWords: no, substantial: yes, result: model.SegmentCodeWithDiscussion},
	{hasCode: yes, codeWords: no, substantial: no, result: model.SegmentCodeOnly},
	{hasDiagram: yes, archWords: yes, result: model.SegmentArchitectureOverview},
	{hasDiagram: yes, archWords: no, substantial: yes, result: model.SegmentDiagramWithDiscussion},
	{hasDiagram: yes, archWords: no, substantial: no, result: model.SegmentDiagramOnly},
	{hasCode: no, hasDiagram: no, substantial: yes, technical: yes, result: model.SegmentSpokenOnly},
	{result: model.SegmentGeneral},
}

// Classify evaluates the decision table and the scoring rules for one aligned
// segment. It is a pure function: the same segment always yields the same
// type, score, and tier, and the input segment is never mutated.
func (c *Classifier) Classify(segment *model.AlignedSegment) *model.ClassifiedSegment {
	p := c.evaluate(segment)

	segmentType := model.SegmentGeneral
	for _, row := range decisionTable {
		if row.matches(p) {
			segmentType = row.result
			break
		}
	}

	score := c.score(segment, p)

	return &model.ClassifiedSegment{
		AlignedSegment:   *segment,
		SegmentType:      segmentType,
		AlignmentScore:   score,
		AlignmentQuality: model.QualityForScore(score),
	}
}

// ClassifyAll classifies a full segment list, preserving order.
func (c *Classifier) ClassifyAll(segments []*model.AlignedSegment) []*model.ClassifiedSegment {
	out := make([]*model.ClassifiedSegment, len(segments))
	for i, segment := range segments {
		out[i] = c.Classify(segment)
	}
	return out
}

// evaluate computes the predicate set for one segment.
func (c *Classifier) evaluate(segment *model.AlignedSegment) predicates {
	text := segment.Excerpt.Text
	return predicates{
		hasCode:     segment.Frame.HasCode,
		hasDiagram:  segment.Frame.DiagramScore >= c.DiagramScoreThreshold,
		codeWords:   HasCodeKeywords(text),
		archWords:   HasArchitectureKeywords(text),
		substantial: segment.Excerpt.WordCount >= c.SubstantialWordCount,
		technical:   HasTechnicalKeywords(text),
	}
}

// score applies the additive scoring rules. The thresholds here are fixed by
// the rule set (strictly more than 30 words, fewer than 10, more than 80)
// and intentionally not configurable.
func (c *Classifier) score(segment *model.AlignedSegment, p predicates) int {
	score := 0
	wordCount := segment.Excerpt.WordCount
	hasVisual := p.hasCode || p.hasDiagram

	if p.hasCode && p.codeWords {
		score += 3
	}
	if p.hasDiagram && p.archWords {
		score += 3
	}
	if wordCount > 30 {
		score += 2
	}
	if segment.Frame.PriorityScore >= 0.5 {
		score++
	}
	if hasVisual && wordCount < 10 {
		score -= 2
	}
	if !hasVisual && wordCount > 80 {
		score--
	}
	return score
}
