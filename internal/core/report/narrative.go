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

package report

import (
	"bytes"
	"text/template"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/model"
)

// narrativeTemplate lays out the human-readable document: executive
// statistics first, then one entry per segment, then the gap findings,
// then the recommendations. Template map ranges iterate in sorted key
// order, so the statistics sections render deterministically.
const narrativeTemplate = `# Alignment Narrative: {{orPlaceholder .Metadata.Title}}

- Author: {{orPlaceholder .Metadata.Author}}
- Duration: {{ts .Metadata.DurationSeconds}}
- Analysis ID: {{.Id}}
- Created: {{.CreateDate.Format "2006-01-02 15:04:05 MST"}}

## Summary

Total segments: {{.Stats.TotalSegments}}
{{range $type, $count := .Stats.SegmentTypeCounts}}- {{$type}}: {{$count}}
{{end}}
Quality tiers:
{{range $tier, $count := .Stats.QualityTierCounts}}- {{$tier}}: {{$count}}
{{end}}
Gaps: {{.Stats.VisualGapCount}} visual, {{.Stats.VerbalGapCount}} verbal.

## Segments
{{range .Segments}}
### {{ts .Timestamp}} — {{.SegmentType}} ({{.AlignmentQuality}}, score {{.AlignmentScore}})

Visual: {{orPlaceholder .Frame.SourcePath}}
Narration ({{.Excerpt.WordCount}} words, window {{ts .Excerpt.WindowStartSeconds}}–{{ts .Excerpt.WindowEndSeconds}}):

> {{orPlaceholder .Excerpt.Text}}
{{end}}
## Gaps
{{if .Gaps}}{{range .Gaps}}
- [{{ts .Timestamp}}] {{.Kind}} (priority {{printf "%.2f" .Priority}}): {{.Suggestion}}{{if .Excerpt}}
  Narration: {{.Excerpt}}{{end}}{{if .VisualReference}}
  Visual: {{.VisualReference}}{{end}}
{{end}}{{else}}
No gaps detected.
{{end}}
## Recommendations
{{if .Stats.Recommendations}}{{range .Stats.Recommendations}}
- {{.}}
{{end}}{{else}}
None.
{{end}}
## Reference-quality moments
{{if .Stats.HighlightTimestamps}}{{range .Stats.HighlightTimestamps}}
- {{ts .}}
{{end}}{{else}}
None.
{{end}}`

// NarrativeRenderer emits the prose report.
type NarrativeRenderer struct {
	tmpl *template.Template
}

// NewNarrativeRenderer parses the narrative template once; the template is
// a compile-time constant so parsing cannot fail at runtime.
func NewNarrativeRenderer() *NarrativeRenderer {
	return &NarrativeRenderer{
		tmpl: template.Must(template.New(ArtifactNarrative).Funcs(template.FuncMap{
			"ts":            FormatTimestamp,
			"orPlaceholder": orPlaceholder,
		}).Parse(narrativeTemplate)),
	}
}

func (r *NarrativeRenderer) Name() string { return ArtifactNarrative }

func (r *NarrativeRenderer) ContentType() string { return "text/markdown" }

func (r *NarrativeRenderer) Render(result *model.AnalysisResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
