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

// This file renders the interactive timeline artifact: a static HTML page
// listing every segment in time order with client-side category filtering
// (all / code / diagrams / gaps). All filtering happens in the browser;
// the page carries no server-side logic.
package report

import (
	"bytes"
	"html/template"
	"io"
	"os"
	"strings"

	"github.com/h2non/filetype"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/model"
)

const timelineTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Timeline: {{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
.entry { border-left: 3px solid #ccc; padding: 0.5em 1em; margin: 0.5em 0; }
.entry.gap { border-left-color: #c0392b; }
.entry .time { font-weight: bold; }
.entry .type { color: #555; margin-left: 0.5em; }
.entry img { max-width: 240px; display: block; margin-top: 0.5em; }
.filters button { margin-right: 0.5em; }
.hidden { display: none; }
</style>
</head>
<body>
<h1>Timeline: {{.Title}}</h1>
<p>{{.Total}} segments, {{.GapCount}} gaps.</p>
<div class="filters">
<button data-filter="all">All</button>
<button data-filter="code">Code</button>
<button data-filter="diagram">Diagrams</button>
<button data-filter="gap">Gaps</button>
</div>
<div id="timeline">
{{range .Entries}}<div class="entry{{if .IsGap}} gap{{end}}" data-category="{{.Category}}" data-gap="{{.IsGap}}">
<span class="time">{{.TimeLabel}}</span><span class="type">{{.SegmentType}} ({{.Quality}})</span>
<p>{{.Excerpt}}</p>
{{if .ThumbnailSrc}}<img src="{{.ThumbnailSrc}}" alt="frame at {{.TimeLabel}}">{{end}}
</div>
{{end}}</div>
<script>
document.querySelectorAll('.filters button').forEach(function (btn) {
  btn.addEventListener('click', function () {
    var filter = btn.getAttribute('data-filter');
    document.querySelectorAll('.entry').forEach(function (entry) {
      var show = filter === 'all' ||
        (filter === 'gap' && entry.getAttribute('data-gap') === 'true') ||
        entry.getAttribute('data-category') === filter;
      entry.classList.toggle('hidden', !show);
    });
  });
});
</script>
</body>
</html>
`

// timelineEntry is the per-segment view model for the timeline page.
type timelineEntry struct {
	TimeLabel    string
	Category     string // "code", "diagram", or "other"; drives the filter buttons.
	IsGap        bool
	SegmentType  model.SegmentType
	Quality      model.AlignmentQuality
	Excerpt      string
	ThumbnailSrc string
}

type timelineView struct {
	Title    string
	Total    int
	GapCount int
	Entries  []timelineEntry
}

// TimelineRenderer emits the static HTML timeline.
type TimelineRenderer struct {
	tmpl *template.Template
}

// NewTimelineRenderer parses the timeline page template.
func NewTimelineRenderer() *TimelineRenderer {
	return &TimelineRenderer{
		tmpl: template.Must(template.New(ArtifactTimeline).Parse(timelineTemplate)),
	}
}

func (r *TimelineRenderer) Name() string { return ArtifactTimeline }

func (r *TimelineRenderer) ContentType() string { return "text/html" }

func (r *TimelineRenderer) Render(result *model.AnalysisResult) ([]byte, error) {
	gapTimes := make(map[float64]bool, len(result.Gaps))
	for _, gap := range result.Gaps {
		gapTimes[gap.Timestamp] = true
	}

	view := timelineView{
		Title:    orPlaceholder(result.Metadata.Title),
		Total:    result.Stats.TotalSegments,
		GapCount: len(result.Gaps),
		Entries:  make([]timelineEntry, 0, len(result.Segments)),
	}

	for _, segment := range result.Segments {
		view.Entries = append(view.Entries, timelineEntry{
			TimeLabel:    FormatTimestamp(segment.Timestamp),
			Category:     categoryFor(segment.SegmentType),
			IsGap:        gapTimes[segment.Timestamp],
			SegmentType:  segment.SegmentType,
			Quality:      segment.AlignmentQuality,
			Excerpt:      orPlaceholder(segment.Excerpt.Text),
			ThumbnailSrc: thumbnailSource(segment.Frame.SourcePath),
		})
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func categoryFor(segmentType model.SegmentType) string {
	switch segmentType {
	case model.SegmentCodeExplanation, model.SegmentCodeWithDiscussion, model.SegmentCodeOnly:
		return "code"
	case model.SegmentArchitectureOverview, model.SegmentDiagramWithDiscussion, model.SegmentDiagramOnly:
		return "diagram"
	default:
		return "other"
	}
}

// thumbnailSource returns the frame path when it points at a readable local
// image, sniffing the content rather than trusting the extension. Remote
// references (gs://, https://) and unreadable paths render without a
// thumbnail.
func thumbnailSource(sourcePath string) string {
	if sourcePath == "" || strings.Contains(sourcePath, "://") {
		return ""
	}
	f, err := os.Open(sourcePath)
	if err != nil {
		return ""
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, 261)
	n, err := io.ReadFull(f, head)
	if err != nil && n == 0 {
		return ""
	}
	if filetype.IsImage(head[:n]) {
		return sourcePath
	}
	return ""
}
