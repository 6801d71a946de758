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

// Package workflow assembles the pipeline commands into the engine's
// orchestrations. This file implements the alignment workflow: from a
// manifest upload notification all the way to a persisted analysis with
// its rendered artifact set.
package workflow

import (
	"github.com/skylarkmedia/gcp-go-modal-align/internal/cloud"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/analysis"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/commands"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/cor"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/report"
)

// AlignmentWorkflow orchestrates one full analysis run as a chain of
// commands. It is triggered by the Pub/Sub notification GCS publishes when
// an alignment manifest lands in the intake bucket, and can also be driven
// synchronously by the API with a pre-loaded manifest.
type AlignmentWorkflow struct {
	cor.BaseCommand
	config     *cloud.Config
	clients    *cloud.ServiceClients
	aligner    *analysis.Aligner
	classifier *analysis.Classifier
	analyzer   *analysis.GapAnalyzer
	sink       report.Sink
	chain      cor.Chain
}

// Execute runs the underlying chain against the given context.
func (w *AlignmentWorkflow) Execute(context cor.Context) {
	w.chain.Execute(context)
}

// initializeChain wires the command sequence. Each command's output pipes
// into the next command's input.
func (w *AlignmentWorkflow) initializeChain() {
	out := cor.NewBaseChain(w.GetName())

	// Step 1: Reduce the GCS upload notification to an object reference.
	out.AddCommand(commands.NewManifestTriggerToGCSObject("manifest-trigger-to-gcs-object"))

	// Step 2: Fetch and decode the manifest from the intake bucket.
	out.AddCommand(commands.NewManifestLoader("load-manifest", w.clients.StorageClient))

	// Step 3: Pair every scored frame with its transcript excerpt.
	out.AddCommand(commands.NewFrameAligner("align-frames", w.aligner))

	// Step 4: Classify and score every aligned segment.
	out.AddCommand(commands.NewSegmentClassifier("classify-segments", w.classifier))

	// Step 5: Find modality gaps, recommendations, and highlights.
	out.AddCommand(commands.NewGapAnalyzerCommand("analyze-gaps", w.analyzer))

	// Step 6: Fold everything into the AnalysisResult aggregate.
	out.AddCommand(commands.NewResultAssembly("assemble-analysis"))

	// Step 7: Stream the aggregate and its segments into BigQuery.
	out.AddCommand(commands.NewAnalysisPersistToBigQuery(
		"write-to-bigquery",
		w.clients.Inserters[cloud.AnalysisInserter],
		w.clients.Inserters[cloud.SegmentInserter]))

	// Step 8: Render and deliver the five report artifacts.
	out.AddCommand(commands.NewReportSynthesizer("synthesize-reports",
		report.NewSynthesizer(w.sink, w.config.Reports.MaxRequestItems)))

	w.chain = out
}

// NewAlignmentPipeline builds the full alignment workflow from the loaded
// configuration and initialized clients.
//
// Inputs:
//   - config: The application's overall configuration.
//   - serviceClients: The initialized Google Cloud clients.
//
// Returns:
//   - A pointer to a fully initialized AlignmentWorkflow.
func NewAlignmentPipeline(config *cloud.Config, serviceClients *cloud.ServiceClients) *AlignmentWorkflow {
	workers := config.Alignment.WorkerCount
	if workers <= 0 {
		workers = config.Application.ThreadPoolSize
	}

	pipeline := &AlignmentWorkflow{
		BaseCommand: *cor.NewBaseCommand("alignment-pipeline"),
		config:      config,
		clients:     serviceClients,
		aligner:     analysis.NewAligner(config.Alignment.WindowSeconds, workers),
		classifier:  analysis.NewClassifier(config.Alignment.DiagramScoreThreshold, config.Alignment.SubstantialWordCount),
		analyzer:    analysis.NewGapAnalyzer(config.Reports.ExcerptCap),
		sink: report.NewGCSSink(
			serviceClients.StorageClient,
			config.Storage.ArtifactOutputBucket,
			config.Reports.GCSPrefix),
	}
	pipeline.initializeChain()
	return pipeline
}

// NewLocalAlignmentPipeline builds the same workflow with a local
// filesystem artifact sink instead of the GCS sink.
func NewLocalAlignmentPipeline(config *cloud.Config, serviceClients *cloud.ServiceClients, outputDir string) *AlignmentWorkflow {
	pipeline := NewAlignmentPipeline(config, serviceClients)
	pipeline.sink = report.NewLocalSink(outputDir)
	pipeline.initializeChain()
	return pipeline
}

// NewTriggeredAlignmentPipeline builds the workflow the manifest topic
// listener runs, selecting the artifact sink from the configuration: the
// local sink when reports.local_output_dir is set, the GCS sink otherwise.
func NewTriggeredAlignmentPipeline(config *cloud.Config, serviceClients *cloud.ServiceClients) *AlignmentWorkflow {
	if dir := config.Reports.LocalOutputDir; dir != "" {
		return NewLocalAlignmentPipeline(config, serviceClients, dir)
	}
	return NewAlignmentPipeline(config, serviceClients)
}

// initializeInlineChain wires the chain for a manifest that is already in
// memory: the trigger and loader steps are skipped. Callers must place the
// manifest under both CtxIn and the manifest context key before executing.
func (w *AlignmentWorkflow) initializeInlineChain() {
	out := cor.NewBaseChain(w.GetName())
	out.AddCommand(commands.NewFrameAligner("align-frames", w.aligner))
	out.AddCommand(commands.NewSegmentClassifier("classify-segments", w.classifier))
	out.AddCommand(commands.NewGapAnalyzerCommand("analyze-gaps", w.analyzer))
	out.AddCommand(commands.NewResultAssembly("assemble-analysis"))
	out.AddCommand(commands.NewAnalysisPersistToBigQuery(
		"write-to-bigquery",
		w.clients.Inserters[cloud.AnalysisInserter],
		w.clients.Inserters[cloud.SegmentInserter]))
	out.AddCommand(commands.NewReportSynthesizer("synthesize-reports",
		report.NewSynthesizer(w.sink, w.config.Reports.MaxRequestItems)))
	w.chain = out
}

// NewInlineAlignmentPipeline builds the workflow variant the API uses for
// synchronous analysis requests carrying the manifest in the request body.
func NewInlineAlignmentPipeline(config *cloud.Config, serviceClients *cloud.ServiceClients) *AlignmentWorkflow {
	pipeline := NewAlignmentPipeline(config, serviceClients)
	pipeline.BaseCommand = *cor.NewBaseCommand("inline-alignment-pipeline")
	pipeline.initializeInlineChain()
	return pipeline
}
