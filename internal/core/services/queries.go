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

// Package services contains the data access layer over the persisted
// analyses. This file centralizes the BigQuery SQL used by the services.
// Table names are filled in with fmt.Sprintf verbs; caller-supplied values
// travel as query parameters, never as interpolated text.
package services

const (
	// QryFindAnalysisById retrieves one complete analysis record by its ID.
	//
	// Placeholders:
	// - `%s`: The fully qualified name of the analysis table.
	// - `@id`: The analysis ID, bound as a query parameter.
	QryFindAnalysisById = "SELECT * FROM `%s` WHERE id = @id"

	// QryListAnalyses lists recent analyses newest-first, projecting the
	// summary columns the dashboard needs rather than the full nested record.
	//
	// Placeholders:
	// - `%s`: The fully qualified name of the analysis table.
	// - `%d`: The row limit.
	QryListAnalyses = "SELECT id, metadata.title AS title, metadata.author AS author, create_date, " +
		"stats.total_segments AS total_segments, stats.visual_gap_count AS visual_gap_count, " +
		"stats.verbal_gap_count AS verbal_gap_count " +
		"FROM `%s` ORDER BY create_date DESC LIMIT %d"

	// QryEngineStats aggregates across every persisted analysis for the
	// stats endpoint.
	//
	// Placeholders:
	// - `%s`: The fully qualified name of the analysis table.
	QryEngineStats = "SELECT COUNT(*) AS analysis_count, " +
		"IFNULL(SUM(stats.total_segments), 0) AS segment_count, " +
		"IFNULL(SUM(stats.visual_gap_count), 0) AS visual_gap_count, " +
		"IFNULL(SUM(stats.verbal_gap_count), 0) AS verbal_gap_count " +
		"FROM `%s`"
)
