// Copyright 2025 Skylark Media, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
// *****************************************************************************************************//
// Package main is the entry point for the modal alignment backend server.
//
// This application runs a web server using the Gin framework. It exposes a
// REST API for running alignment analyses, browsing persisted results,
// fetching signed URLs for the synthesized report artifacts, and uploading
// new manifests to the intake bucket. The server is instrumented with
// OpenTelemetry for logging, tracing, and metrics.
//
// The main function loads configuration, sets up logging and telemetry, and
// initializes the application state, including clients for Google Cloud
// services. It also starts the Pub/Sub listener that drives the background
// alignment pipeline whenever a manifest lands in the intake bucket.
//
// Functions:
//   - main: Sets up the server, configures routes, initializes services,
//     and handles graceful shutdown.
//   - AnalysisRouter: Registers the analysis routes: synchronous runs,
//     result retrieval, artifact signed URLs, and engine-wide statistics.
//   - ManifestUpload: Registers the multipart manifest upload endpoint that
//     writes into the intake bucket and so triggers the background pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/analysis"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/commands"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/cor"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/model"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/report"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/telemetry"
)

// main is the primary entry point for the application.
// It orchestrates the setup of logging, telemetry, configuration, cloud
// services, the web server, API routes, and the background listener, and
// handles graceful shutdown on interrupt.
func main() {
	// Initialize structured logging for the application.
	telemetry.SetupLogging()
	slog.Info("Logging initialized")

	// Root context for the application; cancelling it stops the listener.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load application configuration from TOML files.
	config := GetConfig()

	// Initialize OpenTelemetry for distributed tracing and metrics.
	_, err := telemetry.SetupOpenTelemetry(ctx, config)
	if err != nil {
		slog.Error("Failed to setup OpenTelemetry", "error", err)
		log.Fatal(err)
	}
	slog.Info("Tracing initialized")

	// Initialize the application's state, including all service clients,
	// and start the manifest listener.
	InitState(ctx)
	slog.Info("Initialized State")

	// Set up the Gin web server with default middleware.
	r := gin.Default()

	// Trace incoming requests with OpenTelemetry.
	r.Use(otelgin.Middleware("modal-align-server"))

	// Permissive CORS, suitable for development.
	r.Use(cors.Default())

	// Group routes under the "/api/v1" prefix.
	apiV1 := r.Group("/api/v1")
	{
		AnalysisRouter(apiV1)
		ManifestUpload(apiV1)
	}

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      r,
		ReadTimeout:  20 * time.Second,
		WriteTimeout: 20 * time.Second,
	}

	// Start the HTTP server in a separate goroutine so it doesn't block.
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to listen: ", "error", err)
		}
	}()
	slog.Info("Server Ready on port 8080")

	// Block until an interrupt or termination signal is received.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutdown Server ...")

	// Give active requests 5 seconds to complete.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server Shutdown Failed:", "error", err)
	}

	log.Println("Server exiting")
}

// AnalysisRouter sets up the API routes for analysis-related actions.
//
// Inputs:
//   - r: A *gin.RouterGroup the analysis routes are added under, so they
//     nest below a common prefix (e.g. "/api/v1").
//
// This function defines the following endpoints:
//   - POST /analyses: Runs the alignment pipeline synchronously on a
//     manifest supplied in the request body and returns the full result.
//   - GET /analyses: Lists persisted analysis summaries, newest first.
//   - GET /analyses/:id: Retrieves the full record of one analysis run.
//   - GET /analyses/:id/artifacts/:name/url: Generates a time-limited,
//     signed URL for downloading one synthesized report artifact.
//   - GET /stats: Returns engine-wide aggregate statistics.
func AnalysisRouter(r *gin.RouterGroup) {
	analyses := r.Group("/analyses")
	{
		// Handler for POST /analyses
		// Runs the inline pipeline on the posted manifest. The run is
		// synchronous: the response carries the assembled result and the
		// locations of every artifact that was written.
		analyses.POST("", func(c *gin.Context) {
			var manifest model.AlignmentManifest
			if err := c.ShouldBindJSON(&manifest); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid manifest: %s", err.Error())})
				return
			}
			// Manifests posted directly have no GCS object to identify
			// them, so derive a stable source reference from the title.
			if len(manifest.SourceURI) == 0 {
				manifest.SourceURI = "inline://" + manifest.Metadata.Title
			}

			chainCtx := cor.NewBaseContext()
			defer chainCtx.Close()
			chainCtx.SetContext(c.Request.Context())
			// The inline chain starts at the aligner, so the manifest goes
			// in as both the primary input and the well-known manifest key
			// the assembly step folds from.
			chainCtx.Add(cor.CtxIn, &manifest)
			chainCtx.Add(commands.GetManifestName(), &manifest)

			state.inlinePipeline.Execute(chainCtx)

			if chainCtx.HasErrors() {
				status := http.StatusInternalServerError
				details := make(map[string]string)
				for name, err := range chainCtx.GetErrors() {
					details[name] = err.Error()
					if errors.Is(err, analysis.ErrInvalidDuration) {
						status = http.StatusBadRequest
					}
				}
				c.JSON(status, gin.H{"errors": details})
				return
			}

			result, ok := chainCtx.Get(cor.CtxIn).(*model.AnalysisResult)
			if !ok {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "pipeline produced no result"})
				return
			}
			response := gin.H{"result": result}
			if synthesis, ok := chainCtx.Get(commands.GetSynthesisReportName()).(*report.SynthesisReport); ok {
				response["artifacts"] = synthesis.Written
			}
			c.JSON(http.StatusOK, response)
		})

		// Handler for GET /analyses?count=<n>
		analyses.GET("", func(c *gin.Context) {
			count, err := strconv.Atoi(c.DefaultQuery("count", "50"))
			if err != nil {
				count = 50
			}
			out, err := state.analysisService.List(c, count)
			if err != nil {
				log.Printf("Error listing analyses: %v\n", err)
				c.Status(http.StatusInternalServerError)
				return
			}
			c.JSON(http.StatusOK, out)
		})

		// Handler for GET /analyses/:id
		analyses.GET("/:id", func(c *gin.Context) {
			id := c.Param("id")
			out, err := state.analysisService.Get(c, id)
			if err != nil {
				c.Status(http.StatusNotFound)
				return
			}
			c.JSON(http.StatusOK, out)
		})

		// Handler for GET /analyses/:id/artifacts/:name/url
		// Provides a secure, time-limited URL for one report artifact.
		analyses.GET("/:id/artifacts/:name/url", func(c *gin.Context) {
			id := c.Param("id")
			name := c.Param("name")
			known := false
			for _, artifact := range report.ArtifactNames() {
				if artifact == name {
					known = true
					break
				}
			}
			if !known {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown artifact: %s", name)})
				return
			}

			gcsURI := fmt.Sprintf("gs://%s/%s", state.artifactSink.Bucket, state.artifactSink.ObjectName(id, name))
			ttl := time.Duration(state.config.Reports.SignedURLTTLMinutes) * time.Minute
			if ttl <= 0 {
				ttl = 15 * time.Minute
			}
			signedURL, err := state.analysisService.GenerateSignedURL(c, gcsURI, ttl)
			if err != nil {
				log.Printf("Error generating signed URL: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate download URL"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"url": signedURL})
		})
	}

	// Handler for GET /stats
	r.GET("/stats", func(c *gin.Context) {
		out, err := state.analysisService.Stats(c)
		if err != nil {
			log.Printf("Error reading engine stats: %v\n", err)
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, out)
	})
}

// ManifestUpload sets up the route for uploading manifest files.
//
// Inputs:
//   - r: A *gin.RouterGroup to which the upload route will be added.
//
// This function configures a POST endpoint at "/uploads" accepting
// multipart/form-data. Files sent under the "files" form field are saved
// to a local scratch path, sniffed for their content type, and written to
// the configured intake bucket; the GCS notification then triggers the
// background alignment pipeline.
func ManifestUpload(r *gin.RouterGroup) {
	upload := r.Group("/uploads")
	{
		// Handler for POST /uploads
		upload.POST("", func(c *gin.Context) {
			form, err := c.MultipartForm()
			if err != nil {
				c.String(http.StatusBadRequest, "get form err: %s", err.Error())
				return
			}
			files := form.File["files"]
			bucket := state.cloud.StorageClient.Bucket(state.config.Storage.ManifestInputBucket)

			for _, file := range files {
				localPath := filepath.Join(os.TempDir(), file.Filename)
				if err := c.SaveUploadedFile(file, localPath); err != nil {
					c.String(http.StatusBadRequest, "upload file err: %s", err.Error())
					return
				}

				content, err := os.ReadFile(localPath)
				if err != nil {
					log.Println(err)
					c.Status(http.StatusInternalServerError)
					return
				}
				// Sniff the content type from the file's magic bytes;
				// manifests carry no recognizable signature and fall
				// through to JSON.
				contentType := "application/json"
				if kind, err := filetype.Match(content); err == nil && kind != filetype.Unknown {
					contentType = kind.MIME.Value
				}

				wc := bucket.Object(file.Filename).NewWriter(c)
				wc.ContentType = contentType
				if _, err = wc.Write(content); err != nil {
					c.String(http.StatusInternalServerError, "write file to bucket err: %s", err.Error())
					return
				}
				if err := wc.Close(); err != nil {
					log.Printf("failed to close bucket handle: %v\n", err)
				}
				if err := os.Remove(localPath); err != nil {
					log.Printf("failed to remove file from server: %v\n", err)
				}
			}
			c.String(http.StatusOK, "Uploaded successfully %d files.", len(files))
		})
	}
}
