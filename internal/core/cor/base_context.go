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

// This file defines BaseContext, the default Context implementation: a
// property bag the whole pipeline shares. Commands read and write values
// under string keys, record failures into an error map keyed by command
// name, and register scratch files (downloaded manifests, staged report
// artifacts) for cleanup when the run finishes.
package cor

import (
	"context"
	"log"
	"os"
)

// BaseContext is the default Context implementation. It is not safe for
// concurrent writers; a pipeline run owns its context exclusively.
type BaseContext struct {
	data      map[string]interface{}
	errors    map[string]error
	tempFiles []string
	context   context.Context
}

// NewBaseContext returns an empty context ready for a pipeline run.
func NewBaseContext() Context {
	return &BaseContext{
		data:      make(map[string]interface{}),
		errors:    make(map[string]error),
		tempFiles: make([]string, 0),
	}
}

// SetContext installs the Go context used for cancellation and span
// propagation. Chains swap this per-command to nest spans correctly.
func (c *BaseContext) SetContext(context context.Context) {
	c.context = context
}

// GetContext returns the installed Go context.
func (c *BaseContext) GetContext() context.Context {
	return c.context
}

// Close removes every scratch file registered during the run. Removal
// failures are logged and skipped so one stuck file does not leak the rest.
func (c *BaseContext) Close() {
	for _, file := range c.GetTempFiles() {
		if err := os.Remove(file); err != nil {
			log.Printf("failed to remove temporary file '%s': %v\n", file, err)
		}
	}
}

// Add stores value under key and returns the context for chaining.
func (c *BaseContext) Add(key string, value interface{}) Context {
	c.data[key] = value
	return c
}

// AddTempFile registers a scratch file for removal on Close.
func (c *BaseContext) AddTempFile(file string) {
	c.tempFiles = append(c.tempFiles, file)
}

// GetTempFiles returns every registered scratch file path.
func (c *BaseContext) GetTempFiles() []string {
	return c.tempFiles
}

// AddError records a failure under the producing command's name.
func (c *BaseContext) AddError(key string, err error) {
	c.errors[key] = err
}

// GetErrors returns the error map, keyed by command name.
func (c *BaseContext) GetErrors() map[string]error {
	return c.errors
}

// Get returns the value stored under key, or nil when absent.
func (c *BaseContext) Get(key string) interface{} {
	return c.data[key]
}

// Remove drops the value stored under key.
func (c *BaseContext) Remove(key string) {
	delete(c.data, key)
}

// HasErrors reports whether any command has recorded a failure.
func (c *BaseContext) HasErrors() bool {
	return len(c.errors) > 0
}
