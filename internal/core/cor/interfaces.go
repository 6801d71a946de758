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

// Package cor implements a Chain of Responsibility framework for building
// multi-step pipelines. A pipeline is a Chain of Commands that share a
// Context: each command reads its input from the context, does one unit of
// work, and writes its output back for the next command. This file holds the
// interfaces the rest of the engine programs against.
package cor

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CtxIn and CtxOut are the reserved context keys that carry the primary
// value between adjacent commands in a chain.
const (
	// CtxIn is where a command finds its primary input. The chain moves
	// the previous command's output here before each step.
	CtxIn = "__IN__"
	// CtxOut is where a command leaves its primary output for the chain
	// to hand to the next command.
	CtxOut = "__OUT__"
)

// Context is the shared state for one pipeline execution. It carries the
// data flowing between commands, every error any command recorded, and the
// standard Go context used for cancellation and trace propagation.
type Context interface {
	// SetContext installs the Go context.Context used for cancellation
	// signals and OpenTelemetry span propagation.
	SetContext(context context.Context)

	// GetContext returns the currently installed Go context.
	GetContext() context.Context

	// Add stores a value under the given key and returns the Context so
	// calls can be chained.
	Add(key string, value interface{}) Context

	// AddError records a failure, keyed by the name of the command that
	// produced it.
	AddError(key string, err error)

	// GetErrors returns everything recorded through AddError.
	GetErrors() map[string]error

	// Get returns the value stored under key, or nil.
	Get(key string) interface{}

	// Remove drops the value stored under key.
	Remove(key string)

	// HasErrors reports whether any command has recorded an error.
	HasErrors() bool

	// AddTempFile registers a scratch file for removal when the context
	// is closed.
	AddTempFile(file string)

	// GetTempFiles lists every registered scratch file.
	GetTempFiles() []string

	// Close releases resources held by the context, deleting any
	// registered scratch files. Defer it at the start of a run.
	Close()
}

// Executable is anything with a single unit of pipeline work.
type Executable interface {
	// Execute runs the work, reading inputs from and writing outputs to
	// the shared context. Failures are recorded on the context rather
	// than returned.
	Execute(context Context)
}

// Command is one atomic, named step in a pipeline.
type Command interface {
	Executable

	// GetName identifies the command in logs, spans, and metric names.
	GetName() string

	// GetInputParam returns the context key this command reads its
	// primary input from.
	GetInputParam() string

	// GetOutputParam returns the context key this command writes its
	// primary output to.
	GetOutputParam() string

	// IsExecutable reports whether the context carries everything the
	// command needs. Chains call it before Execute.
	IsExecutable(context Context) bool

	// GetTracer returns the command's OpenTelemetry tracer.
	GetTracer() trace.Tracer

	// GetMeter returns the command's OpenTelemetry meter.
	GetMeter() metric.Meter

	// GetSuccessCounter counts completed executions.
	GetSuccessCounter() metric.Int64Counter

	// GetErrorCounter counts failed executions.
	GetErrorCounter() metric.Int64Counter
}

// Chain runs an ordered sequence of commands. A Chain is itself a Command,
// so chains nest.
type Chain interface {
	Command

	// ContinueOnFailure controls whether the chain keeps running
	// subsequent commands after one records an error. Default is to stop.
	ContinueOnFailure(bool) Chain

	// AddCommand appends a command to the execution sequence.
	AddCommand(command Command) Chain
}
