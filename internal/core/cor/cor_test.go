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

// Unit tests for the chain framework: context bookkeeping, scratch file
// cleanup, and the input/output piping and stop-on-error behavior of the
// base chain.
package cor_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/zeebo/assert"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/cor"
)

// appendCommand appends its suffix to the string flowing through the chain.
type appendCommand struct {
	cor.BaseCommand
	suffix string
	fail   error
}

func newAppendCommand(name, suffix string, fail error) *appendCommand {
	return &appendCommand{BaseCommand: *cor.NewBaseCommand(name), suffix: suffix, fail: fail}
}

func (c *appendCommand) Execute(ctx cor.Context) {
	if c.fail != nil {
		ctx.AddError(c.GetName(), c.fail)
		return
	}
	in := ctx.Get(c.GetInputParam()).(string)
	ctx.Add(c.GetOutputParam(), in+c.suffix)
}

func TestBaseContextPropertyBag(t *testing.T) {
	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())

	chainCtx.Add("key", "value")
	assert.Equal(t, "value", chainCtx.Get("key"))
	assert.Nil(t, chainCtx.Get("missing"))

	chainCtx.Remove("key")
	assert.Nil(t, chainCtx.Get("key"))

	assert.False(t, chainCtx.HasErrors())
	chainCtx.AddError("step", errors.New("boom"))
	assert.True(t, chainCtx.HasErrors())
	assert.Equal(t, 1, len(chainCtx.GetErrors()))
}

func TestBaseContextCloseRemovesTempFiles(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "scratch.*")
	assert.NoError(t, err)
	assert.NoError(t, f.Close())

	chainCtx := cor.NewBaseContext()
	chainCtx.AddTempFile(f.Name())
	chainCtx.Close()

	_, err = os.Stat(f.Name())
	assert.True(t, os.IsNotExist(err))
}

func TestChainPipesOutputToInput(t *testing.T) {
	chain := cor.NewBaseChain("pipe-test")
	chain.AddCommand(newAppendCommand("first", "-a", nil))
	chain.AddCommand(newAppendCommand("second", "-b", nil))

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(cor.CtxIn, "start")

	chain.Execute(chainCtx)

	assert.False(t, chainCtx.HasErrors())
	// After the final command the chain moves its output back to the
	// input slot for the caller.
	assert.Equal(t, "start-a-b", chainCtx.Get(cor.CtxIn))
	assert.Nil(t, chainCtx.Get(cor.CtxOut))
}

func TestChainStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	chain := cor.NewBaseChain("stop-test")
	chain.AddCommand(newAppendCommand("first", "-a", nil))
	chain.AddCommand(newAppendCommand("failing", "", boom))
	chain.AddCommand(newAppendCommand("after", "-c", nil))

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(cor.CtxIn, "start")

	chain.Execute(chainCtx)

	assert.True(t, chainCtx.HasErrors())
	assert.True(t, errors.Is(chainCtx.GetErrors()["failing"], boom))
	// The command after the failure never ran: the failing command left no
	// output, so the input slot is empty.
	assert.Nil(t, chainCtx.Get(cor.CtxIn))
}

func TestChainContinueOnFailure(t *testing.T) {
	boom := errors.New("boom")
	chain := cor.NewBaseChain("continue-test").ContinueOnFailure(true)
	chain.AddCommand(newAppendCommand("failing", "", boom))
	chain.AddCommand(newAppendCommand("after", "-b", nil))

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(cor.CtxIn, "start")

	chain.Execute(chainCtx)

	assert.True(t, chainCtx.HasErrors())
	// The failing command consumed the input without producing output, so
	// the later command was skipped as not executable, but the chain kept
	// going rather than breaking.
	assert.Equal(t, 1, len(chainCtx.GetErrors()))
}

func TestCommandParamDefaults(t *testing.T) {
	command := cor.NewBaseCommand("defaults")
	assert.Equal(t, cor.CtxIn, command.GetInputParam())
	assert.Equal(t, cor.CtxOut, command.GetOutputParam())

	command.InputParamName = "custom-in"
	command.OutputParamName = "custom-out"
	assert.Equal(t, "custom-in", command.GetInputParam())
	assert.Equal(t, "custom-out", command.GetOutputParam())
}
