// Copyright 2026 The Cmdline Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package action wires a built cmdline.CommandLine into a Ninja rule via
// github.com/google/blueprint, Soong's own action-graph library.
// android.RuleBuilder.Build joins a RuleBuilder's buffered shell commands
// with " && " and feeds them, plus their declared inputs/outputs/tools,
// into a blueprint.RuleParams; this package does the same thing one level
// down the stack — one spawned action, one CommandLine, no shell joining,
// since multi-command sequencing and the surrounding
// Paths/ModuleContext machinery live above this package.
package action

import (
	"context"
	"strings"

	"github.com/google/blueprint"
	"go.uber.org/zap"

	"github.com/sushain97/cmdline/cmdline"
	"github.com/sushain97/cmdline/fingerprint"
	"github.com/sushain97/cmdline/value"
)

// Spec describes one spawned action: a built CommandLine plus the
// bookkeeping a Ninja rule needs around it.
type Spec struct {
	Name        string
	Description string
	Command     cmdline.CommandLine
	Tools       []string
	Inputs      []string
	Outputs     []string
}

// Build expands spec's CommandLine against expander and remapper and
// returns the blueprint.Rule and BuildParams a RuleBuilder-style caller
// would pass to blueprint.ModuleContext.Build. It logs the assembled
// command at debug level, mirroring the layer at which Soong's own
// cmd/*/main.go entry points log; lower-level packages stay silent.
func Build(ctx context.Context, log *zap.Logger, pctx blueprint.PackageContext, ruleCtx blueprint.ModuleContext, spec Spec, expander value.Expander, remapper value.Remapper) (blueprint.Rule, blueprint.BuildParams, error) {
	args, err := spec.Command.ArgumentsWithExpander(ctx, expander, remapper)
	if err != nil {
		return nil, blueprint.BuildParams{}, err
	}

	command := strings.Join(args, " ")
	if log != nil {
		log.Debug("assembled action command",
			zap.String("action", spec.Name),
			zap.String("command", command),
			zap.Int("tokens", len(args)))
	}

	rule := ruleCtx.Rule(pctx, spec.Name, blueprint.RuleParams{
		Command:     command,
		CommandDeps: spec.Tools,
	})

	return rule, blueprint.BuildParams{
		Rule:        rule,
		Implicits:   spec.Inputs,
		Outputs:     spec.Outputs,
		Description: spec.Description,
	}, nil
}

// Fingerprint folds spec's CommandLine into sink the same way action
// caching would key on it: an identity remapper, and cache shared across
// every action built from the same BuildParams (see
// fingerprint.NestedSetFingerprintCache).
func Fingerprint(ctx context.Context, spec Spec, expander value.Expander, cache *fingerprint.NestedSetFingerprintCache, sink fingerprint.Sink) error {
	return spec.Command.AddToFingerprint(ctx, expander, cache, sink)
}
