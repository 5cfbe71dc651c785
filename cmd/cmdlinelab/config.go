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

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sushain97/cmdline/cmdline"
)

// actionConfig is the YAML shape cmdlinelab reads: a flat sequence of
// directives applied to a single Builder, in order. Only a subset of the
// full VectorArg feature set is exposed here — map_each requires an
// embedded-scripting callable, which this demo CLI has no host for; the
// scripting package is exercised directly by cmdline's own tests instead.
type actionConfig struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	FlagPerLine bool              `yaml:"flag_per_line"`
	Directives  []directiveConfig `yaml:"directives"`
}

type directiveConfig struct {
	// Exactly one of Value, Formatted, or Vector should be set.
	Value     string           `yaml:"value,omitempty"`
	Formatted *formattedConfig `yaml:"formatted,omitempty"`
	Vector    *vectorConfig    `yaml:"vector,omitempty"`

	// GroupStart, if true, calls Builder.RecordArgStart before this
	// directive is appended (flag-per-line mode).
	GroupStart bool `yaml:"group_start,omitempty"`
}

type formattedConfig struct {
	Value  string `yaml:"value"`
	Format string `yaml:"format"`
}

type vectorConfig struct {
	Values        []string `yaml:"values"`
	ArgName       string   `yaml:"arg_name,omitempty"`
	FormatEach    string   `yaml:"format_each,omitempty"`
	BeforeEach    string   `yaml:"before_each,omitempty"`
	JoinWith      string   `yaml:"join_with,omitempty"`
	FormatJoined  string   `yaml:"format_joined,omitempty"`
	TerminateWith string   `yaml:"terminate_with,omitempty"`
	Uniquify      bool     `yaml:"uniquify,omitempty"`
	OmitIfEmpty   bool     `yaml:"omit_if_empty,omitempty"`
}

func loadActionConfig(path string) (*actionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cmdlinelab: reading %s: %w", path, err)
	}
	var cfg actionConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("cmdlinelab: parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// build turns cfg into a cmdline.CommandLine.
func (cfg *actionConfig) build() cmdline.CommandLine {
	b := cmdline.NewBuilder()
	for _, d := range cfg.Directives {
		if d.GroupStart {
			b.RecordArgStart()
		}
		switch {
		case d.Vector != nil:
			b.AddVector(d.Vector.builder())
		case d.Formatted != nil:
			b.AddFormatted(d.Formatted.Value, d.Formatted.Format)
		default:
			b.Add(d.Value)
		}
	}
	return b.Build(cfg.FlagPerLine)
}

func (vc *vectorConfig) builder() *cmdline.VectorArgBuilder {
	values := make([]any, len(vc.Values))
	for i, v := range vc.Values {
		values[i] = v
	}
	v := cmdline.NewVectorArg().SetValues(values...)
	if vc.ArgName != "" {
		v.SetArgName(vc.ArgName)
	}
	if vc.FormatEach != "" {
		v.SetFormatEach(vc.FormatEach)
	}
	if vc.BeforeEach != "" {
		v.SetBeforeEach(vc.BeforeEach)
	}
	if vc.JoinWith != "" {
		v.SetJoinWith(vc.JoinWith)
	}
	if vc.FormatJoined != "" {
		v.SetFormatJoined(vc.FormatJoined)
	}
	if vc.TerminateWith != "" {
		v.SetTerminateWith(vc.TerminateWith)
	}
	if vc.Uniquify {
		v.SetUniquify()
	}
	if vc.OmitIfEmpty {
		v.SetOmitIfEmpty()
	}
	return v
}
