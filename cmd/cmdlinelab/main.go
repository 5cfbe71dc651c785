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

// Command cmdlinelab reads an action description from YAML, builds a
// cmdline.CommandLine from it, and prints both its expanded argument
// vector and its fingerprint. It exists to exercise the config/CLI/logging
// ambient stack end to end, the way Soong's own cmd/*/main.go binaries
// exercise android's library packages from a real entry point.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sushain97/cmdline/fingerprint"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "cmdlinelab",
		Short: "Build and inspect deferred command lines from a YAML description",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newRunCommand(&verbose))
	return root
}

func newRunCommand(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "run <action.yaml>",
		Short: "Build the action described by a YAML file and print its arguments and fingerprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(*verbose)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			return runAction(cmd.Context(), log, args[0])
		},
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	return cfg.Build()
}

func runAction(ctx context.Context, log *zap.Logger, path string) error {
	cfg, err := loadActionConfig(path)
	if err != nil {
		return err
	}

	cl := cfg.build()
	log.Info("built command line", zap.String("action", cfg.Name), zap.Bool("flag_per_line", cfg.FlagPerLine))

	args, err := cl.Arguments(ctx)
	if err != nil {
		return fmt.Errorf("cmdlinelab: expanding arguments: %w", err)
	}
	fmt.Println("arguments:")
	for _, a := range args {
		fmt.Printf("  %s\n", a)
	}

	sink := fingerprint.NewSha256Sink()
	cache := fingerprint.NewNestedSetFingerprintCache(256)
	if err := cl.AddToFingerprint(ctx, nil, cache, sink); err != nil {
		return fmt.Errorf("cmdlinelab: computing fingerprint: %w", err)
	}
	digest := sink.Sum()
	fmt.Printf("fingerprint: %s\n", hex.EncodeToString(digest[:]))
	return nil
}
