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

package value

import (
	"context"
	"fmt"
)

// SymlinkPolicy names how relative symlinks that escape a fileset root are
// treated. IgnoreRelativeSymlinks is the only policy defined; a
// FilesetManifest records the policy it was built with but does not filter
// entries by it.
type SymlinkPolicy int

const (
	IgnoreRelativeSymlinks SymlinkPolicy = iota
)

// FilesetManifestEntry is one entry of a fileset's symlink-tree manifest.
type FilesetManifestEntry struct {
	RelativePath string
}

// FilesetManifest is a fileset's ordered, deduplicated symlink-tree entry
// list, along with the origin exec path the entries are relative to.
type FilesetManifest struct {
	Entries []FilesetManifestEntry
	Origin  string
	policy  SymlinkPolicy
}

// NewFilesetManifest constructs a manifest from entries in their given
// (already deterministic) order, keeping only the first entry for each
// relative path. The symlink policy is recorded for documentation purposes
// only; this implementation's entries are assumed to already have been
// filtered by the expander that produced them.
func NewFilesetManifest(entries []FilesetManifestEntry, originExecPath string, policy SymlinkPolicy) *FilesetManifest {
	seen := make(map[string]bool, len(entries))
	unique := make([]FilesetManifestEntry, 0, len(entries))
	for _, e := range entries {
		if seen[e.RelativePath] {
			continue
		}
		seen[e.RelativePath] = true
		unique = append(unique, e)
	}
	return &FilesetManifest{Entries: unique, Origin: originExecPath, policy: policy}
}

// Expander is the runtime oracle that materializes tree artifacts and
// filesets into concrete file lists (GLOSSARY "Expander").
type Expander interface {
	// Expand appends tree's contained file values, in the expander's
	// defined order, to out.
	Expand(ctx context.Context, tree *TreeArtifact, out *[]File) error

	// GetFileset returns fs's symlink manifest, or ErrFilesetMissing if the
	// expander has no expansion for it.
	GetFileset(ctx context.Context, fs *Fileset) (*FilesetManifest, error)
}

// ExpandDirectories replaces every directory-valued argument (tree
// artifacts and filesets) with its expansion, preserving order. If
// expandDirectories is false, expander is nil, or no value isDirectory,
// values is returned unchanged (not copied).
func ExpandDirectories(ctx context.Context, values []any, expandDirectories bool, expander Expander, remapper Remapper) ([]any, error) {
	if !expandDirectories || expander == nil {
		return values, nil
	}
	if !hasDirectory(values) {
		return values, nil
	}

	out := make([]any, 0, len(values))
	for _, v := range values {
		f, ok := v.(File)
		if !ok || !f.IsDirectory() {
			out = append(out, v)
			continue
		}

		switch t := v.(type) {
		case *TreeArtifact:
			var files []File
			if err := expander.Expand(ctx, t, &files); err != nil {
				return nil, err
			}
			for _, file := range files {
				out = append(out, file)
			}
		case *Fileset:
			manifest, err := expander.GetFileset(ctx, t)
			if err != nil {
				return nil, WrapExpansionError(err,
					"Could not expand fileset: %s. Did you forget to add it as an input of the action?", t.ExecPath())
			}
			for _, entry := range manifest.Entries {
				remapped := remapper.Map(entry.RelativePath)
				out = append(out, NewFilesetSymlinkFile(t, remapped, entry.RelativePath))
			}
		default:
			panic(fmt.Sprintf("value: unknown directory kind %T", v))
		}
	}
	return out, nil
}

func hasDirectory(values []any) bool {
	for _, v := range values {
		if f, ok := v.(File); ok && f.IsDirectory() {
			return true
		}
	}
	return false
}
