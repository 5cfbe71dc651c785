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
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingExpander struct {
	contents map[string][]File
	manifest map[string]*FilesetManifest
}

func (e *recordingExpander) Expand(ctx context.Context, tree *TreeArtifact, out *[]File) error {
	*out = append(*out, e.contents[tree.ExecPath()]...)
	return nil
}

func (e *recordingExpander) GetFileset(ctx context.Context, fs *Fileset) (*FilesetManifest, error) {
	m, ok := e.manifest[fs.ExecPath()]
	if !ok {
		return nil, ErrFilesetMissing
	}
	return m, nil
}

func TestExpandDirectoriesNoopsWhenDisabledOrNoExpander(t *testing.T) {
	values := []any{&TreeArtifact{Path: "out/t"}}

	out, err := ExpandDirectories(context.Background(), values, false, &recordingExpander{}, NOOP)
	require.NoError(t, err)
	require.Equal(t, values, out)

	out, err = ExpandDirectories(context.Background(), values, true, nil, NOOP)
	require.NoError(t, err)
	require.Equal(t, values, out)
}

func TestExpandDirectoriesLeavesNonDirectoryValuesAlone(t *testing.T) {
	values := []any{"plain", &SourceFile{Path: "src/a"}}
	expander := &recordingExpander{}

	out, err := ExpandDirectories(context.Background(), values, true, expander, NOOP)
	require.NoError(t, err)
	require.Equal(t, values, out)
}

func TestExpandDirectoriesFlattensTreeArtifact(t *testing.T) {
	f1 := &DerivedFile{Path: "out/t/a"}
	f2 := &DerivedFile{Path: "out/t/b"}
	expander := &recordingExpander{contents: map[string][]File{"out/t": {f1, f2}}}

	out, err := ExpandDirectories(context.Background(), []any{&TreeArtifact{Path: "out/t"}}, true, expander, NOOP)
	require.NoError(t, err)
	require.Equal(t, []any{f1, f2}, out)
}

func TestExpandDirectoriesWrapsMissingFilesetError(t *testing.T) {
	expander := &recordingExpander{}
	_, err := ExpandDirectories(context.Background(), []any{&Fileset{Path: "out/fs"}}, true, expander, NOOP)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrFilesetMissing))
	var expErr *ExpansionError
	require.ErrorAs(t, err, &expErr)
}

func TestExpandDirectoriesSynthesizesRemappedFilesetSymlinks(t *testing.T) {
	fs := &Fileset{Path: "out/fs", Owner: "out/fs"}
	manifest := NewFilesetManifest([]FilesetManifestEntry{{RelativePath: "a.txt"}}, fs.ExecPath(), IgnoreRelativeSymlinks)
	expander := &recordingExpander{manifest: map[string]*FilesetManifest{"out/fs": manifest}}

	out, err := ExpandDirectories(context.Background(), []any{fs}, true, expander, NOOP)
	require.NoError(t, err)
	require.Len(t, out, 1)
	entry, ok := out[0].(*FilesetSymlinkFile)
	require.True(t, ok)
	require.Equal(t, "out/fs/a.txt", entry.ExecPath())
	require.Equal(t, "a.txt", entry.TreeRelativePathString())
}
