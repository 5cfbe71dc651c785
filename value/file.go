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

import "path/filepath"

// File is implemented by any artifact-like value that can appear in a
// command line: a plain file, a tree artifact (a directory of outputs), or
// a fileset (a symlink-tree manifest). It mirrors the capability set a
// real build system exposes on its artifact objects (see GLOSSARY
// "Artifact").
type File interface {
	// ExecPath is the canonical in-build path used on a command line,
	// before any remapping.
	ExecPath() string

	IsDirectory() bool
	IsTreeArtifact() bool
	IsFileset() bool

	// IsSourceArtifact is false for anything produced by the build into an
	// output tree (a "derived artifact"); such paths are subject to
	// PathMapper remapping. Source paths are stable and never remapped.
	IsSourceArtifact() bool
}

// SourceFile is a plain file that originates outside the build (not
// produced by any action). Its exec path is never remapped.
type SourceFile struct {
	Path string
}

func (f *SourceFile) ExecPath() string       { return f.Path }
func (f *SourceFile) IsDirectory() bool      { return false }
func (f *SourceFile) IsTreeArtifact() bool   { return false }
func (f *SourceFile) IsFileset() bool        { return false }
func (f *SourceFile) IsSourceArtifact() bool { return true }

// DerivedFile is a plain file produced by the build into an output tree.
// Its exec path is subject to PathMapper remapping (see C1).
type DerivedFile struct {
	Path string
}

func (f *DerivedFile) ExecPath() string       { return f.Path }
func (f *DerivedFile) IsDirectory() bool      { return false }
func (f *DerivedFile) IsTreeArtifact() bool   { return false }
func (f *DerivedFile) IsFileset() bool        { return false }
func (f *DerivedFile) IsSourceArtifact() bool { return false }

// TreeArtifact is a directory of outputs produced by a single action. Its
// contents are not known to this package; an Expander materializes them on
// demand, preserving the expander's own order.
type TreeArtifact struct {
	Path string
}

func (f *TreeArtifact) ExecPath() string       { return f.Path }
func (f *TreeArtifact) IsDirectory() bool      { return true }
func (f *TreeArtifact) IsTreeArtifact() bool   { return true }
func (f *TreeArtifact) IsFileset() bool        { return false }
func (f *TreeArtifact) IsSourceArtifact() bool { return false }

// Fileset is a symlink-tree manifest. Like TreeArtifact, its members are
// only available through an Expander, which returns a FilesetManifest.
type Fileset struct {
	Path  string // the fileset's own exec-path origin
	Owner string
}

func (f *Fileset) ExecPath() string       { return f.Path }
func (f *Fileset) IsDirectory() bool      { return true }
func (f *Fileset) IsTreeArtifact() bool   { return false }
func (f *Fileset) IsFileset() bool        { return true }
func (f *Fileset) IsSourceArtifact() bool { return false }

// FilesetSymlinkFile is a synthesized file-like entry for one entry of a
// fileset's symlink manifest. It always reports IsDirectory=false and
// IsSourceArtifact=false, and its exec path is
// remapper(manifest-relative-path) joined against the owning fileset's
// exec-path origin.
type FilesetSymlinkFile struct {
	execPath         string
	treeRelativePath string
	owner            string
}

// NewFilesetSymlinkFile builds the synthesized entry for one manifest
// entry of fileset fs, given the already-remapped relative path.
func NewFilesetSymlinkFile(fs *Fileset, remappedRelativePath, treeRelativePath string) *FilesetSymlinkFile {
	return &FilesetSymlinkFile{
		execPath:         filepath.Join(fs.ExecPath(), remappedRelativePath),
		treeRelativePath: treeRelativePath,
		owner:            fs.Owner,
	}
}

func (f *FilesetSymlinkFile) ExecPath() string       { return f.execPath }
func (f *FilesetSymlinkFile) IsDirectory() bool      { return false }
func (f *FilesetSymlinkFile) IsTreeArtifact() bool   { return false }
func (f *FilesetSymlinkFile) IsFileset() bool        { return false }
func (f *FilesetSymlinkFile) IsSourceArtifact() bool { return false }

// Owner is the Owner of the fileset this symlink entry was expanded from.
func (f *FilesetSymlinkFile) Owner() string { return f.owner }

// Dirname, Filename, and Extension mirror the path accessors Bazel's own
// FilesetSymlinkFile exposes, for map-each callables that want to
// manipulate just a piece of the path.
func (f *FilesetSymlinkFile) Dirname() string   { return filepath.Dir(f.execPath) }
func (f *FilesetSymlinkFile) Filename() string  { return filepath.Base(f.execPath) }
func (f *FilesetSymlinkFile) Extension() string { return filepath.Ext(f.execPath) }

// TreeRelativePathString returns the path of this entry relative to the
// fileset's own root, i.e. before ExecPath's remapping and join.
func (f *FilesetSymlinkFile) TreeRelativePathString() string { return f.treeRelativePath }
