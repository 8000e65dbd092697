// Package diff restricts lint results to lines changed in a git diff.
package diff

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	"github.com/sprite-ai/eslint-teamcity/internal/model"
)

// File is one file of a diff, reduced to the lines it adds.
type File struct {
	OldName      string
	NewName      string
	IsNew        bool
	IsDeleted    bool
	IsRenamed    bool
	IsBinary     bool
	AddedLines   int
	DeletedLines int

	added map[int]bool // new-side line numbers
}

// Name returns the path the file has after the change.
func (f *File) Name() string {
	if f.IsDeleted || f.NewName == "" {
		return f.OldName
	}
	return f.NewName
}

// Added reports whether line (1-based, new side) was added by the diff.
func (f *File) Added(line int) bool {
	return f.added[line]
}

// DiffSet holds the parsed diff for all files.
type DiffSet struct {
	Files []*File
	Raw   string
}

// Stats returns aggregate statistics.
func (ds *DiffSet) Stats() (files, added, deleted int) {
	files = len(ds.Files)
	for _, f := range ds.Files {
		added += f.AddedLines
		deleted += f.DeletedLines
	}
	return
}

// Parse reads a unified diff string and returns a DiffSet.
func Parse(raw string) (*DiffSet, error) {
	parsed, _, err := gitdiff.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	ds := &DiffSet{Raw: raw}
	for _, f := range parsed {
		df := &File{
			OldName:   f.OldName,
			NewName:   f.NewName,
			IsNew:     f.IsNew,
			IsDeleted: f.IsDelete,
			IsRenamed: f.IsRename,
			IsBinary:  f.IsBinary,
			added:     make(map[int]bool),
		}

		for _, frag := range f.TextFragments {
			newLine := int(frag.NewPosition)
			for _, line := range frag.Lines {
				switch line.Op {
				case gitdiff.OpAdd:
					df.AddedLines++
					df.added[newLine] = true
					newLine++
				case gitdiff.OpDelete:
					df.DeletedLines++
				case gitdiff.OpContext:
					newLine++
				}
			}
		}

		ds.Files = append(ds.Files, df)
	}

	return ds, nil
}

// Lookup finds the diff entry for a lint path. Lint tools usually report
// absolute paths while git reports repository-relative ones, so a path
// matches when it equals the diff name or ends with "/" + name.
func (ds *DiffSet) Lookup(path string) *File {
	p := model.DisplayPath(path)
	for _, f := range ds.Files {
		if f.IsDeleted {
			continue
		}
		name := f.Name()
		if p == name || strings.HasSuffix(p, "/"+name) {
			return f
		}
	}
	return nil
}

// FilterDiagnostics keeps only findings on lines the diff adds. Files not
// in the diff are kept with no messages. Findings without a line (0) on a
// changed file are kept.
func FilterDiagnostics(diags []model.Diagnostic, ds *DiffSet) []model.Diagnostic {
	out := make([]model.Diagnostic, 0, len(diags))
	for _, d := range diags {
		kept := d
		kept.Messages = nil

		if f := ds.Lookup(d.FilePath); f != nil {
			for _, m := range d.Messages {
				if m.Line == 0 || f.Added(m.Line) {
					kept.Messages = append(kept.Messages, m)
				}
			}
		}
		out = append(out, kept)
	}
	return out
}

// GitDiff runs `git diff` with the given arguments and returns the raw output.
func GitDiff(repoDir string, args ...string) (string, error) {
	cmdArgs := append([]string{"diff"}, args...)
	cmd := exec.Command("git", cmdArgs...)
	cmd.Dir = repoDir
	cmd.Stderr = os.Stderr

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git diff: %w", err)
	}

	return string(out), nil
}

// GitDiffRange returns the zero-context diff for a commit range like "main...HEAD".
func GitDiffRange(repoDir string, commitRange string) (string, error) {
	return GitDiff(repoDir, "-U0", "--no-color", commitRange)
}

// GitRepoRoot returns the top-level directory of the current repository.
func GitRepoRoot() (string, error) {
	out, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", fmt.Errorf("locating git repository: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
