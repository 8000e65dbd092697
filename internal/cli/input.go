package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sprite-ai/eslint-teamcity/internal/diff"
	"github.com/sprite-ai/eslint-teamcity/internal/model"
)

// loadResults reads and decodes lint results, then applies the diff filter
// when --changed or --diff is set.
func loadResults(cmd *cobra.Command, args []string, log logrus.FieldLogger) ([]model.Diagnostic, error) {
	r, closeFn, err := openInput(cmd, args)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	diags, err := model.DecodeResults(r)
	if err != nil {
		return nil, err
	}
	log.WithField("files", len(diags)).Debug("loaded results")

	ds, err := loadDiff(cmd)
	if err != nil {
		return nil, err
	}
	if ds == nil {
		return diags, nil
	}

	files, added, _ := ds.Stats()
	log.WithFields(logrus.Fields{"files": files, "added": added}).Info("filtering findings to changed lines")
	return diff.FilterDiagnostics(diags, ds), nil
}

func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, nil, fmt.Errorf("opening results: %w", err)
		}
		return f, func() { f.Close() }, nil
	}

	in := cmd.InOrStdin()
	if len(args) == 0 {
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return nil, nil, fmt.Errorf("no results file given and stdin is a terminal")
		}
	}
	return in, func() {}, nil
}

// loadDiff returns the diff selected by --diff or --changed, or nil when
// neither is set.
func loadDiff(cmd *cobra.Command) (*diff.DiffSet, error) {
	diffPath, _ := cmd.Flags().GetString("diff")
	changed, _ := cmd.Flags().GetString("changed")

	var raw string
	switch {
	case diffPath != "":
		data, err := os.ReadFile(diffPath)
		if err != nil {
			return nil, fmt.Errorf("reading diff: %w", err)
		}
		raw = string(data)
	case changed != "":
		repoDir, err := diff.GitRepoRoot()
		if err != nil {
			return nil, fmt.Errorf("not in a git repository (or git not installed): %w", err)
		}
		if raw, err = diff.GitDiffRange(repoDir, changed); err != nil {
			return nil, err
		}
	default:
		return nil, nil
	}

	if strings.TrimSpace(raw) == "" {
		return &diff.DiffSet{}, nil
	}
	ds, err := diff.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}
	return ds, nil
}
