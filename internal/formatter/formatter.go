// Package formatter turns ESLint results into TeamCity service messages.
package formatter

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sprite-ai/eslint-teamcity/internal/config"
	"github.com/sprite-ai/eslint-teamcity/internal/logging"
	"github.com/sprite-ai/eslint-teamcity/internal/model"
)

// Formatter resolves configuration and renders results. The zero value reads
// no manifest and sees an empty environment.
type Formatter struct {
	Manifest config.ManifestLoader
	Env      config.Env
	Log      logrus.FieldLogger

	// EmitInspectionCount appends the distinct-rule statistic.
	EmitInspectionCount bool
}

// NewDefault returns a Formatter reading package.json from the working
// directory and the process environment.
func NewDefault(log logrus.FieldLogger) *Formatter {
	return &Formatter{
		Manifest: config.FileManifest{Path: config.DefaultManifestPath, Log: log},
		Env:      config.EnvFromOS(),
		Log:      log,
	}
}

// Config resolves the effective configuration for explicit options.
func (f *Formatter) Config(opts config.Options) config.Effective {
	cfg := config.Resolve(
		config.Explicit(opts),
		config.Manifest(f.Manifest, f.Log),
		f.Env,
	)
	cfg.EmitInspectionCount = f.EmitInspectionCount
	return cfg
}

// Lines renders diags into service message lines.
func (f *Formatter) Lines(diags []model.Diagnostic, opts config.Options) []string {
	cfg := f.Config(opts)
	logging.OrDiscard(f.Log).WithFields(logrus.Fields{
		"reporter": cfg.Reporter,
		"files":    len(diags),
	}).Debug("formatting results")
	return Encode(diags, cfg)
}

// Format renders diags into newline-joined service messages.
func (f *Formatter) Format(diags []model.Diagnostic, opts config.Options) string {
	return strings.Join(f.Lines(diags, opts), "\n")
}

// Encode dispatches to the encoder selected by cfg.Reporter.
func Encode(diags []model.Diagnostic, cfg config.Effective) []string {
	if cfg.Reporter == config.ReporterInspections {
		return EncodeInspections(diags, cfg)
	}
	return EncodeErrors(diags, cfg)
}

// Format renders diags using package.json in the working directory and the
// process environment, with opts taking precedence over both.
func Format(diags []model.Diagnostic, opts config.Options) string {
	return NewDefault(nil).Format(diags, opts)
}
