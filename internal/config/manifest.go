package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/sprite-ai/eslint-teamcity/internal/logging"
)

// ManifestNamespace is the package.json key holding formatter settings.
const ManifestNamespace = "eslint-formatter-teamcity"

// DefaultManifestPath is read relative to the working directory.
const DefaultManifestPath = "package.json"

// emptyManifest stands in for a manifest that could not be read.
const emptyManifest = "{}"

// ManifestLoader returns the text of a project manifest.
type ManifestLoader interface {
	LoadManifest() string
}

// FileManifest loads a manifest from disk. A missing or unreadable file
// yields an empty JSON object.
type FileManifest struct {
	Path string
	Log  logrus.FieldLogger
}

// LoadManifest implements ManifestLoader.
func (m FileManifest) LoadManifest() string {
	path := m.Path
	if path == "" {
		path = DefaultManifestPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logging.OrDiscard(m.Log).WithError(err).Warnf("Unable to load config from %s", path)
		return emptyManifest
	}
	return string(data)
}

// StaticManifest is a ManifestLoader over in-memory text.
type StaticManifest string

// LoadManifest implements ManifestLoader.
func (s StaticManifest) LoadManifest() string {
	return string(s)
}

// Manifest returns the manifest tier. Parse failures are logged and
// contribute no values.
func Manifest(loader ManifestLoader, log logrus.FieldLogger) Provider {
	return ProviderFunc(func() Options {
		if loader == nil {
			return Options{}
		}
		opts, err := ParseManifest(loader.LoadManifest())
		if err != nil {
			logging.OrDiscard(log).WithError(err).Warn("Ignoring formatter settings from manifest")
			return Options{}
		}
		return opts
	})
}

// ParseManifest extracts formatter options from manifest text. Only string
// values are honoured; other types under a known key are ignored.
func ParseManifest(text string) (Options, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &root); err != nil {
		return Options{}, fmt.Errorf("parsing manifest: %w", err)
	}

	raw, ok := root[ManifestNamespace]
	if !ok {
		return Options{}, nil
	}

	var section map[string]any
	if err := json.Unmarshal(raw, &section); err != nil {
		return Options{}, fmt.Errorf("parsing %q section: %w", ManifestNamespace, err)
	}

	str := func(key string) string {
		s, _ := section[key].(string)
		return s
	}

	return Options{
		Reporter:              str("reporter"),
		ReportName:            str("report-name"),
		ErrorStatisticsName:   str("error-statistics-name"),
		WarningStatisticsName: str("warning-statistics-name"),
		InspectionCountName:   str("inspection-count-name"),
	}, nil
}
