// Package config resolves the naming configuration for a formatter run.
//
// Values come from an ordered list of providers. For every field the first
// provider that supplies a non-empty value wins, so a caller's explicit
// options beat the project manifest, which beats the environment, which
// beats the built-in defaults.
package config

// ReporterKind selects the encoder.
type ReporterKind int

const (
	ReporterErrors ReporterKind = iota
	ReporterInspections
)

func (r ReporterKind) String() string {
	if r == ReporterInspections {
		return "inspections"
	}
	return "errors"
}

// ParseReporter maps a raw reporter value to a kind. Anything other than
// exactly "inspections" is ReporterErrors.
func ParseReporter(s string) ReporterKind {
	if s == "inspections" {
		return ReporterInspections
	}
	return ReporterErrors
}

// Built-in defaults.
const (
	DefaultReporter              = "errors"
	DefaultReportName            = "ESLint Violations"
	DefaultErrorStatisticsName   = "ESLint Error Count"
	DefaultWarningStatisticsName = "ESLint Warning Count"
	DefaultInspectionCountName   = "ESLint Inspection Count"
)

// Options is a partial configuration. Empty fields are unset.
type Options struct {
	Reporter              string `json:"reporter,omitempty"`
	ReportName            string `json:"reportName,omitempty"`
	ErrorStatisticsName   string `json:"errorStatisticsName,omitempty"`
	WarningStatisticsName string `json:"warningStatisticsName,omitempty"`
	InspectionCountName   string `json:"inspectionCountName,omitempty"`
}

// Effective is the fully resolved configuration for one invocation.
type Effective struct {
	Reporter              ReporterKind
	ReportName            string
	ErrorStatisticsName   string
	WarningStatisticsName string
	InspectionCountName   string

	// EmitInspectionCount appends a statistic counting distinct rule ids.
	EmitInspectionCount bool
}

// Provider supplies one tier of partial configuration.
type Provider interface {
	Options() Options
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func() Options

func (f ProviderFunc) Options() Options { return f() }

// Explicit returns a provider for options passed directly by the caller.
func Explicit(opts Options) Provider {
	return ProviderFunc(func() Options { return opts })
}

// Defaults returns the built-in default tier.
func Defaults() Provider {
	return ProviderFunc(func() Options {
		return Options{
			Reporter:              DefaultReporter,
			ReportName:            DefaultReportName,
			ErrorStatisticsName:   DefaultErrorStatisticsName,
			WarningStatisticsName: DefaultWarningStatisticsName,
			InspectionCountName:   DefaultInspectionCountName,
		}
	})
}

// Resolve merges providers, highest precedence first. Defaults are always
// consulted last, so a field left unset by every provider still resolves.
func Resolve(providers ...Provider) Effective {
	var merged Options
	for _, p := range providers {
		if p == nil {
			continue
		}
		merged = merge(merged, p.Options())
	}
	merged = merge(merged, Defaults().Options())

	return Effective{
		Reporter:              ParseReporter(merged.Reporter),
		ReportName:            merged.ReportName,
		ErrorStatisticsName:   merged.ErrorStatisticsName,
		WarningStatisticsName: merged.WarningStatisticsName,
		InspectionCountName:   merged.InspectionCountName,
	}
}

// merge fills fields unset in dst from src.
func merge(dst, src Options) Options {
	dst.Reporter = firstNonEmpty(dst.Reporter, src.Reporter)
	dst.ReportName = firstNonEmpty(dst.ReportName, src.ReportName)
	dst.ErrorStatisticsName = firstNonEmpty(dst.ErrorStatisticsName, src.ErrorStatisticsName)
	dst.WarningStatisticsName = firstNonEmpty(dst.WarningStatisticsName, src.WarningStatisticsName)
	dst.InspectionCountName = firstNonEmpty(dst.InspectionCountName, src.InspectionCountName)
	return dst
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
