package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvReporter              = "ESLINT_TEAMCITY_REPORTER"
	EnvReportName            = "ESLINT_TEAMCITY_REPORT_NAME"
	EnvErrorStatisticsName   = "ESLINT_TEAMCITY_ERROR_STATISTICS_NAME"
	EnvWarningStatisticsName = "ESLINT_TEAMCITY_WARNING_STATISTICS_NAME"
	EnvInspectionCountName   = "ESLINT_TEAMCITY_INSPECTION_COUNT_NAME"
)

// Env is a snapshot of environment variables. It is a Provider.
type Env map[string]string

// EnvFromList builds a snapshot from KEY=VALUE pairs, as returned by os.Environ.
func EnvFromList(list []string) Env {
	env := make(Env, len(list))
	for _, kv := range list {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[k] = v
	}
	return env
}

// EnvFromOS snapshots the process environment.
func EnvFromOS() Env {
	return EnvFromList(os.Environ())
}

// WithDotenv returns a copy of e with variables from a dotenv file added.
// Variables already present in e keep their value.
func (e Env) WithDotenv(path string) (Env, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	out := make(Env, len(e)+len(vars))
	for k, v := range vars {
		out[k] = v
	}
	for k, v := range e {
		out[k] = v
	}
	return out, nil
}

// Options implements Provider.
func (e Env) Options() Options {
	return Options{
		Reporter:              e[EnvReporter],
		ReportName:            e[EnvReportName],
		ErrorStatisticsName:   e[EnvErrorStatisticsName],
		WarningStatisticsName: e[EnvWarningStatisticsName],
		InspectionCountName:   e[EnvInspectionCountName],
	}
}
