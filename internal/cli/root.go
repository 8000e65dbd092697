// Package cli wires the eslint-teamcity commands.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sprite-ai/eslint-teamcity/internal/config"
	"github.com/sprite-ai/eslint-teamcity/internal/formatter"
	"github.com/sprite-ai/eslint-teamcity/internal/logging"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eslint-teamcity [results.json | -]",
		Short: "Report ESLint results to TeamCity",
		Long: `Convert ESLint JSON results into TeamCity service messages.

Results are read from the given file, or from stdin when the argument is
"-" or omitted and stdin is piped. Settings come from flags first, then the
"eslint-formatter-teamcity" key of package.json, then ESLINT_TEAMCITY_*
environment variables.

Examples:
  eslint -f json src | eslint-teamcity
  eslint-teamcity --reporter inspections results.json
  eslint-teamcity --changed main...HEAD results.json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runFormat,
	}

	pf := cmd.PersistentFlags()
	pf.String("manifest", config.DefaultManifestPath, "project manifest holding formatter settings")
	pf.String("env-file", "", "dotenv file merged under the process environment")
	pf.String("changed", "", "only report findings on lines added in this commit range")
	pf.String("diff", "", "only report findings on lines added by this unified diff file")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")

	f := cmd.Flags()
	f.StringP("reporter", "r", "", `output style: "errors" or "inspections"`)
	f.String("report-name", "", "test suite and inspection category name")
	f.String("error-statistics-name", "", "build statistic key for the error count")
	f.String("warning-statistics-name", "", "build statistic key for the warning count")
	f.String("inspection-count-name", "", "build statistic key for the distinct rule count")
	f.Bool("inspection-count", false, "also report the number of distinct rules")

	cmd.AddCommand(newSummaryCmd(), newViewCmd(), newServeCmd(), newVersionCmd())
	return cmd
}

// ExitError carries a process exit status without an error message.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	return 1
}

func runFormat(cmd *cobra.Command, args []string) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}

	diags, err := loadResults(cmd, args, log)
	if err != nil {
		return err
	}

	f, err := newFormatter(cmd, log)
	if err != nil {
		return err
	}
	f.EmitInspectionCount, _ = cmd.Flags().GetBool("inspection-count")

	out := f.Format(diags, explicitOptions(cmd))
	if out == "" {
		return nil
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

// explicitOptions collects the highest-priority settings from flags.
func explicitOptions(cmd *cobra.Command) config.Options {
	flags := cmd.Flags()
	var opts config.Options
	opts.Reporter, _ = flags.GetString("reporter")
	opts.ReportName, _ = flags.GetString("report-name")
	opts.ErrorStatisticsName, _ = flags.GetString("error-statistics-name")
	opts.WarningStatisticsName, _ = flags.GetString("warning-statistics-name")
	opts.InspectionCountName, _ = flags.GetString("inspection-count-name")
	return opts
}

// newFormatter builds a Formatter from the manifest and environment flags.
func newFormatter(cmd *cobra.Command, log logrus.FieldLogger) (*formatter.Formatter, error) {
	manifest, _ := cmd.Flags().GetString("manifest")
	envFile, _ := cmd.Flags().GetString("env-file")

	env := config.EnvFromOS()
	if envFile != "" {
		var err error
		if env, err = env.WithDotenv(envFile); err != nil {
			return nil, err
		}
		log.WithField("path", envFile).Debug("merged dotenv file")
	}

	return &formatter.Formatter{
		Manifest: config.FileManifest{Path: manifest, Log: log},
		Env:      env,
		Log:      log,
	}, nil
}

func newLogger(cmd *cobra.Command) (*logrus.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	return logging.New(cmd.ErrOrStderr(), level)
}
