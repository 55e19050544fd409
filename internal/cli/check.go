package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tsawler/manucheck"
	"github.com/tsawler/manucheck/format"
	"github.com/tsawler/manucheck/report"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	FailOnIssues bool
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check <file|dir>...",
		Short: "Check manuscripts for formatting issues",
		Long: `Check one or more DOCX manuscripts.

Directories are searched recursively for .docx files. Checks are enabled
by the configuration: headers and footers always run unless switched off,
the blank line check runs when a threshold is set, the cover font check
when a font is set, and the field check when fields are configured.`,
		Example: `  # Check a thesis with the defaults
  manucheck check thesis.docx

  # Allow at most two blank lines and require a 黑体 cover
  manucheck check --max-blank-lines 2 --cover-font 黑体 thesis.docx

  # Check a folder and write an HTML report
  manucheck check -o html submissions/ > report.html`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.FailOnIssues, "fail-on-issues", false, "Exit with status 1 when issues are found")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	ctx := cmd.Context()
	cfg := GetConfig(ctx)
	if cfg == nil {
		return errors.New("configuration not loaded")
	}
	logger := GetLogger(ctx)

	paths, err := collectInputs(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .docx files found in %v", args)
	}

	checkOpts, err := cfg.Options(logger)
	if err != nil {
		return err
	}
	batch := cfg.Batch()
	logger.Info("checking documents", "count", len(paths), "workers", batch.Workers, "checks", checkOpts.Enabled())

	reports, err := manucheck.CheckAll(ctx, paths, checkOpts, batch)
	if err != nil {
		return err
	}
	if err := report.Write(cmd.OutOrStdout(), cfg.Output, reports); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if opts.FailOnIssues {
		for _, r := range reports {
			if r.Found() {
				return ErrIssuesFound
			}
		}
	}
	return nil
}

// collectInputs expands directories into the documents they contain.
// Other arguments are kept as given, so missing files are reported by
// the checks.
func collectInputs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && format.IsCandidate(path) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", arg, err)
		}
	}
	return paths, nil
}
