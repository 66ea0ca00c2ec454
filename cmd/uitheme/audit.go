package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/yacobolo/uitheme"
	"github.com/yacobolo/uitheme/internal/report"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Report hardcoded palette classes left in component sources",
	Long: `Scan component sources for palette classes (bg-zinc-950, text-white, ...)
outside colors and styles objects. Run it after transform to find what the
mappings did not cover.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runAudit,
}

func init() {
	f := auditCmd.Flags()
	f.String("src", "src", "Component source directory")
	f.StringSlice("include", nil, "Glob patterns (relative to --src) of files to scan")
	f.Bool("lexical-regions", false, "Skip braces inside strings and comments when locating colors objects")
	f.Bool("strict", false, "Exit 1 on any issue (CI mode)")
	f.String("output-format", "", "Output format: text|json")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (palette) suffix on issues")
}

func runAudit(_ *cobra.Command, _ []string) error {
	res, err := uitheme.Audit(afero.NewOsFs(), buildAuditConfig())
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	if !quiet {
		if outputFormat(quiet) == uitheme.OutputJSON {
			if err := uitheme.WriteAuditJSON(os.Stdout, res); err != nil {
				return err
			}
		} else {
			useColors := report.ShouldUseColors(report.Config{UseColors: getBoolWithFallback("color", "color", false)})
			reporter := report.NewAuditReporter(os.Stdout, useColors,
				getBoolWithFallback("print-lines", "audit.print-lines", true),
				getBoolWithFallback("print-linter-name", "audit.print-linter-name", true))
			reporter.PrintIssues(res.Issues)
			reporter.PrintSummary(res)
		}
	}

	// Strict mode: any leftover palette class fails the build
	if getBoolWithFallback("strict", "audit.strict", false) && len(res.Issues) > 0 {
		return errFailed
	}
	return nil
}
