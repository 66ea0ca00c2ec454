package uitheme

import (
	"fmt"
	"io"

	"github.com/yacobolo/uitheme/internal/report"
)

// OutputFormat represents the report format of a run
type OutputFormat string

const (
	// OutputText shows changed and failed files in golangci-lint style (CI-friendly)
	OutputText OutputFormat = "text"
	// OutputSummary shows statistics only
	OutputSummary OutputFormat = "summary"
	// OutputFull shows files, statistics and skipped transforms
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
	// OutputMarkdown generates a Markdown report (shareable reports)
	OutputMarkdown OutputFormat = "markdown"
)

// DetermineOutputFormat selects the appropriate output format based on flags and environment
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Explicit quiet flag wins (exit code only)
	if quiet {
		return OutputText
	}

	switch formatFlag {
	case "text", "issues":
		return OutputText
	case "summary":
		return OutputSummary
	case "full":
		return OutputFull
	case "json":
		return OutputJSON
	case "markdown", "md":
		return OutputMarkdown
	}

	return DetermineDefaultOutputFormat()
}

// DetermineDefaultOutputFormat returns the default output format
func DetermineDefaultOutputFormat() OutputFormat {
	return OutputText
}

// WriteOutput writes the run result in the specified format
func WriteOutput(w io.Writer, result *Result, format OutputFormat, config report.Config) error {
	s := result.Summary
	config.RevertScript = result.RevertScript

	switch format {
	case OutputText:
		reporter := report.NewReporter(w, config)
		reporter.PrintEntries(report.Entries(s, config.IncludeSkipped))
		if config.PrintDiffs {
			reporter.PrintDiffs(s)
		}
		reporter.PrintSummary(s)

	case OutputSummary:
		stats := report.NewStatsReporter(w, report.ShouldUseColors(config))
		stats.PrintStatistics(s)
		stats.PrintTransformProgress(s)

	case OutputFull:
		reporter := report.NewReporter(w, config)
		reporter.PrintEntries(report.Entries(s, true))
		if config.PrintDiffs {
			reporter.PrintDiffs(s)
		}
		reporter.PrintSummary(s)

		stats := report.NewStatsReporter(w, reporter.UseColors())
		stats.PrintStatistics(s)
		stats.PrintTransformProgress(s)
		stats.PrintSkipped(s)

	case OutputJSON:
		return WriteJSON(w, result)

	case OutputMarkdown:
		return report.WriteMarkdown(w, s)

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}
