// Command workshop-grades turns a saved LMS workshop grades report and
// a course participant roster into a per-student grade file ready for
// re-import into the grading system.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tonechas/moodle-workshop-group-grades/internal/config"
	"github.com/tonechas/moodle-workshop-group-grades/internal/exporter"
	"github.com/tonechas/moodle-workshop-group-grades/internal/files"
	"github.com/tonechas/moodle-workshop-group-grades/internal/grading"
	"github.com/tonechas/moodle-workshop-group-grades/internal/infrastructure"
	"github.com/tonechas/moodle-workshop-group-grades/pkg/contracts"
)

func main() {
	dataDir := flag.String("data", "", "data folder holding the report and roster (defaults to config, then the working directory)")
	reportFile := flag.String("report", "", "grades report HTML file (defaults to the one found in the data folder)")
	rosterFile := flag.String("roster", "", "participant roster CSV/XLSX file (defaults to the one found in the data folder)")
	outFile := flag.String("out", "", "output grade file path (defaults to <data>/workshop-grades.csv)")
	groupingSet := flag.String("set", "", "grouping set to reconcile over, e.g. 1 for G1_* groups (default: inferred)")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.FullVersionString())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	// Flags win over config.
	if *dataDir == "" {
		*dataDir = cfg.Paths.DataDir
	}
	if *reportFile == "" {
		*reportFile = cfg.Paths.ReportFile
	}
	if *rosterFile == "" {
		*rosterFile = cfg.Paths.RosterFile
	}
	if *outFile == "" {
		*outFile = cfg.Paths.OutputFile
	}
	if !filepath.IsAbs(*outFile) {
		*outFile = filepath.Join(*dataDir, *outFile)
	}
	if *groupingSet == "" {
		*groupingSet = cfg.Workshop.GroupingSet
	}

	ctx := infrastructure.ContextWithRunID(context.Background())
	if err := run(ctx, logger, *dataDir, *reportFile, *rosterFile, *outFile, *groupingSet); err != nil {
		logger.ErrorContext(ctx, "run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, dataDir, reportFile, rosterFile, outFile, groupingSet string) error {
	var err error
	if reportFile == "" {
		if reportFile, err = files.FindReport(dataDir); err != nil {
			return err
		}
	}
	if rosterFile == "" {
		if rosterFile, err = files.FindRoster(dataDir); err != nil {
			return err
		}
	}
	logger.InfoContext(ctx, "inputs resolved",
		slog.String("report", reportFile),
		slog.String("roster", rosterFile),
		slog.String("output", outFile))

	rosterRows, skipped, err := files.ReadRoster(rosterFile)
	if err != nil {
		return err
	}
	for _, problem := range skipped {
		logger.WarnContext(ctx, "roster row skipped", "error", problem)
	}

	reportHTML, err := files.OpenReport(reportFile)
	if err != nil {
		return err
	}
	defer reportHTML.Close()

	pipeline := grading.NewPipeline(logger, grading.Options{GroupingSet: groupingSet})
	result, err := pipeline.Run(ctx, rosterRows, reportHTML)
	if err != nil {
		return err
	}

	if err := exporter.NewGradeWriter(logger).WriteFile(outFile, result.Rows); err != nil {
		return err
	}

	printSummary(result, outFile)
	return nil
}

// printSummary writes the human-readable run summary to stdout, next
// to the structured log output.
func printSummary(result *grading.RunResult, outFile string) {
	fmt.Printf("Workshop:     %s\n", result.Summary.WorkshopTitle)
	fmt.Printf("Grouping set: G%s_*\n", result.Summary.GroupingSet)
	fmt.Printf("Students:     %d graded, %d unmatched, %d ungraded\n",
		result.Summary.Matched, result.Summary.Unmatched, result.Summary.Ungraded)
	for _, rec := range result.Unmatched {
		fmt.Printf("  unmatched report row %d: %s\n", rec.Row, rec.DisplayName)
	}
	for _, p := range result.Ungraded {
		fmt.Printf("  ungraded participant: %s <%s>\n", p.FullName(), p.Email)
	}
	fmt.Printf("Grade file:   %s\n", outFile)
}
