// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/syllabus-engine/internal/extract"
	"github.com/pdiddy/syllabus-engine/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract assignment records from schedule spreadsheets",
	Long: `Extract reads .xlsx and .csv schedule files, runs the heuristic
extraction engine over every sheet, and writes one result file per input
to <planner-dir>/extracted/[file-stem]-assignments.yaml.

Files are processed independently: an unreadable file is reported and the
batch continues. Past-due assignments are dropped; duplicates are collapsed
on (title, due date, course).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := types.ExtractionConfig{
		HeuristicsConfig: heuristicsFromFlags(cmd),
		PlannerDir:       plannerDir(cmd),
	}
	cfg.Course, _ = cmd.Flags().GetString("course")
	cfg.Year, _ = cmd.Flags().GetInt("year")

	engine := extract.NewEngine(cfg, time.Now())
	summary, _ := engine.ExtractAll(args, os.Stdout)

	if summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed extraction", summary.Failed)
	}
	if summary.FoundNothing() {
		fmt.Fprintln(os.Stderr, "no assignments found in any input; the files may not be schedules")
	}
	return nil
}

// heuristicsFromFlags layers the extraction heuristics: documented defaults,
// then config file values, then explicitly set flags.
func heuristicsFromFlags(cmd *cobra.Command) types.HeuristicsConfig {
	h := types.DefaultHeuristics()

	intKnobs := []struct {
		flag, key string
		dst       *int
	}{
		{"homework-lead-days", "homework_lead_days", &h.HomeworkLeadDays},
		{"activity-lead-days", "activity_lead_days", &h.ActivityLeadDays},
		{"project-lead-days", "project_lead_days", &h.ProjectLeadDays},
		{"year-sanity-window", "year_sanity_window", &h.YearSanityWindow},
		{"date-scan-rows", "date_scan_rows", &h.DateScanRows},
		{"fallback-date-column", "fallback_date_column", &h.FallbackDateColumn},
	}
	for _, k := range intKnobs {
		if viper.IsSet(k.key) {
			*k.dst = viper.GetInt(k.key)
		}
		if cmd.Flags().Changed(k.flag) {
			*k.dst, _ = cmd.Flags().GetInt(k.flag)
		}
	}

	boolKnobs := []struct {
		flag, key string
		dst       *bool
	}{
		{"single-sheet-timeline", "assume_timeline_single_sheet", &h.AssumeTimelineSingleSheet},
		{"carry-forward-dates", "carry_forward_row_date", &h.CarryForwardRowDate},
	}
	for _, k := range boolKnobs {
		if viper.IsSet(k.key) {
			*k.dst = viper.GetBool(k.key)
		}
		if cmd.Flags().Changed(k.flag) {
			*k.dst, _ = cmd.Flags().GetBool(k.flag)
		}
	}

	return h
}

func init() {
	extractCmd.Flags().String("course", "", "course name override (default: inferred from filename)")
	extractCmd.Flags().Int("year", 0, "context year for date correction (default: current year)")

	def := types.DefaultHeuristics()
	extractCmd.Flags().Int("homework-lead-days", def.HomeworkLeadDays, "days from row date to due date for homework without an explicit date")
	extractCmd.Flags().Int("activity-lead-days", def.ActivityLeadDays, "days from row date to due date for activities without an explicit date")
	extractCmd.Flags().Int("project-lead-days", def.ProjectLeadDays, "days from row date to due date for projects without an explicit date")
	extractCmd.Flags().Int("year-sanity-window", def.YearSanityWindow, "max years a parsed date may sit from the context year")
	extractCmd.Flags().Int("date-scan-rows", def.DateScanRows, "leading data rows scanned for dates when the header names no date column")
	extractCmd.Flags().Int("fallback-date-column", def.FallbackDateColumn, "column index assumed to hold dates when no date column is found")
	extractCmd.Flags().Bool("single-sheet-timeline", def.AssumeTimelineSingleSheet, "treat a single-sheet workbook with enough rows as a timeline")
	extractCmd.Flags().Bool("carry-forward-dates", def.CarryForwardRowDate, "reuse the previous row's date for rows without one")

	rootCmd.AddCommand(extractCmd)
}
