// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/syllabus-engine/internal/export"
	"github.com/pdiddy/syllabus-engine/internal/extract"
	"github.com/pdiddy/syllabus-engine/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render assignments as planner CSV, iCalendar, or generic CSV",
	Long: `Export renders the stored assignment list in a planning-tool format:

  planner-csv   Name,Class,DueDate,Details,Type import format
  ics           iCalendar with one all-day event per assignment
  csv           plain dump of every assignment field

By default assignments come from the store (run "store index" first); with
--from-extracted they are read directly from the result YAML files, merged,
deduplicated, and sorted. Output goes to stdout unless --out is given.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	fromExtracted, _ := cmd.Flags().GetBool("from-extracted")

	var assignments []types.Assignment
	var err error
	if fromExtracted {
		assignments, err = loadExtracted(cmd)
	} else {
		assignments, err = loadStored(cmd)
	}
	if err != nil {
		return err
	}
	if len(assignments) == 0 {
		return fmt.Errorf("no assignments to export")
	}

	out := io.Writer(os.Stdout)
	outPath, _ := cmd.Flags().GetString("out")
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := export.Write(out, types.ExportFormat(format), assignments, time.Now()); err != nil {
		return err
	}
	if outPath != "" {
		fmt.Fprintf(os.Stderr, "Exported %d assignments to %s\n", len(assignments), outPath)
	}
	return nil
}

func loadStored(cmd *cobra.Command) ([]types.Assignment, error) {
	s, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	opts := queryOptsFromFlags(cmd)
	if opts.MaxResults == 0 {
		// Exports are complete by default; listing limits do not apply.
		opts.MaxResults = 1 << 20
	}
	return s.List(context.Background(), opts)
}

// loadExtracted merges every result YAML under planner-dir/extracted/,
// then runs the same dedup and sort pass the engine applies per file.
func loadExtracted(cmd *cobra.Command) ([]types.Assignment, error) {
	dir := filepath.Join(plannerDir(cmd), "extracted")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading extraction directory %s: %w", dir, err)
	}

	course, _ := cmd.Flags().GetString("course")
	typ, _ := cmd.Flags().GetString("type")

	var merged []types.Assignment
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "-assignments.yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		var result types.ExtractionResult
		if err := yaml.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", entry.Name(), err)
		}
		for _, a := range result.Assignments {
			if course != "" && a.Course != course {
				continue
			}
			if typ != "" && a.Type != typ {
				continue
			}
			merged = append(merged, a)
		}
	}

	return extract.Finalize(merged, time.Now()), nil
}

func init() {
	exportCmd.Flags().String("format", string(types.FormatPlannerCSV), "output format: planner-csv, ics, or csv")
	exportCmd.Flags().String("out", "", "output file (default: stdout)")
	exportCmd.Flags().Bool("from-extracted", false, "read result YAML files directly instead of the store")
	exportCmd.Flags().String("course", "", "filter by course name")
	exportCmd.Flags().String("type", "", "filter by assignment type")
	exportCmd.Flags().Int("limit", 0, "maximum assignments to export (0 = all)")

	rootCmd.AddCommand(exportCmd)
}
