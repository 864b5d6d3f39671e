// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/syllabus-engine/internal/store"
	"github.com/pdiddy/syllabus-engine/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the assignment store (index, list, search, clear)",
	Long: `Store manages a local SQLite database of extracted assignments. Use
subcommands to index extraction results, list upcoming assignments,
search them, or clear the database.`,
}

// --- index subcommand ---

var storeIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Ingest extraction results into the assignment store",
	Long: `Index reads result YAML files from <planner-dir>/extracted/ into the
SQLite database with full-text indexing. Unchanged files are skipped on
subsequent runs.`,
	RunE: runStoreIndex,
}

func runStoreIndex(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d result file(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- list subcommand ---

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List upcoming assignments sorted by due date",
	Long: `List shows stored assignments sorted by ascending due date. Past-due
assignments are hidden unless --all is given.`,
	RunE: runStoreList,
}

func runStoreList(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := queryOptsFromFlags(cmd)
	if all, _ := cmd.Flags().GetBool("all"); !all {
		opts.DueOnOrAfter = time.Now()
	}

	results, err := s.List(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatAssignments(results, jsonOutput)
}

// --- search subcommand ---

var storeSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over assignment titles and descriptions",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStoreSearch,
}

func runStoreSearch(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	results, err := s.Search(context.Background(), strings.Join(args, " "), queryOptsFromFlags(cmd))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatAssignments(results, jsonOutput)
}

// --- clear subcommand ---

var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored assignments and indexing state",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Clear(context.Background()); err != nil {
			return err
		}
		fmt.Println("Store cleared.")
		return nil
	},
}

// --- shared helpers ---

func openStore(cmd *cobra.Command) (*store.Store, error) {
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return store.New(types.StoreConfig{
		PlannerDir: plannerDir(cmd),
		MaxResults: maxResults,
	})
}

func queryOptsFromFlags(cmd *cobra.Command) store.QueryOptions {
	course, _ := cmd.Flags().GetString("course")
	typ, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")

	return store.QueryOptions{
		Course:     course,
		Type:       typ,
		MaxResults: limit,
	}
}

func formatAssignments(results []types.Assignment, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No assignments found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-10s  %-40s  %-16s  %-14s  %s\n",
		"Due", "Title", "Course", "Type", "Details")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, a := range results {
		title := a.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		course := a.Course
		if len(course) > 16 {
			course = course[:13] + "..."
		}
		details := a.Description
		if len(details) > 30 {
			details = details[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-10s  %-40s  %-16s  %-14s  %s\n",
			a.DueDate, title, course, a.Type, details)
	}

	fmt.Fprintf(os.Stdout, "\n%d assignments\n", len(results))
	return nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	storeCmd.PersistentFlags().Int("max-results", 50, "default maximum number of query results")

	for _, c := range []*cobra.Command{storeListCmd, storeSearchCmd} {
		c.Flags().String("course", "", "filter by course name")
		c.Flags().String("type", "", "filter by assignment type")
		c.Flags().Int("limit", 0, "maximum results (0 = use default)")
		c.Flags().Bool("json", false, "output results as JSON")
	}
	storeListCmd.Flags().Bool("all", false, "include past-due assignments")

	storeCmd.AddCommand(storeIndexCmd)
	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeSearchCmd)
	storeCmd.AddCommand(storeClearCmd)

	rootCmd.AddCommand(storeCmd)
}
